package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/eventcart/pkg/cartsdk"
)

func (a *App) cmdEvents(ctx context.Context, args []string) error {
	fs := a.flags("events")
	var opts cartsdk.ListEventsOptions
	fs.StringVar(&opts.Query, "q", "", "search text")
	fs.StringVar(&opts.Category, "category", "", "category")
	fs.StringVar(&opts.City, "city", "", "city")
	fs.IntVar(&opts.Limit, "limit", 20, "page size")
	fs.IntVar(&opts.Offset, "offset", 0, "page offset")
	if err := a.parse(fs, args); err != nil {
		return err
	}

	// The catalogue is public, but send the token when there is one.
	if _, err := a.session.Load(ctx); err != nil {
		return err
	}

	list, err := a.session.ListEvents(ctx, opts)
	if err != nil {
		return err
	}
	printEvents(a.out, list)
	return nil
}

func (a *App) cmdEvent(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageErr("event takes exactly one ID")
	}
	if _, err := a.session.Load(ctx); err != nil {
		return err
	}

	e, err := a.session.GetEvent(ctx, args[0])
	if err != nil {
		return err
	}
	printEvent(a.out, e)
	return nil
}

// customizations collects repeated -item ID=QTY flags.
type customizations []cartsdk.Customization

func (c *customizations) String() string {
	parts := make([]string, len(*c))
	for i, it := range *c {
		parts[i] = fmt.Sprintf("%s=%d", it.ItemID, it.Quantity)
	}
	return strings.Join(parts, ",")
}

func (c *customizations) Set(v string) error {
	id, qty, ok := strings.Cut(v, "=")
	if !ok || id == "" {
		return fmt.Errorf("want ITEM_ID=QTY, got %q", v)
	}
	n, err := strconv.Atoi(qty)
	if err != nil {
		return fmt.Errorf("quantity of %s: %w", id, err)
	}
	*c = append(*c, cartsdk.Customization{ItemID: id, Quantity: n})
	return nil
}

func (a *App) cmdCart(ctx context.Context, args []string) error {
	if err := a.restore(ctx); err != nil {
		return err
	}

	if len(args) == 0 {
		cart, err := a.session.GetCart(ctx)
		if err != nil {
			return err
		}
		printCart(a.out, cart)
		return nil
	}

	switch args[0] {
	case "add":
		fs := a.flags("cart")
		qty := fs.Int("qty", 1, "number of packages")
		var custom customizations
		fs.Var(&custom, "item", "package item override ITEM_ID=QTY (repeatable)")
		if len(args) < 2 {
			return usageErr("cart add needs an EVENT_ID")
		}
		if err := a.parse(fs, args[2:]); err != nil {
			return err
		}
		cart, err := a.session.AddToCart(ctx, cartsdk.AddCartItemRequest{
			EventID:        args[1],
			Quantity:       *qty,
			Customizations: custom,
		})
		if err != nil {
			return err
		}
		printCart(a.out, cart)

	case "update":
		if len(args) != 3 {
			return usageErr("cart update needs ITEM_ID and QTY")
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return usageErr("quantity must be a number")
		}
		cart, err := a.session.UpdateCartItem(ctx, args[1], qty)
		if err != nil {
			return err
		}
		printCart(a.out, cart)

	case "remove":
		if len(args) != 2 {
			return usageErr("cart remove needs ITEM_ID")
		}
		cart, err := a.session.RemoveCartItem(ctx, args[1])
		if err != nil {
			return err
		}
		printCart(a.out, cart)

	case "clear":
		if err := a.session.ClearCart(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Cart cleared.")

	default:
		return usageErr("unknown cart action %q", args[0])
	}
	return nil
}

func (a *App) cmdCheckout(ctx context.Context, args []string) error {
	fs := a.flags("checkout")
	var req cartsdk.CheckoutRequest
	addr := &req.ShippingAddress
	fs.StringVar(&addr.FullName, "name", "", "recipient name")
	fs.StringVar(&addr.Line1, "line1", "", "address line 1")
	fs.StringVar(&addr.Line2, "line2", "", "address line 2")
	fs.StringVar(&addr.City, "city", "", "city")
	fs.StringVar(&addr.State, "state", "", "state or region")
	fs.StringVar(&addr.PostalCode, "postal", "", "postal code")
	fs.StringVar(&addr.Country, "country", "", "two-letter country code")
	fs.StringVar(&req.PaymentMethod, "payment", cartsdk.PaymentCard, "card, paypal or invoice")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	addr.Country = strings.ToUpper(addr.Country)

	if err := a.restore(ctx); err != nil {
		return err
	}

	order, err := a.session.Checkout(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Order %s placed.\n\n", order.ID)
	printOrder(a.out, order)
	return nil
}

func (a *App) cmdOrders(ctx context.Context, args []string) error {
	if err := a.restore(ctx); err != nil {
		return err
	}

	switch len(args) {
	case 0:
		orders, err := a.session.ListOrders(ctx)
		if err != nil {
			return err
		}
		printOrders(a.out, orders)
	case 1:
		order, err := a.session.GetOrder(ctx, args[0])
		if err != nil {
			return err
		}
		printOrder(a.out, order)
	default:
		return usageErr("orders takes at most one ID")
	}
	return nil
}

func (a *App) cmdWishlist(ctx context.Context, args []string) error {
	if err := a.restore(ctx); err != nil {
		return err
	}

	if len(args) == 0 {
		wl, err := a.session.GetWishlist(ctx)
		if err != nil {
			return err
		}
		printWishlist(a.out, wl)
		return nil
	}

	if len(args) != 2 {
		return usageErr("wishlist %s needs an EVENT_ID", args[0])
	}
	switch args[0] {
	case "add":
		wl, err := a.session.AddToWishlist(ctx, args[1])
		if err != nil {
			return err
		}
		printWishlist(a.out, wl)
	case "remove":
		if err := a.session.RemoveFromWishlist(ctx, args[1]); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Removed from wishlist.")
	default:
		return usageErr("unknown wishlist action %q", args[0])
	}
	return nil
}

func (a *App) cmdAdmin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageErr("admin needs an action")
	}
	if err := a.restore(ctx); err != nil {
		return err
	}

	switch args[0] {
	case "users":
		users, err := a.session.ListUsers(ctx)
		if err != nil {
			return err
		}
		printUsers(a.out, users)
	case "orders":
		orders, err := a.session.ListAllOrders(ctx)
		if err != nil {
			return err
		}
		printOrders(a.out, orders)
	case "analytics":
		an, err := a.session.GetAnalytics(ctx)
		if err != nil {
			return err
		}
		printAnalytics(a.out, an)
	case "status":
		if len(args) != 3 {
			return usageErr("admin status needs ORDER_ID and STATUS")
		}
		status := cartsdk.OrderStatus(strings.ToLower(args[2]))
		if !status.Valid() {
			return usageErr("unknown status %q", args[2])
		}
		order, err := a.session.UpdateOrderStatus(ctx, args[1], status)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Order %s is now %s.\n", order.ID, order.Status)
	default:
		return usageErr("unknown admin action %q", args[0])
	}
	return nil
}
