package cli

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/aussiebroadwan/eventcart/pkg/cartsdk"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

const dateFormat = "Mon 02 Jan 2006 15:04"

func printEvents(w io.Writer, list *cartsdk.EventList) {
	if len(list.Events) == 0 {
		fmt.Fprintln(w, "No events found.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tCITY\tSTARTS\tPRICE\tLEFT")
	for _, e := range list.Events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			e.ID, e.Title, e.City, e.StartsAt.Local().Format(dateFormat), e.Price.StringFixed(2), e.Available)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\nShowing %d of %d.\n", len(list.Events), list.Total)
}

func printEvent(w io.Writer, e *cartsdk.Event) {
	fmt.Fprintf(w, "%s\n%s, %s, %s\n", e.Title, e.Venue, e.City, e.StartsAt.Local().Format(dateFormat))
	if e.Description != "" {
		fmt.Fprintf(w, "\n%s\n", e.Description)
	}
	fmt.Fprintf(w, "\nPackage price %s, %d of %d left\n", e.Price.StringFixed(2), e.Available, e.Capacity)

	if len(e.Items) == 0 {
		return
	}
	fmt.Fprintln(w)
	tw := newTable(w)
	fmt.Fprintln(tw, "ITEM\tNAME\tINCLUDED\tEACH\tOPTIONAL")
	for _, it := range e.Items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%t\n", it.ID, it.Name, it.Quantity, it.Price.StringFixed(2), it.Optional)
	}
	_ = tw.Flush()
}

func printCart(w io.Writer, c *cartsdk.Cart) {
	if len(c.Items) == 0 {
		fmt.Fprintln(w, "Your cart is empty.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ITEM\tEVENT\tQTY\tUNIT\tSUBTOTAL")
	for _, it := range c.Items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			it.ID, it.EventTitle, it.Quantity, it.UnitPrice.StringFixed(2), it.Subtotal.StringFixed(2))
	}
	fmt.Fprintf(tw, "\t\t\tTOTAL\t%s\n", c.Total.StringFixed(2))
	_ = tw.Flush()
}

func printOrders(w io.Writer, orders []cartsdk.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(w, "No orders yet.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tPLACED\tSTATUS\tITEMS\tTOTAL")
	for _, o := range orders {
		n := 0
		for _, it := range o.Items {
			n += it.Quantity
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			o.ID, o.CreatedAt.Local().Format(dateFormat), o.Status, n, o.Total.StringFixed(2))
	}
	_ = tw.Flush()
}

func printOrder(w io.Writer, o *cartsdk.Order) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Order:\t%s\n", o.ID)
	fmt.Fprintf(tw, "Status:\t%s\n", o.Status)
	fmt.Fprintf(tw, "Placed:\t%s\n", o.CreatedAt.Local().Format(time.RFC1123))
	fmt.Fprintf(tw, "Payment:\t%s\n", o.PaymentMethod)
	a := o.ShippingAddress
	fmt.Fprintf(tw, "Ship to:\t%s, %s, %s %s, %s\n", a.FullName, a.Line1, a.City, a.PostalCode, a.Country)
	_ = tw.Flush()

	fmt.Fprintln(w)
	tw = newTable(w)
	fmt.Fprintln(tw, "EVENT\tQTY\tUNIT\tSUBTOTAL")
	for _, it := range o.Items {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", it.EventTitle, it.Quantity, it.UnitPrice.StringFixed(2), it.Subtotal.StringFixed(2))
	}
	fmt.Fprintf(tw, "\t\tTOTAL\t%s\n", o.Total.StringFixed(2))
	_ = tw.Flush()
}

func printWishlist(w io.Writer, wl *cartsdk.Wishlist) {
	if len(wl.Items) == 0 {
		fmt.Fprintln(w, "Your wishlist is empty.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "EVENT\tTITLE\tSAVED")
	for _, it := range wl.Items {
		title := "(no longer listed)"
		if it.Event != nil {
			title = it.Event.Title
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", it.EventID, title, it.AddedAt.Local().Format(dateFormat))
	}
	_ = tw.Flush()
}

func printUsers(w io.Writer, users []cartsdk.User) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tADMIN")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", u.ID, u.Email, u.FullName(), u.IsAdmin)
	}
	_ = tw.Flush()
}

func printAnalytics(w io.Writer, a *cartsdk.Analytics) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Users:\t%d\n", a.TotalUsers)
	fmt.Fprintf(tw, "Orders:\t%d\n", a.TotalOrders)
	fmt.Fprintf(tw, "Revenue:\t%s\n", a.Revenue.StringFixed(2))

	statuses := make([]string, 0, len(a.OrdersByStatus))
	for s := range a.OrdersByStatus {
		statuses = append(statuses, string(s))
	}
	slices.Sort(statuses)
	for _, s := range statuses {
		fmt.Fprintf(tw, "  %s:\t%d\n", s, a.OrdersByStatus[cartsdk.OrderStatus(s)])
	}
	_ = tw.Flush()

	if len(a.TopEvents) == 0 {
		return
	}
	fmt.Fprintln(w)
	tw = newTable(w)
	fmt.Fprintln(tw, "TOP EVENT\tSOLD\tREVENUE")
	for _, e := range a.TopEvents {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", e.Title, e.Sold, e.Revenue.StringFixed(2))
	}
	_ = tw.Flush()
}
