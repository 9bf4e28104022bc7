package store

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/aussiebroadwan/eventcart/pkg/cartsdk"
)

// unitPrice prices one package of event with the given customizations.
// The event price covers the default quantity of every package item; each
// customization adds or subtracts whole items at the item price. Only optional
// items may go below their default quantity.
func unitPrice(event *cartsdk.Event, custom []cartsdk.Customization) (decimal.Decimal, error) {
	price := event.Price
	seen := make(map[string]bool, len(custom))

	for _, c := range custom {
		if seen[c.ItemID] {
			return decimal.Zero, fmt.Errorf("%w: item %s listed twice", ErrBadCustomization, c.ItemID)
		}
		seen[c.ItemID] = true

		i := slices.IndexFunc(event.Items, func(it cartsdk.PackageItem) bool { return it.ID == c.ItemID })
		if i < 0 {
			return decimal.Zero, fmt.Errorf("%w: unknown item %s", ErrBadCustomization, c.ItemID)
		}
		item := event.Items[i]

		if c.Quantity < item.Quantity && !item.Optional {
			return decimal.Zero, fmt.Errorf("%w: item %s is not optional", ErrBadCustomization, c.ItemID)
		}

		delta := decimal.NewFromInt(int64(c.Quantity - item.Quantity))
		price = price.Add(item.Price.Mul(delta))
	}

	if price.IsNegative() {
		price = decimal.Zero
	}
	return price.Round(2), nil
}

// sameCustomizations reports whether a and b describe the same package,
// ignoring order.
func sameCustomizations(a, b []cartsdk.Customization) bool {
	if len(a) != len(b) {
		return false
	}
	want := make(map[string]int, len(a))
	for _, c := range a {
		want[c.ItemID] = c.Quantity
	}
	for _, c := range b {
		if q, ok := want[c.ItemID]; !ok || q != c.Quantity {
			return false
		}
	}
	return true
}

func cartTotal(items []cartsdk.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}
	return total
}

func lineSubtotal(unit decimal.Decimal, qty int) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(qty)))
}
