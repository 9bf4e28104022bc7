package service

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/aussiebroadwan/eventcart/internal/devserver/store"
	"github.com/aussiebroadwan/eventcart/pkg/cartsdk"
	"github.com/aussiebroadwan/eventcart/pkg/idx"
)

// Categories used by the generated catalogue.
var Categories = []string{"concert", "conference", "festival", "sport", "theatre", "workshop"}

// SeedCatalogue fills st with n generated events. The same seed always
// produces the same titles, prices and items; IDs are always fresh.
func SeedCatalogue(ctx context.Context, st *store.Store, n int, seed uint64, now time.Time) []cartsdk.Event {
	f := gofakeit.New(seed)

	events := make([]cartsdk.Event, 0, n)
	for range n {
		capacity := f.Number(50, 500)
		e := cartsdk.Event{
			ID:          idx.New().String(),
			Title:       fmt.Sprintf("%s %s", f.Company(), f.BuzzWord()),
			Description: f.Sentence(12),
			Category:    f.RandomString(Categories),
			Venue:       f.Company() + " Hall",
			City:        f.City(),
			StartsAt:    f.DateRange(now.Add(24*time.Hour), now.Add(180*24*time.Hour)).UTC().Truncate(time.Minute),
			Price:       money(f.Price(20, 400)),
			Capacity:    capacity,
			Available:   capacity,
			ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%d/640/360", f.Number(1, 1_000_000)),
			Items:       seedItems(f),
		}
		st.PutEvent(ctx, e)
		events = append(events, e)
	}
	return events
}

func seedItems(f *gofakeit.Faker) []cartsdk.PackageItem {
	n := f.Number(1, 4)
	items := make([]cartsdk.PackageItem, 0, n)
	for i := range n {
		// The first item is the ticket itself and cannot be removed.
		optional := i > 0
		name := "Entry ticket"
		if optional {
			name = f.ProductName()
		}
		items = append(items, cartsdk.PackageItem{
			ID:          idx.New().String(),
			Name:        name,
			Description: f.Sentence(6),
			Price:       money(f.Price(5, 80)),
			Quantity:    1,
			Optional:    optional,
		})
	}
	return items
}

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
