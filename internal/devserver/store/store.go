package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aussiebroadwan/eventcart/pkg/cartsdk"
	"github.com/aussiebroadwan/eventcart/pkg/idx"
)

// maxCartQuantity caps the quantity of a single cart line.
const maxCartQuantity = 20

type UserRecord struct {
	cartsdk.User
	PasswordHash string
}

// EventFilter narrows ListEvents. Zero values match everything.
type EventFilter struct {
	Query    string
	Category string
	City     string
	Limit    int
	Offset   int
}

// Store is the in-memory state of the devserver. All methods are safe for
// concurrent use; returned values are copies.
type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	users        map[string]*UserRecord // by id
	usersByEmail map[string]string      // lower-cased email -> id

	events     map[string]*cartsdk.Event
	eventOrder []string // sorted by start time

	carts     map[string]*cartsdk.Cart // by user id
	orders    map[string]*cartsdk.Order
	orderIDs  []string // creation order
	wishlists map[string][]cartsdk.WishlistItem

	revoked map[string]time.Time // jti -> time after which it can be forgotten
}

func New(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		now:          now,
		users:        make(map[string]*UserRecord),
		usersByEmail: make(map[string]string),
		events:       make(map[string]*cartsdk.Event),
		carts:        make(map[string]*cartsdk.Cart),
		orders:       make(map[string]*cartsdk.Order),
		wishlists:    make(map[string][]cartsdk.WishlistItem),
		revoked:      make(map[string]time.Time),
	}
}

// ============================================================================
// Users
// ============================================================================

func (s *Store) CreateUser(_ context.Context, u cartsdk.User, passwordHash string) (cartsdk.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, ok := s.usersByEmail[key]; ok {
		return cartsdk.User{}, ErrEmailTaken
	}

	now := s.now().UTC()
	u.ID = idx.NewAt(now).String()
	u.CreatedAt = &now

	s.users[u.ID] = &UserRecord{User: u, PasswordHash: passwordHash}
	s.usersByEmail[key] = u.ID
	return u, nil
}

func (s *Store) UserByEmail(_ context.Context, email string) (UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByEmail[strings.ToLower(email)]
	if !ok {
		return UserRecord{}, ErrNotFound
	}
	return *s.users[id], nil
}

func (s *Store) UserByID(_ context.Context, id string) (cartsdk.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return cartsdk.User{}, ErrNotFound
	}
	return u.User, nil
}

func (s *Store) ListUsers(_ context.Context) []cartsdk.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]cartsdk.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.User)
	}
	// ULIDs sort by creation time.
	slices.SortFunc(out, func(a, b cartsdk.User) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// ============================================================================
// Catalogue
// ============================================================================

func (s *Store) PutEvent(_ context.Context, e cartsdk.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.events[e.ID]; !exists {
		s.eventOrder = append(s.eventOrder, e.ID)
	}
	s.events[e.ID] = &e

	slices.SortStableFunc(s.eventOrder, func(a, b string) int {
		return s.events[a].StartsAt.Compare(s.events[b].StartsAt)
	})
}

func (s *Store) GetEvent(_ context.Context, id string) (cartsdk.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[id]
	if !ok {
		return cartsdk.Event{}, ErrNotFound
	}
	return cloneEvent(e), nil
}

// ListEvents returns the page selected by f and the number of matches.
func (s *Store) ListEvents(_ context.Context, f EventFilter) ([]cartsdk.Event, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(f.Query)
	var matched []cartsdk.Event
	for _, id := range s.eventOrder {
		e := s.events[id]
		if f.Category != "" && !strings.EqualFold(e.Category, f.Category) {
			continue
		}
		if f.City != "" && !strings.EqualFold(e.City, f.City) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(e.Title+" "+e.Description+" "+e.Venue), q) {
			continue
		}
		matched = append(matched, cloneEvent(e))
	}

	total := len(matched)
	if f.Offset >= total {
		return []cartsdk.Event{}, total
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched, total
}

// ============================================================================
// Cart
// ============================================================================

// cartLocked returns the user's cart, creating it on first use.
func (s *Store) cartLocked(userID string) *cartsdk.Cart {
	c, ok := s.carts[userID]
	if !ok {
		c = &cartsdk.Cart{ID: idx.New().String(), Items: []cartsdk.CartItem{}, Total: decimal.Zero, UpdatedAt: s.now().UTC()}
		s.carts[userID] = c
	}
	return c
}

func (s *Store) touchLocked(c *cartsdk.Cart) {
	c.Total = cartTotal(c.Items)
	c.UpdatedAt = s.now().UTC()
}

func (s *Store) GetCart(_ context.Context, userID string) cartsdk.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCart(s.cartLocked(userID))
}

// AddCartItem adds a package to the cart. A package with the same event and
// customizations as an existing line is merged into it.
func (s *Store) AddCartItem(_ context.Context, userID string, req cartsdk.AddCartItemRequest) (cartsdk.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.events[req.EventID]
	if !ok {
		return cartsdk.Cart{}, fmt.Errorf("event %s: %w", req.EventID, ErrNotFound)
	}
	unit, err := unitPrice(e, req.Customizations)
	if err != nil {
		return cartsdk.Cart{}, err
	}

	c := s.cartLocked(userID)

	i := slices.IndexFunc(c.Items, func(it cartsdk.CartItem) bool {
		return it.EventID == req.EventID && sameCustomizations(it.Customizations, req.Customizations)
	})

	qty := req.Quantity
	if i >= 0 {
		qty += c.Items[i].Quantity
	}
	if qty > maxCartQuantity {
		return cartsdk.Cart{}, fmt.Errorf("%w: at most %d per line", ErrSoldOut, maxCartQuantity)
	}
	if qty > e.Available {
		return cartsdk.Cart{}, ErrSoldOut
	}

	if i >= 0 {
		c.Items[i].Quantity = qty
		c.Items[i].UnitPrice = unit
		c.Items[i].Subtotal = lineSubtotal(unit, qty)
	} else {
		c.Items = append(c.Items, cartsdk.CartItem{
			ID:             idx.New().String(),
			EventID:        e.ID,
			EventTitle:     e.Title,
			Quantity:       qty,
			UnitPrice:      unit,
			Subtotal:       lineSubtotal(unit, qty),
			Customizations: slices.Clone(req.Customizations),
		})
	}

	s.touchLocked(c)
	return cloneCart(c), nil
}

func (s *Store) UpdateCartItem(_ context.Context, userID, itemID string, qty int) (cartsdk.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartLocked(userID)
	i := slices.IndexFunc(c.Items, func(it cartsdk.CartItem) bool { return it.ID == itemID })
	if i < 0 {
		return cartsdk.Cart{}, fmt.Errorf("cart item %s: %w", itemID, ErrNotFound)
	}

	if e, ok := s.events[c.Items[i].EventID]; ok && qty > e.Available {
		return cartsdk.Cart{}, ErrSoldOut
	}

	c.Items[i].Quantity = qty
	c.Items[i].Subtotal = lineSubtotal(c.Items[i].UnitPrice, qty)
	s.touchLocked(c)
	return cloneCart(c), nil
}

func (s *Store) RemoveCartItem(_ context.Context, userID, itemID string) (cartsdk.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartLocked(userID)
	i := slices.IndexFunc(c.Items, func(it cartsdk.CartItem) bool { return it.ID == itemID })
	if i < 0 {
		return cartsdk.Cart{}, fmt.Errorf("cart item %s: %w", itemID, ErrNotFound)
	}

	c.Items = slices.Delete(c.Items, i, i+1)
	s.touchLocked(c)
	return cloneCart(c), nil
}

func (s *Store) ClearCart(_ context.Context, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartLocked(userID)
	c.Items = []cartsdk.CartItem{}
	s.touchLocked(c)
}

// ============================================================================
// Orders
// ============================================================================

// Checkout turns the user's cart into a pending order, reserving tickets and
// emptying the cart. Nothing changes if any line cannot be fulfilled.
func (s *Store) Checkout(_ context.Context, userID string, req cartsdk.CheckoutRequest) (cartsdk.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cartLocked(userID)
	if len(c.Items) == 0 {
		return cartsdk.Order{}, ErrCartEmpty
	}

	need := make(map[string]int)
	for _, it := range c.Items {
		need[it.EventID] += it.Quantity
	}
	for eventID, qty := range need {
		e, ok := s.events[eventID]
		if !ok {
			return cartsdk.Order{}, fmt.Errorf("event %s: %w", eventID, ErrNotFound)
		}
		if qty > e.Available {
			return cartsdk.Order{}, fmt.Errorf("%s: %w", e.Title, ErrSoldOut)
		}
	}
	for eventID, qty := range need {
		s.events[eventID].Available -= qty
	}

	now := s.now().UTC()
	o := &cartsdk.Order{
		ID:              idx.NewAt(now).String(),
		UserID:          userID,
		Total:           cartTotal(c.Items),
		Status:          cartsdk.OrderPending,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, it := range c.Items {
		o.Items = append(o.Items, cartsdk.OrderItem{
			EventID:        it.EventID,
			EventTitle:     it.EventTitle,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			Subtotal:       it.Subtotal,
			Customizations: slices.Clone(it.Customizations),
		})
	}

	s.orders[o.ID] = o
	s.orderIDs = append(s.orderIDs, o.ID)

	c.Items = []cartsdk.CartItem{}
	s.touchLocked(c)
	return cloneOrder(o), nil
}

// ListOrders returns the orders of userID, or of everyone when userID is
// empty, newest first.
func (s *Store) ListOrders(_ context.Context, userID string) []cartsdk.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []cartsdk.Order{}
	for i := len(s.orderIDs) - 1; i >= 0; i-- {
		o := s.orders[s.orderIDs[i]]
		if userID == "" || o.UserID == userID {
			out = append(out, cloneOrder(o))
		}
	}
	return out
}

// GetOrder returns an order. A non-empty userID restricts the lookup to
// that user's orders.
func (s *Store) GetOrder(_ context.Context, userID, orderID string) (cartsdk.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[orderID]
	if !ok || (userID != "" && o.UserID != userID) {
		return cartsdk.Order{}, ErrNotFound
	}
	return cloneOrder(o), nil
}

var orderTransitions = map[cartsdk.OrderStatus][]cartsdk.OrderStatus{
	cartsdk.OrderPending:   {cartsdk.OrderConfirmed, cartsdk.OrderCancelled},
	cartsdk.OrderConfirmed: {cartsdk.OrderShipped, cartsdk.OrderCancelled},
	cartsdk.OrderShipped:   {cartsdk.OrderDelivered},
}

// UpdateOrderStatus moves an order along its lifecycle. Cancelling releases
// the reserved tickets.
func (s *Store) UpdateOrderStatus(_ context.Context, orderID string, status cartsdk.OrderStatus) (cartsdk.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return cartsdk.Order{}, ErrNotFound
	}
	if o.Status == status {
		return cloneOrder(o), nil
	}
	if !slices.Contains(orderTransitions[o.Status], status) {
		return cartsdk.Order{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, o.Status, status)
	}

	if status == cartsdk.OrderCancelled {
		for _, it := range o.Items {
			if e, ok := s.events[it.EventID]; ok {
				e.Available += it.Quantity
			}
		}
	}

	o.Status = status
	o.UpdatedAt = s.now().UTC()
	return cloneOrder(o), nil
}

// ============================================================================
// Wishlist
// ============================================================================

func (s *Store) GetWishlist(_ context.Context, userID string) cartsdk.Wishlist {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wishlistLocked(userID)
}

func (s *Store) wishlistLocked(userID string) cartsdk.Wishlist {
	items := s.wishlists[userID]
	w := cartsdk.Wishlist{Items: make([]cartsdk.WishlistItem, 0, len(items))}
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		if e, ok := s.events[it.EventID]; ok {
			ev := cloneEvent(e)
			it.Event = &ev
		}
		w.Items = append(w.Items, it)
	}
	return w
}

// AddToWishlist saves an event. Saving it again is a no-op.
func (s *Store) AddToWishlist(_ context.Context, userID, eventID string) (cartsdk.Wishlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[eventID]; !ok {
		return cartsdk.Wishlist{}, fmt.Errorf("event %s: %w", eventID, ErrNotFound)
	}
	items := s.wishlists[userID]
	if !slices.ContainsFunc(items, func(it cartsdk.WishlistItem) bool { return it.EventID == eventID }) {
		s.wishlists[userID] = append(items, cartsdk.WishlistItem{EventID: eventID, AddedAt: s.now().UTC()})
	}
	return s.wishlistLocked(userID), nil
}

// RemoveFromWishlist drops an event. Removing an absent event is a no-op.
func (s *Store) RemoveFromWishlist(_ context.Context, userID, eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wishlists[userID] = slices.DeleteFunc(s.wishlists[userID], func(it cartsdk.WishlistItem) bool {
		return it.EventID == eventID
	})
}

// ============================================================================
// Analytics
// ============================================================================

// Analytics summarises sales. Cancelled orders are excluded from revenue and
// top events.
func (s *Store) Analytics(_ context.Context, top int) cartsdk.Analytics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a := cartsdk.Analytics{
		TotalUsers:     len(s.users),
		TotalOrders:    len(s.orders),
		Revenue:        decimal.Zero,
		OrdersByStatus: make(map[cartsdk.OrderStatus]int),
	}

	sales := make(map[string]*cartsdk.EventSales)
	for _, o := range s.orders {
		a.OrdersByStatus[o.Status]++
		if o.Status == cartsdk.OrderCancelled {
			continue
		}
		a.Revenue = a.Revenue.Add(o.Total)
		for _, it := range o.Items {
			es, ok := sales[it.EventID]
			if !ok {
				es = &cartsdk.EventSales{EventID: it.EventID, Title: it.EventTitle, Revenue: decimal.Zero}
				sales[it.EventID] = es
			}
			es.Sold += it.Quantity
			es.Revenue = es.Revenue.Add(it.Subtotal)
		}
	}

	for _, es := range sales {
		a.TopEvents = append(a.TopEvents, *es)
	}
	slices.SortFunc(a.TopEvents, func(x, y cartsdk.EventSales) int {
		if c := y.Revenue.Cmp(x.Revenue); c != 0 {
			return c
		}
		return cmp.Compare(x.EventID, y.EventID)
	})
	if top > 0 && len(a.TopEvents) > top {
		a.TopEvents = a.TopEvents[:top]
	}
	return a
}

// ============================================================================
// Token revocation
// ============================================================================

// Revoke denies the token id until forgetAfter, after which the token has
// expired anyway.
func (s *Store) Revoke(_ context.Context, jti string, forgetAfter time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = forgetAfter
}

// RevokeIfAbsent revokes jti and reports whether this call did so. It
// returns false when jti was already revoked.
func (s *Store) RevokeIfAbsent(_ context.Context, jti string, forgetAfter time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.revoked[jti]; ok {
		return false
	}
	s.revoked[jti] = forgetAfter
	return true
}

func (s *Store) IsRevoked(jti string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.revoked[jti]
	return ok
}

// PurgeRevoked forgets revocations that can no longer matter and returns how
// many were removed.
func (s *Store) PurgeRevoked(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for jti, until := range s.revoked {
		if now.After(until) {
			delete(s.revoked, jti)
			n++
		}
	}
	return n
}

// ============================================================================
// Copies
// ============================================================================

func cloneEvent(e *cartsdk.Event) cartsdk.Event {
	out := *e
	out.Items = slices.Clone(e.Items)
	return out
}

func cloneCart(c *cartsdk.Cart) cartsdk.Cart {
	out := *c
	out.Items = make([]cartsdk.CartItem, len(c.Items))
	for i, it := range c.Items {
		it.Customizations = slices.Clone(it.Customizations)
		out.Items[i] = it
	}
	return out
}

func cloneOrder(o *cartsdk.Order) cartsdk.Order {
	out := *o
	out.Items = make([]cartsdk.OrderItem, len(o.Items))
	for i, it := range o.Items {
		it.Customizations = slices.Clone(it.Customizations)
		out.Items[i] = it
	}
	return out
}
