package cartsdk

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================================
// Users and authentication
// ============================================================================

// User is the profile returned by login and registration. It is mirrored into
// the credential store so it survives restarts.
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	IsAdmin   bool       `json:"is_admin"`
	Phone     string     `json:"phone,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

func (u *User) validate() error {
	if u.ID == "" {
		return errMissing("id")
	}
	if u.Email == "" {
		return errMissing("email")
	}
	return nil
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,e164"`
}

// AuthResponse is returned by login and registration.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

func (r *AuthResponse) validate() error {
	if r.AccessToken == "" {
		return errMissing("access_token")
	}
	if err := r.User.validate(); err != nil {
		return errNested("user", err)
	}
	return nil
}

// RefreshRequest is the body of POST /auth/refresh-token.
type RefreshRequest struct {
	Email    string `json:"email" validate:"required"`
	OldToken string `json:"oldToken" validate:"required"`
}

// RefreshResponse carries the replacement token.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

func (r *RefreshResponse) validate() error {
	if r.AccessToken == "" {
		return errMissing("access_token")
	}
	return nil
}

// VerifyRequest is the body of POST /auth/verify-token.
type VerifyRequest struct {
	Token string `json:"token" validate:"required"`
}

// VerifyResponse reports whether a token is still accepted by the backend.
type VerifyResponse struct {
	Valid *bool `json:"valid"`
}

func (r *VerifyResponse) validate() error {
	if r.Valid == nil {
		return errMissing("valid")
	}
	return nil
}

// ============================================================================
// Catalogue
// ============================================================================

// PackageItem is one bundled item of an event package. Optional items may be
// dropped or have their quantity changed through cart customizations.
type PackageItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Optional    bool            `json:"optional"`
}

// Event is an event package in the catalogue.
type Event struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Venue       string          `json:"venue"`
	City        string          `json:"city"`
	StartsAt    time.Time       `json:"starts_at"`
	Price       decimal.Decimal `json:"price"`
	Capacity    int             `json:"capacity"`
	Available   int             `json:"available"`
	ImageURL    string          `json:"image_url,omitempty"`
	Items       []PackageItem   `json:"items,omitempty"`
}

func (e *Event) validate() error {
	if e.ID == "" {
		return errMissing("id")
	}
	if e.Title == "" {
		return errMissing("title")
	}
	return nil
}

// ListEventsOptions filters GET /events. Zero values are omitted.
type ListEventsOptions struct {
	Query    string
	Category string
	City     string
	Limit    int
	Offset   int
}

// EventList is a page of events.
type EventList struct {
	Events []Event `json:"events"`
	Total  int     `json:"total"`
}

func (l *EventList) validate() error {
	for i := range l.Events {
		if err := l.Events[i].validate(); err != nil {
			return errNested("events", err)
		}
	}
	return nil
}

// ============================================================================
// Cart
// ============================================================================

// Customization overrides the quantity of one package item. A quantity of
// zero removes an optional item.
type Customization struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=0,max=50"`
}

// CartItem is one event package in the cart.
type CartItem struct {
	ID             string          `json:"id"`
	EventID        string          `json:"event_id"`
	EventTitle     string          `json:"event_title"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Customizations []Customization `json:"customizations,omitempty"`
}

// Cart is the caller's server-side cart.
type Cart struct {
	ID        string          `json:"id"`
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (c *Cart) validate() error {
	if c.ID == "" {
		return errMissing("id")
	}
	for _, it := range c.Items {
		if it.ID == "" || it.EventID == "" {
			return errNested("items", errMissing("id"))
		}
	}
	return nil
}

// ItemCount sums the quantities of all cart items.
func (c *Cart) ItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// AddCartItemRequest is the body of POST /cart/items.
type AddCartItemRequest struct {
	EventID        string          `json:"event_id" validate:"required"`
	Quantity       int             `json:"quantity" validate:"min=1,max=20"`
	Customizations []Customization `json:"customizations,omitempty" validate:"omitempty,dive"`
}

// UpdateCartItemRequest is the body of PUT /cart/items/{id}.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=1,max=20"`
}

// ============================================================================
// Orders
// ============================================================================

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Address is a shipping address.
type Address struct {
	FullName   string `json:"full_name" validate:"required,max=200"`
	Line1      string `json:"line1" validate:"required,max=200"`
	Line2      string `json:"line2,omitempty" validate:"max=200"`
	City       string `json:"city" validate:"required,max=100"`
	State      string `json:"state,omitempty" validate:"max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	Country    string `json:"country" validate:"required,len=2"`
}

// Payment methods accepted at checkout.
const (
	PaymentCard    = "card"
	PaymentPayPal  = "paypal"
	PaymentInvoice = "invoice"
)

// CheckoutRequest is the body of POST /orders. The order is built from the
// current cart, which is emptied on success.
type CheckoutRequest struct {
	ShippingAddress Address `json:"shipping_address"`
	PaymentMethod   string  `json:"payment_method" validate:"required,oneof=card paypal invoice"`
}

// OrderItem is a cart item frozen at checkout.
type OrderItem struct {
	EventID        string          `json:"event_id"`
	EventTitle     string          `json:"event_title"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Customizations []Customization `json:"customizations,omitempty"`
}

// Order is a placed order.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Items           []OrderItem     `json:"items"`
	Total           decimal.Decimal `json:"total"`
	Status          OrderStatus     `json:"status"`
	ShippingAddress Address         `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (o *Order) validate() error {
	if o.ID == "" {
		return errMissing("id")
	}
	if !o.Status.Valid() {
		return errInvalid("status", string(o.Status))
	}
	return nil
}

// OrderList is the response of GET /orders and GET /admin/orders.
type OrderList struct {
	Orders []Order `json:"orders"`
}

func (l *OrderList) validate() error {
	for i := range l.Orders {
		if err := l.Orders[i].validate(); err != nil {
			return errNested("orders", err)
		}
	}
	return nil
}

// ============================================================================
// Wishlist
// ============================================================================

// WishlistItem is a saved event.
type WishlistItem struct {
	EventID string    `json:"event_id"`
	Event   *Event    `json:"event,omitempty"`
	AddedAt time.Time `json:"added_at"`
}

// Wishlist is the caller's saved events, most recent first.
type Wishlist struct {
	Items []WishlistItem `json:"items"`
}

func (w *Wishlist) validate() error {
	for _, it := range w.Items {
		if it.EventID == "" {
			return errNested("items", errMissing("event_id"))
		}
	}
	return nil
}

// Contains reports whether eventID is on the wishlist.
func (w *Wishlist) Contains(eventID string) bool {
	for _, it := range w.Items {
		if it.EventID == eventID {
			return true
		}
	}
	return false
}

// AddWishlistRequest is the body of POST /users/me/wishlist.
type AddWishlistRequest struct {
	EventID string `json:"event_id" validate:"required"`
}

// ============================================================================
// Admin
// ============================================================================

// UserList is the response of GET /admin/users.
type UserList struct {
	Users []User `json:"users"`
}

func (l *UserList) validate() error {
	for i := range l.Users {
		if err := l.Users[i].validate(); err != nil {
			return errNested("users", err)
		}
	}
	return nil
}

// EventSales summarises the sales of one event.
type EventSales struct {
	EventID string          `json:"event_id"`
	Title   string          `json:"title"`
	Sold    int             `json:"sold"`
	Revenue decimal.Decimal `json:"revenue"`
}

// Analytics is the response of GET /admin/analytics.
type Analytics struct {
	TotalUsers     int                 `json:"total_users"`
	TotalOrders    int                 `json:"total_orders"`
	Revenue        decimal.Decimal     `json:"revenue"`
	OrdersByStatus map[OrderStatus]int `json:"orders_by_status"`
	TopEvents      []EventSales        `json:"top_events"`
}

// UpdateOrderStatusRequest is the body of PUT /admin/orders/{id}/status.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending confirmed shipped delivered cancelled"`
}
