package cartsdk

import (
	"context"
	"net/url"
)

// Checkout places an order for the current cart contents.
func (s *Session) Checkout(ctx context.Context, req CheckoutRequest) (*Order, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	var order Order
	if err := s.Post(ctx, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns the caller's orders, newest first.
func (s *Session) ListOrders(ctx context.Context) ([]Order, error) {
	var list OrderList
	if err := s.Get(ctx, "/orders", &list); err != nil {
		return nil, err
	}
	return list.Orders, nil
}

// GetOrder returns one of the caller's orders.
func (s *Session) GetOrder(ctx context.Context, id string) (*Order, error) {
	var order Order
	if err := s.Get(ctx, "/orders/"+url.PathEscape(id), &order); err != nil {
		return nil, err
	}
	return &order, nil
}
