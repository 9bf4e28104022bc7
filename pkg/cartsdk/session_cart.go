package cartsdk

import (
	"context"
	"net/url"
)

// GetCart returns the caller's cart.
func (s *Session) GetCart(ctx context.Context) (*Cart, error) {
	var cart Cart
	if err := s.Get(ctx, "/cart", &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart adds an event package to the cart and returns the updated cart.
func (s *Session) AddToCart(ctx context.Context, req AddCartItemRequest) (*Cart, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	var cart Cart
	if err := s.Post(ctx, "/cart/items", req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateCartItem sets the quantity of a cart item.
func (s *Session) UpdateCartItem(ctx context.Context, itemID string, quantity int) (*Cart, error) {
	req := UpdateCartItemRequest{Quantity: quantity}
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	var cart Cart
	if err := s.Put(ctx, "/cart/items/"+url.PathEscape(itemID), req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveCartItem deletes a cart item and returns the updated cart.
func (s *Session) RemoveCartItem(ctx context.Context, itemID string) (*Cart, error) {
	var cart Cart
	if err := s.Delete(ctx, "/cart/items/"+url.PathEscape(itemID), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ClearCart empties the cart.
func (s *Session) ClearCart(ctx context.Context) error {
	return s.Delete(ctx, "/cart", nil)
}
