package cartsdk

import (
	"context"
	"net/url"
)

// GetWishlist returns the caller's wishlist.
func (s *Session) GetWishlist(ctx context.Context) (*Wishlist, error) {
	var w Wishlist
	if err := s.Get(ctx, "/users/me/wishlist", &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// AddToWishlist saves an event. Adding an event twice is not an error.
func (s *Session) AddToWishlist(ctx context.Context, eventID string) (*Wishlist, error) {
	req := AddWishlistRequest{EventID: eventID}
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	var w Wishlist
	if err := s.Post(ctx, "/users/me/wishlist", req, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// RemoveFromWishlist drops an event from the wishlist.
func (s *Session) RemoveFromWishlist(ctx context.Context, eventID string) error {
	return s.Delete(ctx, "/users/me/wishlist/"+url.PathEscape(eventID), nil)
}
