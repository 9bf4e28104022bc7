package store

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrEmailTaken        = errors.New("email already registered")
	ErrInvalidLogin      = errors.New("invalid email or password")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrSoldOut           = errors.New("not enough tickets available")
	ErrBadCustomization  = errors.New("invalid customization")
	ErrInvalidTransition = errors.New("invalid order status transition")
)
