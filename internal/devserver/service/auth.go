package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/eventcart/internal/devserver/store"
	"github.com/aussiebroadwan/eventcart/pkg/cartsdk"
	"github.com/aussiebroadwan/eventcart/pkg/cryptox"
)

type AuthService struct {
	Store  *store.Store
	Tokens *TokenService
}

// Register creates a customer account and signs it in.
func (s *AuthService) Register(ctx context.Context, req cartsdk.RegisterRequest) (cartsdk.AuthResponse, error) {
	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return cartsdk.AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.Store.CreateUser(ctx, cartsdk.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}, hash)
	if err != nil {
		return cartsdk.AuthResponse{}, err
	}

	return s.signIn(u)
}

// Login checks the password and returns a fresh token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (cartsdk.AuthResponse, error) {
	rec, err := s.Store.UserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return cartsdk.AuthResponse{}, store.ErrInvalidLogin
	}
	if err != nil {
		return cartsdk.AuthResponse{}, err
	}

	if err := cryptox.VerifyPassword(password, rec.PasswordHash); err != nil {
		return cartsdk.AuthResponse{}, store.ErrInvalidLogin
	}

	return s.signIn(rec.User)
}

// EnsureAdmin creates the admin account unless the email is already taken.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (cartsdk.User, error) {
	if rec, err := s.Store.UserByEmail(ctx, email); err == nil {
		return rec.User, nil
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return cartsdk.User{}, fmt.Errorf("hash password: %w", err)
	}
	return s.Store.CreateUser(ctx, cartsdk.User{
		Email:     email,
		FirstName: "EventCart",
		LastName:  "Admin",
		IsAdmin:   true,
	}, hash)
}

func (s *AuthService) signIn(u cartsdk.User) (cartsdk.AuthResponse, error) {
	token, err := s.Tokens.Issue(u)
	if err != nil {
		return cartsdk.AuthResponse{}, err
	}
	return cartsdk.AuthResponse{AccessToken: token, User: u}, nil
}
