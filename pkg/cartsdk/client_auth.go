package cartsdk

import (
	"context"
	"net/http"
)

// Auth endpoints. None of these carry a bearer token except Logout, and none
// go through the refresh path.

// Login exchanges an email and password for an access token and profile.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	req := LoginRequest{Email: email, Password: password}
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	var resp AuthResponse
	if err := c.call(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns its first access token.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	var resp AuthResponse
	if err := c.call(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RefreshToken exchanges oldToken for a new access token.
func (c *SDKClient) RefreshToken(ctx context.Context, email, oldToken string) (*RefreshResponse, error) {
	req := RefreshRequest{Email: email, OldToken: oldToken}
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	var resp RefreshResponse
	if err := c.call(ctx, http.MethodPost, "/auth/refresh-token", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyToken asks the backend whether token is still valid.
func (c *SDKClient) VerifyToken(ctx context.Context, token string) (bool, error) {
	req := VerifyRequest{Token: token}
	if err := ValidateRequest(req); err != nil {
		return false, err
	}

	var resp VerifyResponse
	if err := c.call(ctx, http.MethodPost, "/auth/verify-token", req, &resp); err != nil {
		return false, err
	}
	return *resp.Valid, nil
}

// Logout tells the backend to forget token. The backend answers 204.
func (c *SDKClient) Logout(ctx context.Context, token string) error {
	r := &request{method: http.MethodPost, path: "/auth/logout", token: token}
	_, err := c.send(ctx, r)
	return err
}
