package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/eventcart/internal/devserver/service"
	"github.com/aussiebroadwan/eventcart/pkg/cartsdk"
	"github.com/aussiebroadwan/eventcart/pkg/cryptox"
	"github.com/aussiebroadwan/eventcart/pkg/httpx"
	"github.com/aussiebroadwan/eventcart/pkg/slogx"
)

type AuthHandler struct {
	AuthService  *service.AuthService
	TokenService *service.TokenService
}

// HandleRegister godoc
//
//	@Summary		Register a customer account
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		cartsdk.RegisterRequest	true	"Account details"
//	@Success		201		{object}	cartsdk.AuthResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		409		{object}	httpx.ErrorResponse	"Email already registered"
//	@Router			/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req cartsdk.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.AuthService.Register(r.Context(), req)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("user registered", "user_id", resp.User.ID)
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

// HandleLogin godoc
//
//	@Summary		Sign in with email and password
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		cartsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	cartsdk.AuthResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		401		{object}	httpx.ErrorResponse	"Invalid credentials"
//	@Failure		429		{object}	httpx.ErrorResponse
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req cartsdk.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleRefresh godoc
//
//	@Summary		Exchange an access token for a new one
//	@Description	Accepts a token up to the refresh grace window after it expires. The old token is revoked.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		cartsdk.RefreshRequest	true	"Email and current token"
//	@Success		200		{object}	cartsdk.RefreshResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		401		{object}	httpx.ErrorResponse	"Token cannot be refreshed"
//	@Router			/auth/refresh-token [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req cartsdk.RefreshRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, err := h.TokenService.Refresh(ctx, req.Email, req.OldToken)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenRevoked),
		errors.Is(err, service.ErrRefreshExpired):
		log.Info("refresh rejected", "old", cryptox.FingerprintToken(req.OldToken), "err", err)
		httpx.WriteBearerError(w, err.Error())
		return
	default:
		writeStoreError(w, r, err)
		return
	}

	log.Debug("token refreshed",
		"old", cryptox.FingerprintToken(req.OldToken),
		"new", cryptox.FingerprintToken(token),
	)
	httpx.WriteJSON(w, http.StatusOK, cartsdk.RefreshResponse{AccessToken: token})
}

// HandleVerify godoc
//
//	@Summary		Check whether a token is currently accepted
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		cartsdk.VerifyRequest	true	"Token"
//	@Success		200		{object}	cartsdk.VerifyResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Router			/auth/verify-token [post].
func (h *AuthHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req cartsdk.VerifyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	valid := h.TokenService.Verify(req.Token)
	httpx.WriteJSON(w, http.StatusOK, cartsdk.VerifyResponse{Valid: &valid})
}

// HandleLogout godoc
//
//	@Summary		Revoke the bearer token
//	@Description	Always succeeds, also without or with an invalid token.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Success		204
//	@Router			/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if raw := httpx.BearerToken(r); raw != "" {
		h.TokenService.Revoke(r.Context(), raw)
	}
	w.WriteHeader(http.StatusNoContent)
}
