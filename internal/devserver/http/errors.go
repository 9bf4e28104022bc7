package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/eventcart/internal/devserver/store"
	"github.com/aussiebroadwan/eventcart/pkg/cartsdk"
	"github.com/aussiebroadwan/eventcart/pkg/httpx"
	"github.com/aussiebroadwan/eventcart/pkg/slogx"
)

// decodeAndValidate reads the JSON body into v and runs the request
// validation rules. It writes the 400 itself and returns false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpx.DecodeJSON(w, r, v); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return false
	}
	if err := cartsdk.ValidateRequest(v); err != nil {
		var verr *cartsdk.ValidationError
		if errors.As(err, &verr) {
			httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{
				Error:   "validation_failed",
				Message: "request validation failed",
				Details: verr.Fields,
			})
			return false
		}
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return false
	}
	return true
}

// writeStoreError maps store errors onto HTTP responses.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, store.ErrEmailTaken):
		httpx.WriteError(w, http.StatusConflict, "email_taken", err.Error())
	case errors.Is(err, store.ErrInvalidLogin):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, store.ErrCartEmpty):
		httpx.WriteError(w, http.StatusConflict, "cart_empty", err.Error())
	case errors.Is(err, store.ErrSoldOut):
		httpx.WriteError(w, http.StatusConflict, "sold_out", err.Error())
	case errors.Is(err, store.ErrBadCustomization):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_customization", err.Error())
	case errors.Is(err, store.ErrInvalidTransition):
		httpx.WriteError(w, http.StatusConflict, "invalid_transition", err.Error())
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "internal server error")
	}
}
