package http

import (
	"net/http"

	"github.com/aussiebroadwan/eventcart/internal/devserver/store"
	"github.com/aussiebroadwan/eventcart/pkg/cartsdk"
	"github.com/aussiebroadwan/eventcart/pkg/httpx"
)

type WishlistHandler struct {
	Store *store.Store
}

// HandleGet godoc
//
//	@Summary		Get the caller's wishlist, most recent first
//	@Tags			Wishlist
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	cartsdk.Wishlist
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Router			/users/me/wishlist [get].
func (h *WishlistHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	httpx.WriteJSON(w, http.StatusOK, h.Store.GetWishlist(ctx, httpx.UserIDFromContext(ctx)))
}

// HandleAdd godoc
//
//	@Summary		Save an event to the wishlist
//	@Tags			Wishlist
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		cartsdk.AddWishlistRequest	true	"Event"
//	@Success		200		{object}	cartsdk.Wishlist
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Router			/users/me/wishlist [post].
func (h *WishlistHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req cartsdk.AddWishlistRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	wl, err := h.Store.AddToWishlist(ctx, httpx.UserIDFromContext(ctx), req.EventID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, wl)
}

// HandleRemove godoc
//
//	@Summary		Remove an event from the wishlist
//	@Tags			Wishlist
//	@Security		BearerAuth
//	@Param			event_id	path	string	true	"Event ID"
//	@Success		204
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Router			/users/me/wishlist/{event_id} [delete].
func (h *WishlistHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.Store.RemoveFromWishlist(ctx, httpx.UserIDFromContext(ctx), r.PathValue("event_id"))
	w.WriteHeader(http.StatusNoContent)
}
