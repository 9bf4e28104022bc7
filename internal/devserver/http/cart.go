package http

import (
	"net/http"

	"github.com/aussiebroadwan/eventcart/internal/devserver/store"
	"github.com/aussiebroadwan/eventcart/pkg/cartsdk"
	"github.com/aussiebroadwan/eventcart/pkg/httpx"
)

type CartHandler struct {
	Store *store.Store
}

// HandleGet godoc
//
//	@Summary		Get the caller's cart
//	@Tags			Cart
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	cartsdk.Cart
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Router			/cart [get].
func (h *CartHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	httpx.WriteJSON(w, http.StatusOK, h.Store.GetCart(ctx, httpx.UserIDFromContext(ctx)))
}

// HandleAddItem godoc
//
//	@Summary		Add an event package to the cart
//	@Description	A package with the same event and customizations is merged into the existing line.
//	@Tags			Cart
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		cartsdk.AddCartItemRequest	true	"Package"
//	@Success		200		{object}	cartsdk.Cart
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Failure		409		{object}	httpx.ErrorResponse	"Not enough tickets"
//	@Router			/cart/items [post].
func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req cartsdk.AddCartItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	cart, err := h.Store.AddCartItem(ctx, httpx.UserIDFromContext(ctx), req)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cart)
}

// HandleUpdateItem godoc
//
//	@Summary		Change the quantity of a cart line
//	@Tags			Cart
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Cart item ID"
//	@Param			request	body		cartsdk.UpdateCartItemRequest	true	"Quantity"
//	@Success		200		{object}	cartsdk.Cart
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Router			/cart/items/{id} [put].
func (h *CartHandler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req cartsdk.UpdateCartItemRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	cart, err := h.Store.UpdateCartItem(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"), req.Quantity)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cart)
}

// HandleRemoveItem godoc
//
//	@Summary		Remove a cart line
//	@Tags			Cart
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Cart item ID"
//	@Success		200	{object}	cartsdk.Cart
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Router			/cart/items/{id} [delete].
func (h *CartHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cart, err := h.Store.RemoveCartItem(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cart)
}

// HandleClear godoc
//
//	@Summary		Empty the cart
//	@Tags			Cart
//	@Security		BearerAuth
//	@Success		204
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Router			/cart [delete].
func (h *CartHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.Store.ClearCart(ctx, httpx.UserIDFromContext(ctx))
	w.WriteHeader(http.StatusNoContent)
}
