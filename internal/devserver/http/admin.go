package http

import (
	"net/http"

	"github.com/aussiebroadwan/eventcart/internal/devserver/store"
	"github.com/aussiebroadwan/eventcart/pkg/cartsdk"
	"github.com/aussiebroadwan/eventcart/pkg/httpx"
	"github.com/aussiebroadwan/eventcart/pkg/slogx"
)

const topEvents = 5

type AdminHandler struct {
	Store *store.Store
}

// HandleListUsers godoc
//
//	@Summary		List all accounts
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	cartsdk.UserList
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Failure		403	{object}	httpx.ErrorResponse
//	@Router			/admin/users [get].
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, cartsdk.UserList{Users: h.Store.ListUsers(r.Context())})
}

// HandleListOrders godoc
//
//	@Summary		List every order, newest first
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	cartsdk.OrderList
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Failure		403	{object}	httpx.ErrorResponse
//	@Router			/admin/orders [get].
func (h *AdminHandler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, cartsdk.OrderList{Orders: h.Store.ListOrders(r.Context(), "")})
}

// HandleUpdateOrderStatus godoc
//
//	@Summary		Move an order along its lifecycle
//	@Description	pending -> confirmed|cancelled, confirmed -> shipped|cancelled, shipped -> delivered.
//	@Description	Cancelling releases the reserved tickets.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Order ID"
//	@Param			request	body		cartsdk.UpdateOrderStatusRequest	true	"New status"
//	@Success		200		{object}	cartsdk.Order
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		403		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Failure		409		{object}	httpx.ErrorResponse	"Transition not allowed"
//	@Router			/admin/orders/{id}/status [put].
func (h *AdminHandler) HandleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req cartsdk.UpdateOrderStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.Store.UpdateOrderStatus(ctx, r.PathValue("id"), req.Status)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	slogx.FromContext(ctx).Info("order status changed",
		"order_id", order.ID,
		"status", order.Status,
		"by", httpx.UserIDFromContext(ctx),
	)
	httpx.WriteJSON(w, http.StatusOK, order)
}

// HandleAnalytics godoc
//
//	@Summary		Sales summary
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	cartsdk.Analytics
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Failure		403	{object}	httpx.ErrorResponse
//	@Router			/admin/analytics [get].
func (h *AdminHandler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.Store.Analytics(r.Context(), topEvents))
}
