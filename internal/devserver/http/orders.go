package http

import (
	"net/http"

	"github.com/aussiebroadwan/eventcart/internal/devserver/store"
	"github.com/aussiebroadwan/eventcart/pkg/cartsdk"
	"github.com/aussiebroadwan/eventcart/pkg/httpx"
	"github.com/aussiebroadwan/eventcart/pkg/slogx"
)

type OrdersHandler struct {
	Store   *store.Store
	Metrics *Metrics
}

// HandleCheckout godoc
//
//	@Summary		Place an order for everything in the cart
//	@Description	Reserves the tickets, creates a pending order and empties the cart.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		cartsdk.CheckoutRequest	true	"Shipping and payment"
//	@Success		201		{object}	cartsdk.Order
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		409		{object}	httpx.ErrorResponse	"Cart empty or sold out"
//	@Router			/orders [post].
func (h *OrdersHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req cartsdk.CheckoutRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.Store.Checkout(ctx, httpx.UserIDFromContext(ctx), req)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	h.Metrics.orderPlaced(order)
	slogx.FromContext(ctx).Info("order placed", "order_id", order.ID, "total", order.Total.String())
	httpx.WriteJSON(w, http.StatusCreated, order)
}

// HandleList godoc
//
//	@Summary		List the caller's orders, newest first
//	@Tags			Orders
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	cartsdk.OrderList
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Router			/orders [get].
func (h *OrdersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orders := h.Store.ListOrders(ctx, httpx.UserIDFromContext(ctx))
	httpx.WriteJSON(w, http.StatusOK, cartsdk.OrderList{Orders: orders})
}

// HandleGet godoc
//
//	@Summary		Get one of the caller's orders
//	@Tags			Orders
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Order ID"
//	@Success		200	{object}	cartsdk.Order
//	@Failure		401	{object}	httpx.ErrorResponse
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Router			/orders/{id} [get].
func (h *OrdersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	order, err := h.Store.GetOrder(ctx, httpx.UserIDFromContext(ctx), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, order)
}
