package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/eventcart/internal/devserver/store"
	"github.com/aussiebroadwan/eventcart/pkg/cartsdk"
	"github.com/aussiebroadwan/eventcart/pkg/httpx"
	"github.com/aussiebroadwan/eventcart/pkg/slogx"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type EventsHandler struct {
	Store *store.Store
}

// HandleList godoc
//
//	@Summary		List catalogue events
//	@Tags			Events
//	@Produce		json
//	@Param			q			query		string	false	"Free-text search over title, description and venue"
//	@Param			category	query		string	false	"Category"
//	@Param			city		query		string	false	"City"
//	@Param			limit		query		int		false	"Page size (max 100)"
//	@Param			offset		query		int		false	"Page offset"
//	@Success		200			{object}	cartsdk.EventList
//	@Failure		400			{object}	httpx.ErrorResponse
//	@Router			/events [get].
func (h *EventsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, ok := queryInt(q.Get("limit"), defaultPageSize)
	if !ok || limit < 1 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "limit must be a positive integer")
		return
	}
	offset, ok := queryInt(q.Get("offset"), 0)
	if !ok || offset < 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "offset must be a non-negative integer")
		return
	}

	events, total := h.Store.ListEvents(r.Context(), store.EventFilter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		City:     q.Get("city"),
		Limit:    min(limit, maxPageSize),
		Offset:   offset,
	})

	httpx.WriteJSON(w, http.StatusOK, cartsdk.EventList{Events: events, Total: total})
}

// HandleGet godoc
//
//	@Summary		Get one event with its package items
//	@Tags			Events
//	@Produce		json
//	@Param			id	path		string	true	"Event ID"
//	@Success		200	{object}	cartsdk.Event
//	@Failure		404	{object}	httpx.ErrorResponse
//	@Router			/events/{id} [get].
func (h *EventsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	e, err := h.Store.GetEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	if uid := httpx.UserIDFromContext(r.Context()); uid != "" {
		slogx.FromContext(r.Context()).Debug("event viewed", "event_id", e.ID, "user_id", uid)
	}
	httpx.WriteJSON(w, http.StatusOK, e)
}

func queryInt(s string, def int) (int, bool) {
	if s == "" {
		return def, true
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}
