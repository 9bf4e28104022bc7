package cartsdk

import (
	"context"
	"net/url"
	"strconv"
)

// Catalogue operations. The catalogue is readable without logging in; a
// token is attached when the session has one.

// ListEvents returns a page of events matching opts.
func (s *Session) ListEvents(ctx context.Context, opts ListEventsOptions) (*EventList, error) {
	q := url.Values{}
	if opts.Query != "" {
		q.Set("q", opts.Query)
	}
	if opts.Category != "" {
		q.Set("category", opts.Category)
	}
	if opts.City != "" {
		q.Set("city", opts.City)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}

	path := "/events"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var list EventList
	if err := s.Get(ctx, path, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetEvent returns a single event with its package items.
func (s *Session) GetEvent(ctx context.Context, id string) (*Event, error) {
	var event Event
	if err := s.Get(ctx, "/events/"+url.PathEscape(id), &event); err != nil {
		return nil, err
	}
	return &event, nil
}
