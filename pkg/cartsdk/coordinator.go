package cartsdk

import (
	"context"
	"errors"
	"sync"
)

// refreshCoordinator serialises token refreshes for a Session.
//
// It is IDLE when refreshing is false. The first eligible 401 flips it to
// REFRESHING and its goroutine (the leader) performs the refresh. Any 401
// arriving while REFRESHING is queued and suspended. On success the leader
// replays its own request and then every queued request in arrival order
// before returning to IDLE. On failure the store is cleared, every queued
// caller gets ErrSessionExpired and the session-expired hooks run.
type refreshCoordinator struct {
	session *Session

	mu         sync.Mutex
	refreshing bool
	queue      []*pendingRequest
}

// pendingRequest is a request suspended until the in-flight refresh ends.
// req is nil for callers that only wait for the refresh itself.
type pendingRequest struct {
	ctx  context.Context
	req  *request
	done chan result
}

type result struct {
	body []byte
	err  error
}

// handle takes over a request that got unauthorized. r and unauthorized are
// nil when called from Session.Refresh.
func (c *refreshCoordinator) handle(ctx context.Context, r *request, unauthorized error) ([]byte, error) {
	logger := c.session.client.Logger

	c.mu.Lock()
	if c.refreshing {
		p := &pendingRequest{ctx: ctx, req: r, done: make(chan result, 1)}
		c.queue = append(c.queue, p)
		depth := len(c.queue)
		c.mu.Unlock()

		c.session.client.Metrics.observeQueued()
		if r != nil {
			logger.Debug("request queued behind refresh", "op", r.op(), "depth", depth)
		}

		select {
		case res := <-p.done:
			return res.body, res.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	// The request went out before a refresh that has since completed.
	// Replaying it with the current token is its one retry.
	if r != nil {
		if current := c.session.Token(); current != "" && current != r.token {
			c.mu.Unlock()
			logger.Debug("replaying request sent with stale token", "op", r.op())
			return c.session.replay(ctx, r)
		}
	}

	c.refreshing = true
	gen := c.session.generation()
	c.mu.Unlock()

	// Queued callers depend on this refresh, so the leader's cancellation
	// must not abort it.
	refreshCtx := context.WithoutCancel(ctx)

	if err := c.session.refresh(refreshCtx, gen); err != nil {
		c.session.client.Metrics.observeRefresh("failure")
		c.fail(refreshCtx, gen, err)

		if r == nil {
			return nil, err
		}
		if errors.Is(err, ErrNoCredentials) {
			return nil, &AuthError{Reason: ErrNoCredentials, Err: unauthorized}
		}
		return nil, unauthorized
	}
	c.session.client.Metrics.observeRefresh("success")

	var res result
	if r != nil {
		res.body, res.err = c.session.replay(ctx, r)
	}
	c.drain()
	return res.body, res.err
}

// drain replays queued requests one at a time in FIFO order and returns the
// coordinator to IDLE once the queue is empty. Requests queued while draining
// are replayed in the same pass.
func (c *refreshCoordinator) drain() {
	for {
		c.mu.Lock()
		if len(c.queue) == 0 {
			c.refreshing = false
			c.queue = nil
			c.mu.Unlock()
			return
		}
		p := c.queue[0]
		c.queue = c.queue[1:]
		c.mu.Unlock()

		switch {
		case p.req == nil:
			p.done <- result{}
		case p.ctx.Err() != nil:
			p.done <- result{err: p.ctx.Err()}
		default:
			body, err := c.session.replay(p.ctx, p.req)
			p.done <- result{body: body, err: err}
		}
	}
}

// fail ends a refresh cycle that could not produce a token. gen is the
// credential generation the cycle started from.
func (c *refreshCoordinator) fail(ctx context.Context, gen uint64, cause error) {
	logger := c.session.client.Logger

	notify := true
	if errors.Is(cause, errStoreUnreadable) {
		logger.Warn("credential store unreadable, leaving it in place", "err", cause)
	} else {
		cleared, err := c.session.clearIfCurrent(ctx, gen)
		if err != nil {
			logger.Error("failed to clear credentials after refresh failure", "err", err)
		}
		// Not cleared means a logout or login got there first. That caller
		// owns the store now and no session expired.
		notify = cleared || err != nil
	}

	c.mu.Lock()
	queued := c.queue
	c.queue = nil
	c.refreshing = false
	c.mu.Unlock()

	expired := &AuthError{Reason: ErrSessionExpired, Err: cause}
	for _, p := range queued {
		p.done <- result{err: expired}
	}

	if !notify {
		logger.Info("refresh discarded, session changed", "rejected", len(queued))
		return
	}
	logger.Warn("session expired", "err", cause, "rejected", len(queued))
	c.session.notifyExpired(ctx, cause)
}
