/*
Package cartsdk provides a client SDK for the EventCart API.

# Overview

The package is organized around two types:

  - SDKClient: the transport and the unauthenticated auth endpoints
  - Session: authenticated operations with transparent token refresh

Create an SDKClient and a Session backed by a credential store:

	client := cartsdk.NewSDKClient("https://api.eventcart.example",
		cartsdk.WithLogger(logger),
		cartsdk.WithRateLimit(20, 5),
	)
	session := client.NewSession(credstore.NewMemory())

	// Pick up credentials persisted by an earlier run.
	user, err := session.Load(ctx)

	// Or log in.
	user, err = session.Login(ctx, "a@b.com", "password")

Feature calls attach the bearer token automatically:

	events, err := session.ListEvents(ctx, cartsdk.ListEventsOptions{Category: "music"})
	cart, err := session.AddToCart(ctx, cartsdk.AddCartItemRequest{EventID: id, Quantity: 2})
	order, err := session.Checkout(ctx, req)

# Token Refresh

When a request is answered with 401 the Session refreshes the token by
posting the stored email and old token to /auth/refresh-token. At most one
refresh is in flight per Session. Requests that get 401 while it runs are
suspended and replayed, in arrival order, with the new token. A replayed
request that gets 401 again is returned to its caller as is.

If the refresh fails the credential store is cleared, suspended requests
fail with ErrSessionExpired and the hooks registered with OnSessionExpired
run. The request that triggered the refresh fails with its original 401.
If the store held no credentials the refresh fails without a network call
and the error matches both ErrNoCredentials and *HTTPError.

# Error Handling

	var httpErr *cartsdk.HTTPError
	var netErr *cartsdk.NetworkError
	var vErr *cartsdk.ValidationError
	switch {
	case errors.Is(err, cartsdk.ErrSessionExpired):
		// back to the login screen
	case errors.As(err, &vErr):
		// request payload rejected before sending
	case errors.As(err, &httpErr):
		// non-2xx from the backend
	case errors.As(err, &netErr):
		// backend unreachable
	}

Successful responses are checked for required fields; a body that fails the
check is reported as *MalformedResponseError.

# Thread Safety

SDKClient and Session are safe for concurrent use by multiple goroutines.
*/
package cartsdk
