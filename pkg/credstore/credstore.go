// Package credstore persists the bearer token and the serialized user profile
// of an EventCart session so that it survives process restarts.
//
// A Store behaves like two entries of browser local storage: "token" and
// "user". Either both are present and usable, or Get reports ErrNotFound.
package credstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Get when either entry is absent or the user
	// entry cannot be parsed.
	ErrNotFound = errors.New("credstore: not found")

	// ErrIncomplete is returned by Set when the user or the token is empty.
	ErrIncomplete = errors.New("credstore: user and token are both required")
)

// Credentials is what a Store holds. User is the profile as structured text.
type Credentials struct {
	Token string
	User  json.RawMessage
}

// DecodeUser unmarshals the stored profile into v.
func (c Credentials) DecodeUser(v any) error {
	if err := json.Unmarshal(c.User, v); err != nil {
		return fmt.Errorf("credstore: decode user: %w", err)
	}
	return nil
}

// Store is the persistent credential store.
type Store interface {
	// Get returns both entries, or ErrNotFound if either is missing. A user
	// entry that fails to parse is removed and reported as ErrNotFound.
	Get(ctx context.Context) (Credentials, error)

	// Set writes both entries. No reader observes one updated without the other.
	Set(ctx context.Context, user json.RawMessage, token string) error

	// Clear removes both entries. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// ValidUser reports whether raw parses as a JSON object. Drivers call it on
// read to decide whether the user entry is usable.
func ValidUser(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return false
	}
	var probe map[string]json.RawMessage
	return json.Unmarshal(raw, &probe) == nil
}

// CheckSet validates the arguments of Set. Drivers call it before writing.
func CheckSet(user json.RawMessage, token string) error {
	if token == "" || len(bytes.TrimSpace(user)) == 0 {
		return ErrIncomplete
	}
	return nil
}
