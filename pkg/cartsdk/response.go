package cartsdk

import (
	"encoding/json"
	"errors"
	"fmt"
)

// validatable is implemented by response types that check their own shape
// after decoding.
type validatable interface {
	validate() error
}

type fieldError struct {
	path   string
	reason string
}

func (e *fieldError) Error() string { return e.path + ": " + e.reason }

func errMissing(field string) error { return &fieldError{path: field, reason: "missing"} }

func errInvalid(field, value string) error {
	return &fieldError{path: field, reason: fmt.Sprintf("invalid value %q", value)}
}

func errNested(parent string, err error) error {
	var fe *fieldError
	if errors.As(err, &fe) {
		return &fieldError{path: parent + "." + fe.path, reason: fe.reason}
	}
	return fmt.Errorf("%s: %w", parent, err)
}

// decodeJSON unmarshals a 2xx body into target and validates it. Any failure
// is reported as a *MalformedResponseError for op.
func decodeJSON(op string, body []byte, target any) error {
	if target == nil {
		return nil
	}
	if len(body) == 0 {
		return &MalformedResponseError{Op: op, Reason: "empty body"}
	}
	if err := json.Unmarshal(body, target); err != nil {
		return &MalformedResponseError{Op: op, Reason: "failed to decode response", Err: err}
	}
	if v, ok := target.(validatable); ok {
		if err := v.validate(); err != nil {
			return &MalformedResponseError{Op: op, Reason: err.Error()}
		}
	}
	return nil
}
