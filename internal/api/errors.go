package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrNoCredential is returned when an authenticated call is attempted with an
// empty credential store. The request is never sent.
var ErrNoCredential = errors.New("api: no stored credential (run login first)")

// StatusError is a non-2xx backend response. The message is whatever the
// backend put in its error payload, if anything.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: backend returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api: backend returned %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

// DecodeError is a 2xx response whose body did not match the expected shape.
// It is a failure like any other: callers must not apply local state changes
// on the strength of an undecodable success.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("api: decode %s response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsUnauthenticated reports whether err means the operator has no usable
// session, either because nothing is stored or because the backend refused
// the presented token.
func IsUnauthenticated(err error) bool {
	if errors.Is(err, ErrNoCredential) {
		return true
	}
	var se *StatusError
	return errors.As(err, &se) && (se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden)
}

// IsNotFound reports whether err is the backend saying the entity no longer
// exists.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// errorMessage pulls a human-readable message out of an error payload. The
// backend is not consistent about the field name, so both observed shapes are
// tried before falling back to a body excerpt.
func errorMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if msg := gjson.GetBytes(body, "message"); msg.Exists() {
		return msg.String()
	}
	if msg := gjson.GetBytes(body, "error"); msg.Exists() {
		return msg.String()
	}
	excerpt := strings.TrimSpace(string(body))
	if len(excerpt) > 256 {
		excerpt = excerpt[:256] + "...(truncated)"
	}
	return excerpt
}
