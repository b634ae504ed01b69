package salesapi

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput indicates an input record failed validation before any request was sent.
var ErrInvalidInput = errors.New("invalid input")

// StatusError reports a response with a non-2xx status code.
// Body holds the raw response body for callers that want the server's message.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
	Body       []byte
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Status)
	if detail := e.Detail(); detail != "" {
		msg += ": " + detail
	}
	return msg
}

// Detail returns the "error" field of a JSON error body, or the trimmed raw body.
func (e *StatusError) Detail() string {
	var body struct {
		Error string `json:"error"`
	}
	if err := decodeJSON(e.Body, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(e.Body))
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not a *StatusError.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
