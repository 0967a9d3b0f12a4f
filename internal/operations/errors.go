package operations

import (
	"errors"
	"fmt"

	"github.com/tessera-db/tessera/internal/ring"
	"github.com/tessera-db/tessera/internal/schema"
)

var (
	// ErrInvalidRequest covers every validation failure. The context names the rule.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNotFound is returned when a targeted read finds nothing, or the keyspace or
	// column family of a request does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable is returned for a consistency level this node cannot satisfy.
	ErrUnavailable = errors.New("unavailable")
)

// Error wraps a sentinel error with additional context
type Error struct {
	err     error  // The underlying sentinel error
	context string // Additional error context
}

// Error satisfies the error interface
func (e *Error) Error() string {
	if e.context == "" {
		return e.err.Error()
	}
	return fmt.Sprintf("%s: %s", e.err.Error(), e.context)
}

// Unwrap implements the errors.Unwrap interface for compatibility with errors.Is/As
func (e *Error) Unwrap() error {
	return e.err
}

// newError creates a new operations error with context
func newError(err error, format string, args ...interface{}) *Error {
	return &Error{
		err:     err,
		context: fmt.Sprintf(format, args...),
	}
}

func invalidf(format string, args ...interface{}) *Error {
	return newError(ErrInvalidRequest, format, args...)
}

// schemaError translates a schema registry failure into an operations error.
func schemaError(err error) error {
	switch {
	case errors.Is(err, schema.ErrNotFound):
		return newError(ErrNotFound, "%s", stripSentinel(err, schema.ErrNotFound))
	case errors.Is(err, schema.ErrExists), errors.Is(err, schema.ErrInvalidDefinition):
		return newError(ErrInvalidRequest, "%s", err.Error())
	}
	return err
}

func rangeError(err error) error {
	if errors.Is(err, ring.ErrInvalidRange) {
		return newError(ErrInvalidRequest, "%s", stripSentinel(err, ring.ErrInvalidRange))
	}
	return err
}

// stripSentinel drops the "sentinel: " prefix the registry puts in front of its messages.
func stripSentinel(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}

// errorKind labels err for metrics.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	}
	return "internal"
}
