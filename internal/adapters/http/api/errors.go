package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest      = errors.New("bad request")
	ErrNotFound        = errors.New("not found")
	ErrPayloadTooLarge = errors.New("payload too large")
)

// Kind is a stable error code returned to clients.
type Kind string

// Error kinds.
const (
	KindBadRequest      Kind = "bad_request"
	KindNotFound        Kind = "not_found"
	KindPayloadTooLarge Kind = "payload_too_large"
	KindInternal        Kind = "internal"
)

// kindError attaches a Kind to an error chain.
type kindError struct {
	kind Kind
	err  error
}

func (e *kindError) Error() string { return e.err.Error() }
func (e *kindError) Unwrap() error { return e.err }

// NewKind builds an error of the given kind from a message.
func NewKind(kind Kind, msg string) error {
	return &kindError{kind: kind, err: errors.New(msg)}
}

// Wrap prefixes err with msg, keeping it matchable with errors.Is.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// WrapKind tags err with kind.
func WrapKind(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &kindError{kind: kind, err: err}
}

// KindOf returns the kind attached to err, if any.
func KindOf(err error) (Kind, bool) {
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.kind, true
	}
	return "", false
}
