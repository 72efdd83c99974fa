// Package services holds the business rules behind every portal operation:
// authorization, rate limiting, the application state machine, and the
// admin/stats surface.
// File: services/errors.go
package services

import (
	"errors"
	"fmt"
	"time"

	"recruit-portal/logger"
	"recruit-portal/observability"
)

// captureErr forwards opaque failures to Sentry. Indirected so tests can
// observe the hook firing.
var captureErr = observability.CaptureErr

// ErrorKind classifies a failed operation. Handlers map kinds to HTTP
// status codes; messages are safe to show to the UI as-is.
type ErrorKind int

const (
	// KindUnauthenticated: no or invalid session.
	KindUnauthenticated ErrorKind = iota
	// KindUnauthorized: authenticated but wrong role or ownership.
	KindUnauthorized
	// KindValidation: malformed input.
	KindValidation
	// KindRateLimited: too many attempts; RetryAfter is set.
	KindRateLimited
	// KindConflict: duplicate application / unique violation.
	KindConflict
	// KindNotFound: referenced domain or application absent.
	KindNotFound
	// KindPrecondition: system frozen, or the application cap reached.
	KindPrecondition
	// KindStorage: opaque store failure; detail goes to the log only.
	KindStorage
)

// Error is the result value every failing operation returns. No check
// leaves partial side effects behind; the first failing check wins.
type Error struct {
	Kind       ErrorKind
	Message    string
	RetryAfter time.Duration // set only for KindRateLimited
}

func (e *Error) Error() string { return e.Message }

// KindOf extracts the kind from err, defaulting to KindStorage for
// anything that is not a services.Error.
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindStorage
}

func errUnauthenticated() error {
	return &Error{Kind: KindUnauthenticated, Message: "Not authenticated"}
}

func errUnauthorized(msg string) error {
	if msg == "" {
		msg = "Unauthorized"
	}
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func errValidation(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func errRateLimited(retryAfter time.Duration) error {
	wait := int(retryAfter.Round(time.Second).Seconds())
	if wait < 1 {
		wait = 1
	}
	return &Error{
		Kind:       KindRateLimited,
		Message:    fmt.Sprintf("Too many requests. Please wait %ds before trying again.", wait),
		RetryAfter: retryAfter,
	}
}

func errConflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

func errNotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func errPrecondition(msg string) error {
	return &Error{Kind: KindPrecondition, Message: msg}
}

// errStorage logs the real failure and hands the caller a generic message;
// driver error text must never reach the client.
func errStorage(op string, err error) error {
	logger.Error.Printf("%s: storage failure: %v", op, err)
	captureErr(err)
	return &Error{Kind: KindStorage, Message: "Something went wrong, please try again"}
}
