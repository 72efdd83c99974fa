// Package observability wires optional Sentry error reporting.
// File: observability/sentry.go
package observability

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry initialises Sentry when a DSN is configured. The returned
// closer flushes buffered events; call it on shutdown.
func InitSentry(dsn, env, release string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     release,
	}); err != nil {
		return func() {}, err
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// CaptureErr reports a non-nil error.
func CaptureErr(err error) {
	if err != nil {
		sentry.CaptureException(err)
	}
}
