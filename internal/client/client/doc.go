// Package client is the outbound side of the POS client: one configured HTTP
// client bound to the back-office base URL, plus the local database bootstrap.
//
// # Overview
//
// NewHTTPClient is the one-time configuration step; there is no package-level
// instance and no lazy fallback. Verb helpers (Get, Post, Put, Update, Delete)
// issue exactly one request each, attach the shared Authorization/Accept
// headers set by SetAuthHeader, and return the buffered *Response on a 2xx
// status.
//
// # Error Handling
//
// Any other outcome is returned as a *ResponseError. It keeps the response
// (nil for transport failures) so callers can read the status and the
// {success, data, errorMessage} envelope, and it matches the sentinel errors
// with errors.Is: ErrUnauthorized, ErrForbidden, ErrNotFound, ErrUnavailable,
// ErrRequestFailed.
//
// A 401 runs the hook registered with OnUnauthorized (the session purges
// itself and asks for a new login). Other failures are reported to the
// configured notify.Notifier.
//
// # Diagnostics
//
// With WithDebug every call logs "<METHOD> SUCCESS|FAIL - <resource>" with the
// request ID, status and payload. Every call is recorded by the
// metrics.Recorder and tagged with an X-Request-ID header.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Header changes apply to requests
// started after the change. All requests honor ctx.
package client
