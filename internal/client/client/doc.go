// Package client talks to the CameYa backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): Login,
//     Register, VerifyEmail, ResendVerification, the two profile completion
//     calls, the job feed, and Ping.
//  2. A JSON-over-HTTP implementation (see HTTPClient) that attaches the
//     bearer token from a TokenSource, tags every request with an
//     X-Request-ID, and maps HTTP status codes to sentinel errors.
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError carrying the backend's
// message. APIError unwraps to a sentinel so callers can match the common
// cases with errors.Is: ErrUnauthorized, ErrForbidden, ErrRejected,
// ErrUnavailable. Transport failures are ErrUnavailable as well.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation and deadlines.
package client
