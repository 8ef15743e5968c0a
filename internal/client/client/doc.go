// Package client is the HTTP request gateway of the SessionKeeper client.
//
// # Overview
//
// Requester is the transport contract used by the credential flows and the
// profile cache: a path, a method, an optional form body and extra headers
// in; the raw JSON reply out. HTTPClient implements it on net/http and
// injects the stored session token as a bearer Authorization header when
// the caller did not supply one.
//
// # Error Handling
//
// Every failure is a *common.Error:
//   - network/IO failures: KindTransport, errors.Is(err, ErrUnavailable);
//   - HTTP 422: KindValidation with the decoded field errors;
//   - any other non-2xx: KindTransport with Status and the server detail;
//     401/403 also match ErrUnauthorized.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Calls honor ctx cancellation in
// addition to the configured per-request timeout.
package client
