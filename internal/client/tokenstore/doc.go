// Package tokenstore persists the session access token across restarts.
//
// Store is the synchronous facade used by the rest of the client: Read,
// Write and Clear never return errors. It sits on a Backend (SQLite,
// plain file, Redis or memory). The first backend failure switches the
// Store into a degraded mode for the rest of the process: reads report no
// token and writes are dropped, so the session behaves as unauthenticated
// instead of surfacing storage problems to the user.
package tokenstore
