// Package cli provides the interactive SessionKeeper command-line client.
//
// It wires configuration, the token store, the API gateway, the credential
// flows, the profile cache and the session into an App, and runs a small
// REPL on top of it.
//
// Commands:
//   - signup / login: establish a session
//   - reset / confirm-reset: the two steps of a password reset
//   - whoami / refresh: show or reload the account profile
//   - status: session state and token expiry
//   - logout: drop the session locally
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
