// Package common contains shared constants and sentinel errors used across
// SessionKeeper components.
package common

// AccessTokenStorageKey is the single well-known key under which the
// session access token is persisted.
const AccessTokenStorageKey = "session-access-token"

// AuthorizationHeaderName is the HTTP header carrying bearer credentials
// on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token value in AuthorizationHeaderName.
const BearerPrefix = "Bearer "
