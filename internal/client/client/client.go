package client

import (
	"context"
	"encoding/json"
	"net/url"
)

// API paths relative to the configured base URL.
const (
	PathSignup               = "/accounts/signup"
	PathLogin                = "/accounts/login"
	PathResetPassword        = "/accounts/reset-password"
	PathConfirmResetPassword = "/accounts/confirm-reset-password"
	PathProfileMe            = "/accounts/profile/me"
)

// Requester performs one API call and returns the raw JSON reply body.
//
// A non-nil body is sent form-encoded. headers are applied verbatim; when
// they carry no Authorization the implementation may inject the stored
// session token. Failures are *common.Error values.
type Requester interface {
	Request(ctx context.Context, path, method string, body url.Values, headers map[string]string) (json.RawMessage, error)
}

// TokenSource yields the current session token for header injection.
type TokenSource interface {
	Read() (string, bool)
}
