// Package services contains application services for the SessionKeeper client.
// This file defines the credential flows: signup, login and the two steps of
// a password reset.
package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/client"
	"github.com/dmitrijs2005/sessionkeeper/internal/common"
	"github.com/dmitrijs2005/sessionkeeper/internal/logging"
)

const (
	msgLoginSuccessful = "Login successful"
	msgLoginFailed     = "Login failed"
	msgResetSuccess    = "Success"
)

// LoginCredentials are sent as username/password form fields.
type LoginCredentials struct {
	Email    string
	Password string
}

// SignupCredentials are sent as email/full_name/password form fields.
type SignupCredentials struct {
	Email    string
	Password string
	FullName string
}

// ResetRequest asks the server to start a password reset for Email.
type ResetRequest struct {
	Email string
}

// ResetConfirm completes a reset. ResetToken is the short-lived value issued
// by the server; it authorizes this one request and is never persisted.
type ResetConfirm struct {
	ResetToken string
	Password   string
}

// FlowResult is returned by every session-establishing flow. Token is empty
// unless the server issued one.
type FlowResult struct {
	Token   string
	Message string
}

// ResetRequestResult carries either the decoded reply or the failure. Data
// holds whatever JSON value the server returned.
type ResetRequestResult struct {
	Data any
	Err  error
}

// TokenWriter is the part of the token store the flows need.
type TokenWriter interface {
	Write(token string)
}

// AuthService defines the credential flows.
//
// Contract:
//   - no method returns an error or panics on a failed call; failures are
//     reported inside the result;
//   - the token store is written only after the server confirmed success
//     with a non-empty access token;
//   - RequestPasswordReset never touches the token store.
type AuthService interface {
	Signup(ctx context.Context, creds SignupCredentials) FlowResult
	Login(ctx context.Context, creds LoginCredentials) FlowResult
	RequestPasswordReset(ctx context.Context, req ResetRequest) ResetRequestResult
	ConfirmPasswordReset(ctx context.Context, req ResetConfirm) FlowResult
}

// authService is the concrete AuthService backed by a Requester and a
// token store.
type authService struct {
	api    client.Requester
	tokens TokenWriter
	log    logging.Logger
}

// NewAuthService constructs an AuthService bound to the given gateway and store.
func NewAuthService(api client.Requester, tokens TokenWriter, log logging.Logger) AuthService {
	if log == nil {
		log = logging.NewDiscard()
	}
	return &authService{api: api, tokens: tokens, log: log.With("component", "auth")}
}

// tokenReply is the success body of the session-establishing endpoints.
type tokenReply struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	Message     *string `json:"message"`
}

var formHeaders = map[string]string{"Content-Type": "application/x-www-form-urlencoded"}

func (a *authService) Signup(ctx context.Context, creds SignupCredentials) FlowResult {
	form := url.Values{}
	form.Set("email", creds.Email)
	form.Set("full_name", creds.FullName)
	form.Set("password", creds.Password)

	return a.establish(ctx, "signup", creds.Email, client.PathSignup, form, formHeaders)
}

func (a *authService) Login(ctx context.Context, creds LoginCredentials) FlowResult {
	form := url.Values{}
	form.Set("username", creds.Email)
	form.Set("password", creds.Password)

	return a.establish(ctx, "login", creds.Email, client.PathLogin, form, formHeaders)
}

// establish runs a signup/login call and persists the issued token.
func (a *authService) establish(ctx context.Context, flow, email, path string, form url.Values, headers map[string]string) FlowResult {
	reply, err := a.postToken(ctx, path, form, headers)
	if err != nil {
		a.log.Warn(ctx, flow+" failed", "email", email, "error", err)
		return FlowResult{Message: common.DisplayMessage(err, msgLoginFailed)}
	}

	if reply.AccessToken != "" {
		a.tokens.Write(reply.AccessToken)
	}
	a.log.Info(ctx, flow+" succeeded", "email", email, "token_issued", reply.AccessToken != "")

	return FlowResult{Token: reply.AccessToken, Message: messageOr(reply.Message, msgLoginSuccessful)}
}

func (a *authService) RequestPasswordReset(ctx context.Context, req ResetRequest) ResetRequestResult {
	form := url.Values{}
	form.Set("email", req.Email)

	raw, err := a.api.Request(ctx, client.PathResetPassword, http.MethodPost, form, formHeaders)
	if err != nil {
		a.log.Warn(ctx, "password reset request failed", "email", req.Email, "error", err)
		return ResetRequestResult{Err: err}
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		a.log.Warn(ctx, "password reset reply undecodable", "email", req.Email, "error", err)
		return ResetRequestResult{Err: err}
	}

	a.log.Info(ctx, "password reset requested", "email", req.Email)
	return ResetRequestResult{Data: data}
}

func (a *authService) ConfirmPasswordReset(ctx context.Context, req ResetConfirm) FlowResult {
	form := url.Values{}
	form.Set("password", req.Password)

	headers := map[string]string{
		common.AuthorizationHeaderName: common.BearerPrefix + req.ResetToken,
		"Content-Type":                 "application/x-www-form-urlencoded",
	}

	reply, err := a.postToken(ctx, client.PathConfirmResetPassword, form, headers)
	if err != nil {
		a.log.Warn(ctx, "password reset confirmation failed", "error", err)
		return FlowResult{Message: err.Error()}
	}

	if reply.AccessToken != "" {
		a.tokens.Write(reply.AccessToken)
	}
	a.log.Info(ctx, "password reset confirmed", "token_issued", reply.AccessToken != "")

	return FlowResult{Token: reply.AccessToken, Message: messageOr(reply.Message, msgResetSuccess)}
}

func (a *authService) postToken(ctx context.Context, path string, form url.Values, headers map[string]string) (*tokenReply, error) {
	raw, err := a.api.Request(ctx, path, http.MethodPost, form, headers)
	if err != nil {
		return nil, err
	}

	var reply tokenReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func messageOr(msg *string, fallback string) string {
	if msg == nil {
		return fallback
	}
	return *msg
}
