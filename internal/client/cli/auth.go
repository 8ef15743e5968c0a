package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/services"
	"github.com/dmitrijs2005/sessionkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errEmptyEmail = errors.New("email must not be empty")

const msgResetRequested = "Reset instructions requested"

// Signup prompts for email, full name and password and creates an account.
// The flow's message is printed whatever the outcome. Only input errors
// are returned.
func (a *App) Signup(ctx context.Context) error {
	email, err := a.promptEmail()
	if err != nil {
		return err
	}

	fullName, err := getSimpleText(a.reader, "Enter full name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}

	res := a.session.Signup(ctx, services.SignupCredentials{
		Email:    email,
		Password: string(password),
		FullName: fullName,
	})
	printlnFn(res.Message)
	return nil
}

// Login prompts for credentials and tries to establish a session.
func (a *App) Login(ctx context.Context) error {
	email, err := a.promptEmail()
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}

	res := a.session.Login(ctx, services.LoginCredentials{Email: email, Password: string(password)})
	printlnFn(res.Message)
	return nil
}

// RequestReset asks the server to send password reset instructions. The
// server's own message is shown when it returns one.
func (a *App) RequestReset(ctx context.Context) error {
	email, err := a.promptEmail()
	if err != nil {
		return err
	}

	res := a.session.RequestPasswordReset(ctx, services.ResetRequest{Email: email})
	if res.Err != nil {
		printlnFn("Reset request failed:", common.DisplayMessage(res.Err, "unknown error"))
		return nil
	}

	if msg := resetMessage(res.Data); msg != "" {
		printlnFn(msg)
		return nil
	}
	printlnFn(msgResetRequested)
	return nil
}

// ConfirmReset completes a password reset with the token the user received
// and, on success, logs the user in with the token the server issues.
func (a *App) ConfirmReset(ctx context.Context) error {
	resetToken, err := getPassword(os.Stdout, "Enter reset token")
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter new password")
	if err != nil {
		return err
	}

	res := a.session.ConfirmPasswordReset(ctx, services.ResetConfirm{
		ResetToken: string(resetToken),
		Password:   string(password),
	})
	printlnFn(res.Message)
	return nil
}

// Logout drops the local session. It never fails.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout()
	printlnFn("Logged out")
	return nil
}

// resetMessage picks a human-readable line out of a reset reply: a bare
// string, or the "message" field of an object.
func resetMessage(data any) string {
	switch v := data.(type) {
	case string:
		return v
	case map[string]any:
		msg, _ := v["message"].(string)
		return msg
	}
	return ""
}

func (a *App) promptEmail() (string, error) {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return "", err
	}
	if email == "" {
		return "", errEmptyEmail
	}
	return email, nil
}
