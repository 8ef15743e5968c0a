package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/models"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/services"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/session"
	"github.com/dmitrijs2005/sessionkeeper/internal/logging"
)

type fakeSession struct {
	state    session.State
	result   services.FlowResult
	reset    services.ResetRequestResult
	profile  *models.Profile
	profErr  error
	claims   *session.Claims
	claimErr error

	signup    services.SignupCredentials
	login     services.LoginCredentials
	resetReq  services.ResetRequest
	confirm   services.ResetConfirm
	logouts   int
	refetches int
	subs      int
}

func (f *fakeSession) State() session.State { return f.state }

func (f *fakeSession) establish() services.FlowResult {
	if f.result.Token != "" {
		f.state = session.Authenticated
	}
	return f.result
}

func (f *fakeSession) Signup(_ context.Context, c services.SignupCredentials) services.FlowResult {
	f.signup = c
	return f.establish()
}

func (f *fakeSession) Login(_ context.Context, c services.LoginCredentials) services.FlowResult {
	f.login = c
	return f.establish()
}

func (f *fakeSession) RequestPasswordReset(_ context.Context, r services.ResetRequest) services.ResetRequestResult {
	f.resetReq = r
	return f.reset
}

func (f *fakeSession) ConfirmPasswordReset(_ context.Context, r services.ResetConfirm) services.FlowResult {
	f.confirm = r
	return f.establish()
}

func (f *fakeSession) Logout() {
	f.logouts++
	f.state = session.Unauthenticated
}

func (f *fakeSession) Profile(context.Context) (*models.Profile, error) {
	if f.state == session.Unauthenticated {
		return nil, session.ErrNotAuthenticated
	}
	return f.profile, f.profErr
}

func (f *fakeSession) CurrentProfile() *models.Profile {
	if f.state == session.Unauthenticated {
		return nil
	}
	return f.profile
}

func (f *fakeSession) RefetchProfile() { f.refetches++ }

func (f *fakeSession) Claims() (*session.Claims, error) { return f.claims, f.claimErr }

func (f *fakeSession) Subscribe(func(session.Snapshot)) func() {
	f.subs++
	return func() { f.subs-- }
}

func newTestApp(f *fakeSession) *App {
	return &App{session: f, log: logging.NewDiscard()}
}

// captureOutput replaces printlnFn and returns the printed lines.
func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

// stubInputs answers text prompts from texts and password prompts from
// secrets, in order.
func stubInputs(t *testing.T, texts []string, secrets [][]byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		s := texts[0]
		texts = texts[1:]
		return s, nil
	}
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		if len(secrets) == 0 {
			return nil, io.EOF
		}
		s := secrets[0]
		secrets = secrets[1:]
		return s, nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}
