package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	failOn   string

	calls []string
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	if name == f.failOn {
		return errors.New(name + " failed")
	}
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Signup(ctx context.Context) error {
	return f.record("signup")
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) RequestReset(ctx context.Context) error { return f.record("reset") }
func (f *fakeExec) ConfirmReset(ctx context.Context) error { return f.record("confirm-reset") }
func (f *fakeExec) WhoAmI(ctx context.Context) error       { return f.record("whoami") }
func (f *fakeExec) Refresh(ctx context.Context) error      { return f.record("refresh") }
func (f *fakeExec) Status(ctx context.Context) error       { return f.record("status") }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := captureOutput(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"signup",
		"login",
		"help",
		"",
		"whoami",
		"refresh",
		"status",
		"foobar",
		"logout",
		"reset",
		"confirm-reset",
		"exit",
		"login",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input))

	assert.Equal(t, []string{
		"signup", "login", "whoami", "refresh", "status", "logout", "reset", "confirm-reset",
	}, exec.calls)
	assert.Contains(t, *out, "Available commands: signup, login, reset, confirm-reset, status, exit")
	assert.Contains(t, *out, "Available commands: whoami, refresh, status, logout, confirm-reset, exit")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "sk (status)> ")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_HandlerErrorKeepsLoop(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{failOn: "whoami"}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("whoami\nstatus\n")))

	assert.Equal(t, []string{"whoami", "status"}, exec.calls)
	assert.Contains(t, *out, "Error: whoami failed")
}

func TestRunREPL_QuitAndEOF(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("quit\nlogout\n")))
	assert.Empty(t, exec.calls)

	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("")))
	assert.Empty(t, exec.calls)
}
