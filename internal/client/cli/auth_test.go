package cli

import (
	"context"
	"io"
	"testing"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/services"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/session"
	"github.com/dmitrijs2005/sessionkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup_Success(t *testing.T) {
	out := captureOutput(t)
	pw := []byte("secret")
	stubInputs(t, []string{"alice@example.org", "Alice"}, [][]byte{pw})

	f := &fakeSession{result: services.FlowResult{Token: "T", Message: "Login successful"}}
	a := newTestApp(f)

	require.NoError(t, a.Signup(context.Background()))

	assert.Equal(t, services.SignupCredentials{Email: "alice@example.org", Password: "secret", FullName: "Alice"}, f.signup)
	assert.Equal(t, []string{"Login successful"}, *out)
	assert.Equal(t, session.Authenticated, f.state)
}

func TestLogin_FailurePrintsMessage(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, []string{"bob@example.org"}, [][]byte{[]byte("bad")})

	f := &fakeSession{result: services.FlowResult{Message: "Invalid credentials"}}
	a := newTestApp(f)

	require.NoError(t, a.Login(context.Background()))

	assert.Equal(t, "bob@example.org", f.login.Email)
	assert.Equal(t, "bad", f.login.Password)
	assert.Equal(t, []string{"Invalid credentials"}, *out)
	assert.Equal(t, session.Unauthenticated, f.state)
}

func TestLogin_EmptyEmail(t *testing.T) {
	stubInputs(t, []string{""}, nil)
	f := &fakeSession{}

	err := newTestApp(f).Login(context.Background())
	assert.ErrorIs(t, err, errEmptyEmail)
	assert.Empty(t, f.login.Email)
}

func TestLogin_PasswordInputError(t *testing.T) {
	stubInputs(t, []string{"a@b.c"}, nil)
	f := &fakeSession{}

	err := newTestApp(f).Login(context.Background())
	assert.ErrorIs(t, err, io.EOF)
	assert.Empty(t, f.login.Email)
}

func TestRequestReset(t *testing.T) {
	tests := []struct {
		name  string
		reset services.ResetRequestResult
		want  string
	}{
		{
			name:  "server message",
			reset: services.ResetRequestResult{Data: map[string]any{"message": "Check your inbox"}},
			want:  "Check your inbox",
		},
		{
			name:  "no message",
			reset: services.ResetRequestResult{Data: map[string]any{}},
			want:  msgResetRequested,
		},
		{
			name:  "bare string",
			reset: services.ResetRequestResult{Data: "Email sent"},
			want:  "Email sent",
		},
		{
			name:  "array reply",
			reset: services.ResetRequestResult{Data: []any{"x"}},
			want:  msgResetRequested,
		},
		{
			name:  "failure",
			reset: services.ResetRequestResult{Err: common.NewTransportError(404, "User not found", nil)},
			want:  "Reset request failed: User not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureOutput(t)
			stubInputs(t, []string{"a@b.c"}, nil)
			f := &fakeSession{reset: tt.reset}

			require.NoError(t, newTestApp(f).RequestReset(context.Background()))

			assert.Equal(t, "a@b.c", f.resetReq.Email)
			assert.Equal(t, []string{tt.want}, *out)
		})
	}
}

func TestConfirmReset(t *testing.T) {
	out := captureOutput(t)
	tok, pw := []byte("R1"), []byte("newpw")
	stubInputs(t, nil, [][]byte{tok, pw})

	f := &fakeSession{result: services.FlowResult{Token: "T", Message: "Success"}}
	require.NoError(t, newTestApp(f).ConfirmReset(context.Background()))

	assert.Equal(t, services.ResetConfirm{ResetToken: "R1", Password: "newpw"}, f.confirm)
	assert.Equal(t, []string{"Success"}, *out)
	assert.Equal(t, session.Authenticated, f.state)
}

func TestConfirmReset_InputError(t *testing.T) {
	stubInputs(t, nil, [][]byte{[]byte("R1")})
	f := &fakeSession{}

	err := newTestApp(f).ConfirmReset(context.Background())
	assert.Error(t, err)
	assert.Empty(t, f.confirm.ResetToken)
}

func TestLogout(t *testing.T) {
	out := captureOutput(t)
	f := &fakeSession{state: session.Authenticated}
	a := newTestApp(f)

	require.NoError(t, a.Logout(context.Background()))
	require.NoError(t, a.Logout(context.Background()))

	assert.Equal(t, 2, f.logouts)
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, []string{"Logged out", "Logged out"}, *out)
}

func TestSignup_TextInputError(t *testing.T) {
	stubInputs(t, []string{"a@b.c"}, nil)
	f := &fakeSession{}

	err := newTestApp(f).Signup(context.Background())
	assert.ErrorIs(t, err, io.EOF)
	assert.Empty(t, f.signup.Email)
}
