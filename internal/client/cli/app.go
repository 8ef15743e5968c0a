package cli

import (
	"bufio"
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/client"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/config"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/models"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/profile"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/services"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/session"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/tokenstore"
	"github.com/dmitrijs2005/sessionkeeper/internal/logging"
)

// sessionManager is the part of *session.Session the commands use.
type sessionManager interface {
	State() session.State
	Signup(ctx context.Context, creds services.SignupCredentials) services.FlowResult
	Login(ctx context.Context, creds services.LoginCredentials) services.FlowResult
	RequestPasswordReset(ctx context.Context, req services.ResetRequest) services.ResetRequestResult
	ConfirmPasswordReset(ctx context.Context, req services.ResetConfirm) services.FlowResult
	Logout()
	Profile(ctx context.Context) (*models.Profile, error)
	CurrentProfile() *models.Profile
	RefetchProfile()
	Claims() (*session.Claims, error)
	Subscribe(fn func(session.Snapshot)) (cancel func())
}

type App struct {
	config  *config.Config
	session sessionManager
	log     logging.Logger
	reader  *bufio.Reader
	closers []func() error
}

// NewApp builds the whole client stack from c. Token store failures past
// this point are absorbed by the store; only failing to open the backend
// is an error here.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewTextLogger(os.Stderr, logging.ParseLevel(c.LogLevel))

	backend, closeBackend, err := tokenstore.OpenBackend(ctx, c)
	if err != nil {
		log.Error(ctx, "error opening token store", "backend", c.StoreBackend, "error", err)
		return nil, err
	}

	store := tokenstore.New(backend, log)
	api := client.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, store, log)
	auth := services.NewAuthService(api, store, log)
	cache := profile.New(profile.FromRequester(api), log, profile.WithStaleTime(c.ProfileStaleTime))
	sess := session.New(store, auth, cache, log)

	closeCache := func() error {
		cache.Close()
		return nil
	}

	return &App{
		config:  c,
		session: sess,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		closers: []func() error{closeCache, closeBackend},
	}, nil
}

// Run starts the REPL on stdin and releases resources when it returns.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.Close(); err != nil {
			a.log.Warn(ctx, "error closing app", "error", err)
		}
	}()

	cancel := a.session.Subscribe(func(s session.Snapshot) {
		a.log.Info(ctx, "session state changed", "state", s.State.String())
	})
	defer cancel()

	printlnFn("Welcome to SessionKeeper CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

// Close releases the profile cache and the token store backend, in order.
func (a *App) Close() error {
	var errs []error
	for _, fn := range a.closers {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == session.Authenticated
}

// getStatus renders the prompt suffix: the display name once the profile
// is loaded, otherwise the bare session state.
func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return session.Unauthenticated.String()
	}
	if p := a.session.CurrentProfile(); p != nil {
		return p.DisplayName()
	}
	return session.Authenticated.String()
}
