package cli

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/config"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/models"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLoggedIn(t *testing.T) {
	f := &fakeSession{}
	app := newTestApp(f)
	assert.False(t, app.isLoggedIn())

	f.state = session.Authenticated
	assert.True(t, app.isLoggedIn())
}

func TestGetStatus(t *testing.T) {
	f := &fakeSession{}
	app := newTestApp(f)
	assert.Equal(t, "unauthenticated", app.getStatus())

	f.state = session.Authenticated
	assert.Equal(t, "authenticated", app.getStatus())

	f.profile = &models.Profile{Email: "a@b.c"}
	assert.Equal(t, "a@b.c", app.getStatus())
}

func TestClose_RunsAllClosers(t *testing.T) {
	var order []string
	app := &App{closers: []func() error{
		func() error { order = append(order, "cache"); return nil },
		func() error { order = append(order, "store"); return errors.New("busy") },
	}}

	err := app.Close()
	assert.EqualError(t, err, "busy")
	assert.Equal(t, []string{"cache", "store"}, order)

	require.NoError(t, app.Close())
}

func TestNewApp_MemoryStore(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StoreBackend = config.StoreMemory
	cfg.LogLevel = "error"

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.False(t, app.isLoggedIn())
}

func TestNewApp_SQLiteStore(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "session.db")
	cfg.LogLevel = "error"

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, app.Close())
}

func TestNewApp_UnknownBackend(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StoreBackend = "floppy"
	cfg.LogLevel = "error"

	_, err := NewApp(context.Background(), cfg)
	assert.Error(t, err)
}
