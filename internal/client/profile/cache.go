// Package profile memoizes the authenticated user's profile.
//
// The cache is gated on session presence: while disabled it never fetches
// and holds nothing. Once enabled it fetches in the background, serves the
// result for the stale window and refetches after it. Failures are not
// retried automatically.
package profile

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/models"
	"github.com/dmitrijs2005/sessionkeeper/internal/logging"
	"golang.org/x/sync/singleflight"
)

// DefaultStaleTime is how long a fetched profile counts as fresh.
const DefaultStaleTime = 5 * time.Minute

var (
	// ErrNoSession is returned by Get while the cache is disabled.
	ErrNoSession = errors.New("no session")
	// errSuperseded marks a fetch whose result arrived after a disable or restart.
	errSuperseded = errors.New("profile fetch superseded")
)

// Fetcher loads the profile of the current session.
type Fetcher func(ctx context.Context) (*models.Profile, error)

type Cache struct {
	fetch     Fetcher
	staleTime time.Duration
	now       func() time.Time
	log       logging.Logger
	group     singleflight.Group
	wg        sync.WaitGroup

	mu        sync.Mutex
	enabled   bool
	gen       uint64
	genCtx    context.Context
	cancel    context.CancelFunc
	profile   *models.Profile
	fetchedAt time.Time
	lastErr   error
}

// Option customises a Cache.
type Option func(*Cache)

// WithStaleTime overrides DefaultStaleTime. Non-positive values are ignored.
func WithStaleTime(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.staleTime = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func New(fetch Fetcher, log logging.Logger, opts ...Option) *Cache {
	if log == nil {
		log = logging.NewDiscard()
	}
	c := &Cache{
		fetch:     fetch,
		staleTime: DefaultStaleTime,
		now:       time.Now,
		log:       log.With("component", "profile"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetEnabled turns fetching on or off. Enabling a disabled cache schedules
// a background fetch; disabling cancels in-flight fetches and drops the
// cached profile.
func (c *Cache) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if enabled == c.enabled {
		return
	}
	if enabled {
		c.startGenerationLocked()
		c.backgroundLocked()
		return
	}
	c.stopGenerationLocked()
}

// Restart discards everything tied to the previous session and, when
// enabled, fetches again. Called when the session token is replaced.
func (c *Cache) Restart() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled {
		return
	}
	c.stopGenerationLocked()
	c.startGenerationLocked()
	c.backgroundLocked()
}

// Enabled reports whether a session currently gates fetching on.
func (c *Cache) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Current returns the cached profile, which may be stale or nil. A stale
// value triggers a background refetch.
func (c *Cache) Current() *models.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled || c.profile == nil {
		return nil
	}
	if c.staleLocked() {
		c.backgroundLocked()
	}
	return c.profile
}

// Get returns a fresh profile, fetching when the cached one is missing or
// stale. Concurrent callers share a single request.
func (c *Cache) Get(ctx context.Context) (*models.Profile, error) {
	c.mu.Lock()
	if !c.enabled {
		c.mu.Unlock()
		return nil, ErrNoSession
	}
	if c.profile != nil && !c.staleLocked() {
		p := c.profile
		c.mu.Unlock()
		c.log.Debug(ctx, "profile cache hit")
		return p, nil
	}
	ch := c.group.DoChan(c.keyLocked(), c.loader(c.genCtx, c.gen))
	c.mu.Unlock()

	select {
	case res := <-ch:
		if res.Err != nil {
			if errors.Is(res.Err, errSuperseded) {
				return nil, ErrNoSession
			}
			return nil, res.Err
		}
		return res.Val.(*models.Profile), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Refetch starts a background fetch regardless of staleness. It is a no-op
// while disabled.
func (c *Cache) Refetch() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.enabled {
		c.backgroundLocked()
	}
}

// LastError is the error of the most recent failed fetch of the current
// session, or nil.
func (c *Cache) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Wait blocks until background fetches started so far have finished.
func (c *Cache) Wait() {
	c.wg.Wait()
}

// Close disables the cache and waits for background work to stop.
func (c *Cache) Close() {
	c.SetEnabled(false)
	c.Wait()
}

func (c *Cache) staleLocked() bool {
	return c.now().Sub(c.fetchedAt) >= c.staleTime
}

func (c *Cache) keyLocked() string {
	return strconv.FormatUint(c.gen, 10)
}

func (c *Cache) startGenerationLocked() {
	c.enabled = true
	c.gen++
	c.genCtx, c.cancel = context.WithCancel(context.Background())
}

func (c *Cache) stopGenerationLocked() {
	c.enabled = false
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.profile = nil
	c.fetchedAt = time.Time{}
	c.lastErr = nil
}

func (c *Cache) backgroundLocked() {
	ch := c.group.DoChan(c.keyLocked(), c.loader(c.genCtx, c.gen))
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		<-ch
	}()
}

// loader fetches with the generation context and stores the result only if
// the generation is still current. A generation that ended before the loader
// ran is not fetched at all.
func (c *Cache) loader(ctx context.Context, gen uint64) func() (any, error) {
	return func() (any, error) {
		c.mu.Lock()
		current := gen == c.gen
		c.mu.Unlock()
		if !current {
			return nil, errSuperseded
		}

		p, err := c.fetch(ctx)

		c.mu.Lock()
		defer c.mu.Unlock()

		if gen != c.gen {
			c.log.Debug(ctx, "discarding profile from a previous session")
			return nil, errSuperseded
		}
		if err != nil {
			c.profile = nil
			c.lastErr = err
			c.log.Warn(ctx, "profile fetch failed", "error", err)
			return nil, err
		}

		c.profile = p
		c.fetchedAt = c.now()
		c.lastErr = nil
		return p, nil
	}
}
