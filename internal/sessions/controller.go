package sessions

import (
	"context"
	"errors"
	"sync"

	"github.com/trackinventory/trackinventory/internal/atomicutil"
	"github.com/trackinventory/trackinventory/internal/log"
)

// ProfileFetcher retrieves the caller's profile from the backend using the
// supplied bearer token. An error matching ErrUnauthorized marks the token as
// rejected; any other error is treated as transient.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, token string) (*User, error)
}

// Snapshot is an immutable view of the session published to readers.
type Snapshot struct {
	Token string
	User  *User
}

// IsAuthenticated reports whether the snapshot carries a bearer token. It is
// derived, never independently settable.
func (s Snapshot) IsAuthenticated() bool {
	return s.Token != ""
}

// Controller is the single source of truth for authentication state. It
// exclusively owns the mutable session: every mutation runs under one lock
// and persists through the store before the transition is considered
// complete, while readers get immutable snapshots.
//
// Setting a new token starts one asynchronous profile fetch per distinct
// token. A fetch result is applied only if its initiating token is still
// current, so a sign-out or re-login always wins over an in-flight response.
type Controller struct {
	store   Store
	fetcher ProfileFetcher

	mu           sync.Mutex
	state        State
	fetchedToken string

	snapshot *atomicutil.Value[Snapshot]
}

// NewController creates a controller, restoring any persisted session.
// Restoring never performs network I/O, and absent or malformed storage
// degrades to the anonymous state.
func NewController(store Store, fetcher ProfileFetcher) *Controller {
	c := &Controller{
		store:    store,
		fetcher:  fetcher,
		snapshot: atomicutil.NewValue(Snapshot{}),
	}

	state, err := store.LoadSession()
	switch {
	case err == nil && state.HasToken():
		c.state = *state
	case err == nil || errors.Is(err, ErrNoSessionFound):
	default:
		log.Error().Err(err).Msg("sessions: discarding persisted session")
	}
	c.publishLocked()
	return c
}

// Login activates a bearer token. The provided user, if any, replaces the
// current one; otherwise the prior user is retained until the profile fetch
// lands. Calling Login without a token is a caller error and changes nothing.
func (c *Controller) Login(ctx context.Context, token string, user *User) {
	if token == "" {
		log.Ctx(ctx).Error().Msg("sessions: login called without a token")
		return
	}

	c.mu.Lock()
	c.state.Token = token
	if user != nil {
		c.state.User = user.Clone()
	}
	c.persistLocked(ctx)
	c.publishLocked()
	fetch := c.markFetchLocked(token)
	c.mu.Unlock()

	if fetch {
		go c.fetchProfile(ctx, token)
	}
}

// Refresh re-runs the profile fetch for the current token. It is intended for
// sessions restored from storage at startup; it does nothing while anonymous.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	token := c.state.Token
	c.fetchedToken = token
	c.mu.Unlock()

	if token == "" {
		return
	}
	go c.fetchProfile(ctx, token)
}

// Logout clears the session and deletes the persisted record. It is
// idempotent: signing out while anonymous has the identical observable
// effect.
func (c *Controller) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logoutLocked(context.Background())
}

// UpdateUser replaces the profile without touching the token or
// authentication state. It is legal in any state; while anonymous it has no
// observable effect beyond the stored field and never creates a persisted
// record.
func (c *Controller) UpdateUser(ctx context.Context, user *User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.User = user.Clone()
	c.persistLocked(ctx)
	c.publishLocked()
}

// Snapshot returns the current immutable session view.
func (c *Controller) Snapshot() Snapshot {
	return c.snapshot.Load()
}

// Token returns the current bearer token, or "" while anonymous.
func (c *Controller) Token() string {
	return c.snapshot.Load().Token
}

// IsAuthenticated reports whether a bearer token is active.
func (c *Controller) IsAuthenticated() bool {
	return c.snapshot.Load().IsAuthenticated()
}

// markFetchLocked records that a profile fetch is starting for token. It
// returns false when one was already started for the same token, so that
// repeated observations of the same state never refire the fetch.
func (c *Controller) markFetchLocked(token string) bool {
	if c.fetchedToken == token {
		return false
	}
	c.fetchedToken = token
	return true
}

func (c *Controller) fetchProfile(ctx context.Context, token string) {
	// the fetch must outlive the request that triggered it
	ctx = context.WithoutCancel(ctx)

	user, err := c.fetcher.FetchProfile(ctx, token)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Token != token {
		// a newer login or a logout superseded this fetch; its result must
		// never overwrite the current session
		log.Ctx(ctx).Debug().Msg("sessions: discarding profile response for a superseded token")
		return
	}

	switch {
	case err == nil:
		if user != nil {
			c.state.User = user
			c.persistLocked(ctx)
			c.publishLocked()
		}
	case errors.Is(err, ErrUnauthorized):
		log.Ctx(ctx).Warn().Msg("sessions: credential rejected by backend, signing out")
		c.logoutLocked(ctx)
	default:
		// transient: stay signed in with whatever profile we have and let a
		// user action trigger the next attempt
		log.Ctx(ctx).Error().Err(err).Msg("sessions: profile fetch failed")
	}
}

func (c *Controller) logoutLocked(ctx context.Context) {
	c.state = State{}
	c.fetchedToken = ""
	if err := c.store.ClearSession(); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("sessions: clear persisted session")
	}
	c.publishLocked()
}

// persistLocked saves (or clears) the record so memory and storage converge
// after every transition. Store failures are logged, never escalated: the
// session keeps working in-memory for the life of the process.
func (c *Controller) persistLocked(ctx context.Context) {
	state := c.state
	if err := c.store.SaveSession(&state); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("sessions: persist session")
	}
}

func (c *Controller) publishLocked() {
	c.snapshot.Store(Snapshot{
		Token: c.state.Token,
		User:  c.state.User.Clone(),
	})
}
