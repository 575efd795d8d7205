package sessions

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetcherFunc func(ctx context.Context, token string) (*User, error)

func (f fetcherFunc) FetchProfile(ctx context.Context, token string) (*User, error) {
	return f(ctx, token)
}

func neverFetch(t *testing.T) fetcherFunc {
	return func(_ context.Context, token string) (*User, error) {
		t.Errorf("unexpected profile fetch for token %q", token)
		return nil, errors.New("unexpected fetch")
	}
}

func TestNewController(t *testing.T) {
	t.Parallel()

	t.Run("restores persisted session without network", func(t *testing.T) {
		store := &MockStore{Session: &State{Token: "tok-1", User: &User{Email: "a@b.c"}}}
		c := NewController(store, neverFetch(t))

		assert.True(t, c.IsAuthenticated())
		assert.Equal(t, "tok-1", c.Token())
		require.NotNil(t, c.Snapshot().User)
		assert.Equal(t, "a@b.c", c.Snapshot().User.Email)
	})

	t.Run("cold start with empty storage", func(t *testing.T) {
		c := NewController(&MockStore{}, neverFetch(t))
		assert.False(t, c.IsAuthenticated())
		assert.Empty(t, c.Token())
	})

	t.Run("corrupted storage degrades to anonymous", func(t *testing.T) {
		store := &MockStore{LoadError: ErrMalformed}
		c := NewController(store, neverFetch(t))
		assert.False(t, c.IsAuthenticated())
	})
}

func TestController_Login(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("persists and hydrates the profile", func(t *testing.T) {
		store := &MockStore{}
		c := NewController(store, fetcherFunc(func(_ context.Context, token string) (*User, error) {
			assert.Equal(t, "tok-1", token)
			return &User{ID: "7", Email: "fetched@example.com"}, nil
		}))

		c.Login(ctx, "tok-1", &User{Email: "login@example.com"})

		assert.True(t, c.IsAuthenticated())
		require.NotNil(t, store.Session, "session must be persisted before login returns")
		assert.Equal(t, "tok-1", store.Session.Token)

		require.Eventually(t, func() bool {
			u := c.Snapshot().User
			return u != nil && u.Email == "fetched@example.com"
		}, time.Second, 5*time.Millisecond)
		assert.Equal(t, "fetched@example.com", store.Session.User.Email, "fetched profile must be persisted")
	})

	t.Run("without a token is a no-op", func(t *testing.T) {
		store := &MockStore{}
		c := NewController(store, neverFetch(t))

		c.Login(ctx, "", &User{Email: "x@y.z"})

		assert.False(t, c.IsAuthenticated())
		assert.Nil(t, c.Snapshot().User)
		assert.Nil(t, store.Session)
	})

	t.Run("fetches once per distinct token", func(t *testing.T) {
		var mu sync.Mutex
		calls := 0
		c := NewController(&MockStore{}, fetcherFunc(func(context.Context, string) (*User, error) {
			mu.Lock()
			defer mu.Unlock()
			calls++
			return &User{ID: "1"}, nil
		}))

		c.Login(ctx, "tok-1", nil)
		c.Login(ctx, "tok-1", nil)

		require.Eventually(t, func() bool {
			return c.Snapshot().User != nil
		}, time.Second, 5*time.Millisecond)
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 1, calls)
	})

	t.Run("store failure keeps the in-memory session", func(t *testing.T) {
		store := &MockStore{SaveError: errors.New("disk full")}
		c := NewController(store, fetcherFunc(func(context.Context, string) (*User, error) {
			return nil, errors.New("offline")
		}))

		c.Login(ctx, "tok-1", &User{Email: "a@b.c"})
		assert.True(t, c.IsAuthenticated())
	})
}

func TestController_StaleFetchDiscarded(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	release := map[string]chan struct{}{
		"tok-a": make(chan struct{}),
		"tok-b": make(chan struct{}),
	}
	c := NewController(&MockStore{}, fetcherFunc(func(_ context.Context, token string) (*User, error) {
		<-release[token]
		return &User{Email: token + "@example.com"}, nil
	}))

	c.Login(ctx, "tok-a", nil)
	c.Login(ctx, "tok-b", nil)

	// the response for the superseded token lands first and must not apply
	close(release["tok-a"])
	assert.Never(t, func() bool {
		u := c.Snapshot().User
		return u != nil && u.Email == "tok-a@example.com"
	}, 100*time.Millisecond, 5*time.Millisecond)

	close(release["tok-b"])
	require.Eventually(t, func() bool {
		u := c.Snapshot().User
		return u != nil && u.Email == "tok-b@example.com"
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "tok-b", c.Token())
}

func TestController_RejectedCredential(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := &MockStore{}
	c := NewController(store, fetcherFunc(func(context.Context, string) (*User, error) {
		return nil, ErrUnauthorized
	}))

	c.Login(ctx, "tok-revoked", &User{Email: "a@b.c"})

	require.Eventually(t, func() bool {
		return !c.IsAuthenticated()
	}, time.Second, 5*time.Millisecond)
	assert.Nil(t, c.Snapshot().User)
	assert.Nil(t, store.Session)
}

func TestController_TransientFetchFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var mu sync.Mutex
	calls := 0
	c := NewController(&MockStore{}, fetcherFunc(func(context.Context, string) (*User, error) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return nil, errors.New("connection refused")
	}))

	c.Login(ctx, "tok-1", &User{Email: "cached@example.com"})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1
	}, time.Second, 5*time.Millisecond)

	// signed in with the profile from login, no automatic retry
	assert.True(t, c.IsAuthenticated())
	require.NotNil(t, c.Snapshot().User)
	assert.Equal(t, "cached@example.com", c.Snapshot().User.Email)
	assert.Never(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls > 1
	}, 100*time.Millisecond, 10*time.Millisecond)
}

func TestController_Logout(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := &MockStore{}
	c := NewController(store, fetcherFunc(func(context.Context, string) (*User, error) {
		return &User{ID: "1"}, nil
	}))

	c.Login(ctx, "tok-1", &User{Email: "a@b.c"})
	c.Logout()

	assert.False(t, c.IsAuthenticated())
	assert.Empty(t, c.Token())
	assert.Nil(t, c.Snapshot().User)
	assert.Nil(t, store.Session)

	// idempotent
	c.Logout()
	assert.False(t, c.IsAuthenticated())
}

func TestController_UpdateUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("replaces the profile while signed in", func(t *testing.T) {
		store := &MockStore{Session: &State{Token: "tok-1"}}
		c := NewController(store, neverFetch(t))

		c.UpdateUser(ctx, &User{Email: "new@example.com"})

		assert.True(t, c.IsAuthenticated())
		require.NotNil(t, c.Snapshot().User)
		assert.Equal(t, "new@example.com", c.Snapshot().User.Email)
		require.NotNil(t, store.Session)
		assert.Equal(t, "new@example.com", store.Session.User.Email)
	})

	t.Run("never authenticates or persists while anonymous", func(t *testing.T) {
		store := &MockStore{}
		c := NewController(store, neverFetch(t))

		c.UpdateUser(ctx, &User{Email: "ghost@example.com"})

		assert.False(t, c.IsAuthenticated())
		assert.Nil(t, store.Session)
	})
}

func TestController_Refresh(t *testing.T) {
	t.Parallel()

	t.Run("re-fetches the restored profile", func(t *testing.T) {
		store := &MockStore{Session: &State{Token: "tok-1", User: &User{Email: "stale@example.com"}}}
		c := NewController(store, fetcherFunc(func(_ context.Context, token string) (*User, error) {
			assert.Equal(t, "tok-1", token)
			return &User{Email: "fresh@example.com"}, nil
		}))

		c.Refresh(context.Background())

		require.Eventually(t, func() bool {
			u := c.Snapshot().User
			return u != nil && u.Email == "fresh@example.com"
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("does nothing while anonymous", func(t *testing.T) {
		c := NewController(&MockStore{}, neverFetch(t))
		c.Refresh(context.Background())
		time.Sleep(50 * time.Millisecond)
		assert.False(t, c.IsAuthenticated())
	})
}

func TestController_SnapshotIsolation(t *testing.T) {
	t.Parallel()

	c := NewController(&MockStore{Session: &State{Token: "tok-1", User: &User{Email: "a@b.c"}}}, neverFetch(t))

	snap := c.Snapshot()
	snap.User.Email = "mutated@example.com"

	assert.Equal(t, "a@b.c", c.Snapshot().User.Email, "mutating a snapshot must not affect the session")
}
