// package session decides whether the user sees the logged-out screen or
// the dashboard, and keeps the authenticated state fresh.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nkurelo/socialdash/internal/api"
	"github.com/nkurelo/socialdash/internal/credentials"
	"github.com/nkurelo/socialdash/internal/models"
	"github.com/nkurelo/socialdash/internal/server"
	"github.com/nkurelo/socialdash/internal/shared"
)

// State is the top-level view the session resolves to.
type State int

const (
	LoggedOut State = iota
	Dashboard
)

func (s State) String() string {
	if s == Dashboard {
		return "dashboard"
	}
	return "logged out"
}

// RefreshInterval is how often an authenticated session re-verifies itself
// against the backend.
const RefreshInterval = 5 * time.Minute

// Controller resolves and maintains the session. The identity endpoint is
// the single source of truth: if it answers, the dashboard shows; if it
// returns 401 the local session is torn down.
type Controller struct {
	client   *api.Client
	keychain *credentials.Keychain
	logger   *log.Logger

	mu      sync.RWMutex
	state   State
	profile *models.UserProfile

	stopRefresh chan struct{}
	refreshOnce sync.Once
}

// NewController wires a controller over the gateway and token store.
func NewController(client *api.Client, keychain *credentials.Keychain, logger *log.Logger) *Controller {
	return &Controller{
		client:      client,
		keychain:    keychain,
		logger:      logger,
		stopRefresh: make(chan struct{}),
	}
}

// State returns the current resolved state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Profile returns the authenticated user, or nil when logged out.
func (c *Controller) Profile() *models.UserProfile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.profile
}

// Resolve asks the backend who the user is and settles the session state.
// Any failure other than an explicit 401 resolves to logged out without
// touching stored credentials, so a flaky network never destroys a token.
func (c *Controller) Resolve(ctx context.Context) (State, error) {
	profile, err := c.client.Me(ctx)
	if err != nil {
		c.mu.Lock()
		c.state = LoggedOut
		c.profile = nil
		c.mu.Unlock()
		return LoggedOut, err
	}

	c.mu.Lock()
	c.state = Dashboard
	c.profile = profile
	c.mu.Unlock()

	c.logger.Debug("session resolved", "user", profile.DisplayName())
	return Dashboard, nil
}

// Teardown clears local credentials and drops to logged out. Wired as the
// gateway's 401 hook for the identity endpoint.
func (c *Controller) Teardown() {
	c.keychain.Clear()

	c.mu.Lock()
	c.state = LoggedOut
	c.profile = nil
	c.mu.Unlock()

	c.logger.Info("session torn down")
}

// Logout ends the session. Local state is cleared first and the backend
// notification is fire and forget, logout must always succeed from the
// user's point of view.
func (c *Controller) Logout(ctx context.Context) {
	c.Teardown()

	go func() {
		notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := c.client.Logout(notifyCtx); err != nil {
			c.logger.Debug("backend logout notification failed", "error", err)
		}
	}()
}

// ApplyCallback folds a browser redirect result into the session.
func (c *Controller) ApplyCallback(ctx context.Context, result server.CallbackResult) (State, error) {
	switch result.Kind {
	case server.LoginResult:
		c.keychain.Save(result.Token)
		return c.Resolve(ctx)
	case server.LogoutResult:
		c.Teardown()
		return LoggedOut, nil
	case server.ConnectResult:
		if result.Err != nil {
			return c.State(), result.Err
		}
		return c.State(), nil
	case server.CheckoutResult:
		if !result.Completed {
			return c.State(), shared.ErrInvalidInput
		}
		return c.State(), nil
	default:
		return c.State(), nil
	}
}

// StartAutoRefresh re-verifies the session every RefreshInterval, but only
// while a bearer token is held. Cookie sessions are verified on demand
// instead; polling them would just churn the backend.
func (c *Controller) StartAutoRefresh(ctx context.Context) {
	c.refreshOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(RefreshInterval)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					if c.client.Token() == "" {
						continue
					}
					if _, err := c.Resolve(ctx); err != nil {
						c.logger.Debug("session refresh failed", "error", err)
					}
				case <-ctx.Done():
					return
				case <-c.stopRefresh:
					return
				}
			}
		}()
	})
}

// StopAutoRefresh ends the background verification loop.
func (c *Controller) StopAutoRefresh() {
	close(c.stopRefresh)
}
