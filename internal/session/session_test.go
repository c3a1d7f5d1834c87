package session

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkurelo/socialdash/internal/api"
	"github.com/nkurelo/socialdash/internal/credentials"
	"github.com/nkurelo/socialdash/internal/server"
	"github.com/nkurelo/socialdash/internal/shared"
)

func newTestController(t *testing.T, handler http.Handler) (*Controller, *credentials.Keychain) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := shared.NewLogger(io.Discard)
	store := credentials.NewFileStore(filepath.Join(t.TempDir(), "token"))
	keychain := credentials.NewKeychain(store, nil, logger)

	var controller *Controller
	client := api.NewClient(api.Opts{
		BaseURL:          srv.URL,
		Tokens:           keychain,
		Logger:           logger,
		OnSessionExpired: func() { controller.Teardown() },
	})
	controller = NewController(client, keychain, logger)
	return controller, keychain
}

func TestResolve(t *testing.T) {
	t.Run("identity success resolves to dashboard", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id":"u1","name":"Nina","email":"nina@example.com"}`))
		})
		controller, _ := newTestController(t, handler)

		state, err := controller.Resolve(context.Background())

		require.NoError(t, err)
		assert.Equal(t, Dashboard, state)
		require.NotNil(t, controller.Profile())
		assert.Equal(t, "Nina", controller.Profile().Name)
	})

	t.Run("identity 401 tears down and clears token", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		controller, keychain := newTestController(t, handler)
		keychain.Save("stale-token")

		state, err := controller.Resolve(context.Background())

		require.Error(t, err)
		assert.Equal(t, LoggedOut, state)
		assert.Empty(t, keychain.Token())
	})

	t.Run("network failure logs out but keeps token", func(t *testing.T) {
		logger := shared.NewLogger(io.Discard)
		store := credentials.NewFileStore(filepath.Join(t.TempDir(), "token"))
		keychain := credentials.NewKeychain(store, nil, logger)
		keychain.Save("good-token")

		client := api.NewClient(api.Opts{
			BaseURL: "http://127.0.0.1:1",
			Tokens:  keychain,
			Logger:  logger,
		})
		controller := NewController(client, keychain, logger)

		state, err := controller.Resolve(context.Background())

		require.Error(t, err)
		assert.Equal(t, LoggedOut, state)
		assert.Equal(t, "good-token", keychain.Token())
	})
}

func TestLogout(t *testing.T) {
	var notified atomic.Bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/logout" {
			notified.Store(true)
		}
		w.Write([]byte(`{}`))
	})
	controller, keychain := newTestController(t, handler)
	keychain.Save("tok")

	controller.Logout(context.Background())

	assert.Empty(t, keychain.Token(), "local state clears immediately")
	assert.Equal(t, LoggedOut, controller.State())

	assert.Eventually(t, notified.Load, time.Second, 10*time.Millisecond,
		"backend should be notified in the background")
}

func TestApplyCallback(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"u1","name":"Nina","email":"nina@example.com"}`))
	})

	t.Run("login saves token and resolves", func(t *testing.T) {
		controller, keychain := newTestController(t, handler)

		state, err := controller.ApplyCallback(context.Background(), server.CallbackResult{
			Kind:  server.LoginResult,
			Token: "fresh-token",
		})

		require.NoError(t, err)
		assert.Equal(t, Dashboard, state)
		assert.Equal(t, "fresh-token", keychain.Token())
	})

	t.Run("remote logout tears down", func(t *testing.T) {
		controller, keychain := newTestController(t, handler)
		keychain.Save("tok")

		state, err := controller.ApplyCallback(context.Background(), server.CallbackResult{
			Kind: server.LogoutResult,
		})

		require.NoError(t, err)
		assert.Equal(t, LoggedOut, state)
		assert.Empty(t, keychain.Token())
	})

	t.Run("connect error surfaces without changing state", func(t *testing.T) {
		controller, _ := newTestController(t, handler)

		_, err := controller.ApplyCallback(context.Background(), server.CallbackResult{
			Kind: server.ConnectResult,
			Err:  shared.ErrAccountLimit,
		})

		assert.ErrorIs(t, err, shared.ErrAccountLimit)
	})
}
