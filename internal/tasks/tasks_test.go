package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/nkurelo/socialdash/internal/aggregator"
	"github.com/nkurelo/socialdash/internal/api"
	"github.com/nkurelo/socialdash/internal/credentials"
	"github.com/nkurelo/socialdash/internal/models"
	"github.com/nkurelo/socialdash/internal/session"
	"github.com/nkurelo/socialdash/internal/shared"
)

// redirectBrowser simulates the user finishing in the browser by hitting
// the loopback callback with the given query string.
func redirectBrowser(t *testing.T, callbackAddr, query string) Browser {
	return func(string) error {
		t.Helper()
		go func() {
			url := fmt.Sprintf("http://%s/callback?%s", callbackAddr, query)
			// The listener starts in the background; retry until it is up
			for range 20 {
				resp, err := http.Get(url)
				if err == nil {
					resp.Body.Close()
					return
				}
				time.Sleep(25 * time.Millisecond)
			}
		}()
		return nil
	}
}

type flowFixture struct {
	engine   *FlowEngine
	keychain *credentials.Keychain
	config   *shared.Config
}

func newFlowFixture(t *testing.T, port int, backend http.Handler, browser Browser) *flowFixture {
	t.Helper()

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	logger := shared.NewLogger(io.Discard)
	store := credentials.NewFileStore(filepath.Join(t.TempDir(), "token"))
	keychain := credentials.NewKeychain(store, nil, logger)

	config := shared.DefaultConfig()
	config.Callback.Host = "127.0.0.1"
	config.Callback.Port = port

	var controller *session.Controller
	client := api.NewClient(api.Opts{
		BaseURL:          srv.URL,
		Tokens:           keychain,
		Logger:           logger,
		OnSessionExpired: func() { controller.Teardown() },
	})
	controller = session.NewController(client, keychain, logger)
	accounts := aggregator.New(client, nil, logger)

	return &flowFixture{
		engine:   NewFlowEngine(client, controller, accounts, config, browser, logger),
		keychain: keychain,
		config:   config,
	}
}

func TestLogin(t *testing.T) {
	t.Run("happy path saves token and resolves profile", func(t *testing.T) {
		backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/auth/me" {
				w.Write([]byte(`{"id":"u1","name":"Nina","email":"nina@example.com"}`))
				return
			}
			w.Write([]byte(`{}`))
		})

		f := newFlowFixture(t, 18801, backend, nil)
		f.engine.browser = redirectBrowser(t, f.config.Callback.Addr(), "token=fresh-tok")

		profile, err := f.engine.Login(context.Background(), nil)
		if err != nil {
			t.Fatalf("expected login to succeed, got %v", err)
		}

		if profile.Name != "Nina" {
			t.Errorf("expected profile Nina, got %q", profile.Name)
		}

		if f.keychain.Token() != "fresh-tok" {
			t.Errorf("expected token saved, got %q", f.keychain.Token())
		}
	})

	t.Run("browser failure aborts flow", func(t *testing.T) {
		f := newFlowFixture(t, 18802, http.NotFoundHandler(), func(string) error {
			return errors.New("no display")
		})

		if _, err := f.engine.Login(context.Background(), nil); err == nil {
			t.Fatal("expected login to fail")
		}
	})
}

func TestConnect(t *testing.T) {
	t.Run("oauth platform refreshes after redirect", func(t *testing.T) {
		backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/social-accounts" {
				w.Write([]byte(`[{"id":"a1","platform":"Instagram","username":"nina.gram"}]`))
				return
			}
			w.Write([]byte(`{}`))
		})

		f := newFlowFixture(t, 18803, backend, nil)
		f.engine.browser = redirectBrowser(t, f.config.Callback.Addr(), "instagram_connected=true")

		account, err := f.engine.Connect(context.Background(), nil, models.Instagram)
		if err != nil {
			t.Fatalf("expected connect to succeed, got %v", err)
		}

		if account.Username != "nina.gram" {
			t.Errorf("expected backend account, got %+v", account)
		}
	})

	t.Run("account limit error surfaces", func(t *testing.T) {
		f := newFlowFixture(t, 18804, http.NotFoundHandler(), nil)
		f.engine.browser = redirectBrowser(t, f.config.Callback.Addr(),
			"twitter_error=Account%20limit%20reached")

		_, err := f.engine.Connect(context.Background(), nil, models.Twitter)
		if !errors.Is(err, shared.ErrAccountLimit) {
			t.Fatalf("expected account limit error, got %v", err)
		}
	})

	t.Run("non-oauth platform connects demo without browser", func(t *testing.T) {
		backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		browserCalls := 0
		f := newFlowFixture(t, 18805, backend, func(string) error {
			browserCalls++
			return nil
		})
		f.config.Platforms.OAuth = nil

		account, err := f.engine.Connect(context.Background(), nil, models.Snapchat)
		if err != nil {
			t.Fatalf("expected demo connect, got %v", err)
		}

		if browserCalls != 0 {
			t.Error("expected no browser launch for demo connect")
		}

		if !aggregator.IsDemo(account) {
			t.Errorf("expected demo account, got %+v", account)
		}
	})
}

func TestCheckout(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/subscription/create-checkout-session" {
			w.Write([]byte(`{"url":"https://pay.example.com/cs_123"}`))
			return
		}
		w.Write([]byte(`{}`))
	})

	t.Run("success redirect completes upgrade", func(t *testing.T) {
		f := newFlowFixture(t, 18806, backend, nil)
		f.engine.browser = redirectBrowser(t, f.config.Callback.Addr(), "subscription=success")

		completed, err := f.engine.Checkout(context.Background(), nil)
		if err != nil {
			t.Fatal(err)
		}

		if !completed {
			t.Error("expected checkout to complete")
		}
	})

	t.Run("cancel redirect reports not completed", func(t *testing.T) {
		f := newFlowFixture(t, 18807, backend, nil)
		f.engine.browser = redirectBrowser(t, f.config.Callback.Addr(), "subscription=canceled")

		completed, err := f.engine.Checkout(context.Background(), nil)
		if err != nil {
			t.Fatal(err)
		}

		if completed {
			t.Error("expected checkout to be canceled")
		}
	})
}
