// package server runs the short-lived loopback HTTP server that receives
// browser redirects after login, platform connect and checkout flows.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/nkurelo/socialdash/internal/models"
	"github.com/nkurelo/socialdash/internal/shared"
)

// ResultKind classifies what the backend redirect carried.
type ResultKind int

const (
	NoResult ResultKind = iota
	// LoginResult carries a bearer token in Token.
	LoginResult
	// LogoutResult means the backend ended the session remotely.
	LogoutResult
	// ConnectResult reports a platform connection outcome in Platform/Err.
	ConnectResult
	// CheckoutResult reports the hosted checkout outcome in Completed.
	CheckoutResult
)

// CallbackResult is the parsed outcome of one browser redirect.
type CallbackResult struct {
	Kind      ResultKind
	Token     string
	Platform  models.Platform
	Completed bool
	Err       error
}

// CallbackServer listens on the loopback address the backend redirects to
// and delivers the first parsed result to Wait. It is single shot; start a
// fresh server for each flow.
type CallbackServer struct {
	addr    string
	logger  *log.Logger
	httpSrv *http.Server
	results chan CallbackResult
	once    sync.Once
}

// NewCallbackServer builds a server bound to addr (host:port).
func NewCallbackServer(addr string, logger *log.Logger) *CallbackServer {
	s := &CallbackServer{
		addr:    addr,
		logger:  logger,
		results: make(chan CallbackResult, 1),
	}

	router := mux.NewRouter()
	router.HandleFunc("/callback", s.handleCallback).Methods(http.MethodGet)

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// RedirectURL is the address the backend should send the browser back to.
func (s *CallbackServer) RedirectURL() string {
	return "http://" + s.addr + "/callback"
}

// Start begins serving in the background.
func (s *CallbackServer) Start() {
	go func() {
		s.logger.Debug("callback server listening", "addr", s.addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("callback server failed", "error", err)
			s.deliver(CallbackResult{Err: err})
		}
	}()
}

// Wait blocks until a redirect arrives, ctx expires, or the timeout hits.
func (s *CallbackServer) Wait(ctx context.Context, timeout time.Duration) (CallbackResult, error) {
	select {
	case result := <-s.results:
		return result, result.Err
	case <-ctx.Done():
		return CallbackResult{}, ctx.Err()
	case <-time.After(timeout):
		return CallbackResult{}, shared.ErrTimeout
	}
}

// Shutdown stops the listener.
func (s *CallbackServer) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	result := ParseCallback(r.URL.Query())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if result.Err != nil && result.Kind != CheckoutResult {
		w.Write([]byte(failurePage))
	} else {
		w.Write([]byte(successPage))
	}

	s.deliver(result)
}

func (s *CallbackServer) deliver(result CallbackResult) {
	s.once.Do(func() {
		s.results <- result
	})
}

// ParseCallback interprets the redirect query parameters. Parameter names
// follow the backend's convention: token, logout, {platform}_connected,
// {platform}_error, subscription.
func ParseCallback(query map[string][]string) CallbackResult {
	get := func(key string) string {
		if vals := query[key]; len(vals) > 0 {
			return vals[0]
		}
		return ""
	}

	if token := get("token"); token != "" {
		return CallbackResult{Kind: LoginResult, Token: token}
	}

	if get("logout") != "" {
		return CallbackResult{Kind: LogoutResult}
	}

	if sub := get("subscription"); sub != "" {
		return CallbackResult{Kind: CheckoutResult, Completed: sub == "success"}
	}

	for _, platform := range models.AllPlatforms {
		if get(platform.Slug()+"_connected") != "" {
			return CallbackResult{Kind: ConnectResult, Platform: platform}
		}

		if msg := get(platform.Slug() + "_error"); msg != "" {
			err := shared.ErrAuthFailed
			if strings.Contains(msg, "Account limit reached") {
				err = shared.ErrAccountLimit
			}
			return CallbackResult{Kind: ConnectResult, Platform: platform, Err: err}
		}
	}

	return CallbackResult{Kind: NoResult}
}

const successPage = `<!DOCTYPE html>
<html>
<head><title>socialdash</title></head>
<body style="font-family: sans-serif; text-align: center; padding-top: 4rem;">
<h1>All set</h1>
<p>You can close this tab and return to your terminal.</p>
</body>
</html>`

const failurePage = `<!DOCTYPE html>
<html>
<head><title>socialdash</title></head>
<body style="font-family: sans-serif; text-align: center; padding-top: 4rem;">
<h1>Something went wrong</h1>
<p>Return to your terminal for details.</p>
</body>
</html>`
