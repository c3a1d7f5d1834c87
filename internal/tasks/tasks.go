// package tasks orchestrates the browser-mediated flows: login, platform
// connection and subscription checkout.
//
// Each flow starts the loopback callback server, sends the user to the
// backend in their browser, waits for the redirect and folds the result
// back into the session. Progress updates are emitted on non-blocking
// channels for CLI/UI display.
package tasks

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nkurelo/socialdash/internal/aggregator"
	"github.com/nkurelo/socialdash/internal/api"
	"github.com/nkurelo/socialdash/internal/models"
	"github.com/nkurelo/socialdash/internal/server"
	"github.com/nkurelo/socialdash/internal/session"
	"github.com/nkurelo/socialdash/internal/shared"
)

// FlowTimeout bounds how long a flow waits for the user to finish in the
// browser before giving up.
const FlowTimeout = 3 * time.Minute

// Browser opens a URL for the user. Split out so tests can intercept it.
type Browser func(url string) error

// FlowEngine drives the browser round-trip flows.
type FlowEngine struct {
	client     *api.Client
	controller *session.Controller
	accounts   *aggregator.Aggregator
	config     *shared.Config
	browser    Browser
	logger     *log.Logger
}

// NewFlowEngine wires a flow engine. A nil browser uses the system opener.
func NewFlowEngine(client *api.Client, controller *session.Controller, accounts *aggregator.Aggregator, config *shared.Config, browser Browser, logger *log.Logger) *FlowEngine {
	if browser == nil {
		browser = shared.OpenBrowser
	}
	return &FlowEngine{
		client:     client,
		controller: controller,
		accounts:   accounts,
		config:     config,
		browser:    browser,
		logger:     logger,
	}
}

// Login runs the browser login flow and resolves the session from the
// returned token.
func (e *FlowEngine) Login(ctx context.Context, progress chan<- ProgressUpdate) (*models.UserProfile, error) {
	total := 4
	srv := server.NewCallbackServer(e.config.Callback.Addr(), e.logger)
	srv.Start()
	defer srv.Shutdown(context.WithoutCancel(ctx))
	emit(progress, startListenerUpdate(1, total, e.config.Callback.Addr()))

	loginURL := fmt.Sprintf("%s/auth/login?redirect_uri=%s",
		e.client.BaseURL(), url.QueryEscape(srv.RedirectURL()))
	emit(progress, openBrowserUpdate(2, total, "the login page"))
	if err := e.browser(loginURL); err != nil {
		return nil, fmt.Errorf("failed to open browser: %w", err)
	}

	emit(progress, awaitCallbackUpdate(3, total))
	result, err := srv.Wait(ctx, FlowTimeout)
	if err != nil {
		return nil, err
	}
	if result.Kind != server.LoginResult {
		return nil, fmt.Errorf("%w: unexpected redirect", shared.ErrAuthFailed)
	}

	if _, err := e.controller.ApplyCallback(ctx, result); err != nil {
		return nil, err
	}

	profile := e.controller.Profile()
	if profile == nil {
		return nil, shared.ErrAuthFailed
	}
	emit(progress, loginDoneUpdate(4, total, profile.DisplayName()))
	return profile, nil
}

// Connect attaches a platform account. Platforms configured for OAuth go
// through the browser; everything else gets a demo account immediately.
func (e *FlowEngine) Connect(ctx context.Context, progress chan<- ProgressUpdate, platform models.Platform) (models.SocialAccount, error) {
	if !e.config.Platforms.HasOAuth(platform.Slug()) {
		emit(progress, demoConnectUpdate(1, 2, platform))
		account, err := e.accounts.ConnectDemo(ctx, platform)
		if err != nil {
			return models.SocialAccount{}, err
		}
		emit(progress, connectedUpdate(2, 2, account))
		return account, nil
	}

	total := 5
	srv := server.NewCallbackServer(e.config.Callback.Addr(), e.logger)
	srv.Start()
	defer srv.Shutdown(context.WithoutCancel(ctx))
	emit(progress, startListenerUpdate(1, total, e.config.Callback.Addr()))

	connectURL := e.connectURL(platform, srv.RedirectURL())
	emit(progress, openBrowserUpdate(2, total, fmt.Sprintf("the %s consent page", platform)))
	if err := e.browser(connectURL); err != nil {
		return models.SocialAccount{}, fmt.Errorf("failed to open browser: %w", err)
	}

	emit(progress, awaitCallbackUpdate(3, total))
	result, err := srv.Wait(ctx, FlowTimeout)
	if err != nil {
		return models.SocialAccount{}, err
	}

	if _, err := e.controller.ApplyCallback(ctx, result); err != nil {
		return models.SocialAccount{}, err
	}
	if result.Kind != server.ConnectResult {
		return models.SocialAccount{}, fmt.Errorf("%w: unexpected redirect", shared.ErrAuthFailed)
	}

	emit(progress, ProgressUpdate{Phase: ApplyResult, Step: 4, Total: total, Message: "Refreshing accounts..."})
	if err := e.accounts.Refresh(ctx); err != nil {
		return models.SocialAccount{}, err
	}

	for _, account := range e.accounts.Accounts() {
		if account.Platform == platform {
			emit(progress, connectedUpdate(5, total, account))
			return account, nil
		}
	}
	return models.SocialAccount{}, shared.ErrAccountNotFound
}

// Checkout runs the hosted checkout flow for a premium upgrade.
func (e *FlowEngine) Checkout(ctx context.Context, progress chan<- ProgressUpdate) (bool, error) {
	total := 4
	srv := server.NewCallbackServer(e.config.Callback.Addr(), e.logger)
	srv.Start()
	defer srv.Shutdown(context.WithoutCancel(ctx))
	emit(progress, startListenerUpdate(1, total, e.config.Callback.Addr()))

	checkoutURL, err := e.client.CreateCheckoutSession(ctx)
	if err != nil {
		return false, err
	}

	emit(progress, openBrowserUpdate(2, total, "the checkout page"))
	if err := e.browser(checkoutURL); err != nil {
		return false, fmt.Errorf("failed to open browser: %w", err)
	}

	emit(progress, awaitCallbackUpdate(3, total))
	result, err := srv.Wait(ctx, FlowTimeout)
	if err != nil {
		return false, err
	}
	if result.Kind != server.CheckoutResult {
		return false, fmt.Errorf("%w: unexpected redirect", shared.ErrInvalidInput)
	}

	emit(progress, checkoutDoneUpdate(4, total, result.Completed))
	return result.Completed, nil
}

// connectURL builds the backend's platform consent entry point. The bearer
// token rides along as a query parameter because the browser hop cannot
// carry a header.
func (e *FlowEngine) connectURL(platform models.Platform, redirect string) string {
	u := fmt.Sprintf("%s/api/social-accounts/%s?redirect_uri=%s",
		e.client.BaseURL(), platform.Slug(), url.QueryEscape(redirect))
	if token := e.client.Token(); token != "" {
		u += "&token=" + url.QueryEscape(token)
	}
	return u
}

// emit sends without blocking so a slow consumer never stalls a flow.
func emit(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
