package main

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/urfave/cli/v3"

	"github.com/nkurelo/socialdash/internal/tasks"
)

// AuthLogin runs the browser login flow and stores the returned token.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if r.keychain.Token() != "" {
		if _, err := r.controller.Resolve(ctx); err == nil {
			return r.writePlain("Already logged in as %s\n", r.controller.Profile().DisplayName())
		}
	}

	progress := make(chan tasks.ProgressUpdate, 10)
	done := make(chan struct{})
	go func() {
		r.drainProgress(progress, done)
	}()

	profile, err := r.engine.Login(ctx, progress)
	close(done)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	return r.writePlain("✓ Logged in as %s\n", profile.DisplayName())
}

// AuthLogout clears local credentials and notifies the backend.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	r.controller.Logout(ctx)
	return r.writePlain("✓ Logged out\n")
}

// AuthStatus shows whether a session exists, the token's expiry when it is
// a JWT, and whether the backend still honors it.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	token := r.keychain.Token()

	status := struct {
		HasToken     string `json:"token"`
		TokenExpires string `json:"tokenExpires,omitempty"`
		Session      string `json:"session"`
		User         string `json:"user,omitempty"`
	}{HasToken: "absent", Session: "invalid"}

	if token != "" {
		status.HasToken = "present"
		if expiry := tokenExpiry(token); !expiry.IsZero() {
			status.TokenExpires = expiry.Format(time.RFC3339)
		}
	}

	if _, err := r.controller.Resolve(ctx); err == nil {
		status.Session = "active"
		status.User = r.controller.Profile().DisplayName()
	}

	if cmd.Bool("json") {
		return r.writeJSON(status, true)
	}

	r.writePlainHeader("Authentication Status")
	r.writePlain("Token: %s\n", status.HasToken)
	if status.TokenExpires != "" {
		r.writePlain("Expires: %s\n", status.TokenExpires)
	}
	if status.Session == "active" {
		r.writePlain("Session: ✓ active (%s)\n", status.User)
	} else {
		r.writePlain("Session: ✗ not logged in\n")
	}
	return nil
}

// tokenExpiry decodes the token's exp claim without verifying the
// signature. Verification is the backend's job, this is display only.
func tokenExpiry(token string) time.Time {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}

	expiry, err := parsed.Claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}
	}
	return expiry.Time
}
