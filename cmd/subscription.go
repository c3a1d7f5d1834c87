package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nkurelo/socialdash/internal/models"
	"github.com/nkurelo/socialdash/internal/tasks"
)

// SubscriptionStatus shows the current plan tier.
func (r *Runner) SubscriptionStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	sub, err := r.client.SubscriptionStatus(ctx)
	if err != nil {
		// Billing must never block rendering, unknown means free
		r.logger.Warn("subscription status unavailable, assuming free", "error", err)
		sub = &models.Subscription{Tier: models.TierFree}
	}

	if cmd.Bool("json") {
		return r.writeJSON(sub, true)
	}

	if sub.IsPremium() {
		return r.writePlain("Plan: ✦ premium (unlimited accounts)\n")
	}
	return r.writePlain("Plan: free\nRun 'socialdash subscription upgrade' for unlimited accounts.\n")
}

// SubscriptionUpgrade runs the hosted checkout flow in the browser.
func (r *Runner) SubscriptionUpgrade(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	sub, err := r.client.SubscriptionStatus(ctx)
	if err == nil && sub.IsPremium() {
		return r.writePlain("Already on premium.\n")
	}

	progress := make(chan tasks.ProgressUpdate, 10)
	done := make(chan struct{})
	go r.drainProgress(progress, done)

	completed, err := r.engine.Checkout(ctx, progress)
	close(done)
	if err != nil {
		return fmt.Errorf("checkout failed: %w", err)
	}

	if !completed {
		return r.writePlain("Checkout canceled.\n")
	}
	return r.writePlain("✓ Upgrade complete, welcome to premium\n")
}
