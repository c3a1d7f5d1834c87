package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nkurelo/socialdash/internal/formatter"
	"github.com/nkurelo/socialdash/internal/models"
	"github.com/nkurelo/socialdash/internal/shared"
)

// LinkedInPosts shows the recent post feed for a company account.
func (r *Runner) LinkedInPosts(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: account id", shared.ErrMissingArgument)
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	posts, err := r.client.LinkedInPosts(ctx, id, int(cmd.Int("limit")))
	if err != nil {
		return fmt.Errorf("failed to fetch posts: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(posts, true)
	}

	if len(posts) == 0 {
		return r.writePlain("No posts.\n")
	}

	r.writePlainHeader("Recent Posts")
	if account, err := r.client.Account(ctx, id); err == nil && account.Metrics.FollowersGained > 0 {
		r.writePlain("+%s followers this period\n\n", formatter.FormatNumber(account.Metrics.FollowersGained))
	}
	for _, post := range posts {
		r.writePlain("%s\n", post.Text)
		r.writePlain("  %s impressions · %d likes · %d comments · %d shares · %.1f%% engagement\n",
			formatter.FormatNumber(post.ImpressionCount),
			post.LikeCount, post.CommentCount, post.ShareCount, post.EngagementRate)
	}
	return nil
}

// LinkedInMetrics overwrites a personal account's metrics with the flag
// values. All four are required so the update is always a full replacement.
func (r *Runner) LinkedInMetrics(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: account id", shared.ErrMissingArgument)
	}

	metrics := models.ManualMetrics{
		Connections:      int(cmd.Int("connections")),
		Posts:            int(cmd.Int("posts")),
		PendingResponses: int(cmd.Int("pending")),
		NewMessages:      int(cmd.Int("messages")),
	}
	if metrics.Connections < 0 || metrics.Posts < 0 || metrics.PendingResponses < 0 || metrics.NewMessages < 0 {
		return fmt.Errorf("%w: metrics must be non-negative", shared.ErrInvalidInput)
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	account, err := r.client.LinkedInManualMetrics(ctx, id, metrics)
	if err != nil {
		return fmt.Errorf("failed to update metrics: %w", err)
	}

	return r.writePlain("✓ Metrics updated for @%s · score %d\n",
		account.Username, account.Metrics.EngagementScore)
}
