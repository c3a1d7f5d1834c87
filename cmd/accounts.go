package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/nkurelo/socialdash/internal/formatter"
	"github.com/nkurelo/socialdash/internal/models"
	"github.com/nkurelo/socialdash/internal/shared"
	"github.com/nkurelo/socialdash/internal/tasks"
)

// AccountsList prints the portfolio summary and every connected account.
func (r *Runner) AccountsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}

	if err := r.accounts.Refresh(ctx); err != nil {
		r.logger.Warn("refresh failed, collection may be empty", "error", err)
	}

	accounts := r.accounts.Accounts()
	summary := r.accounts.Summary()

	if cmd.Bool("json") {
		return r.writeJSON(struct {
			Summary  models.Summary         `json:"summary"`
			Accounts []models.SocialAccount `json:"accounts"`
		}{summary, accounts}, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("%s · Score %d", summary.Label, summary.AverageScore))
	r.writePlain("Accounts: %d · Followers: %s · Posts: %s\n\n",
		summary.AccountCount,
		formatter.FormatNumber(summary.TotalFollowers),
		formatter.FormatNumber(summary.TotalPosts))

	if len(accounts) == 0 {
		return r.writePlain("No accounts connected. Run 'socialdash accounts connect <platform>'.\n")
	}

	for _, account := range accounts {
		r.writePlain("%s %s · @%s [%s]\n", account.Platform.Icon(), account.Platform, account.Username, account.ID)
		r.writePlain("   score %d · %s followers · %s posts · synced %s\n",
			account.Metrics.EngagementScore,
			formatter.FormatNumber(account.Metrics.Connections),
			formatter.FormatNumber(account.Metrics.Posts),
			formatter.FormatTimeAgo(account.LastSynced))
	}
	return nil
}

// AccountsConnect attaches a platform account through the browser flow, or
// a demo account with --demo.
func (r *Runner) AccountsConnect(ctx context.Context, cmd *cli.Command) error {
	platform, err := models.ParsePlatform(cmd.StringArg("platform"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}

	if err := r.accounts.Refresh(ctx); err != nil {
		return err
	}

	var account models.SocialAccount
	if cmd.Bool("demo") {
		account, err = r.accounts.ConnectDemo(ctx, platform)
	} else {
		progress := make(chan tasks.ProgressUpdate, 10)
		done := make(chan struct{})
		go r.drainProgress(progress, done)
		account, err = r.engine.Connect(ctx, progress, platform)
		close(done)
	}

	if err != nil {
		if errors.Is(err, shared.ErrAccountLimit) {
			r.writePlain("Account limit reached. Run 'socialdash subscription upgrade' to connect more.\n")
		}
		return err
	}

	return r.writePlain("✓ Connected %s as @%s\n", account.Platform, account.Username)
}

// AccountsSync refreshes one account's metrics.
func (r *Runner) AccountsSync(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: account id", shared.ErrMissingArgument)
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}
	if err := r.accounts.Refresh(ctx); err != nil {
		return err
	}

	account, err := r.accounts.Sync(ctx, id)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	return r.writePlain("✓ Synced @%s · score %d\n", account.Username, account.Metrics.EngagementScore)
}

// AccountsDisconnect removes an account from the collection.
func (r *Runner) AccountsDisconnect(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: account id", shared.ErrMissingArgument)
	}

	if err := r.requireSession(ctx); err != nil {
		return err
	}
	if err := r.accounts.Refresh(ctx); err != nil {
		return err
	}

	if err := r.accounts.Delete(ctx, id); err != nil {
		return fmt.Errorf("disconnect failed: %w", err)
	}

	return r.writePlain("✓ Account disconnected\n")
}

// AccountsExport writes the collection as CSV or Markdown.
func (r *Runner) AccountsExport(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(ctx); err != nil {
		return err
	}
	if err := r.accounts.Refresh(ctx); err != nil {
		return err
	}

	accounts := r.accounts.Accounts()

	var data []byte
	var err error
	switch format := cmd.String("format"); format {
	case "csv":
		data, err = formatter.ExportToCSV(accounts)
	case "markdown", "md":
		data, err = formatter.ExportToMarkdown(accounts, r.accounts.Summary())
	default:
		return fmt.Errorf("%w: format %q (want csv or markdown)", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if path := cmd.String("output"); path != "" {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		return r.writePlain("✓ Exported %d accounts to %s\n", len(accounts), path)
	}

	_, err = r.output.Write(data)
	return err
}

// AccountsHistory shows the local activity log.
func (r *Runner) AccountsHistory(ctx context.Context, cmd *cli.Command) error {
	if r.syncLog == nil {
		return fmt.Errorf("%w: run 'socialdash setup' to enable history", shared.ErrMissingConfig)
	}

	entries, err := r.syncLog.Recent(int(cmd.Int("limit")))
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(entries) == 0 {
		return r.writePlain("No activity recorded yet.\n")
	}

	r.writePlainHeader("Recent Activity")
	for _, entry := range entries {
		r.writePlain("%s  %-10s %-10s %s [%s]\n",
			entry.CreatedAt.Format("2006-01-02 15:04"),
			entry.Action, entry.Outcome, entry.Platform, entry.AccountID)
	}
	return nil
}
