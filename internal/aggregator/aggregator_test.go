package aggregator

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nkurelo/socialdash/internal/api"
	"github.com/nkurelo/socialdash/internal/models"
	"github.com/nkurelo/socialdash/internal/shared"
)

func newTestAggregator(t *testing.T, handler http.Handler) *Aggregator {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := api.NewClient(api.Opts{
		BaseURL: srv.URL,
		Logger:  shared.NewLogger(io.Discard),
	})
	return New(client, nil, shared.NewLogger(io.Discard))
}

func TestRefresh(t *testing.T) {
	t.Run("loads accounts from backend", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id":"a1","platform":"Twitter","metrics":{"engagementScore":75}}]`))
		})
		agg := newTestAggregator(t, handler)

		if err := agg.Refresh(context.Background()); err != nil {
			t.Fatalf("expected refresh to succeed, got %v", err)
		}

		accounts := agg.Accounts()
		if len(accounts) != 1 {
			t.Fatalf("expected 1 account, got %d", len(accounts))
		}

		if accounts[0].Platform != models.Twitter {
			t.Errorf("expected Twitter, got %s", accounts[0].Platform)
		}
	})

	t.Run("degrades to empty collection on failure", func(t *testing.T) {
		ok := true
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !ok {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`[{"id":"a1","platform":"Twitter"}]`))
		})
		agg := newTestAggregator(t, handler)

		if err := agg.Refresh(context.Background()); err != nil {
			t.Fatal(err)
		}

		ok = false
		if err := agg.Refresh(context.Background()); err == nil {
			t.Fatal("expected refresh to fail")
		}

		if got := len(agg.Accounts()); got != 0 {
			t.Errorf("expected stale accounts dropped, got %d", got)
		}
	})
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name      string
		scores    []int
		wantScore int
		wantLabel string
	}{
		{"empty collection", nil, 0, "No Accounts Connected"},
		{"high scores", []int{85, 90}, 88, "Crushing It"},
		{"boundary eighty", []int{80}, 80, "Crushing It"},
		{"mid range", []int{60, 70}, 65, "Doing Well"},
		{"needs attention", []int{40, 45}, 43, "Needs Attention"},
		{"low but nonzero", []int{1}, 1, "Falling Behind"},
		{"all zero", []int{0, 0}, 0, "Getting Started"},
		{"rounds half up", []int{70, 75}, 73, "Doing Well"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			agg := New(nil, nil, shared.NewLogger(io.Discard))
			accounts := make([]models.SocialAccount, len(tc.scores))
			for i, score := range tc.scores {
				accounts[i] = models.SocialAccount{
					ID:       shared.GenerateID(),
					Platform: models.Twitter,
					Metrics:  models.Metrics{EngagementScore: score, Connections: 100, Posts: 10},
				}
			}
			agg.setAccounts(accounts)

			summary := agg.Summary()
			if summary.AverageScore != tc.wantScore {
				t.Errorf("expected average %d, got %d", tc.wantScore, summary.AverageScore)
			}

			if summary.Label != tc.wantLabel {
				t.Errorf("expected label %q, got %q", tc.wantLabel, summary.Label)
			}
		})
	}

	t.Run("totals followers and posts", func(t *testing.T) {
		agg := New(nil, nil, shared.NewLogger(io.Discard))
		agg.setAccounts([]models.SocialAccount{
			{ID: "a1", Metrics: models.Metrics{Connections: 1200, Posts: 30}},
			{ID: "a2", Metrics: models.Metrics{Connections: 800, Posts: 20}},
		})

		summary := agg.Summary()
		if summary.TotalFollowers != 2000 {
			t.Errorf("expected 2000 followers, got %d", summary.TotalFollowers)
		}

		if summary.TotalPosts != 50 {
			t.Errorf("expected 50 posts, got %d", summary.TotalPosts)
		}
	})
}

func TestConnectDemo(t *testing.T) {
	t.Run("fabricates locally when backend declines", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		agg := newTestAggregator(t, handler)

		account, err := agg.ConnectDemo(context.Background(), models.Instagram)
		if err != nil {
			t.Fatalf("expected local fallback, got %v", err)
		}

		if !IsDemo(account) {
			t.Errorf("expected fabricated demo id, got %q", account.ID)
		}

		if account.Username != "yourinstagram" {
			t.Errorf("expected username yourinstagram, got %q", account.Username)
		}

		score := account.Metrics.EngagementScore
		if score < 60 || score >= 100 {
			t.Errorf("expected score in [60,100), got %d", score)
		}

		if !agg.Connected(models.Instagram) {
			t.Error("expected collection to hold the new account")
		}
	})

	t.Run("prefers backend account when available", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/social-accounts/tiktok" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Write([]byte(`{"id":"srv-1","platform":"TikTok","username":"yourtiktok"}`))
		})
		agg := newTestAggregator(t, handler)

		account, err := agg.ConnectDemo(context.Background(), models.TikTok)
		if err != nil {
			t.Fatal(err)
		}

		if account.ID != "srv-1" {
			t.Errorf("expected backend account, got %q", account.ID)
		}
	})
}

func TestSync(t *testing.T) {
	t.Run("bumps score locally on failure", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		agg := newTestAggregator(t, handler)
		agg.setAccounts([]models.SocialAccount{{
			ID:       "demo-abc",
			Platform: models.YouTube,
			Metrics:  models.Metrics{EngagementScore: 98},
		}})

		account, err := agg.Sync(context.Background(), "demo-abc")
		if err != nil {
			t.Fatalf("expected demo fallback, got %v", err)
		}

		score := account.Metrics.EngagementScore
		if score < 98 || score > 100 {
			t.Errorf("expected score in [98,100], got %d", score)
		}

		if account.LastSynced.IsZero() {
			t.Error("expected last synced to be stamped")
		}
	})

	t.Run("real account also falls back locally", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		agg := newTestAggregator(t, handler)
		agg.setAccounts([]models.SocialAccount{{
			ID:       "real-1",
			Platform: models.YouTube,
			Metrics:  models.Metrics{EngagementScore: 70},
		}})

		account, err := agg.Sync(context.Background(), "real-1")
		if err != nil {
			t.Fatalf("expected local fallback, got %v", err)
		}

		if score := account.Metrics.EngagementScore; score < 70 || score > 74 {
			t.Errorf("expected score in [70,74], got %d", score)
		}
	})

	t.Run("unknown account propagates failure", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		agg := newTestAggregator(t, handler)

		if _, err := agg.Sync(context.Background(), "nope"); err == nil {
			t.Fatal("expected sync of an unknown account to fail")
		}
	})
}

func TestDelete(t *testing.T) {
	t.Run("removed locally on failure", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		agg := newTestAggregator(t, handler)
		agg.setAccounts([]models.SocialAccount{
			{ID: "demo-abc", Platform: models.Snapchat},
			{ID: "real-1", Platform: models.Twitter},
		})

		if err := agg.Delete(context.Background(), "demo-abc"); err != nil {
			t.Fatalf("expected local fallback, got %v", err)
		}

		accounts := agg.Accounts()
		if len(accounts) != 1 || accounts[0].ID != "real-1" {
			t.Errorf("expected only real-1 to remain, got %v", accounts)
		}
	})

	t.Run("real account gone immediately when backend fails", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		agg := newTestAggregator(t, handler)
		agg.setAccounts([]models.SocialAccount{{ID: "real-1", Platform: models.Twitter}})

		if err := agg.Delete(context.Background(), "real-1"); err != nil {
			t.Fatalf("expected local fallback, got %v", err)
		}

		if len(agg.Accounts()) != 0 {
			t.Error("expected account removed despite backend failure")
		}
	})
}
