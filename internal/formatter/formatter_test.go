package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/nkurelo/socialdash/internal/models"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{25400, "25.4K"},
		{999999, "1000.0K"},
		{1000000, "1.0M"},
		{1500000, "1.5M"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := FormatNumber(tc.n); got != tc.want {
				t.Errorf("FormatNumber(%d) = %q, want %q", tc.n, got, tc.want)
			}
		})
	}
}

func TestCapitalizePlatform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"tiktok", "TikTok"},
		{"LINKEDIN", "LinkedIn"},
		{"instagram", "Instagram"},
		{"myspace", "Myspace"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := CapitalizePlatform(tc.in); got != tc.want {
			t.Errorf("CapitalizePlatform(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatTimeAgo(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero time", time.Time{}, "never"},
		{"seconds ago", time.Now().Add(-30 * time.Second), "just now"},
		{"one minute", time.Now().Add(-90 * time.Second), "1 minute ago"},
		{"minutes", time.Now().Add(-5 * time.Minute), "5 minutes ago"},
		{"hours", time.Now().Add(-3 * time.Hour), "3 hours ago"},
		{"days", time.Now().Add(-49 * time.Hour), "2 days ago"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatTimeAgo(tc.t); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestExportToCSV(t *testing.T) {
	accounts := []models.SocialAccount{
		{
			ID:       "a1",
			Platform: models.Twitter,
			Username: "nina",
			Metrics:  models.Metrics{EngagementScore: 72, Connections: 1200, Posts: 88},
		},
	}

	data, err := ExportToCSV(accounts)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one record, got %d lines", len(lines))
	}

	if !strings.HasPrefix(lines[0], "ID,Platform,Username") {
		t.Errorf("unexpected header: %s", lines[0])
	}

	if !strings.Contains(lines[1], "Twitter,nina,personal,72,1200,88") {
		t.Errorf("unexpected record: %s", lines[1])
	}
}

func TestExportToMarkdown(t *testing.T) {
	t.Run("empty collection", func(t *testing.T) {
		summary := models.Summary{Label: "No Accounts Connected"}

		data, err := ExportToMarkdown(nil, summary)
		if err != nil {
			t.Fatal(err)
		}

		if !strings.Contains(string(data), "No accounts connected") {
			t.Errorf("expected empty notice, got:\n%s", data)
		}
	})

	t.Run("renders table row per account", func(t *testing.T) {
		accounts := []models.SocialAccount{
			{ID: "a1", Platform: models.LinkedIn, Username: "nina", Metrics: models.Metrics{EngagementScore: 81, Connections: 2500}},
		}
		summary := models.Summary{AccountCount: 1, AverageScore: 81, Label: "Crushing It", TotalFollowers: 2500}

		data, err := ExportToMarkdown(accounts, summary)
		if err != nil {
			t.Fatal(err)
		}

		out := string(data)
		if !strings.Contains(out, "**Crushing It**") {
			t.Errorf("expected summary label, got:\n%s", out)
		}

		if !strings.Contains(out, "| @nina | 81 | 2.5K |") {
			t.Errorf("expected account row, got:\n%s", out)
		}
	})
}
