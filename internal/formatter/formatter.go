// package formatter provides display helpers and account export functions (CSV, Markdown)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nkurelo/socialdash/internal/models"
)

// FormatNumber renders a count the way the dashboard cards do: exact below
// a thousand, one decimal with a K suffix below a million, M above.
func FormatNumber(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.Itoa(n)
	}
}

// FormatTimeAgo renders a timestamp as a coarse relative age.
func FormatTimeAgo(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	default:
		return plural(int(d.Hours()/24), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// CapitalizePlatform renders a platform slug in its display form, e.g.
// "tiktok" becomes "TikTok". Unknown names get a plain first-letter
// capitalization.
func CapitalizePlatform(name string) string {
	if platform, err := models.ParsePlatform(name); err == nil {
		return platform.String()
	}
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + strings.ToLower(name[1:])
}

// ExportToCSV converts the account collection to CSV with columns:
// ID, Platform, Username, Type, Score, Connections, Posts, Pending, Messages, LastSynced
func ExportToCSV(accounts []models.SocialAccount) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Platform", "Username", "Type", "Score", "Connections", "Posts", "Pending", "Messages", "LastSynced"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, account := range accounts {
		synced := ""
		if !account.LastSynced.IsZero() {
			synced = account.LastSynced.Format(time.RFC3339)
		}
		record := []string{
			account.ID,
			account.Platform.String(),
			account.Username,
			string(account.Type()),
			strconv.Itoa(account.Metrics.EngagementScore),
			strconv.Itoa(account.Metrics.Connections),
			strconv.Itoa(account.Metrics.Posts),
			strconv.Itoa(account.Metrics.PendingResponses),
			strconv.Itoa(account.Metrics.NewMessages),
			synced,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts the account collection and its summary to a
// Markdown report.
func ExportToMarkdown(accounts []models.SocialAccount, summary models.Summary) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Social Dashboard\n\n")
	buf.WriteString(fmt.Sprintf("**%s** | Average score: %d | Accounts: %d\n\n",
		summary.Label, summary.AverageScore, summary.AccountCount))
	buf.WriteString(fmt.Sprintf("Total followers: %s | Total posts: %s\n\n",
		FormatNumber(summary.TotalFollowers), FormatNumber(summary.TotalPosts)))

	if len(accounts) == 0 {
		buf.WriteString("*No accounts connected.*\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("| Platform | Username | Score | Followers | Posts | Last Synced |\n")
	buf.WriteString("|----------|----------|-------|-----------|-------|-------------|\n")

	for _, account := range accounts {
		buf.WriteString(fmt.Sprintf("| %s %s | @%s | %d | %s | %s | %s |\n",
			account.Platform.Icon(),
			account.Platform,
			account.Username,
			account.Metrics.EngagementScore,
			FormatNumber(account.Metrics.Connections),
			FormatNumber(account.Metrics.Posts),
			FormatTimeAgo(account.LastSynced),
		))
	}

	return buf.Bytes(), nil
}
