// package models defines the data model for the social engagement dashboard client
package models

import (
	"fmt"
	"strings"
	"time"
)

// Platform identifies a social network the backend can connect.
type Platform string

const (
	Facebook  Platform = "Facebook"
	Instagram Platform = "Instagram"
	Twitter   Platform = "Twitter"
	LinkedIn  Platform = "LinkedIn"
	TikTok    Platform = "TikTok"
	YouTube   Platform = "YouTube"
	Snapchat  Platform = "Snapchat"
)

// AllPlatforms lists every platform the dashboard knows how to render,
// in the order the account picker shows them.
var AllPlatforms = []Platform{Facebook, Instagram, Twitter, LinkedIn, TikTok, YouTube, Snapchat}

// ParsePlatform resolves a case-insensitive platform name.
func ParsePlatform(name string) (Platform, error) {
	for _, p := range AllPlatforms {
		if strings.EqualFold(string(p), name) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown platform: %s", name)
}

// String returns the platform's canonical display name.
func (p Platform) String() string { return string(p) }

// Slug returns the lowercase form used in callback query parameters
// (e.g. "facebook_connected").
func (p Platform) Slug() string { return strings.ToLower(string(p)) }

// Icon returns a short glyph for terminal rendering.
func (p Platform) Icon() string {
	switch p {
	case Facebook:
		return "f"
	case Instagram:
		return "📷"
	case Twitter:
		return "🐦"
	case LinkedIn:
		return "in"
	case TikTok:
		return "🎵"
	case YouTube:
		return "▶"
	case Snapchat:
		return "👻"
	default:
		return "📱"
	}
}

// Capability describes which detail surfaces a platform dashboard exposes.
// A single renderer parameterized by Capability replaces per-platform views.
type Capability struct {
	HasMessages      bool // message inbox and send form
	HasPosts         bool // recent post feed with per-post metrics
	HasManualMetrics bool // user-entered metrics for account types without API analytics
}

// Capabilities returns the detail surfaces available for the platform.
func (p Platform) Capabilities() Capability {
	switch p {
	case Facebook:
		return Capability{HasMessages: true}
	case LinkedIn:
		return Capability{HasPosts: true, HasManualMetrics: true}
	default:
		return Capability{}
	}
}

// AccountType distinguishes account sub-types: company pages expose an
// API-sourced post feed, personal profiles rely on manual metrics.
type AccountType string

const (
	PersonalAccount AccountType = "personal"
	CompanyAccount  AccountType = "company"
)

// UserProfile is the authenticated user as returned by GET /auth/me.
type UserProfile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
}

// DisplayName prefers the profile name, falling back to the email address.
func (u UserProfile) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// Metrics holds per-account engagement figures.
type Metrics struct {
	EngagementScore  int `json:"engagementScore"`
	Connections      int `json:"connections"`
	Posts            int `json:"posts"`
	PendingResponses int `json:"pendingResponses"`
	NewMessages      int `json:"newMessages"`
	FollowersGained  int `json:"followersGained,omitempty"`
}

// ManualMetrics are user-entered substitutes for unavailable API analytics.
// Submitting them overwrites the stored values, it is not a delta.
type ManualMetrics struct {
	Connections      int `json:"connections"`
	Posts            int `json:"posts"`
	PendingResponses int `json:"pendingResponses"`
	NewMessages      int `json:"newMessages"`
}

// SocialAccount is a connected platform account owned by the aggregator.
// Identity is ID; uniqueness within the collection is assumed, not enforced.
type SocialAccount struct {
	ID             string         `json:"id"`
	Platform       Platform       `json:"platform"`
	PlatformUserID string         `json:"platformUserId,omitempty"`
	Username       string         `json:"username"`
	AccountType    AccountType    `json:"accountType,omitempty"`
	Metrics        Metrics        `json:"metrics"`
	ManualMetrics  *ManualMetrics `json:"manualMetrics,omitempty"`
	ConnectedAt    time.Time      `json:"connectedAt,omitempty"`
	LastSynced     time.Time      `json:"lastSynced,omitempty"`
}

// Type returns the account sub-type, defaulting to personal.
func (a SocialAccount) Type() AccountType {
	if a.AccountType == CompanyAccount {
		return CompanyAccount
	}
	return PersonalAccount
}

// Subscription tiers. Unavailable status never blocks rendering, callers
// default to FREE.
const (
	TierFree    = "FREE"
	TierPremium = "PREMIUM"
)

// Subscription is the billing tier as returned by GET /api/subscription/status.
type Subscription struct {
	Tier string `json:"tier"`
}

// IsPremium reports whether the subscription allows unlimited accounts.
func (s Subscription) IsPremium() bool { return s.Tier == TierPremium }

// Message is an inbox entry for platforms with a message surface.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	Text       string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

// Sender prefers the display name over the raw sender ID.
func (m Message) Sender() string {
	if m.SenderName != "" {
		return m.SenderName
	}
	if m.SenderID != "" {
		return m.SenderID
	}
	return "Unknown"
}

// Post is a feed entry for platforms with a post surface.
type Post struct {
	ID              string    `json:"id"`
	Text            string    `json:"text"`
	CreatedAt       time.Time `json:"createdAt"`
	ImpressionCount int       `json:"impressionCount"`
	LikeCount       int       `json:"likeCount"`
	CommentCount    int       `json:"commentCount"`
	ShareCount      int       `json:"shareCount"`
	EngagementRate  float64   `json:"engagementRate"`
}

// Summary is derived deterministically from the account collection on every
// change and never persisted.
type Summary struct {
	AccountCount   int    `json:"accountCount"`
	AverageScore   int    `json:"averageScore"`
	TotalFollowers int    `json:"totalFollowers"`
	TotalPosts     int    `json:"totalPosts"`
	Label          string `json:"label"`
}
