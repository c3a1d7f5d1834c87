package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/nkurelo/socialdash/internal/models"
	"github.com/nkurelo/socialdash/internal/shared"
)

// MaxPictureSize caps profile picture uploads at 5MB.
const MaxPictureSize = 5 * 1024 * 1024

var pictureTypes = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// Me fetches the authenticated user's profile. A 401 here tears the
// session down via the client's expiry hook.
func (c *Client) Me(ctx context.Context) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.Call(ctx, http.MethodGet, IdentityPath, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Logout notifies the backend that the session ended. Failures are the
// caller's to ignore, local state is already cleared by then.
func (c *Client) Logout(ctx context.Context) error {
	return c.Call(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// SubscriptionStatus fetches the user's current plan tier.
func (c *Client) SubscriptionStatus(ctx context.Context) (*models.Subscription, error) {
	var sub models.Subscription
	if err := c.Call(ctx, http.MethodGet, "/api/subscription/status", nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// CreateCheckoutSession asks the backend for a hosted checkout URL to
// upgrade the account.
func (c *Client) CreateCheckoutSession(ctx context.Context) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	if err := c.Call(ctx, http.MethodPost, "/api/subscription/create-checkout-session", nil, &resp); err != nil {
		return "", err
	}
	if resp.URL == "" {
		return "", fmt.Errorf("%w: checkout session missing url", shared.ErrAPIRequest)
	}
	return resp.URL, nil
}

// Accounts fetches every connected social account.
func (c *Client) Accounts(ctx context.Context) ([]models.SocialAccount, error) {
	var accounts []models.SocialAccount
	if err := c.Call(ctx, http.MethodGet, "/api/social-accounts", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// Account fetches a single account by ID.
func (c *Client) Account(ctx context.Context, id string) (*models.SocialAccount, error) {
	var account models.SocialAccount
	path := "/api/social-accounts/" + url.PathEscape(id)
	if err := c.Call(ctx, http.MethodGet, path, nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// ConnectDemo asks the backend to attach a demo account for the platform.
func (c *Client) ConnectDemo(ctx context.Context, platform models.Platform) (*models.SocialAccount, error) {
	var account models.SocialAccount
	path := "/api/social-accounts/" + platform.Slug()
	if err := c.Call(ctx, http.MethodGet, path, nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Sync asks the backend to refresh one account's metrics.
func (c *Client) Sync(ctx context.Context, id string) (*models.SocialAccount, error) {
	var account models.SocialAccount
	path := "/api/social-accounts/" + url.PathEscape(id) + "/sync"
	if err := c.Call(ctx, http.MethodPost, path, nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Delete disconnects an account.
func (c *Client) Delete(ctx context.Context, id string) error {
	path := "/api/social-accounts/" + url.PathEscape(id)
	return c.Call(ctx, http.MethodDelete, path, nil, nil)
}

// UploadPicture sends a new profile picture as multipart form data.
// Only jpeg, png and gif up to 5MB are accepted, checked locally before
// any bytes leave the machine.
func (c *Client) UploadPicture(ctx context.Context, path string) (*models.UserProfile, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !pictureTypes[ext] {
		return nil, fmt.Errorf("%w: %s (want jpeg, png or gif)", shared.ErrUnsupportedType, ext)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read picture: %w", err)
	}
	if info.Size() > MaxPictureSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", shared.ErrFileTooLarge, info.Size(), MaxPictureSize)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open picture: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("picture", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read picture: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	var profile models.UserProfile
	if err := c.do(ctx, http.MethodPost, "/auth/me/picture/upload", writer.FormDataContentType(), &buf, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// FacebookMessages fetches the latest messages for a Facebook account.
// Only the five most recent are kept regardless of how many the backend
// returns.
func (c *Client) FacebookMessages(ctx context.Context, accountID string) ([]models.Message, error) {
	var messages []models.Message
	path := "/api/facebook/" + url.PathEscape(accountID) + "/messages"
	if err := c.Call(ctx, http.MethodGet, path, nil, &messages); err != nil {
		return nil, err
	}
	if len(messages) > 5 {
		messages = messages[:5]
	}
	return messages, nil
}

// FacebookSend posts a reply into a Facebook conversation. There is no
// demo fallback here, messaging is a live-account feature.
func (c *Client) FacebookSend(ctx context.Context, accountID, recipientID, text string) error {
	body := map[string]string{
		"recipientId": recipientID,
		"message":     text,
	}
	path := "/api/facebook/" + url.PathEscape(accountID) + "/messages/send"
	return c.Call(ctx, http.MethodPost, path, body, nil)
}

// LinkedInPosts fetches recent posts for a LinkedIn company account.
func (c *Client) LinkedInPosts(ctx context.Context, accountID string, limit int) ([]models.Post, error) {
	if limit <= 0 {
		limit = 10
	}
	var posts []models.Post
	path := fmt.Sprintf("/api/linkedin/%s/posts?limit=%d", url.PathEscape(accountID), limit)
	if err := c.Call(ctx, http.MethodGet, path, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// LinkedInManualMetrics overwrites a personal LinkedIn account's metrics
// with values the user entered by hand. All four fields are sent every
// time so the backend treats the payload as a full replacement.
func (c *Client) LinkedInManualMetrics(ctx context.Context, accountID string, metrics models.ManualMetrics) (*models.SocialAccount, error) {
	var account models.SocialAccount
	path := "/api/linkedin/" + url.PathEscape(accountID) + "/manual-metrics"
	if err := c.Call(ctx, http.MethodPost, path, metrics, &account); err != nil {
		return nil, err
	}
	return &account, nil
}
