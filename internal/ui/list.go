package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/nkurelo/socialdash/internal/formatter"
	"github.com/nkurelo/socialdash/internal/models"
)

var (
	_ list.Item = accountItem{}
	_ list.Item = platformItem{}
	_ list.Item = messageItem{}
	_ list.Item = postItem{}
)

// accountItem wraps [models.SocialAccount] to implement [list.Item].
type accountItem struct {
	account models.SocialAccount
}

func (i accountItem) FilterValue() string { return i.account.Username }
func (i accountItem) Title() string {
	return fmt.Sprintf("%s %s · @%s", i.account.Platform.Icon(), i.account.Platform, i.account.Username)
}
func (i accountItem) Description() string {
	m := i.account.Metrics
	return fmt.Sprintf("score %d · %s followers · %s posts · synced %s",
		m.EngagementScore,
		formatter.FormatNumber(m.Connections),
		formatter.FormatNumber(m.Posts),
		formatter.FormatTimeAgo(i.account.LastSynced))
}

// platformItem wraps [models.Platform] for the connect picker.
type platformItem struct {
	platform  models.Platform
	connected bool
}

func (i platformItem) FilterValue() string { return i.platform.String() }
func (i platformItem) Title() string {
	return fmt.Sprintf("%s %s", i.platform.Icon(), i.platform)
}
func (i platformItem) Description() string {
	if i.connected {
		return "already connected"
	}
	return "not connected"
}

// messageItem wraps [models.Message] to implement [list.Item].
type messageItem struct {
	message models.Message
}

func (i messageItem) FilterValue() string { return i.message.Sender() }
func (i messageItem) Title() string       { return i.message.Sender() }
func (i messageItem) Description() string { return i.message.Text }

// postItem wraps [models.Post] to implement [list.Item].
type postItem struct {
	post models.Post
}

func (i postItem) FilterValue() string { return i.post.Text }
func (i postItem) Title() string       { return truncate(i.post.Text, 60) }
func (i postItem) Description() string {
	return fmt.Sprintf("%s impressions · %d likes · %d comments · %d shares",
		formatter.FormatNumber(i.post.ImpressionCount),
		i.post.LikeCount, i.post.CommentCount, i.post.ShareCount)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
