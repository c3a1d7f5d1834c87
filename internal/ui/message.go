package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nkurelo/socialdash/internal/models"
	"github.com/nkurelo/socialdash/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgAccountsRefreshed MsgKind = iota
	MsgAccountSynced
	MsgAccountDeleted
	MsgMessagesFetched
	MsgPostsFetched
	MsgMetricsSaved
	MsgProgressUpdate
	MsgFlowComplete
)

// accountsRefreshedMsg is the constructor for [MsgAccountsRefreshed]
func accountsRefreshedMsg(err error) Msg {
	return Msg{kind: MsgAccountsRefreshed, data: err}
}

// accountSyncedMsg is the constructor for [MsgAccountSynced]
func accountSyncedMsg(account models.SocialAccount, err error) Msg {
	return Msg{
		kind: MsgAccountSynced,
		data: struct {
			account models.SocialAccount
			err     error
		}{account, err},
	}
}

// accountDeletedMsg is the constructor for [MsgAccountDeleted]
func accountDeletedMsg(id string, err error) Msg {
	return Msg{
		kind: MsgAccountDeleted,
		data: struct {
			id  string
			err error
		}{id, err},
	}
}

// messagesFetchedMsg is the constructor for [MsgMessagesFetched]
func messagesFetchedMsg(messages []models.Message, err error) Msg {
	return Msg{
		kind: MsgMessagesFetched,
		data: struct {
			messages []models.Message
			err      error
		}{messages, err},
	}
}

// postsFetchedMsg is the constructor for [MsgPostsFetched]
func postsFetchedMsg(posts []models.Post, err error) Msg {
	return Msg{
		kind: MsgPostsFetched,
		data: struct {
			posts []models.Post
			err   error
		}{posts, err},
	}
}

// metricsSavedMsg is the constructor for [MsgMetricsSaved]
func metricsSavedMsg(account models.SocialAccount, err error) Msg {
	return Msg{
		kind: MsgMetricsSaved,
		data: struct {
			account models.SocialAccount
			err     error
		}{account, err},
	}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// flowCompleteMsg is the constructor for [MsgFlowComplete]
func flowCompleteMsg(account models.SocialAccount, err error) Msg {
	return Msg{
		kind: MsgFlowComplete,
		data: struct {
			account models.SocialAccount
			err     error
		}{account, err},
	}
}
