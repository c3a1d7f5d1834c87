package ui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nkurelo/socialdash/internal/aggregator"
	"github.com/nkurelo/socialdash/internal/api"
	"github.com/nkurelo/socialdash/internal/formatter"
	"github.com/nkurelo/socialdash/internal/models"
	"github.com/nkurelo/socialdash/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	DashboardView ViewState = iota
	PickerView
	ConfirmView
	FlowView
	MessagesView
	PostsView
	MetricsFormView
)

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	client   *api.Client
	accounts *aggregator.Aggregator
	engine   *tasks.FlowEngine
	user     *models.UserProfile

	width  int
	height int

	accountList  list.Model
	platformList list.Model
	detailList   list.Model
	selected     *models.SocialAccount

	metricsInputs []textinput.Model
	metricsFocus  int

	progressChan chan tasks.ProgressUpdate
	flowDone     chan Msg
	progress     tasks.ProgressUpdate
	status       string
	err          error

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, client *api.Client, accounts *aggregator.Aggregator, engine *tasks.FlowEngine, user *models.UserProfile) *Model {
	return &Model{
		ctx:      ctx,
		view:     DashboardView,
		client:   client,
		accounts: accounts,
		engine:   engine,
		user:     user,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init initializes the TUI by loading the account collection.
func (m *Model) Init() tea.Cmd {
	return m.refreshAccounts()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.accountList.Width() == 0 {
			m.accountList.SetSize(msg.Width-4, msg.Height-10)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case DashboardView:
			return m.handleDashboardKeys(msg)
		case PickerView:
			return m.handlePickerKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case MessagesView, PostsView:
			return m.handleDetailKeys(msg)
		case MetricsFormView:
			return m.handleMetricsFormKeys(msg)
		}

	case Msg:
		return m.handleAppMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleAppMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgAccountsRefreshed:
		if err, ok := msg.data.(error); ok && err != nil {
			m.status = styles.warn.Render("Could not reach the backend, showing an empty dashboard")
		}
		m.rebuildAccountList()
		return m, nil

	case MsgAccountSynced:
		data := msg.data.(struct {
			account models.SocialAccount
			err     error
		})
		if data.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("Sync failed: %v", data.err))
		} else {
			m.status = styles.ok.Render(fmt.Sprintf("Synced @%s", data.account.Username))
		}
		m.rebuildAccountList()
		return m, nil

	case MsgAccountDeleted:
		data := msg.data.(struct {
			id  string
			err error
		})
		if data.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("Disconnect failed: %v", data.err))
		} else {
			m.status = styles.ok.Render("Account disconnected")
		}
		m.view = DashboardView
		m.rebuildAccountList()
		return m, nil

	case MsgMessagesFetched:
		data := msg.data.(struct {
			messages []models.Message
			err      error
		})
		if data.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("Could not load messages: %v", data.err))
			m.view = DashboardView
			return m, nil
		}
		items := make([]list.Item, len(data.messages))
		for i, message := range data.messages {
			items[i] = messageItem{message: message}
		}
		m.detailList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-10)
		m.detailList.Title = "Recent Messages"
		m.view = MessagesView
		return m, nil

	case MsgPostsFetched:
		data := msg.data.(struct {
			posts []models.Post
			err   error
		})
		if data.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("Could not load posts: %v", data.err))
			m.view = DashboardView
			return m, nil
		}
		items := make([]list.Item, len(data.posts))
		for i, post := range data.posts {
			items[i] = postItem{post: post}
		}
		m.detailList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-10)
		m.detailList.Title = "Recent Posts"
		m.view = PostsView
		return m, nil

	case MsgMetricsSaved:
		data := msg.data.(struct {
			account models.SocialAccount
			err     error
		})
		if data.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("Could not save metrics: %v", data.err))
		} else {
			m.status = styles.ok.Render(fmt.Sprintf("Metrics updated for @%s", data.account.Username))
		}
		m.view = DashboardView
		return m, m.refreshAccounts()

	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForProgress()

	case MsgFlowComplete:
		data := msg.data.(struct {
			account models.SocialAccount
			err     error
		})
		if data.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("Connect failed: %v", data.err))
		} else {
			m.status = styles.ok.Render(fmt.Sprintf("Connected %s as @%s", data.account.Platform, data.account.Username))
		}
		m.view = DashboardView
		m.progressChan = nil
		m.rebuildAccountList()
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case DashboardView:
		return m.renderDashboard()
	case PickerView:
		return m.renderPicker()
	case ConfirmView:
		return m.renderConfirm()
	case FlowView:
		return m.renderFlow()
	case MessagesView, PostsView:
		return m.renderDetail()
	case MetricsFormView:
		return m.renderMetricsForm()
	default:
		return ""
	}
}

func (m *Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.refresh):
		m.status = "Refreshing..."
		return m, m.refreshAccounts()
	case key.Matches(msg, m.keys.connect):
		m.buildPlatformList()
		m.view = PickerView
		return m, nil
	case key.Matches(msg, m.keys.sync):
		if account, ok := m.selectedAccount(); ok {
			m.status = fmt.Sprintf("Syncing @%s...", account.Username)
			return m, m.syncAccount(account.ID)
		}
	case key.Matches(msg, m.keys.disconnect):
		if account, ok := m.selectedAccount(); ok {
			m.selected = &account
			m.view = ConfirmView
		}
		return m, nil
	case key.Matches(msg, m.keys.messages):
		if account, ok := m.selectedAccount(); ok && account.Platform.Capabilities().HasMessages {
			m.selected = &account
			return m, m.fetchMessages(account.ID)
		}
	case key.Matches(msg, m.keys.posts):
		if account, ok := m.selectedAccount(); ok {
			caps := account.Platform.Capabilities()
			if caps.HasPosts && account.Type() == models.CompanyAccount {
				m.selected = &account
				return m, m.fetchPosts(account.ID)
			}
		}
	case key.Matches(msg, m.keys.metrics):
		if account, ok := m.selectedAccount(); ok {
			caps := account.Platform.Capabilities()
			if caps.HasManualMetrics && account.Type() == models.PersonalAccount {
				m.selected = &account
				m.buildMetricsForm(account)
				m.view = MetricsFormView
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.accountList, cmd = m.accountList.Update(msg)
	return m, cmd
}

func (m *Model) handlePickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = DashboardView
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if selected, ok := m.platformList.SelectedItem().(platformItem); ok {
			m.view = FlowView
			return m, m.startConnect(selected.platform)
		}
	}

	var cmd tea.Cmd
	m.platformList, cmd = m.platformList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back):
		m.view = DashboardView
		return m, nil
	case key.Matches(msg, m.keys.yes):
		if m.selected != nil {
			return m, m.deleteAccount(m.selected.ID)
		}
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = DashboardView
		return m, nil
	}

	var cmd tea.Cmd
	m.detailList, cmd = m.detailList.Update(msg)
	return m, cmd
}

func (m *Model) handleMetricsFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = DashboardView
		return m, nil
	case "tab", "down":
		m.focusMetricsInput(m.metricsFocus + 1)
		return m, nil
	case "shift+tab", "up":
		m.focusMetricsInput(m.metricsFocus - 1)
		return m, nil
	case "enter":
		if m.metricsFocus < len(m.metricsInputs)-1 {
			m.focusMetricsInput(m.metricsFocus + 1)
			return m, nil
		}
		return m, m.submitMetricsForm()
	}

	var cmd tea.Cmd
	m.metricsInputs[m.metricsFocus], cmd = m.metricsInputs[m.metricsFocus].Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case DashboardView:
		m.accountList, cmd = m.accountList.Update(msg)
	case PickerView:
		m.platformList, cmd = m.platformList.Update(msg)
	case MessagesView, PostsView:
		m.detailList, cmd = m.detailList.Update(msg)
	}
	return m, cmd
}

func (m *Model) selectedAccount() (models.SocialAccount, bool) {
	if item, ok := m.accountList.SelectedItem().(accountItem); ok {
		return item.account, true
	}
	return models.SocialAccount{}, false
}

func (m *Model) rebuildAccountList() {
	accounts := m.accounts.Accounts()
	items := make([]list.Item, len(accounts))
	for i, account := range accounts {
		items[i] = accountItem{account: account}
	}
	m.accountList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-10)
	m.accountList.Title = "Connected Accounts"
	m.accountList.SetShowHelp(false)
}

func (m *Model) buildPlatformList() {
	items := make([]list.Item, len(models.AllPlatforms))
	for i, platform := range models.AllPlatforms {
		items[i] = platformItem{platform: platform, connected: m.accounts.Connected(platform)}
	}
	m.platformList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-10)
	m.platformList.Title = "Connect a Platform"
	m.platformList.SetShowHelp(false)
}

var metricsFields = []string{"Connections", "Posts", "Pending responses", "New messages"}

func (m *Model) buildMetricsForm(account models.SocialAccount) {
	current := []int{
		account.Metrics.Connections,
		account.Metrics.Posts,
		account.Metrics.PendingResponses,
		account.Metrics.NewMessages,
	}

	m.metricsInputs = make([]textinput.Model, len(metricsFields))
	for i, field := range metricsFields {
		input := textinput.New()
		input.Placeholder = field
		input.SetValue(strconv.Itoa(current[i]))
		input.CharLimit = 9
		m.metricsInputs[i] = input
	}
	m.metricsFocus = 0
	m.metricsInputs[0].Focus()
}

func (m *Model) focusMetricsInput(i int) {
	if i < 0 || i >= len(m.metricsInputs) {
		return
	}
	m.metricsInputs[m.metricsFocus].Blur()
	m.metricsFocus = i
	m.metricsInputs[i].Focus()
}

func (m *Model) submitMetricsForm() tea.Cmd {
	values := make([]int, len(m.metricsInputs))
	for i, input := range m.metricsInputs {
		n, err := strconv.Atoi(input.Value())
		if err != nil || n < 0 {
			m.status = styles.err.Render(fmt.Sprintf("%s must be a non-negative number", metricsFields[i]))
			return nil
		}
		values[i] = n
	}

	accountID := m.selected.ID
	metrics := models.ManualMetrics{
		Connections:      values[0],
		Posts:            values[1],
		PendingResponses: values[2],
		NewMessages:      values[3],
	}

	return func() tea.Msg {
		account, err := m.client.LinkedInManualMetrics(m.ctx, accountID, metrics)
		if err != nil {
			return metricsSavedMsg(models.SocialAccount{}, err)
		}
		return metricsSavedMsg(*account, nil)
	}
}

func (m *Model) refreshAccounts() tea.Cmd {
	return func() tea.Msg {
		return accountsRefreshedMsg(m.accounts.Refresh(m.ctx))
	}
}

func (m *Model) syncAccount(id string) tea.Cmd {
	return func() tea.Msg {
		account, err := m.accounts.Sync(m.ctx, id)
		return accountSyncedMsg(account, err)
	}
}

func (m *Model) deleteAccount(id string) tea.Cmd {
	return func() tea.Msg {
		return accountDeletedMsg(id, m.accounts.Delete(m.ctx, id))
	}
}

func (m *Model) fetchMessages(accountID string) tea.Cmd {
	return func() tea.Msg {
		messages, err := m.client.FacebookMessages(m.ctx, accountID)
		return messagesFetchedMsg(messages, err)
	}
}

func (m *Model) fetchPosts(accountID string) tea.Cmd {
	return func() tea.Msg {
		posts, err := m.client.LinkedInPosts(m.ctx, accountID, 10)
		return postsFetchedMsg(posts, err)
	}
}

func (m *Model) startConnect(platform models.Platform) tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progressChan := m.progressChan

	done := make(chan Msg, 1)
	go func() {
		account, err := m.engine.Connect(m.ctx, progressChan, platform)
		done <- flowCompleteMsg(account, err)
		close(progressChan)
	}()
	m.flowDone = done

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return nil
		}

		update, ok := <-m.progressChan
		if !ok {
			return <-m.flowDone
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderDashboard() string {
	summary := m.accounts.Summary()

	scoreLine := fmt.Sprintf("%s  %s",
		scoreStyle(summary.AverageScore).Render(fmt.Sprintf("Score %d", summary.AverageScore)),
		summary.Label)
	totals := styles.help.Render(fmt.Sprintf("%d accounts · %s followers · %s posts",
		summary.AccountCount,
		formatter.FormatNumber(summary.TotalFollowers),
		formatter.FormatNumber(summary.TotalPosts)))

	header := styles.title.Render(fmt.Sprintf("Social Dashboard · %s", m.user.DisplayName()))

	helpKeys := []key.Binding{m.keys.connect, m.keys.sync, m.keys.disconnect, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	body := m.accountList.View()
	if summary.AccountCount == 0 {
		body = styles.help.Render("No accounts connected yet. Press c to connect one.")
	}

	out := fmt.Sprintf("%s\n%s\n%s\n\n%s\n\n%s", header, scoreLine, totals, body, helpView)
	if m.status != "" {
		out += "\n" + m.status
	}
	return out
}

func (m *Model) renderPicker() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.platformList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Disconnect %s account @%s?", m.selected.Platform, m.selected.Username))
	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", title, helpView)
}

func (m *Model) renderFlow() string {
	title := styles.title.Render("Connecting Account")
	return fmt.Sprintf("%s\n\n%s", title, m.progress.Message)
}

func (m *Model) renderDetail() string {
	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.detailList.View(), helpView)
}

func (m *Model) renderMetricsForm() string {
	title := styles.title.Render(fmt.Sprintf("Update metrics for @%s", m.selected.Username))

	var fields string
	for i, input := range m.metricsInputs {
		fields += fmt.Sprintf("%s\n%s\n\n", metricsFields[i], input.View())
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back})
	out := fmt.Sprintf("%s\n%s%s", title, fields, helpView)
	if m.status != "" {
		out += "\n" + m.status
	}
	return out
}
