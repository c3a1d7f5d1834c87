// Package ui implements an interactive terminal dashboard using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow over the account collection:
//  1. [DashboardView] : Portfolio summary plus the connected account list
//  2. [PickerView] : Choose a platform to connect
//  3. [ConfirmView] : Confirm an account disconnect
//  4. [FlowView] : Monitor a browser connect flow in progress
//  5. [MessagesView] : Recent messages for accounts with an inbox surface
//  6. [PostsView] : Recent posts for company accounts with a feed surface
//  7. [MetricsFormView] : Hand-entered metrics for accounts without API analytics
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Connect progress flows through a channel from the FlowEngine, providing non-blocking status reporting.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
