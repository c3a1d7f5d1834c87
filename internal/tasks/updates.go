package tasks

import (
	"fmt"

	"github.com/nkurelo/socialdash/internal/models"
)

// ProgressUpdate represents a progress event during a browser-mediated flow.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Flow phase
	Step    int    // Current step number within the flow
	Total   int    // Total steps in the flow
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Flow phase enumeration
type Phase int

const (
	StartListener Phase = iota
	OpenBrowser
	AwaitCallback
	ApplyResult
	ConnectDemo
)

func (p Phase) String() string {
	switch p {
	case StartListener:
		return "start_listener"
	case OpenBrowser:
		return "open_browser"
	case AwaitCallback:
		return "await_callback"
	case ApplyResult:
		return "apply_result"
	case ConnectDemo:
		return "connect_demo"
	default:
		return ""
	}
}

func startListenerUpdate(step, total int, addr string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   StartListener,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Listening for the redirect on %s...", addr),
	}
}

func openBrowserUpdate(step, total int, what string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   OpenBrowser,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Opening %s in your browser...", what),
	}
}

func awaitCallbackUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AwaitCallback,
		Step:    step,
		Total:   total,
		Message: "Waiting for you to finish in the browser...",
	}
}

func loginDoneUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ApplyResult,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Logged in as %s", name),
	}
}

func connectedUpdate(step, total int, account models.SocialAccount) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ApplyResult,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Connected %s as @%s", account.Platform, account.Username),
		Data:    account,
	}
}

func demoConnectUpdate(step, total int, platform models.Platform) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ConnectDemo,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Attaching a demo %s account...", platform),
	}
}

func checkoutDoneUpdate(step, total int, completed bool) ProgressUpdate {
	msg := "Checkout canceled"
	if completed {
		msg = "Upgrade complete, welcome to premium"
	}
	return ProgressUpdate{
		Phase:   ApplyResult,
		Step:    step,
		Total:   total,
		Message: msg,
	}
}
