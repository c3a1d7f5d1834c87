package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrSessionExpired   = fmt.Errorf("session expired")
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// API and feature errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrConnectivity       = fmt.Errorf("failed to connect to server")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrAccountNotFound    = fmt.Errorf("account not found")
	ErrAccountLimit       = fmt.Errorf("account limit reached")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrFileTooLarge    = fmt.Errorf("file exceeds size limit")
	ErrUnsupportedType = fmt.Errorf("unsupported file type")
)
