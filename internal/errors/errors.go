// Package errors defines stable error codes for rft failure modes,
// with optional suggested fixes surfaced to the user.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// VaultNotFound indicates the vault root does not exist or is not a directory
	VaultNotFound ErrorCode = "VAULT_NOT_FOUND"
	// NotInitialized indicates the .rft directory has not been created yet
	NotInitialized ErrorCode = "NOT_INITIALIZED"
	// StateInvalid indicates the persisted state blob could not be parsed
	StateInvalid ErrorCode = "STATE_INVALID"
	// FileNotFound indicates a basename did not resolve in the file universe
	FileNotFound ErrorCode = "FILE_NOT_FOUND"
	// IndexUnavailable indicates the file index database could not be opened
	IndexUnavailable ErrorCode = "INDEX_UNAVAILABLE"
	// WatchUnavailable indicates the filesystem watcher could not start
	WatchUnavailable ErrorCode = "WATCH_UNAVAILABLE"
	// OpenFailed indicates the navigation command could not be run
	OpenFailed ErrorCode = "OPEN_FAILED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// SetConfig suggests changing a configuration value
	SetConfig FixActionType = "set-config"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
}

// Error represents an rft error with code, message, and suggestions
type Error struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new Error
func New(code ErrorCode, message string, cause error, suggestedFixes []FixAction) *Error {
	return &Error{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: suggestedFixes,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	NotInitialized: {
		{
			Type:        RunCommand,
			Command:     "rft init",
			Safe:        true,
			Description: "Create the .rft directory with default configuration",
		},
	},
	FileNotFound: {
		{
			Type:        RunCommand,
			Command:     "rft index --rescan",
			Safe:        true,
			Description: "Rebuild the file index from the vault contents",
		},
	},
	IndexUnavailable: {
		{
			Type:        RunCommand,
			Command:     "rft index --rescan",
			Safe:        true,
			Description: "Recreate the file index database",
		},
	},
	OpenFailed: {
		{
			Type:        SetConfig,
			Command:     "editor.command",
			Safe:        true,
			Description: "Set editor.command in .rft/config.json or export EDITOR",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
