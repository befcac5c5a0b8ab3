package core

// error_messages.go maps technical errors to user-facing messages with a
// support code. Codes by family:
//
//	DB001-DB007    database constraints and connectivity
//	VAL001-VAL007  field validation
//	TBL001-TBL002  unknown tables
//	GRID001-GRID005 grid sessions, actions, rows and load slots
//	REQ001-REQ002  cancelled or timed out requests
//	RATE001        throttling
//	ERR000         fallback
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns come before general ones. The
// sentinel errors below carry messages that hit their patterns, which keeps
// wrapped errors mapping correctly.

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTableNotFound is returned for table keys missing from the registry.
	ErrTableNotFound = errors.New("table not found")

	// ErrSessionNotFound is returned for unknown or expired grid sessions.
	ErrSessionNotFound = errors.New("grid session not found")

	// ErrTooManySessions is returned when the session store is full.
	ErrTooManySessions = errors.New("too many grid sessions")

	// ErrInvalidAction is returned for grid actions that cannot be applied.
	ErrInvalidAction = errors.New("invalid grid action")

	// ErrRowNotFound is returned when a mutation matches no row.
	ErrRowNotFound = errors.New("row not found")
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Database constraints
	{"duplicate key", UserMessage{"A record with this ID already exists", "Refresh the table and edit the existing record", "DB001"}},
	{"unique constraint", UserMessage{"This value must be unique but already exists", "Choose a different value", "DB002"}},
	{"violates unique", UserMessage{"This value must be unique but already exists", "Choose a different value", "DB002"}},
	{"foreign key", UserMessage{"Referenced record does not exist", "Create the referenced record first", "DB003"}},

	// Connectivity
	{"connection refused", UserMessage{"Unable to connect to database", "Please try again in a few moments", "DB004"}},
	{"connection reset", UserMessage{"Database connection was interrupted", "Please try again", "DB005"}},
	{"deadlock", UserMessage{"Database was busy with conflicting operations", "Please try again", "DB007"}},

	// Request lifecycle; before the generic timeout pattern
	{"context canceled", UserMessage{"Request was cancelled", "Please try again", "REQ001"}},
	{"context deadline exceeded", UserMessage{"Request timed out", "Narrow the search or try again later", "REQ002"}},
	{"timeout", UserMessage{"Operation timed out", "Please try again later", "DB006"}},

	// Validation
	{"invalid date", UserMessage{"Invalid date format detected", "Use YYYY-MM-DD, MM/DD/YYYY, or Jan 15, 2024", "VAL001"}},
	{"invalid number", UserMessage{"Invalid number format detected", "Use a plain decimal number", "VAL002"}},
	{"required field", UserMessage{"Required field is empty", "Fill in every required field", "VAL003"}},
	{"column not found", UserMessage{"Column does not exist on this table", "Check the column key against the table listing", "VAL005"}},
	{"invalid enum", UserMessage{"Value is not in the allowed list", "Check the allowed values for this field", "VAL006"}},
	{"read-only", UserMessage{"This field cannot be changed", "Edit a different column", "VAL007"}},
	{"validation failed", UserMessage{"Some fields are invalid", "Correct the highlighted fields", "VAL000"}},

	// Tables
	{"table not found", UserMessage{"The specified table does not exist", "Verify the table name is correct", "TBL001"}},
	{"unknown table", UserMessage{"Table type is not configured", "This table type is not configured", "TBL002"}},

	// Grid sessions
	{"grid session not found", UserMessage{"Grid session not found", "The session may have expired. Open the table again", "GRID001"}},
	{"too many grid sessions", UserMessage{"Too many open grids", "Close unused grids or wait a few minutes", "GRID002"}},
	{"invalid grid action", UserMessage{"The requested table action is not supported", "Use search, sort, page, toggle or toggle_all", "GRID003"}},
	{"row not found", UserMessage{"The row no longer exists", "Refresh the table", "GRID004"}},
	{"too many concurrent table loads", UserMessage{"The server is busy loading tables", "Please wait a moment and try again", "GRID005"}},

	// Throttling
	{"rate limit", UserMessage{"Too many requests", "Please wait a moment before trying again", "RATE001"}},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, the ERR000 fallback is returned.
//
//	msg := MapError(fmt.Errorf("load rows: %w", ErrTableNotFound))
//	// msg.Code == "TBL001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError formats err as "Message (Code: XXX). Action", the form the
// CLI prints.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
