package core

// error_messages.go maps technical errors to operator-facing messages with
// codes for support reference.
//
// # Load Errors (FILE001-FILE099, VAL001-VAL099)
//
// Raised while reading the data directory. Every one of them stops startup.
//
//	FILE001 - Missing file: A dataset file does not exist
//	          Action: Place all seven CSV files in the data directory
//	          Matches: os.ErrNotExist, "no such file"
//
//	FILE002 - Invalid CSV: A dataset file could not be parsed
//	          Action: Check quoting and delimiters around the reported line
//	          Matches: *csv.ParseError, "invalid csv"
//
//	FILE003 - Encoding error: A dataset file is not valid UTF-8
//	          Action: Re-export the file as UTF-8
//	          Matches: ErrInvalidUTF8, "encoding error"
//
//	FILE004 - Unreadable file: A dataset file cannot be opened
//	          Action: Check file permissions
//	          Matches: os.ErrPermission, "permission denied"
//
//	FILE005 - Empty file: A dataset file has no header row
//	          Action: Add the header row to the file
//	          Matches: ErrEmptyFile, "empty file"
//
//	VAL004 - Missing column: A dataset header lacks a required column
//	         Action: Restore the column named in the log entry
//	         Matches: ErrMissingColumns, "missing required column"
//
// # Request Errors (REN001-REN099)
//
//	REN001 - Render failure: The dashboard could not be rendered
//	         Action: Reload the page; check server logs if it persists
//	         Matches: "render"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Check server logs for the technical error
//
// Sentinels are checked with errors.Is / errors.As first, then patterns
// are matched case-insensitively with strings.Contains. The first match
// wins.

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
)

// UserMessage provides operator-facing error information with guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgMissingFile = UserMessage{
		Message: "A dataset file does not exist",
		Action:  "Place all seven CSV files in the data directory",
		Code:    "FILE001",
	}
	msgInvalidCSV = UserMessage{
		Message: "A dataset file could not be parsed as CSV",
		Action:  "Check quoting and delimiters around the reported line",
		Code:    "FILE002",
	}
	msgEncoding = UserMessage{
		Message: "A dataset file is not valid UTF-8",
		Action:  "Re-export the file as UTF-8",
		Code:    "FILE003",
	}
	msgUnreadable = UserMessage{
		Message: "A dataset file cannot be opened",
		Action:  "Check file permissions",
		Code:    "FILE004",
	}
	msgEmptyFile = UserMessage{
		Message: "A dataset file has no header row",
		Action:  "Add the header row to the file",
		Code:    "FILE005",
	}
	msgMissingColumn = UserMessage{
		Message: "A dataset header lacks a required column",
		Action:  "Restore the column named in the log entry",
		Code:    "VAL004",
	}
	msgRender = UserMessage{
		Message: "The dashboard could not be rendered",
		Action:  "Reload the page; check server logs if it persists",
		Code:    "REN001",
	}
)

// defaultMessage is returned when no pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check server logs for the technical error",
	Code:    "ERR000",
}

// errorSentinels are checked with errors.Is before any pattern.
var errorSentinels = []struct {
	target error
	msg    UserMessage
}{
	{ErrEmptyFile, msgEmptyFile},
	{ErrMissingColumns, msgMissingColumn},
	{ErrInvalidUTF8, msgEncoding},
	{os.ErrNotExist, msgMissingFile},
	{os.ErrPermission, msgUnreadable},
}

// errorPatterns is the substring fallback for errors that lost their
// sentinel, such as ones rebuilt from log text.
var errorPatterns = []struct {
	pattern string
	msg     UserMessage
}{
	{"empty file", msgEmptyFile},
	{"missing required column", msgMissingColumn},
	{"encoding error", msgEncoding},
	{"no such file", msgMissingFile},
	{"permission denied", msgUnreadable},
	{"invalid csv", msgInvalidCSV},
	{"render", msgRender},
}

// MapError converts a technical error into a user message.
// Returns an empty UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, s := range errorSentinels {
		if errors.Is(err, s.target) {
			return s.msg
		}
	}

	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return msgInvalidCSV
	}

	errStr := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(errStr, p.pattern) {
			return p.msg
		}
	}

	return defaultMessage
}

// FormatUserError formats an error as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// UserError pairs a technical error with its user message. Error returns
// the user message; Unwrap exposes the original for logging.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err and wraps it. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
