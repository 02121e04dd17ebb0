package core

// error_messages.go maps technical errors to participant-facing messages.
//
// Every message carries a code participants can quote to the research team:
//
//	SES001 - Session not found        "session not found"
//	SES002 - Unknown platform         "unknown platform"
//	SES003 - Donation already ended   "flow finished"
//	SES004 - Unexpected answer        "unexpected response"
//	FILE001 - File too large          "file too large"
//	FILE002 - Invalid request body    "invalid request body"
//	FILE004 - No file                 "no file provided"
//	FILE005 - Empty file              "empty file"
//	UPL002 - System busy              "too many uploads"
//	UPL004 - Request cancelled        "context canceled"
//	UPL005 - Request timeout          "context deadline exceeded"
//	RATE001 - Rate limited            "rate limit"
//	ERR000 - Unknown error            (fallback)
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns come before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage is a participant-facing error with guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Reference code
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Session
	{
		pattern: "session not found",
		msg: UserMessage{
			Message: "Your donation session was not found",
			Action:  "The session may have expired. Please start again",
			Code:    "SES001",
		},
	},
	{
		pattern: "unknown platform",
		msg: UserMessage{
			Message: "This platform is not supported",
			Action:  "Check the link you were given",
			Code:    "SES002",
		},
	},
	{
		pattern: "flow finished",
		msg: UserMessage{
			Message: "This donation has already ended",
			Action:  "You can close this page",
			Code:    "SES003",
		},
	},
	{
		pattern: "unexpected response",
		msg: UserMessage{
			Message: "That answer does not fit the current step",
			Action:  "Reload the page and try again",
			Code:    "SES004",
		},
	},

	// File
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "The file exceeds the maximum size",
			Action:  "Make sure you selected the data download package",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid request body",
		msg: UserMessage{
			Message: "The request could not be read",
			Action:  "Reload the page and try again",
			Code:    "FILE002",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select the zip file you downloaded",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The selected file is empty",
			Action:  "Please select the zip file you downloaded",
			Code:    "FILE005",
		},
	},

	// Upload
	{
		pattern: "too many uploads",
		msg: UserMessage{
			Message: "The system is busy processing other files",
			Action:  "Please wait a moment and try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Check your connection and try again",
			Code:    "UPL005",
		},
	},

	// Throttling
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches. The original error is
// only in the logs.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact the research team",
	Code:    "ERR000",
}

// MapError converts a technical error to a participant-facing message.
// Returns the zero UserMessage for a nil error.
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

// FormatUserError renders err as "Message (Code: XXX). Action".
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

// UserError pairs a technical error with its participant-facing message.
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

// NewUserError maps err. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
