package boundary

import (
	"errors"

	"codeberg.org/snonux/slangify/internal/prompt"
)

// Kind classifies a boundary failure.
type Kind int

const (
	// InvalidInput means the caller sent something unusable; nothing was invoked.
	InvalidInput Kind = iota + 1
	// ServerError means the capability failed.
	ServerError
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case ServerError:
		return "server_error"
	default:
		return "unknown"
	}
}

// Error is the user-presentable failure of a boundary call.
type Error struct {
	Kind       Kind
	Capability prompt.Capability
	Message    string
	cause      error
}

// Error returns the generic message only.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause to internal callers.
func (e *Error) Unwrap() error {
	return e.cause
}

// IsInvalidInput reports whether err is a boundary InvalidInput error.
func IsInvalidInput(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Kind == InvalidInput
}

// IsServerError reports whether err is a boundary ServerError.
func IsServerError(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Kind == ServerError
}

type messages struct {
	invalid string
	server  string
}

var capabilityMessages = map[prompt.Capability]messages{
	prompt.Translate: {
		invalid: "Invalid input",
		server:  "Failed to get dialect translations due to a server error.",
	},
	prompt.Analyze: {
		invalid: "Invalid input for sentence analysis",
		server:  "Failed to analyze sentence due to a server error.",
	},
	prompt.Reverse: {
		invalid: "Invalid input for reverse translation",
		server:  "Failed to reverse translate due to a server error.",
	},
	prompt.Insights: {
		invalid: "Invalid input for cultural insights",
		server:  "Failed to get cultural insights due to a server error.",
	},
	prompt.Score: {
		invalid: "Invalid input for meaning match score",
		server:  "Failed to get meaning match score due to a server error.",
	},
	prompt.Speech: {
		invalid: "Invalid input for text-to-speech",
		server:  "Failed to generate audio due to a server error.",
	},
}

func invalidInput(c prompt.Capability, cause error) *Error {
	msg := "Invalid input"
	if m, ok := capabilityMessages[c]; ok {
		msg = m.invalid
	}
	return &Error{Kind: InvalidInput, Capability: c, Message: msg, cause: cause}
}

func serverError(c prompt.Capability, cause error) *Error {
	msg := "The request failed due to a server error."
	if m, ok := capabilityMessages[c]; ok {
		msg = m.server
	}
	return &Error{Kind: ServerError, Capability: c, Message: msg, cause: cause}
}
