// Package ai requests a natural-language day summary from a generative-text
// service and tracks the request lifecycle.
package ai

import "errors"

// Kind classifies a summary failure.
type Kind string

const (
	// KindConfiguration means the request was never sent (e.g. no credential).
	KindConfiguration Kind = "configuration"
	// KindNetwork covers transport failures and provider error responses.
	KindNetwork Kind = "network"
	// KindContent means the provider answered without usable text.
	KindContent Kind = "content"
)

// User-facing failure messages.
const (
	MsgMissingCredential = "missing API credential"
	MsgGenerateFailed    = "failed to generate summary"
	MsgNoContent         = "no content generated"
)

var (
	// ErrRequestInFlight is returned by Start while a request is outstanding.
	ErrRequestInFlight = errors.New("a summary request is already in progress")
	// ErrStaleResult is returned by Run when the orchestrator was reset
	// before the response arrived.
	ErrStaleResult = errors.New("summary request was superseded")
)

// Error is a classified summary failure. Error() returns only Message so it
// can be shown to the user as is.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Err        error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var aiErr *Error
	return errors.As(err, &aiErr) && aiErr.Kind == k
}

func classify(err error) *Error {
	var aiErr *Error
	if errors.As(err, &aiErr) {
		return aiErr
	}
	return &Error{Kind: KindNetwork, Message: MsgGenerateFailed, Err: err}
}
