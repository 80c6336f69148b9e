package ai

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/xolan/well/internal/logging"
)

// State is a step of the summary request lifecycle.
type State int

const (
	Idle State = iota
	Validating
	Requesting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Requesting:
		return "requesting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Terminal reports whether s is Succeeded or Failed.
func (s State) Terminal() bool { return s == Succeeded || s == Failed }

// Ticket identifies one Start. Only the current ticket may resolve.
type Ticket uint64

// Snapshot is a consistent view of the orchestrator.
type Snapshot struct {
	State State
	Text  string
	Err   *Error
}

// Orchestrator runs at most one summary request at a time.
//
// Start and Resolve split the request so a UI can dispatch it
// asynchronously; Run composes them for synchronous callers.
type Orchestrator struct {
	mu    sync.Mutex
	gen   Generator
	log   *logrus.Entry
	state State
	seq   Ticket
	text  string
	err   *Error
}

// NewOrchestrator returns an idle orchestrator. A nil logger discards output.
func NewOrchestrator(gen Generator, log *logrus.Entry) *Orchestrator {
	if log == nil {
		log = logging.Component(logging.Discard(), "ai")
	}
	return &Orchestrator{gen: gen, log: log}
}

// Snapshot returns the current state and result.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return Snapshot{State: o.state, Text: o.text, Err: o.err}
}

// State returns the current state.
func (o *Orchestrator) State() State {
	return o.Snapshot().State
}

// Start begins a request. It fails with ErrRequestInFlight while one is
// outstanding. From a terminal state it resets first. An empty credential
// moves straight to Failed and returns the configuration error.
func (o *Orchestrator) Start(credential string) (Ticket, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.state {
	case Validating, Requesting:
		return 0, ErrRequestInFlight
	}

	o.seq++
	o.text, o.err = "", nil
	o.state = Validating

	if strings.TrimSpace(credential) == "" {
		o.state = Failed
		o.err = &Error{Kind: KindConfiguration, Message: MsgMissingCredential}
		o.log.Warn("summary not requested: " + MsgMissingCredential)
		return o.seq, o.err
	}

	o.state = Requesting
	return o.seq, nil
}

// Fetch asks the generator for a summary of in. It does not touch state.
func (o *Orchestrator) Fetch(ctx context.Context, credential string, in Input) (string, error) {
	return o.gen.Generate(ctx, credential, BuildPrompt(in))
}

// Resolve applies the outcome of ticket's request. Results for any other
// ticket, or arriving when no request is outstanding, are discarded and
// Resolve returns false.
func (o *Orchestrator) Resolve(ticket Ticket, text string, err error) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if ticket != o.seq || o.state != Requesting {
		o.log.WithField("ticket", ticket).Debug("discarding stale summary result")
		return false
	}

	switch {
	case err != nil:
		o.state = Failed
		o.err = classify(err)
	case strings.TrimSpace(text) == "":
		o.state = Failed
		o.err = &Error{Kind: KindContent, Message: MsgNoContent}
	default:
		o.state = Succeeded
		o.text = text
	}
	return true
}

// Reset returns to Idle and invalidates any outstanding ticket.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.seq++
	o.state = Idle
	o.text, o.err = "", nil
}

// Run performs Start, Fetch and Resolve in sequence.
func (o *Orchestrator) Run(ctx context.Context, credential string, in Input) (string, error) {
	ticket, err := o.Start(credential)
	if err != nil {
		return "", err
	}

	text, genErr := o.Fetch(ctx, credential, in)
	if !o.Resolve(ticket, text, genErr) {
		return "", ErrStaleResult
	}

	snap := o.Snapshot()
	if snap.Err != nil {
		return "", snap.Err
	}
	return snap.Text, nil
}
