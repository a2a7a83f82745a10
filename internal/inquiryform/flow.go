// Package inquiryform implements the lead form workflow: draft editing,
// required-field validation, a single in-flight create request and the
// notifications that report its outcome.
package inquiryform

import (
	"context"
	"errors"
	"sync"
)

// InquiriesQueryKey is the cache key of the inquiry list that a successful
// submission marks stale.
const InquiriesQueryKey = "/api/inquiries"

// Submit control labels.
const (
	LabelIdle    = "Submit Inquiry"
	LabelPending = "Submitting..."
)

var (
	// ErrSubmissionPending is returned by Submit while another submission is in flight.
	ErrSubmissionPending = errors.New("inquiry submission already pending")
	// ErrIncomplete is returned by Submit when a required field is empty.
	ErrIncomplete = errors.New("inquiry draft is incomplete")
)

// State is the submission state of a Flow.
type State int

const (
	StateIdle State = iota
	StatePending
)

func (s State) String() string {
	if s == StatePending {
		return "pending"
	}
	return "idle"
}

// Submitter issues the create-inquiry request.
type Submitter interface {
	CreateInquiry(ctx context.Context, draft Draft) error
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, draft Draft) error

func (f SubmitterFunc) CreateInquiry(ctx context.Context, draft Draft) error { return f(ctx, draft) }

// Notifier receives outcome notifications.
type Notifier func(Notification)

// Invalidator marks a cached query stale so its next read refetches.
type Invalidator func(key string)

// Flow owns one form's draft and submission state. Its methods are safe for
// concurrent use; at most one submission is in flight at any time.
type Flow struct {
	mu         sync.Mutex
	draft      Draft
	state      State
	submitter  Submitter
	notify     Notifier
	invalidate Invalidator
}

// New returns an idle flow with an empty draft. notify and invalidate may be nil.
func New(submitter Submitter, notify Notifier, invalidate Invalidator) *Flow {
	if notify == nil {
		notify = func(Notification) {}
	}
	if invalidate == nil {
		invalidate = func(string) {}
	}
	return &Flow{
		submitter:  submitter,
		notify:     notify,
		invalidate: invalidate,
	}
}

func (f *Flow) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// CanSubmit reports whether the submit control is available.
func (f *Flow) CanSubmit() bool {
	return f.State() == StateIdle
}

// SubmitLabel is the text of the submit control for the current state.
func (f *Flow) SubmitLabel() string {
	if f.State() == StatePending {
		return LabelPending
	}
	return LabelIdle
}

// SetField edits the draft. Edits are accepted while a request is pending;
// the request already carries its own snapshot.
func (f *Flow) SetField(field Field, value string) {
	f.mu.Lock()
	f.draft = f.draft.With(field, value)
	f.mu.Unlock()
}

// Reset clears the draft.
func (f *Flow) Reset() {
	f.mu.Lock()
	f.draft = Draft{}
	f.mu.Unlock()
}

// Begin validates the draft and, when complete, moves to Pending and returns
// the payload to send. It returns false without side effects while Pending,
// and false after emitting MissingInformation when a field is empty.
func (f *Flow) Begin() (Draft, bool) {
	payload, err := f.begin()
	return payload, err == nil
}

func (f *Flow) begin() (Draft, error) {
	f.mu.Lock()
	if f.state == StatePending {
		f.mu.Unlock()
		return Draft{}, ErrSubmissionPending
	}
	if !f.draft.Complete() {
		f.mu.Unlock()
		f.notify(MissingInformation)
		return Draft{}, ErrIncomplete
	}
	f.state = StatePending
	payload := f.draft
	f.mu.Unlock()
	return payload, nil
}

// Finish records the outcome of the request started by Begin. On success the
// draft is cleared and the inquiry list is invalidated; on failure the draft
// is kept for a retry. Either way the flow returns to Idle.
func (f *Flow) Finish(err error) {
	f.mu.Lock()
	if f.state != StatePending {
		f.mu.Unlock()
		return
	}
	f.state = StateIdle
	if err == nil {
		f.draft = Draft{}
	}
	f.mu.Unlock()

	if err != nil {
		f.notify(SubmitFailed)
		return
	}
	f.notify(SubmitSucceeded)
	f.invalidate(InquiriesQueryKey)
}

// Submit runs a whole cycle and blocks until the request completes. It does
// not add a timeout; ctx is handed to the submitter unchanged. The returned
// error is ErrSubmissionPending, ErrIncomplete or the submitter's error.
func (f *Flow) Submit(ctx context.Context) error {
	payload, err := f.begin()
	if err != nil {
		return err
	}
	err = f.submitter.CreateInquiry(ctx, payload)
	f.Finish(err)
	return err
}

// Send issues the request for a payload obtained from Begin without touching
// the flow state. UIs that run the request off their event loop call Send
// there and deliver the result to Finish.
func (f *Flow) Send(ctx context.Context, payload Draft) error {
	return f.submitter.CreateInquiry(ctx, payload)
}
