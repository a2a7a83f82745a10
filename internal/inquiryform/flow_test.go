package inquiryform

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	mu      sync.Mutex
	calls   []Draft
	err     error
	release chan struct{}
	started chan struct{}
}

func (f *fakeSubmitter) CreateInquiry(ctx context.Context, d Draft) error {
	f.mu.Lock()
	f.calls = append(f.calls, d)
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.err
}

func (f *fakeSubmitter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type harness struct {
	flow        *Flow
	submitter   *fakeSubmitter
	notes       []Notification
	invalidated []string
}

func newHarness() *harness {
	h := &harness{submitter: &fakeSubmitter{}}
	h.flow = New(h.submitter,
		func(n Notification) { h.notes = append(h.notes, n) },
		func(key string) { h.invalidated = append(h.invalidated, key) },
	)
	return h
}

func (h *harness) fill(d Draft) {
	for _, f := range Fields {
		h.flow.SetField(f, d.Get(f))
	}
}

var jane = Draft{
	Name:         "Jane",
	Email:        "jane@x.com",
	Company:      "Acme",
	Requirements: "Need a prompt engineer",
}

func TestSubmitMissingAnyFieldIssuesNoRequest(t *testing.T) {
	for _, field := range Fields {
		t.Run(field.String(), func(t *testing.T) {
			h := newHarness()
			h.fill(jane.With(field, ""))
			before := h.flow.Draft()

			err := h.flow.Submit(context.Background())

			assert.ErrorIs(t, err, ErrIncomplete)
			assert.Equal(t, 0, h.submitter.count())
			require.Len(t, h.notes, 1)
			assert.Equal(t, MissingInformation, h.notes[0])
			assert.Equal(t, before, h.flow.Draft(), "draft unchanged")
			assert.Equal(t, StateIdle, h.flow.State())
			assert.Empty(t, h.invalidated)
		})
	}
}

func TestSubmitSuccessResetsDraft(t *testing.T) {
	h := newHarness()
	h.fill(jane)

	require.NoError(t, h.flow.Submit(context.Background()))

	require.Equal(t, 1, h.submitter.count())
	assert.Equal(t, jane, h.submitter.calls[0], "payload equals the draft")
	assert.True(t, h.flow.Draft().IsZero())
	assert.Equal(t, Draft{Name: "", Email: "", Company: "", Requirements: ""}, h.flow.Draft())
	require.Len(t, h.notes, 1)
	assert.Equal(t, "Success!", h.notes[0].Title)
	assert.Equal(t, KindInfo, h.notes[0].Kind)
	assert.Equal(t, []string{InquiriesQueryKey}, h.invalidated)
	assert.Equal(t, StateIdle, h.flow.State())
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	h := newHarness()
	h.submitter.err = errors.New("500 Internal Server Error")
	h.fill(jane)

	err := h.flow.Submit(context.Background())

	assert.EqualError(t, err, "500 Internal Server Error")
	assert.Equal(t, jane, h.flow.Draft())
	require.Len(t, h.notes, 1)
	assert.Equal(t, SubmitFailed, h.notes[0])
	assert.Empty(t, h.invalidated)
	assert.Equal(t, StateIdle, h.flow.State())

	// A deliberate resubmit goes out again
	h.submitter.err = nil
	require.NoError(t, h.flow.Submit(context.Background()))
	assert.Equal(t, 2, h.submitter.count())
}

func TestSubmitWhilePendingIsIgnored(t *testing.T) {
	h := newHarness()
	h.submitter.started = make(chan struct{}, 1)
	h.submitter.release = make(chan struct{})
	h.fill(jane)

	done := make(chan error, 1)
	go func() { done <- h.flow.Submit(context.Background()) }()

	select {
	case <-h.submitter.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first submission never reached the submitter")
	}

	assert.Equal(t, StatePending, h.flow.State())
	assert.False(t, h.flow.CanSubmit())
	assert.Equal(t, "Submitting...", h.flow.SubmitLabel())

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, h.flow.Submit(context.Background()), ErrSubmissionPending)
		_, ok := h.flow.Begin()
		assert.False(t, ok)
	}

	close(h.submitter.release)
	require.NoError(t, <-done)

	assert.Equal(t, 1, h.submitter.count())
	assert.Equal(t, "Submit Inquiry", h.flow.SubmitLabel())
	assert.True(t, h.flow.CanSubmit())
}

func TestBeginFinishSplit(t *testing.T) {
	h := newHarness()
	h.fill(jane)

	payload, ok := h.flow.Begin()
	require.True(t, ok)
	assert.Equal(t, jane, payload)

	// Edits during the request do not change the payload already taken
	h.flow.SetField(FieldCompany, "Globex")
	assert.Equal(t, "Globex", h.flow.Draft().Company)

	h.flow.Finish(errors.New("connection reset"))
	assert.Equal(t, "Globex", h.flow.Draft().Company)
	assert.Equal(t, SubmitFailed, h.notes[len(h.notes)-1])

	// Finish without a pending request does nothing
	h.flow.Finish(nil)
	assert.Len(t, h.notes, 1)
	assert.Equal(t, "Globex", h.flow.Draft().Company)
}

func TestScenarioMissingName(t *testing.T) {
	h := newHarness()
	draft := Draft{Name: "", Email: "jane@x.com", Company: "Acme", Requirements: "..."}
	h.fill(draft)

	_ = h.flow.Submit(context.Background())

	assert.Equal(t, 0, h.submitter.count())
	assert.Equal(t, "Missing Information", h.notes[0].Title)
	assert.Equal(t, draft, h.flow.Draft())
}

func TestWhitespaceCountsAsContent(t *testing.T) {
	h := newHarness()
	h.fill(jane.With(FieldCompany, " "))

	require.NoError(t, h.flow.Submit(context.Background()))
	assert.Equal(t, 1, h.submitter.count())
}

func TestNilCallbacksAreAllowed(t *testing.T) {
	sub := &fakeSubmitter{}
	flow := New(sub, nil, nil)
	for _, f := range Fields {
		flow.SetField(f, jane.Get(f))
	}

	assert.NotPanics(t, func() { _ = flow.Submit(context.Background()) })
	assert.Equal(t, 1, sub.count())
}

func TestSubmitterFunc(t *testing.T) {
	var got Draft
	flow := New(SubmitterFunc(func(_ context.Context, d Draft) error {
		got = d
		return nil
	}), nil, nil)
	for _, f := range Fields {
		flow.SetField(f, jane.Get(f))
	}

	require.NoError(t, flow.Submit(context.Background()))
	assert.Equal(t, jane, got)
}
