// Package ledger keeps the per-span, per-category record of search attempts.
// An attempt is reserved before its tool call runs and resolved exactly once
// afterwards, which is what lets a repeated identical search be recognized
// as a duplicate even while the first one is still in flight.
package ledger

import (
	"errors"
	"fmt"

	"github.com/tripbench/tripbench/core/span"
	"github.com/tripbench/tripbench/core/types"
)

// Category distinguishes the two kinds of search attempts.
type Category string

const (
	CategoryFlight Category = "flight"
	CategoryHotel  Category = "hotel"
)

// Protocol errors. These indicate the round processor handed the ledger
// arguments inconsistent with prior state and are fatal to the run.
var (
	ErrSpanMismatch    = errors.New("attempt dates do not match span bounds")
	ErrAlreadyResolved = errors.New("attempt result already resolved")
	ErrNotFound        = errors.New("attempt not found")
)

// OutcomeStatus is the two-state lifecycle of an attempt's result.
type OutcomeStatus string

const (
	OutcomePending  OutcomeStatus = "pending"
	OutcomeResolved OutcomeStatus = "resolved"
)

// Outcome is the resolved value of an attempt: either the first viable
// option the tool returned, or an explicit marker when the tool returned
// nothing. While Status is pending both fields are empty.
type Outcome struct {
	Status OutcomeStatus    `json:"status"`
	Option *types.Candidate `json:"option,omitempty"`
	Marker string           `json:"marker,omitempty"`
}

// AttemptRecord is one reserved search attempt. CallID correlates it to the
// originating tool call, not to any flight or hotel product id.
type AttemptRecord struct {
	Destination string  `json:"destination"`
	Departure   string  `json:"departure"`
	Return      string  `json:"return"`
	CallID      string  `json:"call_id"`
	Outcome     Outcome `json:"outcome"`
}

// Resolved reports whether the attempt has been resolved to a viable option.
func (r *AttemptRecord) Resolved() bool {
	return r.Outcome.Status == OutcomeResolved && r.Outcome.Option != nil
}

// SpanAttempts groups one span's attempts by category, in arrival order.
type SpanAttempts struct {
	Flights []*AttemptRecord `json:"flight_attempts"`
	Hotels  []*AttemptRecord `json:"hotel_attempts"`
}

func (sa *SpanAttempts) byCategory(cat Category) *[]*AttemptRecord {
	if cat == CategoryHotel {
		return &sa.Hotels
	}
	return &sa.Flights
}

// Ledger is the per-run collection of attempts across all spans.
type Ledger struct {
	spans map[span.Span]*SpanAttempts
}

func New() *Ledger {
	l := &Ledger{spans: map[span.Span]*SpanAttempts{}}
	for _, s := range span.All() {
		l.spans[s] = &SpanAttempts{}
	}
	return l
}

// RecordIntent reserves an attempt before its tool call executes. The span
// must be valid and the dates must equal its bounds exactly; mixing dates
// from two spans is rejected with ErrSpanMismatch. If an identical attempt
// already exists it is returned unchanged with created=false, regardless of
// whether it has been resolved yet.
func (l *Ledger) RecordIntent(cat Category, s span.Span, destination, departure, ret, callID string) (rec *AttemptRecord, created bool, err error) {
	if !span.IsValid(s) {
		return nil, false, fmt.Errorf("span %q: %w", s, ErrSpanMismatch)
	}
	w := s.Bounds()
	if departure != w.Departure || ret != w.Return {
		return nil, false, fmt.Errorf("span %s expects %s..%s, got %s..%s: %w",
			s, w.Departure, w.Return, departure, ret, ErrSpanMismatch)
	}

	if existing := l.Find(cat, s, destination); existing != nil {
		return existing, false, nil
	}

	rec = &AttemptRecord{
		Destination: destination,
		Departure:   departure,
		Return:      ret,
		CallID:      callID,
		Outcome:     Outcome{Status: OutcomePending},
	}
	attempts := l.spans[s].byCategory(cat)
	*attempts = append(*attempts, rec)
	return rec, true, nil
}

// Resolve sets the outcome of the attempt reserved under callID. The
// transition is pending to resolved, once: a second resolution fails with
// ErrAlreadyResolved and an unknown callID with ErrNotFound.
func (l *Ledger) Resolve(callID string, outcome Outcome) error {
	rec := l.findByCallID(callID)
	if rec == nil {
		return fmt.Errorf("call %q: %w", callID, ErrNotFound)
	}
	if rec.Outcome.Status != OutcomePending {
		return fmt.Errorf("call %q: %w", callID, ErrAlreadyResolved)
	}
	outcome.Status = OutcomeResolved
	rec.Outcome = outcome
	return nil
}

// Find returns the attempt for (category, span, destination), or nil.
func (l *Ledger) Find(cat Category, s span.Span, destination string) *AttemptRecord {
	sa, ok := l.spans[s]
	if !ok {
		return nil
	}
	for _, rec := range *sa.byCategory(cat) {
		if rec.Destination == destination {
			return rec
		}
	}
	return nil
}

// Spans exposes the attempts for serialization. The returned map is the
// ledger's own storage; callers must not mutate it.
func (l *Ledger) Spans() map[span.Span]*SpanAttempts {
	return l.spans
}

func (l *Ledger) findByCallID(callID string) *AttemptRecord {
	for _, s := range span.All() {
		sa := l.spans[s]
		for _, rec := range append(append([]*AttemptRecord{}, sa.Flights...), sa.Hotels...) {
			if rec.CallID == callID {
				return rec
			}
		}
	}
	return nil
}
