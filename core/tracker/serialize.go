package tracker

import (
	"encoding/json"
	"fmt"

	"github.com/tripbench/tripbench/core/booking"
	"github.com/tripbench/tripbench/core/ledger"
	"github.com/tripbench/tripbench/core/span"
)

// State is the serializable view of a tracker. Field order is fixed by the
// struct and map keys are emitted sorted, so the rendering is deterministic
// for any reachable state.
type State struct {
	WeatherChecks map[string]*WeatherCheck           `json:"weather_checks"`
	SelectedCity  string                             `json:"selected_city,omitempty"`
	Spans         map[span.Span]*ledger.SpanAttempts `json:"spans"`
	FlightBooking *booking.Confirmation              `json:"flight_booking,omitempty"`
	HotelBooking  *booking.Confirmation              `json:"hotel_booking,omitempty"`
	Violations    []Violation                        `json:"violations,omitempty"`
}

// StateView snapshots the tracker for serialization. The view shares the
// tracker's records; callers must treat it as read-only.
func (t *Tracker) StateView() *State {
	return &State{
		WeatherChecks: t.weather,
		SelectedCity:  t.selectedCity,
		Spans:         t.ledger.Spans(),
		FlightBooking: t.register.Flight(),
		HotelBooking:  t.register.Hotel(),
		Violations:    t.violations,
	}
}

// Serialize renders the full state as indented JSON for prompt injection.
func (t *Tracker) Serialize() string {
	b, err := json.MarshalIndent(t.StateView(), "", "  ")
	if err != nil {
		// State is built from plain structs and maps; this cannot fail.
		panic(fmt.Sprintf("serializing tracker state: %v", err))
	}
	return string(b)
}

// ParseState re-parses a serialized rendering back into its structural
// form. Serialize followed by ParseState yields a State equal to the
// original StateView.
func ParseState(text string) (*State, error) {
	var st State
	if err := json.Unmarshal([]byte(text), &st); err != nil {
		return nil, fmt.Errorf("parsing serialized state: %w", err)
	}
	return &st, nil
}
