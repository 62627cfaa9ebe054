// Package booking holds the run's two write-once confirmation slots.
package booking

import (
	"errors"

	"github.com/tripbench/tripbench/core/span"
)

// ErrAlreadyBooked is returned when a slot already holds a confirmation.
// It is a protocol error: the round processor let a second booking through.
var ErrAlreadyBooked = errors.New("booking slot already confirmed")

// Confirmation is a finalized booking for one category.
type Confirmation struct {
	ConfirmationID string    `json:"confirmation_id"`
	ItemID         string    `json:"item_id"`
	OfferID        string    `json:"offer_id,omitempty"`
	Span           span.Span `json:"span"`
	Destination    string    `json:"destination"`
	Price          float64   `json:"price,omitempty"`
}

// Register pairs the flight and hotel slots. Each is set at most once.
type Register struct {
	flight *Confirmation
	hotel  *Confirmation
}

func New() *Register {
	return &Register{}
}

func (r *Register) ConfirmFlight(c Confirmation) error {
	if r.flight != nil {
		return ErrAlreadyBooked
	}
	r.flight = &c
	return nil
}

func (r *Register) ConfirmHotel(c Confirmation) error {
	if r.hotel != nil {
		return ErrAlreadyBooked
	}
	r.hotel = &c
	return nil
}

func (r *Register) Flight() *Confirmation {
	return r.flight
}

func (r *Register) Hotel() *Confirmation {
	return r.hotel
}

// IsComplete is the run's success predicate: both slots are confirmed.
func (r *Register) IsComplete() bool {
	return r.flight != nil && r.hotel != nil
}
