package tracker

import "fmt"

// ViolationKind classifies a recoverable deviation from the task rules.
// Violations are surfaced in the serialized state so the reasoning step can
// observe and correct itself; they never abort the run.
type ViolationKind string

const (
	// ViolationDestinationConflict is a call naming a city other than the
	// already selected one.
	ViolationDestinationConflict ViolationKind = "destination_conflict"
	// ViolationDuplicateSearch is a search identical to one already
	// reserved or resolved in the ledger.
	ViolationDuplicateSearch ViolationKind = "duplicate_search"
	// ViolationBookingWithoutSearch is a booking for a span/destination
	// with no prior successfully resolved search attempt.
	ViolationBookingWithoutSearch ViolationKind = "booking_without_search"
	// ViolationSpanMixing is a call whose dates do not form any known span.
	ViolationSpanMixing ViolationKind = "span_mixing"
)

type Violation struct {
	Kind   ViolationKind `json:"kind"`
	Detail string        `json:"detail"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Kind, v.Detail)
}
