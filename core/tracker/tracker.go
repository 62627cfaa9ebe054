// Package tracker owns the structured state of one trip-planning run. It is
// mutated exclusively around tool execution: PreToolUpdate records intent
// for every pending call before any tool runs, PostToolUpdate resolves the
// raw outputs back into the ledger and the booking register. The reasoning
// step only ever sees the serialized rendering.
package tracker

import (
	"fmt"

	"github.com/mudler/xlog"

	"github.com/tripbench/tripbench/core/booking"
	"github.com/tripbench/tripbench/core/ledger"
	"github.com/tripbench/tripbench/core/span"
	"github.com/tripbench/tripbench/core/types"
)

// Phase is the tracker's position in the round state machine.
type Phase string

const (
	PhaseAwaitingToolCalls Phase = "awaiting_tool_calls"
	PhaseIntentsRecorded   Phase = "intents_recorded"
	PhaseResultsResolved   Phase = "results_resolved"
	PhaseComplete          Phase = "complete"
	PhaseExhausted         Phase = "exhausted"
)

const (
	markerNoFlights = "No flights found"
	markerNoHotels  = "No hotels found"
)

// cityCodes are the destination codes the task considers committing.
var cityCodes = map[string]string{
	"Bangkok":   "BKK",
	"Dubai":     "DXB",
	"Reykjavik": "REK",
}

func isKnownCityCode(code string) bool {
	for _, c := range cityCodes {
		if c == code {
			return true
		}
	}
	return false
}

// WeatherCheck is the write-once weather slot for one city. It is reserved
// pending before the tool runs and filled at most once afterwards; a
// resolved slot with an empty summary means the tool reported nothing.
type WeatherCheck struct {
	CallID  string               `json:"call_id"`
	Status  ledger.OutcomeStatus `json:"status"`
	Summary string               `json:"summary,omitempty"`
}

// callDisposition records, per round, what PreToolUpdate decided for a call
// so PostToolUpdate knows whether its output resolves a record or is
// discarded as a duplicate.
type callDisposition int

const (
	dispositionRecorded callDisposition = iota
	dispositionDuplicate
	dispositionSkipped
)

// Tracker aggregates the run's structured state. One instance per run; it
// is not safe for concurrent use and is driven by a single control loop.
type Tracker struct {
	phase        Phase
	weather      map[string]*WeatherCheck
	selectedCity string
	ledger       *ledger.Ledger
	register     *booking.Register
	violations   []Violation

	round map[string]callDisposition
}

func New() *Tracker {
	return &Tracker{
		phase:    PhaseAwaitingToolCalls,
		weather:  map[string]*WeatherCheck{},
		ledger:   ledger.New(),
		register: booking.New(),
	}
}

func (t *Tracker) Phase() Phase {
	return t.phase
}

func (t *Tracker) SelectedCity() string {
	return t.selectedCity
}

func (t *Tracker) Register() *booking.Register {
	return t.register
}

func (t *Tracker) Ledger() *ledger.Ledger {
	return t.ledger
}

func (t *Tracker) Violations() []Violation {
	return t.violations
}

func (t *Tracker) flag(kind ViolationKind, format string, args ...interface{}) {
	v := Violation{Kind: kind, Detail: fmt.Sprintf(format, args...)}
	t.violations = append(t.violations, v)
	xlog.Warn("Policy violation", "kind", string(v.Kind), "detail", v.Detail)
}

// PreToolUpdate records intent for every pending call before any tool runs.
// Duplicate searches are recognized here, while their results do not exist
// yet, and their later outputs are discarded in PostToolUpdate.
func (t *Tracker) PreToolUpdate(calls []types.ToolCall) error {
	if t.phase != PhaseAwaitingToolCalls {
		return fmt.Errorf("pre-tool update in phase %s", t.phase)
	}
	t.round = map[string]callDisposition{}

	for _, call := range calls {
		switch call.Name {
		case types.ToolWeatherSummary:
			t.reserveWeather(call)
		case types.ToolListFlights:
			var args struct {
				Dest string `json:"dest"`
				Dep  string `json:"dep"`
				Ret  string `json:"ret"`
			}
			if err := call.Params.Unmarshal(&args); err != nil {
				return fmt.Errorf("parsing %s arguments: %w", call.Name, err)
			}
			if err := t.reserveSearch(call, ledger.CategoryFlight, args.Dest, args.Dep, args.Ret); err != nil {
				return err
			}
		case types.ToolListHotels:
			var args struct {
				City     string `json:"city"`
				Checkin  string `json:"checkin"`
				Checkout string `json:"checkout"`
			}
			if err := call.Params.Unmarshal(&args); err != nil {
				return fmt.Errorf("parsing %s arguments: %w", call.Name, err)
			}
			if err := t.reserveSearch(call, ledger.CategoryHotel, args.City, args.Checkin, args.Checkout); err != nil {
				return err
			}
		case types.ToolBookFlight:
			t.commitDestination(stringParam(call.Params, "dest"))
			t.round[call.ID] = dispositionRecorded
		case types.ToolBookHotel:
			t.commitDestination(stringParam(call.Params, "city"))
			t.round[call.ID] = dispositionRecorded
		default:
			// Currency conversion and anything unknown leaves no intent.
			t.round[call.ID] = dispositionSkipped
		}
	}

	t.phase = PhaseIntentsRecorded
	return nil
}

func (t *Tracker) reserveWeather(call types.ToolCall) {
	city := stringParam(call.Params, "city")
	if city == "" {
		t.round[call.ID] = dispositionSkipped
		return
	}
	if _, ok := t.weather[city]; ok {
		// First check is authoritative; repeats are advisory only.
		t.flag(ViolationDuplicateSearch, "weather already checked for %s", city)
		t.round[call.ID] = dispositionDuplicate
		return
	}
	t.weather[city] = &WeatherCheck{CallID: call.ID, Status: ledger.OutcomePending}
	t.round[call.ID] = dispositionRecorded
}

func (t *Tracker) reserveSearch(call types.ToolCall, cat ledger.Category, destination, departure, ret string) error {
	s, ok := span.Of(departure, ret)
	if !ok {
		t.flag(ViolationSpanMixing, "%s dates %s..%s do not form a known span", call.Name, departure, ret)
		t.round[call.ID] = dispositionSkipped
		return nil
	}

	rec, created, err := t.ledger.RecordIntent(cat, s, destination, departure, ret, call.ID)
	if err != nil {
		return err
	}
	if !created {
		t.flag(ViolationDuplicateSearch, "%s for %s span %s already attempted (call %s)", cat, destination, s, rec.CallID)
		t.round[call.ID] = dispositionDuplicate
	} else {
		t.round[call.ID] = dispositionRecorded
	}

	t.commitDestination(destination)
	return nil
}

// commitDestination sets the run's canonical city on the first call naming
// a known code, and flags any later call naming a different one.
func (t *Tracker) commitDestination(code string) {
	if !isKnownCityCode(code) {
		return
	}
	if t.selectedCity == "" {
		t.selectedCity = code
		xlog.Info("Destination selected", "city", code)
		return
	}
	if t.selectedCity != code {
		t.flag(ViolationDestinationConflict, "call names %s but %s was already selected", code, t.selectedCity)
	}
}

// PostToolUpdate resolves raw tool outputs into the ledger and the booking
// register. Outputs of calls classified as duplicates in PreToolUpdate are
// discarded, keeping the first resolution authoritative.
func (t *Tracker) PostToolUpdate(calls []types.ToolCall, outputs []types.ToolResult) error {
	if t.phase != PhaseIntentsRecorded {
		return fmt.Errorf("post-tool update in phase %s", t.phase)
	}

	byCall := map[string]types.ToolResult{}
	for _, out := range outputs {
		byCall[out.CallID] = out
	}

	for _, call := range calls {
		out, ok := byCall[call.ID]
		if !ok {
			return fmt.Errorf("no tool output for call %s (%s): %w", call.ID, call.Name, ledger.ErrNotFound)
		}
		if t.round[call.ID] != dispositionRecorded {
			continue
		}

		var err error
		switch call.Name {
		case types.ToolWeatherSummary:
			t.resolveWeather(call, out)
		case types.ToolListFlights:
			err = t.resolveSearch(call, out, markerNoFlights)
		case types.ToolListHotels:
			err = t.resolveSearch(call, out, markerNoHotels)
		case types.ToolBookFlight:
			err = t.resolveBooking(ledger.CategoryFlight, out)
		case types.ToolBookHotel:
			err = t.resolveBooking(ledger.CategoryHotel, out)
		}
		if err != nil {
			return err
		}
	}

	t.round = nil
	if t.register.IsComplete() {
		t.phase = PhaseComplete
		xlog.Info("Both bookings confirmed, run complete")
	} else {
		t.phase = PhaseResultsResolved
	}
	return nil
}

func (t *Tracker) resolveWeather(call types.ToolCall, out types.ToolResult) {
	var payload types.WeatherPayload
	if err := types.DecodeJSON(out.Content, &payload); err != nil {
		xlog.Warn("Unparseable weather output", "call", call.ID, "error", err)
	}
	for _, check := range t.weather {
		if check.CallID == call.ID && check.Status == ledger.OutcomePending {
			check.Status = ledger.OutcomeResolved
			check.Summary = payload.Summary
			return
		}
	}
}

func (t *Tracker) resolveSearch(call types.ToolCall, out types.ToolResult, emptyMarker string) error {
	var candidates []types.Candidate
	if err := types.DecodeJSON(out.Content, &candidates); err != nil {
		xlog.Warn("Unparseable search output", "call", call.ID, "error", err)
	}

	outcome := ledger.Outcome{Status: ledger.OutcomeResolved}
	if len(candidates) > 0 {
		first := candidates[0]
		outcome.Option = &first
	} else {
		outcome.Marker = emptyMarker
	}
	return t.ledger.Resolve(call.ID, outcome)
}

// resolveBooking validates the confirmed booking against the selected city
// and the ledger, flags deviations, and commits into the write-once slot.
// A simulator-reported failure is a valid terminal output and commits
// nothing.
func (t *Tracker) resolveBooking(cat ledger.Category, out types.ToolResult) error {
	var payload types.BookingPayload
	if err := types.DecodeJSON(out.Content, &payload); err != nil {
		xlog.Warn("Unparseable booking output", "call", out.CallID, "error", err)
		return nil
	}
	if payload.Error != "" || payload.ConfirmationID == "" {
		return nil
	}

	if t.selectedCity != "" && payload.Destination != t.selectedCity {
		t.flag(ViolationDestinationConflict, "%s booking for %s but %s was selected", cat, payload.Destination, t.selectedCity)
	}

	s, ok := span.Of(payload.Start, payload.End)
	if !ok {
		t.flag(ViolationSpanMixing, "%s booking dates %s..%s do not form a known span", cat, payload.Start, payload.End)
		return nil
	}
	if rec := t.ledger.Find(cat, s, payload.Destination); rec == nil || !rec.Resolved() {
		t.flag(ViolationBookingWithoutSearch, "%s booking for %s span %s without a resolved search attempt", cat, payload.Destination, s)
	}

	conf := booking.Confirmation{
		ConfirmationID: payload.ConfirmationID,
		ItemID:         payload.ItemID,
		OfferID:        payload.OfferID,
		Span:           s,
		Destination:    payload.Destination,
		Price:          payload.Price,
	}
	if cat == ledger.CategoryHotel {
		return t.register.ConfirmHotel(conf)
	}
	return t.register.ConfirmFlight(conf)
}

// NextRound re-arms the tracker for another reasoning step.
func (t *Tracker) NextRound() error {
	if t.phase != PhaseResultsResolved {
		return fmt.Errorf("next round in phase %s", t.phase)
	}
	t.phase = PhaseAwaitingToolCalls
	return nil
}

// Exhaust marks the run as terminated by the round budget. Completing runs
// stay complete.
func (t *Tracker) Exhaust() {
	if t.phase != PhaseComplete {
		t.phase = PhaseExhausted
	}
}

func stringParam(params types.ActionParams, key string) string {
	s, _ := params[key].(string)
	return s
}
