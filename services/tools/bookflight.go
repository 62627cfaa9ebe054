package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/tripbench/tripbench/core/types"
)

// BookFlightAction confirms a round-trip flight by offer id. Dates and
// destination in the confirmation come from the located offer, not from the
// request, since ids are globally unique.
type BookFlightAction struct{}

func NewBookFlight() *BookFlightAction {
	return &BookFlightAction{}
}

func (a *BookFlightAction) Run(ctx context.Context, params types.ActionParams) (types.ActionResult, error) {
	request := struct {
		FlightID   string `json:"flight_id"`
		Departure  string `json:"departure"`
		ReturnDate string `json:"return_date"`
		Dest       string `json:"dest"`
	}{}
	if err := params.Unmarshal(&request); err != nil {
		return types.ActionResult{}, fmt.Errorf("invalid parameters: %w", err)
	}

	if strings.TrimSpace(request.FlightID) == "" {
		return errorResult("Flight id is required.")
	}
	offer, s, dest, ok := findFlightOffer(request.FlightID)
	if !ok {
		return errorResult("Flight not found.")
	}
	if blockedFlightSpans[s] {
		return errorResult("Flights are unavailable for these dates. Please choose a different date window.")
	}

	w := s.Bounds()
	payload := types.BookingPayload{
		ConfirmationID: "FL-" + shortID(),
		ItemID:         offer.ID,
		Start:          w.Departure,
		End:            w.Return,
		Destination:    dest,
		Price:          offer.Price,
	}
	b, _ := json.Marshal(payload)
	return types.ActionResult{
		Result:   string(b),
		Metadata: map[string]interface{}{"confirmation_id": payload.ConfirmationID},
	}, nil
}

func (a *BookFlightAction) Definition() types.ActionDefinition {
	return types.ActionDefinition{
		Name:        types.ToolBookFlight,
		Description: "Confirm a round-trip flight for a specific destination and date pair. Use the id exactly as returned by list_flights.",
		Properties: map[string]jsonschema.Definition{
			"flight_id": {
				Type:        jsonschema.String,
				Description: "Offer identifier exactly as returned by list_flights.",
			},
			"departure": {
				Type:        jsonschema.String,
				Description: "Outbound date in YYYY-MM-DD format.",
			},
			"return_date": {
				Type:        jsonschema.String,
				Description: "Inbound date in YYYY-MM-DD format.",
			},
			"dest": {
				Type:        jsonschema.String,
				Description: "Destination IATA code, e.g. BKK.",
			},
		},
		Required: []string{"flight_id", "departure", "return_date", "dest"},
	}
}

func errorResult(msg string) (types.ActionResult, error) {
	b, _ := json.Marshal(types.BookingPayload{Error: msg})
	return types.ActionResult{Result: string(b)}, nil
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}
