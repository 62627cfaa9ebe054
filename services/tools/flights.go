package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/tripbench/tripbench/core/span"
	"github.com/tripbench/tripbench/core/types"
)

const defaultSearchLimit = 8

// FlightsAction lists round-trip flight offers for a destination and date
// pair. Offers for blocked date windows are hidden to simulate temporary
// unavailability.
type FlightsAction struct{}

func NewFlights() *FlightsAction {
	return &FlightsAction{}
}

func (a *FlightsAction) Run(ctx context.Context, params types.ActionParams) (types.ActionResult, error) {
	request := struct {
		Dest  string `json:"dest"`
		Dep   string `json:"dep"`
		Ret   string `json:"ret"`
		Limit int    `json:"limit"`
	}{}
	if err := params.Unmarshal(&request); err != nil {
		return types.ActionResult{}, fmt.Errorf("invalid parameters: %w", err)
	}
	if request.Limit <= 0 {
		request.Limit = defaultSearchLimit
	}

	offers := []types.Candidate{}
	if s, ok := span.Of(request.Dep, request.Ret); ok && !blockedFlightSpans[s] {
		offers = append(offers, flightOffers[inventoryKey{request.Dest, s}]...)
	}
	if len(offers) > request.Limit {
		offers = offers[:request.Limit]
	}

	b, _ := json.Marshal(offers)
	return types.ActionResult{
		Result:   string(b),
		Metadata: map[string]interface{}{"count": len(offers)},
	}, nil
}

func (a *FlightsAction) Definition() types.ActionDefinition {
	return types.ActionDefinition{
		Name:        types.ToolListFlights,
		Description: "List round-trip flight offers for a destination and date pair. Only use returned id values for booking.",
		Properties: map[string]jsonschema.Definition{
			"dest": {
				Type:        jsonschema.String,
				Description: "Destination IATA code, e.g. BKK.",
			},
			"dep": {
				Type:        jsonschema.String,
				Description: "Outbound date in YYYY-MM-DD format.",
			},
			"ret": {
				Type:        jsonschema.String,
				Description: "Return date in YYYY-MM-DD format.",
			},
			"limit": {
				Type:        jsonschema.Integer,
				Description: "Maximum number of results to return.",
			},
		},
		Required: []string{"dest", "dep", "ret"},
	}
}
