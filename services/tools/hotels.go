package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/tripbench/tripbench/core/span"
	"github.com/tripbench/tripbench/core/types"
)

// HotelsAction lists hotel room offers for a city and date pair, hiding
// blocked date windows like the flight simulator does.
type HotelsAction struct{}

func NewHotels() *HotelsAction {
	return &HotelsAction{}
}

func (a *HotelsAction) Run(ctx context.Context, params types.ActionParams) (types.ActionResult, error) {
	request := struct {
		City     string `json:"city"`
		Checkin  string `json:"checkin"`
		Checkout string `json:"checkout"`
		Limit    int    `json:"limit"`
	}{}
	if err := params.Unmarshal(&request); err != nil {
		return types.ActionResult{}, fmt.Errorf("invalid parameters: %w", err)
	}
	if request.Limit <= 0 {
		request.Limit = defaultSearchLimit
	}

	offers := []types.Candidate{}
	if s, ok := span.Of(request.Checkin, request.Checkout); ok && !blockedHotelSpans[s] {
		offers = append(offers, hotelOffers[inventoryKey{request.City, s}]...)
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

func (a *HotelsAction) Definition() types.ActionDefinition {
	return types.ActionDefinition{
		Name:        types.ToolListHotels,
		Description: "List hotel room offers for a city and date pair. Use id and offer_id exactly as returned.",
		Properties: map[string]jsonschema.Definition{
			"city": {
				Type:        jsonschema.String,
				Description: "Destination city code, e.g. BKK.",
			},
			"checkin": {
				Type:        jsonschema.String,
				Description: "Check-in date in YYYY-MM-DD format.",
			},
			"checkout": {
				Type:        jsonschema.String,
				Description: "Check-out date in YYYY-MM-DD format.",
			},
			"limit": {
				Type:        jsonschema.Integer,
				Description: "Maximum number of results to return.",
			},
		},
		Required: []string{"city", "checkin", "checkout"},
	}
}
