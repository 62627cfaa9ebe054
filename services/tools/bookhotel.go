package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/tripbench/tripbench/core/span"
	"github.com/tripbench/tripbench/core/types"
)

// BookHotelAction confirms a hotel stay for a given city and date pair.
type BookHotelAction struct{}

func NewBookHotel() *BookHotelAction {
	return &BookHotelAction{}
}

func (a *BookHotelAction) Run(ctx context.Context, params types.ActionParams) (types.ActionResult, error) {
	request := struct {
		HotelID  string `json:"hotel_id"`
		OfferID  string `json:"offer_id"`
		CheckIn  string `json:"check_in"`
		CheckOut string `json:"check_out"`
		City     string `json:"city"`
	}{}
	if err := params.Unmarshal(&request); err != nil {
		return types.ActionResult{}, fmt.Errorf("invalid parameters: %w", err)
	}

	if strings.TrimSpace(request.HotelID) == "" {
		return errorResult("Hotel id is required.")
	}
	if strings.TrimSpace(request.OfferID) == "" {
		return errorResult("Offer id is required.")
	}
	if strings.TrimSpace(request.City) == "" {
		return errorResult("City code is required.")
	}
	s, ok := span.Of(request.CheckIn, request.CheckOut)
	if !ok {
		return errorResult(fmt.Sprintf("No hotel with id %q for %s on %s to %s.",
			request.HotelID, request.City, request.CheckIn, request.CheckOut))
	}
	offer, ok := findHotelOffer(request.City, s, request.HotelID, request.OfferID)
	if !ok {
		return errorResult(fmt.Sprintf("No hotel with id %q for %s on %s to %s.",
			request.HotelID, request.City, request.CheckIn, request.CheckOut))
	}
	if blockedHotelSpans[s] {
		return errorResult("Hotels are unavailable for these dates. Please choose a different date window.")
	}

	payload := types.BookingPayload{
		ConfirmationID: "HT-" + shortID(),
		ItemID:         offer.ID,
		OfferID:        offer.OfferID,
		Start:          request.CheckIn,
		End:            request.CheckOut,
		Destination:    request.City,
		Price:          offer.Price,
	}
	b, _ := json.Marshal(payload)
	return types.ActionResult{
		Result:   string(b),
		Metadata: map[string]interface{}{"confirmation_id": payload.ConfirmationID},
	}, nil
}

func (a *BookHotelAction) Definition() types.ActionDefinition {
	return types.ActionDefinition{
		Name:        types.ToolBookHotel,
		Description: "Confirm a hotel stay for a given date range in a specific city. Use id and offer_id exactly as returned by list_hotels.",
		Properties: map[string]jsonschema.Definition{
			"hotel_id": {
				Type:        jsonschema.String,
				Description: "Property identifier exactly as returned by list_hotels.",
			},
			"offer_id": {
				Type:        jsonschema.String,
				Description: "Room offer identifier exactly as returned by list_hotels.",
			},
			"check_in": {
				Type:        jsonschema.String,
				Description: "First night in YYYY-MM-DD format, inclusive.",
			},
			"check_out": {
				Type:        jsonschema.String,
				Description: "Check-out date in YYYY-MM-DD format, exclusive.",
			},
			"city": {
				Type:        jsonschema.String,
				Description: "Destination city code, e.g. BKK.",
			},
		},
		Required: []string{"hotel_id", "offer_id", "check_in", "check_out", "city"},
	}
}
