package types

import (
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// Tool names the reasoning step can request. The tracker classifies pending
// calls by these names.
const (
	ToolWeatherSummary  = "get_weather_summary"
	ToolListFlights     = "list_flights"
	ToolListHotels      = "list_hotels"
	ToolBookFlight      = "book_flight"
	ToolBookHotel       = "book_hotel"
	ToolConvertCurrency = "convert_currency"
)

// ToolCall is one pending invocation predicted by the reasoning step.
type ToolCall struct {
	ID     string
	Name   string
	Params ActionParams
}

// ToolResult pairs a tool's raw output with the call that produced it.
// Content is the JSON the model sees; the tracker parses it and never
// invents data beyond what is in here.
type ToolResult struct {
	CallID   string
	Name     string
	Content  string
	Metadata map[string]interface{}
}

// FromOpenAIToolCalls converts the assistant message's tool calls into
// ToolCalls, preserving order.
func FromOpenAIToolCalls(calls []openai.ToolCall) ([]ToolCall, error) {
	out := make([]ToolCall, 0, len(calls))
	for _, tc := range calls {
		params := ActionParams{}
		if tc.Function.Arguments != "" {
			if err := params.Read(tc.Function.Arguments); err != nil {
				return nil, fmt.Errorf("parsing arguments of %q (%s): %w", tc.Function.Name, tc.ID, err)
			}
		}
		out = append(out, ToolCall{
			ID:     tc.ID,
			Name:   tc.Function.Name,
			Params: params,
		})
	}
	return out, nil
}

// DecodeJSON parses a tool's raw output content into v.
func DecodeJSON(content string, v interface{}) error {
	return json.Unmarshal([]byte(content), v)
}

// Candidate is one viable option returned by a search tool, reduced to the
// fields the tracker and the budget reasoning care about.
type Candidate struct {
	ID       string  `json:"id"`
	OfferID  string  `json:"offer_id,omitempty"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency,omitempty"`
	Detail   string  `json:"detail,omitempty"`
}

// WeatherPayload is the weather tool's output shape.
type WeatherPayload struct {
	City    string `json:"city"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Summary string `json:"summary"`
}

// BookingPayload is the booking tools' output shape. Error is set instead
// of the confirmation fields when the simulator rejects the request.
type BookingPayload struct {
	ConfirmationID string  `json:"confirmation_id,omitempty"`
	ItemID         string  `json:"item_id,omitempty"`
	OfferID        string  `json:"offer_id,omitempty"`
	Start          string  `json:"start,omitempty"`
	End            string  `json:"end,omitempty"`
	Destination    string  `json:"destination,omitempty"`
	Price          float64 `json:"price,omitempty"`
	Error          string  `json:"error,omitempty"`
}
