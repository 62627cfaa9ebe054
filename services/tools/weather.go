package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/tripbench/tripbench/core/types"
)

// WeatherAction returns a compact qualitative weather summary for a city
// over a date range.
type WeatherAction struct{}

func NewWeather() *WeatherAction {
	return &WeatherAction{}
}

func (a *WeatherAction) Run(ctx context.Context, params types.ActionParams) (types.ActionResult, error) {
	request := struct {
		City  string `json:"city"`
		Start string `json:"start"`
		End   string `json:"end"`
	}{}
	if err := params.Unmarshal(&request); err != nil {
		return types.ActionResult{}, fmt.Errorf("invalid parameters: %w", err)
	}
	if request.City == "" {
		return types.ActionResult{}, fmt.Errorf("city cannot be empty")
	}

	city := strings.ToUpper(request.City[:1]) + strings.ToLower(request.City[1:])
	summary, ok := weatherSummaries[city]
	if !ok {
		return types.ActionResult{}, fmt.Errorf("unknown city: %s", request.City)
	}
	if request.End == "" {
		request.End = request.Start
	}

	payload := types.WeatherPayload{
		City:    city,
		Start:   request.Start,
		End:     request.End,
		Summary: summary,
	}
	b, _ := json.Marshal(payload)
	return types.ActionResult{
		Result:   string(b),
		Metadata: map[string]interface{}{"city": city},
	}, nil
}

func (a *WeatherAction) Definition() types.ActionDefinition {
	return types.ActionDefinition{
		Name:        types.ToolWeatherSummary,
		Description: "Return a compact weather summary for a city over a date range.",
		Properties: map[string]jsonschema.Definition{
			"city": {
				Type:        jsonschema.String,
				Description: "The case-insensitive name of the city, e.g. Bangkok.",
			},
			"start": {
				Type:        jsonschema.String,
				Description: "Start date in YYYY-MM-DD format.",
			},
			"end": {
				Type:        jsonschema.String,
				Description: "End date in YYYY-MM-DD format. Defaults to start.",
			},
		},
		Required: []string{"city", "start"},
	}
}
