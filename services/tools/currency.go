package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/tripbench/tripbench/core/types"
)

var exchangeRates = map[string]float64{
	"THB_USD": 0.028,
	"USD_THB": 35.71,
	"USD_USD": 1.0,
	"THB_THB": 1.0,
	"AED_USD": 0.272,
	"USD_AED": 3.67,
	"AED_THB": 9.72,
	"THB_AED": 0.103,
	"AED_EUR": 0.249,
	"EUR_AED": 4.02,
	"AED_AED": 1.0,
	"EUR_USD": 1.09,
	"USD_EUR": 0.918,
	"EUR_THB": 38.92,
	"THB_EUR": 0.026,
	"EUR_EUR": 1.0,
}

// CurrencyAction converts an amount between currencies. The rate fluctuates
// by up to 5% around the base rate to simulate dynamic pricing.
type CurrencyAction struct{}

func NewCurrency() *CurrencyAction {
	return &CurrencyAction{}
}

func (a *CurrencyAction) Run(ctx context.Context, params types.ActionParams) (types.ActionResult, error) {
	request := struct {
		Amount       float64 `json:"amount"`
		FromCurrency string  `json:"from_currency"`
		ToCurrency   string  `json:"to_currency"`
	}{}
	if err := params.Unmarshal(&request); err != nil {
		return types.ActionResult{}, fmt.Errorf("invalid parameters: %w", err)
	}

	base, ok := exchangeRates[request.FromCurrency+"_"+request.ToCurrency]
	if !ok {
		b, _ := json.Marshal(map[string]string{
			"error": fmt.Sprintf("Conversion rate not available for %s to %s", request.FromCurrency, request.ToCurrency),
		})
		return types.ActionResult{Result: string(b)}, nil
	}

	rate := round(base*(1+(rand.Float64()*0.1-0.05)), 4)
	converted := round(request.Amount*rate, 2)

	b, _ := json.Marshal(map[string]interface{}{
		"original_amount":   request.Amount,
		"original_currency": request.FromCurrency,
		"converted_amount":  converted,
		"target_currency":   request.ToCurrency,
		"exchange_rate":     rate,
	})
	return types.ActionResult{
		Result:   string(b),
		Metadata: map[string]interface{}{"exchange_rate": rate},
	}, nil
}

func (a *CurrencyAction) Definition() types.ActionDefinition {
	return types.ActionDefinition{
		Name:        types.ToolConvertCurrency,
		Description: "Convert an amount from one currency to another.",
		Properties: map[string]jsonschema.Definition{
			"amount": {
				Type:        jsonschema.Number,
				Description: "The amount to convert.",
			},
			"from_currency": {
				Type:        jsonschema.String,
				Description: "Source currency code, e.g. THB.",
			},
			"to_currency": {
				Type:        jsonschema.String,
				Description: "Target currency code, e.g. USD.",
			},
		},
		Required: []string{"amount", "from_currency", "to_currency"},
	}
}

func round(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
