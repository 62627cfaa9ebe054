// Package tools holds the simulators behind the tool-execution adapter:
// weather, flight and hotel search, booking, and currency conversion. They
// are stateless across runs; exclusivity and deduplication live in the
// tracker, not here.
package tools

import "github.com/tripbench/tripbench/core/types"

// All returns the full simulator set in the order the reasoning step sees
// them.
func All() types.Actions {
	return types.Actions{
		NewWeather(),
		NewFlights(),
		NewHotels(),
		NewCurrency(),
		NewBookFlight(),
		NewBookHotel(),
	}
}
