package tools

import (
	"github.com/tripbench/tripbench/core/span"
	"github.com/tripbench/tripbench/core/types"
)

// Fixture inventory for the simulators. Flights are hidden for the first
// span and hotels for the second, so only the 03_10 window can complete
// both bookings.
var (
	blockedFlightSpans = map[span.Span]bool{span.Span0108: true}
	blockedHotelSpans  = map[span.Span]bool{span.Span0209: true}
)

var weatherSummaries = map[string]string{
	"Bangkok":   "Hot, humid, lots of rain",
	"Dubai":     "Very hot, dry, no rain",
	"Reykjavik": "Very cold with snow, little rain",
}

type inventoryKey struct {
	Destination string
	Span        span.Span
}

var flightOffers = map[inventoryKey][]types.Candidate{
	{"BKK", span.Span0108}: {
		{ID: "FL-BKK-118", Price: 930, Currency: "USD", Detail: "1 stop, 14h 40m"},
		{ID: "FL-BKK-119", Price: 1140, Currency: "USD", Detail: "direct, 11h 05m"},
	},
	{"BKK", span.Span0209}: {
		{ID: "FL-BKK-205", Price: 905, Currency: "USD", Detail: "1 stop, 15h 10m"},
	},
	{"BKK", span.Span0310}: {
		{ID: "FL-BKK-312", Price: 870, Currency: "USD", Detail: "1 stop, 14h 55m"},
		{ID: "FL-BKK-313", Price: 1215, Currency: "USD", Detail: "direct, 11h 20m"},
	},
	{"DXB", span.Span0310}: {
		{ID: "FL-DXB-301", Price: 640, Currency: "USD", Detail: "direct, 6h 45m"},
	},
	{"REK", span.Span0310}: {
		{ID: "FL-REK-307", Price: 480, Currency: "USD", Detail: "direct, 3h 10m"},
	},
}

var hotelOffers = map[inventoryKey][]types.Candidate{
	{"BKK", span.Span0108}: {
		{ID: "HT-BKK-22", OfferID: "OF-2201", Price: 12600, Currency: "THB", Detail: "Riverside, cancellable"},
	},
	{"BKK", span.Span0209}: {
		{ID: "HT-BKK-31", OfferID: "OF-3102", Price: 13900, Currency: "THB", Detail: "Sukhumvit, breakfast included"},
	},
	{"BKK", span.Span0310}: {
		{ID: "HT-BKK-47", OfferID: "OF-4701", Price: 11900, Currency: "THB", Detail: "Old town, cancellable"},
		{ID: "HT-BKK-52", OfferID: "OF-5203", Price: 17800, Currency: "THB", Detail: "Riverside suite"},
	},
	{"DXB", span.Span0310}: {
		{ID: "HT-DXB-64", OfferID: "OF-6401", Price: 1690, Currency: "AED", Detail: "Marina view"},
	},
	{"REK", span.Span0310}: {
		{ID: "HT-REK-09", OfferID: "OF-0902", Price: 420, Currency: "EUR", Detail: "City centre"},
	},
}

// findFlightOffer locates an offer by its globally unique id and returns it
// with the span it was listed under.
func findFlightOffer(id string) (types.Candidate, span.Span, string, bool) {
	for key, offers := range flightOffers {
		for _, o := range offers {
			if o.ID == id {
				return o, key.Span, key.Destination, true
			}
		}
	}
	return types.Candidate{}, "", "", false
}

// findHotelOffer locates a hotel room offer within a city and span.
func findHotelOffer(city string, s span.Span, hotelID, offerID string) (types.Candidate, bool) {
	for _, o := range hotelOffers[inventoryKey{city, s}] {
		if o.ID == hotelID && o.OfferID == offerID {
			return o, true
		}
	}
	return types.Candidate{}, false
}
