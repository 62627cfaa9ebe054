package tracker_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tripbench/tripbench/core/tracker"
	"github.com/tripbench/tripbench/core/types"
)

var _ = Describe("Serializer", func() {
	var t *tracker.Tracker

	// populate drives the tracker through a representative run: weather,
	// searches with and without results, a violation, and one booking.
	populate := func() {
		Expect(round(t,
			[]types.ToolCall{
				call("w1", types.ToolWeatherSummary, types.ActionParams{"city": "Bangkok", "start": "2025-10-01"}),
				flightSearch("c1", "BKK", "2025-10-01", "2025-10-08"),
			},
			[]types.ToolResult{
				output("w1", types.ToolWeatherSummary, types.WeatherPayload{City: "Bangkok", Summary: "Hot, humid, lots of rain"}),
				output("c1", types.ToolListFlights, []types.Candidate{}),
			},
		)).To(Succeed())

		Expect(round(t,
			[]types.ToolCall{
				flightSearch("c2", "BKK", "2025-10-03", "2025-10-10"),
				flightSearch("c3", "DXB", "2025-10-03", "2025-10-10"),
			},
			[]types.ToolResult{
				output("c2", types.ToolListFlights, []types.Candidate{{ID: "FL-BKK-312", Price: 870, Currency: "USD", Detail: "1 stop"}}),
				output("c3", types.ToolListFlights, []types.Candidate{{ID: "FL-DXB-301", Price: 640, Currency: "USD"}}),
			},
		)).To(Succeed())

		calls := []types.ToolCall{call("b1", types.ToolBookFlight, types.ActionParams{
			"flight_id": "FL-BKK-312", "departure": "2025-10-03", "return_date": "2025-10-10", "dest": "BKK",
		})}
		Expect(t.PreToolUpdate(calls)).To(Succeed())
		Expect(t.PostToolUpdate(calls, []types.ToolResult{
			output("b1", types.ToolBookFlight, types.BookingPayload{
				ConfirmationID: "FL-aaa111", ItemID: "FL-BKK-312",
				Start: "2025-10-03", End: "2025-10-10", Destination: "BKK", Price: 870,
			}),
		})).To(Succeed())
	}

	BeforeEach(func() {
		t = tracker.New()
	})

	It("round-trips an empty state", func() {
		parsed, err := tracker.ParseState(t.Serialize())
		Expect(err).ToNot(HaveOccurred())
		Expect(parsed).To(Equal(t.StateView()))
	})

	It("round-trips a populated state", func() {
		populate()

		text := t.Serialize()
		parsed, err := tracker.ParseState(text)
		Expect(err).ToNot(HaveOccurred())
		Expect(parsed).To(Equal(t.StateView()))
	})

	It("renders deterministically", func() {
		populate()
		Expect(t.Serialize()).To(Equal(t.Serialize()))
	})

	It("orders fields stably for prompt injection", func() {
		populate()

		text := t.Serialize()
		Expect(text).To(MatchRegexp(`(?s)"weather_checks".*"selected_city".*"spans".*"flight_booking"`))
		Expect(text).To(ContainSubstring(`"selected_city": "BKK"`))
		Expect(text).To(ContainSubstring(`"marker": "No flights found"`))
	})

	It("rejects malformed text", func() {
		_, err := tracker.ParseState("not json")
		Expect(err).To(HaveOccurred())
	})
})
