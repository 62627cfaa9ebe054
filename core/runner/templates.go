package runner

// DefaultUserPrompt is the trip-planning goal handed to the reasoning step
// as the first user message.
const DefaultUserPrompt = `Goal: find and, if possible, book a 7-night trip in Oct 2025 that fits the budget and favors warm with lots of rain.

Budget (USD):
- Total max: 1500
- Flight max: 1000
- Hotel max: 500

What to do:
1) Weather check
- Call get_weather_summary for each city (Bangkok, Dubai, Reykjavik) for the entire trip window (2025-10-01 to 2025-10-10).
- The user prefers "warmer weather with lots of rain"; pick the best city based on this criteria.

2) Search and compare (chosen city; try each span in order: 2025-10-01 to 2025-10-08, 2025-10-02 to 2025-10-09, 2025-10-03 to 2025-10-10)
- Flights: list_flights(dest=<CODE>, dep=<START>, ret=<END>). Only use returned id values.
- Hotels: list_hotels(city=<CODE>, checkin=<START>, checkout=<END>). Use id and offer_id exactly as returned.
- If a price isn't USD, convert_currency(amount, from_currency, "USD").
- Check budget: flight <= 1000, hotel <= 500, and flight+hotel <= 1500.
- Treat each span independently (no mixing). Only proceed to booking if BOTH a flight and a hotel for the SAME span meet the budget.
- If either flights or hotels are missing for a span, continue to the next span.

3) Book when both fit
- book_flight(flight_id=<id>, departure=<START>, return_date=<END>, dest=<CODE>).
- book_hotel(hotel_id=<id>, offer_id=<offer_id>, check_in=<START>, check_out=<END>, city=<CODE>).
- Issue BOTH booking calls for the SAME span in the SAME assistant turn.
- Success only if both tools return confirmation_id. If one fails, mark this span as failed and continue to the next span without reusing any booking from this span.

Finish with a short summary (city, dates, and any confirmation_ids).`
