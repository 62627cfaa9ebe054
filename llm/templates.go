package llm

import (
	"bytes"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const constraints = `Constraints:
- Trip window: Oct 1-10, 2025. Valid 7-night spans (try in order until one works):
  - 2025-10-01 -> 2025-10-08
  - 2025-10-02 -> 2025-10-09
  - 2025-10-03 -> 2025-10-10
- Candidate cities: Bangkok (BKK), Dubai (DXB), Reykjavik (REK).
- City choice: check weather for all cities, then select the one that best matches the user preference (warm + rainy).
- Search order per span:
  1. Search flights first. If none then skip to next span.
  2. If flights found, search hotels for the same span.
  3. If both flight and hotel are found and within budget, book them back-to-back in the same turn.
  4. Otherwise move to the next span.
- Span atomicity: never mix flight from one span with hotel from another.
- Stop after one successful booking; otherwise report that nothing fits.`

const statefulSystemTemplate = `You're a vacation planner. Use the tools exactly as defined. Never invent IDs or data. Keep replies short and only call a tool if it makes progress.

- Always check state first.
- weather_checks: prior get_weather_summary calls, one write-once slot per city.
- spans: record of past list_flights / list_hotels attempts per date window.
  - If a span has no attempts, you haven't tried it yet.
  - outcome.status "pending" means the call is in flight; "resolved" with a marker means no options were found. DO NOT retry with the same parameters.
- flight_booking / hotel_booking: confirmed bookings.
- violations: rule deviations you made; correct them.

Repeat guard: before any call, check whether the same search was already attempted. If so, skip it.
Goal: find one valid flight+hotel pair for the same span within budget, then book both in the same turn. Never mix spans. If a span fails, move on.

Current state:
{{ .State }}

{{ .Constraints }}`

func renderTemplate(templ string, data interface{}) (string, error) {
	t, err := template.New("prompt").Funcs(sprig.FuncMap()).Parse(templ)
	if err != nil {
		return "", err
	}
	prompt := bytes.NewBuffer([]byte{})
	if err := t.Execute(prompt, data); err != nil {
		return "", err
	}
	return prompt.String(), nil
}

// renderSystemPrompt injects the serialized tracker state into the stateful
// system prompt.
func renderSystemPrompt(stateText string) (string, error) {
	return renderTemplate(statefulSystemTemplate, struct {
		State       string
		Constraints string
	}{
		State:       stateText,
		Constraints: constraints,
	})
}
