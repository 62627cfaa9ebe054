// Package span enumerates the fixed departure/return date windows the trip
// task considers. The set is closed and known at process start; everything
// keyed by dates elsewhere in the tracker goes through this registry.
package span

// Span identifies one of the candidate date windows.
type Span string

const (
	Span0108 Span = "01_08"
	Span0209 Span = "02_09"
	Span0310 Span = "03_10"
)

// Window holds the inclusive departure and return dates of a span, as
// ISO YYYY-MM-DD strings.
type Window struct {
	Departure string `json:"departure"`
	Return    string `json:"return"`
}

var windows = map[Span]Window{
	Span0108: {Departure: "2025-10-01", Return: "2025-10-08"},
	Span0209: {Departure: "2025-10-02", Return: "2025-10-09"},
	Span0310: {Departure: "2025-10-03", Return: "2025-10-10"},
}

// All returns every valid span in chronological order.
func All() []Span {
	return []Span{Span0108, Span0209, Span0310}
}

// Of looks up the span whose bounds match the given dates exactly.
func Of(departure, ret string) (Span, bool) {
	for _, s := range All() {
		w := windows[s]
		if w.Departure == departure && w.Return == ret {
			return s, true
		}
	}
	return "", false
}

// IsValid reports whether s is a member of the registry.
func IsValid(s Span) bool {
	_, ok := windows[s]
	return ok
}

// Bounds returns the window of a valid span. The zero Window is returned
// for unknown spans.
func (s Span) Bounds() Window {
	return windows[s]
}
