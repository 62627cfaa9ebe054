package llm

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Prompt rendering", func() {
	It("injects the state text verbatim", func() {
		state := `{"weather_checks": {}, "spans": {}}`
		prompt, err := renderSystemPrompt(state)
		Expect(err).ToNot(HaveOccurred())
		Expect(prompt).To(ContainSubstring("Current state:\n" + state))
	})

	It("carries the task constraints after the state", func() {
		prompt, err := renderSystemPrompt("{}")
		Expect(err).ToNot(HaveOccurred())

		Expect(prompt).To(ContainSubstring("2025-10-03 -> 2025-10-10"))
		Expect(prompt).To(ContainSubstring("Span atomicity"))
		Expect(prompt).To(MatchRegexp(`(?s)Current state:.*Constraints:`))
	})

	It("mentions every tool surface the model must respect", func() {
		prompt, err := renderSystemPrompt("{}")
		Expect(err).ToNot(HaveOccurred())

		for _, field := range []string{"weather_checks", "spans", "flight_booking", "hotel_booking", "violations"} {
			Expect(prompt).To(ContainSubstring(field))
		}
	})
})
