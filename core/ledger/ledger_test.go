package ledger_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tripbench/tripbench/core/ledger"
	"github.com/tripbench/tripbench/core/span"
	"github.com/tripbench/tripbench/core/types"
)

var _ = Describe("Intent ledger", func() {
	var l *ledger.Ledger

	BeforeEach(func() {
		l = ledger.New()
	})

	Context("recording intent", func() {
		It("reserves a pending attempt", func() {
			rec, created, err := l.RecordIntent(ledger.CategoryFlight, span.Span0108, "BKK", "2025-10-01", "2025-10-08", "call-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(created).To(BeTrue())
			Expect(rec.Outcome.Status).To(Equal(ledger.OutcomePending))
			Expect(rec.Outcome.Option).To(BeNil())
			Expect(rec.CallID).To(Equal("call-1"))
		})

		It("returns the existing record for an identical request", func() {
			first, _, err := l.RecordIntent(ledger.CategoryFlight, span.Span0108, "BKK", "2025-10-01", "2025-10-08", "call-1")
			Expect(err).ToNot(HaveOccurred())

			second, created, err := l.RecordIntent(ledger.CategoryFlight, span.Span0108, "BKK", "2025-10-01", "2025-10-08", "call-2")
			Expect(err).ToNot(HaveOccurred())
			Expect(created).To(BeFalse())
			Expect(second).To(BeIdenticalTo(first))
			Expect(second.CallID).To(Equal("call-1"))
		})

		It("keeps categories and spans independent", func() {
			_, created, err := l.RecordIntent(ledger.CategoryFlight, span.Span0108, "BKK", "2025-10-01", "2025-10-08", "call-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(created).To(BeTrue())

			_, created, err = l.RecordIntent(ledger.CategoryHotel, span.Span0108, "BKK", "2025-10-01", "2025-10-08", "call-2")
			Expect(err).ToNot(HaveOccurred())
			Expect(created).To(BeTrue())

			_, created, err = l.RecordIntent(ledger.CategoryFlight, span.Span0209, "BKK", "2025-10-02", "2025-10-09", "call-3")
			Expect(err).ToNot(HaveOccurred())
			Expect(created).To(BeTrue())
		})

		It("rejects dates mixing two spans regardless of category", func() {
			_, _, err := l.RecordIntent(ledger.CategoryFlight, span.Span0108, "BKK", "2025-10-01", "2025-10-09", "call-1")
			Expect(err).To(MatchError(ledger.ErrSpanMismatch))

			_, _, err = l.RecordIntent(ledger.CategoryHotel, span.Span0310, "BKK", "2025-10-02", "2025-10-10", "call-2")
			Expect(err).To(MatchError(ledger.ErrSpanMismatch))
		})

		It("rejects unknown spans", func() {
			_, _, err := l.RecordIntent(ledger.CategoryFlight, span.Span("04_11"), "BKK", "2025-10-04", "2025-10-11", "call-1")
			Expect(err).To(MatchError(ledger.ErrSpanMismatch))
		})
	})

	Context("resolving results", func() {
		BeforeEach(func() {
			_, _, err := l.RecordIntent(ledger.CategoryFlight, span.Span0108, "BKK", "2025-10-01", "2025-10-08", "call-1")
			Expect(err).ToNot(HaveOccurred())
		})

		It("sets the outcome exactly once", func() {
			outcome := ledger.Outcome{Option: &types.Candidate{ID: "FL-1", Price: 900}}
			Expect(l.Resolve("call-1", outcome)).To(Succeed())

			rec := l.Find(ledger.CategoryFlight, span.Span0108, "BKK")
			Expect(rec.Outcome.Status).To(Equal(ledger.OutcomeResolved))
			Expect(rec.Outcome.Option.ID).To(Equal("FL-1"))
			Expect(rec.Resolved()).To(BeTrue())
		})

		It("never overwrites a resolved outcome", func() {
			Expect(l.Resolve("call-1", ledger.Outcome{Option: &types.Candidate{ID: "FL-1"}})).To(Succeed())

			err := l.Resolve("call-1", ledger.Outcome{Option: &types.Candidate{ID: "FL-2"}})
			Expect(err).To(MatchError(ledger.ErrAlreadyResolved))
			Expect(l.Find(ledger.CategoryFlight, span.Span0108, "BKK").Outcome.Option.ID).To(Equal("FL-1"))
		})

		It("fails for unknown call ids", func() {
			Expect(l.Resolve("no-such-call", ledger.Outcome{})).To(MatchError(ledger.ErrNotFound))
		})

		It("treats an explicit empty marker as a terminal value", func() {
			Expect(l.Resolve("call-1", ledger.Outcome{Marker: "No flights found"})).To(Succeed())

			rec := l.Find(ledger.CategoryFlight, span.Span0108, "BKK")
			Expect(rec.Outcome.Status).To(Equal(ledger.OutcomeResolved))
			Expect(rec.Resolved()).To(BeFalse())
			Expect(rec.Outcome.Marker).To(Equal("No flights found"))
		})
	})

	Context("finding attempts", func() {
		It("returns nil for absent attempts", func() {
			Expect(l.Find(ledger.CategoryHotel, span.Span0209, "DXB")).To(BeNil())
		})
	})
})
