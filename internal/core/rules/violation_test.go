package rules_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/campus-parking/internal/core/rules"
)

var _ = Describe("DetectViolations", func() {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	permit := rules.CitedPermit{
		PermitID:       "P-100",
		ZoneID:         "A",
		ExpirationDate: date(2024, 1, 1),
		ExpirationTime: "10:00:00",
	}
	zoneA := rules.ZoneLot{ZoneID: "A", LotName: "North"}

	Describe("expired permit check", func() {
		It("should flag a citation one second past expiry on the boundary date", func() {
			violations := rules.DetectViolations(
				rules.CitationFacts{LotName: "North", Date: date(2024, 1, 1), Time: "10:00:01"},
				[]rules.CitedPermit{permit},
				[]rules.ZoneLot{zoneA},
			)

			Expect(violations).To(ConsistOf(
				rules.Violation{PermitID: "P-100", Kind: rules.ViolationExpiredPermit},
			))
		})

		It("should not flag a citation at exactly the expiration time", func() {
			violations := rules.DetectViolations(
				rules.CitationFacts{LotName: "North", Date: date(2024, 1, 1), Time: "10:00:00"},
				[]rules.CitedPermit{permit},
				[]rules.ZoneLot{zoneA},
			)

			Expect(violations).To(BeEmpty())
		})

		It("should not flag a citation the day before expiry regardless of time", func() {
			violations := rules.DetectViolations(
				rules.CitationFacts{LotName: "North", Date: date(2023, 12, 31), Time: "23:59:59"},
				[]rules.CitedPermit{permit},
				[]rules.ZoneLot{zoneA},
			)

			Expect(violations).To(BeEmpty())
		})

		It("should flag a citation the day after expiry regardless of time", func() {
			violations := rules.DetectViolations(
				rules.CitationFacts{LotName: "North", Date: date(2024, 1, 2), Time: "00:00:00"},
				[]rules.CitedPermit{permit},
				[]rules.ZoneLot{zoneA},
			)

			Expect(violations).To(ConsistOf(
				rules.Violation{PermitID: "P-100", Kind: rules.ViolationExpiredPermit},
			))
		})
	})

	Describe("wrong lot check", func() {
		It("should flag a citation issued in a lot the zone does not belong to", func() {
			violations := rules.DetectViolations(
				rules.CitationFacts{LotName: "South", Date: date(2023, 6, 1), Time: "09:00:00"},
				[]rules.CitedPermit{permit},
				[]rules.ZoneLot{zoneA},
			)

			Expect(violations).To(ConsistOf(
				rules.Violation{PermitID: "P-100", Kind: rules.ViolationWrongLot},
			))
		})

		It("should not flag a permit when its zone matches the citation lot", func() {
			violations := rules.DetectViolations(
				rules.CitationFacts{LotName: "North", Date: date(2023, 6, 1), Time: "09:00:00"},
				[]rules.CitedPermit{permit},
				[]rules.ZoneLot{zoneA},
			)

			Expect(violations).To(BeEmpty())
		})

		It("should ignore zone rows belonging to other zone IDs", func() {
			violations := rules.DetectViolations(
				rules.CitationFacts{LotName: "North", Date: date(2023, 6, 1), Time: "09:00:00"},
				[]rules.CitedPermit{permit},
				[]rules.ZoneLot{{ZoneID: "B", LotName: "South"}, zoneA},
			)

			Expect(violations).To(BeEmpty())
		})

		It("should flag a permit at most once for a wrong lot", func() {
			violations := rules.DetectViolations(
				rules.CitationFacts{LotName: "East", Date: date(2023, 6, 1), Time: "09:00:00"},
				[]rules.CitedPermit{permit},
				[]rules.ZoneLot{
					{ZoneID: "A", LotName: "North"},
					{ZoneID: "A", LotName: "South"},
				},
			)

			Expect(violations).To(HaveLen(1))
			Expect(violations[0].Kind).To(Equal(rules.ViolationWrongLot))
		})
	})

	It("should raise both flags independently for one permit", func() {
		violations := rules.DetectViolations(
			rules.CitationFacts{LotName: "South", Date: date(2024, 3, 1), Time: "12:00:00"},
			[]rules.CitedPermit{permit},
			[]rules.ZoneLot{zoneA},
		)

		Expect(violations).To(ConsistOf(
			rules.Violation{PermitID: "P-100", Kind: rules.ViolationExpiredPermit},
			rules.Violation{PermitID: "P-100", Kind: rules.ViolationWrongLot},
		))
	})

	It("should evaluate every permit without short-circuiting", func() {
		second := rules.CitedPermit{
			PermitID:       "P-200",
			ZoneID:         "B",
			ExpirationDate: date(2025, 1, 1),
			ExpirationTime: "23:59:59",
		}

		violations := rules.DetectViolations(
			rules.CitationFacts{LotName: "South", Date: date(2024, 3, 1), Time: "12:00:00"},
			[]rules.CitedPermit{permit, second},
			[]rules.ZoneLot{zoneA, {ZoneID: "B", LotName: "South"}},
		)

		Expect(violations).To(ConsistOf(
			rules.Violation{PermitID: "P-100", Kind: rules.ViolationExpiredPermit},
			rules.Violation{PermitID: "P-100", Kind: rules.ViolationWrongLot},
		))
	})

	It("should return nothing when the vehicle holds no permits", func() {
		violations := rules.DetectViolations(
			rules.CitationFacts{LotName: "North", Date: date(2024, 1, 1), Time: "10:00:00"},
			nil,
			nil,
		)

		Expect(violations).To(BeEmpty())
	})
})
