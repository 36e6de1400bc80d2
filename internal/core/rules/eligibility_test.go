package rules_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/campus-parking/internal"
	"github.com/frahmantamala/campus-parking/internal/core/rules"
)

func baseRequest(class rules.DriverClass, held int) rules.EligibilityRequest {
	zone := map[rules.DriverClass]string{
		rules.ClassEmployee: "A",
		rules.ClassStudent:  "AS",
		rules.ClassVisitor:  "V",
	}[class]

	return rules.EligibilityRequest{
		Class:          class,
		HeldPermits:    held,
		PermitType:     rules.PermitTypeCommuter,
		ZoneID:         zone,
		SpaceType:      rules.SpaceTypeRegular,
		StartDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpirationDate: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		ExpirationTime: "23:59:59",
	}
}

var _ = Describe("EvaluateEligibility", func() {
	Describe("permit quota", func() {
		It("should allow an employee holding fewer than two permits a commuter permit", func() {
			result, err := rules.EvaluateEligibility(baseRequest(rules.ClassEmployee, 1))

			Expect(err).ToNot(HaveOccurred())
			Expect(result.PermitType).To(Equal(rules.PermitTypeCommuter))
			Expect(result.Restricted).To(BeFalse())
		})

		It("should reject an employee already holding three permits", func() {
			_, err := rules.EvaluateEligibility(baseRequest(rules.ClassEmployee, 3))

			Expect(err).To(MatchError(internal.ErrQuotaExceeded))
		})

		It("should reject a student already holding two permits", func() {
			_, err := rules.EvaluateEligibility(baseRequest(rules.ClassStudent, 2))

			Expect(err).To(MatchError(internal.ErrQuotaExceeded))
		})

		It("should reject a visitor already holding one permit", func() {
			_, err := rules.EvaluateEligibility(baseRequest(rules.ClassVisitor, 1))

			Expect(err).To(MatchError(internal.ErrQuotaExceeded))
		})

		It("should check the quota before anything else", func() {
			req := baseRequest(rules.ClassStudent, 2)
			req.PermitType = "bogus"
			req.ZoneID = "A"

			_, err := rules.EvaluateEligibility(req)

			Expect(err).To(MatchError(internal.ErrQuotaExceeded))
		})
	})

	Describe("restricted last slot", func() {
		It("should reject a commuter permit in an employee's third slot", func() {
			_, err := rules.EvaluateEligibility(baseRequest(rules.ClassEmployee, 2))

			Expect(err).To(MatchError(internal.ErrRestrictedSlotPermitType))
		})

		It("should allow a special event permit in an employee's third slot", func() {
			req := baseRequest(rules.ClassEmployee, 2)
			req.PermitType = rules.PermitTypeSpecialEvent

			result, err := rules.EvaluateEligibility(req)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Restricted).To(BeTrue())
		})

		It("should allow a park & ride permit in a student's second slot", func() {
			req := baseRequest(rules.ClassStudent, 1)
			req.PermitType = rules.PermitTypeParkAndRide

			result, err := rules.EvaluateEligibility(req)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Restricted).To(BeTrue())
		})

		It("should reject a residential permit in a student's second slot", func() {
			req := baseRequest(rules.ClassStudent, 1)
			req.PermitType = rules.PermitTypeResidential

			_, err := rules.EvaluateEligibility(req)

			Expect(err).To(MatchError(internal.ErrRestrictedSlotPermitType))
		})

		It("should never restrict a visitor's only slot", func() {
			result, err := rules.EvaluateEligibility(baseRequest(rules.ClassVisitor, 0))

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Restricted).To(BeFalse())
		})
	})

	Describe("permit type", func() {
		It("should reject an unknown permit type", func() {
			req := baseRequest(rules.ClassEmployee, 0)
			req.PermitType = "weekend"

			_, err := rules.EvaluateEligibility(req)

			Expect(err).To(MatchError(internal.ErrInvalidPermitType))
		})

		It("should normalize case and whitespace", func() {
			req := baseRequest(rules.ClassEmployee, 0)
			req.PermitType = "  Peak Hours "

			result, err := rules.EvaluateEligibility(req)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.PermitType).To(Equal(rules.PermitTypePeakHours))
		})
	})

	Describe("zone by class", func() {
		It("should reject a student zone for an employee", func() {
			req := baseRequest(rules.ClassEmployee, 0)
			req.ZoneID = "AS"

			_, err := rules.EvaluateEligibility(req)

			Expect(err).To(MatchError(internal.ErrInvalidZoneForClass))
		})

		It("should reject the visitor zone for a student", func() {
			req := baseRequest(rules.ClassStudent, 0)
			req.ZoneID = "V"

			_, err := rules.EvaluateEligibility(req)

			Expect(err).To(MatchError(internal.ErrInvalidZoneForClass))
		})

		It("should reject a zone outside the enumerated set", func() {
			req := baseRequest(rules.ClassEmployee, 0)
			req.ZoneID = "Z"

			_, err := rules.EvaluateEligibility(req)

			Expect(err).To(MatchError(internal.ErrInvalidZoneForClass))
		})

		It("should accept every zone of the matching class", func() {
			cases := map[rules.DriverClass][]string{
				rules.ClassEmployee: {"A", "B", "C", "D"},
				rules.ClassStudent:  {"AS", "BS", "CS", "DS"},
				rules.ClassVisitor:  {"V"},
			}

			for class, zones := range cases {
				for _, zone := range zones {
					req := baseRequest(class, 0)
					req.ZoneID = zone

					result, err := rules.EvaluateEligibility(req)

					Expect(err).ToNot(HaveOccurred(), "class %s zone %s", class, zone)
					Expect(result.ZoneID).To(Equal(zone))
				}
			}
		})

		It("should uppercase lowercase zone input", func() {
			req := baseRequest(rules.ClassEmployee, 0)
			req.ZoneID = "b"

			result, err := rules.EvaluateEligibility(req)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ZoneID).To(Equal("B"))
		})
	})

	Describe("space type", func() {
		It("should reject an unknown space type", func() {
			req := baseRequest(rules.ClassEmployee, 0)
			req.SpaceType = "motorcycle"

			_, err := rules.EvaluateEligibility(req)

			Expect(err).To(MatchError(internal.ErrInvalidSpaceType))
		})

		It("should accept every recognized space type", func() {
			for _, spaceType := range []string{
				rules.SpaceTypeElectric,
				rules.SpaceTypeHandicap,
				rules.SpaceTypeCompactCar,
				rules.SpaceTypeRegular,
			} {
				req := baseRequest(rules.ClassEmployee, 0)
				req.SpaceType = spaceType

				result, err := rules.EvaluateEligibility(req)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.SpaceType).To(Equal(spaceType))
			}
		})
	})

	Describe("date range", func() {
		It("should reject an expiration on the start date", func() {
			req := baseRequest(rules.ClassEmployee, 0)
			req.ExpirationDate = req.StartDate

			_, err := rules.EvaluateEligibility(req)

			Expect(err).To(MatchError(internal.ErrInvalidDateRange))
		})

		It("should reject an expiration before the start date", func() {
			req := baseRequest(rules.ClassEmployee, 0)
			req.ExpirationDate = req.StartDate.AddDate(0, 0, -1)

			_, err := rules.EvaluateEligibility(req)

			Expect(err).To(MatchError(internal.ErrInvalidDateRange))
		})

		It("should accept an expiration one day after the start", func() {
			req := baseRequest(rules.ClassEmployee, 0)
			req.ExpirationDate = req.StartDate.AddDate(0, 0, 1)

			_, err := rules.EvaluateEligibility(req)

			Expect(err).ToNot(HaveOccurred())
		})

		It("should reject a malformed expiration time", func() {
			req := baseRequest(rules.ClassEmployee, 0)
			req.ExpirationTime = "25:00:00"

			_, err := rules.EvaluateEligibility(req)

			Expect(err).To(MatchError(internal.ErrInvalidDateRange))
		})
	})
})
