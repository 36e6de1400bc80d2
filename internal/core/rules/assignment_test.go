package rules_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/campus-parking/internal"
	"github.com/frahmantamala/campus-parking/internal/core/rules"
)

var _ = Describe("EvaluateVehicleAttachment", func() {
	Context("for employees", func() {
		It("should fill the empty row when the only row has no vehicle", func() {
			action, err := rules.EvaluateVehicleAttachment(rules.ClassEmployee, 1, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(action).To(Equal(rules.FillExistingRow))
		})

		It("should create an additional row for the second vehicle", func() {
			action, err := rules.EvaluateVehicleAttachment(rules.ClassEmployee, 1, 1)

			Expect(err).ToNot(HaveOccurred())
			Expect(action).To(Equal(rules.CreateAdditionalRow))
		})

		It("should fill the empty second row when one of two rows has a vehicle", func() {
			action, err := rules.EvaluateVehicleAttachment(rules.ClassEmployee, 2, 1)

			Expect(err).ToNot(HaveOccurred())
			Expect(action).To(Equal(rules.FillExistingRow))
		})

		It("should reject a third vehicle", func() {
			_, err := rules.EvaluateVehicleAttachment(rules.ClassEmployee, 2, 2)

			Expect(err).To(MatchError(internal.ErrVehicleLimitReached))
		})
	})

	Context("for students and visitors", func() {
		It("should fill the empty row for a first vehicle", func() {
			for _, class := range []rules.DriverClass{rules.ClassStudent, rules.ClassVisitor} {
				action, err := rules.EvaluateVehicleAttachment(class, 1, 0)

				Expect(err).ToNot(HaveOccurred())
				Expect(action).To(Equal(rules.FillExistingRow))
			}
		})

		It("should reject a second vehicle", func() {
			for _, class := range []rules.DriverClass{rules.ClassStudent, rules.ClassVisitor} {
				_, err := rules.EvaluateVehicleAttachment(class, 1, 1)

				Expect(err).To(MatchError(internal.ErrVehicleLimitReached))
			}
		})
	})

	It("should report a missing permit when no rows exist", func() {
		_, err := rules.EvaluateVehicleAttachment(rules.ClassEmployee, 0, 0)

		Expect(err).To(MatchError(internal.ErrPermitNotFound))
	})
})
