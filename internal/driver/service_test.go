package driver_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/campus-parking/internal"
	driverDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/driver"
	"github.com/frahmantamala/campus-parking/internal/driver"
	"github.com/frahmantamala/campus-parking/pkg/logger"
)

// Mock repository for testing
type mockDriverRepository struct {
	drivers     map[string]*driverDatamodel.Driver
	createError error
}

func newMockDriverRepository() *mockDriverRepository {
	return &mockDriverRepository{drivers: make(map[string]*driverDatamodel.Driver)}
}

func (m *mockDriverRepository) GetByID(id string) (*driverDatamodel.Driver, error) {
	return m.drivers[id], nil
}

func (m *mockDriverRepository) GetAll(limit, offset int) ([]*driverDatamodel.Driver, error) {
	var out []*driverDatamodel.Driver
	for _, d := range m.drivers {
		out = append(out, d)
	}
	return out, nil
}

func (m *mockDriverRepository) Create(d *driverDatamodel.Driver) error {
	if m.createError != nil {
		return m.createError
	}
	m.drivers[d.ID] = d
	return nil
}

func (m *mockDriverRepository) Update(d *driverDatamodel.Driver) error {
	m.drivers[d.ID] = d
	return nil
}

func (m *mockDriverRepository) Delete(id string) error {
	delete(m.drivers, id)
	return nil
}

type mockPermitCounter struct {
	counts map[string]int
}

func (m *mockPermitCounter) CountPermitsForDriver(driverID string) (int, error) {
	return m.counts[driverID], nil
}

var _ = Describe("DriverService", func() {
	var (
		service    *driver.Service
		mockRepo   *mockDriverRepository
		permits    *mockPermitCounter
		testLogger = logger.NewTestLogger(os.Stdout)
	)

	BeforeEach(func() {
		mockRepo = newMockDriverRepository()
		permits = &mockPermitCounter{counts: map[string]int{}}
		service = driver.NewService(mockRepo, permits, testLogger)
	})

	Describe("CreateDriver", func() {
		It("should create a driver with a normalized class", func() {
			d, err := service.CreateDriver(driver.CreateDriverDTO{
				ID:    "E1001",
				Name:  "Maria Alvarez",
				Class: "Employee",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(d.Class).To(Equal("employee"))
		})

		It("should reject an unknown class", func() {
			_, err := service.CreateDriver(driver.CreateDriverDTO{
				ID:    "X1",
				Name:  "Nobody",
				Class: "faculty",
			})

			Expect(err).To(MatchError(internal.ErrInvalidDriverClass))
		})

		It("should reject an id with punctuation", func() {
			_, err := service.CreateDriver(driver.CreateDriverDTO{
				ID:    "E-1001",
				Name:  "Maria Alvarez",
				Class: "employee",
			})

			Expect(err).To(HaveOccurred())
		})

		It("should reject a duplicate id", func() {
			_, err := service.CreateDriver(driver.CreateDriverDTO{ID: "E1001", Name: "A", Class: "employee"})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.CreateDriver(driver.CreateDriverDTO{ID: "E1001", Name: "B", Class: "student"})

			Expect(err).To(MatchError(internal.ErrDuplicateDriverID))
		})
	})

	Describe("UpdateDriver", func() {
		BeforeEach(func() {
			_, err := service.CreateDriver(driver.CreateDriverDTO{ID: "S2001", Name: "Jordan Lee", Class: "student"})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should update the name", func() {
			d, err := service.UpdateDriver("S2001", driver.UpdateDriverDTO{Name: "Jordan A. Lee"})

			Expect(err).ToNot(HaveOccurred())
			Expect(d.Name).To(Equal("Jordan A. Lee"))
		})

		It("should reject an invalid class change", func() {
			_, err := service.UpdateDriver("S2001", driver.UpdateDriverDTO{Class: "robot"})

			Expect(err).To(MatchError(internal.ErrInvalidDriverClass))
		})

		It("should report a missing driver", func() {
			_, err := service.UpdateDriver("ghost", driver.UpdateDriverDTO{Name: "X"})

			Expect(err).To(MatchError(internal.ErrDriverNotFound))
		})
	})

	Describe("DeleteDriver", func() {
		BeforeEach(func() {
			_, err := service.CreateDriver(driver.CreateDriverDTO{ID: "E1001", Name: "Maria Alvarez", Class: "employee"})
			Expect(err).ToNot(HaveOccurred())
		})

		It("should delete a driver without permits", func() {
			Expect(service.DeleteDriver("E1001")).To(Succeed())

			_, err := service.GetDriver("E1001")
			Expect(err).To(MatchError(internal.ErrDriverNotFound))
		})

		It("should refuse while permits reference the driver", func() {
			permits.counts["E1001"] = 2

			Expect(service.DeleteDriver("E1001")).To(MatchError(internal.ErrDriverHasPermits))
		})
	})
})
