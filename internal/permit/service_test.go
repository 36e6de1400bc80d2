package permit_test

import (
	"context"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/campus-parking/internal"
	driverDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/driver"
	permitDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/permit"
	vehicleDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/vehicle"
	"github.com/frahmantamala/campus-parking/internal/core/events"
	"github.com/frahmantamala/campus-parking/internal/permit"
	"github.com/frahmantamala/campus-parking/pkg/logger"
)

// Mock repository for testing
type mockPermitRepository struct {
	rows        []*permitDatamodel.Permit
	getError    error
	insertError error
	nextID      int64
}

func newMockPermitRepository() *mockPermitRepository {
	return &mockPermitRepository{nextID: 1}
}

func (m *mockPermitRepository) GetRows(permitID string) ([]*permitDatamodel.Permit, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	var out []*permitDatamodel.Permit
	for _, row := range m.rows {
		if row.PermitID == permitID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *mockPermitRepository) GetByDriver(driverID string) ([]*permitDatamodel.Permit, error) {
	var out []*permitDatamodel.Permit
	for _, row := range m.rows {
		if row.DriverID == driverID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *mockPermitRepository) GetByVehicle(license string) ([]*permitDatamodel.Permit, error) {
	var out []*permitDatamodel.Permit
	for _, row := range m.rows {
		if row.CarLicense != nil && *row.CarLicense == license {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *mockPermitRepository) GetAll(limit, offset int) ([]*permitDatamodel.Permit, error) {
	return m.rows, nil
}

func (m *mockPermitRepository) CountPermitsForDriver(driverID string) (int, error) {
	seen := make(map[string]bool)
	for _, row := range m.rows {
		if row.DriverID == driverID {
			seen[row.PermitID] = true
		}
	}
	return len(seen), nil
}

func (m *mockPermitRepository) CountVehiclesOnPermit(permitID string) (int, error) {
	count := 0
	for _, row := range m.rows {
		if row.PermitID == permitID && row.CarLicense != nil && *row.CarLicense != "" {
			count++
		}
	}
	return count, nil
}

func (m *mockPermitRepository) CountPermitsForVehicle(license string) (int, error) {
	count := 0
	for _, row := range m.rows {
		if row.CarLicense != nil && *row.CarLicense == license {
			count++
		}
	}
	return count, nil
}

func (m *mockPermitRepository) Insert(row *permitDatamodel.Permit) error {
	if m.insertError != nil {
		return m.insertError
	}
	row.ID = m.nextID
	m.nextID++
	m.rows = append(m.rows, row)
	return nil
}

func (m *mockPermitRepository) UpdateRow(row *permitDatamodel.Permit) error {
	for i, existing := range m.rows {
		if existing.ID == row.ID {
			m.rows[i] = row
			return nil
		}
	}
	return nil
}

func (m *mockPermitRepository) UpdateShared(permitID string, fields map[string]interface{}) error {
	for _, row := range m.rows {
		if row.PermitID != permitID {
			continue
		}
		if v, ok := fields["permit_type"].(string); ok {
			row.PermitType = v
		}
		if v, ok := fields["zone_id"].(string); ok {
			row.ZoneID = v
		}
		if v, ok := fields["space_type"].(string); ok {
			row.SpaceType = v
		}
		if v, ok := fields["start_date"].(time.Time); ok {
			row.StartDate = v
		}
		if v, ok := fields["expiration_date"].(time.Time); ok {
			row.ExpirationDate = v
		}
		if v, ok := fields["expiration_time"].(string); ok {
			row.ExpirationTime = v
		}
	}
	return nil
}

func (m *mockPermitRepository) DeleteRows(permitID string) error {
	var kept []*permitDatamodel.Permit
	for _, row := range m.rows {
		if row.PermitID != permitID {
			kept = append(kept, row)
		}
	}
	m.rows = kept
	return nil
}

func (m *mockPermitRepository) GetExpiringBetween(from, to time.Time) ([]*permitDatamodel.Permit, error) {
	var out []*permitDatamodel.Permit
	for _, row := range m.rows {
		if !row.ExpirationDate.Before(from) && row.ExpirationDate.Before(to) {
			out = append(out, row)
		}
	}
	return out, nil
}

type mockDriverGetter struct {
	drivers map[string]*driverDatamodel.Driver
}

func (m *mockDriverGetter) GetByID(id string) (*driverDatamodel.Driver, error) {
	return m.drivers[id], nil
}

type mockVehicleGetter struct {
	vehicles map[string]*vehicleDatamodel.Vehicle
}

func (m *mockVehicleGetter) GetByLicense(license string) (*vehicleDatamodel.Vehicle, error) {
	return m.vehicles[license], nil
}

type mockPublisher struct {
	published []events.Event
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

var _ = Describe("PermitService", func() {
	var (
		service     *permit.Service
		mockRepo    *mockPermitRepository
		drivers     *mockDriverGetter
		vehicles    *mockVehicleGetter
		bus         *mockPublisher
		testLogger  = logger.NewTestLogger(os.Stdout)
		employeeID  = "E1001"
		studentID   = "S2001"
		knownPlates = []string{"ABC-123", "XYZ-789"}
	)

	validDTO := func(permitID, driverID string) permit.CreatePermitDTO {
		zone := "A"
		if driverID == studentID {
			zone = "AS"
		}
		return permit.CreatePermitDTO{
			PermitID:       permitID,
			DriverID:       driverID,
			PermitType:     "commuter",
			ZoneID:         zone,
			SpaceType:      "regular",
			StartDate:      "2024-01-01",
			ExpirationDate: "2024-12-31",
			ExpirationTime: "23:59:59",
		}
	}

	BeforeEach(func() {
		mockRepo = newMockPermitRepository()
		drivers = &mockDriverGetter{drivers: map[string]*driverDatamodel.Driver{
			employeeID: {ID: employeeID, Name: "Maria Alvarez", Class: "employee"},
			studentID:  {ID: studentID, Name: "Jordan Lee", Class: "student"},
		}}
		vehicles = &mockVehicleGetter{vehicles: map[string]*vehicleDatamodel.Vehicle{}}
		for _, plate := range knownPlates {
			vehicles.vehicles[plate] = &vehicleDatamodel.Vehicle{License: plate, Year: 2020}
		}
		bus = &mockPublisher{}
		service = permit.NewService(mockRepo, drivers, vehicles, bus, testLogger)
	})

	Describe("CreatePermit", func() {
		It("should issue a valid permit and publish an event", func() {
			result, err := service.CreatePermit(validDTO("P-1", employeeID))

			Expect(err).ToNot(HaveOccurred())
			Expect(result.PermitID).To(Equal("P-1"))
			Expect(result.ZoneID).To(Equal("A"))
			Expect(bus.published).To(HaveLen(1))
			Expect(bus.published[0].EventType()).To(Equal(events.EventTypePermitIssued))
		})

		It("should reject a duplicate permit ID before any rule runs", func() {
			_, err := service.CreatePermit(validDTO("P-1", employeeID))
			Expect(err).ToNot(HaveOccurred())

			dto := validDTO("P-1", studentID)
			dto.ZoneID = "Z" // would also fail zone check, duplicate wins
			_, err = service.CreatePermit(dto)

			Expect(err).To(MatchError(internal.ErrDuplicatePermitID))
		})

		It("should reject an unknown driver", func() {
			_, err := service.CreatePermit(validDTO("P-1", "ghost"))

			Expect(err).To(MatchError(internal.ErrDriverNotFound))
		})

		It("should count held permits against the quota", func() {
			for i, id := range []string{"P-1", "P-2"} {
				dto := validDTO(id, studentID)
				if i == 1 {
					dto.PermitType = "special event"
				}
				_, err := service.CreatePermit(dto)
				Expect(err).ToNot(HaveOccurred())
			}

			_, err := service.CreatePermit(validDTO("P-3", studentID))

			Expect(err).To(MatchError(internal.ErrQuotaExceeded))
		})

		It("should restrict a student's second permit to special types", func() {
			_, err := service.CreatePermit(validDTO("P-1", studentID))
			Expect(err).ToNot(HaveOccurred())

			_, err = service.CreatePermit(validDTO("P-2", studentID))

			Expect(err).To(MatchError(internal.ErrRestrictedSlotPermitType))
		})

		It("should resolve and normalize the optional vehicle", func() {
			dto := validDTO("P-1", employeeID)
			plate := "abc-123"
			dto.CarLicense = &plate

			result, err := service.CreatePermit(dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.CarLicense).ToNot(BeNil())
			Expect(*result.CarLicense).To(Equal("ABC-123"))
		})

		It("should reject an unregistered vehicle", func() {
			dto := validDTO("P-1", employeeID)
			plate := "NOPE-1"
			dto.CarLicense = &plate

			_, err := service.CreatePermit(dto)

			Expect(err).To(MatchError(internal.ErrVehicleNotFound))
		})
	})

	Describe("AssignToDriver", func() {
		It("should run the same checks as direct creation", func() {
			result, err := service.AssignToDriver(employeeID, validDTO("P-1", ""))

			Expect(err).ToNot(HaveOccurred())
			Expect(result.DriverID).To(Equal(employeeID))
		})
	})

	Describe("UpdatePermit", func() {
		It("should re-evaluate the merged state without double-counting the permit", func() {
			_, err := service.CreatePermit(validDTO("P-1", employeeID))
			Expect(err).ToNot(HaveOccurred())

			rows, err := service.UpdatePermit("P-1", permit.UpdatePermitDTO{ZoneID: "B"})

			Expect(err).ToNot(HaveOccurred())
			Expect(rows[0].ZoneID).To(Equal("B"))
		})

		It("should reject an update that breaks a rule", func() {
			_, err := service.CreatePermit(validDTO("P-1", employeeID))
			Expect(err).ToNot(HaveOccurred())

			_, err = service.UpdatePermit("P-1", permit.UpdatePermitDTO{ZoneID: "AS"})

			Expect(err).To(MatchError(internal.ErrInvalidZoneForClass))
		})

		It("should report a missing permit", func() {
			_, err := service.UpdatePermit("missing", permit.UpdatePermitDTO{ZoneID: "B"})

			Expect(err).To(MatchError(internal.ErrPermitNotFound))
		})
	})

	Describe("AttachVehicle", func() {
		It("should fill the empty vehicle slot on the existing row", func() {
			_, err := service.CreatePermit(validDTO("P-1", employeeID))
			Expect(err).ToNot(HaveOccurred())

			rows, err := service.AttachVehicle("P-1", permit.AttachVehicleDTO{CarLicense: "ABC-123"})

			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(permit.Vehicles(rows)).To(ConsistOf("ABC-123"))
		})

		It("should create a second row for an employee's second vehicle", func() {
			dto := validDTO("P-1", employeeID)
			plate := "ABC-123"
			dto.CarLicense = &plate
			_, err := service.CreatePermit(dto)
			Expect(err).ToNot(HaveOccurred())

			rows, err := service.AttachVehicle("P-1", permit.AttachVehicleDTO{CarLicense: "XYZ-789"})

			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(permit.Vehicles(rows)).To(ConsistOf("ABC-123", "XYZ-789"))
		})

		It("should be a no-op when the plate is already attached", func() {
			dto := validDTO("P-1", employeeID)
			plate := "ABC-123"
			dto.CarLicense = &plate
			_, err := service.CreatePermit(dto)
			Expect(err).ToNot(HaveOccurred())

			rows, err := service.AttachVehicle("P-1", permit.AttachVehicleDTO{CarLicense: "abc-123"})

			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(1))
		})

		It("should reject a second vehicle on a student permit", func() {
			dto := validDTO("P-1", studentID)
			plate := "ABC-123"
			dto.CarLicense = &plate
			_, err := service.CreatePermit(dto)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.AttachVehicle("P-1", permit.AttachVehicleDTO{CarLicense: "XYZ-789"})

			Expect(err).To(MatchError(internal.ErrVehicleLimitReached))
		})

		It("should reject a third vehicle on an employee permit", func() {
			dto := validDTO("P-1", employeeID)
			plate := "ABC-123"
			dto.CarLicense = &plate
			_, err := service.CreatePermit(dto)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.AttachVehicle("P-1", permit.AttachVehicleDTO{CarLicense: "XYZ-789"})
			Expect(err).ToNot(HaveOccurred())

			vehicles.vehicles["THIRD-1"] = &vehicleDatamodel.Vehicle{License: "THIRD-1", Year: 2018}
			_, err = service.AttachVehicle("P-1", permit.AttachVehicleDTO{CarLicense: "THIRD-1"})

			Expect(err).To(MatchError(internal.ErrVehicleLimitReached))
		})
	})

	Describe("DetachVehicle", func() {
		It("should null the vehicle slot and keep the row", func() {
			dto := validDTO("P-1", employeeID)
			plate := "ABC-123"
			dto.CarLicense = &plate
			_, err := service.CreatePermit(dto)
			Expect(err).ToNot(HaveOccurred())

			rows, err := service.DetachVehicle("P-1", "ABC-123")

			Expect(err).ToNot(HaveOccurred())
			Expect(rows).To(HaveLen(1))
			Expect(permit.Vehicles(rows)).To(BeEmpty())
		})

		It("should reject a plate not attached to the permit", func() {
			_, err := service.CreatePermit(validDTO("P-1", employeeID))
			Expect(err).ToNot(HaveOccurred())

			_, err = service.DetachVehicle("P-1", "XYZ-789")

			Expect(err).To(MatchError(internal.ErrVehicleNotFound))
		})
	})

	Describe("DeletePermit", func() {
		It("should delete every row sharing the permit ID", func() {
			dto := validDTO("P-1", employeeID)
			plate := "ABC-123"
			dto.CarLicense = &plate
			_, err := service.CreatePermit(dto)
			Expect(err).ToNot(HaveOccurred())
			_, err = service.AttachVehicle("P-1", permit.AttachVehicleDTO{CarLicense: "XYZ-789"})
			Expect(err).ToNot(HaveOccurred())

			Expect(service.DeletePermit("P-1")).To(Succeed())

			_, err = service.GetPermit("P-1")
			Expect(err).To(MatchError(internal.ErrPermitNotFound))
		})

		It("should report a missing permit", func() {
			Expect(service.DeletePermit("missing")).To(MatchError(internal.ErrPermitNotFound))
		})
	})
})
