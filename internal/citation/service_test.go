package citation_test

import (
	"context"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/campus-parking/internal"
	"github.com/frahmantamala/campus-parking/internal/citation"
	citationDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/citation"
	parkingDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/parking"
	permitDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/permit"
	vehicleDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/vehicle"
	"github.com/frahmantamala/campus-parking/internal/core/events"
	"github.com/frahmantamala/campus-parking/internal/core/rules"
	"github.com/frahmantamala/campus-parking/pkg/logger"
)

// Mock repository for testing
type mockCitationRepository struct {
	citations       map[int64]*citationDatamodel.Citation
	insertedVehicle *vehicleDatamodel.Vehicle
	insertError     error
	nextID          int64
}

func newMockCitationRepository() *mockCitationRepository {
	return &mockCitationRepository{
		citations: make(map[int64]*citationDatamodel.Citation),
		nextID:    1,
	}
}

func (m *mockCitationRepository) GetByID(id int64) (*citationDatamodel.Citation, error) {
	return m.citations[id], nil
}

func (m *mockCitationRepository) GetAll(limit, offset int) ([]*citationDatamodel.Citation, error) {
	var out []*citationDatamodel.Citation
	for _, c := range m.citations {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCitationRepository) GetByVehicle(license string) ([]*citationDatamodel.Citation, error) {
	var out []*citationDatamodel.Citation
	for _, c := range m.citations {
		if c.CarLicense == license {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCitationRepository) InsertWithVehicle(c *citationDatamodel.Citation, newVehicle *vehicleDatamodel.Vehicle) error {
	if m.insertError != nil {
		return m.insertError
	}
	m.insertedVehicle = newVehicle
	c.ID = m.nextID
	m.nextID++
	m.citations[c.ID] = c
	return nil
}

func (m *mockCitationRepository) UpdateStatus(id int64, status string) error {
	if c, ok := m.citations[id]; ok {
		c.PaymentStatus = status
	}
	return nil
}

func (m *mockCitationRepository) Delete(id int64) error {
	delete(m.citations, id)
	return nil
}

type mockVehicleGetter struct {
	vehicles map[string]*vehicleDatamodel.Vehicle
}

func (m *mockVehicleGetter) GetByLicense(license string) (*vehicleDatamodel.Vehicle, error) {
	return m.vehicles[license], nil
}

type mockPermitLookup struct {
	byLicense map[string][]*permitDatamodel.Permit
}

func (m *mockPermitLookup) GetByVehicle(license string) ([]*permitDatamodel.Permit, error) {
	return m.byLicense[license], nil
}

type mockZoneLookup struct {
	byZoneID map[string][]*parkingDatamodel.Zone
}

func (m *mockZoneLookup) GetZonesByID(zoneID string) ([]*parkingDatamodel.Zone, error) {
	return m.byZoneID[zoneID], nil
}

type mockPublisher struct {
	published []events.Event
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

var _ = Describe("CitationService", func() {
	var (
		service    *citation.Service
		mockRepo   *mockCitationRepository
		vehicles   *mockVehicleGetter
		permits    *mockPermitLookup
		zones      *mockZoneLookup
		bus        *mockPublisher
		testLogger = logger.NewTestLogger(os.Stdout)
	)

	plate := "ABC-123"

	validDTO := func() citation.CreateCitationDTO {
		return citation.CreateCitationDTO{
			CarLicense:   plate,
			LotName:      "North",
			Category:     "overtime parking",
			Fee:          40,
			CitationDate: "2024-01-01",
			CitationTime: "10:00:01",
		}
	}

	BeforeEach(func() {
		mockRepo = newMockCitationRepository()
		vehicles = &mockVehicleGetter{vehicles: map[string]*vehicleDatamodel.Vehicle{
			plate: {License: plate, Year: 2020},
		}}
		permits = &mockPermitLookup{byLicense: map[string][]*permitDatamodel.Permit{}}
		zones = &mockZoneLookup{byZoneID: map[string][]*parkingDatamodel.Zone{}}
		bus = &mockPublisher{}
		service = citation.NewService(mockRepo, vehicles, permits, zones, bus, testLogger)
	})

	Describe("CreateCitation", func() {
		It("should record a citation against a known vehicle", func() {
			result, err := service.CreateCitation(validDTO())

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Citation.ID).To(BeNumerically(">", 0))
			Expect(result.Citation.PaymentStatus).To(Equal(citation.StatusDue))
			Expect(result.VehicleCreated).To(BeFalse())
			Expect(bus.published).To(HaveLen(1))
			Expect(bus.published[0].EventType()).To(Equal(events.EventTypeCitationCreated))
		})

		It("should flag an expired permit without blocking the citation", func() {
			permits.byLicense[plate] = []*permitDatamodel.Permit{{
				PermitID:       "P-1",
				ZoneID:         "A",
				DriverID:       "E1001",
				ExpirationDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				ExpirationTime: "10:00:00",
			}}
			zones.byZoneID["A"] = []*parkingDatamodel.Zone{{ZoneID: "A", LotName: "North"}}

			result, err := service.CreateCitation(validDTO())

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Violations).To(ConsistOf(
				rules.Violation{PermitID: "P-1", Kind: rules.ViolationExpiredPermit},
			))
		})

		It("should flag a permit whose zone belongs to another lot", func() {
			permits.byLicense[plate] = []*permitDatamodel.Permit{{
				PermitID:       "P-1",
				ZoneID:         "A",
				DriverID:       "E1001",
				ExpirationDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				ExpirationTime: "23:59:59",
			}}
			zones.byZoneID["A"] = []*parkingDatamodel.Zone{{ZoneID: "A", LotName: "South"}}

			result, err := service.CreateCitation(validDTO())

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Violations).To(ConsistOf(
				rules.Violation{PermitID: "P-1", Kind: rules.ViolationWrongLot},
			))
		})

		It("should create the vehicle row for an unknown plate", func() {
			dto := validDTO()
			dto.CarLicense = "NEW-999"
			dto.Vehicle = &citation.VehicleDetailsDTO{
				Model:        "Civic",
				Color:        "blue",
				Manufacturer: "Honda",
				Year:         2021,
			}

			result, err := service.CreateCitation(dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.VehicleCreated).To(BeTrue())
			Expect(result.Violations).To(BeEmpty())
			Expect(mockRepo.insertedVehicle).ToNot(BeNil())
			Expect(mockRepo.insertedVehicle.License).To(Equal("NEW-999"))
		})

		It("should require vehicle details for an unknown plate", func() {
			dto := validDTO()
			dto.CarLicense = "NEW-999"

			_, err := service.CreateCitation(dto)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should reject a negative fee with the fee reason code", func() {
			dto := validDTO()
			dto.Fee = -5

			_, err := service.CreateCitation(dto)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidFee))
		})

		It("should reject a malformed citation time", func() {
			dto := validDTO()
			dto.CitationTime = "10:00"

			_, err := service.CreateCitation(dto)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("payment transitions", func() {
		var id int64

		BeforeEach(func() {
			result, err := service.CreateCitation(validDTO())
			Expect(err).ToNot(HaveOccurred())
			id = result.Citation.ID
		})

		It("should move DUE to PAID", func() {
			c, err := service.PayCitation(id)

			Expect(err).ToNot(HaveOccurred())
			Expect(c.PaymentStatus).To(Equal(citation.StatusPaid))
		})

		It("should move DUE to APPEALED", func() {
			c, err := service.AppealCitation(id)

			Expect(err).ToNot(HaveOccurred())
			Expect(c.PaymentStatus).To(Equal(citation.StatusAppealed))
		})

		It("should refuse to pay a citation that is already PAID", func() {
			_, err := service.PayCitation(id)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.AppealCitation(id)

			Expect(err).To(MatchError(internal.ErrInvalidCitationStatus))
		})

		It("should refuse to appeal a citation that is already APPEALED", func() {
			_, err := service.AppealCitation(id)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.PayCitation(id)

			Expect(err).To(MatchError(internal.ErrInvalidCitationStatus))
		})

		It("should report a missing citation", func() {
			_, err := service.PayCitation(99999)

			Expect(err).To(MatchError(internal.ErrCitationNotFound))
		})
	})

	Describe("DeleteCitation", func() {
		It("should delete an existing citation", func() {
			result, err := service.CreateCitation(validDTO())
			Expect(err).ToNot(HaveOccurred())

			Expect(service.DeleteCitation(result.Citation.ID)).To(Succeed())

			_, err = service.GetCitation(result.Citation.ID)
			Expect(err).To(MatchError(internal.ErrCitationNotFound))
		})
	})
})
