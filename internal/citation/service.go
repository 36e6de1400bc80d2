package citation

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/campus-parking/internal"
	citationDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/citation"
	parkingDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/parking"
	permitDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/permit"
	vehicleDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/vehicle"
	"github.com/frahmantamala/campus-parking/internal/core/events"
	"github.com/frahmantamala/campus-parking/internal/core/rules"
	"github.com/frahmantamala/campus-parking/internal/vehicle"
)

type RepositoryAPI interface {
	GetByID(id int64) (*citationDatamodel.Citation, error)
	GetAll(limit, offset int) ([]*citationDatamodel.Citation, error)
	GetByVehicle(license string) ([]*citationDatamodel.Citation, error)
	// InsertWithVehicle writes the citation and, when newVehicle is
	// non-nil, the vehicle row in one transaction.
	InsertWithVehicle(c *citationDatamodel.Citation, newVehicle *vehicleDatamodel.Vehicle) error
	UpdateStatus(id int64, status string) error
	Delete(id int64) error
}

type VehicleGetter interface {
	GetByLicense(license string) (*vehicleDatamodel.Vehicle, error)
}

type PermitLookup interface {
	GetByVehicle(license string) ([]*permitDatamodel.Permit, error)
}

type ZoneLookup interface {
	GetZonesByID(zoneID string) ([]*parkingDatamodel.Zone, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// CreateResult pairs the stored citation with the advisory flags raised
// while entering it. Violations never block the write.
type CreateResult struct {
	Citation       *Citation         `json:"citation"`
	Violations     []rules.Violation `json:"violations"`
	VehicleCreated bool              `json:"vehicle_created"`
}

type Service struct {
	repo     RepositoryAPI
	vehicles VehicleGetter
	permits  PermitLookup
	zones    ZoneLookup
	bus      EventPublisher
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, vehicles VehicleGetter, permits PermitLookup, zones ZoneLookup, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		vehicles: vehicles,
		permits:  permits,
		zones:    zones,
		bus:      bus,
		logger:   logger,
	}
}

// CreateCitation records a ticket. A plate the system has never seen gets a
// vehicle row in the same transaction; a known plate gets its permits run
// through the violation detector first.
func (s *Service) CreateCitation(dto CreateCitationDTO) (*CreateResult, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("citation validation failed", "error", err)
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	citationDate, err := time.Parse(DateLayout, dto.CitationDate)
	if err != nil {
		return nil, internal.NewValidationFieldError("citation_date", "citation_date must be YYYY-MM-DD", internal.ErrCodeValidationFailed)
	}
	if !rules.ValidClock(dto.CitationTime) {
		return nil, internal.NewValidationFieldError("citation_time", "citation_time must be HH:MM:SS", internal.ErrCodeValidationFailed)
	}

	license := vehicle.NormalizeLicense(dto.CarLicense)

	known, err := s.vehicles.GetByLicense(license)
	if err != nil {
		s.logger.Error("failed to look up cited vehicle", "error", err, "license", license)
		return nil, err
	}

	var newVehicle *vehicleDatamodel.Vehicle
	if known == nil {
		if dto.Vehicle == nil {
			return nil, internal.NewValidationError("vehicle details are required for a first citation against an unknown license", internal.ErrCodeValidationFailed)
		}
		v, err := vehicle.NewVehicle(license, dto.Vehicle.Model, dto.Vehicle.Color, dto.Vehicle.Manufacturer, dto.Vehicle.Year)
		if err != nil {
			return nil, err
		}
		newVehicle = vehicle.ToDataModel(v)
	}

	// unknown plates have no permits, so the detector only runs for known
	// vehicles
	var violations []rules.Violation
	if known != nil {
		violations, err = s.detectViolations(license, dto.LotName, citationDate, dto.CitationTime)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	c := &Citation{
		CarLicense:    license,
		LotName:       dto.LotName,
		Category:      dto.Category,
		Fee:           dto.Fee,
		PaymentStatus: StatusDue,
		CitationDate:  citationDate,
		CitationTime:  dto.CitationTime,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	dm := ToDataModel(c)
	if err := s.repo.InsertWithVehicle(dm, newVehicle); err != nil {
		s.logger.Error("failed to insert citation", "error", err, "license", license)
		return nil, err
	}
	c.ID = dm.ID

	s.logger.Info("citation created",
		"citation_id", c.ID,
		"license", license,
		"lot", c.LotName,
		"fee", c.Fee,
		"vehicle_created", newVehicle != nil,
		"violations", len(violations))

	if s.bus != nil {
		_ = s.bus.Publish(context.Background(), events.NewCitationCreatedEvent(c.ID, license, c.LotName, c.Fee, newVehicle != nil, violations))
	}

	return &CreateResult{
		Citation:       c,
		Violations:     violations,
		VehicleCreated: newVehicle != nil,
	}, nil
}

func (s *Service) detectViolations(license, lotName string, date time.Time, clock string) ([]rules.Violation, error) {
	permitRows, err := s.permits.GetByVehicle(license)
	if err != nil {
		s.logger.Error("failed to load permits for cited vehicle", "error", err, "license", license)
		return nil, err
	}

	cited := make([]rules.CitedPermit, 0, len(permitRows))
	seenZones := make(map[string]bool)
	var zoneLots []rules.ZoneLot
	for _, row := range permitRows {
		cited = append(cited, rules.CitedPermit{
			PermitID:       row.PermitID,
			ZoneID:         row.ZoneID,
			ExpirationDate: row.ExpirationDate,
			ExpirationTime: row.ExpirationTime,
		})

		if seenZones[row.ZoneID] {
			continue
		}
		seenZones[row.ZoneID] = true

		zones, err := s.zones.GetZonesByID(row.ZoneID)
		if err != nil {
			s.logger.Error("failed to resolve zone lots", "error", err, "zone_id", row.ZoneID)
			return nil, err
		}
		for _, z := range zones {
			zoneLots = append(zoneLots, rules.ZoneLot{ZoneID: z.ZoneID, LotName: z.LotName})
		}
	}

	return rules.DetectViolations(rules.CitationFacts{
		LotName: lotName,
		Date:    date,
		Time:    clock,
	}, cited, zoneLots), nil
}

func (s *Service) GetCitation(id int64) (*Citation, error) {
	dm, err := s.repo.GetByID(id)
	if err != nil || dm == nil {
		if err != nil {
			s.logger.Error("failed to get citation", "error", err, "citation_id", id)
			return nil, err
		}
		return nil, internal.ErrCitationNotFound
	}
	return FromDataModel(dm), nil
}

func (s *Service) ListCitations(limit, offset int) ([]*Citation, error) {
	rows, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list citations", "error", err)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) GetVehicleCitations(license string) ([]*Citation, error) {
	rows, err := s.repo.GetByVehicle(vehicle.NormalizeLicense(license))
	if err != nil {
		s.logger.Error("failed to list vehicle citations", "error", err, "license", license)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

// PayCitation moves a DUE citation to PAID.
func (s *Service) PayCitation(id int64) (*Citation, error) {
	return s.transition(id, StatusPaid)
}

// AppealCitation moves a DUE citation to APPEALED.
func (s *Service) AppealCitation(id int64) (*Citation, error) {
	return s.transition(id, StatusAppealed)
}

func (s *Service) transition(id int64, target string) (*Citation, error) {
	dm, err := s.repo.GetByID(id)
	if err != nil || dm == nil {
		if err != nil {
			return nil, err
		}
		return nil, internal.ErrCitationNotFound
	}

	if dm.PaymentStatus != StatusDue {
		s.logger.Warn("citation transition rejected",
			"citation_id", id,
			"from", dm.PaymentStatus,
			"to", target)
		return nil, internal.ErrInvalidCitationStatus
	}

	if err := s.repo.UpdateStatus(id, target); err != nil {
		s.logger.Error("failed to update citation status", "error", err, "citation_id", id)
		return nil, err
	}

	s.logger.Info("citation status updated", "citation_id", id, "status", target)
	dm.PaymentStatus = target
	return FromDataModel(dm), nil
}

func (s *Service) DeleteCitation(id int64) error {
	dm, err := s.repo.GetByID(id)
	if err != nil || dm == nil {
		if err != nil {
			return err
		}
		return internal.ErrCitationNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete citation", "error", err, "citation_id", id)
		return err
	}

	s.logger.Info("citation deleted", "citation_id", id)
	return nil
}
