package permit

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/campus-parking/internal"
	driverDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/driver"
	permitDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/permit"
	vehicleDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/vehicle"
	"github.com/frahmantamala/campus-parking/internal/core/events"
	"github.com/frahmantamala/campus-parking/internal/core/rules"
	"github.com/frahmantamala/campus-parking/internal/vehicle"
)

type RepositoryAPI interface {
	GetRows(permitID string) ([]*permitDatamodel.Permit, error)
	GetByDriver(driverID string) ([]*permitDatamodel.Permit, error)
	GetByVehicle(license string) ([]*permitDatamodel.Permit, error)
	GetAll(limit, offset int) ([]*permitDatamodel.Permit, error)
	CountPermitsForDriver(driverID string) (int, error)
	CountVehiclesOnPermit(permitID string) (int, error)
	CountPermitsForVehicle(license string) (int, error)
	Insert(row *permitDatamodel.Permit) error
	UpdateRow(row *permitDatamodel.Permit) error
	UpdateShared(permitID string, fields map[string]interface{}) error
	DeleteRows(permitID string) error
	GetExpiringBetween(from, to time.Time) ([]*permitDatamodel.Permit, error)
}

type DriverGetter interface {
	GetByID(id string) (*driverDatamodel.Driver, error)
}

type VehicleGetter interface {
	GetByLicense(license string) (*vehicleDatamodel.Vehicle, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service gates every permit write behind the eligibility and vehicle
// attachment evaluators. The same rule path serves direct creation,
// assignment to a driver, and updates, so the checks cannot drift apart.
type Service struct {
	repo     RepositoryAPI
	drivers  DriverGetter
	vehicles VehicleGetter
	bus      EventPublisher
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, drivers DriverGetter, vehicles VehicleGetter, bus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		drivers:  drivers,
		vehicles: vehicles,
		bus:      bus,
		logger:   logger,
	}
}

// CreatePermit issues a new permit. The duplicate-ID check runs before any
// class logic: an existing ID is invalid no matter the quota.
func (s *Service) CreatePermit(dto CreatePermitDTO) (*Permit, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("permit validation failed", "error", err, "permit_id", dto.PermitID)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	existing, err := s.repo.GetRows(dto.PermitID)
	if err != nil {
		s.logger.Error("failed to check for existing permit", "error", err, "permit_id", dto.PermitID)
		return nil, err
	}
	if len(existing) > 0 {
		s.logger.Warn("duplicate permit id", "permit_id", dto.PermitID)
		return nil, internal.ErrDuplicatePermitID
	}

	d, err := s.drivers.GetByID(dto.DriverID)
	if err != nil || d == nil {
		return nil, internal.ErrDriverNotFound
	}

	held, err := s.repo.CountPermitsForDriver(d.ID)
	if err != nil {
		s.logger.Error("failed to count driver permits", "error", err, "driver_id", d.ID)
		return nil, err
	}

	startDate, expirationDate, err := parseDates(dto.StartDate, dto.ExpirationDate)
	if err != nil {
		return nil, err
	}

	result, err := rules.EvaluateEligibility(rules.EligibilityRequest{
		Class:          rules.DriverClass(d.Class),
		HeldPermits:    held,
		PermitType:     dto.PermitType,
		ZoneID:         dto.ZoneID,
		SpaceType:      dto.SpaceType,
		StartDate:      startDate,
		ExpirationDate: expirationDate,
		ExpirationTime: dto.ExpirationTime,
	})
	if err != nil {
		s.logger.Warn("permit rejected",
			"permit_id", dto.PermitID,
			"driver_id", d.ID,
			"class", d.Class,
			"held", held,
			"reason", err)
		return nil, err
	}

	var carLicense *string
	if dto.CarLicense != nil && *dto.CarLicense != "" {
		normalized := vehicle.NormalizeLicense(*dto.CarLicense)
		v, err := s.vehicles.GetByLicense(normalized)
		if err != nil || v == nil {
			return nil, internal.ErrVehicleNotFound
		}
		carLicense = &normalized
	}

	now := time.Now()
	p := &Permit{
		PermitID:       dto.PermitID,
		PermitType:     result.PermitType,
		ZoneID:         result.ZoneID,
		DriverID:       d.ID,
		CarLicense:     carLicense,
		SpaceType:      result.SpaceType,
		StartDate:      startDate,
		ExpirationDate: expirationDate,
		ExpirationTime: dto.ExpirationTime,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	dm := ToDataModel(p)
	if err := s.repo.Insert(dm); err != nil {
		s.logger.Error("failed to insert permit row", "error", err, "permit_id", p.PermitID)
		return nil, err
	}
	p.ID = dm.ID

	s.logger.Info("permit issued",
		"permit_id", p.PermitID,
		"driver_id", p.DriverID,
		"type", p.PermitType,
		"zone", p.ZoneID,
		"restricted_slot", result.Restricted)

	if s.bus != nil {
		_ = s.bus.Publish(context.Background(), events.NewPermitIssuedEvent(p.PermitID, p.DriverID, p.PermitType, p.ZoneID))
	}

	return p, nil
}

// AssignToDriver is the second entry point to permit issuance. It runs the
// exact same rule path as CreatePermit; only the way the driver arrives
// differs.
func (s *Service) AssignToDriver(driverID string, dto CreatePermitDTO) (*Permit, error) {
	dto.DriverID = driverID
	return s.CreatePermit(dto)
}

// GetPermit returns every row sharing the permit ID.
func (s *Service) GetPermit(permitID string) ([]*Permit, error) {
	rows, err := s.repo.GetRows(permitID)
	if err != nil {
		s.logger.Error("failed to get permit rows", "error", err, "permit_id", permitID)
		return nil, err
	}
	if len(rows) == 0 {
		return nil, internal.ErrPermitNotFound
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) ListPermits(limit, offset int) ([]*Permit, error) {
	rows, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list permits", "error", err)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) GetDriverPermits(driverID string) ([]*Permit, error) {
	if d, err := s.drivers.GetByID(driverID); err != nil || d == nil {
		return nil, internal.ErrDriverNotFound
	}
	rows, err := s.repo.GetByDriver(driverID)
	if err != nil {
		s.logger.Error("failed to get driver permits", "error", err, "driver_id", driverID)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

// UpdatePermit re-runs the full eligibility check against the merged
// state, with the permit's own slot excluded from the quota count. Shared
// fields change on every row so a multi-row permit stays consistent.
func (s *Service) UpdatePermit(permitID string, dto UpdatePermitDTO) ([]*Permit, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	rows, err := s.repo.GetRows(permitID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, internal.ErrPermitNotFound
	}
	head := rows[0]

	d, err := s.drivers.GetByID(head.DriverID)
	if err != nil || d == nil {
		return nil, internal.ErrDriverNotFound
	}

	held, err := s.repo.CountPermitsForDriver(d.ID)
	if err != nil {
		return nil, err
	}
	if held > 0 {
		held-- // this permit already occupies one slot
	}

	merged := rules.EligibilityRequest{
		Class:          rules.DriverClass(d.Class),
		HeldPermits:    held,
		PermitType:     head.PermitType,
		ZoneID:         head.ZoneID,
		SpaceType:      head.SpaceType,
		StartDate:      head.StartDate,
		ExpirationDate: head.ExpirationDate,
		ExpirationTime: head.ExpirationTime,
	}
	if dto.PermitType != "" {
		merged.PermitType = dto.PermitType
	}
	if dto.ZoneID != "" {
		merged.ZoneID = dto.ZoneID
	}
	if dto.SpaceType != "" {
		merged.SpaceType = dto.SpaceType
	}
	if dto.StartDate != "" || dto.ExpirationDate != "" {
		startStr := dto.StartDate
		if startStr == "" {
			startStr = head.StartDate.Format(DateLayout)
		}
		expStr := dto.ExpirationDate
		if expStr == "" {
			expStr = head.ExpirationDate.Format(DateLayout)
		}
		start, exp, err := parseDates(startStr, expStr)
		if err != nil {
			return nil, err
		}
		merged.StartDate = start
		merged.ExpirationDate = exp
	}
	if dto.ExpirationTime != "" {
		merged.ExpirationTime = dto.ExpirationTime
	}

	result, err := rules.EvaluateEligibility(merged)
	if err != nil {
		s.logger.Warn("permit update rejected", "permit_id", permitID, "reason", err)
		return nil, err
	}

	fields := map[string]interface{}{
		"permit_type":     result.PermitType,
		"zone_id":         result.ZoneID,
		"space_type":      result.SpaceType,
		"start_date":      merged.StartDate,
		"expiration_date": merged.ExpirationDate,
		"expiration_time": merged.ExpirationTime,
		"updated_at":      time.Now(),
	}
	if err := s.repo.UpdateShared(permitID, fields); err != nil {
		s.logger.Error("failed to update permit rows", "error", err, "permit_id", permitID)
		return nil, err
	}

	s.logger.Info("permit updated", "permit_id", permitID)
	return s.GetPermit(permitID)
}

// AttachVehicle adds one more vehicle to a logical permit. Depending on
// the evaluator's verdict this either fills the empty vehicle slot of an
// existing row or inserts a second row sharing the permit ID.
func (s *Service) AttachVehicle(permitID string, dto AttachVehicleDTO) ([]*Permit, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	rows, err := s.repo.GetRows(permitID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, internal.ErrPermitNotFound
	}

	d, err := s.drivers.GetByID(rows[0].DriverID)
	if err != nil || d == nil {
		return nil, internal.ErrDriverNotFound
	}

	license := vehicle.NormalizeLicense(dto.CarLicense)
	if v, err := s.vehicles.GetByLicense(license); err != nil || v == nil {
		return nil, internal.ErrVehicleNotFound
	}

	// retries on the same (permit, license) pair are no-ops
	for _, row := range rows {
		if row.CarLicense != nil && *row.CarLicense == license {
			s.logger.Info("vehicle already attached", "permit_id", permitID, "license", license)
			return FromDataModelSlice(rows), nil
		}
	}

	attached, err := s.repo.CountVehiclesOnPermit(permitID)
	if err != nil {
		return nil, err
	}

	action, err := rules.EvaluateVehicleAttachment(rules.DriverClass(d.Class), len(rows), attached)
	if err != nil {
		s.logger.Warn("vehicle attachment rejected",
			"permit_id", permitID,
			"license", license,
			"class", d.Class,
			"rows", len(rows),
			"attached", attached,
			"reason", err)
		return nil, err
	}

	switch action {
	case rules.CreateAdditionalRow:
		head := rows[0]
		clone := &permitDatamodel.Permit{
			PermitID:       head.PermitID,
			PermitType:     head.PermitType,
			ZoneID:         head.ZoneID,
			DriverID:       head.DriverID,
			CarLicense:     &license,
			SpaceType:      head.SpaceType,
			StartDate:      head.StartDate,
			ExpirationDate: head.ExpirationDate,
			ExpirationTime: head.ExpirationTime,
		}
		if err := s.repo.Insert(clone); err != nil {
			s.logger.Error("failed to insert additional permit row", "error", err, "permit_id", permitID)
			return nil, err
		}
	case rules.FillExistingRow:
		var empty *permitDatamodel.Permit
		for _, row := range rows {
			if row.CarLicense == nil || *row.CarLicense == "" {
				empty = row
				break
			}
		}
		if empty == nil {
			return nil, internal.ErrVehicleLimitReached
		}
		empty.CarLicense = &license
		if err := s.repo.UpdateRow(empty); err != nil {
			s.logger.Error("failed to fill permit row", "error", err, "permit_id", permitID)
			return nil, err
		}
	}

	s.logger.Info("vehicle attached", "permit_id", permitID, "license", license, "action", action.String())
	return s.GetPermit(permitID)
}

// DetachVehicle nulls the vehicle slot of the row matching the license.
// The row survives, so the permit itself is untouched.
func (s *Service) DetachVehicle(permitID, license string) ([]*Permit, error) {
	rows, err := s.repo.GetRows(permitID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, internal.ErrPermitNotFound
	}

	license = vehicle.NormalizeLicense(license)

	var match *permitDatamodel.Permit
	for _, row := range rows {
		if row.CarLicense != nil && *row.CarLicense == license {
			match = row
			break
		}
	}
	if match == nil {
		return nil, internal.ErrVehicleNotFound
	}

	match.CarLicense = nil
	if err := s.repo.UpdateRow(match); err != nil {
		s.logger.Error("failed to detach vehicle", "error", err, "permit_id", permitID, "license", license)
		return nil, err
	}

	s.logger.Info("vehicle detached", "permit_id", permitID, "license", license)
	return s.GetPermit(permitID)
}

func (s *Service) DeletePermit(permitID string) error {
	rows, err := s.repo.GetRows(permitID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return internal.ErrPermitNotFound
	}

	if err := s.repo.DeleteRows(permitID); err != nil {
		s.logger.Error("failed to delete permit", "error", err, "permit_id", permitID)
		return err
	}

	s.logger.Info("permit deleted", "permit_id", permitID, "rows", len(rows))
	return nil
}

// ExpiringWithin lists permits whose expiration date falls inside the next
// windowDays, for the background sweep.
func (s *Service) ExpiringWithin(windowDays int) ([]*Permit, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, windowDays)

	rows, err := s.repo.GetExpiringBetween(from, to)
	if err != nil {
		s.logger.Error("failed to query expiring permits", "error", err)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

func parseDates(start, expiration string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(DateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, internal.ErrInvalidDateRange
	}
	expirationDate, err := time.Parse(DateLayout, expiration)
	if err != nil {
		return time.Time{}, time.Time{}, internal.ErrInvalidDateRange
	}
	return startDate, expirationDate, nil
}
