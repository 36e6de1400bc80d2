package vehicle

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/campus-parking/internal"
	vehicleDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/vehicle"
)

type RepositoryAPI interface {
	GetByLicense(license string) (*vehicleDatamodel.Vehicle, error)
	GetAll(limit, offset int) ([]*vehicleDatamodel.Vehicle, error)
	Create(v *vehicleDatamodel.Vehicle) error
	Update(v *vehicleDatamodel.Vehicle) error
	Delete(license string) error
}

// PermitReferenceChecker reports whether any permit row still points at a
// license, for restrict-delete.
type PermitReferenceChecker interface {
	CountPermitsForVehicle(license string) (int, error)
}

type Service struct {
	repo    RepositoryAPI
	permits PermitReferenceChecker
	logger  *slog.Logger
}

func NewService(repo RepositoryAPI, permits PermitReferenceChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		permits: permits,
		logger:  logger,
	}
}

func (s *Service) CreateVehicle(dto CreateVehicleDTO) (*Vehicle, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("vehicle validation failed", "error", err, "license", dto.License)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	v, err := NewVehicle(dto.License, dto.Model, dto.Color, dto.Manufacturer, dto.Year)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByLicense(v.License); err == nil && existing != nil {
		s.logger.Warn("duplicate license", "license", v.License)
		return nil, internal.ErrDuplicateLicense
	}

	if err := s.repo.Create(ToDataModel(v)); err != nil {
		s.logger.Error("failed to create vehicle", "error", err, "license", v.License)
		return nil, err
	}

	s.logger.Info("vehicle created", "license", v.License, "year", v.Year)
	return v, nil
}

func (s *Service) GetVehicle(license string) (*Vehicle, error) {
	dm, err := s.repo.GetByLicense(NormalizeLicense(license))
	if err != nil || dm == nil {
		return nil, internal.ErrVehicleNotFound
	}
	return FromDataModel(dm), nil
}

func (s *Service) ListVehicles(limit, offset int) ([]*Vehicle, error) {
	vehicles, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list vehicles", "error", err)
		return nil, err
	}
	return FromDataModelSlice(vehicles), nil
}

func (s *Service) UpdateVehicle(license string, dto UpdateVehicleDTO) (*Vehicle, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	dm, err := s.repo.GetByLicense(NormalizeLicense(license))
	if err != nil || dm == nil {
		return nil, internal.ErrVehicleNotFound
	}

	if dto.Model != "" {
		dm.Model = dto.Model
	}
	if dto.Color != "" {
		dm.Color = dto.Color
	}
	if dto.Manufacturer != "" {
		dm.Manufacturer = dto.Manufacturer
	}
	if dto.Year != 0 {
		if dto.Year < minVehicleYear || dto.Year > time.Now().Year()+1 {
			return nil, internal.NewValidationFieldError("year", "year is outside the plausible model-year range", internal.ErrCodeInvalidVehicleYear)
		}
		dm.Year = dto.Year
	}

	if err := s.repo.Update(dm); err != nil {
		s.logger.Error("failed to update vehicle", "error", err, "license", dm.License)
		return nil, err
	}

	s.logger.Info("vehicle updated", "license", dm.License)
	return FromDataModel(dm), nil
}

// DeleteVehicle refuses while a permit row still carries the license.
func (s *Service) DeleteVehicle(license string) error {
	license = NormalizeLicense(license)

	dm, err := s.repo.GetByLicense(license)
	if err != nil || dm == nil {
		return internal.ErrVehicleNotFound
	}

	count, err := s.permits.CountPermitsForVehicle(license)
	if err != nil {
		s.logger.Error("failed to count permit references", "error", err, "license", license)
		return err
	}
	if count > 0 {
		s.logger.Warn("delete blocked, vehicle still attached to permits", "license", license, "permits", count)
		return internal.ErrVehicleHasPermits
	}

	if err := s.repo.Delete(license); err != nil {
		s.logger.Error("failed to delete vehicle", "error", err, "license", license)
		return err
	}

	s.logger.Info("vehicle deleted", "license", license)
	return nil
}
