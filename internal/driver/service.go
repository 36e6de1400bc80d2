package driver

import (
	"log/slog"

	"github.com/frahmantamala/campus-parking/internal"
	driverDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/driver"
	"github.com/frahmantamala/campus-parking/internal/core/rules"
)

type RepositoryAPI interface {
	GetByID(id string) (*driverDatamodel.Driver, error)
	GetAll(limit, offset int) ([]*driverDatamodel.Driver, error)
	Create(d *driverDatamodel.Driver) error
	Update(d *driverDatamodel.Driver) error
	Delete(id string) error
}

// PermitCounter is the slice of the permit store this service needs to
// enforce restrict-delete.
type PermitCounter interface {
	CountPermitsForDriver(driverID string) (int, error)
}

type Service struct {
	repo    RepositoryAPI
	permits PermitCounter
	logger  *slog.Logger
}

func NewService(repo RepositoryAPI, permits PermitCounter, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		permits: permits,
		logger:  logger,
	}
}

func (s *Service) CreateDriver(dto CreateDriverDTO) (*Driver, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("driver validation failed", "error", err, "driver_id", dto.ID)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	d, err := NewDriver(dto.ID, dto.Name, dto.Class)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByID(d.ID); err == nil && existing != nil {
		s.logger.Warn("duplicate driver id", "driver_id", d.ID)
		return nil, internal.ErrDuplicateDriverID
	}

	if err := s.repo.Create(ToDataModel(d)); err != nil {
		s.logger.Error("failed to create driver", "error", err, "driver_id", d.ID)
		return nil, err
	}

	s.logger.Info("driver created", "driver_id", d.ID, "class", d.Class)
	return d, nil
}

func (s *Service) GetDriver(id string) (*Driver, error) {
	dm, err := s.repo.GetByID(id)
	if err != nil || dm == nil {
		return nil, internal.ErrDriverNotFound
	}
	return FromDataModel(dm), nil
}

func (s *Service) ListDrivers(limit, offset int) ([]*Driver, error) {
	drivers, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list drivers", "error", err)
		return nil, err
	}
	return FromDataModelSlice(drivers), nil
}

// UpdateDriver mutates name and class; a class change re-checks nothing
// retroactively, existing permits keep their zones.
func (s *Service) UpdateDriver(id string, dto UpdateDriverDTO) (*Driver, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	dm, err := s.repo.GetByID(id)
	if err != nil || dm == nil {
		return nil, internal.ErrDriverNotFound
	}

	if dto.Name != "" {
		dm.Name = dto.Name
	}
	if dto.Class != "" {
		parsed, ok := rules.ParseDriverClass(dto.Class)
		if !ok {
			return nil, internal.ErrInvalidDriverClass
		}
		dm.Class = string(parsed)
	}

	if err := s.repo.Update(dm); err != nil {
		s.logger.Error("failed to update driver", "error", err, "driver_id", id)
		return nil, err
	}

	s.logger.Info("driver updated", "driver_id", id)
	return FromDataModel(dm), nil
}

// DeleteDriver refuses while permits still reference the driver, keeping
// the permit table free of orphaned owner ids.
func (s *Service) DeleteDriver(id string) error {
	dm, err := s.repo.GetByID(id)
	if err != nil || dm == nil {
		return internal.ErrDriverNotFound
	}

	count, err := s.permits.CountPermitsForDriver(id)
	if err != nil {
		s.logger.Error("failed to count permits for driver", "error", err, "driver_id", id)
		return err
	}
	if count > 0 {
		s.logger.Warn("delete blocked, driver still holds permits", "driver_id", id, "permits", count)
		return internal.ErrDriverHasPermits
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete driver", "error", err, "driver_id", id)
		return err
	}

	s.logger.Info("driver deleted", "driver_id", id)
	return nil
}
