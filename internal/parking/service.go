package parking

import (
	"log/slog"

	"github.com/frahmantamala/campus-parking/internal"
	parkingDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/parking"
	"github.com/frahmantamala/campus-parking/internal/core/rules"
)

type RepositoryAPI interface {
	GetLotByName(name string) (*parkingDatamodel.Lot, error)
	GetAllLots(limit, offset int) ([]*parkingDatamodel.Lot, error)
	CreateLot(l *parkingDatamodel.Lot) error
	UpdateLot(l *parkingDatamodel.Lot) error
	DeleteLot(name string) error

	GetZone(zoneID, lotName string) (*parkingDatamodel.Zone, error)
	GetZonesByID(zoneID string) ([]*parkingDatamodel.Zone, error)
	GetAllZones() ([]*parkingDatamodel.Zone, error)
	CreateZone(z *parkingDatamodel.Zone) error
	UpdateZone(z *parkingDatamodel.Zone) error
	DeleteZone(zoneID, lotName string) error

	GetSpace(number int, zoneID, lotName string) (*parkingDatamodel.Space, error)
	GetSpacesByZone(zoneID, lotName string) ([]*parkingDatamodel.Space, error)
	CreateSpace(sp *parkingDatamodel.Space) error
	UpdateSpace(sp *parkingDatamodel.Space) error
	DeleteSpace(number int, zoneID, lotName string) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ---------------- Lots ----------------

func (s *Service) CreateLot(dto CreateLotDTO) (*Lot, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	l, err := NewLot(dto.Name, dto.Address)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetLotByName(l.Name); err == nil && existing != nil {
		return nil, internal.ErrDuplicateLotName
	}

	if err := s.repo.CreateLot(LotToDataModel(l)); err != nil {
		s.logger.Error("failed to create lot", "error", err, "lot", l.Name)
		return nil, err
	}

	s.logger.Info("lot created", "lot", l.Name)
	return l, nil
}

func (s *Service) GetLot(name string) (*Lot, error) {
	dm, err := s.repo.GetLotByName(name)
	if err != nil || dm == nil {
		return nil, internal.ErrLotNotFound
	}
	return LotFromDataModel(dm), nil
}

func (s *Service) ListLots(limit, offset int) ([]*Lot, error) {
	lots, err := s.repo.GetAllLots(limit, offset)
	if err != nil {
		s.logger.Error("failed to list lots", "error", err)
		return nil, err
	}
	result := make([]*Lot, len(lots))
	for i, l := range lots {
		result[i] = LotFromDataModel(l)
	}
	return result, nil
}

func (s *Service) UpdateLot(name string, dto UpdateLotDTO) (*Lot, error) {
	dm, err := s.repo.GetLotByName(name)
	if err != nil || dm == nil {
		return nil, internal.ErrLotNotFound
	}

	if dto.Address != "" {
		dm.Address = dto.Address
	}

	if err := s.repo.UpdateLot(dm); err != nil {
		s.logger.Error("failed to update lot", "error", err, "lot", name)
		return nil, err
	}

	return LotFromDataModel(dm), nil
}

func (s *Service) DeleteLot(name string) error {
	dm, err := s.repo.GetLotByName(name)
	if err != nil || dm == nil {
		return internal.ErrLotNotFound
	}

	if err := s.repo.DeleteLot(name); err != nil {
		s.logger.Error("failed to delete lot", "error", err, "lot", name)
		return err
	}

	s.logger.Info("lot deleted", "lot", name)
	return nil
}

// ---------------- Zones ----------------

func (s *Service) CreateZone(dto CreateZoneDTO) (*Zone, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	z, err := NewZone(dto.ZoneID, dto.LotName)
	if err != nil {
		return nil, err
	}

	if lot, err := s.repo.GetLotByName(z.LotName); err != nil || lot == nil {
		return nil, internal.ErrLotNotFound
	}

	if existing, err := s.repo.GetZone(z.ZoneID, z.LotName); err == nil && existing != nil {
		return nil, internal.ErrDuplicateZone
	}

	dm := ZoneToDataModel(z)
	if err := s.repo.CreateZone(dm); err != nil {
		s.logger.Error("failed to create zone", "error", err, "zone", z.ZoneID, "lot", z.LotName)
		return nil, err
	}
	z.ID = dm.ID

	s.logger.Info("zone created", "zone", z.ZoneID, "lot", z.LotName)
	return z, nil
}

func (s *Service) ListZones() ([]*Zone, error) {
	zones, err := s.repo.GetAllZones()
	if err != nil {
		s.logger.Error("failed to list zones", "error", err)
		return nil, err
	}
	result := make([]*Zone, len(zones))
	for i, z := range zones {
		result[i] = ZoneFromDataModel(z)
	}
	return result, nil
}

// ReassignZone moves the zone to another lot. Spaces and permits keep
// referencing the zone id; only the weak lot reference changes.
func (s *Service) ReassignZone(zoneID, lotName string, dto ReassignZoneDTO) (*Zone, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	normalized, ok := rules.NormalizeZoneID(zoneID)
	if !ok {
		return nil, internal.ErrZoneNotFound
	}

	dm, err := s.repo.GetZone(normalized, lotName)
	if err != nil || dm == nil {
		return nil, internal.ErrZoneNotFound
	}

	if lot, err := s.repo.GetLotByName(dto.LotName); err != nil || lot == nil {
		return nil, internal.ErrLotNotFound
	}

	if existing, err := s.repo.GetZone(normalized, dto.LotName); err == nil && existing != nil {
		return nil, internal.ErrDuplicateZone
	}

	dm.LotName = dto.LotName
	if err := s.repo.UpdateZone(dm); err != nil {
		s.logger.Error("failed to reassign zone", "error", err, "zone", normalized)
		return nil, err
	}

	s.logger.Info("zone reassigned", "zone", normalized, "from", lotName, "to", dto.LotName)
	return ZoneFromDataModel(dm), nil
}

func (s *Service) DeleteZone(zoneID, lotName string) error {
	normalized, ok := rules.NormalizeZoneID(zoneID)
	if !ok {
		return internal.ErrZoneNotFound
	}

	dm, err := s.repo.GetZone(normalized, lotName)
	if err != nil || dm == nil {
		return internal.ErrZoneNotFound
	}

	if err := s.repo.DeleteZone(normalized, lotName); err != nil {
		s.logger.Error("failed to delete zone", "error", err, "zone", normalized, "lot", lotName)
		return err
	}

	s.logger.Info("zone deleted", "zone", normalized, "lot", lotName)
	return nil
}

// ---------------- Spaces ----------------

func (s *Service) CreateSpace(dto CreateSpaceDTO) (*Space, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	sp, err := NewSpace(dto.Number, dto.ZoneID, dto.LotName, dto.SpaceType)
	if err != nil {
		return nil, err
	}

	if zone, err := s.repo.GetZone(sp.ZoneID, sp.LotName); err != nil || zone == nil {
		return nil, internal.ErrZoneNotFound
	}

	if existing, err := s.repo.GetSpace(sp.Number, sp.ZoneID, sp.LotName); err == nil && existing != nil {
		return nil, internal.ErrDuplicateSpace
	}

	dm := SpaceToDataModel(sp)
	if err := s.repo.CreateSpace(dm); err != nil {
		s.logger.Error("failed to create space", "error", err, "number", sp.Number, "zone", sp.ZoneID)
		return nil, err
	}
	sp.ID = dm.ID

	s.logger.Info("space created", "number", sp.Number, "zone", sp.ZoneID, "lot", sp.LotName)
	return sp, nil
}

func (s *Service) ListSpaces(zoneID, lotName string) ([]*Space, error) {
	normalized, _ := rules.NormalizeZoneID(zoneID)
	spaces, err := s.repo.GetSpacesByZone(normalized, lotName)
	if err != nil {
		s.logger.Error("failed to list spaces", "error", err, "zone", normalized)
		return nil, err
	}
	result := make([]*Space, len(spaces))
	for i, sp := range spaces {
		result[i] = SpaceFromDataModel(sp)
	}
	return result, nil
}

// SetSpaceAvailability flips the in-use flag; there is no occupancy
// tracking beyond it.
func (s *Service) SetSpaceAvailability(number int, zoneID, lotName string, dto SetSpaceAvailabilityDTO) (*Space, error) {
	normalized, ok := rules.NormalizeZoneID(zoneID)
	if !ok {
		return nil, internal.ErrSpaceNotFound
	}

	dm, err := s.repo.GetSpace(number, normalized, lotName)
	if err != nil || dm == nil {
		return nil, internal.ErrSpaceNotFound
	}

	dm.Available = dto.Available
	if err := s.repo.UpdateSpace(dm); err != nil {
		s.logger.Error("failed to update space availability", "error", err, "number", number, "zone", normalized)
		return nil, err
	}

	return SpaceFromDataModel(dm), nil
}

func (s *Service) DeleteSpace(number int, zoneID, lotName string) error {
	normalized, ok := rules.NormalizeZoneID(zoneID)
	if !ok {
		return internal.ErrSpaceNotFound
	}

	dm, err := s.repo.GetSpace(number, normalized, lotName)
	if err != nil || dm == nil {
		return internal.ErrSpaceNotFound
	}

	if err := s.repo.DeleteSpace(number, normalized, lotName); err != nil {
		s.logger.Error("failed to delete space", "error", err, "number", number, "zone", normalized)
		return err
	}

	return nil
}
