package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	parkingDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/parking"
	"github.com/frahmantamala/campus-parking/internal/parking"
)

type ParkingRepository struct {
	db *gorm.DB
}

func NewParkingRepository(db *gorm.DB) parking.RepositoryAPI {
	return &ParkingRepository{db: db}
}

func (r *ParkingRepository) GetLotByName(name string) (*parkingDatamodel.Lot, error) {
	var l parkingDatamodel.Lot
	err := r.db.Where("name = ?", name).First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *ParkingRepository) GetAllLots(limit, offset int) ([]*parkingDatamodel.Lot, error) {
	var lots []*parkingDatamodel.Lot
	err := r.db.Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&lots).Error
	return lots, err
}

func (r *ParkingRepository) CreateLot(l *parkingDatamodel.Lot) error {
	return r.db.Create(l).Error
}

func (r *ParkingRepository) UpdateLot(l *parkingDatamodel.Lot) error {
	l.UpdatedAt = time.Now()
	return r.db.Save(l).Error
}

func (r *ParkingRepository) DeleteLot(name string) error {
	return r.db.Where("name = ?", name).Delete(&parkingDatamodel.Lot{}).Error
}

func (r *ParkingRepository) GetZone(zoneID, lotName string) (*parkingDatamodel.Zone, error) {
	var z parkingDatamodel.Zone
	err := r.db.Where("zone_id = ? AND lot_name = ?", zoneID, lotName).First(&z).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &z, nil
}

func (r *ParkingRepository) GetZonesByID(zoneID string) ([]*parkingDatamodel.Zone, error) {
	var zones []*parkingDatamodel.Zone
	err := r.db.Where("zone_id = ?", zoneID).Find(&zones).Error
	return zones, err
}

func (r *ParkingRepository) GetAllZones() ([]*parkingDatamodel.Zone, error) {
	var zones []*parkingDatamodel.Zone
	err := r.db.Order("zone_id ASC, lot_name ASC").Find(&zones).Error
	return zones, err
}

func (r *ParkingRepository) CreateZone(z *parkingDatamodel.Zone) error {
	return r.db.Create(z).Error
}

func (r *ParkingRepository) UpdateZone(z *parkingDatamodel.Zone) error {
	z.UpdatedAt = time.Now()
	return r.db.Save(z).Error
}

func (r *ParkingRepository) DeleteZone(zoneID, lotName string) error {
	return r.db.Where("zone_id = ? AND lot_name = ?", zoneID, lotName).Delete(&parkingDatamodel.Zone{}).Error
}

func (r *ParkingRepository) GetSpace(number int, zoneID, lotName string) (*parkingDatamodel.Space, error) {
	var sp parkingDatamodel.Space
	err := r.db.Where("number = ? AND zone_id = ? AND lot_name = ?", number, zoneID, lotName).First(&sp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sp, nil
}

func (r *ParkingRepository) GetSpacesByZone(zoneID, lotName string) ([]*parkingDatamodel.Space, error) {
	var spaces []*parkingDatamodel.Space
	q := r.db.Order("number ASC")
	if zoneID != "" {
		q = q.Where("zone_id = ?", zoneID)
	}
	if lotName != "" {
		q = q.Where("lot_name = ?", lotName)
	}
	err := q.Find(&spaces).Error
	return spaces, err
}

func (r *ParkingRepository) CreateSpace(sp *parkingDatamodel.Space) error {
	return r.db.Create(sp).Error
}

func (r *ParkingRepository) UpdateSpace(sp *parkingDatamodel.Space) error {
	sp.UpdatedAt = time.Now()
	return r.db.Save(sp).Error
}

func (r *ParkingRepository) DeleteSpace(number int, zoneID, lotName string) error {
	return r.db.Where("number = ? AND zone_id = ? AND lot_name = ?", number, zoneID, lotName).Delete(&parkingDatamodel.Space{}).Error
}
