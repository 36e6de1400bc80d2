package postgres

import (
	"time"

	"gorm.io/gorm"

	permitDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/permit"
	"github.com/frahmantamala/campus-parking/internal/permit"
)

type PermitRepository struct {
	db *gorm.DB
}

func NewPermitRepository(db *gorm.DB) permit.RepositoryAPI {
	return &PermitRepository{db: db}
}

func (r *PermitRepository) GetRows(permitID string) ([]*permitDatamodel.Permit, error) {
	var rows []*permitDatamodel.Permit
	err := r.db.Where("permit_id = ?", permitID).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *PermitRepository) GetByDriver(driverID string) ([]*permitDatamodel.Permit, error) {
	var rows []*permitDatamodel.Permit
	err := r.db.Where("driver_id = ?", driverID).
		Order("permit_id ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *PermitRepository) GetByVehicle(license string) ([]*permitDatamodel.Permit, error) {
	var rows []*permitDatamodel.Permit
	err := r.db.Where("car_license = ?", license).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *PermitRepository) GetAll(limit, offset int) ([]*permitDatamodel.Permit, error) {
	var rows []*permitDatamodel.Permit
	err := r.db.Order("permit_id ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	return rows, err
}

// CountPermitsForDriver counts logical permits, so multi-row permits
// weigh once against the quota.
func (r *PermitRepository) CountPermitsForDriver(driverID string) (int, error) {
	var count int64
	err := r.db.Model(&permitDatamodel.Permit{}).
		Where("driver_id = ?", driverID).
		Distinct("permit_id").
		Count(&count).Error
	return int(count), err
}

func (r *PermitRepository) CountVehiclesOnPermit(permitID string) (int, error) {
	var count int64
	err := r.db.Model(&permitDatamodel.Permit{}).
		Where("permit_id = ? AND car_license IS NOT NULL", permitID).
		Count(&count).Error
	return int(count), err
}

func (r *PermitRepository) CountPermitsForVehicle(license string) (int, error) {
	var count int64
	err := r.db.Model(&permitDatamodel.Permit{}).
		Where("car_license = ?", license).
		Count(&count).Error
	return int(count), err
}

func (r *PermitRepository) Insert(row *permitDatamodel.Permit) error {
	return r.db.Create(row).Error
}

func (r *PermitRepository) UpdateRow(row *permitDatamodel.Permit) error {
	row.UpdatedAt = time.Now()
	// Save skips nil pointer columns, so clearing a vehicle slot needs an
	// explicit column update.
	return r.db.Model(&permitDatamodel.Permit{}).
		Where("id = ?", row.ID).
		Updates(map[string]interface{}{
			"car_license": row.CarLicense,
			"updated_at":  row.UpdatedAt,
		}).Error
}

func (r *PermitRepository) UpdateShared(permitID string, fields map[string]interface{}) error {
	return r.db.Model(&permitDatamodel.Permit{}).
		Where("permit_id = ?", permitID).
		Updates(fields).Error
}

func (r *PermitRepository) DeleteRows(permitID string) error {
	return r.db.Where("permit_id = ?", permitID).
		Delete(&permitDatamodel.Permit{}).Error
}

func (r *PermitRepository) GetExpiringBetween(from, to time.Time) ([]*permitDatamodel.Permit, error) {
	var rows []*permitDatamodel.Permit
	err := r.db.Where("expiration_date >= ? AND expiration_date < ?", from, to).
		Order("expiration_date ASC, permit_id ASC").
		Find(&rows).Error
	return rows, err
}
