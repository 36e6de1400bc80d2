package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	vehicleDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/vehicle"
	"github.com/frahmantamala/campus-parking/internal/vehicle"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) vehicle.RepositoryAPI {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) GetByLicense(license string) (*vehicleDatamodel.Vehicle, error) {
	var v vehicleDatamodel.Vehicle
	err := r.db.Where("license = ?", license).First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepository) GetAll(limit, offset int) ([]*vehicleDatamodel.Vehicle, error) {
	var vehicles []*vehicleDatamodel.Vehicle
	err := r.db.Order("license ASC").
		Limit(limit).
		Offset(offset).
		Find(&vehicles).Error
	return vehicles, err
}

func (r *VehicleRepository) Create(v *vehicleDatamodel.Vehicle) error {
	return r.db.Create(v).Error
}

func (r *VehicleRepository) Update(v *vehicleDatamodel.Vehicle) error {
	v.UpdatedAt = time.Now()
	return r.db.Save(v).Error
}

func (r *VehicleRepository) Delete(license string) error {
	return r.db.Where("license = ?", license).Delete(&vehicleDatamodel.Vehicle{}).Error
}
