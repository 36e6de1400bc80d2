package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	driverDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/driver"
	"github.com/frahmantamala/campus-parking/internal/driver"
)

type DriverRepository struct {
	db *gorm.DB
}

func NewDriverRepository(db *gorm.DB) driver.RepositoryAPI {
	return &DriverRepository{db: db}
}

func (r *DriverRepository) GetByID(id string) (*driverDatamodel.Driver, error) {
	var d driverDatamodel.Driver
	err := r.db.Where("id = ?", id).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *DriverRepository) GetAll(limit, offset int) ([]*driverDatamodel.Driver, error) {
	var drivers []*driverDatamodel.Driver
	err := r.db.Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&drivers).Error
	return drivers, err
}

func (r *DriverRepository) Create(d *driverDatamodel.Driver) error {
	return r.db.Create(d).Error
}

func (r *DriverRepository) Update(d *driverDatamodel.Driver) error {
	d.UpdatedAt = time.Now()
	return r.db.Save(d).Error
}

func (r *DriverRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&driverDatamodel.Driver{}).Error
}
