package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/frahmantamala/campus-parking/internal/citation"
	citationDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/citation"
	vehicleDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/vehicle"
)

type CitationRepository struct {
	db *gorm.DB
}

func NewCitationRepository(db *gorm.DB) citation.RepositoryAPI {
	return &CitationRepository{db: db}
}

func (r *CitationRepository) GetByID(id int64) (*citationDatamodel.Citation, error) {
	var c citationDatamodel.Citation
	err := r.db.Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CitationRepository) GetAll(limit, offset int) ([]*citationDatamodel.Citation, error) {
	var citations []*citationDatamodel.Citation
	err := r.db.Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&citations).Error
	return citations, err
}

func (r *CitationRepository) GetByVehicle(license string) ([]*citationDatamodel.Citation, error) {
	var citations []*citationDatamodel.Citation
	err := r.db.Where("car_license = ?", license).
		Order("id ASC").
		Find(&citations).Error
	return citations, err
}

// InsertWithVehicle writes the optional vehicle row and the citation in one
// transaction so a failed citation insert leaves no orphaned vehicle.
func (r *CitationRepository) InsertWithVehicle(c *citationDatamodel.Citation, newVehicle *vehicleDatamodel.Vehicle) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if newVehicle != nil {
			if err := tx.Create(newVehicle).Error; err != nil {
				return err
			}
		}
		return tx.Create(c).Error
	})
}

func (r *CitationRepository) UpdateStatus(id int64, status string) error {
	return r.db.Model(&citationDatamodel.Citation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payment_status": status,
			"updated_at":     time.Now(),
		}).Error
}

func (r *CitationRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&citationDatamodel.Citation{}).Error
}
