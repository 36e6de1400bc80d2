package permit

import (
	"time"

	permitDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/permit"
)

// DateLayout is the wire format for permit dates.
const DateLayout = "2006-01-02"

// Permit is one row of a logical permit. Rows sharing PermitID agree on
// everything except the attached vehicle.
type Permit struct {
	ID             int64     `json:"-"`
	PermitID       string    `json:"permit_id"`
	PermitType     string    `json:"permit_type"`
	ZoneID         string    `json:"zone_id"`
	DriverID       string    `json:"driver_id"`
	CarLicense     *string   `json:"car_license,omitempty"`
	SpaceType      string    `json:"space_type"`
	StartDate      time.Time `json:"start_date"`
	ExpirationDate time.Time `json:"expiration_date"`
	ExpirationTime string    `json:"expiration_time"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Vehicles collects the licenses attached across a logical permit's rows.
func Vehicles(rows []*Permit) []string {
	var licenses []string
	for _, row := range rows {
		if row.CarLicense != nil && *row.CarLicense != "" {
			licenses = append(licenses, *row.CarLicense)
		}
	}
	return licenses
}

func ToDataModel(p *Permit) *permitDatamodel.Permit {
	return &permitDatamodel.Permit{
		ID:             p.ID,
		PermitID:       p.PermitID,
		PermitType:     p.PermitType,
		ZoneID:         p.ZoneID,
		DriverID:       p.DriverID,
		CarLicense:     p.CarLicense,
		SpaceType:      p.SpaceType,
		StartDate:      p.StartDate,
		ExpirationDate: p.ExpirationDate,
		ExpirationTime: p.ExpirationTime,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func FromDataModel(p *permitDatamodel.Permit) *Permit {
	return &Permit{
		ID:             p.ID,
		PermitID:       p.PermitID,
		PermitType:     p.PermitType,
		ZoneID:         p.ZoneID,
		DriverID:       p.DriverID,
		CarLicense:     p.CarLicense,
		SpaceType:      p.SpaceType,
		StartDate:      p.StartDate,
		ExpirationDate: p.ExpirationDate,
		ExpirationTime: p.ExpirationTime,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*permitDatamodel.Permit) []*Permit {
	result := make([]*Permit, len(rows))
	for i, p := range rows {
		result[i] = FromDataModel(p)
	}
	return result
}
