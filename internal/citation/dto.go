package citation

import (
	"errors"

	"github.com/frahmantamala/campus-parking/internal"
)

// VehicleDetailsDTO carries the registration fields needed when a citation
// names a plate the system has never seen.
type VehicleDetailsDTO struct {
	Model        string `json:"model"`
	Color        string `json:"color"`
	Manufacturer string `json:"manufacturer"`
	Year         int    `json:"year"`
}

type CreateCitationDTO struct {
	CarLicense   string             `json:"car_license"`
	LotName      string             `json:"lot_name"`
	Category     string             `json:"category"`
	Fee          float64            `json:"fee"`
	CitationDate string             `json:"citation_date"`
	CitationTime string             `json:"citation_time"`
	Vehicle      *VehicleDetailsDTO `json:"vehicle,omitempty"`
}

func (dto CreateCitationDTO) Validate() error {
	if dto.CarLicense == "" {
		return errors.New("car_license is required")
	}
	if dto.LotName == "" {
		return errors.New("lot_name is required")
	}
	if dto.Category == "" {
		return errors.New("category is required")
	}
	if dto.Fee < 0 {
		return internal.NewValidationFieldError("fee", "fee cannot be negative", internal.ErrCodeInvalidFee)
	}
	if dto.CitationDate == "" || dto.CitationTime == "" {
		return errors.New("citation_date and citation_time are required")
	}
	return nil
}
