package permit

import "errors"

type CreatePermitDTO struct {
	PermitID       string  `json:"permit_id"`
	DriverID       string  `json:"driver_id"`
	PermitType     string  `json:"permit_type"`
	ZoneID         string  `json:"zone_id"`
	CarLicense     *string `json:"car_license,omitempty"`
	SpaceType      string  `json:"space_type"`
	StartDate      string  `json:"start_date"`
	ExpirationDate string  `json:"expiration_date"`
	ExpirationTime string  `json:"expiration_time"`
}

func (dto CreatePermitDTO) Validate() error {
	if dto.PermitID == "" {
		return errors.New("permit_id is required")
	}
	if dto.DriverID == "" {
		return errors.New("driver_id is required")
	}
	if dto.PermitType == "" {
		return errors.New("permit_type is required")
	}
	if dto.ZoneID == "" {
		return errors.New("zone_id is required")
	}
	if dto.SpaceType == "" {
		return errors.New("space_type is required")
	}
	if dto.StartDate == "" || dto.ExpirationDate == "" || dto.ExpirationTime == "" {
		return errors.New("start_date, expiration_date and expiration_time are required")
	}
	return nil
}

// UpdatePermitDTO changes the shared fields of every row of a logical
// permit; vehicle slots are managed through the attach/detach operations.
type UpdatePermitDTO struct {
	PermitType     string `json:"permit_type,omitempty"`
	ZoneID         string `json:"zone_id,omitempty"`
	SpaceType      string `json:"space_type,omitempty"`
	StartDate      string `json:"start_date,omitempty"`
	ExpirationDate string `json:"expiration_date,omitempty"`
	ExpirationTime string `json:"expiration_time,omitempty"`
}

func (dto UpdatePermitDTO) Validate() error {
	if dto.PermitType == "" && dto.ZoneID == "" && dto.SpaceType == "" &&
		dto.StartDate == "" && dto.ExpirationDate == "" && dto.ExpirationTime == "" {
		return errors.New("nothing to update")
	}
	return nil
}

type AttachVehicleDTO struct {
	CarLicense string `json:"car_license"`
}

func (dto AttachVehicleDTO) Validate() error {
	if dto.CarLicense == "" {
		return errors.New("car_license is required")
	}
	return nil
}
