package vehicle

import "errors"

type CreateVehicleDTO struct {
	License      string `json:"license"`
	Model        string `json:"model"`
	Color        string `json:"color"`
	Manufacturer string `json:"manufacturer"`
	Year         int    `json:"year"`
}

func (dto CreateVehicleDTO) Validate() error {
	if dto.License == "" {
		return errors.New("license is required")
	}
	if dto.Year == 0 {
		return errors.New("year is required")
	}
	return nil
}

type UpdateVehicleDTO struct {
	Model        string `json:"model"`
	Color        string `json:"color"`
	Manufacturer string `json:"manufacturer"`
	Year         int    `json:"year"`
}

func (dto UpdateVehicleDTO) Validate() error {
	if dto.Model == "" && dto.Color == "" && dto.Manufacturer == "" && dto.Year == 0 {
		return errors.New("nothing to update")
	}
	return nil
}
