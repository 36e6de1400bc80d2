package parking

import "errors"

type CreateLotDTO struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (dto CreateLotDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

type UpdateLotDTO struct {
	Address string `json:"address"`
}

type CreateZoneDTO struct {
	ZoneID  string `json:"zone_id"`
	LotName string `json:"lot_name"`
}

func (dto CreateZoneDTO) Validate() error {
	if dto.ZoneID == "" {
		return errors.New("zone_id is required")
	}
	if dto.LotName == "" {
		return errors.New("lot_name is required")
	}
	return nil
}

// ReassignZoneDTO moves a zone to another lot.
type ReassignZoneDTO struct {
	LotName string `json:"lot_name"`
}

func (dto ReassignZoneDTO) Validate() error {
	if dto.LotName == "" {
		return errors.New("lot_name is required")
	}
	return nil
}

type CreateSpaceDTO struct {
	Number    int    `json:"number"`
	ZoneID    string `json:"zone_id"`
	LotName   string `json:"lot_name"`
	SpaceType string `json:"space_type"`
}

func (dto CreateSpaceDTO) Validate() error {
	if dto.Number <= 0 {
		return errors.New("number must be positive")
	}
	if dto.ZoneID == "" {
		return errors.New("zone_id is required")
	}
	if dto.LotName == "" {
		return errors.New("lot_name is required")
	}
	return nil
}

type SetSpaceAvailabilityDTO struct {
	Available bool `json:"available"`
}
