package parking

import (
	"strings"
	"time"

	"github.com/frahmantamala/campus-parking/internal"
	parkingDatamodel "github.com/frahmantamala/campus-parking/internal/core/datamodel/parking"
	"github.com/frahmantamala/campus-parking/internal/core/rules"
)

type Lot struct {
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewLot(name, address string) (*Lot, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, internal.NewValidationFieldError("name", "lot name is required", internal.ErrCodeValidationFailed)
	}

	now := time.Now()
	return &Lot{
		Name:      name,
		Address:   strings.TrimSpace(address),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

type Zone struct {
	ID        int64     `json:"id"`
	ZoneID    string    `json:"zone_id"`
	LotName   string    `json:"lot_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewZone accepts any casing on input and stores the identifier uppercase;
// only the nine enumerated identifiers exist.
func NewZone(zoneID, lotName string) (*Zone, error) {
	z, ok := rules.NormalizeZoneID(zoneID)
	if !ok {
		return nil, internal.NewValidationFieldError("zone_id", "zone id must be one of A, B, C, D, V, AS, BS, CS, DS", internal.ErrCodeInvalidZoneID)
	}
	lotName = strings.TrimSpace(lotName)
	if lotName == "" {
		return nil, internal.NewValidationFieldError("lot_name", "lot name is required", internal.ErrCodeValidationFailed)
	}

	now := time.Now()
	return &Zone{
		ZoneID:    z,
		LotName:   lotName,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

type Space struct {
	ID        int64     `json:"id"`
	Number    int       `json:"number"`
	ZoneID    string    `json:"zone_id"`
	LotName   string    `json:"lot_name"`
	SpaceType string    `json:"space_type"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSpace(number int, zoneID, lotName, spaceType string) (*Space, error) {
	if number <= 0 {
		return nil, internal.NewValidationFieldError("number", "space number must be positive", internal.ErrCodeValidationFailed)
	}
	z, ok := rules.NormalizeZoneID(zoneID)
	if !ok {
		return nil, internal.NewValidationFieldError("zone_id", "zone id must be one of A, B, C, D, V, AS, BS, CS, DS", internal.ErrCodeInvalidZoneID)
	}
	lotName = strings.TrimSpace(lotName)
	if lotName == "" {
		return nil, internal.NewValidationFieldError("lot_name", "lot name is required", internal.ErrCodeValidationFailed)
	}
	st, ok := rules.NormalizeSpaceType(spaceType)
	if !ok {
		return nil, internal.ErrInvalidSpaceType
	}

	now := time.Now()
	return &Space{
		Number:    number,
		ZoneID:    z,
		LotName:   lotName,
		SpaceType: st,
		Available: true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func LotToDataModel(l *Lot) *parkingDatamodel.Lot {
	return &parkingDatamodel.Lot{
		Name:      l.Name,
		Address:   l.Address,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func LotFromDataModel(l *parkingDatamodel.Lot) *Lot {
	return &Lot{
		Name:      l.Name,
		Address:   l.Address,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func ZoneToDataModel(z *Zone) *parkingDatamodel.Zone {
	return &parkingDatamodel.Zone{
		ID:        z.ID,
		ZoneID:    z.ZoneID,
		LotName:   z.LotName,
		CreatedAt: z.CreatedAt,
		UpdatedAt: z.UpdatedAt,
	}
}

func ZoneFromDataModel(z *parkingDatamodel.Zone) *Zone {
	return &Zone{
		ID:        z.ID,
		ZoneID:    z.ZoneID,
		LotName:   z.LotName,
		CreatedAt: z.CreatedAt,
		UpdatedAt: z.UpdatedAt,
	}
}

func SpaceToDataModel(s *Space) *parkingDatamodel.Space {
	return &parkingDatamodel.Space{
		ID:        s.ID,
		Number:    s.Number,
		ZoneID:    s.ZoneID,
		LotName:   s.LotName,
		SpaceType: s.SpaceType,
		Available: s.Available,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func SpaceFromDataModel(s *parkingDatamodel.Space) *Space {
	return &Space{
		ID:        s.ID,
		Number:    s.Number,
		ZoneID:    s.ZoneID,
		LotName:   s.LotName,
		SpaceType: s.SpaceType,
		Available: s.Available,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
