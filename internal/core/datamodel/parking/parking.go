package parking

import "time"

type Lot struct {
	Name      string    `gorm:"primaryKey;column:name"`
	Address   string    `gorm:"column:address"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

func (Lot) TableName() string {
	return "parking_lots"
}

// Zone rows reference their lot by name only; reassigning a zone to a new
// lot is a plain column update, not a relational move.
type Zone struct {
	ID        int64     `gorm:"primaryKey"`
	ZoneID    string    `gorm:"column:zone_id;not null;uniqueIndex:idx_zone_lot"`
	LotName   string    `gorm:"column:lot_name;not null;uniqueIndex:idx_zone_lot"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

func (Zone) TableName() string {
	return "zones"
}

type Space struct {
	ID        int64     `gorm:"primaryKey"`
	Number    int       `gorm:"column:number;not null;uniqueIndex:idx_space_key"`
	ZoneID    string    `gorm:"column:zone_id;not null;uniqueIndex:idx_space_key"`
	LotName   string    `gorm:"column:lot_name;not null;uniqueIndex:idx_space_key"`
	SpaceType string    `gorm:"column:space_type;default:regular"`
	Available bool      `gorm:"column:available;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

func (Space) TableName() string {
	return "spaces"
}
