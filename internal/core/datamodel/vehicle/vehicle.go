package vehicle

import "time"

type Vehicle struct {
	License      string    `gorm:"primaryKey;column:license"`
	Model        string    `gorm:"column:model"`
	Color        string    `gorm:"column:color"`
	Manufacturer string    `gorm:"column:manufacturer"`
	Year         int       `gorm:"column:year;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `gorm:"column:updated_at;default:now()"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}
