package citation

import "time"

type Citation struct {
	ID            int64     `gorm:"primaryKey"`
	CarLicense    string    `gorm:"column:car_license;not null;index"`
	LotName       string    `gorm:"column:lot_name;not null"`
	Category      string    `gorm:"column:category;not null"`
	Fee           float64   `gorm:"column:fee;not null"`
	PaymentStatus string    `gorm:"column:payment_status;default:DUE"`
	CitationDate  time.Time `gorm:"column:citation_date;type:date;not null"`
	CitationTime  string    `gorm:"column:citation_time;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt     time.Time `gorm:"column:updated_at;default:now()"`
}

func (Citation) TableName() string {
	return "citations"
}
