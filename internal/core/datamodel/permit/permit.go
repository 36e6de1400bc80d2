package permit

import "time"

// Permit is one persisted row. A logical permit is the set of rows sharing
// PermitID; an employee attaching a second vehicle gets a second row, every
// other driver keeps exactly one.
type Permit struct {
	ID             int64     `gorm:"primaryKey"`
	PermitID       string    `gorm:"column:permit_id;not null;index"`
	PermitType     string    `gorm:"column:permit_type;not null"`
	ZoneID         string    `gorm:"column:zone_id;not null"`
	DriverID       string    `gorm:"column:driver_id;not null;index"`
	CarLicense     *string   `gorm:"column:car_license;index"`
	SpaceType      string    `gorm:"column:space_type;not null"`
	StartDate      time.Time `gorm:"column:start_date;type:date;not null"`
	ExpirationDate time.Time `gorm:"column:expiration_date;type:date;not null"`
	ExpirationTime string    `gorm:"column:expiration_time;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt      time.Time `gorm:"column:updated_at;default:now()"`
}

func (Permit) TableName() string {
	return "permits"
}
