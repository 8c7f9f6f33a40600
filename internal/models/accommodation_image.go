package models

import "time"

// AccommodationImage is an uploaded photo attached to a listing.
// The first image uploaded with a listing is marked primary.
type AccommodationImage struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AccommodationID uint      `gorm:"not null;index" json:"accommodation_id"`
	ImagePath       string    `gorm:"type:varchar(500);not null" json:"image_path"`
	IsPrimary       bool      `gorm:"not null;default:false" json:"is_primary"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime" json:"created_at"`

	Accommodation Accommodation `gorm:"foreignKey:AccommodationID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (AccommodationImage) TableName() string {
	return "accommodation_images"
}
