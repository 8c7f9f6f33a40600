package models

import "time"

// RoomType classifies an accommodation listing
type RoomType string

const (
	RoomTypeSingle RoomType = "single"
	RoomTypeDouble RoomType = "double"
	RoomTypeTriple RoomType = "triple"
)

// ValidRoomType reports whether rt is one of the accepted room types
func ValidRoomType(rt RoomType) bool {
	switch rt {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeTriple:
		return true
	}
	return false
}

// Accommodation is a rental listing owned by a landlord account
type Accommodation struct {
	ID             uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	LandlordID     uint     `gorm:"not null;index" json:"landlord_id"`
	Title          string   `gorm:"type:varchar(200);not null" json:"title"`
	Description    string   `gorm:"type:text;not null" json:"description"`
	RoomType       RoomType `gorm:"type:varchar(20);not null;index" json:"room_type"`
	Price          float64  `gorm:"type:decimal(10,2);not null" json:"price"`
	LocationID     uint     `gorm:"not null;index" json:"location_id"`
	AvailableRooms uint     `gorm:"not null" json:"available_rooms"`

	// Admin-set flags; landlords can never write these through the API
	IsApproved bool `gorm:"not null;default:false;index" json:"is_approved"`
	IsFeatured bool `gorm:"not null;default:false" json:"is_featured"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index:idx_accommodations_created,sort:desc" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Landlord User                 `gorm:"foreignKey:LandlordID;constraint:OnDelete:CASCADE" json:"-"`
	Location Location             `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"location,omitempty"`
	Images   []AccommodationImage `gorm:"foreignKey:AccommodationID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

// TableName specifies the table name
func (Accommodation) TableName() string {
	return "accommodations"
}

// IsAvailable holds exactly when the listing is approved and in stock
func (a *Accommodation) IsAvailable() bool {
	return a.AvailableRooms > 0 && a.IsApproved
}

// IsPubliclyListed reports whether the listing appears in browse and search
// results. Identical to IsAvailable; kept as its own name because the two
// facts are independent in the contract even though they coincide today.
func (a *Accommodation) IsPubliclyListed() bool {
	return a.IsAvailable()
}

// IsFeaturedListing reports whether the listing qualifies for the landing page
func (a *Accommodation) IsFeaturedListing() bool {
	return a.IsPubliclyListed() && a.IsFeatured
}

// ViewableBy reports whether viewer may open the detail view. Public
// listings are viewable by anyone (viewer may be nil); non-public listings
// only by the owning landlord or an admin.
func (a *Accommodation) ViewableBy(viewer *User) bool {
	if a.IsPubliclyListed() {
		return true
	}
	if viewer == nil {
		return false
	}
	return viewer.ID == a.LandlordID || viewer.IsAdmin()
}

// PrimaryImage returns the primary image if one is loaded, else the first
// loaded image, else nil.
func (a *Accommodation) PrimaryImage() *AccommodationImage {
	for i := range a.Images {
		if a.Images[i].IsPrimary {
			return &a.Images[i]
		}
	}
	if len(a.Images) > 0 {
		return &a.Images[0]
	}
	return nil
}
