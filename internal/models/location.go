package models

// Location is a flat reference entity for listing placement.
// Rows come from seed data or the admin API; identity never changes.
type Location struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
}

// TableName specifies the table name
func (Location) TableName() string {
	return "locations"
}
