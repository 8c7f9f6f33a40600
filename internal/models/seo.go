package models

import (
	"strings"

	"gorm.io/gorm"
)

// Region is a top-level town used for location landing pages
type Region struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Slug string `gorm:"type:varchar(100);not null;index" json:"slug"`

	Subregions []Subregion `gorm:"foreignKey:RegionID;constraint:OnDelete:CASCADE" json:"subregions,omitempty"`
}

// TableName specifies the table name
func (Region) TableName() string {
	return "regions"
}

// BeforeSave derives the slug from the name when it was not set explicitly
func (r *Region) BeforeSave(tx *gorm.DB) error {
	if r.Slug == "" {
		r.Slug = Slugify(r.Name)
	}
	return nil
}

// Subregion is a neighborhood within a region, unique per (region, name)
type Subregion struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	RegionID uint   `gorm:"not null;uniqueIndex:idx_subregion_region_name" json:"region_id"`
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex:idx_subregion_region_name" json:"name"`
	Slug     string `gorm:"type:varchar(100);not null;index" json:"slug"`

	Region Region `gorm:"foreignKey:RegionID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name
func (Subregion) TableName() string {
	return "subregions"
}

// BeforeSave derives the slug from the name when it was not set explicitly
func (s *Subregion) BeforeSave(tx *gorm.DB) error {
	if s.Slug == "" {
		s.Slug = Slugify(s.Name)
	}
	return nil
}

// Slugify lowercases the name and collapses runs of non-alphanumeric
// characters into single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
