package models

import "time"

// ContentType identifies a static content page. One row per type.
type ContentType string

const (
	ContentTypeTerms   ContentType = "terms"
	ContentTypePrivacy ContentType = "privacy"
	ContentTypeAbout   ContentType = "about"
	ContentTypeSafety  ContentType = "safety"
)

// ValidContentType reports whether ct names a known content page
func ValidContentType(ct ContentType) bool {
	switch ct {
	case ContentTypeTerms, ContentTypePrivacy, ContentTypeAbout, ContentTypeSafety:
		return true
	}
	return false
}

// SiteContent is an admin-editable HTML document rendered on a static page
type SiteContent struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	ContentType ContentType `gorm:"type:varchar(20);not null;uniqueIndex" json:"content_type"`
	Title       string      `gorm:"type:varchar(200);not null" json:"title"`
	Content     string      `gorm:"type:text;not null" json:"content"`
	IsActive    bool        `gorm:"not null" json:"is_active"`
	LastUpdated time.Time   `gorm:"not null;autoUpdateTime" json:"last_updated"`
}

// TableName specifies the table name
func (SiteContent) TableName() string {
	return "site_contents"
}
