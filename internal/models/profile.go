package models

import "time"

// StudentProfile holds the student-specific attributes of an account.
// Created once during registration, removed only by cascading user deletion.
type StudentProfile struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	PhoneNumber string    `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	University  string    `gorm:"type:varchar(100)" json:"university,omitempty"`
	Course      string    `gorm:"type:varchar(100)" json:"course,omitempty"`
	YearOfStudy *int      `gorm:"type:int" json:"year_of_study,omitempty"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name
func (StudentProfile) TableName() string {
	return "student_profiles"
}

// LandlordTitle is the salutation on a landlord profile
type LandlordTitle string

const (
	LandlordTitleMr  LandlordTitle = "Mr"
	LandlordTitleMs  LandlordTitle = "M.s"
	LandlordTitleMrs LandlordTitle = "Mrs"
)

// ValidLandlordTitle reports whether t is one of the accepted salutations
func ValidLandlordTitle(t LandlordTitle) bool {
	switch t {
	case LandlordTitleMr, LandlordTitleMs, LandlordTitleMrs:
		return true
	}
	return false
}

// LandlordProfile holds the landlord-specific attributes of an account.
// IsVerified is admin-controlled and never settable by the landlord.
type LandlordProfile struct {
	ID          uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint          `gorm:"not null;uniqueIndex" json:"user_id"`
	Title       LandlordTitle `gorm:"type:varchar(5);not null;default:'Mr'" json:"title"`
	PhoneNumber string        `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	CompanyName string        `gorm:"type:varchar(100)" json:"company_name,omitempty"`
	IsVerified  bool          `gorm:"not null;default:false" json:"is_verified"`
	CreatedAt   time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name
func (LandlordProfile) TableName() string {
	return "landlord_profiles"
}
