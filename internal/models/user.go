package models

import "time"

// Role is the account role, fixed at registration time
type Role string

const (
	RoleStudent  Role = "student"
	RoleLandlord Role = "landlord"
	RoleAdmin    Role = "admin"
)

// User represents an account in the portal
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"type:varchar(150);not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"type:varchar(254)" json:"email,omitempty"`
	PasswordHash string    `gorm:"type:varchar(128);not null" json:"-"`
	FirstName    string    `gorm:"type:varchar(30)" json:"first_name,omitempty"`
	LastName     string    `gorm:"type:varchar(30)" json:"last_name,omitempty"`
	Role         Role      `gorm:"type:varchar(20);not null;index" json:"role"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`

	StudentProfile  *StudentProfile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"student_profile,omitempty"`
	LandlordProfile *LandlordProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"landlord_profile,omitempty"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// FullName returns the display name, falling back to the username
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsLandlord reports whether the account may manage listings
func (u *User) IsLandlord() bool {
	return u.Role == RoleLandlord || u.Role == RoleAdmin
}

// IsAdmin reports whether the account has staff privileges
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
