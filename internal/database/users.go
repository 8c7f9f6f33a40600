package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"student-accommodation-portal/internal/models"
)

// StudentRegistration carries the validated fields of a student signup
type StudentRegistration struct {
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	PhoneNumber  string
	University   string
}

// LandlordRegistration carries the validated fields of a landlord signup
type LandlordRegistration struct {
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Title        models.LandlordTitle
	PhoneNumber  string
	CompanyName  string
}

// GetUserByID retrieves a user with its profile rows preloaded
func (gdb *GormDB) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := gdb.db.Preload("StudentProfile").Preload("LandlordProfile").
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by its unique username
func (gdb *GormDB) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := gdb.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameTaken reports whether an account already uses the username
func (gdb *GormDB) UsernameTaken(username string) (bool, error) {
	var count int64
	err := gdb.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// RegisterStudent creates the account and its student profile in one
// transaction. A partially created account is never visible: either both
// rows commit or neither does.
func (gdb *GormDB) RegisterStudent(reg StudentRegistration) (*models.User, error) {
	user := &models.User{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: reg.PasswordHash,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Role:         models.RoleStudent,
	}

	err := gdb.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}
		profile := &models.StudentProfile{
			UserID:      user.ID,
			PhoneNumber: reg.PhoneNumber,
			University:  reg.University,
		}
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create student profile: %w", err)
		}
		user.StudentProfile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// RegisterLandlord creates the account and its landlord profile in one
// transaction, same atomicity contract as RegisterStudent.
func (gdb *GormDB) RegisterLandlord(reg LandlordRegistration) (*models.User, error) {
	title := reg.Title
	if title == "" {
		title = models.LandlordTitleMr
	}

	user := &models.User{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: reg.PasswordHash,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Role:         models.RoleLandlord,
	}

	err := gdb.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}
		profile := &models.LandlordProfile{
			UserID:      user.ID,
			Title:       title,
			PhoneNumber: reg.PhoneNumber,
			CompanyName: reg.CompanyName,
		}
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create landlord profile: %w", err)
		}
		user.LandlordProfile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateLandlordProfile updates phone and company name, creating the
// profile row if the account somehow lacks one.
func (gdb *GormDB) UpdateLandlordProfile(userID uint, phone, company string) (*models.LandlordProfile, error) {
	var profile models.LandlordProfile
	err := gdb.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.LandlordProfile{
			UserID:      userID,
			Title:       models.LandlordTitleMr,
			PhoneNumber: phone,
			CompanyName: company,
		}
		if err := gdb.db.Create(&profile).Error; err != nil {
			return nil, err
		}
		return &profile, nil
	}
	if err != nil {
		return nil, err
	}

	err = gdb.db.Model(&profile).Updates(map[string]interface{}{
		"phone_number": phone,
		"company_name": company,
	}).Error
	if err != nil {
		return nil, err
	}
	profile.PhoneNumber = phone
	profile.CompanyName = company
	return &profile, nil
}

// SetLandlordVerified flips the admin-controlled verification flag
func (gdb *GormDB) SetLandlordVerified(userID uint, verified bool) error {
	result := gdb.db.Model(&models.LandlordProfile{}).
		Where("user_id = ?", userID).
		Update("is_verified", verified)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountUsersByRole returns account counts keyed by role
func (gdb *GormDB) CountUsersByRole() (map[models.Role]int64, error) {
	type roleCount struct {
		Role  models.Role
		Count int64
	}
	var rows []roleCount
	err := gdb.db.Model(&models.User{}).
		Select("role, count(*) as count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.Role]int64, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Count
	}
	return counts, nil
}
