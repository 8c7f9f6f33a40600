package database

import (
	"errors"

	"gorm.io/gorm"

	"student-accommodation-portal/internal/models"
)

// GetActiveContent returns the active content row for a page type.
// Inactive rows are treated the same as absent ones.
func (gdb *GormDB) GetActiveContent(contentType models.ContentType) (*models.SiteContent, error) {
	var content models.SiteContent
	err := gdb.db.Where("content_type = ? AND is_active = ?", contentType, true).
		First(&content).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// UpsertContent creates or replaces the single content row for a page type
func (gdb *GormDB) UpsertContent(contentType models.ContentType, title, body string, active bool) (*models.SiteContent, error) {
	var content models.SiteContent
	err := gdb.db.Where("content_type = ?", contentType).First(&content).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		content = models.SiteContent{
			ContentType: contentType,
			Title:       title,
			Content:     body,
			IsActive:    active,
		}
		if err := gdb.db.Create(&content).Error; err != nil {
			return nil, err
		}
		return &content, nil
	}
	if err != nil {
		return nil, err
	}

	err = gdb.db.Model(&content).Updates(map[string]interface{}{
		"title":     title,
		"content":   body,
		"is_active": active,
	}).Error
	if err != nil {
		return nil, err
	}
	content.Title = title
	content.Content = body
	content.IsActive = active
	return &content, nil
}

// GetLocations returns all locations ordered by name
func (gdb *GormDB) GetLocations() ([]models.Location, error) {
	var locations []models.Location
	err := gdb.db.Order("name ASC").Find(&locations).Error
	return locations, err
}

// EnsureLocation creates a location if no row with that name exists
func (gdb *GormDB) EnsureLocation(name string) (*models.Location, error) {
	var location models.Location
	err := gdb.db.Where("name = ?", name).First(&location).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		location = models.Location{Name: name}
		if err := gdb.db.Create(&location).Error; err != nil {
			return nil, err
		}
		return &location, nil
	}
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// GetRegionByName looks a region up by name or slug, case-insensitively
func (gdb *GormDB) GetRegionByName(name string) (*models.Region, error) {
	var region models.Region
	err := gdb.db.Preload("Subregions").
		Where("LOWER(name) = LOWER(?) OR slug = ?", name, models.Slugify(name)).
		First(&region).Error
	if err != nil {
		return nil, err
	}
	return &region, nil
}

// GetSubregionByName looks a subregion up within a region, by name or
// slug, case-insensitively.
func (gdb *GormDB) GetSubregionByName(regionID uint, name string) (*models.Subregion, error) {
	var subregion models.Subregion
	err := gdb.db.Where("region_id = ? AND (LOWER(name) = LOWER(?) OR slug = ?)", regionID, name, models.Slugify(name)).
		First(&subregion).Error
	if err != nil {
		return nil, err
	}
	return &subregion, nil
}

// EnsureRegion creates a region if no row with that name exists
func (gdb *GormDB) EnsureRegion(name string) (*models.Region, error) {
	var region models.Region
	err := gdb.db.Where("LOWER(name) = LOWER(?)", name).First(&region).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		region = models.Region{Name: name}
		if err := gdb.db.Create(&region).Error; err != nil {
			return nil, err
		}
		return &region, nil
	}
	if err != nil {
		return nil, err
	}
	return &region, nil
}

// EnsureSubregion creates a subregion under a region if absent
func (gdb *GormDB) EnsureSubregion(regionID uint, name string) (*models.Subregion, error) {
	var subregion models.Subregion
	err := gdb.db.Where("region_id = ? AND LOWER(name) = LOWER(?)", regionID, name).
		First(&subregion).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		subregion = models.Subregion{RegionID: regionID, Name: name}
		if err := gdb.db.Create(&subregion).Error; err != nil {
			return nil, err
		}
		return &subregion, nil
	}
	if err != nil {
		return nil, err
	}
	return &subregion, nil
}
