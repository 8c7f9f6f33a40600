package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"student-accommodation-portal/internal/models"
)

// Price range buckets accepted by the browse filter. Boundary values are
// inclusive on both sides, so a price of exactly 500 matches both the
// 300-500 and the 500-700 bucket. This mirrors the documented contract;
// do not "fix" the overlap here.
const (
	PriceRangeLow     = "0-300"
	PriceRangeMid     = "300-500"
	PriceRangeHigh    = "500-700"
	PriceRangePremium = "700+"
)

// AccommodationFilters holds the optional browse query parameters.
// Zero values are no-ops; all present filters compose with AND.
type AccommodationFilters struct {
	Search     string
	RoomType   models.RoomType
	LocationID uint
	PriceRange string
}

// FeaturedLimit caps the landing page listing count
const FeaturedLimit = 4

// publicScope restricts a query to publicly listed accommodations
func publicScope(db *gorm.DB) *gorm.DB {
	return db.Where("is_approved = ? AND available_rooms > 0", true)
}

// GetPublicAccommodations returns the publicly listed accommodations
// matching the filters, newest first.
func (gdb *GormDB) GetPublicAccommodations(filters AccommodationFilters) ([]models.Accommodation, error) {
	query := publicScope(gdb.db.Model(&models.Accommodation{})).
		Preload("Location").
		Preload("Images")

	if filters.Search != "" {
		needle := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}

	if filters.RoomType != "" {
		query = query.Where("room_type = ?", filters.RoomType)
	}

	if filters.LocationID != 0 {
		query = query.Where("location_id = ?", filters.LocationID)
	}

	switch filters.PriceRange {
	case PriceRangeLow:
		query = query.Where("price <= ?", 300)
	case PriceRangeMid:
		query = query.Where("price >= ? AND price <= ?", 300, 500)
	case PriceRangeHigh:
		query = query.Where("price >= ? AND price <= ?", 500, 700)
	case PriceRangePremium:
		query = query.Where("price >= ?", 700)
	}

	var accommodations []models.Accommodation
	err := query.Order("created_at DESC, id DESC").Find(&accommodations).Error
	return accommodations, err
}

// GetFeaturedAccommodations returns up to FeaturedLimit featured public
// listings for the landing page, most recently updated first.
func (gdb *GormDB) GetFeaturedAccommodations() ([]models.Accommodation, error) {
	var accommodations []models.Accommodation
	err := publicScope(gdb.db.Where("is_featured = ?", true)).
		Preload("Location").
		Preload("Images").
		Order("updated_at DESC, id DESC").
		Limit(FeaturedLimit).
		Find(&accommodations).Error
	return accommodations, err
}

// GetAccommodationByID retrieves a listing with location and images loaded
func (gdb *GormDB) GetAccommodationByID(id uint) (*models.Accommodation, error) {
	var accommodation models.Accommodation
	err := gdb.db.Preload("Location").Preload("Images").
		First(&accommodation, id).Error
	if err != nil {
		return nil, err
	}
	return &accommodation, nil
}

// GetOwnedAccommodation retrieves a listing only if landlordID owns it.
// A miss on either condition reports gorm.ErrRecordNotFound so callers
// cannot distinguish "absent" from "not yours".
func (gdb *GormDB) GetOwnedAccommodation(id, landlordID uint) (*models.Accommodation, error) {
	var accommodation models.Accommodation
	err := gdb.db.Preload("Location").Preload("Images").
		Where("id = ? AND landlord_id = ?", id, landlordID).
		First(&accommodation).Error
	if err != nil {
		return nil, err
	}
	return &accommodation, nil
}

// GetAccommodationsByLandlord returns every listing the landlord owns
func (gdb *GormDB) GetAccommodationsByLandlord(landlordID uint) ([]models.Accommodation, error) {
	var accommodations []models.Accommodation
	err := gdb.db.Preload("Location").Preload("Images").
		Where("landlord_id = ?", landlordID).
		Order("created_at DESC, id DESC").
		Find(&accommodations).Error
	return accommodations, err
}

// CreateAccommodationWithImages persists the listing first, then its image
// rows, in one transaction. The first image path becomes the primary image.
// New listings are always unapproved regardless of who creates them.
func (gdb *GormDB) CreateAccommodationWithImages(a *models.Accommodation, imagePaths []string) error {
	a.IsApproved = false
	a.IsFeatured = false

	return gdb.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return fmt.Errorf("failed to create accommodation: %w", err)
		}

		for i, path := range imagePaths {
			image := models.AccommodationImage{
				AccommodationID: a.ID,
				ImagePath:       path,
				IsPrimary:       i == 0,
			}
			if err := tx.Create(&image).Error; err != nil {
				return fmt.Errorf("failed to create accommodation image: %w", err)
			}
			a.Images = append(a.Images, image)
		}
		return nil
	})
}

// AccommodationUpdate carries the landlord-editable listing fields.
// Approval and featured flags are admin-only and not part of this set.
type AccommodationUpdate struct {
	Title          string
	Description    string
	RoomType       models.RoomType
	Price          float64
	LocationID     uint
	AvailableRooms uint
}

// UpdateAccommodation applies landlord edits to an owned listing.
// Returns gorm.ErrRecordNotFound when the listing is absent or not owned.
func (gdb *GormDB) UpdateAccommodation(id, landlordID uint, update AccommodationUpdate) (*models.Accommodation, error) {
	accommodation, err := gdb.GetOwnedAccommodation(id, landlordID)
	if err != nil {
		return nil, err
	}

	err = gdb.db.Model(accommodation).Updates(map[string]interface{}{
		"title":           update.Title,
		"description":     update.Description,
		"room_type":       update.RoomType,
		"price":           update.Price,
		"location_id":     update.LocationID,
		"available_rooms": update.AvailableRooms,
	}).Error
	if err != nil {
		return nil, err
	}

	return gdb.GetOwnedAccommodation(id, landlordID)
}

// DeleteAccommodation removes an owned listing and its image rows.
// Image rows are deleted explicitly inside the transaction so the cascade
// holds on engines without enforced foreign keys.
func (gdb *GormDB) DeleteAccommodation(id, landlordID uint) ([]string, error) {
	accommodation, err := gdb.GetOwnedAccommodation(id, landlordID)
	if err != nil {
		return nil, err
	}

	imagePaths := make([]string, 0, len(accommodation.Images))
	for _, image := range accommodation.Images {
		imagePaths = append(imagePaths, image.ImagePath)
	}

	err = gdb.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("accommodation_id = ?", id).
			Delete(&models.AccommodationImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Accommodation{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return imagePaths, nil
}

// GetAccommodationImages returns the image rows of a listing
func (gdb *GormDB) GetAccommodationImages(accommodationID uint) ([]models.AccommodationImage, error) {
	var images []models.AccommodationImage
	err := gdb.db.Where("accommodation_id = ?", accommodationID).
		Order("is_primary DESC, id ASC").
		Find(&images).Error
	return images, err
}

// DashboardStats is the per-landlord aggregation shown on the dashboard
type DashboardStats struct {
	TotalListings    int64 `json:"total_listings"`
	ApprovedListings int64 `json:"approved_listings"`
	PendingListings  int64 `json:"pending_listings"`
	AvailableRooms   int64 `json:"available_rooms"`
}

// GetDashboardStats recomputes the landlord's aggregates on every call.
// Available rooms are summed across approved listings only.
func (gdb *GormDB) GetDashboardStats(landlordID uint) (*DashboardStats, error) {
	stats := &DashboardStats{}
	owned := gdb.db.Model(&models.Accommodation{}).Where("landlord_id = ?", landlordID)

	if err := owned.Session(&gorm.Session{}).Count(&stats.TotalListings).Error; err != nil {
		return nil, err
	}
	if err := owned.Session(&gorm.Session{}).Where("is_approved = ?", true).
		Count(&stats.ApprovedListings).Error; err != nil {
		return nil, err
	}
	stats.PendingListings = stats.TotalListings - stats.ApprovedListings

	err := gdb.db.Model(&models.Accommodation{}).
		Where("landlord_id = ? AND is_approved = ?", landlordID, true).
		Select("COALESCE(SUM(available_rooms), 0)").
		Scan(&stats.AvailableRooms).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// SetApproval flips the admin-only approval flag on a listing
func (gdb *GormDB) SetApproval(id uint, approved bool) (*models.Accommodation, error) {
	result := gdb.db.Model(&models.Accommodation{}).
		Where("id = ?", id).
		Update("is_approved", approved)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return gdb.GetAccommodationByID(id)
}

// SetFeatured flips the admin-only featured flag on a listing
func (gdb *GormDB) SetFeatured(id uint, featured bool) (*models.Accommodation, error) {
	result := gdb.db.Model(&models.Accommodation{}).
		Where("id = ?", id).
		Update("is_featured", featured)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return gdb.GetAccommodationByID(id)
}

// ListingStats is the portal-wide aggregation on the admin panel
type ListingStats struct {
	Total      int64            `json:"total"`
	Approved   int64            `json:"approved"`
	Pending    int64            `json:"pending"`
	Featured   int64            `json:"featured"`
	ByLocation map[string]int64 `json:"by_location"`
}

// GetListingStats computes portal-wide listing counts
func (gdb *GormDB) GetListingStats() (*ListingStats, error) {
	stats := &ListingStats{ByLocation: make(map[string]int64)}
	model := gdb.db.Model(&models.Accommodation{})

	if err := model.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := model.Session(&gorm.Session{}).Where("is_approved = ?", true).
		Count(&stats.Approved).Error; err != nil {
		return nil, err
	}
	stats.Pending = stats.Total - stats.Approved
	if err := model.Session(&gorm.Session{}).Where("is_featured = ?", true).
		Count(&stats.Featured).Error; err != nil {
		return nil, err
	}

	type locationCount struct {
		Name  string
		Count int64
	}
	var rows []locationCount
	err := gdb.db.Model(&models.Accommodation{}).
		Select("locations.name as name, count(*) as count").
		Joins("JOIN locations ON locations.id = accommodations.location_id").
		Group("locations.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.ByLocation[row.Name] = row.Count
	}
	return stats, nil
}

// GetPriceDistribution counts public listings per browse price bucket.
// Buckets share their boundary values, so the bucket totals may exceed the
// listing count.
func (gdb *GormDB) GetPriceDistribution() (map[string]int64, error) {
	distribution := make(map[string]int64, 4)

	buckets := []struct {
		name  string
		where string
		args  []interface{}
	}{
		{PriceRangeLow, "price <= ?", []interface{}{300}},
		{PriceRangeMid, "price >= ? AND price <= ?", []interface{}{300, 500}},
		{PriceRangeHigh, "price >= ? AND price <= ?", []interface{}{500, 700}},
		{PriceRangePremium, "price >= ?", []interface{}{700}},
	}

	for _, bucket := range buckets {
		var count int64
		err := publicScope(gdb.db.Model(&models.Accommodation{})).
			Where(bucket.where, bucket.args...).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		distribution[bucket.name] = count
	}
	return distribution, nil
}
