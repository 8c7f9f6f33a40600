package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"student-accommodation-portal/internal/auth"
	"student-accommodation-portal/internal/database"
	"student-accommodation-portal/internal/models"
	"student-accommodation-portal/internal/search"
)

// ListingHandler serves the public listing pages
type ListingHandler struct {
	db     *database.GormDB
	search *search.SearchClient
}

// NewListingHandler creates a new listing handler
func NewListingHandler(db *database.GormDB, searchClient *search.SearchClient) *ListingHandler {
	return &ListingHandler{db: db, search: searchClient}
}

// Landing serves the landing page payload: up to four featured listings
func (h *ListingHandler) Landing(c *gin.Context) {
	featured, err := h.db.GetFeaturedAccommodations()
	if err != nil {
		log.Printf("[Listings] Failed to load featured accommodations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load accommodations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"featured_accommodations": featured,
	})
}

// List serves the browse page with optional search and filters
func (h *ListingHandler) List(c *gin.Context) {
	filters := database.AccommodationFilters{
		Search:     c.Query("search"),
		RoomType:   models.RoomType(c.Query("room_type")),
		PriceRange: c.Query("price_range"),
	}
	if raw := c.Query("location"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filters.LocationID = uint(id)
		}
	}

	accommodations, err := h.db.GetPublicAccommodations(filters)
	if err != nil {
		log.Printf("[Listings] Failed to load accommodations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load accommodations"})
		return
	}

	locations, err := h.db.GetLocations()
	if err != nil {
		log.Printf("[Listings] Failed to load locations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load accommodations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accommodations": accommodations,
		"locations":      locations,
		"filters": gin.H{
			"search":      filters.Search,
			"room_type":   filters.RoomType,
			"location":    filters.LocationID,
			"price_range": filters.PriceRange,
		},
	})
}

// Detail serves a single listing. Listings that are not publicly visible
// are shown only to their owner or an admin; everyone else is sent back
// to the browse page.
func (h *ListingHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Accommodation not found"})
		return
	}

	accommodation, err := h.db.GetAccommodationByID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Accommodation not found"})
		return
	}
	if err != nil {
		log.Printf("[Listings] Failed to load accommodation %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load accommodation"})
		return
	}

	if !accommodation.ViewableBy(viewerFrom(c)) {
		c.JSON(http.StatusSeeOther, gin.H{
			"redirect": "/accommodations/",
			"error":    "This accommodation is not available.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accommodation": accommodation})
}

// Search serves the full-text search API backed by Meilisearch
func (h *ListingHandler) Search(c *gin.Context) {
	params := search.FilterParams{
		Query:      c.Query("q"),
		RoomType:   models.RoomType(c.Query("room_type")),
		PriceRange: c.Query("price_range"),
	}
	if raw := c.Query("location"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			params.LocationID = uint(id)
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			params.Limit = int64(n)
		}
	}

	if h.search == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search is not configured"})
		return
	}

	results, err := h.search.FilterSearch(params)
	if err != nil {
		log.Printf("[Search] Query failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"count":   len(results),
	})
}

// viewerFrom builds the visibility viewer from an optionally
// authenticated request.
func viewerFrom(c *gin.Context) *models.User {
	id, ok := auth.UserIDFrom(c)
	if !ok {
		return nil
	}
	role, _ := auth.RoleFrom(c)
	return &models.User{ID: id, Role: role}
}
