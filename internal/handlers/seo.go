package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"student-accommodation-portal/internal/database"
)

// SEOHandler serves the region and subregion landing pages
type SEOHandler struct {
	db *database.GormDB
}

// NewSEOHandler creates a new SEO handler
func NewSEOHandler(db *database.GormDB) *SEOHandler {
	return &SEOHandler{db: db}
}

// Region serves a region landing page. Lookup is case-insensitive.
func (h *SEOHandler) Region(c *gin.Context) {
	region, err := h.db.GetRegionByName(c.Param("region"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Region not found"})
		return
	}
	if err != nil {
		log.Printf("[SEO] Failed to load region %q: %v", c.Param("region"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load region"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"region": region})
}

// Subregion serves a subregion landing page scoped to its region
func (h *SEOHandler) Subregion(c *gin.Context) {
	region, err := h.db.GetRegionByName(c.Param("region"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Region not found"})
		return
	}
	if err != nil {
		log.Printf("[SEO] Failed to load region %q: %v", c.Param("region"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load region"})
		return
	}

	subregion, err := h.db.GetSubregionByName(region.ID, c.Param("subregion"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subregion not found"})
		return
	}
	if err != nil {
		log.Printf("[SEO] Failed to load subregion %q: %v", c.Param("subregion"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load subregion"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"region":    region,
		"subregion": subregion,
	})
}
