package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"student-accommodation-portal/internal/cleanup"
	"student-accommodation-portal/internal/database"
	"student-accommodation-portal/internal/models"
	"student-accommodation-portal/internal/ratelimit"
	"student-accommodation-portal/internal/scheduler"
	"student-accommodation-portal/internal/search"
)

// AdminHandler serves the moderation and site management API
type AdminHandler struct {
	db        *database.GormDB
	search    *search.SearchClient
	scheduler *scheduler.Scheduler
	cleanup   *cleanup.Service
	limiter   *ratelimit.RateLimiter
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *database.GormDB, searchClient *search.SearchClient, sched *scheduler.Scheduler, cleanupService *cleanup.Service, limiter *ratelimit.RateLimiter) *AdminHandler {
	return &AdminHandler{db: db, search: searchClient, scheduler: sched, cleanup: cleanupService, limiter: limiter}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return uint(id), true
}

// Approve sets or clears the approval flag on a listing
func (h *AdminHandler) Approve(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Approved *bool `json:"approved" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approved is required"})
		return
	}

	accommodation, err := h.db.SetApproval(id, *req.Approved)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Accommodation not found"})
		return
	}
	if err != nil {
		log.Printf("[Admin] Failed to set approval on listing %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update accommodation"})
		return
	}

	h.syncIndex(accommodation)
	c.JSON(http.StatusOK, gin.H{"accommodation": accommodation})
}

// Feature sets or clears the featured flag on a listing
func (h *AdminHandler) Feature(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Featured *bool `json:"featured" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "featured is required"})
		return
	}

	accommodation, err := h.db.SetFeatured(id, *req.Featured)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Accommodation not found"})
		return
	}
	if err != nil {
		log.Printf("[Admin] Failed to set featured on listing %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update accommodation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accommodation": accommodation})
}

// VerifyLandlord sets or clears the verified flag on a landlord profile
func (h *AdminHandler) VerifyLandlord(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	var req struct {
		Verified *bool `json:"verified" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "verified is required"})
		return
	}

	err := h.db.SetLandlordVerified(userID, *req.Verified)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Landlord not found"})
		return
	}
	if err != nil {
		log.Printf("[Admin] Failed to set verified on landlord %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update landlord"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"verified": *req.Verified})
}

// Stats serves the site-wide moderation dashboard numbers
func (h *AdminHandler) Stats(c *gin.Context) {
	listings, err := h.db.GetListingStats()
	if err != nil {
		log.Printf("[Admin] Failed to load listing stats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	users, err := h.db.CountUsersByRole()
	if err != nil {
		log.Printf("[Admin] Failed to count users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	prices, err := h.db.GetPriceDistribution()
	if err != nil {
		log.Printf("[Admin] Failed to load price distribution: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"listings":           listings,
		"users_by_role":      users,
		"price_distribution": prices,
	})
}

// UpsertContent creates or replaces a static site page
func (h *AdminHandler) UpsertContent(c *gin.Context) {
	contentType := models.ContentType(c.Param("type"))
	if !models.ValidContentType(contentType) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	var req struct {
		Title    string `json:"title" binding:"required"`
		Content  string `json:"content" binding:"required"`
		IsActive *bool  `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	content, err := h.db.UpsertContent(contentType, req.Title, req.Content, active)
	if err != nil {
		log.Printf("[Admin] Failed to upsert %s content: %v", contentType, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": content})
}

// CreateLocation adds a browsable location, idempotently by name
func (h *AdminHandler) CreateLocation(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	location, err := h.db.EnsureLocation(strings.TrimSpace(req.Name))
	if err != nil {
		log.Printf("[Admin] Failed to create location %q: %v", req.Name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create location"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"location": location})
}

// CreateRegion adds an SEO region, idempotently by name
func (h *AdminHandler) CreateRegion(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	region, err := h.db.EnsureRegion(strings.TrimSpace(req.Name))
	if err != nil {
		log.Printf("[Admin] Failed to create region %q: %v", req.Name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create region"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"region": region})
}

// CreateSubregion adds an SEO subregion under an existing region
func (h *AdminHandler) CreateSubregion(c *gin.Context) {
	regionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	subregion, err := h.db.EnsureSubregion(regionID, strings.TrimSpace(req.Name))
	if err != nil {
		log.Printf("[Admin] Failed to create subregion %q: %v", req.Name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create subregion"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"subregion": subregion})
}

// Reindex rebuilds the search index from scratch
func (h *AdminHandler) Reindex(c *gin.Context) {
	if h.scheduler == nil || h.search == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search is not configured"})
		return
	}

	if err := h.scheduler.Reindex(); err != nil {
		log.Printf("[Admin] Reindex failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reindex failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "reindexed"})
}

// RateLimitStats reports the current state of the request limiter
func (h *AdminHandler) RateLimitStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rate_limit": h.limiter.GetStats()})
}

// RunCleanup sweeps orphaned media files, optionally as a dry run
func (h *AdminHandler) RunCleanup(c *gin.Context) {
	cfg := cleanup.DefaultCleanupConfig()
	var req struct {
		DryRun           bool `json:"dry_run"`
		MaxDeletionCount int  `json:"max_deletion_count"`
	}
	if err := c.ShouldBindJSON(&req); err == nil {
		cfg.DryRun = req.DryRun
		if req.MaxDeletionCount > 0 {
			cfg.MaxDeletionCount = req.MaxDeletionCount
		}
	}

	result, err := h.cleanup.SweepOrphanedFiles(cfg)
	if err != nil {
		log.Printf("[Admin] Cleanup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

func (h *AdminHandler) syncIndex(a *models.Accommodation) {
	if h.search == nil {
		return
	}
	if err := h.search.IndexAccommodation(a); err != nil {
		log.Printf("[Admin] Failed to sync listing %d to index: %v", a.ID, err)
	}
}
