package handlers

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"student-accommodation-portal/internal/auth"
	"student-accommodation-portal/internal/database"
	"student-accommodation-portal/internal/email"
	"student-accommodation-portal/internal/models"
	"student-accommodation-portal/internal/search"
	"student-accommodation-portal/internal/storage"
)

// DashboardHandler serves the landlord dashboard: listing management,
// profile updates and proof-of-payment submissions.
type DashboardHandler struct {
	db        *database.GormDB
	store     *storage.Store
	mailer    *email.Service
	search    *search.SearchClient
	maxImages int
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(db *database.GormDB, store *storage.Store, mailer *email.Service, searchClient *search.SearchClient, maxImages int) *DashboardHandler {
	if maxImages <= 0 {
		maxImages = 3
	}
	return &DashboardHandler{db: db, store: store, mailer: mailer, search: searchClient, maxImages: maxImages}
}

// Dashboard serves the landlord's listings and aggregate stats
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	landlordID, _ := auth.UserIDFrom(c)

	accommodations, err := h.db.GetAccommodationsByLandlord(landlordID)
	if err != nil {
		log.Printf("[Dashboard] Failed to load listings for landlord %d: %v", landlordID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}

	stats, err := h.db.GetDashboardStats(landlordID)
	if err != nil {
		log.Printf("[Dashboard] Failed to load stats for landlord %d: %v", landlordID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accommodations": accommodations,
		"stats":          stats,
	})
}

// parseListingForm validates the listing fields shared by create and edit
func parseListingForm(c *gin.Context) (database.AccommodationUpdate, map[string]string) {
	fieldErrors := make(map[string]string)
	update := database.AccommodationUpdate{
		Title:       strings.TrimSpace(c.PostForm("title")),
		Description: strings.TrimSpace(c.PostForm("description")),
		RoomType:    models.RoomType(c.PostForm("room_type")),
	}

	if update.Title == "" {
		fieldErrors["title"] = "title is required"
	}
	if update.Description == "" {
		fieldErrors["description"] = "description is required"
	}
	if !models.ValidRoomType(update.RoomType) {
		fieldErrors["room_type"] = "choose a valid room type"
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price <= 0 {
		fieldErrors["price"] = "price must be a positive amount"
	}
	update.Price = price

	locationID, err := strconv.ParseUint(c.PostForm("location"), 10, 64)
	if err != nil || locationID == 0 {
		fieldErrors["location"] = "choose a location"
	}
	update.LocationID = uint(locationID)

	rooms, err := strconv.ParseUint(c.PostForm("available_rooms"), 10, 64)
	if err != nil {
		fieldErrors["available_rooms"] = "available rooms must be zero or more"
	}
	update.AvailableRooms = uint(rooms)

	return update, fieldErrors
}

// Create adds a new listing from a multipart form. The first image is
// required and becomes the primary image; new listings always start
// unapproved.
func (h *DashboardHandler) Create(c *gin.Context) {
	landlordID, _ := auth.UserIDFrom(c)

	form, fieldErrors := parseListingForm(c)

	var files []*multipartFile
	for i := 1; i <= h.maxImages; i++ {
		field := fmt.Sprintf("image_%d", i)
		fh, err := c.FormFile(field)
		if err != nil {
			if i == 1 {
				fieldErrors[field] = "at least one image is required"
			}
			continue
		}
		if err := h.store.ValidateImage(fh); err != nil {
			fieldErrors[field] = err.Error()
			continue
		}
		files = append(files, &multipartFile{field: field, header: fh})
	}

	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	imagePaths := make([]string, 0, len(files))
	for _, f := range files {
		path, err := h.store.SaveImage(f.header)
		if err != nil {
			log.Printf("[Dashboard] Failed to save upload %s: %v", f.field, err)
			h.removeFiles(imagePaths)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save images"})
			return
		}
		imagePaths = append(imagePaths, path)
	}

	accommodation := &models.Accommodation{
		LandlordID:     landlordID,
		Title:          form.Title,
		Description:    form.Description,
		RoomType:       form.RoomType,
		Price:          form.Price,
		LocationID:     form.LocationID,
		AvailableRooms: form.AvailableRooms,
	}
	if err := h.db.CreateAccommodationWithImages(accommodation, imagePaths); err != nil {
		log.Printf("[Dashboard] Failed to create listing: %v", err)
		h.removeFiles(imagePaths)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create accommodation"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"accommodation": accommodation,
		"redirect":      "/dashboard/",
		"notice":        "Accommodation created successfully! It will be visible to students after admin approval.",
	})
}

// Update applies landlord edits to an owned listing
func (h *DashboardHandler) Update(c *gin.Context) {
	landlordID, _ := auth.UserIDFrom(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Accommodation not found"})
		return
	}

	form, fieldErrors := parseListingForm(c)
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	accommodation, err := h.db.UpdateAccommodation(uint(id), landlordID, form)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Accommodation not found"})
		return
	}
	if err != nil {
		log.Printf("[Dashboard] Failed to update listing %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update accommodation"})
		return
	}

	h.syncIndex(accommodation)

	c.JSON(http.StatusOK, gin.H{
		"accommodation": accommodation,
		"redirect":      "/dashboard/",
		"notice":        "Accommodation updated successfully!",
	})
}

// DeleteConfirm serves the delete confirmation payload for an owned listing
func (h *DashboardHandler) DeleteConfirm(c *gin.Context) {
	landlordID, _ := auth.UserIDFrom(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Accommodation not found"})
		return
	}

	accommodation, err := h.db.GetOwnedAccommodation(uint(id), landlordID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Accommodation not found"})
		return
	}
	if err != nil {
		log.Printf("[Dashboard] Failed to load listing %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load accommodation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accommodation": accommodation,
		"prompt":        fmt.Sprintf("Delete %q? This cannot be undone.", accommodation.Title),
	})
}

// Delete removes an owned listing, its image rows and its image files
func (h *DashboardHandler) Delete(c *gin.Context) {
	landlordID, _ := auth.UserIDFrom(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Accommodation not found"})
		return
	}

	imagePaths, err := h.db.DeleteAccommodation(uint(id), landlordID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Accommodation not found"})
		return
	}
	if err != nil {
		log.Printf("[Dashboard] Failed to delete listing %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete accommodation"})
		return
	}

	h.removeFiles(imagePaths)
	if h.search != nil {
		if err := h.search.RemoveAccommodation(uint(id)); err != nil {
			log.Printf("[Dashboard] Failed to remove listing %d from index: %v", id, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"redirect": "/dashboard/",
		"notice":   "Accommodation deleted successfully!",
	})
}

// Preview serves an owned listing regardless of its approval state
func (h *DashboardHandler) Preview(c *gin.Context) {
	landlordID, _ := auth.UserIDFrom(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Accommodation not found"})
		return
	}

	accommodation, err := h.db.GetOwnedAccommodation(uint(id), landlordID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Accommodation not found"})
		return
	}
	if err != nil {
		log.Printf("[Dashboard] Failed to load listing %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load accommodation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accommodation": accommodation,
		"preview":       true,
	})
}

// ProfileUpdate edits the landlord's contact details
func (h *DashboardHandler) ProfileUpdate(c *gin.Context) {
	landlordID, _ := auth.UserIDFrom(c)

	var req struct {
		PhoneNumber string `json:"phone_number"`
		CompanyName string `json:"company_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.PhoneNumber != "" && len(req.PhoneNumber) < 10 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"phone_number": "enter a valid phone number"}})
		return
	}

	profile, err := h.db.UpdateLandlordProfile(landlordID, req.PhoneNumber, req.CompanyName)
	if err != nil {
		log.Printf("[Dashboard] Failed to update profile for landlord %d: %v", landlordID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
		"notice":  "Profile updated successfully!",
	})
}

// Submission forwards a proof-of-payment PDF to the site admin by email.
// Delivery is best effort: the response reports sent true or false and
// never fails the request on mailer errors.
func (h *DashboardHandler) Submission(c *gin.Context) {
	landlordID, _ := auth.UserIDFrom(c)

	fh, err := c.FormFile("pdf_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"pdf_file": "a PDF file is required"}})
		return
	}
	if err := h.store.ValidatePDF(fh); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"pdf_file": err.Error()}})
		return
	}

	pdf, err := h.store.ReadAll(fh)
	if err != nil {
		log.Printf("[Dashboard] Failed to read submission upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}

	user, err := h.db.GetUserByID(landlordID)
	if err != nil {
		log.Printf("[Dashboard] Failed to load landlord %d: %v", landlordID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load account"})
		return
	}

	sent := h.mailer.SendPDFSubmission(user, user.LandlordProfile, fh.Filename, pdf, c.PostForm("message"))
	if sent {
		c.JSON(http.StatusOK, gin.H{
			"sent":   true,
			"notice": "Submission sent. We will get back to you shortly.",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sent":  false,
		"error": "Submission could not be sent right now. Please try again later.",
	})
}

func (h *DashboardHandler) syncIndex(a *models.Accommodation) {
	if h.search == nil {
		return
	}
	if err := h.search.IndexAccommodation(a); err != nil {
		log.Printf("[Dashboard] Failed to sync listing %d to index: %v", a.ID, err)
	}
}

func (h *DashboardHandler) removeFiles(paths []string) {
	for _, p := range paths {
		if err := h.store.Remove(p); err != nil {
			log.Printf("[Dashboard] Failed to remove file %s: %v", p, err)
		}
	}
}

type multipartFile struct {
	field  string
	header *multipart.FileHeader
}
