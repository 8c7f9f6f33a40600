package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"student-accommodation-portal/internal/database"
	"student-accommodation-portal/internal/models"
)

// ContentHandler serves the static site pages
type ContentHandler struct {
	db *database.GormDB
}

// NewContentHandler creates a new content handler
func NewContentHandler(db *database.GormDB) *ContentHandler {
	return &ContentHandler{db: db}
}

func (h *ContentHandler) page(c *gin.Context, contentType models.ContentType) {
	content, err := h.db.GetActiveContent(contentType)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}
	if err != nil {
		log.Printf("[Content] Failed to load %s page: %v", contentType, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"content": content})
}

// Terms serves the terms and conditions page
func (h *ContentHandler) Terms(c *gin.Context) {
	h.page(c, models.ContentTypeTerms)
}

// Privacy serves the privacy policy page
func (h *ContentHandler) Privacy(c *gin.Context) {
	h.page(c, models.ContentTypePrivacy)
}

// About serves the about page
func (h *ContentHandler) About(c *gin.Context) {
	h.page(c, models.ContentTypeAbout)
}

// Safety serves the safety tips page
func (h *ContentHandler) Safety(c *gin.Context) {
	h.page(c, models.ContentTypeSafety)
}
