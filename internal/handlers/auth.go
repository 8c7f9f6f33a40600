package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"student-accommodation-portal/internal/auth"
	"student-accommodation-portal/internal/database"
	"student-accommodation-portal/internal/models"
)

// AuthHandler serves registration, login and logout
type AuthHandler struct {
	db             *database.GormDB
	issuer         *auth.TokenIssuer
	minPasswordLen int
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *database.GormDB, issuer *auth.TokenIssuer, minPasswordLen int) *AuthHandler {
	if minPasswordLen <= 0 {
		minPasswordLen = 8
	}
	return &AuthHandler{db: db, issuer: issuer, minPasswordLen: minPasswordLen}
}

// redirectAuthenticated sends an already signed-in caller away from the
// registration entry points with no side effects. Returns true when the
// request was handled.
func (h *AuthHandler) redirectAuthenticated(c *gin.Context) bool {
	if _, ok := auth.UserIDFrom(c); ok {
		c.JSON(http.StatusSeeOther, gin.H{"redirect": "/"})
		return true
	}
	return false
}

// SelectRole handles the first registration step: choosing a role
func (h *AuthHandler) SelectRole(c *gin.Context) {
	if h.redirectAuthenticated(c) {
		return
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"role": "role is required"}})
		return
	}

	switch models.Role(req.Role) {
	case models.RoleStudent:
		c.JSON(http.StatusOK, gin.H{"redirect": "/register/student/"})
	case models.RoleLandlord:
		c.JSON(http.StatusOK, gin.H{"redirect": "/register/landlord/"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"role": "choose student or landlord"}})
	}
}

type studentRegistrationRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	PhoneNumber     string `json:"phone_number"`
	University      string `json:"university"`
}

type landlordRegistrationRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	Title           string `json:"title"`
	PhoneNumber     string `json:"phone_number"`
	CompanyName     string `json:"company_name"`
}

// validateCredentials collects the field errors shared by both signup forms
func (h *AuthHandler) validateCredentials(username, password, passwordConfirm string, fieldErrors map[string]string) {
	if username == "" {
		fieldErrors["username"] = "username is required"
	} else if taken, err := h.db.UsernameTaken(username); err == nil && taken {
		fieldErrors["username"] = "username is already taken"
	}
	if len(password) < h.minPasswordLen {
		fieldErrors["password"] = "password is too short"
	}
	if password != passwordConfirm {
		fieldErrors["password_confirm"] = "passwords do not match"
	}
}

// RegisterStudent creates a student account with its profile
func (h *AuthHandler) RegisterStudent(c *gin.Context) {
	if h.redirectAuthenticated(c) {
		return
	}

	var req studentRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fieldErrors := make(map[string]string)
	h.validateCredentials(req.Username, req.Password, req.PasswordConfirm, fieldErrors)
	if req.FirstName == "" {
		fieldErrors["first_name"] = "first name is required"
	}
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	user, err := h.db.RegisterStudent(database.StudentRegistration{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		University:   req.University,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	token, err := h.issuer.Issue(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to establish session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":    token,
		"user":     user,
		"redirect": "/accommodations/",
		"notice":   "Student account created successfully! Start browsing accommodations.",
	})
}

// RegisterLandlord creates a landlord account with its profile
func (h *AuthHandler) RegisterLandlord(c *gin.Context) {
	if h.redirectAuthenticated(c) {
		return
	}

	var req landlordRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fieldErrors := make(map[string]string)
	h.validateCredentials(req.Username, req.Password, req.PasswordConfirm, fieldErrors)
	if req.Title != "" && !models.ValidLandlordTitle(models.LandlordTitle(req.Title)) {
		fieldErrors["title"] = "choose a valid title"
	}
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	user, err := h.db.RegisterLandlord(database.LandlordRegistration{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Title:        models.LandlordTitle(req.Title),
		PhoneNumber:  req.PhoneNumber,
		CompanyName:  req.CompanyName,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	token, err := h.issuer.Issue(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to establish session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":    token,
		"user":     user,
		"redirect": "/dashboard/",
		"notice": "Landlord account created successfully! You can now list your accommodations. " +
			"Note: All listings require admin approval before being publicly visible.",
	})
}

// Login exchanges credentials for a session token
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.db.GetUserByUsername(req.Username)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !auth.CheckPasswordHash(req.Password, user.PasswordHash)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign in"})
		return
	}

	token, err := h.issuer.Issue(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to establish session"})
		return
	}

	redirect := "/accommodations/"
	if user.IsLandlord() {
		redirect = "/dashboard/"
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"user":     user,
		"redirect": redirect,
	})
}

// Logout acknowledges a sign-out. Tokens are stateless; the client
// discards its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"redirect": "/",
		"notice":   "Signed out.",
	})
}
