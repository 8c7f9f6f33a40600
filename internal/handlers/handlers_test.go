package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"student-accommodation-portal/internal/auth"
	"student-accommodation-portal/internal/cleanup"
	"student-accommodation-portal/internal/config"
	"student-accommodation-portal/internal/database"
	"student-accommodation-portal/internal/email"
	"student-accommodation-portal/internal/handlers"
	"student-accommodation-portal/internal/models"
	"student-accommodation-portal/internal/scheduler"
	"student-accommodation-portal/internal/storage"
)

type testServer struct {
	router *gin.Engine
	gdb    *database.GormDB
	issuer *auth.TokenIssuer
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	gdb := database.NewGormDBFromDB(db)
	require.NoError(t, gdb.InitSchema())

	cfg := config.DefaultConfig()
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Uploads.MediaDir = t.TempDir()
	cfg.RateLimit.Enabled = false
	cfg.Logging.LogRequests = false

	store := storage.NewStore(cfg.Uploads)
	mailer := email.NewService(cfg.Email)
	cleanupService := cleanup.NewService(db, cfg.Uploads.MediaDir)
	sched := scheduler.NewScheduler(db, nil, cfg)

	router := handlers.SetupRouter(cfg, gdb, nil, sched, cleanupService, store, mailer)
	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())

	return &testServer{router: router, gdb: gdb, issuer: issuer}
}

func (ts *testServer) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) createUser(t *testing.T, username string, role models.Role) (*models.User, string) {
	t.Helper()
	hash, err := auth.HashPassword("sekrit-pass")
	require.NoError(t, err)

	var user *models.User
	switch role {
	case models.RoleStudent:
		user, err = ts.gdb.RegisterStudent(database.StudentRegistration{
			Username: username, PasswordHash: hash, FirstName: "Test",
		})
	case models.RoleLandlord:
		user, err = ts.gdb.RegisterLandlord(database.LandlordRegistration{
			Username: username, PasswordHash: hash,
		})
	default:
		user = &models.User{Username: username, PasswordHash: hash, Role: models.RoleAdmin}
		err = ts.gdb.DB().Create(user).Error
	}
	require.NoError(t, err)

	token, err := ts.issuer.Issue(user)
	require.NoError(t, err)
	return user, token
}

func (ts *testServer) createListing(t *testing.T, landlordID uint, mutate func(*models.Accommodation)) *models.Accommodation {
	t.Helper()
	location, err := ts.gdb.EnsureLocation("City Centre")
	require.NoError(t, err)

	a := &models.Accommodation{
		LandlordID:     landlordID,
		Title:          "Cozy room",
		Description:    "A room near campus",
		RoomType:       models.RoomTypeSingle,
		Price:          400,
		LocationID:     location.ID,
		AvailableRooms: 2,
	}
	if mutate != nil {
		mutate(a)
	}
	require.NoError(t, ts.gdb.DB().Create(a).Error)
	return a
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func TestRegisterStudentEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.request(t, http.MethodPost, "/register/student/", "", gin.H{
		"username":         "thandi",
		"first_name":       "Thandi",
		"password":         "long-enough-pass",
		"password_confirm": "long-enough-pass",
		"university":       "UCT",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	payload := decodeBody(t, w)
	assert.NotEmpty(t, payload["token"])
	assert.Equal(t, "/accommodations/", payload["redirect"])

	user, err := ts.gdb.GetUserByUsername("thandi")
	require.NoError(t, err)
	loaded, err := ts.gdb.GetUserByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.StudentProfile)
	assert.Equal(t, "UCT", loaded.StudentProfile.University)
}

func TestRegisterStudentValidation(t *testing.T) {
	ts := setupTestServer(t)
	ts.createUser(t, "taken", models.RoleStudent)

	w := ts.request(t, http.MethodPost, "/register/student/", "", gin.H{
		"username":         "taken",
		"password":         "short",
		"password_confirm": "different",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	payload := decodeBody(t, w)
	errs, ok := payload["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "password")
	assert.Contains(t, errs, "password_confirm")
	assert.Contains(t, errs, "first_name")
}

func TestRegisterLandlordEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.request(t, http.MethodPost, "/register/landlord/", "", gin.H{
		"username":         "karabo",
		"password":         "long-enough-pass",
		"password_confirm": "long-enough-pass",
		"company_name":     "Res Living",
		"title":            "Mrs",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	payload := decodeBody(t, w)
	assert.Equal(t, "/dashboard/", payload["redirect"])

	user, err := ts.gdb.GetUserByUsername("karabo")
	require.NoError(t, err)
	loaded, err := ts.gdb.GetUserByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.LandlordProfile)
	assert.Equal(t, models.LandlordTitleMrs, loaded.LandlordProfile.Title)
	assert.False(t, loaded.LandlordProfile.IsVerified)
}

func TestRoleSelection(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.request(t, http.MethodPost, "/register/", "", gin.H{"role": "landlord"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/register/landlord/", decodeBody(t, w)["redirect"])

	w = ts.request(t, http.MethodPost, "/register/", "", gin.H{"role": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterRedirectsAuthenticatedUsers(t *testing.T) {
	ts := setupTestServer(t)
	_, token := ts.createUser(t, "existing", models.RoleStudent)

	w := ts.request(t, http.MethodPost, "/register/", token, gin.H{"role": "student"})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", decodeBody(t, w)["redirect"])
}

func TestLogin(t *testing.T) {
	ts := setupTestServer(t)
	ts.createUser(t, "karabo", models.RoleLandlord)

	w := ts.request(t, http.MethodPost, "/login/", "", gin.H{
		"username": "karabo",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.request(t, http.MethodPost, "/login/", "", gin.H{
		"username": "karabo",
		"password": "sekrit-pass",
	})
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodeBody(t, w)
	assert.NotEmpty(t, payload["token"])
	assert.Equal(t, "/dashboard/", payload["redirect"])
}

func TestLandingReturnsAtMostFourFeatured(t *testing.T) {
	ts := setupTestServer(t)
	landlord, _ := ts.createUser(t, "owner", models.RoleLandlord)

	for i := 0; i < 6; i++ {
		ts.createListing(t, landlord.ID, func(a *models.Accommodation) {
			a.IsApproved = true
			a.IsFeatured = true
		})
	}

	w := ts.request(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Featured []models.Accommodation `json:"featured_accommodations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Len(t, payload.Featured, 4)
}

func TestBrowseShowsOnlyPublicListings(t *testing.T) {
	ts := setupTestServer(t)
	landlord, _ := ts.createUser(t, "owner", models.RoleLandlord)

	ts.createListing(t, landlord.ID, func(a *models.Accommodation) {
		a.Title = "Public room"
		a.IsApproved = true
	})
	ts.createListing(t, landlord.ID, func(a *models.Accommodation) {
		a.Title = "Hidden room"
	})

	w := ts.request(t, http.MethodGet, "/accommodations/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Public room")
	assert.NotContains(t, w.Body.String(), "Hidden room")
}

func TestDetailVisibility(t *testing.T) {
	ts := setupTestServer(t)
	owner, ownerToken := ts.createUser(t, "owner", models.RoleLandlord)
	_, otherToken := ts.createUser(t, "other", models.RoleLandlord)
	_, adminToken := ts.createUser(t, "admin", models.RoleAdmin)

	hidden := ts.createListing(t, owner.ID, nil)
	path := fmt.Sprintf("/accommodations/%d/", hidden.ID)

	w := ts.request(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/accommodations/", decodeBody(t, w)["redirect"])

	w = ts.request(t, http.MethodGet, path, otherToken, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = ts.request(t, http.MethodGet, path, ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.request(t, http.MethodGet, path, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	public := ts.createListing(t, owner.ID, func(a *models.Accommodation) {
		a.IsApproved = true
	})
	w = ts.request(t, http.MethodGet, fmt.Sprintf("/accommodations/%d/", public.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDetailNotFound(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.request(t, http.MethodGet, "/accommodations/9999/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardAccessControl(t *testing.T) {
	ts := setupTestServer(t)
	_, studentToken := ts.createUser(t, "student", models.RoleStudent)

	w := ts.request(t, http.MethodGet, "/dashboard/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.request(t, http.MethodGet, "/dashboard/", studentToken, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/accommodations/", decodeBody(t, w)["redirect"])
}

func TestDashboardListsOwnListingsWithStats(t *testing.T) {
	ts := setupTestServer(t)
	owner, token := ts.createUser(t, "owner", models.RoleLandlord)
	other, _ := ts.createUser(t, "other", models.RoleLandlord)

	ts.createListing(t, owner.ID, func(a *models.Accommodation) {
		a.Title = "Mine"
		a.IsApproved = true
	})
	ts.createListing(t, other.ID, func(a *models.Accommodation) {
		a.Title = "Theirs"
	})

	w := ts.request(t, http.MethodGet, "/dashboard/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Mine")
	assert.NotContains(t, w.Body.String(), "Theirs")

	var payload struct {
		Stats database.DashboardStats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, int64(1), payload.Stats.TotalListings)
	assert.Equal(t, int64(1), payload.Stats.ApprovedListings)
}

func listingForm(t *testing.T, fields map[string]string, images map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, content := range images {
		fw, err := w.CreateFormFile(field, field+".jpg")
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func validListingFields(locationID uint) map[string]string {
	return map[string]string{
		"title":           "New listing",
		"description":     "Close to everything",
		"room_type":       "double",
		"price":           "550",
		"location":        fmt.Sprintf("%d", locationID),
		"available_rooms": "3",
	}
}

func TestCreateListingForcesApprovalOff(t *testing.T) {
	ts := setupTestServer(t)
	owner, token := ts.createUser(t, "owner", models.RoleLandlord)
	location, err := ts.gdb.EnsureLocation("City Centre")
	require.NoError(t, err)

	body, contentType := listingForm(t, validListingFields(location.ID), map[string][]byte{
		"image_1": []byte("primary image"),
		"image_2": []byte("secondary image"),
	})
	req := httptest.NewRequest(http.MethodPost, "/dashboard/accommodations/", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	listings, err := ts.gdb.GetAccommodationsByLandlord(owner.ID)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.False(t, listings[0].IsApproved)
	require.Len(t, listings[0].Images, 2)
	assert.True(t, listings[0].Images[0].IsPrimary)
}

func TestCreateListingRequiresFirstImage(t *testing.T) {
	ts := setupTestServer(t)
	_, token := ts.createUser(t, "owner", models.RoleLandlord)
	location, err := ts.gdb.EnsureLocation("City Centre")
	require.NoError(t, err)

	body, contentType := listingForm(t, validListingFields(location.ID), nil)
	req := httptest.NewRequest(http.MethodPost, "/dashboard/accommodations/", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	payload := decodeBody(t, w)
	errs, ok := payload["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "image_1")
}

func TestUpdateListingOwnership(t *testing.T) {
	ts := setupTestServer(t)
	owner, _ := ts.createUser(t, "owner", models.RoleLandlord)
	_, otherToken := ts.createUser(t, "other", models.RoleLandlord)
	listing := ts.createListing(t, owner.ID, nil)

	body, contentType := listingForm(t, validListingFields(listing.LocationID), nil)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/dashboard/accommodations/%d/edit/", listing.ID), body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+otherToken)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteListing(t *testing.T) {
	ts := setupTestServer(t)
	owner, token := ts.createUser(t, "owner", models.RoleLandlord)
	listing := ts.createListing(t, owner.ID, nil)

	w := ts.request(t, http.MethodGet, fmt.Sprintf("/dashboard/accommodations/%d/delete/", listing.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "prompt")

	w = ts.request(t, http.MethodPost, fmt.Sprintf("/dashboard/accommodations/%d/delete/", listing.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, err := ts.gdb.GetAccommodationByID(listing.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPreviewIsOwnerScoped(t *testing.T) {
	ts := setupTestServer(t)
	owner, ownerToken := ts.createUser(t, "owner", models.RoleLandlord)
	_, otherToken := ts.createUser(t, "other", models.RoleLandlord)
	listing := ts.createListing(t, owner.ID, nil)
	path := fmt.Sprintf("/dashboard/accommodations/%d/preview/", listing.ID)

	w := ts.request(t, http.MethodGet, path, ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.request(t, http.MethodGet, path, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileUpdate(t *testing.T) {
	ts := setupTestServer(t)
	owner, token := ts.createUser(t, "owner", models.RoleLandlord)

	w := ts.request(t, http.MethodPost, "/dashboard/profile/", token, gin.H{
		"phone_number": "123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.request(t, http.MethodPost, "/dashboard/profile/", token, gin.H{
		"phone_number": "0123456789",
		"company_name": "Res Living",
	})
	require.Equal(t, http.StatusOK, w.Code)

	loaded, err := ts.gdb.GetUserByID(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Res Living", loaded.LandlordProfile.CompanyName)
}

func TestSubmissionReportsUnsentWithoutMailer(t *testing.T) {
	ts := setupTestServer(t)
	_, token := ts.createUser(t, "owner", models.RoleLandlord)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("pdf_file", "proof.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	require.NoError(t, w.WriteField("message", "payment attached"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/dashboard/submission/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	payload := decodeBody(t, rec)
	assert.Equal(t, false, payload["sent"])
}

func TestSubmissionRejectsNonPDF(t *testing.T) {
	ts := setupTestServer(t)
	_, token := ts.createUser(t, "owner", models.RoleLandlord)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("pdf_file", "proof.docx")
	require.NoError(t, err)
	_, err = fw.Write([]byte("not a pdf"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/dashboard/submission/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContentPages(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.request(t, http.MethodGet, "/terms/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, err := ts.gdb.UpsertContent(models.ContentTypeTerms, "Terms", "<p>Read carefully</p>", true)
	require.NoError(t, err)

	w = ts.request(t, http.MethodGet, "/terms/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Read carefully")
}

func TestSEOPages(t *testing.T) {
	ts := setupTestServer(t)

	region, err := ts.gdb.EnsureRegion("Western Cape")
	require.NoError(t, err)
	_, err = ts.gdb.EnsureSubregion(region.ID, "Cape Town")
	require.NoError(t, err)

	w := ts.request(t, http.MethodGet, "/western-cape/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Western Cape")

	w = ts.request(t, http.MethodGet, "/WESTERN-CAPE/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.request(t, http.MethodGet, "/western-cape/cape-town/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cape Town")

	w = ts.request(t, http.MethodGet, "/nowhere/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	ts := setupTestServer(t)
	_, landlordToken := ts.createUser(t, "owner", models.RoleLandlord)

	w := ts.request(t, http.MethodGet, "/api/admin/stats", landlordToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.request(t, http.MethodGet, "/api/admin/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminApproveAndFeature(t *testing.T) {
	ts := setupTestServer(t)
	owner, _ := ts.createUser(t, "owner", models.RoleLandlord)
	_, adminToken := ts.createUser(t, "admin", models.RoleAdmin)
	listing := ts.createListing(t, owner.ID, nil)

	w := ts.request(t, http.MethodPost, fmt.Sprintf("/api/admin/accommodations/%d/approve", listing.ID), adminToken, gin.H{"approved": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.request(t, http.MethodPost, fmt.Sprintf("/api/admin/accommodations/%d/feature", listing.ID), adminToken, gin.H{"featured": true})
	require.Equal(t, http.StatusOK, w.Code)

	loaded, err := ts.gdb.GetAccommodationByID(listing.ID)
	require.NoError(t, err)
	assert.True(t, loaded.IsApproved)
	assert.True(t, loaded.IsFeatured)

	w = ts.request(t, http.MethodPost, "/api/admin/accommodations/9999/approve", adminToken, gin.H{"approved": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminVerifyLandlord(t *testing.T) {
	ts := setupTestServer(t)
	owner, _ := ts.createUser(t, "owner", models.RoleLandlord)
	_, adminToken := ts.createUser(t, "admin", models.RoleAdmin)

	w := ts.request(t, http.MethodPost, fmt.Sprintf("/api/admin/landlords/%d/verify", owner.ID), adminToken, gin.H{"verified": true})
	require.Equal(t, http.StatusOK, w.Code)

	loaded, err := ts.gdb.GetUserByID(owner.ID)
	require.NoError(t, err)
	assert.True(t, loaded.LandlordProfile.IsVerified)
}

func TestAdminUpsertContent(t *testing.T) {
	ts := setupTestServer(t)
	_, adminToken := ts.createUser(t, "admin", models.RoleAdmin)

	w := ts.request(t, http.MethodPut, "/api/admin/content/about", adminToken, gin.H{
		"title":   "About Us",
		"content": "<p>Who we are</p>",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.request(t, http.MethodGet, "/about/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Who we are")

	w = ts.request(t, http.MethodPut, "/api/admin/content/bogus", adminToken, gin.H{
		"title":   "x",
		"content": "y",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminStats(t *testing.T) {
	ts := setupTestServer(t)
	owner, _ := ts.createUser(t, "owner", models.RoleLandlord)
	ts.createUser(t, "student", models.RoleStudent)
	_, adminToken := ts.createUser(t, "admin", models.RoleAdmin)
	ts.createListing(t, owner.ID, func(a *models.Accommodation) {
		a.IsApproved = true
	})

	w := ts.request(t, http.MethodGet, "/api/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := w.Body.String()
	assert.Contains(t, body, "listings")
	assert.Contains(t, body, "users_by_role")
	assert.Contains(t, body, "price_distribution")
}

func TestAdminRateLimitStats(t *testing.T) {
	ts := setupTestServer(t)
	_, adminToken := ts.createUser(t, "admin", models.RoleAdmin)

	w := ts.request(t, http.MethodGet, "/api/admin/ratelimit", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"enabled":false`)
}

func TestSearchAPIDisabledWithoutClient(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.request(t, http.MethodGet, "/api/search?q=room", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	// Full filter set still parses before the availability check.
	w = ts.request(t, http.MethodGet, "/api/search?q=room&room_type=single&location=2&price_range=300-500&limit=5", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestLogout(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.request(t, http.MethodPost, "/logout/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/", decodeBody(t, w)["redirect"])
}
