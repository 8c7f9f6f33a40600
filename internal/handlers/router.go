package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"student-accommodation-portal/internal/auth"
	"student-accommodation-portal/internal/cleanup"
	"student-accommodation-portal/internal/config"
	"student-accommodation-portal/internal/database"
	"student-accommodation-portal/internal/email"
	"student-accommodation-portal/internal/ratelimit"
	"student-accommodation-portal/internal/scheduler"
	"student-accommodation-portal/internal/search"
	"student-accommodation-portal/internal/storage"
)

// rateLimitMiddleware guards the abuse-prone endpoints with the shared
// sliding-window limiter.
func rateLimitMiddleware(limiter *ratelimit.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.AllowRequest() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, slow down"})
			return
		}
		c.Next()
	}
}

// SetupRouter wires the full HTTP surface
func SetupRouter(cfg *config.Config, db *database.GormDB, searchClient *search.SearchClient, sched *scheduler.Scheduler, cleanupService *cleanup.Service, store *storage.Store, mailer *email.Service) *gin.Engine {
	r := gin.New()
	if cfg.Logging.LogRequests {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	authMW := auth.NewMiddleware(issuer)
	limiter := ratelimit.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.RequestsPerHour, cfg.RateLimit.Enabled)

	authHandler := NewAuthHandler(db, issuer, cfg.Auth.MinPasswordLen)
	listings := NewListingHandler(db, searchClient)
	content := NewContentHandler(db)
	seo := NewSEOHandler(db)
	dashboard := NewDashboardHandler(db, store, mailer, searchClient, cfg.Uploads.MaxImages)
	admin := NewAdminHandler(db, searchClient, sched, cleanupService, limiter)

	r.Static("/media", store.MediaDir())

	public := r.Group("/", authMW.Optional())
	{
		public.GET("/", listings.Landing)
		public.GET("/accommodations/", listings.List)
		public.GET("/accommodations/:id/", listings.Detail)
		public.GET("/api/search", listings.Search)

		public.GET("/terms/", content.Terms)
		public.GET("/privacy/", content.Privacy)
		public.GET("/about/", content.About)
		public.GET("/safety/", content.Safety)

		public.GET("/:region/", seo.Region)
		public.GET("/:region/:subregion/", seo.Subregion)
	}

	guarded := r.Group("/", authMW.Optional(), rateLimitMiddleware(limiter))
	{
		guarded.POST("/register/", authHandler.SelectRole)
		guarded.POST("/register/student/", authHandler.RegisterStudent)
		guarded.POST("/register/landlord/", authHandler.RegisterLandlord)
		guarded.POST("/login/", authHandler.Login)
	}
	r.POST("/logout/", authHandler.Logout)

	d := r.Group("/dashboard", authMW.Required(), authMW.LandlordOnly())
	{
		d.GET("/", dashboard.Dashboard)
		d.POST("/accommodations/", dashboard.Create)
		d.POST("/accommodations/:id/edit/", dashboard.Update)
		d.GET("/accommodations/:id/delete/", dashboard.DeleteConfirm)
		d.POST("/accommodations/:id/delete/", dashboard.Delete)
		d.GET("/accommodations/:id/preview/", dashboard.Preview)
		d.POST("/profile/", dashboard.ProfileUpdate)
		d.POST("/submission/", rateLimitMiddleware(limiter), dashboard.Submission)
	}

	a := r.Group("/api/admin", authMW.Required(), authMW.AdminOnly())
	{
		a.POST("/accommodations/:id/approve", admin.Approve)
		a.POST("/accommodations/:id/feature", admin.Feature)
		a.POST("/landlords/:user_id/verify", admin.VerifyLandlord)
		a.GET("/stats", admin.Stats)
		a.PUT("/content/:type", admin.UpsertContent)
		a.POST("/locations", admin.CreateLocation)
		a.POST("/regions", admin.CreateRegion)
		a.POST("/regions/:id/subregions", admin.CreateSubregion)
		a.POST("/search/reindex", admin.Reindex)
		a.POST("/cleanup/run", admin.RunCleanup)
		a.GET("/ratelimit", admin.RateLimitStats)
	}

	return r
}
