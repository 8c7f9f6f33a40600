package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"student-accommodation-portal/internal/auth"
	"student-accommodation-portal/internal/config"
	"student-accommodation-portal/internal/database"
	"student-accommodation-portal/internal/models"
)

var locations = []string{
	"City Centre",
	"North Campus",
	"South Campus",
	"Riverside",
	"West End",
}

var regions = map[string][]string{
	"Gauteng":      {"Johannesburg", "Pretoria", "Soweto"},
	"Western Cape": {"Cape Town", "Stellenbosch"},
	"KwaZulu-Natal": {"Durban", "Pietermaritzburg"},
}

var contentPages = []models.SiteContent{
	{ContentType: models.ContentTypeTerms, Title: "Terms and Conditions", Content: "<p>Placeholder terms. Edit via the admin API.</p>"},
	{ContentType: models.ContentTypePrivacy, Title: "Privacy Policy", Content: "<p>Placeholder privacy policy. Edit via the admin API.</p>"},
	{ContentType: models.ContentTypeAbout, Title: "About Us", Content: "<p>Placeholder about page. Edit via the admin API.</p>"},
	{ContentType: models.ContentTypeSafety, Title: "Safety Tips", Content: "<p>Placeholder safety tips. Edit via the admin API.</p>"},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on the environment")
	}

	configPath := getEnv("CONFIG_PATH", "config/portal.yaml")
	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config from %s: %v. Using defaults.", configPath, err)
		appConfig = config.DefaultConfig()
	}

	gormDB, err := connect(appConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer gormDB.Close()

	if err := gormDB.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	for _, name := range locations {
		if _, err := gormDB.EnsureLocation(name); err != nil {
			log.Fatalf("Failed to seed location %q: %v", name, err)
		}
	}
	log.Printf("[Seed] Ensured %d locations", len(locations))

	for regionName, subregionNames := range regions {
		region, err := gormDB.EnsureRegion(regionName)
		if err != nil {
			log.Fatalf("Failed to seed region %q: %v", regionName, err)
		}
		for _, subName := range subregionNames {
			if _, err := gormDB.EnsureSubregion(region.ID, subName); err != nil {
				log.Fatalf("Failed to seed subregion %q: %v", subName, err)
			}
		}
	}
	log.Printf("[Seed] Ensured %d regions", len(regions))

	seeded := 0
	for _, page := range contentPages {
		_, err := gormDB.GetActiveContent(page.ContentType)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if _, err := gormDB.UpsertContent(page.ContentType, page.Title, page.Content, true); err != nil {
				log.Fatalf("Failed to seed %s content: %v", page.ContentType, err)
			}
			seeded++
		} else if err != nil {
			log.Fatalf("Failed to check %s content: %v", page.ContentType, err)
		}
	}
	log.Printf("[Seed] Created %d content pages", seeded)

	if err := seedAdmin(gormDB); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	log.Println("[Seed] Done")
}

// seedAdmin creates the admin account named by ADMIN_USERNAME when it
// does not exist yet. Skipped when the variables are unset.
func seedAdmin(gormDB *database.GormDB) error {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Println("[Seed] ADMIN_USERNAME/ADMIN_PASSWORD unset, skipping admin account")
		return nil
	}

	taken, err := gormDB.UsernameTaken(username)
	if err != nil {
		return err
	}
	if taken {
		log.Printf("[Seed] Admin account %q already exists", username)
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username:     username,
		Email:        os.Getenv("ADMIN_EMAIL"),
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := gormDB.DB().Create(admin).Error; err != nil {
		return err
	}
	log.Printf("[Seed] Created admin account %q", username)
	return nil
}

func connect(appConfig *config.Config) (*database.GormDB, error) {
	dbType := appConfig.Database.Type
	if dbType == "" {
		dbType = getEnv("DB_TYPE", "postgres")
	}

	if dbType == "mysql" {
		mysqlCfg := appConfig.Database.MySQL
		portStr := ""
		if mysqlCfg.Port > 0 {
			portStr = fmt.Sprintf("%d", mysqlCfg.Port)
		}
		return database.NewMySQLDB(
			getEnvOrConfig(mysqlCfg.Host, "DB_HOST", "mysql"),
			getEnvOrConfig(portStr, "DB_PORT", "3306"),
			getEnvOrConfig(mysqlCfg.User, "DB_USER", "portal_user"),
			getEnvOrConfig(mysqlCfg.Password, "DB_PASSWORD", "portal_pass"),
			getEnvOrConfig(mysqlCfg.Database, "DB_NAME", "portal_db"),
		)
	}

	pgCfg := appConfig.Database.Postgres
	portStr := ""
	if pgCfg.Port > 0 {
		portStr = fmt.Sprintf("%d", pgCfg.Port)
	}
	return database.NewPostgresDB(
		getEnvOrConfig(pgCfg.Host, "DB_HOST", "db"),
		getEnvOrConfig(portStr, "DB_PORT", "5432"),
		getEnvOrConfig(pgCfg.User, "DB_USER", "portal_user"),
		getEnvOrConfig(pgCfg.Password, "DB_PASSWORD", "portal_pass"),
		getEnvOrConfig(pgCfg.Database, "DB_NAME", "portal_db"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvOrConfig(configValue, envKey, fallback string) string {
	if configValue != "" {
		return configValue
	}
	return getEnv(envKey, fallback)
}
