package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"student-accommodation-portal/internal/cleanup"
	"student-accommodation-portal/internal/config"
	"student-accommodation-portal/internal/models"
	"student-accommodation-portal/internal/search"
)

// Scheduler runs the nightly maintenance jobs: a full reindex of the
// search engine and a sweep of orphaned media files. Request handling
// never depends on these jobs; they only reconcile derived state.
type Scheduler struct {
	cron      *cron.Cron
	db        *gorm.DB
	search    *search.SearchClient
	cleanup   *cleanup.Service
	config    *config.Config
	isRunning bool
}

// NewScheduler creates a new scheduler
func NewScheduler(db *gorm.DB, searchClient *search.SearchClient, cfg *config.Config) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		db:      db,
		search:  searchClient,
		cleanup: cleanup.NewService(db, cfg.Uploads.MediaDir),
		config:  cfg,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	if !s.config.Scheduler.DailyRunEnabled {
		log.Println("Scheduler: Daily run is disabled in configuration")
		return nil
	}

	cronSpec := s.parseDailyRunTime(s.config.Scheduler.DailyRunTime)

	_, err := s.cron.AddFunc(cronSpec, func() {
		log.Println("Scheduler: Starting daily maintenance job...")
		if err := s.runDailyMaintenance(); err != nil {
			log.Printf("Scheduler: Daily maintenance failed: %v", err)
		} else {
			log.Println("Scheduler: Daily maintenance completed successfully")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Scheduler: Started with daily run at %s (cron: %s)", s.config.Scheduler.DailyRunTime, cronSpec)

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		log.Println("Scheduler: Stopped")
	}
}

// runDailyMaintenance reindexes public listings and sweeps orphaned media
func (s *Scheduler) runDailyMaintenance() error {
	if err := s.Reindex(); err != nil {
		return err
	}

	result, err := s.cleanup.SweepOrphanedFiles(cleanup.DefaultCleanupConfig())
	if err != nil {
		return err
	}
	log.Printf("Scheduler: Media sweep deleted %d/%d orphaned files",
		result.DeletedCount, result.TargetCount)
	return nil
}

// Reindex rebuilds the search index from the publicly listed accommodations
func (s *Scheduler) Reindex() error {
	if s.search == nil {
		log.Println("Scheduler: No search client configured, skipping reindex")
		return nil
	}

	var accommodations []models.Accommodation
	err := s.db.Preload("Location").
		Where("is_approved = ? AND available_rooms > 0", true).
		Find(&accommodations).Error
	if err != nil {
		return fmt.Errorf("failed to load public listings: %w", err)
	}

	if err := s.search.ClearIndex(); err != nil {
		return fmt.Errorf("failed to clear search index: %w", err)
	}
	if err := s.search.IndexAccommodations(accommodations); err != nil {
		return fmt.Errorf("failed to index listings: %w", err)
	}

	log.Printf("Scheduler: Reindexed %d public listings", len(accommodations))
	return nil
}

// RunNow immediately executes the maintenance job (for manual trigger)
func (s *Scheduler) RunNow() error {
	log.Println("Scheduler: Manual trigger - starting maintenance job...")
	return s.runDailyMaintenance()
}

// parseDailyRunTime converts HH:MM format to cron specification
// Example: "03:00" -> "0 3 * * *" (run at 3:00 AM every day)
func (s *Scheduler) parseDailyRunTime(timeStr string) string {
	var hour, minute int
	n, _ := fmt.Sscanf(timeStr, "%d:%d", &hour, &minute)
	if n == 2 {
		return fmt.Sprintf("%d %d * * *", minute, hour)
	}

	// Default to 3:00 AM if parsing fails
	log.Printf("Scheduler: Failed to parse time '%s', using default 03:00", timeStr)
	return "0 3 * * *"
}
