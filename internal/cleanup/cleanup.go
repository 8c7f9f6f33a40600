package cleanup

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	"student-accommodation-portal/internal/models"
)

// Service deletes media files that no longer back any image row.
// Listing deletion cascades through the image table inside the request,
// but files on disk are swept here afterwards.
type Service struct {
	db       *gorm.DB
	mediaDir string
}

// NewService creates a new cleanup service
func NewService(db *gorm.DB, mediaDir string) *Service {
	return &Service{db: db, mediaDir: mediaDir}
}

// CleanupConfig holds configuration for cleanup operations
type CleanupConfig struct {
	MaxDeletionCount int  // Maximum number of files to delete in one run (safety limit)
	DryRun           bool // If true, only log what would be deleted without actually deleting
}

// DefaultCleanupConfig returns default configuration
func DefaultCleanupConfig() CleanupConfig {
	return CleanupConfig{
		MaxDeletionCount: 1000,
		DryRun:           false,
	}
}

// CleanupResult holds the result of a cleanup operation
type CleanupResult struct {
	TargetCount  int       `json:"target_count"`  // Number of files eligible for deletion
	DeletedCount int       `json:"deleted_count"` // Number of files actually deleted
	SkippedCount int       `json:"skipped_count"` // Number of files skipped
	ErrorCount   int       `json:"error_count"`   // Number of errors encountered
	DryRun       bool      `json:"dry_run"`       // Whether this was a dry run
	ExecutedAt   time.Time `json:"executed_at"`   // When the cleanup was executed
	DeletedFiles []string  `json:"deleted_files"` // Media-relative paths of deleted files
	Errors       []string  `json:"errors,omitempty"`
}

// FindOrphanedFiles returns media-relative paths of files under the
// accommodations media prefix that no image row references.
func (s *Service) FindOrphanedFiles() ([]string, error) {
	var paths []string
	err := s.db.Model(&models.AccommodationImage{}).Pluck("image_path", &paths).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list image rows: %w", err)
	}

	referenced := make(map[string]bool, len(paths))
	for _, p := range paths {
		referenced[filepath.Clean(p)] = true
	}

	root := filepath.Join(s.mediaDir, "accommodations")
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var orphaned []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(s.mediaDir, path)
		if err != nil {
			return err
		}
		if !referenced[filepath.Clean(rel)] {
			orphaned = append(orphaned, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk media directory: %w", err)
	}

	log.Printf("[Cleanup] found %d orphaned media files", len(orphaned))
	return orphaned, nil
}

// SweepOrphanedFiles removes orphaned media files from disk
func (s *Service) SweepOrphanedFiles(config CleanupConfig) (*CleanupResult, error) {
	result := &CleanupResult{
		DryRun:     config.DryRun,
		ExecutedAt: time.Now(),
	}

	orphaned, err := s.FindOrphanedFiles()
	if err != nil {
		return nil, err
	}
	result.TargetCount = len(orphaned)

	for _, rel := range orphaned {
		if config.MaxDeletionCount > 0 && result.DeletedCount >= config.MaxDeletionCount {
			result.SkippedCount++
			continue
		}

		if config.DryRun {
			log.Printf("[Cleanup] dry-run: would delete %s", rel)
			result.DeletedCount++
			result.DeletedFiles = append(result.DeletedFiles, rel)
			continue
		}

		if err := os.Remove(filepath.Join(s.mediaDir, rel)); err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rel, err))
			continue
		}
		result.DeletedCount++
		result.DeletedFiles = append(result.DeletedFiles, rel)
	}

	log.Printf("[Cleanup] sweep complete: %d/%d deleted (dry-run: %v)",
		result.DeletedCount, result.TargetCount, result.DryRun)
	return result, nil
}
