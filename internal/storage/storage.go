package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"student-accommodation-portal/internal/config"
)

// Subdirectories under the media root
const (
	accommodationsPrefix = "accommodations"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Store saves uploaded files under the configured media directory
type Store struct {
	mediaDir      string
	maxImageBytes int64
	maxPDFBytes   int64
}

// NewStore creates a media store from the uploads configuration
func NewStore(cfg config.UploadsConfig) *Store {
	return &Store{
		mediaDir:      cfg.MediaDir,
		maxImageBytes: cfg.MaxImageBytes(),
		maxPDFBytes:   cfg.MaxPDFBytes(),
	}
}

// MediaDir returns the media root path
func (s *Store) MediaDir() string {
	return s.mediaDir
}

// ValidateImage checks extension and size of an uploaded listing image
func (s *Store) ValidateImage(fh *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !imageExtensions[ext] {
		return fmt.Errorf("unsupported image type %q", ext)
	}
	if fh.Size > s.maxImageBytes {
		return fmt.Errorf("image exceeds %d MB limit", s.maxImageBytes>>20)
	}
	return nil
}

// ValidatePDF checks extension and the 10MB ceiling of a PDF submission
func (s *Store) ValidatePDF(fh *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".pdf" {
		return fmt.Errorf("only PDF files are accepted, got %q", ext)
	}
	if fh.Size > s.maxPDFBytes {
		return fmt.Errorf("file exceeds %d MB limit", s.maxPDFBytes>>20)
	}
	return nil
}

// SaveImage validates and stores a listing image, returning the stored
// path relative to the media root. Stored names are random so uploads
// can never collide or traverse.
func (s *Store) SaveImage(fh *multipart.FileHeader) (string, error) {
	if err := s.ValidateImage(fh); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	relPath := filepath.Join(accommodationsPrefix, uuid.NewString()+ext)
	if err := s.save(fh, relPath); err != nil {
		return "", err
	}
	return relPath, nil
}

// ReadAll returns the full content of an upload, used for mail attachments
func (s *Store) ReadAll(fh *multipart.FileHeader) ([]byte, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// Remove deletes a stored file by its media-relative path
func (s *Store) Remove(relPath string) error {
	return os.Remove(filepath.Join(s.mediaDir, relPath))
}

func (s *Store) save(fh *multipart.FileHeader, relPath string) error {
	dst := filepath.Join(s.mediaDir, relPath)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create media directory: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return fmt.Errorf("failed to write upload: %w", err)
	}
	return nil
}
