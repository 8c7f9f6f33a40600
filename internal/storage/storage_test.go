package storage_test

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"student-accommodation-portal/internal/config"
	"student-accommodation-portal/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	return storage.NewStore(config.UploadsConfig{
		MediaDir:   t.TempDir(),
		MaxImageMB: 5,
		MaxPDFMB:   10,
		MaxImages:  3,
	})
}

func header(name string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: size}
}

func TestValidateImage(t *testing.T) {
	store := newTestStore(t)

	assert.NoError(t, store.ValidateImage(header("room.jpg", 1024)))
	assert.NoError(t, store.ValidateImage(header("ROOM.PNG", 1024)))
	assert.Error(t, store.ValidateImage(header("room.gif", 1024)))
	assert.Error(t, store.ValidateImage(header("room.jpg.exe", 1024)))
	assert.Error(t, store.ValidateImage(header("huge.jpg", 6<<20)))
}

func TestValidatePDF(t *testing.T) {
	store := newTestStore(t)

	assert.NoError(t, store.ValidatePDF(header("proof.pdf", 1024)))
	assert.NoError(t, store.ValidatePDF(header("proof.pdf", 10<<20)))
	assert.Error(t, store.ValidatePDF(header("proof.docx", 1024)))
	assert.Error(t, store.ValidatePDF(header("proof.pdf", 10<<20+1)))
}

func TestSaveImageWritesUnderMediaRoot(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewStore(config.UploadsConfig{MediaDir: dir, MaxImageMB: 5, MaxPDFMB: 10})

	fh := multipartHeader(t, "image_1", "room.jpg", []byte("fake image bytes"))

	relPath, err := store.SaveImage(fh)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(relPath, "accommodations"+string(os.PathSeparator)) ||
		strings.HasPrefix(relPath, "accommodations/"))
	assert.NotContains(t, relPath, "room.jpg")

	content, err := os.ReadFile(filepath.Join(dir, relPath))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake image bytes"), content)

	require.NoError(t, store.Remove(relPath))
	_, err = os.Stat(filepath.Join(dir, relPath))
	assert.True(t, os.IsNotExist(err))
}

// multipartHeader builds a real FileHeader backed by an in-memory form
func multipartHeader(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf strings.Builder
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	reader := multipart.NewReader(strings.NewReader(buf.String()), w.Boundary())
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File[field]
	require.Len(t, files, 1)
	return files[0]
}
