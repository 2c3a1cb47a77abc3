package photostore

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *DiskStorage {
	t.Helper()
	s, err := NewDiskStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)
	return s
}

func TestSave_NamesFileWithTimestampPrefix(t *testing.T) {
	s := newTestStorage(t)

	path, err := s.Save(context.Background(), "front door.jpg", "image/jpeg", 4, strings.NewReader("jpeg"))
	require.NoError(t, err)

	// "/uploads/<millis>-front_door.jpg"
	assert.Regexp(t, regexp.MustCompile(`^/uploads/\d+-front_door\.jpg$`), path)

	data, err := os.ReadFile(filepath.Join(s.Dir(), filepath.Base(path)))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
}

func TestSave_RejectsNonImage(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Save(context.Background(), "notes.txt", "text/plain", 5, strings.NewReader("hello"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only image files are allowed")
}

func TestSave_RejectsOversizedDeclaredFile(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Save(context.Background(), "big.jpg", "image/jpeg", MaxPhotoSize+1, strings.NewReader("x"))
	assert.Error(t, err)
}

func TestSave_StripsPathFromOriginalName(t *testing.T) {
	s := newTestStorage(t)

	path, err := s.Save(context.Background(), "../../etc/passwd.png", "image/png", 3, strings.NewReader("png"))
	require.NoError(t, err)
	assert.NotContains(t, path, "..")
	assert.Regexp(t, regexp.MustCompile(`^/uploads/\d+-passwd\.png$`), path)
}

func TestSave_DuplicateNamesGetDistinctFiles(t *testing.T) {
	s := newTestStorage(t)

	first, err := s.Save(context.Background(), "front.jpg", "image/jpeg", 1, strings.NewReader("a"))
	require.NoError(t, err)
	second, err := s.Save(context.Background(), "front.jpg", "image/jpeg", 1, strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestRemove_DeletesFile(t *testing.T) {
	s := newTestStorage(t)

	path, err := s.Save(context.Background(), "front.jpg", "image/jpeg", 4, strings.NewReader("jpeg"))
	require.NoError(t, err)

	require.NoError(t, s.Remove(context.Background(), path))

	_, err = os.Stat(filepath.Join(s.Dir(), filepath.Base(path)))
	assert.True(t, os.IsNotExist(err))
}

func TestRemove_MissingFileIsNotAnError(t *testing.T) {
	s := newTestStorage(t)
	assert.NoError(t, s.Remove(context.Background(), "/uploads/1756708800000-gone.jpg"))
}
