package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimedia/agencysite/internal/infrastructure/logger"
)

func TestBuildFilename(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	testCases := []struct {
		name     string
		original string
		expected string
	}{
		{name: "simple", original: "poster.jpg", expected: "poster-1700000000123-42.jpg"},
		{name: "double extension", original: "clip.final.mp4", expected: "clip-1700000000123-42.mp4"},
		{name: "no extension", original: "README", expected: "README-1700000000123-42"},
		{name: "path stripped", original: "../../etc/passwd.png", expected: "passwd-1700000000123-42.png"},
		{name: "windows path", original: `C:\Users\me\logo.svg`, expected: "logo-1700000000123-42.svg"},
		{name: "dot file", original: ".png", expected: "image-1700000000123-42.png"},
		{name: "empty", original: "", expected: "image-1700000000123-42"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, BuildFilename(tc.original, now, 42))
		})
	}
}

func TestFolderFor(t *testing.T) {
	assert.Equal(t, "work", FolderFor("work"))
	assert.Equal(t, "skills", FolderFor("skills"))
	assert.Equal(t, "social_links", FolderFor("social_links"))
	assert.Equal(t, "misc", FolderFor("contact"))
	assert.Equal(t, "misc", FolderFor("../../etc"))
}

func TestSave(t *testing.T) {
	public := t.TempDir()
	s := NewImageStorage(public, logger.NewNop())
	require.NoError(t, s.EnsureFolders())

	stored, err := s.Save(context.Background(), "work", "poster.jpg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "work", stored.Folder)
	assert.True(t, strings.HasPrefix(stored.Path, "/images/work/poster-"))
	assert.True(t, strings.HasSuffix(stored.Filename, ".jpg"))

	content, err := os.ReadFile(filepath.Join(public, "images", "work", stored.Filename))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(content))
}

func TestSaveUnknownTypeGoesToMisc(t *testing.T) {
	public := t.TempDir()
	s := NewImageStorage(public, logger.NewNop())

	stored, err := s.Save(context.Background(), "banners", "a.png", strings.NewReader("x"))
	require.NoError(t, err)

	assert.Equal(t, "misc", stored.Folder)
	assert.True(t, strings.HasPrefix(stored.Path, "/images/misc/"))
	assert.FileExists(t, filepath.Join(public, "images", "misc", stored.Filename))
}

func TestSaveSameNameTwiceIsDistinct(t *testing.T) {
	s := NewImageStorage(t.TempDir(), logger.NewNop())
	fixed := time.UnixMilli(1700000000000)
	s.now = func() time.Time { return fixed }
	next := 0
	s.randN = func(n int) int {
		next++
		return next
	}

	first, err := s.Save(context.Background(), "skills", "icon.png", strings.NewReader("1"))
	require.NoError(t, err)
	second, err := s.Save(context.Background(), "skills", "icon.png", strings.NewReader("2"))
	require.NoError(t, err)

	assert.NotEqual(t, first.Filename, second.Filename)
	assert.NotEqual(t, first.Path, second.Path)
}

func TestWritable(t *testing.T) {
	s := NewImageStorage(t.TempDir(), logger.NewNop())
	assert.NoError(t, s.Writable())
}
