package storage

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/unimedia/agencysite/internal/infrastructure/logger"
	"github.com/unimedia/agencysite/internal/ports"
)

const (
	imagesDir    = "images"
	miscFolder   = "misc"
	randomSuffix = 1000000000
)

// ImageFolders are the upload folders created under the public images root.
var ImageFolders = []string{"work", "skills", "social_links", miscFolder}

// ImageStorageImpl writes uploads to <publicDir>/images/<folder>/
type ImageStorageImpl struct {
	root   string
	logger *logger.Logger
	now    func() time.Time
	randN  func(n int) int
}

// NewImageStorage creates an image storage under publicDir
func NewImageStorage(publicDir string, appLogger *logger.Logger) *ImageStorageImpl {
	return &ImageStorageImpl{
		root:   filepath.Join(publicDir, imagesDir),
		logger: appLogger.WithComponent("image_storage"),
		now:    time.Now,
		randN:  rand.Intn,
	}
}

var _ ports.ImageStorage = (*ImageStorageImpl)(nil)

// Root returns the directory served at /images
func (s *ImageStorageImpl) Root() string {
	return s.root
}

// EnsureFolders creates every upload folder
func (s *ImageStorageImpl) EnsureFolders() error {
	for _, folder := range ImageFolders {
		dir := filepath.Join(s.root, folder)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create image folder %s: %w", dir, err)
		}
	}
	return nil
}

// FolderFor maps an upload type to its folder. Unknown types land in misc.
func FolderFor(uploadType string) string {
	for _, folder := range ImageFolders {
		if folder == uploadType {
			return folder
		}
	}
	return miscFolder
}

// Save stores src under the folder for uploadType with a generated file name
func (s *ImageStorageImpl) Save(ctx context.Context, uploadType, originalName string, src io.Reader) (*ports.StoredImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	folder := FolderFor(uploadType)
	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image folder %s: %w", dir, err)
	}

	filename := BuildFilename(originalName, s.now(), s.randN(randomSuffix))
	dst := filepath.Join(dir, filename)

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create image %s: %w", dst, err)
	}

	written, err := io.Copy(f, src)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(dst)
		return nil, fmt.Errorf("write image %s: %w", dst, err)
	}

	s.logger.Infow("Image stored", "folder", folder, "filename", filename, "bytes", written)

	return &ports.StoredImage{
		Folder:   folder,
		Path:     path.Join("/", imagesDir, folder, filename),
		Filename: filename,
	}, nil
}

// Writable checks that the images root accepts new files
func (s *ImageStorageImpl) Writable() error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(s.root, ".writecheck-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

// BuildFilename returns <base>-<unix ms>-<suffix>.<ext> for a client supplied file name.
// base is the name up to its first dot and ext the text after its last dot.
func BuildFilename(originalName string, now time.Time, suffix int) string {
	name := filepath.Base(strings.ReplaceAll(originalName, "\\", "/"))
	if name == "." || name == "/" {
		name = ""
	}

	base := name
	ext := ""
	if i := strings.Index(name, "."); i >= 0 {
		base = name[:i]
		ext = name[strings.LastIndex(name, ".")+1:]
	}
	if base == "" {
		base = "image"
	}

	filename := fmt.Sprintf("%s-%d-%d", base, now.UnixMilli(), suffix)
	if ext != "" {
		filename += "." + ext
	}
	return filename
}
