// Package image loads firmware images from disk.
//
// A path ending in .zip is treated as a vendor download: the first archive
// entry that looks like a firmware image is read into memory. Any other path
// is read as is.
package image

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"
	"go.uber.org/zap"

	"github.com/am5tools/smucheck/internal/logging"
)

// skippedSuffixes are archive entries that never hold a firmware image.
var skippedSuffixes = []string{"/", ".txt", ".ini", ".bat", ".exe"}

// errFound stops the archive walk once an image was read.
var errFound = errors.New("image found")

// Image is a firmware image held in memory.
type Image struct {
	// Name is the file name shown to the user (the entry name for archives)
	Name string
	// Path is the file that was opened
	Path string
	// Data is the full image
	Data []byte
	// FromArchive is true when the image came out of a zip file
	FromArchive bool
}

// Size returns the image length in bytes.
func (img *Image) Size() int {
	return len(img.Data)
}

// IsArchive reports whether path is handled as a zip archive.
func IsArchive(p string) bool {
	return strings.EqualFold(filepath.Ext(p), ".zip")
}

// Eligible reports whether an archive entry may hold the firmware image.
func Eligible(name string, isDir bool) bool {
	if isDir || name == "" {
		return false
	}
	lower := strings.ToLower(name)
	for _, s := range skippedSuffixes {
		if strings.HasSuffix(lower, s) {
			return false
		}
	}
	return true
}

// Load reads the image at p.
func Load(ctx context.Context, p string) (*Image, error) {
	if IsArchive(p) {
		return loadArchive(ctx, p)
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, &LoadError{Path: p, Err: err}
	}
	logging.Info("Image loaded", zap.String("path", p), zap.Int("size", len(data)))

	return &Image{
		Name: filepath.Base(p),
		Path: p,
		Data: data,
	}, nil
}

func loadArchive(ctx context.Context, p string) (*Image, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, &LoadError{Path: p, Err: err}
	}
	defer f.Close()

	var img *Image
	err = archives.Zip{}.Extract(ctx, f, func(ctx context.Context, info archives.FileInfo) error {
		name := path.Base(info.NameInArchive)
		if !Eligible(info.NameInArchive, info.IsDir()) {
			logging.Debug("Archive entry skipped", zap.String("entry", info.NameInArchive))
			return nil
		}

		rc, err := info.Open()
		if err != nil {
			return err
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return fmt.Errorf("read %s: %w", info.NameInArchive, err)
		}

		img = &Image{Name: name, Path: p, Data: data, FromArchive: true}
		return errFound
	})
	if err != nil && !errors.Is(err, errFound) {
		return nil, &LoadError{Path: p, Err: err}
	}
	if img == nil {
		return nil, &NoImageError{Archive: p}
	}

	logging.Info("Image extracted",
		zap.String("archive", p),
		zap.String("entry", img.Name),
		zap.Int("size", len(img.Data)),
	)
	return img, nil
}
