package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxImageSize caps a single upload.
const MaxImageSize = 10 << 20

// rasterTypes are the formats accepted for upload. Vector formats such as SVG
// can carry script and are refused.
var rasterTypes = []string{"image/png", "image/jpeg", "image/webp", "image/gif"}

var (
	ErrNotImage = errors.New("not an image")
	ErrTooLarge = errors.New("file too large")
)

// Local stores uploaded images on disk and serves them under /uploads/.
type Local struct {
	Dir     string
	BaseURL string
}

// SaveImage sniffs the content, rejects anything that is not a raster image and
// writes it under a random name. It returns the public url of the file.
func (s *Local) SaveImage(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("storage: read: %w", err)
	}
	if len(data) > MaxImageSize {
		return "", ErrTooLarge
	}
	if len(data) == 0 {
		return "", ErrNotImage
	}

	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), rasterTypes...) {
		return "", ErrNotImage
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: mkdir: %w", err)
	}

	name := uuid.NewString() + mt.Extension()
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write: %w", err)
	}
	return strings.TrimRight(s.BaseURL, "/") + "/uploads/" + name, nil
}
