package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aussiebroadwan/storefront/internal/shop/domain"
	"github.com/aussiebroadwan/storefront/internal/shop/metrics"
	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// DefaultUploadMaxBytes caps a single upload when no limit is configured.
const DefaultUploadMaxBytes = 10 << 20

// ImagesPath is the URL prefix uploads are served under.
const ImagesPath = "/images/"

var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrInvalidFilename = errors.New("invalid file name")
	ErrUploadTooLarge  = errors.New("upload too large")
)

// uploadNameAttempts bounds how many names Save tries before giving up.
const uploadNameAttempts = 4

// UploadService writes uploaded images into Dir as <unix-ms>-<basename>.
// When that name is taken it falls back to <unix-ms>-<suffix>-<basename>.
type UploadService struct {
	Dir      string
	MaxBytes int64
	Metrics  *metrics.Metrics

	now func() time.Time
}

// Limit is the largest accepted upload in bytes.
func (s *UploadService) Limit() int64 {
	if s.MaxBytes <= 0 {
		return DefaultUploadMaxBytes
	}
	return s.MaxBytes
}

// Save streams r to disk. The original name is reduced to its base so it
// cannot escape Dir.
func (s *UploadService) Save(ctx context.Context, originalName string, r io.Reader) (domain.Upload, error) {
	base := CleanUploadName(originalName)
	if base == "" {
		return domain.Upload{}, ErrInvalidFilename
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return domain.Upload{}, fmt.Errorf("failed to create upload dir: %w", err)
	}

	f, filename, err := s.create(base)
	if err != nil {
		return domain.Upload{}, fmt.Errorf("failed to create upload: %w", err)
	}
	full := f.Name()

	limit := s.Limit()
	n, err := io.Copy(f, io.LimitReader(r, limit+1))
	closeErr := f.Close()
	switch {
	case err != nil:
		_ = os.Remove(full)
		return domain.Upload{}, fmt.Errorf("failed to write upload: %w", err)
	case n > limit:
		_ = os.Remove(full)
		return domain.Upload{}, ErrUploadTooLarge
	case closeErr != nil:
		_ = os.Remove(full)
		return domain.Upload{}, fmt.Errorf("failed to write upload: %w", closeErr)
	}

	slogx.FromContext(ctx).Info("upload stored", slog.String("filename", filename), slog.Int64("size", n))
	s.Metrics.RecordUpload(n)
	return domain.Upload{
		Filename: filename,
		Path:     ImagesPath + filename,
		Size:     n,
	}, nil
}

// create opens a new file for base, adding a random suffix when another
// upload already took the timestamped name.
func (s *UploadService) create(base string) (*os.File, string, error) {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	stamp := now().UnixMilli()

	var err error
	for attempt := range uploadNameAttempts {
		filename := fmt.Sprintf("%d-%s", stamp, base)
		if attempt > 0 {
			id := idx.New().String()
			filename = fmt.Sprintf("%d-%s-%s", stamp, strings.ToLower(id[len(id)-6:]), base)
		}

		var f *os.File
		f, err = os.OpenFile(filepath.Join(s.Dir, filename), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, filename, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", err
		}
	}
	return nil, "", err
}

// CleanUploadName strips any directory part from a client supplied file
// name, accepting both slash styles. It returns "" when nothing usable is
// left.
func CleanUploadName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := path.Base(name)
	base = strings.TrimSpace(base)
	if base == "." || base == "/" || base == ".." || base == "" {
		return ""
	}
	if strings.ContainsAny(base, "\x00") {
		return ""
	}
	return base
}
