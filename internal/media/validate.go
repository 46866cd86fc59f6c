package media

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// MaxUploadBytes caps accepted uploads at 500 MiB. Oversized files are
// rejected before any network call.
const MaxUploadBytes = 500 * 1024 * 1024

// Sentinel errors so callers can match with errors.Is.
var (
	ErrEmptyFile         = errors.New("file is empty")
	ErrFileTooLarge      = errors.New("file too large - maximum 500MB allowed")
	ErrUnsupportedFormat = errors.New("unsupported container format")
)

// ContainerExtensions lists the accepted media container formats.
var ContainerExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".webm": true,
	".mkv":  true,
}

// ValidateUpload checks a candidate upload locally. It never touches the
// network: an invalid file is rejected immediately with a user-facing error.
func ValidateUpload(filename string, size int64) error {
	if size == 0 {
		return ErrEmptyFile
	}
	if size > MaxUploadBytes {
		return ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !ContainerExtensions[ext] {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return nil
}

// FormatFromFilename extracts the container format (no dot, lowercase).
func FormatFromFilename(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}
