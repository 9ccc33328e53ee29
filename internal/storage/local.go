// Package storage persists uploaded files under a local upload directory and
// maps them to public URL paths. Deletion is best-effort: failures are logged
// and never abort the record mutation that triggered them.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrInvalidFileType is returned when an uploaded file's binary content does
// not match an allowed image signature.
var ErrInvalidFileType = errors.New("invalid file type")

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type Local struct {
	dir          string
	publicPrefix string
	logger       zerolog.Logger
}

// NewLocal creates the upload directory if needed. publicPrefix is the URL
// path the directory is served under, e.g. "/uploads".
func NewLocal(dir, publicPrefix string, logger zerolog.Logger) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Local{
		dir:          dir,
		publicPrefix: strings.TrimSuffix(publicPrefix, "/"),
		logger:       logger,
	}, nil
}

// AllowedExtension filters by declared filename extension. This is the weak
// transport-boundary check used for bulk create/update uploads; the single
// photo endpoint additionally verifies binary content via VerifyImage.
func AllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Save writes the uploaded file under a fresh name and returns its public
// path.
func (l *Local) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	name := uuid.New().String() + strings.ToLower(filepath.Ext(fh.Filename))
	dst, err := os.Create(filepath.Join(l.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return l.publicPrefix + "/" + name, nil
}

// IsLocal reports whether path points into the upload directory, as opposed
// to an externally hosted URL.
func (l *Local) IsLocal(path string) bool {
	return strings.HasPrefix(path, l.publicPrefix+"/")
}

// Delete removes the backing file for a locally-hosted path. External URLs
// and failures are ignored beyond a warning log; losing an orphaned file is
// preferable to blocking the record mutation that requested the cleanup.
func (l *Local) Delete(path string) {
	if !l.IsLocal(path) {
		return
	}
	if err := os.Remove(l.diskPath(path)); err != nil && !os.IsNotExist(err) {
		l.logger.Warn().Err(err).Str("path", path).Msg("failed to delete file")
	}
}

// VerifyImage sniffs the file's leading bytes and fails with
// ErrInvalidFileType when the content is not an allowed image format,
// regardless of the filename extension.
func (l *Local) VerifyImage(path string) error {
	f, err := os.Open(l.diskPath(path))
	if err != nil {
		return fmt.Errorf("failed to open file for sniffing: %w", err)
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file for sniffing: %w", err)
	}

	contentType := http.DetectContentType(buf[:n])
	if !allowedContentTypes[contentType] {
		return fmt.Errorf("%w: detected %s", ErrInvalidFileType, contentType)
	}
	return nil
}

func (l *Local) diskPath(publicPath string) string {
	return filepath.Join(l.dir, strings.TrimPrefix(publicPath, l.publicPrefix+"/"))
}
