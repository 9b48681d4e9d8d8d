// Package attachments stores uploaded transfer screenshots and resolves
// them to public URLs.
package attachments

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/gizaresult/resultdesk/internal/errs"
	"github.com/gizaresult/resultdesk/internal/models"
	"github.com/gizaresult/resultdesk/pkg/logger"
)

// Store writes attachments into a directory of an afero filesystem.
type Store struct {
	logger *logger.Logger
	fs     afero.Fs

	Dir       string
	URLPrefix string

	now func() time.Time
}

var _ models.AttachmentStore = (*Store)(nil)

// NewStore creates the uploads directory if needed.
func NewStore(logger *logger.Logger, fs afero.Fs, dir, urlPrefix string) (*Store, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir %s: %w", dir, err)
	}
	return &Store{
		logger:    logger,
		fs:        fs,
		Dir:       dir,
		URLPrefix: strings.TrimRight(urlPrefix, "/"),
		now:       time.Now,
	}, nil
}

// NewOsStore is NewStore on the real filesystem.
func NewOsStore(logger *logger.Logger, dir, urlPrefix string) (*Store, error) {
	return NewStore(logger, afero.NewOsFs(), dir, urlPrefix)
}

// newName returns <unix millis>-<8 hex><lower-cased ext>.
func (s *Store) newName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), suffix, ext)
}

func (s *Store) Store(ctx context.Context, content io.Reader, originalName string) (string, error) {
	if content == nil {
		return "", errs.ErrMissingAttachment
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := s.newName(originalName)
	target := filepath.Join(s.Dir, name)
	f, err := s.fs.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create attachment file: %w", err)
	}
	n, copyErr := io.Copy(f, content)
	closeErr := f.Close()
	if copyErr == nil && closeErr == nil && n > 0 {
		s.logger.Debug("Attachment stored", "name", name, "bytes", n)
		return name, nil
	}

	if err := s.fs.Remove(target); err != nil {
		s.logger.Warn("Failed to remove partial attachment", "name", name, "error", err)
	}
	switch {
	case copyErr != nil:
		return "", fmt.Errorf("failed to write attachment: %w", copyErr)
	case closeErr != nil:
		return "", fmt.Errorf("failed to close attachment: %w", closeErr)
	default:
		return "", errs.ErrMissingAttachment
	}
}

func (s *Store) URL(ref string) *string {
	if ref == "" {
		return nil
	}
	u := s.URLPrefix + "/" + path.Base(ref)
	return &u
}

// FileSystem exposes the uploads directory for serving under URLPrefix.
func (s *Store) FileSystem() http.FileSystem {
	return afero.NewHttpFs(s.fs).Dir(s.Dir)
}
