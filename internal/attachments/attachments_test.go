package attachments

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/gizaresult/resultdesk/internal/errs"
	"github.com/gizaresult/resultdesk/pkg/logger"
)

func newTestStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	s, err := NewStore(logger.NewNop(), fs, "uploads", "/uploads/")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	s.now = func() time.Time { return time.UnixMilli(1700000000123) }
	return s, fs
}

var namePattern = regexp.MustCompile(`^1700000000123-[0-9a-f]{8}\.png$`)

func TestStore_WritesUniqueNamedFile(t *testing.T) {
	s, fs := newTestStore(t)

	name, err := s.Store(context.Background(), strings.NewReader("png-bytes"), "Transfer.PNG")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if !namePattern.MatchString(name) {
		t.Errorf("name = %q, want <millis>-<8hex>.png", name)
	}

	data, err := afero.ReadFile(fs, filepath.Join("uploads", name))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("content = %q", data)
	}

	other, err := s.Store(context.Background(), strings.NewReader("more"), "Transfer.PNG")
	if err != nil {
		t.Fatalf("second Store: %v", err)
	}
	if other == name {
		t.Error("two uploads in the same millisecond must get different names")
	}
}

func TestStore_RejectsMissingContent(t *testing.T) {
	s, fs := newTestStore(t)

	if _, err := s.Store(context.Background(), nil, "a.png"); !errors.Is(err, errs.ErrMissingAttachment) {
		t.Errorf("nil reader err = %v, want ErrMissingAttachment", err)
	}
	if _, err := s.Store(context.Background(), bytes.NewReader(nil), "a.png"); !errors.Is(err, errs.ErrMissingAttachment) {
		t.Errorf("empty reader err = %v, want ErrMissingAttachment", err)
	}

	entries, err := afero.ReadDir(fs, "uploads")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("empty uploads should leave no files, found %d", len(entries))
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestStore_ReadFailureIsNotAMissingAttachment(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Store(context.Background(), failingReader{}, "a.png")
	if err == nil || errors.Is(err, errs.ErrMissingAttachment) {
		t.Fatalf("err = %v, want a write failure", err)
	}
}

func TestURL(t *testing.T) {
	s, _ := newTestStore(t)

	if got := s.URL(""); got != nil {
		t.Errorf("URL(\"\") = %q, want nil", *got)
	}
	got := s.URL("1700000000123-deadbeef.png")
	if got == nil || *got != "/uploads/1700000000123-deadbeef.png" {
		t.Errorf("URL = %v", got)
	}
}

func TestFileSystem_ServesStoredFiles(t *testing.T) {
	s, _ := newTestStore(t)
	name, err := s.Store(context.Background(), strings.NewReader("hello"), "x.txt")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}

	handler := http.StripPrefix("/uploads", http.FileServer(s.FileSystem()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/"+name, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "hello" {
		t.Errorf("body = %q", rec.Body.String())
	}
}
