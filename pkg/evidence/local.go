package evidence

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/daohd2003/FRECS-sub006/internal/pkg/apperror"

	"github.com/google/uuid"
)

// LocalStore keeps evidence files on the local filesystem under
// <dir>/<violation-id>/<random>-<filename> and serves them through the
// /uploads static route.
type LocalStore struct {
	dir     string
	urlBase string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperror.Storage("evidence", "create upload dir", err)
	}
	return &LocalStore{dir: dir, urlBase: "/uploads"}, nil
}

func (s *LocalStore) Save(ctx context.Context, violationID string, filename string, content io.Reader) (string, error) {
	// Strip any path components the client smuggled into the name.
	name := filepath.Base(filename)
	key := filepath.Join(violationID, uuid.New().String()+"-"+name)

	fullPath := filepath.Join(s.dir, key)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", apperror.Storage("evidence", "create evidence dir", err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return "", apperror.Storage("evidence", "create evidence file", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(fullPath)
		return "", apperror.Storage("evidence", "write evidence file", err)
	}

	return s.urlBase + "/" + filepath.ToSlash(key), nil
}

func (s *LocalStore) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, s.urlBase+"/")
	if !ok {
		return nil
	}

	fullPath := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return apperror.Storage("evidence", "delete evidence file", err)
	}
	return nil
}

// Dir exposes the root directory so the server can mount it as a static route.
func (s *LocalStore) Dir() string {
	return s.dir
}
