package assets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmpty           = errors.New("empty asset")
	ErrUnsupportedType = errors.New("unsupported asset type")
	ErrForeignPath     = errors.New("path outside the asset store")
)

var reExt = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

// Store persists an uploaded asset and returns its public path. Delete
// removes an asset by that path; a missing asset is not an error.
type Store interface {
	Store(ctx context.Context, data []byte, suggestedName string) (string, error)
	Delete(ctx context.Context, publicPath string) error
}

// DiskStore writes assets under Dir and addresses them as URLPrefix/<name>.
type DiskStore struct {
	Dir       string
	URLPrefix string
}

func NewDiskStore(dir, urlPrefix string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{Dir: dir, URLPrefix: urlPrefix}, nil
}

func (s *DiskStore) Store(ctx context.Context, data []byte, suggestedName string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	name := uuid.NewString() + extension(suggestedName)
	full := filepath.Join(s.Dir, name)

	tmp, err := os.CreateTemp(s.Dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write asset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close asset: %w", err)
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("rename asset: %w", err)
	}

	return path.Join("/", s.URLPrefix, name), nil
}

func (s *DiskStore) Delete(ctx context.Context, publicPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir, name := path.Split(path.Clean(publicPath))
	if path.Clean(dir) != path.Join("/", s.URLPrefix) || name == "" || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %s", ErrForeignPath, publicPath)
	}

	if err := os.Remove(filepath.Join(s.Dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove asset: %w", err)
	}
	return nil
}

// extension keeps only a short alphanumeric extension of the client name.
func extension(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if !reExt.MatchString(ext) {
		return ""
	}
	return ext
}
