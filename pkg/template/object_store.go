package template

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bps3210/simkak/internal/config"
	log "github.com/sirupsen/logrus"
)

var ErrObjectNotFound = errors.New("object not found")

// ObjectStore holds template binaries addressed by a flat object path.
type ObjectStore interface {
	Upload(ctx context.Context, path string, content []byte, contentType string) error
	Download(ctx context.Context, path string) ([]byte, error)
	Remove(ctx context.Context, path string) error
	List(ctx context.Context) ([]string, error)
}

// NewObjectStore picks the backend named in the storage configuration.
func NewObjectStore(cfg config.Storage) (ObjectStore, error) {
	switch cfg.Backend {
	case config.SupabaseStorage:
		if cfg.Url == "" || cfg.Bucket == "" {
			return nil, fmt.Errorf("supabase storage requires url and bucket")
		}
		return NewSupabaseStore(cfg.Url, cfg.Key, cfg.Bucket), nil
	case config.FilesystemStorage, "":
		return NewFilesystemStore(cfg.Dir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

type FilesystemStore struct {
	dir string
}

func NewFilesystemStore(dir string) (*FilesystemStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create template directory: %w", err)
	}
	return &FilesystemStore{dir: dir}, nil
}

func (s *FilesystemStore) resolve(path string) (string, error) {
	clean := filepath.Clean("/" + path)
	if clean == "/" {
		return "", fmt.Errorf("invalid object path %q", path)
	}
	return filepath.Join(s.dir, clean), nil
}

func (s *FilesystemStore) Upload(ctx context.Context, path string, content []byte, contentType string) error {
	target, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(target, content, 0o644); err != nil {
		log.Errorf("failed to write template %s: %v", path, err)
		return err
	}
	return nil
}

func (s *FilesystemStore) Download(ctx context.Context, path string) ([]byte, error) {
	target, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(target)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, path)
	}
	return content, err
}

func (s *FilesystemStore) Remove(ctx context.Context, path string) error {
	target, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *FilesystemStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	paths := []string{}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".docx") {
			paths = append(paths, e.Name())
		}
	}
	sort.Strings(paths)
	return paths, nil
}
