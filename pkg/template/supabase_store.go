package template

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	storage_go "github.com/supabase-community/storage-go"
)

const cacheControl = "3600"

// SupabaseStore keeps templates in a Supabase storage bucket.
type SupabaseStore struct {
	client *storage_go.Client
	bucket string
}

func NewSupabaseStore(url, key, bucket string) *SupabaseStore {
	headers := map[string]string{}
	if key != "" {
		headers["apikey"] = key
	}
	return &SupabaseStore{
		client: storage_go.NewClient(strings.TrimRight(url, "/"), key, headers),
		bucket: bucket,
	}
}

func (s *SupabaseStore) Upload(ctx context.Context, path string, content []byte, contentType string) error {
	cache := cacheControl
	upsert := false
	_, err := s.client.UploadFile(s.bucket, path, bytes.NewReader(content), storage_go.FileOptions{
		CacheControl: &cache,
		ContentType:  &contentType,
		Upsert:       &upsert,
	})
	if err != nil {
		err := fmt.Errorf("supabase upload failed: %v", err)
		log.Error(err)
		return err
	}
	return nil
}

func (s *SupabaseStore) Download(ctx context.Context, path string) ([]byte, error) {
	content, err := s.client.DownloadFile(s.bucket, path)
	if err != nil {
		// storage-go reports missing objects as plain errors carrying the API message
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, path)
		}
		return nil, fmt.Errorf("supabase download failed: %w", err)
	}
	return content, nil
}

func (s *SupabaseStore) Remove(ctx context.Context, path string) error {
	if _, err := s.client.RemoveFile(s.bucket, []string{path}); err != nil {
		err := fmt.Errorf("supabase delete failed: %v", err)
		log.Error(err)
		return err
	}
	return nil
}

func (s *SupabaseStore) List(ctx context.Context) ([]string, error) {
	files, err := s.client.ListFiles(s.bucket, "", storage_go.FileSearchOptions{
		Limit:  100,
		Offset: 0,
		SortByOptions: storage_go.SortBy{
			Column: "name",
			Order:  "asc",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("supabase list failed: %w", err)
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		if strings.HasSuffix(strings.ToLower(f.Name), ".docx") {
			paths = append(paths, f.Name)
		}
	}
	return paths, nil
}
