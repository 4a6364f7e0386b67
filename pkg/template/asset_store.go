package template

import (
	"context"
	"errors"
)

// AssetStore is the read side used by document generation to locate template binaries.
type AssetStore struct {
	repo    Repository
	objects ObjectStore
}

func NewAssetStore(repo Repository, objects ObjectStore) *AssetStore {
	return &AssetStore{repo: repo, objects: objects}
}

func (a *AssetStore) Fetch(ctx context.Context, path string) ([]byte, error) {
	return a.objects.Download(ctx, path)
}

// List returns recorded template paths, or the raw object listing when no record exists.
func (a *AssetStore) List(ctx context.Context) ([]string, error) {
	assets, err := a.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(assets) == 0 {
		return a.objects.List(ctx)
	}
	paths := make([]string, 0, len(assets))
	for _, asset := range assets {
		paths = append(paths, asset.FilePath)
	}
	return paths, nil
}

// QueryDefault returns the flagged default path, falling back to the oldest recorded template.
// Objects without a record are considered only when no template is recorded at all.
func (a *AssetStore) QueryDefault(ctx context.Context) (string, bool, error) {
	asset, err := a.repo.FindDefault(ctx)
	if err == nil {
		return asset.FilePath, true, nil
	}
	if !errors.Is(err, ErrTemplateNotFound) {
		return "", false, err
	}
	paths, err := a.List(ctx)
	if err != nil {
		return "", false, err
	}
	if len(paths) == 0 {
		return "", false, nil
	}
	return paths[0], true, nil
}

// ProfileOf returns the mapping profile recorded for path.
func (a *AssetStore) ProfileOf(ctx context.Context, path string) (string, bool) {
	asset, err := a.repo.GetByPath(ctx, path)
	if err != nil {
		return "", false
	}
	return asset.Profile, true
}
