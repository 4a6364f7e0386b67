package template

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type RepositoryStub struct {
	mu     sync.Mutex
	assets map[uuid.UUID]TemplateAsset
}

func NewStubRepository() *RepositoryStub {
	return &RepositoryStub{assets: map[uuid.UUID]TemplateAsset{}}
}

func (s *RepositoryStub) List(ctx context.Context) ([]TemplateAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	assets := make([]TemplateAsset, 0, len(s.assets))
	for _, a := range s.assets {
		assets = append(assets, a)
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].CreatedAt.After(assets[j].CreatedAt) })
	return assets, nil
}

func (s *RepositoryStub) Get(ctx context.Context, id uuid.UUID) (TemplateAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets[id]
	if !ok {
		return TemplateAsset{}, ErrTemplateNotFound
	}
	return a, nil
}

func (s *RepositoryStub) GetByPath(ctx context.Context, path string) (TemplateAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.assets {
		if a.FilePath == path {
			return a, nil
		}
	}
	return TemplateAsset{}, ErrTemplateNotFound
}

func (s *RepositoryStub) FindDefault(ctx context.Context) (TemplateAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found *TemplateAsset
	for _, a := range s.assets {
		if a.IsDefault {
			return a, nil
		}
		if found == nil || a.CreatedAt.Before(found.CreatedAt) {
			a := a
			found = &a
		}
	}
	if found == nil {
		return TemplateAsset{}, ErrTemplateNotFound
	}
	return *found, nil
}

func (s *RepositoryStub) Create(ctx context.Context, asset TemplateAsset) (TemplateAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[asset.Id] = asset
	return asset, nil
}

func (s *RepositoryStub) SetDefault(ctx context.Context, id uuid.UUID) (TemplateAsset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	target, ok := s.assets[id]
	if !ok {
		return TemplateAsset{}, ErrTemplateNotFound
	}
	for key, a := range s.assets {
		a.IsDefault = false
		s.assets[key] = a
	}
	target.IsDefault = true
	s.assets[id] = target
	return target, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.assets[id]; !ok {
		return false, nil
	}
	delete(s.assets, id)
	return true, nil
}

func (s *RepositoryStub) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets = map[uuid.UUID]TemplateAsset{}
}
