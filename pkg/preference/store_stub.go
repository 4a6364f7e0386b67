package preference

import (
	"context"
	"sync"
)

type StoreStub struct {
	mu     sync.Mutex
	values map[string]string
}

func NewStoreStub() *StoreStub {
	return &StoreStub{values: map[string]string{}}
}

func (s *StoreStub) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *StoreStub) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *StoreStub) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *StoreStub) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = map[string]string{}
}
