package kak

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
)

type RepositoryStub struct {
	proposals map[uuid.UUID]Proposal
}

func NewStubRepository() *RepositoryStub {
	return &RepositoryStub{proposals: map[uuid.UUID]Proposal{}}
}

func (s *RepositoryStub) List(ctx context.Context, filter Filter) ([]Proposal, error) {
	result := make([]Proposal, 0, len(s.proposals))
	query := strings.ToLower(filter.Query)
	for _, p := range s.proposals {
		if filter.Jenis != "" && p.JenisKAK != filter.Jenis {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.JenisKAK), query) &&
			!strings.Contains(strings.ToLower(p.ProgramPembebanan), query) &&
			!strings.Contains(strings.ToLower(p.KomponenOutput), query) {
			continue
		}
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (s *RepositoryStub) Get(ctx context.Context, id uuid.UUID) (Proposal, error) {
	p, ok := s.proposals[id]
	if !ok {
		return Proposal{}, ErrProposalNotFound
	}
	return p, nil
}

func (s *RepositoryStub) Create(ctx context.Context, p Proposal) (Proposal, error) {
	s.proposals[p.Id] = p
	return p, nil
}

func (s *RepositoryStub) Update(ctx context.Context, p Proposal) (Proposal, error) {
	if _, ok := s.proposals[p.Id]; !ok {
		return Proposal{}, ErrProposalNotFound
	}
	s.proposals[p.Id] = p
	return p, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, ok := s.proposals[id]; !ok {
		return false, nil
	}
	delete(s.proposals, id)
	return true, nil
}

func (s *RepositoryStub) Cleanup() {
	s.proposals = map[uuid.UUID]Proposal{}
}
