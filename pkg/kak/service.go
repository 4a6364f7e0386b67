package kak

import (
	"context"
	"fmt"
	"sort"

	"github.com/bps3210/simkak/internal/utils"
	"github.com/bps3210/simkak/pkg/format"
	"github.com/bps3210/simkak/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Options(ctx context.Context, sel Selection) Options
	List(ctx context.Context, filter Filter) ([]Proposal, error)
	Get(ctx context.Context, id uuid.UUID) (Proposal, error)
	Create(ctx context.Context, proposal Proposal) (Proposal, error)
	Update(ctx context.Context, proposal Proposal) (Proposal, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Duplicate(ctx context.Context, id uuid.UUID) (Proposal, error)
	Summary(ctx context.Context) (Summary, error)
}

type Summary struct {
	TotalProposals int
	TotalPagu      int64
	TotalDigunakan int64
	ByJenis        []GroupTotal
	ByMonth        []GroupTotal
}

type GroupTotal struct {
	Key       string
	Label     string
	Count     int
	Pagu      int64
	Digunakan int64
}

type ServiceImpl struct {
	repo    Repository
	catalog Catalog
	clock   utils.Clock
}

func NewService(repo Repository, catalog Catalog, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, catalog: catalog, clock: clock}
}

func (s *ServiceImpl) Options(ctx context.Context, sel Selection) Options {
	return s.catalog.OptionsFor(sel)
}

func (s *ServiceImpl) List(ctx context.Context, filter Filter) ([]Proposal, error) {
	if _, err := user.CurrentUser(ctx); err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.List(ctx, filter)
}

func (s *ServiceImpl) Get(ctx context.Context, id uuid.UUID) (Proposal, error) {
	if _, err := user.CurrentUser(ctx); err != nil {
		return Proposal{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) Create(ctx context.Context, proposal Proposal) (Proposal, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return Proposal{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if verrs := Validate(proposal, s.catalog); verrs != nil {
		return Proposal{}, verrs
	}

	proposal.Id = uuid.New()
	proposal.CreatedBy = Creator{Name: currentUser.Name, Role: currentUser.Role}
	now := s.clock.Now()
	proposal.CreatedAt = now
	proposal.UpdatedAt = now
	for idx := range proposal.Items {
		proposal.Items[idx].Id = uuid.New()
	}
	proposal.Normalize()

	return s.repo.Create(ctx, proposal)
}

func (s *ServiceImpl) Update(ctx context.Context, proposal Proposal) (Proposal, error) {
	if _, err := user.CurrentUser(ctx); err != nil {
		return Proposal{}, fmt.Errorf("failed to get current user: %w", err)
	}
	existing, err := s.repo.Get(ctx, proposal.Id)
	if err != nil {
		return Proposal{}, err
	}
	if verrs := Validate(proposal, s.catalog); verrs != nil {
		return Proposal{}, verrs
	}

	proposal.CreatedBy = existing.CreatedBy
	proposal.CreatedAt = existing.CreatedAt
	proposal.UpdatedAt = s.clock.Now()
	proposal.Normalize()

	return s.repo.Update(ctx, proposal)
}

func (s *ServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := user.CurrentUser(ctx); err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		log.Warnf("proposal %s not deleted, it does not exist", id)
		return ErrProposalNotFound
	}
	return nil
}

// Duplicate stores a copy of the proposal under a new id. Every other field is kept as is.
func (s *ServiceImpl) Duplicate(ctx context.Context, id uuid.UUID) (Proposal, error) {
	if _, err := user.CurrentUser(ctx); err != nil {
		return Proposal{}, fmt.Errorf("failed to get current user: %w", err)
	}
	original, err := s.repo.Get(ctx, id)
	if err != nil {
		return Proposal{}, err
	}

	dup := original.Copy()
	now := s.clock.Now()
	dup.CreatedAt = now
	dup.UpdatedAt = now
	return s.repo.Create(ctx, dup)
}

func (s *ServiceImpl) Summary(ctx context.Context) (Summary, error) {
	proposals, err := s.List(ctx, Filter{})
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{TotalProposals: len(proposals)}
	byJenis := map[string]*GroupTotal{}
	byMonth := map[string]*GroupTotal{}
	for _, p := range proposals {
		used := p.PaguDigunakan()
		summary.TotalPagu += p.PaguAnggaran
		summary.TotalDigunakan += used

		addTo(byJenis, p.JenisKAK, p.JenisKAK, p.PaguAnggaran, used)
		if !p.TanggalPengajuan.IsZero() {
			addTo(byMonth, p.TanggalPengajuan.Format("2006-01"), format.MonthYear(p.TanggalPengajuan), p.PaguAnggaran, used)
		}
	}
	summary.ByJenis = sortedGroups(byJenis)
	summary.ByMonth = sortedGroups(byMonth)
	return summary, nil
}

func addTo(groups map[string]*GroupTotal, key, label string, pagu, used int64) {
	g, ok := groups[key]
	if !ok {
		g = &GroupTotal{Key: key, Label: label}
		groups[key] = g
	}
	g.Count++
	g.Pagu += pagu
	g.Digunakan += used
}

func sortedGroups(groups map[string]*GroupTotal) []GroupTotal {
	result := make([]GroupTotal, 0, len(groups))
	for _, g := range groups {
		result = append(result, *g)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result
}
