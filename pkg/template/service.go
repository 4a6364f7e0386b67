package template

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bps3210/simkak/internal/event_bus"
	"github.com/bps3210/simkak/internal/utils"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrNotDocx        = errors.New("only .docx templates are accepted")
	ErrEmptyTemplate  = errors.New("template file is empty")
	ErrUnknownProfile = errors.New("unknown mapping profile")
)

type Service interface {
	List(ctx context.Context) ([]TemplateAsset, error)
	Get(ctx context.Context, id uuid.UUID) (TemplateAsset, error)
	Upload(ctx context.Context, req UploadRequest) (TemplateAsset, error)
	Download(ctx context.Context, id uuid.UUID) ([]byte, error)
	SetDefault(ctx context.Context, id uuid.UUID) (TemplateAsset, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ServiceImpl struct {
	repo           Repository
	objects        ObjectStore
	eventBus       *event_bus.EventBus
	clock          utils.Clock
	defaultProfile string
	knownProfile   func(id string) bool
}

func NewService(repo Repository, objects ObjectStore, eventBus *event_bus.EventBus, clock utils.Clock,
	defaultProfile string, knownProfile func(id string) bool) *ServiceImpl {
	return &ServiceImpl{
		repo:           repo,
		objects:        objects,
		eventBus:       eventBus,
		clock:          clock,
		defaultProfile: defaultProfile,
		knownProfile:   knownProfile,
	}
}

func (s *ServiceImpl) List(ctx context.Context) ([]TemplateAsset, error) {
	return s.repo.List(ctx)
}

func (s *ServiceImpl) Get(ctx context.Context, id uuid.UUID) (TemplateAsset, error) {
	return s.repo.Get(ctx, id)
}

// Upload stores the file as template_<unix millis>.docx and records it.
func (s *ServiceImpl) Upload(ctx context.Context, req UploadRequest) (TemplateAsset, error) {
	if !strings.EqualFold(filepath.Ext(req.Filename), ".docx") {
		return TemplateAsset{}, ErrNotDocx
	}
	if len(req.Content) == 0 {
		return TemplateAsset{}, ErrEmptyTemplate
	}
	profile := req.Profile
	if profile == "" {
		profile = s.defaultProfile
	}
	if s.knownProfile != nil && !s.knownProfile(profile) {
		return TemplateAsset{}, fmt.Errorf("%w: %s", ErrUnknownProfile, profile)
	}
	name := req.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(req.Filename), filepath.Ext(req.Filename))
	}

	now := s.clock.Now()
	path := fmt.Sprintf("template_%d.docx", now.UnixMilli())
	if err := s.objects.Upload(ctx, path, req.Content, DocxContentType); err != nil {
		return TemplateAsset{}, fmt.Errorf("failed to store template file: %w", err)
	}

	asset, err := s.repo.Create(ctx, TemplateAsset{
		Id:          uuid.New(),
		Name:        name,
		Description: req.Description,
		FilePath:    path,
		Profile:     profile,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		if rmErr := s.objects.Remove(ctx, path); rmErr != nil {
			log.Warnf("failed to remove orphaned template file %s: %v", path, rmErr)
		}
		return TemplateAsset{}, err
	}
	log.Infof("Uploaded template %s as %s", asset.Name, asset.FilePath)
	return asset, nil
}

func (s *ServiceImpl) Download(ctx context.Context, id uuid.UUID) ([]byte, error) {
	asset, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.objects.Download(ctx, asset.FilePath)
}

func (s *ServiceImpl) SetDefault(ctx context.Context, id uuid.UUID) (TemplateAsset, error) {
	asset, err := s.repo.SetDefault(ctx, id)
	if err != nil {
		return TemplateAsset{}, err
	}
	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.TemplateDefaultChangedType,
		event_bus.TemplateDefaultChanged{
			TemplateId: asset.Id.String(),
			FilePath:   asset.FilePath,
			Profile:    asset.Profile,
		}))
	if err != nil {
		log.Errorf("failed to publish template default event: %v", err)
		return TemplateAsset{}, err
	}
	return asset, nil
}

// Delete removes the stored file first, then the record.
func (s *ServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	asset, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.objects.Remove(ctx, asset.FilePath); err != nil && !errors.Is(err, ErrObjectNotFound) {
		return fmt.Errorf("failed to remove template file: %w", err)
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTemplateNotFound
	}
	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.TemplateDeletedType,
		event_bus.TemplateDeleted{
			TemplateId: asset.Id.String(),
			FilePath:   asset.FilePath,
			WasDefault: asset.IsDefault,
		}))
	if err != nil {
		log.Errorf("failed to publish template deleted event: %v", err)
		return err
	}
	return nil
}
