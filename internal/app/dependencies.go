package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bps3210/simkak/internal/config"
	"github.com/bps3210/simkak/internal/event_bus"
	"github.com/bps3210/simkak/internal/utils"
	"github.com/bps3210/simkak/pkg/docgen"
	"github.com/bps3210/simkak/pkg/kak"
	"github.com/bps3210/simkak/pkg/preference"
	"github.com/bps3210/simkak/pkg/template"
	"github.com/bps3210/simkak/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock       utils.Clock
	EventBus    *event_bus.EventBus
	Preferences preference.Store

	UserService user.Service
	UserHandler *user.Handler

	KakService kak.Service
	KakHandler *kak.Handler

	TemplateService template.Service
	TemplateHandler *template.Handler

	Generator       *docgen.Generator
	DocumentHandler *docgen.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(ctx context.Context, pool *pgxpool.Pool, local *sql.DB, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()

	deps.Preferences = preference.NewSqliteStore(local, deps.Clock)
	preference.RegisterTemplateSubscribers(deps.EventBus, deps.Preferences)

	deps.UserService = user.NewUserService(cfg.Users)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.KakService = kak.NewService(kak.NewRepository(pool), kak.DefaultCatalog(), deps.Clock)
	deps.KakHandler = kak.NewHandler(deps.KakService, kak.NewRecapRenderer(), deps.Clock)

	objects, err := template.NewObjectStore(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create template storage: %w", err)
	}
	if !docgen.HasProfile(cfg.Templates.DefaultProfile) {
		return nil, fmt.Errorf("unknown default template profile %q, expected one of %v", cfg.Templates.DefaultProfile, docgen.ProfileIds())
	}
	templateRepo := template.NewRepository(pool)
	deps.TemplateService = template.NewService(templateRepo, objects, deps.EventBus, deps.Clock,
		cfg.Templates.DefaultProfile, docgen.HasProfile)
	deps.TemplateHandler = template.NewHandler(deps.TemplateService)

	external, err := docgen.NewExternalFetcher(ctx, cfg.Templates)
	if err != nil {
		return nil, err
	}
	resolver := docgen.NewResolver(template.NewAssetStore(templateRepo, objects), deps.Preferences, external,
		cfg.Templates.PrimaryUrl, cfg.Templates.SecondaryUrl)
	deps.Generator = docgen.NewGenerator(resolver, docgen.NewValidator(cfg.Templates.MinSize), docgen.NewMapper(),
		docgen.NewReporter(), deps.Clock, cfg.Templates.DefaultProfile)
	deps.DocumentHandler = docgen.NewHandler(deps.Generator, deps.KakService, deps.TemplateService)

	return deps, nil
}
