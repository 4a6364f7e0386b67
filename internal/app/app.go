package app

import (
	"context"
	"net/http"
	"time"

	"github.com/bps3210/simkak/internal/config"
	"github.com/bps3210/simkak/internal/database"
	"github.com/bps3210/simkak/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, databases, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	router *mux.Router
	srv    *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	// Row store + migrations
	pool, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(cfg.Database); err != nil {
		return nil, err
	}

	// Local preferences
	local, err := database.OpenLocal(cfg.Local)
	if err != nil {
		return nil, err
	}
	if err := database.MigrateLocal(local); err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	deps, err := BuildDependencies(context.Background(), pool, local, cfg)
	if err != nil {
		return nil, err
	}

	SetupMiddleware(r, deps)
	RegisterRoutes(r, deps)

	if cfg.Frontend.Enabled {
		frontend := rest.NewFrontendHandler("frontend", "index.html")
		r.PathPrefix("/").Handler(frontend)
	}

	srv := &http.Server{
		Handler: r,
		Addr:    ":8080",
		// generation may wait on an external document host
		WriteTimeout: cfg.Templates.Timeout + 15*time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, router: r, srv: srv}, nil
}

// Run starts the HTTP server and blocks.
func (a *Application) Run() error {
	log.Infof("Starting server on %s", a.srv.Addr)
	return a.srv.ListenAndServe()
}
