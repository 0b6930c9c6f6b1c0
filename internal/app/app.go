package app

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"solarserver/internal/config"
	"solarserver/internal/logger"
	"solarserver/internal/repository/sqlite"
	"solarserver/internal/routes"
	"solarserver/internal/services/auth"
	"solarserver/internal/services/pipeline"
	"solarserver/internal/services/storage"
	"solarserver/internal/services/vision"
	"solarserver/internal/services/websocket"
)

type App struct {
	config   *config.Config
	logger   *logger.Logger
	db       *sqlite.DB
	detector *vision.DetectorService
	hub      *websocket.HubService
	router   http.Handler
}

func NewApp() (*App, error) {
	cfg := config.Load()
	log := logger.New(cfg.LogDirectory)

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	users := sqlite.NewUserRepository(db)
	fields := sqlite.NewFieldRepository(db)
	jobs := sqlite.NewJobRepository(db)
	images := sqlite.NewPanelImageRepository(db)

	detector, err := vision.NewDetectorService(cfg, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	store := storage.NewArtifactStore(cfg.ArtifactDirectory, cfg.JPEGQuality)
	hub := websocket.NewHubService(log)
	authService := auth.NewService(cfg.JWTSecret, cfg.TokenExpiryMinutes)

	pl := pipeline.New(detector, store, fields, images, hub, log, cfg.MaxImageSide)

	router := routes.SetupRoutes(routes.Deps{
		Users:       users,
		Fields:      fields,
		Jobs:        jobs,
		PanelImages: images,
		Pipeline:    pl,
		Auth:        authService,
		Hub:         hub,
		ArtifactDir: cfg.ArtifactDirectory,
		Logger:      log,
	})

	return &App{
		config:   cfg,
		logger:   log,
		db:       db,
		detector: detector,
		hub:      hub,
		router:   router,
	}, nil
}

func (a *App) Run() error {
	go a.hub.Run()

	a.logger.Info("Solar inspection server listening on port %d", a.config.Port)
	a.logger.Info("Artifacts: %s", a.config.ArtifactDirectory)
	a.logger.Info("Database: %s", a.config.DatabasePath)
	a.logger.Info("Model: %s", a.config.ModelPath)

	return http.ListenAndServe(fmt.Sprintf(":%d", a.config.Port), a.router)
}

// Close releases the detector pool and the database connection.
func (a *App) Close() {
	a.detector.Close()
	a.db.Close()
}
