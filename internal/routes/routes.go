package routes

import (
	"net/http"

	"solarserver/internal/handlers"
	"solarserver/internal/logger"
	"solarserver/internal/middleware"
	"solarserver/internal/repository"
	"solarserver/internal/services/auth"
	"solarserver/internal/services/pipeline"
	"solarserver/internal/services/websocket"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Users       repository.UserRepository
	Fields      repository.FieldRepository
	Jobs        repository.JobRepository
	PanelImages repository.PanelImageRepository
	Pipeline    *pipeline.Pipeline
	Auth        *auth.Service
	Hub         *websocket.HubService
	ArtifactDir string
	Logger      *logger.Logger
}

// SetupRoutes registers the API endpoints, artifact file serving and the
// event websocket, and wraps the mux with the authentication middleware.
func SetupRoutes(d Deps) http.Handler {
	mux := http.NewServeMux()

	// Classification pipeline
	mux.HandleFunc("POST /predict", handlers.PredictHandler(d.Pipeline, d.Logger))

	// Stored artifacts, path returned by /predict is the lookup key
	mux.Handle("GET /artifacts/", http.StripPrefix("/artifacts/", http.FileServer(http.Dir(d.ArtifactDir))))

	// Auth
	mux.HandleFunc("POST /auth/token", handlers.TokenHandler(d.Users, d.Auth, d.Logger))

	// Users
	mux.HandleFunc("POST /api/users", handlers.CreateUserHandler(d.Users, d.Logger))
	mux.HandleFunc("GET /api/users", handlers.ListUsersHandler(d.Users, d.Logger))
	mux.HandleFunc("GET /api/users/{id}", handlers.GetUserHandler(d.Users, d.Logger))
	mux.HandleFunc("PUT /api/users/{id}", handlers.UpdateUserHandler(d.Users, d.Logger))
	mux.HandleFunc("DELETE /api/users/{id}", handlers.DeleteUserHandler(d.Users, d.Logger))

	// Solar fields
	mux.HandleFunc("POST /api/fields", handlers.CreateFieldHandler(d.Fields, d.Logger))
	mux.HandleFunc("GET /api/fields", handlers.ListFieldsHandler(d.Fields, d.Logger))
	mux.HandleFunc("GET /api/fields/{id}", handlers.GetFieldHandler(d.Fields, d.Logger))
	mux.HandleFunc("PUT /api/fields/{id}", handlers.UpdateFieldHandler(d.Fields, d.Logger))
	mux.HandleFunc("DELETE /api/fields/{id}", handlers.DeleteFieldHandler(d.Fields, d.Logger))

	// Jobs
	mux.HandleFunc("POST /api/jobs", handlers.CreateJobHandler(d.Jobs, d.Logger))
	mux.HandleFunc("GET /api/jobs", handlers.ListJobsHandler(d.Jobs, d.Logger))
	mux.HandleFunc("GET /api/jobs/{id}", handlers.GetJobHandler(d.Jobs, d.Logger))
	mux.HandleFunc("PUT /api/jobs/{id}", handlers.UpdateJobHandler(d.Jobs, d.Logger))
	mux.HandleFunc("DELETE /api/jobs/{id}", handlers.DeleteJobHandler(d.Jobs, d.Logger))

	// Panel image metadata
	mux.HandleFunc("POST /api/images", handlers.CreatePanelImageHandler(d.PanelImages, d.Logger))
	mux.HandleFunc("GET /api/images", handlers.ListPanelImagesHandler(d.PanelImages, d.Logger))
	mux.HandleFunc("GET /api/images/{id}", handlers.GetPanelImageHandler(d.PanelImages, d.Logger))
	mux.HandleFunc("PUT /api/images/{id}", handlers.UpdatePanelImageHandler(d.PanelImages, d.Logger))
	mux.HandleFunc("DELETE /api/images/{id}", handlers.DeletePanelImageHandler(d.PanelImages, d.Logger))

	// Live classification events
	mux.HandleFunc("GET /api/events", handlers.EventsHandler(d.Hub, d.Logger))

	return middleware.Auth(d.Auth)(mux)
}
