package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/just-nibble/repo-dashboard/internal/adapters/http/handlers"
	"github.com/just-nibble/repo-dashboard/internal/adapters/http/middleware"
)

// NewRouter wires the HTTP API. Everything under /api requires an
// authenticated session.
func NewRouter(
	repos *handlers.RepositoryHandler,
	tokens *handlers.TokenHandler,
	profiles *handlers.ProfileHandler,
	oauth *handlers.OAuthHandler,
	sessionSecret string,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.Recover)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// Serve Swagger documentation
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(sessionSecret))

	api.HandleFunc("/repositories", repos.List).Methods(http.MethodGet)
	api.HandleFunc("/repositories", repos.Connect).Methods(http.MethodPost)
	api.HandleFunc("/repositories/fetch-metadata", repos.FetchMetadata).Methods(http.MethodPost)
	api.HandleFunc("/repositories/stats", repos.Stats).Methods(http.MethodGet)
	api.HandleFunc("/repositories/{id}/refresh", repos.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/repositories/{id}", repos.Disconnect).Methods(http.MethodDelete)
	api.HandleFunc("/tokens", tokens.Save).Methods(http.MethodPost)
	api.HandleFunc("/oauth/{provider}", oauth.Start).Methods(http.MethodPost)
	api.HandleFunc("/profile", profiles.Get).Methods(http.MethodGet)

	return router
}
