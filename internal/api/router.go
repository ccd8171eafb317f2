// Package api exposes stored scores over a small read-only HTTP API.
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// MaxLimit caps the limit query parameter.
const MaxLimit = 100

// RouterConfig holds configuration for the API router.
type RouterConfig struct {
	Logger *log.Logger
	Local  storage.Source
	World  storage.Source // optional
}

// NewRouter creates the API router with all routes configured.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	h := &handler{local: cfg.Local, world: cfg.World}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recovery(cfg.Logger))
	api.Use(logging(cfg.Logger))

	api.HandleFunc("/scores", h.scores).Methods(http.MethodGet)
	api.HandleFunc("/scores/best", h.best).Methods(http.MethodGet)
	api.HandleFunc("/world", h.worldScores).Methods(http.MethodGet)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	return r
}
