package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/launchboard/backend/internal/handler/launch"
	middlewarePkg "github.com/zhouzirui/launchboard/backend/internal/middleware"
	"github.com/zhouzirui/launchboard/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
// Any GET that matches no API route is handed to assets.
func NewRouter(launches launch.Lister, settings launch.Settings, assets http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	// Set before /api is mounted so the subrouter inherits it.
	r.NotFound(fallback(assets))

	launchHandler := launch.New(launches, settings)

	r.Route("/api", func(api chi.Router) {
		launchHandler.RegisterRoutes(api)
	})

	return r
}

// fallback serves the client bundle for reads and rejects everything else.
func fallback(assets http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			assets.ServeHTTP(w, r)
		default:
			utils.RespondError(w, http.StatusNotFound, "not found")
		}
	}
}
