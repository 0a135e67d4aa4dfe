package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/fakhrymubarak/geo-weather-api/internal/middleware"
	"github.com/fakhrymubarak/geo-weather-api/internal/web"
)

// NewRouter wires the HTTP surface: landing page, health check and the two read APIs.
func NewRouter(h *Handler, logger *zap.SugaredLogger) http.Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.ClientIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)

	r.Get("/", h.HandleIndex)
	r.Get("/health", h.HandleHealth)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))

	r.Route("/api", func(r chi.Router) {
		r.Get("/location", h.HandleLocation)
		r.Get("/weather", h.HandleWeather)
	})
	return r
}
