package http

import (
	"net/http"
	"time"

	"github.com/roastme-app/battle-service/internal/transport/ws"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler, wsServer *ws.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewareChi.RequestID)
	r.Use(middlewareChi.RealIP)
	r.Use(middlewareChi.Recoverer)

	// WS endpoint
	r.Get("/ws", wsServer.HandleWS)

	r.Group(func(pr chi.Router) {
		pr.Use(middlewareChi.Timeout(30 * time.Second))

		pr.Route("/api", func(api chi.Router) {
			api.Route("/rooms/{code}", func(rr chi.Router) {
				rr.Get("/", h.GetRoom)
				rr.Get("/leaderboard", h.GetLeaderboard)
			})
			api.Post("/mood/detect", h.DetectMood)
			api.Post("/roast/generate", h.GenerateRoast)
			api.Post("/advice/get", h.GetAdvice)
			api.Post("/personality/analyze", h.AnalyzePersonality)
		})
	})

	// health
	r.Get("/health", h.Health)

	return r
}
