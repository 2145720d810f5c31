package api

import (
	_ "fxdisplay/docs"
	"fxdisplay/internal/api/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

const code = "{code:[A-Za-z]{3,8}}"

func NewRouter(h *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/currencies", h.ListCurrencies)
		r.Get("/currencies/"+code, h.GetCurrency)
		r.Get("/currencies/"+code+"/badge", h.GetBadge)

		r.Get("/rates/status", h.GetRateStatus)
		r.Post("/rates/refresh", h.RefreshRates)
		r.Put("/rates/fixed", h.SetFixedRate)
		r.Get("/rates/{from:[A-Za-z]{3,8}}/{to:[A-Za-z]{3,8}}", h.GetRate)

		r.Post("/convert", h.Convert)

		r.Post("/sessions", h.CreateSession)
		r.Delete("/sessions/{id}", h.DeleteSession)
		r.Get("/sessions/{id}/settings", h.GetSessionSettings)
		r.Patch("/sessions/{id}/settings", h.PatchSessionSettings)
		r.Post("/sessions/{id}/toggle", h.ToggleSession)
		r.Post("/sessions/{id}/render", h.RenderAmount)
		r.Post("/sessions/{id}/badges", h.RenderBadges)

		r.Get("/preferences/{key}", h.GetPreference)
		r.Put("/preferences/{key}", h.PutPreference)
	})
	return router
}
