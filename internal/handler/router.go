package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/vaultpass/passfx-go/internal/middleware"
)

// RouterDeps collects what NewRouter wires together.
type RouterDeps struct {
	Logger        *slog.Logger
	SessionSecret string
	Generator     *GeneratorHandler
	Converter     *ConverterHandler
	Session       *SessionHandler
}

// NewRouter builds the API routes. ctx bounds background work started by
// middleware such as the rate limiter.
func NewRouter(ctx context.Context, deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(deps.SessionSecret))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(ctx, 5, 10))
			r.Post("/session", deps.Session.HandleCreate)
			r.Post("/generate", deps.Generator.HandleGenerate)
			r.Post("/hash/verify", deps.Generator.HandleVerify)
		})

		r.Post("/strength", deps.Generator.HandleStrength)

		r.Get("/currencies", deps.Converter.HandleCurrencies)
		r.Get("/rates/{from}/{to}", deps.Converter.HandleRate)
		r.Post("/convert", deps.Converter.HandleConvert)
		r.Get("/convert/quick", deps.Converter.HandleQuick)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession)
			r.Get("/history/passwords", deps.Generator.HandleListHistory)
			r.Delete("/history/passwords", deps.Generator.HandleClearHistory)
			r.Get("/history/conversions", deps.Converter.HandleListHistory)
			r.Delete("/history/conversions", deps.Converter.HandleClearHistory)
		})
	})

	return r
}
