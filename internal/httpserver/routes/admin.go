package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/navs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navs/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/navs/internal/httpserver/mw"
)

func init() { Register(registerAdmin) }

func registerAdmin(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))

	r.Group(func(r chi.Router) {
		r.Use(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
		r.Get("/readyz", handlers.Readyz(d))
		r.Get("/infra", handlers.Infra(d))
		r.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Post("/reload", handlers.Reload(d))
	})
}
