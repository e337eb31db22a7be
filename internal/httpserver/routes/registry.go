// Package routes collects route registrars. Each file registers its routes
// from init, and the server mounts them all at once.
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/navs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navs/internal/logger"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

type entry struct {
	reg Registrar
	mws []Middleware
}

var registry []entry

// Register a registrar with optional middlewares applied to all its routes.
func Register(reg Registrar, mws ...Middleware) {
	registry = append(registry, entry{reg: reg, mws: mws})
}

// RegisterAll mounts every registrar on r and logs the resulting routes at
// debug level.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, e := range registry {
		if len(e.mws) == 0 {
			e.reg(r, d)
			continue
		}
		r.Group(func(sub chi.Router) {
			sub.Use(e.mws...)
			e.reg(sub, d)
		})
	}

	n := 0
	_ = chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		n++
		d.Logger.Debug("route registered",
			logger.String("method", method),
			logger.String("route", route))
		return nil
	})
	d.Logger.Info("routes registered", logger.Int("count", n))
}
