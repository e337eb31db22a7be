package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/navs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navs/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/navs/internal/httpserver/mw"
)

// APIPrefix is the mount point of the public query API.
const APIPrefix = "/api/v1alpha1"

func init() { Register(registerNavs) }

func registerNavs(r chi.Router, d deps.Deps) {
	r.Route(APIPrefix, func(r chi.Router) {
		if d.RateLimitPerMin > 0 {
			r.Use(mw.RateLimit(mw.RateLimitConfig{
				Burst:             d.RateLimitBurst,
				RefillPerIPPerMin: d.RateLimitPerMin,
				TrustProxy:        d.TrustProxy,
			}))
		}
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))

		r.Get("/navs", handlers.ListNavs(d))
		r.Get("/navs/grouped", handlers.GroupedNavs(d))

		r.Get("/navgroups", handlers.ListNavGroups(d))
		r.Get("/navgroups/tree", handlers.NavGroupTree(d))
		r.Get("/navgroups/{name}/navs", handlers.NavGroupNavs(d))
	})
}
