package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/navs/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool            `json:"ready"`
	Store componentStatus `json:"store"`
}

// Readyz is ready once the index holds a first snapshot. A failing store
// is reported but does not block reads.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ready := !d.MemoryIndex.GetLastReload().IsZero()

		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, readyzResponse{
			Ready: ready,
			Store: checkStore(r.Context(), d),
		})
	}
}
