package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/navs/internal/httpserver/deps"
)

const storePingTimeout = 2 * time.Second

type componentStatus struct {
	OK           bool   `json:"ok"`
	LinksLoaded  *int   `json:"links_loaded,omitempty"`
	GroupsLoaded *int   `json:"groups_loaded,omitempty"`
	LastReload   string `json:"last_reload,omitempty"`
	Mode         string `json:"mode,omitempty"`
	Impact       string `json:"impact,omitempty"`
	Error        string `json:"error,omitempty"`
}

type infraResponse struct {
	ServingMode string                     `json:"serving_mode"`
	Components  map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"index": indexStatus(d),
			"store": checkStore(r.Context(), d),
		}
		if d.SourceFile != "" {
			components["source"] = componentStatus{OK: true, Mode: d.SourceFile}
		}

		writeJSON(w, http.StatusOK, infraResponse{
			ServingMode: determineServingMode(components),
			Components:  components,
		})
	}
}

func indexStatus(d deps.Deps) componentStatus {
	links := d.MemoryIndex.LinkCount()
	groups := d.MemoryIndex.GroupCount()
	lastReload := d.MemoryIndex.GetLastReload()

	lastReloadStr := "never"
	if !lastReload.IsZero() {
		lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
	}
	return componentStatus{
		OK:           !lastReload.IsZero(),
		LinksLoaded:  &links,
		GroupsLoaded: &groups,
		LastReload:   lastReloadStr,
	}
}

func determineServingMode(components map[string]componentStatus) string {
	if idx, ok := components["index"]; ok && !idx.OK {
		return "critical" // nothing loaded yet
	}
	if st, ok := components["store"]; ok && !st.OK {
		return "degraded" // serving, but changes are not persisted
	}
	return "optimal"
}

func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{
			OK:     true,
			Mode:   d.StoreBackend,
			Impact: "not-persisted",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, storePingTimeout)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   d.StoreBackend,
			Impact: "changes-not-persisted",
			Error:  err.Error(),
		}
	}
	return componentStatus{
		OK:   true,
		Mode: d.StoreBackend,
	}
}
