package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/navs/internal/domain"
	"github.com/MrSnakeDoc/navs/internal/httpserver/deps"
)

// ListNavGroups serves GET /navgroups?keyword=&sort=&page=&size=
func ListNavGroups(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size, err := paging(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		res, err := d.Finder.ListGroups(r.Context(), domain.GroupQuery{
			Keyword: r.URL.Query().Get("keyword"),
			Sort:    sortParam(r),
			Page:    page,
			Size:    size,
		})
		if err != nil {
			unavailable(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// NavGroupTree serves GET /navgroups/tree?root=&format=json|text
//
// Parent cycles found while assembling are listed in the X-Group-Cycles
// header, one cycle per entry.
func NavGroupTree(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		format := strings.ToLower(q.Get("format"))
		if format != "" && format != "json" && format != "text" {
			writeError(w, http.StatusBadRequest, "format must be json or text")
			return
		}

		forest, err := d.Finder.Tree(r.Context(), strings.TrimSpace(q.Get("root")))
		if err != nil {
			unavailable(w, r, d, err)
			return
		}
		for _, cycle := range forest.Cycles {
			w.Header().Add("X-Group-Cycles", strings.Join(cycle, ","))
		}

		if format == "text" {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(domain.RenderTree(forest.Nodes)))
			return
		}
		nodes := forest.Nodes
		if nodes == nil {
			nodes = []*domain.GroupTreeNode{}
		}
		writeJSON(w, http.StatusOK, nodes)
	}
}

// NavGroupNavs serves GET /navgroups/{name}/navs?sort=
// The reserved ungrouped name selects links without a group.
func NavGroupNavs(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if name == domain.UngroupedName {
			name = ""
		}

		links, err := d.Finder.ListLinksByGroup(r.Context(), name, sortParam(r))
		if err != nil {
			unavailable(w, r, d, err)
			return
		}
		if links == nil {
			links = []*domain.Link{}
		}
		writeJSON(w, http.StatusOK, links)
	}
}
