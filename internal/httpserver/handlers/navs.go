package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/navs/internal/domain"
	"github.com/MrSnakeDoc/navs/internal/httpserver/deps"
)

// ListNavs serves GET /navs?keyword=&groupName=&sort=&page=&size=
func ListNavs(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size, err := paging(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		q := r.URL.Query()
		res, err := d.Finder.ListLinks(r.Context(), domain.LinkQuery{
			Keyword:   q.Get("keyword"),
			GroupName: q.Get("groupName"),
			Sort:      sortParam(r),
			Page:      page,
			Size:      size,
		})
		if err != nil {
			unavailable(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// GroupedNavs serves GET /navs/grouped
func GroupedNavs(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		buckets, err := d.Finder.GroupWithLinks(r.Context())
		if err != nil {
			unavailable(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, buckets)
	}
}
