package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/navs/internal/domain"
	"github.com/MrSnakeDoc/navs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navs/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// unavailable reports a failed read from the store.
func unavailable(w http.ResponseWriter, r *http.Request, d deps.Deps, err error) {
	d.Logger.Error("navigation query failed",
		logger.String("path", r.URL.Path),
		logger.Error(err))
	writeError(w, http.StatusServiceUnavailable, err.Error())
}

// paging reads the page and size parameters. Missing values are 0, which
// disables paging.
func paging(r *http.Request) (page, size int, err error) {
	if page, err = nonNegativeInt(r, "page"); err != nil {
		return 0, 0, err
	}
	if size, err = nonNegativeInt(r, "size"); err != nil {
		return 0, 0, err
	}
	return page, size, nil
}

func nonNegativeInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return v, nil
}

// sortParam reads every sort=field[,dir] parameter. Unknown fields are
// dropped.
func sortParam(r *http.Request) domain.Sort {
	return domain.ParseSort(r.URL.Query()["sort"])
}
