package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kwabena/caselaw/internal/cache"
	"github.com/kwabena/caselaw/internal/models"
	"github.com/kwabena/caselaw/internal/query"
	"github.com/kwabena/caselaw/internal/wikidata"
	"go.uber.org/zap"
)

type searchResponse struct {
	Success    bool              `json:"success"`
	Results    []models.Case     `json:"results"`
	Pagination models.Pagination `json:"pagination"`
}

type filterResponse struct {
	Success    bool                  `json:"success"`
	Results    []models.Case         `json:"results"`
	Filters    models.AppliedFilters `json:"filters"`
	Count      int                   `json:"count"`
	Pagination models.Pagination     `json:"pagination"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	page := intParam(r, "page", 1)
	limit := intParam(r, "limit", query.DefaultLimit)
	s.logger.Debug("search request",
		zap.String("request_id", requestIDFrom(r.Context())),
		zap.String("q", q), zap.Int("page", page), zap.Int("limit", limit),
	)

	result, err := s.engine.Search(r.Context(), q, page, limit)
	if err != nil {
		s.respondQueryError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, searchResponse{
		Success:    true,
		Results:    result.Results,
		Pagination: result.Pagination,
	})
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	criteria := models.FilterCriteria{
		Keyword:  strings.TrimSpace(params.Get("keyword")),
		Year:     strings.TrimSpace(params.Get("year")),
		Judge:    strings.TrimSpace(params.Get("judge")),
		CaseType: strings.TrimSpace(params.Get("type")),
	}
	page := intParam(r, "page", 1)
	limit := intParam(r, "limit", query.DefaultLimit)
	s.logger.Debug("filter request",
		zap.String("request_id", requestIDFrom(r.Context())),
		zap.String("keyword", criteria.Keyword), zap.String("year", criteria.Year),
		zap.String("judge", criteria.Judge), zap.String("type", criteria.CaseType),
		zap.Int("page", page), zap.Int("limit", limit),
	)

	result, err := s.engine.Filter(r.Context(), criteria, page, limit)
	if err != nil {
		s.respondQueryError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, filterResponse{
		Success:    true,
		Results:    result.Results,
		Filters:    criteria.Echo(),
		Count:      result.Pagination.TotalItems,
		Pagination: result.Pagination,
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Supreme Court of Ghana Cases API",
		"version":     Version,
		"description": "API for searching Supreme Court of Ghana cases from Wikidata",
		"endpoints": map[string]string{
			"health":      "GET /api/health",
			"search":      "GET /search?q={query}&page={page}&limit={limit}",
			"filter":      "GET /filter?keyword={keyword}&year={year}&judge={judge}&type={type}",
			"cache_stats": "GET /api/cache/stats",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).Seconds(),
	})
}

type cacheEntryView struct {
	Key         string `json:"key"`
	AgeMs       int64  `json:"age"`
	ExpiresInMs int64  `json:"expiresIn"`
}

type cacheStatsView struct {
	Size     int              `json:"size"`
	Capacity int              `json:"maxSize"`
	Entries  []cacheEntryView `json:"entries"`
}

func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]cacheStatsView{
		"corpus":  statsView(s.corpusStore.Stats()),
		"results": statsView(s.results.Stats()),
	})
}

func statsView(stats cache.Stats) cacheStatsView {
	view := cacheStatsView{
		Size:     stats.Size,
		Capacity: stats.Capacity,
		Entries:  make([]cacheEntryView, 0, len(stats.Entries)),
	}
	for _, e := range stats.Entries {
		view.Entries = append(view.Entries, cacheEntryView{
			Key:         e.Key,
			AgeMs:       e.Age.Milliseconds(),
			ExpiresInMs: e.ExpiresIn.Milliseconds(),
		})
	}
	return view
}

// respondQueryError maps engine errors to status codes: caller mistakes are
// 400, upstream failures are the 5xx class matching their kind. An empty
// result is never produced from a failure.
func (s *Server) respondQueryError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := requestIDFrom(r.Context())

	var verr *query.ValidationError
	if errors.As(err, &verr) {
		s.respondError(w, http.StatusBadRequest, verr.Message)
		return
	}

	if kind, ok := wikidata.KindOf(err); ok {
		s.logger.Error("upstream fetch failed",
			zap.String("request_id", reqID),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		switch kind {
		case wikidata.KindTimeout:
			s.respondError(w, http.StatusGatewayTimeout,
				"Wikidata API request timed out. The service may be slow. Please try again in a moment.")
		case wikidata.KindUnreachable:
			s.respondError(w, http.StatusServiceUnavailable,
				"Cannot reach the Wikidata API. Please try again later.")
		default:
			s.respondError(w, http.StatusBadGateway,
				"Wikidata returned an unusable response. The service may be temporarily unavailable.")
		}
		return
	}

	s.logger.Error("request failed", zap.String("request_id", reqID), zap.Error(err))
	s.respondError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
}

func intParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]interface{}{"success": false, "error": message})
}
