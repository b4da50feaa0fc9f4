// Package query orchestrates the two request paths the service exposes:
// plain keyword search and advanced filtering. Both run through a single
// routine that owns cache lookup, corpus fetch, predicate application,
// pagination, and response caching, so their behavior cannot drift apart.
package query

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kwabena/caselaw/internal/cache"
	"github.com/kwabena/caselaw/internal/casefilter"
	"github.com/kwabena/caselaw/internal/corpus"
	"github.com/kwabena/caselaw/internal/models"
	"go.uber.org/zap"
)

const (
	// DefaultLimit is the page size used when the caller does not provide one.
	DefaultLimit = 20
	// MaxLimit is the hard ceiling on page size.
	MaxLimit = 50
)

// ValidationError reports a caller-correctable request problem, surfaced
// before any cache or upstream work happens.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Engine is the single orchestration point for both request paths.
type Engine struct {
	source   corpus.Source
	results  *cache.Store[*models.PageResult]
	queryTTL time.Duration
	logger   *zap.Logger
}

// NewEngine creates an engine that caches each distinct (path, parameters,
// page, limit) response in results for queryTTL.
func NewEngine(source corpus.Source, results *cache.Store[*models.PageResult], queryTTL time.Duration, logger *zap.Logger) *Engine {
	return &Engine{
		source:   source,
		results:  results,
		queryTTL: queryTTL,
		logger:   logger,
	}
}

// Search runs the plain keyword path. An empty query returns the whole
// corpus, paginated.
func (e *Engine) Search(ctx context.Context, q string, page, limit int) (*models.PageResult, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	page, limit = clamp(page, limit)
	key := fmt.Sprintf("search:%s:page:%d:limit:%d", q, page, limit)
	return e.run(ctx, key, page, limit, func(cases []models.Case) []models.Case {
		return casefilter.Search(cases, q)
	})
}

// Filter runs the advanced filter path. The year criterion is validated
// before any cache or upstream work; a malformed year is a hard failure, not
// an empty result.
func (e *Engine) Filter(ctx context.Context, criteria models.FilterCriteria, page, limit int) (*models.PageResult, error) {
	criteria = trimCriteria(criteria)
	if !casefilter.ValidateYear(criteria.Year) {
		return nil, &ValidationError{
			Message: fmt.Sprintf("invalid year %q: must be a number between 1900 and %d", criteria.Year, time.Now().Year()+1),
		}
	}
	page, limit = clamp(page, limit)
	key := fmt.Sprintf("filter:%s:%s:%s:%s:page:%d:limit:%d",
		criteria.Keyword, criteria.Year, criteria.Judge, criteria.CaseType, page, limit)
	return e.run(ctx, key, page, limit, func(cases []models.Case) []models.Case {
		return casefilter.Filter(cases, criteria)
	})
}

// run is the shared search/filter pipeline: result-cache lookup, corpus
// fetch, predicate, pagination, result-cache store. A cache hit bypasses the
// corpus source and the predicate entirely.
func (e *Engine) run(ctx context.Context, key string, page, limit int, predicate func([]models.Case) []models.Case) (*models.PageResult, error) {
	if cached, ok := e.results.Get(key); ok {
		e.logger.Debug("result cache hit", zap.String("key", key))
		return cached, nil
	}

	cases, err := e.source.Fetch(ctx, false)
	if err != nil {
		return nil, err
	}

	result := paginate(predicate(cases), page, limit)
	e.results.Set(key, result, e.queryTTL)
	e.logger.Debug("result computed",
		zap.String("key", key),
		zap.Int("corpus", len(cases)),
		zap.Int("matches", result.Pagination.TotalItems),
	)
	return result, nil
}

// paginate slices matched into the requested page. Zero matches yields an
// empty (non-nil) result page with TotalPages 0.
func paginate(matched []models.Case, page, limit int) *models.PageResult {
	total := len(matched)
	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	results := make([]models.Case, end-start)
	copy(results, matched[start:end])

	return &models.PageResult{
		Results: results,
		Pagination: models.Pagination{
			CurrentPage:     page,
			TotalPages:      (total + limit - 1) / limit,
			TotalItems:      total,
			ItemsPerPage:    limit,
			HasNextPage:     end < total,
			HasPreviousPage: page > 1,
		},
	}
}

func clamp(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

func trimCriteria(c models.FilterCriteria) models.FilterCriteria {
	c.Keyword = strings.TrimSpace(c.Keyword)
	c.Year = strings.TrimSpace(c.Year)
	c.Judge = strings.TrimSpace(c.Judge)
	c.CaseType = strings.TrimSpace(c.CaseType)
	return c
}
