// Package corpus provides the cached, circuit-broken source of the full case
// corpus.
package corpus

import (
	"context"
	"errors"
	"time"

	"github.com/kwabena/caselaw/internal/cache"
	"github.com/kwabena/caselaw/internal/config"
	"github.com/kwabena/caselaw/internal/models"
	"github.com/kwabena/caselaw/internal/wikidata"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// corpusKey is the single cache key the whole-corpus snapshot lives under.
const corpusKey = "corpus:all"

// Fetcher is the upstream the source pulls the full record set from.
type Fetcher interface {
	FetchCases(ctx context.Context) ([]models.Case, error)
}

// Source yields the corpus, serving a cached snapshot while it is fresh.
type Source interface {
	Fetch(ctx context.Context, forceRefresh bool) ([]models.Case, error)
}

// CachedSource caches the corpus as one entry with a TTL materially longer
// than the per-query cache, and runs the upstream fetch through a circuit
// breaker. Fetch failures are never cached.
type CachedSource struct {
	fetcher Fetcher
	store   *cache.Store[[]models.Case]
	ttl     time.Duration
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewCachedSource wires a fetcher to the given store and TTL. When bcfg is
// enabled, repeated fetch failures open a breaker that short-circuits further
// attempts for its timeout window.
func NewCachedSource(fetcher Fetcher, store *cache.Store[[]models.Case], ttl time.Duration, bcfg *config.Breaker, logger *zap.Logger) *CachedSource {
	s := &CachedSource{
		fetcher: fetcher,
		store:   store,
		ttl:     ttl,
		logger:  logger,
	}
	if bcfg != nil && bcfg.EnabledOrDefault() {
		s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "wikidata",
			MaxRequests: bcfg.MaxRequests,
			Interval:    bcfg.Interval(),
			Timeout:     bcfg.Timeout(),
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				ratio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && ratio >= bcfg.FailureRatio
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("upstream breaker state change",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		})
	}
	return s
}

// Fetch returns the corpus, from cache when fresh unless forceRefresh is set.
// The snapshot a caller receives stays valid for that request even if a
// concurrent refresh replaces the cached value.
func (s *CachedSource) Fetch(ctx context.Context, forceRefresh bool) ([]models.Case, error) {
	if !forceRefresh {
		if cases, ok := s.store.Get(corpusKey); ok {
			s.logger.Debug("corpus cache hit", zap.Int("records", len(cases)))
			return cases, nil
		}
	}

	cases, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	s.store.Set(corpusKey, cases, s.ttl)
	s.logger.Info("corpus refreshed", zap.Int("records", len(cases)))
	return cases, nil
}

func (s *CachedSource) fetch(ctx context.Context) ([]models.Case, error) {
	if s.breaker == nil {
		return s.fetcher.FetchCases(ctx)
	}
	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.fetcher.FetchCases(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &wikidata.UpstreamError{
				Kind:    wikidata.KindUnreachable,
				Message: "upstream circuit open",
				Err:     err,
			}
		}
		return nil, err
	}
	return result.([]models.Case), nil
}
