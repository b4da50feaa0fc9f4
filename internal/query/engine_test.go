package query_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kwabena/caselaw/internal/cache"
	"github.com/kwabena/caselaw/internal/models"
	"github.com/kwabena/caselaw/internal/query"
	"github.com/kwabena/caselaw/internal/wikidata"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	calls int
	cases []models.Case
	err   error
}

func (f *fakeSource) Fetch(ctx context.Context, forceRefresh bool) ([]models.Case, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.cases, nil
}

func numberedCorpus(n int) []models.Case {
	cases := make([]models.Case, 0, n)
	for i := 0; i < n; i++ {
		cases = append(cases, models.Case{
			CaseID: fmt.Sprintf("Q%03d", i),
			Title:  fmt.Sprintf("Case number %03d", i),
			Date:   "2020-01-01",
		})
	}
	return cases
}

func newEngine(source *fakeSource) *query.Engine {
	return query.NewEngine(source, cache.New[*models.PageResult](32), time.Minute, zap.NewNop())
}

func TestSearchPaginationContract(t *testing.T) {
	source := &fakeSource{cases: numberedCorpus(45)}
	engine := newEngine(source)

	page1, err := engine.Search(context.Background(), "", 1, 20)
	require.NoError(t, err)
	require.Len(t, page1.Results, 20)
	require.Equal(t, "Q000", page1.Results[0].CaseID)
	require.Equal(t, "Q019", page1.Results[19].CaseID)
	require.Equal(t, models.Pagination{
		CurrentPage:     1,
		TotalPages:      3,
		TotalItems:      45,
		ItemsPerPage:    20,
		HasNextPage:     true,
		HasPreviousPage: false,
	}, page1.Pagination)

	page3, err := engine.Search(context.Background(), "", 3, 20)
	require.NoError(t, err)
	require.Len(t, page3.Results, 5)
	require.Equal(t, "Q040", page3.Results[0].CaseID)
	require.Equal(t, "Q044", page3.Results[4].CaseID)
	require.False(t, page3.Pagination.HasNextPage)
	require.True(t, page3.Pagination.HasPreviousPage)
}

func TestSearchPastEndReturnsEmptyPage(t *testing.T) {
	source := &fakeSource{cases: numberedCorpus(5)}
	engine := newEngine(source)

	page, err := engine.Search(context.Background(), "", 4, 20)
	require.NoError(t, err)
	require.NotNil(t, page.Results)
	require.Empty(t, page.Results)
	require.Equal(t, 1, page.Pagination.TotalPages)
	require.False(t, page.Pagination.HasNextPage)
}

func TestSearchClampsPageAndLimit(t *testing.T) {
	source := &fakeSource{cases: numberedCorpus(100)}
	engine := newEngine(source)

	page, err := engine.Search(context.Background(), "", 0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, page.Pagination.CurrentPage)
	require.Equal(t, query.DefaultLimit, page.Pagination.ItemsPerPage)

	page, err = engine.Search(context.Background(), "", 1, 500)
	require.NoError(t, err)
	require.Equal(t, query.MaxLimit, page.Pagination.ItemsPerPage)
	require.Len(t, page.Results, query.MaxLimit)
}

func TestSearchCachesByNormalizedQuery(t *testing.T) {
	source := &fakeSource{cases: numberedCorpus(10)}
	engine := newEngine(source)

	first, err := engine.Search(context.Background(), "Case Number", 1, 20)
	require.NoError(t, err)
	require.Equal(t, 1, source.calls)

	second, err := engine.Search(context.Background(), "  case number  ", 1, 20)
	require.NoError(t, err)
	require.Equal(t, 1, source.calls, "normalized query hits the same cache entry")
	require.Same(t, first, second, "cached response returned as-is")
}

func TestFilterIdempotentWithinTTL(t *testing.T) {
	source := &fakeSource{cases: numberedCorpus(30)}
	engine := newEngine(source)
	criteria := models.FilterCriteria{Keyword: "case", Year: "2020"}

	first, err := engine.Filter(context.Background(), criteria, 2, 10)
	require.NoError(t, err)
	require.Equal(t, 1, source.calls)

	second, err := engine.Filter(context.Background(), criteria, 2, 10)
	require.NoError(t, err)
	require.Equal(t, 1, source.calls, "no second upstream fetch")
	require.Equal(t, first, second)
}

func TestFilterDistinctParamsUseDistinctKeys(t *testing.T) {
	source := &fakeSource{cases: numberedCorpus(30)}
	engine := newEngine(source)

	a, err := engine.Filter(context.Background(), models.FilterCriteria{Year: "2020"}, 1, 10)
	require.NoError(t, err)
	b, err := engine.Filter(context.Background(), models.FilterCriteria{Year: "2021"}, 1, 10)
	require.NoError(t, err)

	require.Equal(t, 30, a.Pagination.TotalItems)
	require.Equal(t, 0, b.Pagination.TotalItems)
}

func TestFilterValidatesYearBeforeAnyWork(t *testing.T) {
	source := &fakeSource{cases: numberedCorpus(5)}
	engine := newEngine(source)

	_, err := engine.Filter(context.Background(), models.FilterCriteria{Year: "18xx"}, 1, 20)
	var verr *query.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Message, "invalid year")
	require.Equal(t, 0, source.calls, "validation failure touches no cache or source")
}

func TestZeroMatchesNormalizesToEmptyPage(t *testing.T) {
	source := &fakeSource{cases: numberedCorpus(3)}
	engine := newEngine(source)

	page, err := engine.Filter(context.Background(), models.FilterCriteria{Year: "1999"}, 1, 20)
	require.NoError(t, err)
	require.NotNil(t, page.Results)
	require.Empty(t, page.Results)
	require.Equal(t, 0, page.Pagination.TotalPages)
	require.Equal(t, 0, page.Pagination.TotalItems)
	require.False(t, page.Pagination.HasNextPage)
}

func TestUpstreamErrorPropagatesUncached(t *testing.T) {
	source := &fakeSource{err: &wikidata.UpstreamError{Kind: wikidata.KindTimeout, Message: "slow"}}
	engine := newEngine(source)

	_, err := engine.Search(context.Background(), "rights", 1, 20)
	kind, ok := wikidata.KindOf(err)
	require.True(t, ok)
	require.Equal(t, wikidata.KindTimeout, kind)

	// The failure is not cached: a recovered source serves the next call.
	source.err = nil
	source.cases = numberedCorpus(2)
	page, err := engine.Search(context.Background(), "", 1, 20)
	require.NoError(t, err)
	require.Equal(t, 2, page.Pagination.TotalItems)
}

func TestSearchEndToEnd(t *testing.T) {
	source := &fakeSource{cases: []models.Case{
		{CaseID: "Q1", Title: "Case one", Description: "About land ownership"},
		{CaseID: "Q2", Title: "Case two", Description: "Concerning fundamental rights"},
		{CaseID: "Q3", Title: "Case three", Description: "A commercial dispute"},
	}}
	engine := newEngine(source)

	page, err := engine.Search(context.Background(), "rights", 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	require.Equal(t, "Q2", page.Results[0].CaseID)
	require.Equal(t, 1, page.Pagination.TotalPages)
}
