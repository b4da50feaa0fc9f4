package wikidata_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kwabena/caselaw/internal/config"
	"github.com/kwabena/caselaw/internal/models"
	"github.com/kwabena/caselaw/internal/wikidata"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleResponse = `{
  "results": {
    "bindings": [
      {
        "item": {"value": "http://www.wikidata.org/entity/Q123"},
        "itemLabel": {"value": "Mensah v Attorney General"},
        "itemDescription": {"value": "Supreme Court case on human rights"},
        "date": {"value": "2020-03-12T00:00:00Z"},
        "legal_citation": {"value": "[2020] SCGLR 45"},
        "courtLabel": {"value": "Supreme Court of Ghana"},
        "majority_opinionLabel": {"value": "Unanimous"},
        "sourceLabel": {"value": "Ghana Law Reports"},
        "judges": {"value": "Akuffo, Dotse"}
      },
      {
        "item": {"value": "http://www.wikidata.org/entity/Q456"},
        "itemLabel": {"value": "Republic v Owusu"}
      },
      {
        "item": {"value": ""},
        "itemLabel": {"value": "Record without identifier"}
      }
    ]
  }
}`

func newClient(t *testing.T, endpoint string, timeout time.Duration) *wikidata.Client {
	t.Helper()
	cfg := &config.Wikidata{
		Endpoint:       endpoint,
		TimeoutSeconds: int(timeout / time.Second),
		UserAgent:      "caselaw-test/1.0",
		MaxResults:     100,
	}
	return wikidata.NewClient(cfg, zap.NewNop())
}

func TestFetchCasesParsesAndAppliesSentinels(t *testing.T) {
	var gotUA, gotFormat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotFormat = r.URL.Query().Get("format")
		require.NotEmpty(t, r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/sparql-results+json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, 5*time.Second)
	cases, err := client.FetchCases(context.Background())
	require.NoError(t, err)

	require.Equal(t, "caselaw-test/1.0", gotUA)
	require.Equal(t, "json", gotFormat)
	require.Len(t, cases, 2, "record without identifier dropped")

	full := cases[0]
	require.Equal(t, "Q123", full.CaseID)
	require.Equal(t, "Mensah v Attorney General", full.Title)
	require.Equal(t, "2020-03-12", full.Date, "timestamp trimmed to calendar date")
	require.Equal(t, "Akuffo, Dotse", full.Judges)
	require.Equal(t, "http://www.wikidata.org/entity/Q123", full.ArticleURL)

	sparse := cases[1]
	require.Equal(t, "Q456", sparse.CaseID)
	require.Equal(t, models.DescriptionUnavailable, sparse.Description)
	require.Equal(t, models.DateNotRecorded, sparse.Date)
	require.Equal(t, models.CitationUnavailable, sparse.Citation)
	require.Equal(t, models.CourtNotSpecified, sparse.Court)
	require.Equal(t, models.OpinionUnavailable, sparse.MajorityOpinion)
	require.Equal(t, models.SourceUnavailable, sparse.SourceLabel)
	require.Equal(t, models.JudgesUnavailable, sparse.Judges)
}

func TestFetchCasesEmptyBindingsIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": {"bindings": []}}`))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, 5*time.Second)
	cases, err := client.FetchCases(context.Background())
	require.NoError(t, err)
	require.Empty(t, cases)
}

func TestFetchCasesBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, 5*time.Second)
	_, err := client.FetchCases(context.Background())
	kind, ok := wikidata.KindOf(err)
	require.True(t, ok)
	require.Equal(t, wikidata.KindBadResponse, kind)
}

func TestFetchCasesMalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>maintenance</html>"},
		{"missing bindings", `{"head": {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := newClient(t, srv.URL, 5*time.Second)
			_, err := client.FetchCases(context.Background())
			kind, ok := wikidata.KindOf(err)
			require.True(t, ok)
			require.Equal(t, wikidata.KindMalformedPayload, kind)
		})
	}
}

func TestFetchCasesTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, 5*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.FetchCases(ctx)
	kind, ok := wikidata.KindOf(err)
	require.True(t, ok)
	require.Equal(t, wikidata.KindTimeout, kind)
}

func TestFetchCasesUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	client := newClient(t, endpoint, 5*time.Second)
	_, err := client.FetchCases(context.Background())
	kind, ok := wikidata.KindOf(err)
	require.True(t, ok)
	require.Equal(t, wikidata.KindUnreachable, kind)
}
