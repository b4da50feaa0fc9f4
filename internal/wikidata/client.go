// Package wikidata fetches the court-case corpus from the Wikidata SPARQL
// endpoint and normalizes the response into Case records.
package wikidata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/kwabena/caselaw/internal/config"
	"github.com/kwabena/caselaw/internal/models"
	"go.uber.org/zap"
)

// Client performs one-shot SPARQL queries against a Wikidata-compatible
// endpoint.
type Client struct {
	endpoint   string
	userAgent  string
	maxResults int
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client from config. The HTTP client carries the
// configured timeout; expiry surfaces as an UpstreamError with kind timeout.
func NewClient(cfg *config.Wikidata, logger *zap.Logger) *Client {
	return &Client{
		endpoint:   cfg.Endpoint,
		userAgent:  cfg.UserAgent,
		maxResults: cfg.MaxResults,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		logger:     logger,
	}
}

// sparqlResponse is the subset of the SPARQL JSON results format the parser
// reads.
type sparqlResponse struct {
	Results *struct {
		Bindings []binding `json:"bindings"`
	} `json:"results"`
}

type binding map[string]struct {
	Value string `json:"value"`
}

func (b binding) value(name string) string {
	return b[name].Value
}

// FetchCases runs the corpus query and parses the response. Failures are
// returned as *UpstreamError; a response with zero well-formed records is
// success with an empty slice.
func (c *Client) FetchCases(ctx context.Context) ([]models.Case, error) {
	reqURL := fmt.Sprintf("%s?query=%s&format=json", c.endpoint, url.QueryEscape(sparqlQuery(c.maxResults)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &UpstreamError{Kind: KindBadResponse, Message: "building request", Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/sparql-results+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{
			Kind:    KindBadResponse,
			Message: fmt.Sprintf("endpoint returned status %d", resp.StatusCode),
		}
	}

	var payload sparqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &UpstreamError{Kind: KindMalformedPayload, Message: "decoding response", Err: err}
	}
	if payload.Results == nil || payload.Results.Bindings == nil {
		return nil, &UpstreamError{Kind: KindMalformedPayload, Message: "response missing results.bindings"}
	}

	return c.parseBindings(payload.Results.Bindings), nil
}

// parseBindings converts raw bindings to records. Items without a resolvable
// identifier are dropped; every other missing field gets its sentinel so
// downstream string operations are always safe.
func (c *Client) parseBindings(bindings []binding) []models.Case {
	cases := make([]models.Case, 0, len(bindings))
	dropped := 0
	for _, b := range bindings {
		itemURL := b.value("item")
		id := itemURL[strings.LastIndex(itemURL, "/")+1:]
		if id == "" {
			dropped++
			continue
		}
		cases = append(cases, models.Case{
			CaseID:          id,
			Title:           orSentinel(b.value("itemLabel"), models.TitleUnavailable),
			Description:     orSentinel(b.value("itemDescription"), models.DescriptionUnavailable),
			Date:            parseDate(b.value("date")),
			Citation:        orSentinel(b.value("legal_citation"), models.CitationUnavailable),
			Court:           orSentinel(b.value("courtLabel"), models.CourtNotSpecified),
			MajorityOpinion: orSentinel(b.value("majority_opinionLabel"), models.OpinionUnavailable),
			SourceLabel:     orSentinel(b.value("sourceLabel"), models.SourceUnavailable),
			Judges:          orSentinel(b.value("judges"), models.JudgesUnavailable),
			ArticleURL:      itemURL,
		})
	}
	if dropped > 0 {
		c.logger.Warn("dropped records without identifier", zap.Int("dropped", dropped))
	}
	c.logger.Debug("parsed corpus", zap.Int("records", len(cases)), zap.Int("bindings", len(bindings)))
	return cases
}

// parseDate trims the Wikidata timestamp ("2020-03-12T00:00:00Z") down to the
// calendar date.
func parseDate(raw string) string {
	if raw == "" {
		return models.DateNotRecorded
	}
	if i := strings.IndexByte(raw, 'T'); i >= 0 {
		return raw[:i]
	}
	return raw
}

func orSentinel(value, sentinel string) string {
	if value == "" {
		return sentinel
	}
	return value
}
