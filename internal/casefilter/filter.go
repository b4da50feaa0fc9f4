// Package casefilter implements the pure matching predicates over the case
// corpus: plain keyword search and multi-criteria filtering. All functions
// preserve input order and never modify the records they are given.
package casefilter

import (
	"strconv"
	"strings"
	"time"

	"github.com/kwabena/caselaw/internal/models"
)

// Search keeps the cases whose title, description, judges, citation, or court
// contains query, case-insensitively. An empty query is the identity filter
// and returns cases unchanged.
func Search(cases []models.Case, query string) []models.Case {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return cases
	}
	matched := make([]models.Case, 0, len(cases))
	for _, c := range cases {
		if containsFold(c.Title, q) ||
			containsFold(c.Description, q) ||
			containsFold(c.Judges, q) ||
			containsFold(c.Citation, q) ||
			containsFold(c.Court, q) {
			matched = append(matched, c)
		}
	}
	return matched
}

// Filter keeps the cases satisfying every criterion present in f. Criteria
// with no fields set are the identity filter.
func Filter(cases []models.Case, f models.FilterCriteria) []models.Case {
	if f.IsZero() {
		return cases
	}

	keyword := strings.ToLower(strings.TrimSpace(f.Keyword))
	judge := strings.ToLower(strings.TrimSpace(f.Judge))
	caseType := strings.ToLower(strings.TrimSpace(f.CaseType))
	year, yearSet := parseFilterYear(f.Year)

	matched := make([]models.Case, 0, len(cases))
	for _, c := range cases {
		if keyword != "" && !matchesKeyword(c, keyword) {
			continue
		}
		if strings.TrimSpace(f.Year) != "" && (!yearSet || !matchesYear(c, year)) {
			continue
		}
		if judge != "" && !matchesJudge(c, judge) {
			continue
		}
		if caseType != "" && !matchesCaseType(c, caseType) {
			continue
		}
		matched = append(matched, c)
	}
	return matched
}

// matchesKeyword checks the keyword criterion's four fields: title,
// description, citation, court.
func matchesKeyword(c models.Case, keyword string) bool {
	return containsFold(c.Title, keyword) ||
		containsFold(c.Description, keyword) ||
		containsFold(c.Citation, keyword) ||
		containsFold(c.Court, keyword)
}

// matchesYear compares the record's decision year. Records whose date is the
// "not recorded" sentinel or does not parse never match (fail closed).
func matchesYear(c models.Case, year int) bool {
	if c.Date == "" || c.Date == models.DateNotRecorded {
		return false
	}
	parsed, err := time.Parse(time.DateOnly, c.Date)
	if err != nil {
		return false
	}
	return parsed.Year() == year
}

// matchesJudge is substring containment against the joined judges string; the
// "unavailable" sentinel never matches.
func matchesJudge(c models.Case, judge string) bool {
	if c.Judges == "" || c.Judges == models.JudgesUnavailable {
		return false
	}
	return containsFold(c.Judges, judge)
}

// matchesCaseType expands the type through the synonym table and matches any
// synonym against the concatenated title, description, citation, and majority
// opinion. An unrecognized type is used as its own sole keyword.
func matchesCaseType(c models.Case, caseType string) bool {
	keywords, ok := typeKeywords[caseType]
	if !ok {
		keywords = []string{caseType}
	}
	text := strings.ToLower(c.Title + " " + c.Description + " " + c.Citation + " " + c.MajorityOpinion)
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// parseFilterYear parses the year criterion. A non-numeric value yields
// yearSet false, which makes the year criterion match nothing; range
// validation happens upstream, before any filtering runs.
func parseFilterYear(year string) (int, bool) {
	year = strings.TrimSpace(year)
	if year == "" {
		return 0, false
	}
	n, err := strconv.Atoi(year)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ValidateYear reports whether year is acceptable as a filter value: empty
// (no constraint), or an integer between 1900 and next calendar year.
func ValidateYear(year string) bool {
	year = strings.TrimSpace(year)
	if year == "" {
		return true
	}
	n, err := strconv.Atoi(year)
	if err != nil {
		return false
	}
	return n >= 1900 && n <= time.Now().Year()+1
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
