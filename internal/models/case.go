// Package models defines the case record, filter criteria, and pagination
// types shared across the service.
package models

// Sentinel strings substituted for fields missing from the upstream payload.
// The UI renders these literally, so they are part of the response contract;
// filter code compares against the same values parsing writes.
const (
	TitleUnavailable       = "Not Available"
	DescriptionUnavailable = "No description available"
	DateNotRecorded        = "Date not recorded"
	CitationUnavailable    = "Citation unavailable"
	CourtNotSpecified      = "Court not specified"
	OpinionUnavailable     = "Majority opinion unavailable"
	SourceUnavailable      = "Source unavailable"
	JudgesUnavailable      = "Judges unavailable"
)

// Case is one court-case record from the upstream corpus. Records are
// immutable after parsing, and every field holds a usable string: missing
// data is replaced by the sentinel constants above, never left empty.
type Case struct {
	CaseID          string `json:"caseId"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Date            string `json:"date"`
	Citation        string `json:"citation"`
	Court           string `json:"court"`
	MajorityOpinion string `json:"majorityOpinion"`
	SourceLabel     string `json:"sourceLabel"`
	Judges          string `json:"judges"`
	ArticleURL      string `json:"articleUrl"`
}

// FilterCriteria holds the optional filter axes of the advanced filter path.
// An empty field means no constraint on that axis.
type FilterCriteria struct {
	Keyword  string
	Year     string
	Judge    string
	CaseType string
}

// IsZero reports whether no criterion is set.
func (c FilterCriteria) IsZero() bool {
	return c.Keyword == "" && c.Year == "" && c.Judge == "" && c.CaseType == ""
}

// AppliedFilters echoes the criteria a filter response was produced with,
// using nulls for absent axes.
type AppliedFilters struct {
	Keyword  *string `json:"keyword"`
	Year     *string `json:"year"`
	Judge    *string `json:"judge"`
	CaseType *string `json:"caseType"`
}

// Echo builds the response echo for a set of criteria.
func (c FilterCriteria) Echo() AppliedFilters {
	return AppliedFilters{
		Keyword:  optional(c.Keyword),
		Year:     optional(c.Year),
		Judge:    optional(c.Judge),
		CaseType: optional(c.CaseType),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
