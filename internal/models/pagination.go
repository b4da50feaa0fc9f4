package models

// Pagination describes where a page sits in the full match set. Field names
// are part of the compatibility surface consumed by the UI.
type Pagination struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalItems      int  `json:"totalItems"`
	ItemsPerPage    int  `json:"itemsPerPage"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// PageResult is one page of matches plus its pagination envelope. Both the
// search and the filter path produce this shape with identical semantics.
// A query with zero matches yields an empty Results slice and TotalPages 0.
type PageResult struct {
	Results    []Case     `json:"results"`
	Pagination Pagination `json:"pagination"`
}
