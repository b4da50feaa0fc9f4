package wikidata

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// Kind classifies why a corpus fetch failed.
type Kind string

const (
	KindTimeout          Kind = "timeout"
	KindUnreachable      Kind = "unreachable"
	KindBadResponse      Kind = "bad_response"
	KindMalformedPayload Kind = "malformed_payload"
)

// UpstreamError describes a failed corpus fetch, classified so the boundary
// layer can choose a status code. An empty parsed result set is not an error.
type UpstreamError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("wikidata fetch failed (%s): %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("wikidata fetch failed (%s): %s", e.Kind, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// KindOf extracts the classification from err, if it is an UpstreamError.
func KindOf(err error) (Kind, bool) {
	var uerr *UpstreamError
	if errors.As(err, &uerr) {
		return uerr.Kind, true
	}
	return "", false
}

// classifyTransportError maps an http.Client error to timeout or unreachable.
func classifyTransportError(err error) *UpstreamError {
	var uerr *url.Error
	if (errors.As(err, &uerr) && uerr.Timeout()) || errors.Is(err, context.DeadlineExceeded) {
		return &UpstreamError{Kind: KindTimeout, Message: "request timed out", Err: err}
	}
	return &UpstreamError{Kind: KindUnreachable, Message: "cannot reach endpoint", Err: err}
}
