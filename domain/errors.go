package domain

import "errors"

// Sentinel errors for feed ingestion failures. Gateways classify raw
// transport and parser errors into exactly one of these; anything that
// does not match stays opaque and surfaces as an unknown failure.
var (
	// ErrInvalidFeedAddress indicates the supplied feed URL is not a
	// syntactically valid absolute http(s) URI.
	ErrInvalidFeedAddress = errors.New("invalid feed address")

	// ErrUnreachableHost indicates the feed host could not be resolved.
	ErrUnreachableHost = errors.New("unreachable feed host")

	// ErrFeedNotFound indicates the host answered with an HTTP error
	// status for the feed URL.
	ErrFeedNotFound = errors.New("syndication feed not found")

	// ErrFeedParse indicates the response body was not a parseable
	// syndication feed.
	ErrFeedParse = errors.New("feed parse failure")
)

// IsFeedError reports whether err is one of the classified feed
// ingestion failures.
func IsFeedError(err error) bool {
	return errors.Is(err, ErrInvalidFeedAddress) ||
		errors.Is(err, ErrUnreachableHost) ||
		errors.Is(err, ErrFeedNotFound) ||
		errors.Is(err, ErrFeedParse)
}

// SearchEngineError represents an error from the search engine layer.
type SearchEngineError struct {
	Op  string
	Err string
}

func (e *SearchEngineError) Error() string {
	return e.Op + ": " + e.Err
}

// FeedSourceError represents an error from the feed transport layer that
// has been classified into one of the ingestion sentinels. Kind is the
// sentinel; Err preserves the underlying cause.
type FeedSourceError struct {
	Kind error
	Op   string
	Err  error
}

func (e *FeedSourceError) Error() string {
	return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
}

// Is makes errors.Is(err, sentinel) match the classification kind.
func (e *FeedSourceError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

// Unwrap exposes the underlying cause for errors.As inspection.
func (e *FeedSourceError) Unwrap() error {
	return e.Err
}
