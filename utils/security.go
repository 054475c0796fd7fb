// Package utils provides query sanitization for the search endpoints.
package utils

import (
	"context"
	"net/url"
	"strings"
)

// DefaultMaxQueryLength caps search query length in bytes.
const DefaultMaxQueryLength = 1000

// zero-width and direction-mark characters stripped before validation
var zeroWidthChars = []rune{
	'\u200B', // zero-width space
	'\u200C', // zero-width non-joiner
	'\u200D', // zero-width joiner
	'\uFEFF', // zero-width no-break space (BOM)
	'\u200E', // left-to-right mark
	'\u200F', // right-to-left mark
}

// SecurityError reports a query rejected on security grounds.
type SecurityError struct {
	Type    string
	Message string
}

func (e *SecurityError) Error() string {
	return e.Message
}

// QuerySanitizer validates and normalizes user-supplied search queries
// before they reach the search engine.
type QuerySanitizer struct {
	maxQueryLength int
}

func NewQuerySanitizer() *QuerySanitizer {
	return &QuerySanitizer{maxQueryLength: DefaultMaxQueryLength}
}

// ValidateQuery rejects queries that exceed the length limit or contain
// null bytes or control characters. Called before sanitization so hostile
// input fails fast.
func (s *QuerySanitizer) ValidateQuery(ctx context.Context, query string) error {
	if len(query) > s.maxQueryLength {
		return &SecurityError{Type: "query_too_long", Message: "query exceeds maximum length"}
	}

	for _, r := range query {
		if r == 0 || (r < 32 && r != '\t' && r != '\n' && r != '\r') {
			return &SecurityError{Type: "dangerous_character", Message: "query contains null byte or control character"}
		}
	}

	return nil
}

// SanitizeQuery normalizes a query for the search engine: URL-decodes
// encoded payloads, removes zero-width characters and HTML tags, and
// collapses whitespace. A query may sanitize to the empty string, which
// callers treat as an empty result rather than an error.
func (s *QuerySanitizer) SanitizeQuery(ctx context.Context, query string) (string, error) {
	if query == "" {
		return "", nil
	}

	if decoded, err := url.QueryUnescape(query); err == nil {
		query = decoded
	}

	for _, char := range zeroWidthChars {
		query = strings.ReplaceAll(query, string(char), "")
	}

	query = stripHTMLTags(query)
	query = strings.Join(strings.Fields(query), " ")

	return query, nil
}

// stripHTMLTags removes script elements with their content, then any
// remaining angle-bracketed tags.
func stripHTMLTags(input string) string {
	for {
		start := strings.Index(strings.ToLower(input), "<script")
		if start == -1 {
			break
		}
		end := strings.Index(strings.ToLower(input[start:]), "</script>")
		if end == -1 {
			input = input[:start]
			break
		}
		input = input[:start] + input[start+end+len("</script>"):]
	}

	for {
		start := strings.Index(input, "<")
		if start == -1 {
			break
		}
		end := strings.Index(input[start:], ">")
		if end == -1 {
			input = input[:start]
			break
		}
		input = input[:start] + input[start+end+1:]
	}

	return input
}
