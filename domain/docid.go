package domain

import (
	"encoding/base64"
	"time"
)

// timestampLayout is the fixed-width UTC timestamp component of a story
// document ID. Fixed width keeps the encoding unambiguous.
const timestampLayout = "20060102150405"

// DeriveStoryID derives the search index document ID for a story from its
// URI and published timestamp. The mapping is deterministic: the same
// (uri, published) pair always yields the same ID, so re-ingesting an entry
// overwrites its existing document rather than duplicating it.
//
// The ID is the raw URL-safe base64 encoding of "<uri>_<yyyyMMddHHmmss>";
// the alphabet contains no '+', '/' or '=' so the ID is safe as a document
// key. The encoding is reversible on purpose, which keeps stored IDs
// inspectable.
func DeriveStoryID(uri string, published time.Time) string {
	combined := uri + "_" + published.UTC().Format(timestampLayout)
	return base64.RawURLEncoding.EncodeToString([]byte(combined))
}
