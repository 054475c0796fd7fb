package domain

import "time"

// summaryMaxLen is the maximum summary length in runes. Longer titles are
// truncated to summaryTruncateAt runes plus an ellipsis.
const (
	summaryMaxLen     = 100
	summaryTruncateAt = 97
)

// StoryDocument is the persisted, searchable projection of a Story.
// Field names match the index schema exactly.
type StoryDocument struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	URI       string `json:"uri"`
	Published string `json:"published"`
	Source    string `json:"source"`
	Summary   string `json:"summary"`
}

// NewStoryDocument projects a Story into its index document. The ID is
// derived from (uri, published) so repeated uploads of the same entry
// overwrite one document. Source is a provenance tag, normally the
// ingesting feed URL. Content carries the entry summary when the feed
// provided one, falling back to the title.
func NewStoryDocument(story Story, source string) StoryDocument {
	content := story.Summary
	if content == "" {
		content = story.Title
	}

	return StoryDocument{
		ID:        DeriveStoryID(story.URI, story.Published),
		Title:     story.Title,
		Content:   content,
		URI:       story.URI,
		Published: story.Published.UTC().Format(time.RFC3339),
		Source:    source,
		Summary:   GenerateSummary(story.Title),
	}
}

// GenerateSummary produces the display summary for a title: titles of up
// to 100 runes pass through unchanged, longer ones are cut to 97 runes
// plus "...".
func GenerateSummary(title string) string {
	runes := []rune(title)
	if len(runes) <= summaryMaxLen {
		return title
	}
	return string(runes[:summaryTruncateAt]) + "..."
}

// PublishedTime parses the document's published field. Absent or malformed
// values decode to the zero time sentinel rather than failing the read.
func (d StoryDocument) PublishedTime() time.Time {
	if d.Published == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, d.Published)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Story maps an index document back into a Story record. The summary is
// synthesized from the stored title and the feed title comes from the
// provenance tag, mirroring what was known at upload time.
func (d StoryDocument) Story() Story {
	return Story{
		URI:       d.URI,
		Title:     d.Title,
		Summary:   GenerateSummary(d.Title),
		Published: d.PublishedTime(),
		FeedTitle: d.Source,
	}
}
