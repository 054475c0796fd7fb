package driver

import (
	"context"
	"encoding/json"
	"time"

	"github.com/meilisearch/meilisearch-go"
)

// taskPollInterval is how often the driver polls Meilisearch for async
// task completion.
const taskPollInterval = 100 * time.Millisecond

// Index schema attribute sets. The schema is fixed: every field is
// filterable, title and published sort, and the text fields search.
var (
	searchableAttributes = []string{"title", "content", "summary"}
	// filterable attributes may be plain names or rule objects, so the
	// client API takes interface values here
	filterableAttributes = []interface{}{"id", "title", "content", "uri", "published", "source", "summary"}
	sortableAttributes   = []string{"title", "published"}
)

// MeilisearchDriver talks to one Meilisearch index holding story documents.
type MeilisearchDriver struct {
	client meilisearch.ServiceManager
	index  meilisearch.IndexManager
	name   string
}

func NewMeilisearchDriver(client meilisearch.ServiceManager, indexName string) *MeilisearchDriver {
	return &MeilisearchDriver{
		client: client,
		index:  client.Index(indexName),
		name:   indexName,
	}
}

// EnsureIndex creates the index if it is missing and applies the schema
// settings. Safe to call repeatedly.
func (d *MeilisearchDriver) EnsureIndex(ctx context.Context) error {
	if _, err := d.index.FetchInfo(); err != nil {
		task, err := d.client.CreateIndex(&meilisearch.IndexConfig{
			Uid:        d.name,
			PrimaryKey: "id",
		})
		if err != nil {
			return &DriverError{Op: "EnsureIndex", Err: err}
		}
		if _, err := d.client.WaitForTask(task.TaskUID, taskPollInterval); err != nil {
			return &DriverError{Op: "EnsureIndex", Err: err}
		}
	}

	if d.schemaApplied() {
		return nil
	}

	task, err := d.index.UpdateSearchableAttributes(&searchableAttributes)
	if err != nil {
		return &DriverError{Op: "EnsureIndex", Err: err}
	}
	if _, err := d.index.WaitForTask(task.TaskUID, taskPollInterval); err != nil {
		return &DriverError{Op: "EnsureIndex", Err: err}
	}

	task, err = d.index.UpdateFilterableAttributes(&filterableAttributes)
	if err != nil {
		return &DriverError{Op: "EnsureIndex", Err: err}
	}
	if _, err := d.index.WaitForTask(task.TaskUID, taskPollInterval); err != nil {
		return &DriverError{Op: "EnsureIndex", Err: err}
	}

	task, err = d.index.UpdateSortableAttributes(&sortableAttributes)
	if err != nil {
		return &DriverError{Op: "EnsureIndex", Err: err}
	}
	if _, err := d.index.WaitForTask(task.TaskUID, taskPollInterval); err != nil {
		return &DriverError{Op: "EnsureIndex", Err: err}
	}

	return nil
}

// schemaApplied reports whether the index settings already carry the full
// schema, so repeated startups skip the settings round-trips.
func (d *MeilisearchDriver) schemaApplied() bool {
	settings, err := d.index.GetSettings()
	if err != nil {
		return false
	}
	haveFilterable := make([]interface{}, len(settings.FilterableAttributes))
	for i, attr := range settings.FilterableAttributes {
		haveFilterable[i] = attr
	}
	return containsAll(settings.SearchableAttributes, searchableAttributes) &&
		containsAll(settings.SortableAttributes, sortableAttributes) &&
		containsAllAttrs(haveFilterable, filterableAttributes)
}

// IndexDocuments uploads one batch and waits for the indexing task, so a
// true return from the caller's perspective means the documents are live.
func (d *MeilisearchDriver) IndexDocuments(ctx context.Context, docs []StoryDocumentDriver) error {
	if len(docs) == 0 {
		return nil
	}

	task, err := d.index.AddDocuments(docs, nil)
	if err != nil {
		return &DriverError{Op: "IndexDocuments", Err: err}
	}
	if _, err := d.index.WaitForTask(task.TaskUID, taskPollInterval); err != nil {
		return &DriverError{Op: "IndexDocuments", Err: err}
	}

	return nil
}

// Search runs a full-text query ordered by published descending. An empty
// query matches every document, which is how Latest is implemented.
func (d *MeilisearchDriver) Search(ctx context.Context, query string, offset, limit int64) ([]StoryDocumentDriver, int64, error) {
	result, err := d.index.Search(query, &meilisearch.SearchRequest{
		Offset: offset,
		Limit:  limit,
		Sort:   []string{"published:desc"},
	})
	if err != nil {
		return nil, 0, &DriverError{Op: "Search", Err: err}
	}

	docs := make([]StoryDocumentDriver, 0, len(result.Hits))
	for _, hit := range result.Hits {
		docs = append(docs, decodeHit(hit))
	}

	return docs, result.EstimatedTotalHits, nil
}

// Latest returns the most recently published documents.
func (d *MeilisearchDriver) Latest(ctx context.Context, limit int64) ([]StoryDocumentDriver, error) {
	docs, _, err := d.Search(ctx, "", 0, limit)
	if err != nil {
		return nil, &DriverError{Op: "Latest", Err: err}
	}
	return docs, nil
}

// decodeHit maps one raw hit into a document. Missing or oddly typed
// fields decode to the empty string; a single degraded document must not
// fail the whole result page.
func decodeHit(hit meilisearch.Hit) StoryDocumentDriver {
	return StoryDocumentDriver{
		ID:        hitString(hit, "id"),
		Title:     hitString(hit, "title"),
		Content:   hitString(hit, "content"),
		URI:       hitString(hit, "uri"),
		Published: hitString(hit, "published"),
		Source:    hitString(hit, "source"),
		Summary:   hitString(hit, "summary"),
	}
}

func hitString(hit meilisearch.Hit, key string) string {
	raw, ok := hit[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func containsAll(have, want []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[h] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[w]; !ok {
			return false
		}
	}
	return true
}

// containsAllAttrs matches filterable attribute settings, which come back
// as interface values and may include non-string rule objects.
func containsAllAttrs(have, want []interface{}) bool {
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		if s, ok := h.(string); ok {
			set[s] = struct{}{}
		}
	}
	for _, w := range want {
		s, ok := w.(string)
		if !ok {
			return false
		}
		if _, ok := set[s]; !ok {
			return false
		}
	}
	return true
}
