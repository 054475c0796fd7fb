package gateway

import (
	"context"

	"feed-indexer/domain"
	"feed-indexer/driver"
)

// SearchEngineDriver is the driver-side contract the gateway adapts.
type SearchEngineDriver interface {
	EnsureIndex(ctx context.Context) error
	IndexDocuments(ctx context.Context, docs []driver.StoryDocumentDriver) error
	Search(ctx context.Context, query string, offset, limit int64) ([]driver.StoryDocumentDriver, int64, error)
	Latest(ctx context.Context, limit int64) ([]driver.StoryDocumentDriver, error)
}

// SearchEngineGateway converts between domain documents and the driver's
// wire representation and normalizes driver failures into
// domain.SearchEngineError.
type SearchEngineGateway struct {
	driver SearchEngineDriver
}

func NewSearchEngineGateway(driver SearchEngineDriver) *SearchEngineGateway {
	return &SearchEngineGateway{driver: driver}
}

func (g *SearchEngineGateway) EnsureIndex(ctx context.Context) error {
	if err := g.driver.EnsureIndex(ctx); err != nil {
		return &domain.SearchEngineError{Op: "EnsureIndex", Err: err.Error()}
	}
	return nil
}

func (g *SearchEngineGateway) IndexDocuments(ctx context.Context, docs []domain.StoryDocument) error {
	driverDocs := make([]driver.StoryDocumentDriver, 0, len(docs))
	for _, doc := range docs {
		driverDocs = append(driverDocs, toDriverDocument(doc))
	}

	if err := g.driver.IndexDocuments(ctx, driverDocs); err != nil {
		return &domain.SearchEngineError{Op: "IndexDocuments", Err: err.Error()}
	}
	return nil
}

func (g *SearchEngineGateway) Search(ctx context.Context, query string, offset, limit int64) ([]domain.StoryDocument, int64, error) {
	driverDocs, total, err := g.driver.Search(ctx, query, offset, limit)
	if err != nil {
		return nil, 0, &domain.SearchEngineError{Op: "Search", Err: err.Error()}
	}

	return toDomainDocuments(driverDocs), total, nil
}

func (g *SearchEngineGateway) Latest(ctx context.Context, limit int64) ([]domain.StoryDocument, error) {
	driverDocs, err := g.driver.Latest(ctx, limit)
	if err != nil {
		return nil, &domain.SearchEngineError{Op: "Latest", Err: err.Error()}
	}

	return toDomainDocuments(driverDocs), nil
}

func toDriverDocument(doc domain.StoryDocument) driver.StoryDocumentDriver {
	return driver.StoryDocumentDriver{
		ID:        doc.ID,
		Title:     doc.Title,
		Content:   doc.Content,
		URI:       doc.URI,
		Published: doc.Published,
		Source:    doc.Source,
		Summary:   doc.Summary,
	}
}

func toDomainDocuments(driverDocs []driver.StoryDocumentDriver) []domain.StoryDocument {
	docs := make([]domain.StoryDocument, 0, len(driverDocs))
	for _, d := range driverDocs {
		docs = append(docs, domain.StoryDocument{
			ID:        d.ID,
			Title:     d.Title,
			Content:   d.Content,
			URI:       d.URI,
			Published: d.Published,
			Source:    d.Source,
			Summary:   d.Summary,
		})
	}
	return docs
}
