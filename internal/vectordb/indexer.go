package vectordb

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/davidroeth/podsight/internal/analysis"
)

// Indexer feeds completed analyses into a vector store so they become
// searchable. It satisfies analysis.Indexer.
type Indexer struct {
	store   VectorStore
	dataDir string // when set, the store is persisted here after writes
}

// NewIndexer creates an Indexer. dataDir may be empty to skip persistence.
func NewIndexer(store VectorStore, dataDir string) *Indexer {
	return &Indexer{store: store, dataDir: dataDir}
}

// Index embeds one analysis and stores it.
func (ix *Indexer) Index(ctx context.Context, a analysis.Analysis) error {
	if err := ix.store.AddDocuments(ctx, []Document{toDocument(a)}); err != nil {
		return fmt.Errorf("indexing analysis %s: %w", a.VideoID, err)
	}
	ix.persist(ctx)
	return nil
}

// Reindex embeds every successful analysis in the given list, replacing
// whatever was indexed before. Failed analyses carry no text and are skipped.
func (ix *Indexer) Reindex(ctx context.Context, analyses []analysis.Analysis) (int, error) {
	var docs []Document
	for _, a := range analyses {
		if !a.Success {
			continue
		}
		docs = append(docs, toDocument(a))
	}
	if len(docs) == 0 {
		return 0, nil
	}

	if err := ix.store.AddDocuments(ctx, docs); err != nil {
		return 0, fmt.Errorf("reindexing analyses: %w", err)
	}
	ix.persist(ctx)
	return len(docs), nil
}

func (ix *Indexer) persist(ctx context.Context) {
	if ix.dataDir == "" {
		return
	}
	if err := ix.store.Persist(ctx, ix.dataDir); err != nil {
		log.Printf("vectordb: persisting store: %v", err)
	}
}

func toDocument(a analysis.Analysis) Document {
	return Document{
		ID:      a.VideoID,
		Content: a.Title + "\n\n" + a.Analysis,
		Metadata: DocumentMetadata{
			VideoID:     a.VideoID,
			VideoURL:    a.VideoURL,
			Title:       a.Title,
			ChannelID:   a.ChannelID,
			ChannelName: a.ChannelName,
			PublishedAt: a.PublishedAt,
			IndexedAt:   time.Now(),
		},
	}
}
