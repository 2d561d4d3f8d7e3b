// Package vectordb stores analysis text as embeddings for semantic search.
package vectordb

import "time"

// Document represents one analyzed video's summary text.
type Document struct {
	ID       string
	Content  string
	Metadata DocumentMetadata
}

// DocumentMetadata holds structured information about an analyzed video.
type DocumentMetadata struct {
	VideoID     string
	VideoURL    string
	Title       string
	ChannelID   string
	ChannelName string
	PublishedAt string
	IndexedAt   time.Time
}

// SearchResult pairs a document with its similarity score.
type SearchResult struct {
	Document   Document
	Similarity float32
}

// SearchFilter allows narrowing search results by metadata fields.
type SearchFilter struct {
	ChannelID *string
}
