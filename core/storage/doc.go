// Package storage provides the object storage client used to publish
// normalized JSONL artifacts.
//
// The search service ingests documents from blob containers, so each entity
// type's JSONL file is uploaded to its own bucket before the indexers run.
// The Client interface wraps the Minio SDK so tests can mock uploads.
package storage
