// Package search manages the vector search side of the pipeline: it
// declares indexes, data sources, skillsets, and indexers against an
// Azure-AI-Search-compatible service, uploads JSONL artifacts to blob
// storage, and exposes hybrid text+vector queries for retrieval.
package search
