// Package docs is the enrichment pipeline: it joins resolved recipes onto
// canonical item records, validates cross-entity invariants, and flattens
// Units, Traits, and Items into the stable JSONL document schema the
// search indexes consume. The content field of each document is the text
// the search service embeds server-side; no embeddings are computed here.
package docs
