// Package report persists ingest run summaries and serves them over
// HTTP, so operators can inspect the last run and harvest unresolved
// recipe names for the override file.
package report
