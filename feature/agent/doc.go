// Package agent answers game questions by retrieving supporting chunks
// from the entity indexes and handing them to an OpenAI-compatible chat
// completions endpoint.
package agent
