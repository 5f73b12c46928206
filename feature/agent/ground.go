package agent

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Searcher runs a query against one index. Satisfied by the search
// service client.
type Searcher interface {
	Search(ctx context.Context, index, query string, k int) ([]map[string]any, error)
}

// Grounder retrieves supporting documents for a question from the
// entity indexes and folds them into the chat context.
type Grounder struct {
	searcher Searcher
	indexes  []string
	topK     int
	logger   *zap.Logger
}

// NewGrounder creates a grounder querying the given indexes.
func NewGrounder(searcher Searcher, indexes []string, topK int, logger *zap.Logger) *Grounder {
	if topK <= 0 {
		topK = 3
	}
	return &Grounder{searcher: searcher, indexes: indexes, topK: topK, logger: logger}
}

// Ground queries every index with the question and returns the
// retrieved chunks as one fact block. A single failing index is
// tolerated; the block is empty only when nothing was retrieved.
func (g *Grounder) Ground(ctx context.Context, question string) (string, error) {
	var facts []string
	seen := make(map[string]bool)
	var lastErr error
	failed := 0

	for _, index := range g.indexes {
		docs, err := g.searcher.Search(ctx, index, question, g.topK)
		if err != nil {
			g.logger.Warn("Index query failed",
				zap.String("index", index),
				zap.Error(err))
			lastErr = err
			failed++
			continue
		}
		for _, doc := range docs {
			chunk, _ := doc["chunk"].(string)
			if chunk == "" {
				chunk, _ = doc["content"].(string)
			}
			chunk = strings.TrimSpace(chunk)
			if chunk == "" || seen[chunk] {
				continue
			}
			seen[chunk] = true
			facts = append(facts, chunk)
		}
	}

	if failed == len(g.indexes) && lastErr != nil {
		return "", fmt.Errorf("all index queries failed: %w", lastErr)
	}
	if len(facts) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("Retrieved facts:\n")
	for _, f := range facts {
		sb.WriteString("- ")
		sb.WriteString(f)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// BuildMessages assembles the chat message list for a grounded question.
// The fact block may be empty.
func BuildMessages(question, facts string) []ChatMessage {
	messages := []ChatMessage{{Role: "system", Content: SystemPrompt}}
	if facts != "" {
		messages = append(messages, ChatMessage{Role: "system", Content: facts})
	}
	return append(messages, ChatMessage{Role: "user", Content: question})
}
