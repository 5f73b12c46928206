package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"tft-atlas/feature/recipes"
)

const (
	summaryFile      = "summary.json"
	recipeReportFile = "recipe_report.json"
)

// ErrNoSummary is returned when no run has been recorded yet.
var ErrNoSummary = errors.New("no run summary recorded")

// Store persists run summaries in the work directory.
type Store struct {
	dir    string
	logger *zap.Logger
}

// NewStore creates a store rooted at dir.
func NewStore(dir string, logger *zap.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

// WriteSummary records the outcome of a run, replacing the previous one.
func (s *Store) WriteSummary(summary *RunSummary) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run summary: %w", err)
	}
	path := filepath.Join(s.dir, summaryFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write run summary: %w", err)
	}
	s.logger.Info("Run summary written",
		zap.String("path", path),
		zap.String("run_id", summary.RunID),
		zap.Bool("ok", summary.Ok()))
	return nil
}

// WriteRecipeReport records the audit of the last recipe merge.
func (s *Store) WriteRecipeReport(rep *recipes.Report) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create work dir: %w", err)
	}
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal recipe report: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, recipeReportFile), data, 0o644); err != nil {
		return fmt.Errorf("write recipe report: %w", err)
	}
	return nil
}

// LatestRecipeReport loads the audit of the last recipe merge.
func (s *Store) LatestRecipeReport() (*recipes.Report, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, recipeReportFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoSummary
		}
		return nil, fmt.Errorf("read recipe report: %w", err)
	}
	var rep recipes.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("parse recipe report: %w", err)
	}
	return &rep, nil
}

// LatestSummary loads the most recent run summary.
func (s *Store) LatestSummary() (*RunSummary, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, summaryFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoSummary
		}
		return nil, fmt.Errorf("read run summary: %w", err)
	}
	var summary RunSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("parse run summary: %w", err)
	}
	return &summary, nil
}
