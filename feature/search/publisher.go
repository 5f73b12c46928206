package search

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"tft-atlas/core/storage"
)

// BranchResult is the publish outcome for one entity type. Per-document
// indexing failures are collected here; only infrastructure failures
// abort a branch.
type BranchResult struct {
	Entity         string   `json:"entity"`
	Documents      int      `json:"documents"`
	Published      bool     `json:"published"`
	ItemsProcessed int      `json:"items_processed"`
	ItemsFailed    int      `json:"items_failed"`
	DocErrors      []string `json:"doc_errors,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// Publisher uploads JSONL artifacts and drives the search service
// definitions and indexers for each entity branch.
type Publisher struct {
	cfg    Config
	store  storage.Client
	client *Client
	logger *zap.Logger
}

// NewPublisher creates a publisher.
func NewPublisher(cfg Config, store storage.Client, client *Client, logger *zap.Logger) *Publisher {
	return &Publisher{cfg: cfg, store: store, client: client, logger: logger}
}

// PublishBranch runs the full publish leg for one entity type: upload
// the JSONL blob, declare index/datasource/skillset/indexer, run the
// indexer, and wait for it to finish. The branch is republished wholly
// or reported as skipped; there is no partial state in between.
func (p *Publisher) PublishBranch(ctx context.Context, branch Branch, jsonl []byte, docCount int) BranchResult {
	res := BranchResult{Entity: branch.Entity, Documents: docCount}

	fail := func(err error) BranchResult {
		p.logger.Error("Branch publish failed",
			zap.String("entity", branch.Entity),
			zap.Error(err))
		res.Error = err.Error()
		return res
	}

	if err := p.upload(ctx, branch, jsonl); err != nil {
		return fail(err)
	}
	if err := p.ensureDefinitions(ctx, branch); err != nil {
		return fail(err)
	}
	if err := p.client.RunIndexer(ctx, indexerName(branch.Index)); err != nil {
		return fail(err)
	}

	result, err := p.waitForIndexer(ctx, indexerName(branch.Index))
	if err != nil {
		return fail(err)
	}

	res.Published = true
	res.ItemsProcessed = result.ItemsProcessed
	res.ItemsFailed = result.ItemsFailed
	for _, e := range result.Errors {
		res.DocErrors = append(res.DocErrors, fmt.Sprintf("%s: %s", e.Key, e.ErrorMessage))
	}

	p.logger.Info("Branch published",
		zap.String("entity", branch.Entity),
		zap.Int("documents", docCount),
		zap.Int("items_failed", res.ItemsFailed))
	return res
}

func (p *Publisher) upload(ctx context.Context, branch Branch, jsonl []byte) error {
	exists, err := p.store.BucketExists(ctx, branch.Container)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", branch.Container, err)
	}
	if !exists {
		if err := p.store.MakeBucket(ctx, branch.Container, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", branch.Container, err)
		}
	}

	_, err = p.store.PutObject(ctx, branch.Container, branch.BlobName,
		bytes.NewReader(jsonl), int64(len(jsonl)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("upload %s/%s: %w", branch.Container, branch.BlobName, err)
	}

	p.logger.Info("Uploaded artifact",
		zap.String("container", branch.Container),
		zap.String("blob", branch.BlobName),
		zap.Int("bytes", len(jsonl)))
	return nil
}

func (p *Publisher) ensureDefinitions(ctx context.Context, branch Branch) error {
	if err := p.client.CreateOrUpdateIndex(ctx, p.cfg.buildIndex(branch)); err != nil {
		return fmt.Errorf("declare index: %w", err)
	}
	if err := p.client.CreateOrUpdateDataSource(ctx, p.cfg.buildDataSource(branch)); err != nil {
		return fmt.Errorf("declare datasource: %w", err)
	}
	if err := p.client.CreateOrUpdateSkillset(ctx, p.cfg.buildSkillset(branch)); err != nil {
		return fmt.Errorf("declare skillset: %w", err)
	}
	if err := p.client.CreateOrUpdateIndexer(ctx, p.cfg.buildIndexer(branch)); err != nil {
		return fmt.Errorf("declare indexer: %w", err)
	}
	return nil
}

// waitForIndexer polls until the last execution reaches a terminal
// status or the poll budget runs out.
func (p *Publisher) waitForIndexer(ctx context.Context, name string) (*IndexerResult, error) {
	interval := time.Duration(p.cfg.PollIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	timeout := time.Duration(p.cfg.PollTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var result *IndexerResult
	op := func() error {
		status, err := p.client.GetIndexerStatus(ctx, name)
		if err != nil {
			return backoff.Permanent(err)
		}
		if status.LastResult == nil {
			return fmt.Errorf("indexer %s has no execution yet", name)
		}
		switch status.LastResult.Status {
		case "success":
			result = status.LastResult
			return nil
		case "transientFailure", "persistentError", "error":
			return backoff.Permanent(fmt.Errorf("indexer %s failed: %s",
				name, status.LastResult.ErrorMessage))
		default:
			return fmt.Errorf("indexer %s still %s", name, status.LastResult.Status)
		}
	}

	policy := backoff.WithContext(backoff.NewConstantBackOff(interval), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}
	return result, nil
}
