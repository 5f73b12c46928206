package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client is a thin REST client for the search service management and
// query APIs.
type Client struct {
	endpoint   string
	apiKey     string
	apiVersion string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a search service client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return &Client{
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:     cfg.APIKey,
		apiVersion: cfg.APIVersion,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		logger:     logger,
	}
}

// do executes one REST call. body and out may be nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	u := fmt.Sprintf("%s%s?api-version=%s", c.endpoint, path, url.QueryEscape(c.apiVersion))

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, string(msg))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// CreateOrUpdateIndex declares an index; PUT makes it idempotent.
func (c *Client) CreateOrUpdateIndex(ctx context.Context, idx Index) error {
	return c.do(ctx, http.MethodPut, "/indexes/"+idx.Name, idx, nil)
}

// CreateOrUpdateDataSource declares a blob datasource.
func (c *Client) CreateOrUpdateDataSource(ctx context.Context, ds DataSource) error {
	return c.do(ctx, http.MethodPut, "/datasources/"+ds.Name, ds, nil)
}

// CreateOrUpdateSkillset declares a skillset.
func (c *Client) CreateOrUpdateSkillset(ctx context.Context, ss Skillset) error {
	return c.do(ctx, http.MethodPut, "/skillsets/"+ss.Name, ss, nil)
}

// CreateOrUpdateIndexer declares an indexer.
func (c *Client) CreateOrUpdateIndexer(ctx context.Context, ix Indexer) error {
	return c.do(ctx, http.MethodPut, "/indexers/"+ix.Name, ix, nil)
}

// RunIndexer triggers an indexer run.
func (c *Client) RunIndexer(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPost, "/indexers/"+name+"/run", nil, nil)
}

// GetIndexerStatus fetches the current execution status of an indexer.
func (c *Client) GetIndexerStatus(ctx context.Context, name string) (*IndexerStatus, error) {
	var status IndexerStatus
	if err := c.do(ctx, http.MethodGet, "/indexers/"+name+"/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// vectorQuery is the query-time counterpart of the declared vectorizer:
// the service embeds the text itself, this client never does.
type vectorQuery struct {
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Fields string `json:"fields"`
	K      int    `json:"k"`
}

type searchRequest struct {
	Search        string        `json:"search,omitempty"`
	VectorQueries []vectorQuery `json:"vectorQueries,omitempty"`
	Top           int           `json:"top,omitempty"`
}

type searchResponse struct {
	Value []map[string]any `json:"value"`
}

// Search runs a vectorizable-text query against an index and returns the
// raw result documents.
func (c *Client) Search(ctx context.Context, index, query string, k int) ([]map[string]any, error) {
	if k <= 0 {
		k = 5
	}
	req := searchRequest{
		VectorQueries: []vectorQuery{{
			Kind:   "text",
			Text:   query,
			Fields: VectorField,
			K:      k,
		}},
		Top: k,
	}
	var resp searchResponse
	if err := c.do(ctx, http.MethodPost, "/indexes/"+index+"/docs/search", req, &resp); err != nil {
		return nil, err
	}
	return resp.Value, nil
}
