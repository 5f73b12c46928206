package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tft-atlas/core/storage/mocks"
)

// fakeSearchService accepts every definition PUT and reports the
// configured indexer result after a few in-progress polls.
func fakeSearchService(t *testing.T, polls *atomic.Int32, result IndexerResult) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut:
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusAccepted)
		default:
			n := polls.Add(1)
			status := IndexerStatus{Status: "running", LastResult: &IndexerResult{Status: "inProgress"}}
			if n >= 2 {
				status.LastResult = &result
			}
			json.NewEncoder(w).Encode(status)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPublishBranchSuccess(t *testing.T) {
	var polls atomic.Int32
	srv := fakeSearchService(t, &polls, IndexerResult{
		Status:         "success",
		ItemsProcessed: 12,
		ItemsFailed:    1,
		Errors:         []IndexerError{{Key: "TFT_Item_BFSword", ErrorMessage: "truncated"}},
	})

	cfg := testConfig()
	cfg.Endpoint = srv.URL
	cfg.PollIntervalSeconds = 1
	cfg.PollTimeoutSeconds = 10

	store := new(mocks.Client)
	store.On("BucketExists", mock.Anything, "tft-items").Return(false, nil)
	store.On("MakeBucket", mock.Anything, "tft-items", mock.Anything).Return(nil)
	store.On("PutObject", mock.Anything, "tft-items", "items.jsonl",
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

	pub := NewPublisher(cfg, store, NewClient(cfg, zap.NewNop()), zap.NewNop())
	branch, _ := cfg.BranchFor("items")

	res := pub.PublishBranch(context.Background(), branch, []byte(`{"id":"TFT_Item_BFSword"}`+"\n"), 1)

	assert.True(t, res.Published)
	assert.Empty(t, res.Error)
	assert.Equal(t, 12, res.ItemsProcessed)
	assert.Equal(t, 1, res.ItemsFailed)
	require.Len(t, res.DocErrors, 1)
	assert.Contains(t, res.DocErrors[0], "TFT_Item_BFSword")
	assert.GreaterOrEqual(t, polls.Load(), int32(2))
	store.AssertExpectations(t)
}

func TestPublishBranchIndexerFailure(t *testing.T) {
	var polls atomic.Int32
	srv := fakeSearchService(t, &polls, IndexerResult{
		Status:       "persistentError",
		ErrorMessage: "datasource credentials rejected",
	})

	cfg := testConfig()
	cfg.Endpoint = srv.URL
	cfg.PollIntervalSeconds = 1
	cfg.PollTimeoutSeconds = 10

	store := new(mocks.Client)
	store.On("BucketExists", mock.Anything, "tft-units").Return(true, nil)
	store.On("PutObject", mock.Anything, "tft-units", "units.jsonl",
		mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

	pub := NewPublisher(cfg, store, NewClient(cfg, zap.NewNop()), zap.NewNop())
	branch, _ := cfg.BranchFor("units")

	res := pub.PublishBranch(context.Background(), branch, []byte("{}\n"), 1)

	assert.False(t, res.Published)
	assert.Contains(t, res.Error, "datasource credentials rejected")
	store.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestPublishBranchUploadFailureSkipsService(t *testing.T) {
	cfg := testConfig()
	cfg.Endpoint = "http://127.0.0.1:1" // must never be reached

	store := new(mocks.Client)
	store.On("BucketExists", mock.Anything, "tft-traits").Return(false, assert.AnError)

	pub := NewPublisher(cfg, store, NewClient(cfg, zap.NewNop()), zap.NewNop())
	branch, _ := cfg.BranchFor("traits")

	res := pub.PublishBranch(context.Background(), branch, []byte("{}\n"), 1)

	assert.False(t, res.Published)
	assert.NotEmpty(t, res.Error)
}
