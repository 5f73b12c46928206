package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCompleteSendsBearerAndModel(t *testing.T) {
	var gotAuth string
	var gotReq ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "Ahri is a tier 4 unit."}},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(Config{APIURL: srv.URL, APIKey: "sk-test", Model: "gpt-4o-mini"}, zap.NewNop())
	reply, err := client.Complete(context.Background(), BuildMessages("what tier is ahri", ""))

	require.NoError(t, err)
	assert.Equal(t, "Ahri is a tier 4 unit.", reply)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
}

func TestCompleteMissingKey(t *testing.T) {
	client := NewClient(Config{APIURL: "http://127.0.0.1:1"}, zap.NewNop())
	_, err := client.Complete(context.Background(), BuildMessages("hi", ""))
	assert.ErrorContains(t, err, "not configured")
}

func TestCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	client := NewClient(Config{APIURL: srv.URL, APIKey: "sk-test"}, zap.NewNop())
	_, err := client.Complete(context.Background(), BuildMessages("hi", ""))
	assert.ErrorContains(t, err, "429")
}

func TestCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := NewClient(Config{APIURL: srv.URL, APIKey: "sk-test"}, zap.NewNop())
	_, err := client.Complete(context.Background(), BuildMessages("hi", ""))
	assert.ErrorContains(t, err, "no choices")
}
