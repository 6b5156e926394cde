package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stack-insights/statement-recon/internal/common"
)

func newChatServer(t *testing.T, content string, gotBody *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		if gotBody != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(gotBody))
		}

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c := NewClient(Config{APIKey: "test-key", BaseURL: baseURL, Model: "test-model"}, nil)
	require.NotNil(t, c.validator)
	return c
}

func TestExtractRecordsHappyPath(t *testing.T) {
	var body map[string]any
	srv := newChatServer(t, `{"records":[{"isin":"INE002A01018","market_value":"2,50,000"}]}`, &body)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	recs, err := c.ExtractRecords(context.Background(), "| 1 | INE002A01018 | Reliance |")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "INE002A01018", recs[0]["isin"])
	assert.Equal(t, "2,50,000", recs[0]["market_value"])

	assert.Equal(t, "test-model", body["model"])
	rf, ok := body["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_object", rf["type"])
	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, msgs, 3)
}

func TestExtractRecordsFencedContent(t *testing.T) {
	srv := newChatServer(t, "```json\n{\"records\":[{\"isin\":\"INE009A01021\"}]}\n```", nil)
	defer srv.Close()

	recs, err := newTestClient(t, srv.URL).ExtractRecords(context.Background(), "span")
	require.NoError(t, err)
	require.Len(t, recs, 1)
}

func TestExtractRecordsMultipleRecordsReturnedAsIs(t *testing.T) {
	srv := newChatServer(t, `{"records":[{"isin":"INE002A01018"},{"isin":"INE009A01021"}]}`, nil)
	defer srv.Close()

	recs, err := newTestClient(t, srv.URL).ExtractRecords(context.Background(), "span")
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestExtractRecordsSchemaViolation(t *testing.T) {
	srv := newChatServer(t, `{"records":[{"isin":12345}]}`, nil)
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).ExtractRecords(context.Background(), "span")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrExtraction)
}

func TestExtractRecordsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).ExtractRecords(context.Background(), "span")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrExtraction)
}

func TestExtractRecordsNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).ExtractRecords(context.Background(), "span")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrExtraction)
}

func TestExtractRecordsUnparseablePayload(t *testing.T) {
	srv := newChatServer(t, "sorry, I could not parse that table", nil)
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).ExtractRecords(context.Background(), "span")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrExtraction)
}
