package rankllm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptmetrics/promptmetrics-api/internal/entity"
)

func TestRerank(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rerank", r.URL.Path)
		var req RerankRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "monot5", req.Model)
		assert.Len(t, req.Documents, 2)

		json.NewEncoder(w).Encode(RerankResponse{
			ID:        "req-1",
			Domain:    req.Domain,
			Query:     req.Query,
			ModelUsed: req.Model,
			Status:    "completed",
			RankingData: entity.RankingData{
				Query: map[string]string{"text": req.Query, "qid": "q1"},
				Candidates: []entity.RankLLMCandidate{
					{DocID: "d2", Score: 0.9, Rank: 1},
					{DocID: "d1", Score: 0.4, Rank: 2},
				},
				Metrics: entity.RankingMetrics{"processing_time_ms": 120, "model_used": "monot5"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second)
	res, err := c.Rerank(context.Background(), RerankRequest{
		Query:  "best crm",
		Model:  "monot5",
		Domain: "acme.com",
		Documents: []entity.RankLLMDocument{
			{ID: "d1", Content: "one"},
			{ID: "d2", Content: "two"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "d2", res.RankingData.Candidates[0].DocID)
	assert.Equal(t, 120.0, res.RankingData.Metrics.ProcessingTimeMS())
}

func TestRerankDecodesServiceTimestamps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "6f1c2a",
			"domain": "acme.com",
			"query": "best crm",
			"model_used": "monot5",
			"ranking_data": {
				"query": {"text": "best crm", "qid": "q1"},
				"candidates": [{"docid": "d2", "score": 0.91, "rank": 1, "doc": {"contents": "two"}}],
				"metrics": {"model_used": "monot5", "processing_time_ms": 12.5, "total_documents": 1, "top_score": 0.91, "score_range": {"min": 0.91, "max": 0.91}}
			},
			"status": "completed",
			"created_at": "2025-01-02T10:11:12.123456",
			"updated_at": "2025-01-02T10:11:12.123456"
		}`))
	}))
	defer srv.Close()

	res, err := NewClient(srv.URL, time.Second).Rerank(context.Background(), RerankRequest{Query: "best crm", Model: "monot5"})

	require.NoError(t, err)
	assert.Equal(t, "2025-01-02T10:11:12.123456", res.CreatedAt)
	assert.Equal(t, 12.5, res.RankingData.Metrics.ProcessingTimeMS())
	assert.Equal(t, float64(1), res.RankingData.Metrics["total_documents"])
}

func TestRerankStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Unknown model"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Rerank(context.Background(), RerankRequest{Query: "q"})

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Contains(t, se.Body, "Unknown model")
}

func TestHealthAndModels(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"healthy","models_available":["monot5"],"uptime":12.5,"version":"1.0.0"}`))
	})
	mux.HandleFunc("/models", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name":"monot5","type":"pointwise","size":"6GB","description":"d","recommended_for":["general"]}]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)

	h, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", h.Status)
	assert.Equal(t, []string{"monot5"}, h.ModelsAvailable)

	models, err := c.Models(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "pointwise", models[0].Type)
}
