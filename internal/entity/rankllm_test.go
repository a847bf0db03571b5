package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankingDataKeepsServiceMetrics(t *testing.T) {
	raw := `{"query":{"text":"best crm","qid":"q1"},"candidates":[],"metrics":{"model_used":"monot5","processing_time_ms":12.5,"total_documents":3,"top_score":0.91,"score_range":{"min":0.12,"max":0.91}}}`

	var data RankingData
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	assert.Equal(t, 12.5, data.Metrics.ProcessingTimeMS())

	encoded, err := json.Marshal(data)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(encoded))
}

func TestRankingMetricsWithoutProcessingTime(t *testing.T) {
	var nilMetrics RankingMetrics
	assert.Zero(t, nilMetrics.ProcessingTimeMS())
	assert.Zero(t, RankingMetrics{"processing_time_ms": "slow"}.ProcessingTimeMS())
}
