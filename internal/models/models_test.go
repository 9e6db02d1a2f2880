// FilePath: internal/models/models_test.go
package models

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleValid(t *testing.T) {
	base := Sample{
		ClientID: "c1",
		Metric:   MetricHeartRate,
		Time:     time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC),
		Value:    72,
	}
	assert.True(t, base.Valid())

	cases := []struct {
		name   string
		mutate func(*Sample)
	}{
		{"empty client", func(s *Sample) { s.ClientID = "" }},
		{"empty metric", func(s *Sample) { s.Metric = "" }},
		{"zero time", func(s *Sample) { s.Time = time.Time{} }},
		{"zero value", func(s *Sample) { s.Value = 0 }},
		{"negative value", func(s *Sample) { s.Value = -1 }},
		{"NaN value", func(s *Sample) { s.Value = math.NaN() }},
		{"infinite value", func(s *Sample) { s.Value = math.Inf(1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := base
			tc.mutate(&s)
			assert.False(t, s.Valid())
		})
	}
}

func TestIntradayEntryUnmarshalNumberAndString(t *testing.T) {
	var day IntradayDay
	err := json.Unmarshal([]byte(`{
		"dateTime": "2024-01-15",
		"dataset": [
			{"time": "00:00:00", "value": 64},
			{"time": "00:01:00", "value": "67.5"},
			{"time": "00:02:00", "value": "n/a"}
		]
	}`), &day)
	require.NoError(t, err)

	require.Len(t, day.Dataset, 3)
	assert.Equal(t, "64", day.Dataset[0].Value)
	assert.Equal(t, "67.5", day.Dataset[1].Value)
	// Garbage survives decoding; the ingestion transform rejects it later.
	assert.Equal(t, "n/a", day.Dataset[2].Value)
}
