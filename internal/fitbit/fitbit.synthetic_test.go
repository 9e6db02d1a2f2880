// FilePath: internal/fitbit/fitbit.synthetic_test.go
package fitbit

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntheticDayShape(t *testing.T) {
	source := NewSyntheticSource()
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	days, err := source.GetIntradayHeartRate(context.Background(), day, day)
	require.NoError(t, err)
	require.Len(t, days, 1)

	record := days[0]
	assert.Equal(t, "2024-01-15", record.Date)
	require.Len(t, record.Dataset, 1440)

	assert.Equal(t, "00:00:00", record.Dataset[0].Time)
	assert.Equal(t, "23:59:00", record.Dataset[1439].Time)

	for _, entry := range record.Dataset {
		value, err := strconv.ParseFloat(entry.Value, 64)
		require.NoError(t, err, "entry %s", entry.Time)
		assert.Greater(t, value, 0.0)
		assert.Less(t, value, 220.0)
	}
}

func TestSyntheticDataIsDeterministic(t *testing.T) {
	source := NewSyntheticSource()
	day := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	first, err := source.GetIntradayHeartRate(context.Background(), day, day)
	require.NoError(t, err)
	second, err := source.GetIntradayHeartRate(context.Background(), day, day)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSyntheticRangeCoversEveryDay(t *testing.T) {
	source := NewSyntheticSource()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	days, err := source.GetIntradayHeartRate(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, "2024-01-01", days[0].Date)
	assert.Equal(t, "2024-01-03", days[2].Date)
}

func TestSyntheticAuthenticateIsNoop(t *testing.T) {
	assert.NoError(t, NewSyntheticSource().Authenticate(context.Background()))
}
