package coverflex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRangeNormalizes(t *testing.T) {
	r, err := ParseRange("2025-01-15", "2025-01-20", time.UTC)
	require.NoError(t, err)

	assert.Equal(t, "2025-01-15T00:00:00.000Z", r.fromISO())
	assert.Equal(t, "2025-01-20T23:59:59.999Z", r.toISO())
	assert.True(t, r.From.Before(r.To))
}

func TestParseRangeSameDay(t *testing.T) {
	r, err := ParseRange("2025-07-20", "2025-07-20", time.UTC)
	require.NoError(t, err)

	// Almost 24 hours between the bounds even on a single day.
	diff := r.To.Sub(r.From)
	assert.Greater(t, diff, 23*time.Hour)
	assert.Less(t, diff, 24*time.Hour)
}

func TestParseRangeInverted(t *testing.T) {
	_, err := ParseRange("2025-03-20", "2025-03-15", time.UTC)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after")
}

func TestParseRangeBadInput(t *testing.T) {
	_, err := ParseRange("15/01/2025", "2025-01-20", time.UTC)
	require.Error(t, err)
}

func TestYearRange(t *testing.T) {
	r := YearRange(2025, time.UTC)
	assert.Equal(t, "2025-01-01T00:00:00.000Z", r.fromISO())
	assert.Equal(t, "2025-12-31T23:59:59.999Z", r.toISO())
}

func TestDayBoundsTruncateUTC(t *testing.T) {
	// The meal endpoint gets the UTC calendar day, dropping time-of-day.
	cet := time.FixedZone("CET", 3600)
	r, err := ParseRange("2025-06-15", "2025-06-20", cet)
	require.NoError(t, err)

	// 2025-06-15T00:00 CET is 2025-06-14T23:00 UTC.
	assert.Equal(t, "2025-06-14", r.fromDay())
	assert.Equal(t, "2025-06-20", r.toDay())
}
