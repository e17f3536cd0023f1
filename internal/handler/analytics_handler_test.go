package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailySalesRangeDefaultsToLast30Days(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	from, to, err := dailySalesRange("", "", now)
	require.NoError(t, err)
	assert.Equal(t, now, to)
	assert.Equal(t, now.AddDate(0, 0, -30), from)
}

func TestDailySalesRangeIncludesWholeEndDay(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	from, to, err := dailySalesRange("2026-02-01", "2026-02-28", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), from)

	// An order placed during the last requested day stays inside the range.
	lateOrder := time.Date(2026, 2, 28, 23, 59, 0, 0, time.UTC)
	assert.True(t, to.After(lateOrder))
	assert.True(t, to.Before(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDailySalesRangeRejectsBadDates(t *testing.T) {
	now := time.Now()

	_, _, err := dailySalesRange("02/01/2026", "", now)
	assert.EqualError(t, err, "Invalid 'from' date, expected YYYY-MM-DD")

	_, _, err = dailySalesRange("", "yesterday", now)
	assert.EqualError(t, err, "Invalid 'to' date, expected YYYY-MM-DD")
}

func TestSanitizeForExcel(t *testing.T) {
	assert.Equal(t, "'=SUM(A1)", sanitizeForExcel("=SUM(A1)"))
	assert.Equal(t, "BOOKQUIZ10-2d31460104", sanitizeForExcel("BOOKQUIZ10-2d31460104"))
	assert.Equal(t, "", sanitizeForExcel(""))
}
