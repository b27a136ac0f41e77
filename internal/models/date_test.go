package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-04-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-04-01", d.String())

	_, err = ParseDate("01/04/2025")
	assert.Error(t, err)

	_, err = ParseDate("2025-13-01")
	assert.Error(t, err)
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2025, time.April, 1)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-04-01"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, d.String(), parsed.String())
}

func TestDateArithmetic(t *testing.T) {
	applied := NewDate(2025, time.January, 1)
	assert.Equal(t, "2025-04-01", applied.AddDays(90).String())
	assert.Equal(t, "2024-12-31", applied.AddDays(-1).String())

	today := NewDate(2025, time.April, 2)
	scheduled := NewDate(2025, time.April, 1)
	assert.Equal(t, -1, scheduled.DaysUntil(today))
	assert.Equal(t, 0, today.DaysUntil(today))
	assert.Equal(t, 7, today.AddDays(7).DaysUntil(today))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-04-01", d.String())

	var fromString Date
	require.NoError(t, fromString.Scan("2025-04-01 00:00:00+00:00"))
	assert.Equal(t, "2025-04-01", fromString.String())

	var fromBytes Date
	require.NoError(t, fromBytes.Scan([]byte("2025-04-01")))
	assert.Equal(t, "2025-04-01", fromBytes.String())

	assert.Error(t, d.Scan(42))
}

func TestScheduleAndAlertKeys(t *testing.T) {
	assert.Equal(t, "3:7", ScheduleActiveKey(3, 7))
	assert.Equal(t, "3:7:2025-04-01", AlertLiveKey(3, 7, NewDate(2025, time.April, 1)))
}
