package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walter/src/utils"
)

func TestDayStart(t *testing.T) {
	at := time.Date(2025, 1, 8, 15, 42, 7, 123, time.UTC)
	assert.Equal(t, time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), utils.DayStart(at))
}

func TestTrailingWindow(t *testing.T) {
	now := time.Date(2025, 1, 8, 15, 42, 7, 0, time.UTC)

	start, end, err := utils.TrailingWindow(now, 7)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), start)
}

func TestTrailingWindowRejectsNonPositiveDays(t *testing.T) {
	now := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)

	_, _, err := utils.TrailingWindow(now, 0)
	assert.Error(t, err)

	_, _, err = utils.TrailingWindow(now, -3)
	assert.Error(t, err)
}
