package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLocation(t *testing.T) {
	t.Run("empty name is UTC", func(t *testing.T) {
		loc, err := LoadLocation("")
		require.NoError(t, err)
		assert.Equal(t, time.UTC, loc)
	})

	t.Run("memoized", func(t *testing.T) {
		first, err := LoadLocation("Europe/Stockholm")
		require.NoError(t, err)
		second, err := LoadLocation("Europe/Stockholm")
		require.NoError(t, err)
		assert.Same(t, first, second)
	})

	t.Run("unknown zone", func(t *testing.T) {
		_, err := LoadLocation("Nowhere/Atlantis")
		assert.Error(t, err)
		assert.Equal(t, time.UTC, MustLocation("Nowhere/Atlantis"))
	})
}

func TestDayKey(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2024, 5, 1, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-05-01", DayKey(ts, nil))
	assert.Equal(t, "2024-05-02", DayKey(ts, loc))
	assert.Equal(t, 1, LocalHour(ts, loc))

	day, err := ParseDay("2024-05-02", loc)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-02", DayKey(day, loc))
}
