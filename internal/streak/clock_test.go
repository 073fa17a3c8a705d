package streak

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidKey(t *testing.T) {
	assert.True(t, ValidKey("2024-01-31"))
	assert.False(t, ValidKey("2024-1-31"))
	assert.False(t, ValidKey("2024-02-30"))
	assert.False(t, ValidKey("yesterday"))
	assert.False(t, ValidKey(""))
}

func TestPrevDay(t *testing.T) {
	assert.Equal(t, "2024-01-01", PrevDay("2024-01-02"))
	assert.Equal(t, "2023-12-31", PrevDay("2024-01-01"))
	// Leap day.
	assert.Equal(t, "2024-02-29", PrevDay("2024-03-01"))
	assert.Equal(t, "", PrevDay("not-a-date"))
}

func TestKeysCompareLexicographically(t *testing.T) {
	// The engine relies on plain string comparison of day keys.
	assert.True(t, "2024-01-02" > "2024-01-01")
	assert.True(t, "2024-02-01" > "2024-01-31")
	assert.True(t, "2025-01-01" > "2024-12-31")
}

func TestFixedClock(t *testing.T) {
	var c Clock = FixedClock("2024-06-15")
	assert.Equal(t, "2024-06-15", c.Today())
}
