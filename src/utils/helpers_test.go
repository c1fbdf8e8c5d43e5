package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2025-03-01", "2025-03-01T00:00:00Z", "2025-03-01 00:00:00 +00:00"} {
		got, err := ParseDate(s)
		require.Nil(t, err, s)
		assert.True(t, got.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)), s)
	}

	for _, s := range []string{"", "tomorrow", "03/01/2025"} {
		_, err := ParseDate(s)
		assert.NotNil(t, err, s)
	}
}

func TestOverlaps(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }

	assert.True(t, Overlaps(day(1), day(4), day(3), day(6)))
	assert.True(t, Overlaps(day(1), day(10), day(3), day(4)))
	assert.False(t, Overlaps(day(1), day(4), day(4), day(6)))
	assert.False(t, Overlaps(day(5), day(6), day(1), day(5)))
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))
	assert.Equal(t, "x", *StringPtr("x"))
}
