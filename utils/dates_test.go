package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-10", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		{" 2025-03-10 ", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		{"2025-03-10T14:30:00", time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)},
		{"2025-03-10 14:30:00", time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)},
		{"2025-03-10T14:30:00+03:00", time.Date(2025, 3, 10, 11, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	_, err := ParseDate("10.03.2025")
	assert.Error(t, err)
}

func TestParseOptionalDate(t *testing.T) {
	got, err := ParseOptionalDate("  ")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = ParseOptionalDate("tomorrow")
	assert.Error(t, err)
}
