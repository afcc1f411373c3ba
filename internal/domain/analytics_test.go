package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayBucket(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "midday UTC",
			in:   time.Date(2025, 6, 15, 13, 45, 12, 0, time.UTC),
			want: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "just before midnight",
			in:   time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC),
			want: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "just after midnight",
			in:   time.Date(2025, 6, 16, 0, 0, 1, 0, time.UTC),
			want: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "non-UTC zone buckets by UTC day",
			in:   time.Date(2025, 6, 15, 22, 0, 0, 0, time.FixedZone("KST", 9*3600)),
			want: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "local evening crosses into next UTC day",
			in:   time.Date(2025, 6, 15, 20, 0, 0, 0, time.FixedZone("PDT", -7*3600)),
			want: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DayBucket(tt.in)
			assert.True(t, got.Equal(tt.want), "DayBucket(%v) = %v, want %v", tt.in, got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestEventTypeValid(t *testing.T) {
	assert.True(t, EventPageview.Valid())
	assert.True(t, EventClick.Valid())
	assert.False(t, EventType("").Valid())
	assert.False(t, EventType("scroll").Valid())
	assert.False(t, EventType("PAGEVIEW").Valid())
}
