package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSplit(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		valid   bool
		minutes float64
	}{
		{
			name:    "minutes and seconds",
			input:   "52:30",
			valid:   true,
			minutes: 52.5,
		},
		{
			name:    "hours minutes seconds",
			input:   "1:02:15",
			valid:   true,
			minutes: 62.25,
		},
		{
			name:    "single digit minutes",
			input:   "5:30",
			valid:   true,
			minutes: 5.5,
		},
		{
			name:    "surrounding whitespace",
			input:   " 48:00 ",
			valid:   true,
			minutes: 48,
		},
		{
			name:  "empty string",
			input: "",
			valid: false,
		},
		{
			name:  "whitespace only",
			input: "   ",
			valid: false,
		},
		{
			name:  "single field",
			input: "42",
			valid: false,
		},
		{
			name:  "four fields",
			input: "1:02:03:04",
			valid: false,
		},
		{
			name:  "non-numeric fields",
			input: "ab:cd",
			valid: false,
		},
		{
			name:  "partially numeric",
			input: "52:x0",
			valid: false,
		},
		{
			name:  "negative component",
			input: "-1:30",
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSplit(tt.input)
			assert.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.InDelta(t, tt.minutes, got.Minutes, 1e-9)
			}
		})
	}
}

func TestParseSplitsAlignment(t *testing.T) {
	series := ParseSplits([]string{"50:00", "garbage", "52:00"})
	assert.Len(t, series, 3)
	assert.True(t, series[0].Valid)
	assert.False(t, series[1].Valid)
	assert.True(t, series[2].Valid)
}
