package analytics

import (
	"strconv"
	"strings"
)

// ParseSplit converts a formatted lap split into minutes. Two colon
// separated fields are read as minutes:seconds, three as
// hours:minutes:seconds. Empty input, a wrong field count or a
// non-numeric field all produce the missing marker; malformed data is
// a gap, never a NaN.
func ParseSplit(raw string) Sample {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Missing()
	}

	fields := strings.Split(trimmed, ":")
	parts := make([]int, 0, len(fields))
	for _, field := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n < 0 {
			return Missing()
		}
		parts = append(parts, n)
	}

	switch len(parts) {
	case 2:
		return Value(float64(parts[0]) + float64(parts[1])/60.0)
	case 3:
		return Value(float64(parts[0])*60.0 + float64(parts[1]) + float64(parts[2])/60.0)
	default:
		return Missing()
	}
}

// ParseSplits runs ParseSplit over a slice of raw splits, producing a
// series aligned 1:1 with the input.
func ParseSplits(raw []string) []Sample {
	series := make([]Sample, len(raw))
	for i, r := range raw {
		series[i] = ParseSplit(r)
	}
	return series
}
