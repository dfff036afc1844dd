// Package formatting renders call values for human-facing output such as
// spreadsheet exports, and parses human-readable sizes from configuration.
package formatting

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

var sizePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([A-Za-z]*)$`)

// Duration renders a call length in seconds as minutes and zero-padded seconds ("3:07").
// Negative values render as "0:00".
func Duration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Score renders a score with at most two decimals and no trailing zeros.
// A nil score renders as an empty string.
func Score(score *float64) string {
	if score == nil {
		return ""
	}
	return strconv.FormatFloat(math.Round(*score*100)/100, 'f', -1, 64)
}

// Timestamp renders t in UTC as "2006-01-02 15:04:05".
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.DateTime)
}

// ParseSize parses a base-1024 size such as "64KB" or "1 MB" into bytes.
// A bare number is bytes. Units are case-insensitive.
func ParseSize(s string) (int64, error) {
	m := sizePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("invalid size: %q", s)
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size: %w", err)
	}

	exp := 0
	if m[2] != "" {
		exp = slices.Index(sizeUnits, strings.ToUpper(m[2]))
		if exp < 0 {
			return 0, fmt.Errorf("unknown size unit: %q", m[2])
		}
	}

	return int64(value * math.Pow(1024, float64(exp))), nil
}
