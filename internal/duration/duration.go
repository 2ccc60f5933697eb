// Package duration parses human-readable interval strings such as "30s",
// "5m", "1.5h" or "1d" into whole seconds. It exists because the standard
// library's time.ParseDuration has no day unit and the grace-period format
// shared with the backend uses one.
package duration

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidDuration is wrapped by all parse failures.
var ErrInvalidDuration = errors.New("invalid duration")

var termRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)([smhd])`)

var unitSeconds = map[string]float64{
	"s": 1,
	"m": 60,
	"h": 3600,
	"d": 86400,
}

// Parse converts text into seconds. Compound terms are summed ("1h30m"),
// fractional values are allowed ("1.5h"), and the result is rounded to the
// nearest second. Empty, malformed, or non-positive input is an error.
func Parse(text string) (int64, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidDuration)
	}

	var total float64
	rest := s
	for rest != "" {
		m := termRe.FindStringSubmatch(rest)
		if m == nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, text)
		}
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, text)
		}
		total += value * unitSeconds[m[2]]
		rest = rest[len(m[0]):]
	}

	seconds := int64(math.Round(total))
	if seconds <= 0 {
		return 0, fmt.Errorf("%w: %q is not a positive interval", ErrInvalidDuration, text)
	}
	return seconds, nil
}
