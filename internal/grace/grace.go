// Package grace resolves and validates the grace period for a check: the
// maximum silence the collector tolerates before flagging the check as
// overdue.
package grace

import (
	"errors"
	"fmt"
	"math"

	"helpmetest/internal/duration"
	"helpmetest/internal/helpmetest"
	"helpmetest/internal/timer"
)

// Validation bounds and the buffer applied to timer-derived intervals.
const (
	MinSeconds    int64 = 10
	MaxSeconds    int64 = 30 * 86400
	DefaultBuffer       = 1.2
)

// ErrGracePeriodRequired is returned when neither a literal nor a timer
// configuration was supplied.
var ErrGracePeriodRequired = errors.New("grace period required: pass a literal or a timer file")

// Resolve derives the effective grace period. A timer configuration takes
// its base interval from the OnCalendar expression and widens it by buffer
// (scheduled jobs drift; explicit input does not get widened). Literal and
// timer are mutually exclusive at the call site.
func Resolve(literal string, tc *helpmetest.TimerConfig, buffer float64) helpmetest.GracePeriodValidation {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	switch {
	case tc != nil:
		return resolveFromTimer(tc, buffer)
	case literal != "":
		return resolveFromLiteral(literal)
	default:
		return invalid(ErrGracePeriodRequired.Error())
	}
}

func resolveFromTimer(tc *helpmetest.TimerConfig, buffer float64) helpmetest.GracePeriodValidation {
	if tc.OnCalendar == "" {
		return invalid(fmt.Sprintf("timer file %s has no OnCalendar expression", tc.FilePath))
	}
	base, err := timer.ResolveCalendarInterval(tc.OnCalendar)
	if err != nil {
		return invalid(err.Error())
	}
	seconds := int64(math.Ceil(float64(base) * buffer))
	return checkBounds(seconds, FormatSeconds(seconds))
}

func resolveFromLiteral(literal string) helpmetest.GracePeriodValidation {
	seconds, err := duration.Parse(literal)
	if err != nil {
		return invalid(err.Error())
	}
	// Explicit input is echoed back as given, not reformatted.
	return checkBounds(seconds, literal)
}

func checkBounds(seconds int64, period string) helpmetest.GracePeriodValidation {
	switch {
	case seconds < MinSeconds:
		return invalid(fmt.Sprintf("grace period must be at least %d seconds, got %ds", MinSeconds, seconds))
	case seconds > MaxSeconds:
		return invalid(fmt.Sprintf("grace period must not exceed 30 days, got %ds", seconds))
	default:
		return helpmetest.GracePeriodValidation{
			IsValid: true,
			Message: "valid grace period",
			Seconds: seconds,
			Period:  period,
		}
	}
}

func invalid(message string) helpmetest.GracePeriodValidation {
	return helpmetest.GracePeriodValidation{Message: message}
}

// FormatSeconds renders seconds in the compact form the backend displays:
// raw seconds below a minute, then ceiling-rounded minutes, hours below two
// days, and days beyond that.
func FormatSeconds(seconds int64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm", ceilDiv(seconds, 60))
	case seconds < 172800:
		return fmt.Sprintf("%dh", ceilDiv(seconds, 3600))
	default:
		return fmt.Sprintf("%dd", ceilDiv(seconds, 86400))
	}
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
