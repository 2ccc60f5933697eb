package timer

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnresolvableCalendar marks calendar expressions the heuristic matcher
// does not understand. The wrapped message carries the original expression.
var ErrUnresolvableCalendar = errors.New("unresolvable calendar expression")

// Interval buckets in seconds. Month and year are deliberate approximations
// (30 and 365 days); the backend accounts grace periods the same way.
const (
	MinuteSeconds int64 = 60
	HourSeconds   int64 = 3600
	DaySeconds    int64 = 86400
	WeekSeconds   int64 = 604800
	MonthSeconds  int64 = 30 * 86400
	YearSeconds   int64 = 365 * 86400
)

var (
	minutelyRe  = regexp.MustCompile(`^\*-\*-\* \*:\*:\d{2}$`)
	hourlyRe    = regexp.MustCompile(`^\*-\*-\* \*:\d{2}(:\d{2})?$`)
	dailyTimeRe = regexp.MustCompile(`^\*-\*-\* \d{1,2}:\d{2}(:\d{2})?$`)
	monthlyRe   = regexp.MustCompile(`^\*-\*-0?1(\s|$)`)
	yearlyRe    = regexp.MustCompile(`^\*-0?1-0?1(\s|$)`)

	// Step expressions: "*:0/15" runs every 15 minutes, "0/4:00" every 4 hours.
	minuteStepRe = regexp.MustCompile(`\*:(?:\*|\d{1,2})/(\d{1,3})`)
	hourStepRe   = regexp.MustCompile(`(?:\*|\d{1,2})/(\d{1,2}):(?:\*|\d{2})`)

	weekdayRe = regexp.MustCompile(`(?i)^(mon|tue|wed|thu|fri|sat|sun)[a-z]*([ ,.]|$)`)
)

// ResolveCalendarInterval maps an OnCalendar expression to its base interval
// in seconds. This is a best-effort classifier covering the expressions the
// tool has seen in the wild, not a full calendar evaluator; anything
// unmatched fails with ErrUnresolvableCalendar so the operator can supply an
// explicit grace period instead.
func ResolveCalendarInterval(expr string) (int64, error) {
	e := strings.TrimSpace(expr)
	if e == "" {
		return 0, fmt.Errorf("%w: empty expression", ErrUnresolvableCalendar)
	}

	// 1. Keyword buckets.
	switch strings.ToLower(e) {
	case "minutely":
		return MinuteSeconds, nil
	case "hourly":
		return HourSeconds, nil
	case "daily":
		return DaySeconds, nil
	case "weekly":
		return WeekSeconds, nil
	case "monthly":
		return MonthSeconds, nil
	case "yearly", "annually":
		return YearSeconds, nil
	}

	// 2. Canonical fixed-time forms equivalent to the keywords.
	switch {
	case minutelyRe.MatchString(e):
		return MinuteSeconds, nil
	case hourlyRe.MatchString(e):
		return HourSeconds, nil
	case dailyTimeRe.MatchString(e):
		return DaySeconds, nil
	case monthlyRe.MatchString(e):
		return MonthSeconds, nil
	case yearlyRe.MatchString(e):
		return YearSeconds, nil
	}

	// 3. Step expressions with a / divisor.
	if m := minuteStepRe.FindStringSubmatch(e); m != nil {
		if step, err := strconv.ParseInt(m[1], 10, 64); err == nil && step > 0 {
			return step * MinuteSeconds, nil
		}
	}
	if m := hourStepRe.FindStringSubmatch(e); m != nil {
		if step, err := strconv.ParseInt(m[1], 10, 64); err == nil && step > 0 {
			return step * HourSeconds, nil
		}
	}

	// 4. Weekday-name prefixes run on a weekly cadence.
	if weekdayRe.MatchString(e) {
		return WeekSeconds, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnresolvableCalendar, expr)
}
