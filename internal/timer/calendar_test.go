package timer

import (
	"errors"
	"strings"
	"testing"
)

func TestResolveCalendarIntervalKeywords(t *testing.T) {
	cases := []struct {
		expr string
		want int64
	}{
		{"minutely", 60},
		{"hourly", 3600},
		{"daily", 86400},
		{"Daily", 86400}, // keywords are case-insensitive
		{"weekly", 604800},
		{"monthly", 2592000},
		{"yearly", 31536000},
		{"annually", 31536000},
	}
	for _, tc := range cases {
		got, err := ResolveCalendarInterval(tc.expr)
		if err != nil {
			t.Errorf("ResolveCalendarInterval(%q): %v", tc.expr, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ResolveCalendarInterval(%q) = %d, want %d", tc.expr, got, tc.want)
		}
	}
}

func TestResolveCalendarIntervalCanonicalForms(t *testing.T) {
	cases := []struct {
		expr string
		want int64
	}{
		{"*-*-* *:*:00", 60},
		{"*-*-* *:00:00", 3600},
		{"*-*-* 00:00:00", 86400},
		{"*-*-* 04:30", 86400}, // fixed daily time-of-day
		{"*-*-01 00:00:00", 2592000},
		{"*-01-01 00:00:00", 31536000},
		{"Mon *-*-* 00:00:00", 604800},
	}
	for _, tc := range cases {
		got, err := ResolveCalendarInterval(tc.expr)
		if err != nil {
			t.Errorf("ResolveCalendarInterval(%q): %v", tc.expr, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ResolveCalendarInterval(%q) = %d, want %d", tc.expr, got, tc.want)
		}
	}
}

func TestResolveCalendarIntervalSteps(t *testing.T) {
	cases := []struct {
		expr string
		want int64
	}{
		{"*:0/15", 15 * 60},
		{"*:*/5", 5 * 60},
		{"*-*-* *:0/30:00", 30 * 60},
		{"0/4:00", 4 * 3600},
		{"*-*-* 0/6:00:00", 6 * 3600},
	}
	for _, tc := range cases {
		got, err := ResolveCalendarInterval(tc.expr)
		if err != nil {
			t.Errorf("ResolveCalendarInterval(%q): %v", tc.expr, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ResolveCalendarInterval(%q) = %d, want %d", tc.expr, got, tc.want)
		}
	}
}

func TestResolveCalendarIntervalWeekdays(t *testing.T) {
	for _, expr := range []string{"Mon", "Friday 18:00", "Sat,Sun 10:00", "tuesday"} {
		got, err := ResolveCalendarInterval(expr)
		if err != nil {
			t.Errorf("ResolveCalendarInterval(%q): %v", expr, err)
			continue
		}
		if got != 604800 {
			t.Errorf("ResolveCalendarInterval(%q) = %d, want weekly bucket", expr, got)
		}
	}
}

func TestResolveCalendarIntervalUnmatched(t *testing.T) {
	for _, expr := range []string{"", "soon", "2024-01-01 00:00:00", "*-*-1,15 00:00"} {
		_, err := ResolveCalendarInterval(expr)
		if err == nil {
			t.Errorf("ResolveCalendarInterval(%q): expected error", expr)
			continue
		}
		if !errors.Is(err, ErrUnresolvableCalendar) {
			t.Errorf("ResolveCalendarInterval(%q): error %v does not wrap ErrUnresolvableCalendar", expr, err)
		}
		if expr != "" && !strings.Contains(err.Error(), expr) {
			t.Errorf("ResolveCalendarInterval(%q): error %q should mention the expression", expr, err)
		}
	}
}
