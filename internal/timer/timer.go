// Package timer reads systemd-style timer files and maps their calendar
// expressions to an expected run interval. The interval feeds the grace
// period derivation for checks attached to scheduled jobs.
package timer

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"helpmetest/internal/helpmetest"
)

// ParseFile reads an INI-like timer definition. Sections are [Timer] and
// [Unit], keys are case-insensitive, lines starting with # or ; are
// comments, and unknown keys are ignored.
func ParseFile(path string) (*helpmetest.TimerConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read timer file: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	cfg := &helpmetest.TimerConfig{FilePath: path}
	section := ""

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(line[1 : len(line)-1])
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch section {
		case "timer":
			applyTimerKey(cfg, key, value)
		case "unit":
			// Description is only a fallback label when [Timer] has no Unit=.
			if key == "description" && cfg.Unit == "" {
				cfg.Unit = value
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read timer file: %w", err)
	}
	return cfg, nil
}

func applyTimerKey(cfg *helpmetest.TimerConfig, key, value string) {
	switch key {
	case "oncalendar":
		cfg.OnCalendar = value
	case "persistent":
		cfg.Persistent = isTruthy(value)
	case "accuracysec":
		cfg.AccuracySec = value
	case "randomizeddelaysec":
		cfg.RandomizedDelaySec = value
	case "onbootsec":
		cfg.OnBootSec = value
	case "onstartupsec":
		cfg.OnStartupSec = value
	case "onunitactivesec":
		cfg.OnUnitActiveSec = value
	case "onunitinactivesec":
		cfg.OnUnitInactiveSec = value
	case "unit":
		cfg.Unit = value
	}
}

func isTruthy(value string) bool {
	switch strings.ToLower(value) {
	case "true", "yes", "on", "1":
		return true
	default:
		return false
	}
}
