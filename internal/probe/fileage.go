package probe

import (
	"fmt"
	"os"
	"time"

	"helpmetest/internal/duration"
	"helpmetest/internal/helpmetest"
)

const fileAgeUsage = "usage: file-updated <max-age> <path>, e.g. \"file-updated 2m /tmp/heartbeat\""

// runFileAge succeeds when the file exists and was modified within max-age.
// Malformed expressions are probe failures with a usage message, not
// crashes: a typo in a cron line should be visible on the dashboard.
func runFileAge(p Probe) helpmetest.ProbeResult {
	if len(p.Args) != 2 {
		return helpmetest.ProbeResult{
			ExitCode: 1,
			Error:    fmt.Sprintf("expected 2 arguments, got %d; %s", len(p.Args), fileAgeUsage),
		}
	}

	maxAgeSec, err := duration.Parse(p.Args[0])
	if err != nil {
		return helpmetest.ProbeResult{
			ExitCode: 1,
			Error:    fmt.Sprintf("bad max-age %q: %v; %s", p.Args[0], err, fileAgeUsage),
		}
	}
	maxAgeMs := maxAgeSec * 1000
	path := p.Args[1]

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return helpmetest.ProbeResult{
				ExitCode: 1,
				Error:    fmt.Sprintf("File not found: %s (expected modification within %s)", path, p.Args[0]),
				Detail:   &helpmetest.ProbeDetail{MaxAgeMs: maxAgeMs, Path: path},
			}
		}
		return helpmetest.ProbeResult{
			ExitCode: 1,
			Error:    fmt.Sprintf("stat %s: %v", path, err),
			Detail:   &helpmetest.ProbeDetail{MaxAgeMs: maxAgeMs, Path: path},
		}
	}

	ageMs := time.Since(info.ModTime()).Milliseconds()
	if ageMs < 0 {
		ageMs = 0 // mtime in the future, clock skew
	}
	detail := &helpmetest.ProbeDetail{AgeMs: ageMs, MaxAgeMs: maxAgeMs, Path: path}

	if ageMs > maxAgeMs {
		return helpmetest.ProbeResult{
			ExitCode: 1,
			Error: fmt.Sprintf("File too old: %s modified %s ago, max age %s",
				path, formatAge(ageMs), formatAge(maxAgeMs)),
			Detail: detail,
		}
	}
	return helpmetest.ProbeResult{Success: true, Detail: detail}
}

func formatAge(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).Round(time.Second).String()
}
