package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"helpmetest/internal/helpmetest"
)

// httpTimeout caps HTTP probes. Deliberately short: liveness endpoints that
// take longer than this are failing for practical purposes.
const httpTimeout = 5 * time.Second

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9.-]+:\d+(/.*)?$`)

// ResolveURL turns a probe target into a fully-qualified URL. Targets with
// a scheme pass through, host:port forms get http://, and everything else is
// treated as a path on localhost.
func ResolveURL(target string) string {
	if strings.Contains(target, "://") {
		return target
	}
	if hostPortRe.MatchString(target) {
		return "http://" + target
	}
	if strings.HasPrefix(target, "/") {
		return "http://localhost" + target
	}
	return "http://localhost/" + target
}

func runHTTP(ctx context.Context, p Probe) helpmetest.ProbeResult {
	url := ResolveURL(p.Target)

	ctx, cancel := context.WithTimeout(ctx, httpTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, p.Method, url, http.NoBody)
	if err != nil {
		return helpmetest.ProbeResult{
			ExitCode: 1,
			Error:    fmt.Sprintf("invalid request %s %s: %v", p.Method, url, err),
		}
	}

	client := &http.Client{Timeout: httpTimeout}
	resp, err := client.Do(req)
	if err != nil {
		msg := fmt.Sprintf("request to %s failed: %v", url, err)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			msg = fmt.Sprintf("request to %s timed out after %v", url, httpTimeout)
		}
		return helpmetest.ProbeResult{ExitCode: 1, Error: msg}
	}
	defer resp.Body.Close() //nolint:errcheck // body is discarded

	detail := &helpmetest.ProbeDetail{
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return helpmetest.ProbeResult{
			ExitCode: 1,
			Error:    fmt.Sprintf("%s returned %d %s", url, resp.StatusCode, http.StatusText(resp.StatusCode)),
			Detail:   detail,
		}
	}
	return helpmetest.ProbeResult{Success: true, Detail: detail}
}
