// Package report delivers heartbeats to the collector and computes the
// process exit code.
//
// The two concerns are deliberately isolated: transmission is best-effort
// under a hard timeout and every failure on that path degrades to a
// warning, while the exit code is derived from probe results alone. A dead
// monitoring backend must never make a healthy workload look failed.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"go.uber.org/zap"

	"helpmetest/internal/helpmetest"
)

const (
	// Hard cap on the whole transmission attempt. Shorter than typical
	// orchestrator probe timeouts so this tool is never the reason a
	// liveness probe itself times out.
	sendTimeout = 3 * time.Second

	// Retry configuration for transient failures inside the window.
	maxAttempts  = 2
	initialDelay = 250 * time.Millisecond
	maxDelay     = time.Second

	userAgent = "helpmetest-cli/1.0"
)

// Client posts heartbeats to the collector API.
type Client struct {
	httpClient *http.Client
	logger     *zap.SugaredLogger
	baseURL    string
	token      string
}

// NewClient builds a collector client for the given base URL and API token.
func NewClient(baseURL, token string, logger *zap.SugaredLogger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: sendTimeout},
		logger:     logger,
		baseURL:    baseURL,
		token:      token,
	}
}

// Send transmits the heartbeat best-effort. When skipReason is non-empty
// the transmission is skipped with a warning. Otherwise the attempt races a
// fixed timer; the losing send is cancelled, not awaited. Send never
// returns an error and never panics: nothing on this path may influence the
// caller's exit code.
func (c *Client) Send(ctx context.Context, payload helpmetest.HeartbeatPayload, skipReason string) {
	if skipReason != "" {
		c.logger.Warnf("heartbeat for %q not sent: %s", payload.Name, skipReason)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- c.post(ctx, payload)
	}()

	select {
	case err := <-done:
		if err != nil {
			c.warn(payload.Name, err)
			return
		}
		c.logger.Debugf("heartbeat for %q delivered", payload.Name)
	case <-ctx.Done():
		// cancel() on return aborts the in-flight request.
		c.logger.Warnf("heartbeat for %q not delivered: timed out after %v", payload.Name, sendTimeout)
	}
}

// statusError reports a non-2xx collector response.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("server returned status %d", e.code)
}

func (c *Client) post(ctx context.Context, payload helpmetest.HeartbeatPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal heartbeat: %w", err)
	}

	endpoint := c.baseURL + "/api/heartbeat/" + url.PathEscape(payload.Name)

	return retry.Do(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("send heartbeat: %w", err)
		}
		defer resp.Body.Close() //nolint:errcheck // response body is discarded

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &statusError{code: resp.StatusCode}
		}
		return nil
	}, retry.Attempts(maxAttempts), retry.Delay(initialDelay), retry.MaxDelay(maxDelay), retry.LastErrorOnly(true))
}

// warn logs a transmission failure with response-specific guidance. This is
// the isolation boundary: the error stops here.
func (c *Client) warn(name string, err error) {
	var se *statusError
	if errors.As(err, &se) {
		switch {
		case se.code == http.StatusUnauthorized:
			c.logger.Warnf("heartbeat for %q rejected (401): check your API token", name)
		case se.code == http.StatusForbidden:
			c.logger.Warnf("heartbeat for %q rejected (403): token lacks permission for this check", name)
		case se.code == http.StatusNotFound:
			c.logger.Warnf("heartbeat for %q rejected (404): check the API URL, endpoint not found", name)
		case se.code == http.StatusTooManyRequests:
			c.logger.Warnf("heartbeat for %q rejected (429): rate limited, report dropped", name)
		case se.code >= 500:
			c.logger.Warnf("heartbeat for %q failed (%d): collector server error", name, se.code)
		default:
			c.logger.Warnf("heartbeat for %q failed: %v", name, err)
		}
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		c.logger.Warnf("heartbeat for %q not delivered: timed out after %v", name, sendTimeout)
		return
	}
	c.logger.Warnf("heartbeat for %q not delivered: %v", name, err)
}

// ExitCode derives the process exit code from probe results alone,
// independent of whether reporting succeeded, failed, timed out, or was
// skipped. The first failing probe wins; zero probes is a passing run.
func ExitCode(results []helpmetest.ProbeResult) int {
	for _, r := range results {
		if !r.Success {
			if r.ExitCode > 0 {
				return r.ExitCode
			}
			// Spawn failures and signals carry no usable exit code.
			return 1
		}
	}
	return 0
}
