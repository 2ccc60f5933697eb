package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"helpmetest/internal/helpmetest"
)

const (
	// Maximum captured output size to prevent memory exhaustion.
	maxOutputSize = 10 * 1024 // 10KB limit
)

// runShell executes the expression literally in a subshell and waits for it
// synchronously. No timeout: the operator is expected to bound long-running
// commands themselves (e.g. with timeout(1)). The parent context still
// cancels on SIGINT/SIGTERM.
func runShell(ctx context.Context, p Probe) helpmetest.ProbeResult {
	cmd := exec.CommandContext(ctx, "sh", "-c", p.Raw)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
	}

	if exitCode == 0 {
		return helpmetest.ProbeResult{Success: true}
	}

	msg := fmt.Sprintf("command exited with code %d", exitCode)
	if err != nil && exitCode == -1 {
		msg = fmt.Sprintf("command failed to run: %v", err)
	}
	if stderr := strings.TrimSpace(limitOutput(stderrBuf.Bytes(), maxOutputSize)); stderr != "" {
		msg += ": " + stderr
	}
	return helpmetest.ProbeResult{ExitCode: exitCode, Error: msg}
}

// limitOutput truncates output if it exceeds maxSize.
func limitOutput(data []byte, maxSize int) string {
	if len(data) > maxSize {
		return string(data[:maxSize]) + "\n[Output truncated to 10KB]..."
	}
	return string(data)
}
