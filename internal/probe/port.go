package probe

import (
	"fmt"
	"net"

	"helpmetest/internal/helpmetest"
)

// runPort checks that a TCP port is free by binding a listener and
// releasing it immediately. Bind is synchronous, no timeout needed.
func runPort(p Probe) helpmetest.ProbeResult {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", p.Port))
	if err != nil {
		return helpmetest.ProbeResult{
			ExitCode: 1,
			Error:    fmt.Sprintf("port %d is not available: %v", p.Port, err),
		}
	}
	if err := ln.Close(); err != nil {
		return helpmetest.ProbeResult{
			ExitCode: 1,
			Error:    fmt.Sprintf("port %d: failed to release listener: %v", p.Port, err),
		}
	}
	return helpmetest.ProbeResult{Success: true}
}
