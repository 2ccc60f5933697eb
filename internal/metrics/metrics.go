// Package metrics collects the host-level snapshot attached to heartbeats.
package metrics

import (
	"context"
	"fmt"
	"net"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"helpmetest/internal/helpmetest"
)

// cpuSampleInterval is how long the CPU usage sample blocks. Kept short so
// metrics collection never dominates probe time.
const cpuSampleInterval = 200 * time.Millisecond

// Snapshot is one collection of host identity and resource usage.
type Snapshot struct {
	Hostname     string
	IPAddress    string
	PlatformInfo string
	Metrics      *helpmetest.SystemMetrics
}

// Collect gathers hostname, outbound IP, platform info, and CPU/memory/disk
// usage. Individual collector failures degrade to zero values instead of
// failing the run; metrics are advisory context, not probe evidence.
func Collect(ctx context.Context) Snapshot {
	snap := Skip()

	if info, err := host.InfoWithContext(ctx); err == nil {
		snap.PlatformInfo = fmt.Sprintf("%s %s (%s/%s)", info.Platform, info.PlatformVersion, runtime.GOOS, runtime.GOARCH)
		if snap.Hostname == "" {
			snap.Hostname = info.Hostname
		}
	} else {
		snap.PlatformInfo = runtime.GOOS + "/" + runtime.GOARCH
	}

	m := &helpmetest.SystemMetrics{}
	if percents, err := cpu.PercentWithContext(ctx, cpuSampleInterval, false); err == nil && len(percents) > 0 {
		m.CPUUsage = percents[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		m.MemoryUsage = vm.UsedPercent
	}
	if du, err := disk.UsageWithContext(ctx, rootPath()); err == nil {
		m.DiskUsage = du.UsedPercent
	}
	snap.Metrics = m

	return snap
}

// Skip returns an identity-only snapshot for runs that opt out of resource
// metrics collection for speed.
func Skip() Snapshot {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return Snapshot{
		Hostname:  hostname,
		IPAddress: outboundIP(),
	}
}

// outboundIP finds the preferred local address without sending traffic: a
// UDP "connection" only selects a route.
func outboundIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return ""
	}
	defer conn.Close() //nolint:errcheck // no data was sent
	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		return addr.IP.String()
	}
	return ""
}

func rootPath() string {
	if runtime.GOOS == "windows" {
		return "C:\\"
	}
	return "/"
}
