package heartbeat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"helpmetest/internal/helpmetest"
	"helpmetest/internal/metrics"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, helpmetest.StatusPass, Status(nil), "zero probes is vacuously passing")

	assert.Equal(t, helpmetest.StatusPass, Status([]helpmetest.ProbeResult{
		{Success: true}, {Success: true},
	}))

	assert.Equal(t, helpmetest.StatusFail, Status([]helpmetest.ProbeResult{
		{Success: true}, {Success: false, ExitCode: 2},
	}))
}

func TestBuild(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	results := []helpmetest.ProbeResult{
		{Command: "exit 2", ExitCode: 2, Error: "command exited with code 2"},
		{Command: "echo ok", Success: true},
	}

	payload := Build(Input{
		Name:  "db-backup",
		Grace: helpmetest.GracePeriodValidation{IsValid: true, Seconds: 90000, Period: "25h"},
		Snapshot: metrics.Snapshot{
			Hostname:     "worker-1",
			IPAddress:    "10.0.0.5",
			PlatformInfo: "debian 12 (linux/amd64)",
			Metrics:      &helpmetest.SystemMetrics{CPUUsage: 12.5},
		},
		Results:     results,
		CustomData:  map[string]string{"region": "eu-west-1"},
		Environment: "production",
		Elapsed:     1500 * time.Millisecond,
		Timestamp:   ts,
	})

	assert.Equal(t, "db-backup", payload.Name)
	assert.Equal(t, "25h", payload.GracePeriod)
	assert.Equal(t, int64(90000), payload.GracePeriodSeconds)
	assert.Equal(t, ts, payload.Timestamp)
	assert.Equal(t, "worker-1", payload.Hostname)
	assert.Equal(t, helpmetest.StatusFail, payload.Status, "one failing probe fails the check")
	assert.Equal(t, int64(1500), payload.ElapsedTime)
	assert.Len(t, payload.CommandsInfo, 2, "all results ride along, including failures")
	assert.Equal(t, "eu-west-1", payload.CustomData["region"])
	assert.Nil(t, payload.TimerInfo)
}

func TestBuildDefaultsTimestamp(t *testing.T) {
	payload := Build(Input{Name: "x", Grace: helpmetest.GracePeriodValidation{Seconds: 60, Period: "1m"}})
	assert.False(t, payload.Timestamp.IsZero())
	assert.Equal(t, helpmetest.StatusPass, payload.Status)
}

func TestBuildCarriesTimerInfo(t *testing.T) {
	tc := &helpmetest.TimerConfig{FilePath: "/etc/systemd/system/backup.timer", OnCalendar: "daily", Persistent: true}
	payload := Build(Input{Name: "backup", Timer: tc})
	assert.Same(t, tc, payload.TimerInfo)
}
