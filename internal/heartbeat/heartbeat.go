// Package heartbeat assembles the payload reported to the collector.
package heartbeat

import (
	"time"

	"helpmetest/internal/helpmetest"
	"helpmetest/internal/metrics"
)

// Input is everything a heartbeat is built from. Build performs no I/O;
// all collaborator output is gathered by the caller first.
type Input struct {
	Name        string
	Grace       helpmetest.GracePeriodValidation
	Snapshot    metrics.Snapshot
	Results     []helpmetest.ProbeResult
	Timer       *helpmetest.TimerConfig
	CustomData  map[string]string
	Environment string
	Elapsed     time.Duration
	Timestamp   time.Time
}

// Build assembles the payload. Status is PASS exactly when every probe
// succeeded; with zero probes the heartbeat itself is the signal and the
// run counts as passing.
func Build(in Input) helpmetest.HeartbeatPayload {
	ts := in.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	return helpmetest.HeartbeatPayload{
		Name:               in.Name,
		GracePeriod:        in.Grace.Period,
		GracePeriodSeconds: in.Grace.Seconds,
		Timestamp:          ts,
		Hostname:           in.Snapshot.Hostname,
		IPAddress:          in.Snapshot.IPAddress,
		SystemMetrics:      in.Snapshot.Metrics,
		PlatformInfo:       in.Snapshot.PlatformInfo,
		Environment:        in.Environment,
		ElapsedTime:        in.Elapsed.Milliseconds(),
		CustomData:         in.CustomData,
		Status:             Status(in.Results),
		CommandsInfo:       in.Results,
		TimerInfo:          in.Timer,
	}
}

// Status reduces probe results to the reported check status.
func Status(results []helpmetest.ProbeResult) string {
	for _, r := range results {
		if !r.Success {
			return helpmetest.StatusFail
		}
	}
	return helpmetest.StatusPass
}
