// Package helpmetest defines shared data structures for the helpmetest CLI.
package helpmetest

import "time"

// Check status values reported to the backend.
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
)

// ProbeDetail carries kind-specific information about a probe outcome.
// At most one group of fields is populated: HTTP status for HTTP probes,
// age fields for file-age probes.
type ProbeDetail struct {
	Status     int    `json:"status,omitempty"`      // HTTP status code
	StatusText string `json:"status_text,omitempty"` // HTTP status text
	AgeMs      int64  `json:"age_ms,omitempty"`      // Measured file age
	MaxAgeMs   int64  `json:"max_age_ms,omitempty"`  // Allowed file age
	Path       string `json:"path,omitempty"`        // File that was checked
}

// ProbeResult is the normalized outcome of a single probe.
// Success is true exactly when ExitCode is zero.
type ProbeResult struct {
	Command   string       `json:"command"`
	Success   bool         `json:"success"`
	ExitCode  int          `json:"exit_code"`
	ElapsedMs int64        `json:"elapsed_ms"`
	Error     string       `json:"error,omitempty"`
	Detail    *ProbeDetail `json:"detail,omitempty"`
}

// TimerConfig is the parsed form of a systemd-style timer file.
// Only OnCalendar is interpreted; the remaining fields are carried verbatim
// for display and for the heartbeat payload.
type TimerConfig struct {
	FilePath           string `json:"file_path"`
	OnCalendar         string `json:"on_calendar,omitempty"`
	Persistent         bool   `json:"persistent,omitempty"`
	AccuracySec        string `json:"accuracy_sec,omitempty"`
	RandomizedDelaySec string `json:"randomized_delay_sec,omitempty"`
	OnBootSec          string `json:"on_boot_sec,omitempty"`
	OnStartupSec       string `json:"on_startup_sec,omitempty"`
	OnUnitActiveSec    string `json:"on_unit_active_sec,omitempty"`
	OnUnitInactiveSec  string `json:"on_unit_inactive_sec,omitempty"`
	Unit               string `json:"unit,omitempty"`
}

// GracePeriodValidation is the outcome of resolving a grace period from
// either a literal string or a timer configuration.
type GracePeriodValidation struct {
	IsValid bool   `json:"is_valid"`
	Message string `json:"message"`
	Seconds int64  `json:"seconds"`
	Period  string `json:"period"` // compact human form, e.g. "29h"
}

// SystemMetrics is the resource usage snapshot attached to a heartbeat.
type SystemMetrics struct {
	CPUUsage    float64 `json:"cpu_usage"`
	MemoryUsage float64 `json:"memory_usage"`
	DiskUsage   float64 `json:"disk_usage"`
}

// HeartbeatPayload is the report sent to the collector for one invocation.
// It is built fresh per run and sent at most once.
type HeartbeatPayload struct {
	Name               string            `json:"name"`
	GracePeriod        string            `json:"grace_period"`
	GracePeriodSeconds int64             `json:"grace_period_seconds"`
	Timestamp          time.Time         `json:"timestamp"`
	Hostname           string            `json:"hostname,omitempty"`
	IPAddress          string            `json:"ip_address,omitempty"`
	SystemMetrics      *SystemMetrics    `json:"system_metrics,omitempty"`
	PlatformInfo       string            `json:"platform_info,omitempty"`
	Environment        string            `json:"environment,omitempty"`
	ElapsedTime        int64             `json:"elapsed_time"` // probe wall time in ms
	CustomData         map[string]string `json:"custom_data,omitempty"`
	Status             string            `json:"status"`
	CommandsInfo       []ProbeResult     `json:"commands_info,omitempty"`
	TimerInfo          *TimerConfig      `json:"timer_info,omitempty"`
}

// IsValidCheckName validates that a check name contains only safe characters.
func IsValidCheckName(name string) bool {
	// Security: Only allow alphanumeric, underscore, and hyphen
	const maxCheckNameLength = 100
	for _, r := range name {
		if (r < 'a' || r > 'z') &&
			(r < 'A' || r > 'Z') &&
			(r < '0' || r > '9') &&
			r != '_' && r != '-' {
			return false
		}
	}
	return name != "" && len(name) <= maxCheckNameLength
}
