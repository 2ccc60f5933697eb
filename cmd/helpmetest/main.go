// Package main implements the helpmetest CLI. It runs health probes for a
// named check, reports a heartbeat to the collector best-effort, and exits
// with a code derived from the probe results alone — never from the
// reachability of the collector.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"helpmetest/internal/config"
	"helpmetest/internal/grace"
	"helpmetest/internal/heartbeat"
	"helpmetest/internal/helpmetest"
	"helpmetest/internal/logging"
	"helpmetest/internal/metrics"
	"helpmetest/internal/probe"
	"helpmetest/internal/report"
	"helpmetest/internal/timer"
)

// exitUsage is the exit code for usage errors: bad check name, malformed
// grace period, unreadable timer file, invalid probe syntax. Distinct from
// probe-driven exit codes so orchestrators can tell config mistakes from
// failing workloads.
const exitUsage = 2

var (
	graceFlag   = flag.String("grace", "", "Grace period literal, e.g. 25h (mutually exclusive with -timer-file)")
	timerFlag   = flag.String("timer-file", "", "Systemd timer file to derive the grace period from")
	probesFlag  = flag.String("probes-file", "", "YAML file declaring name, grace period and probes")
	bufferFlag  = flag.Float64("buffer", config.DefaultBuffer, "Multiplier applied to timer-derived intervals")
	skipReport  = flag.Bool("skip-report", false, "Run probes but do not contact the collector")
	dryRun      = flag.Bool("dry-run", false, "Validate and probe without reporting")
	skipMetrics = flag.Bool("skip-metrics", false, "Skip system metrics collection for speed")
	jsonOut     = flag.Bool("json", false, "Print the heartbeat payload as JSON on stdout")
	verbose     = flag.Bool("verbose", false, "Enable debug logging")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: helpmetest [flags] <check-name> [probe ...]

Probes:
  :<port>                        succeed if the TCP port is free
  GET|POST <url-or-path>         succeed on a 2xx response
  file-updated <max-age> <path>  succeed if the file was modified recently
  <shell command>                succeed on exit status 0

Examples:
  helpmetest -grace 25h db-backup
  helpmetest -grace 5m web ":8080" "GET /health"
  helpmetest -timer-file /etc/systemd/system/backup.timer backup "file-updated 26h /var/backups/latest"

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = usage
	flag.Parse()

	cfg := config.FromEnv()
	mergeFlags(&cfg)
	if args := flag.Args(); len(args) > 0 {
		cfg.Name = args[0]
		cfg.Probes = args[1:]
	}

	logger := logging.New(cfg.Verbose, cfg.LogFile)
	defer logger.Sync() //nolint:errcheck // stderr sync failure is unactionable

	if cfg.ProbesFile != "" {
		pf, err := config.LoadProbesFile(cfg.ProbesFile)
		if err != nil {
			logger.Errorf("%v", err)
			return exitUsage
		}
		cfg.Apply(pf)
	}

	if err := cfg.Validate(); err != nil {
		logger.Errorf("invalid configuration: %v", err)
		return exitUsage
	}

	var tc *helpmetest.TimerConfig
	if cfg.TimerFile != "" {
		var err error
		tc, err = timer.ParseFile(cfg.TimerFile)
		if err != nil {
			logger.Errorf("%v", err)
			return exitUsage
		}
	}

	gv := grace.Resolve(cfg.GraceLiteral, tc, cfg.Buffer)
	if !gv.IsValid {
		logger.Errorf("invalid grace period: %s", gv.Message)
		return exitUsage
	}
	logger.Debugf("grace period resolved: %s (%ds)", gv.Period, gv.Seconds)

	// Probe syntax errors are usage errors, surfaced before any probing.
	for _, expr := range cfg.Probes {
		if _, err := probe.Classify(expr); err != nil {
			logger.Errorf("invalid probe %q: %v", expr, err)
			return exitUsage
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	results := probe.Run(ctx, logger, cfg.Probes)
	elapsed := time.Since(start)

	var snap metrics.Snapshot
	if cfg.SkipMetrics {
		snap = metrics.Skip()
	} else {
		snap = metrics.Collect(ctx)
	}

	payload := heartbeat.Build(heartbeat.Input{
		Name:        cfg.Name,
		Grace:       gv,
		Snapshot:    snap,
		Results:     results,
		Timer:       tc,
		CustomData:  cfg.CustomData(),
		Environment: cfg.Environment,
		Elapsed:     elapsed,
	})

	if cfg.JSONOutput {
		if err := json.NewEncoder(os.Stdout).Encode(payload); err != nil {
			logger.Warnf("failed to render payload: %v", err)
		}
	}

	client := report.NewClient(cfg.APIURL, cfg.APIToken, logger)
	client.Send(ctx, payload, cfg.SkipReason())

	code := report.ExitCode(results)
	summarize(logger, payload, len(results), code)
	return code
}

// mergeFlags layers command-line flags over the environment config.
func mergeFlags(cfg *config.Config) {
	if *graceFlag != "" {
		cfg.GraceLiteral = *graceFlag
	}
	if *timerFlag != "" {
		cfg.TimerFile = *timerFlag
	}
	if *probesFlag != "" {
		cfg.ProbesFile = *probesFlag
	}
	cfg.Buffer = *bufferFlag
	cfg.SkipReport = cfg.SkipReport || *skipReport
	cfg.DryRun = cfg.DryRun || *dryRun
	cfg.SkipMetrics = *skipMetrics
	cfg.Verbose = cfg.Verbose || *verbose
	cfg.JSONOutput = *jsonOut
}

func summarize(logger *zap.SugaredLogger, payload helpmetest.HeartbeatPayload, probes, code int) {
	if code == 0 {
		logger.Infof("%s: %s (%d probes, grace %s)", payload.Name, payload.Status, probes, payload.GracePeriod)
		return
	}
	logger.Infof("%s: %s (%d probes, grace %s), exiting %d", payload.Name, payload.Status, probes, payload.GracePeriod, code)
}
