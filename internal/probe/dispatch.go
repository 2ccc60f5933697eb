package probe

import (
	"context"
	"time"

	"go.uber.org/zap"

	"helpmetest/internal/helpmetest"
)

// Run executes probe expressions strictly in input order. Probes are not
// parallelized: a later probe may depend on side effects of an earlier one,
// such as a port probe releasing a socket a command probe then binds.
//
// Probe-level errors never escape; every expression yields a ProbeResult.
func Run(ctx context.Context, logger *zap.SugaredLogger, exprs []string) []helpmetest.ProbeResult {
	results := make([]helpmetest.ProbeResult, 0, len(exprs))
	for _, expr := range exprs {
		res := runOne(ctx, expr)
		if res.Success {
			logger.Debugf("probe ok (%dms): %s", res.ElapsedMs, res.Command)
		} else {
			logger.Warnf("probe failed (exit %d, %dms): %s: %s", res.ExitCode, res.ElapsedMs, res.Command, res.Error)
		}
		results = append(results, res)
	}
	return results
}

func runOne(ctx context.Context, expr string) helpmetest.ProbeResult {
	start := time.Now()

	p, err := Classify(expr)
	if err != nil {
		return helpmetest.ProbeResult{
			Command:   expr,
			ExitCode:  1,
			ElapsedMs: time.Since(start).Milliseconds(),
			Error:     err.Error(),
		}
	}

	var res helpmetest.ProbeResult
	switch p.Kind {
	case KindPort:
		res = runPort(p)
	case KindHTTP:
		res = runHTTP(ctx, p)
	case KindFileAge:
		res = runFileAge(p)
	case KindShell:
		res = runShell(ctx, p)
	}

	res.Command = p.Raw
	res.ElapsedMs = time.Since(start).Milliseconds()
	return res
}
