package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"netdiag/internal/csvlog"
	"netdiag/internal/models"
)

// OutputFile is the fixed output target rewritten on every cycle.
const OutputFile = "telemetry_log.csv"

// ProbeCount is the fixed per-host ping count used during telemetry cycles,
// regardless of the one-shot count configured by the caller.
const ProbeCount = 2

// Driver repeats the full diagnostic cycle across all hosts on a fixed
// interval until a wall-clock deadline. No state carries between cycles.
type Driver struct {
	diagnoser models.Diagnoser
	store     models.Store
	outPath   string
	interval  time.Duration
	duration  time.Duration
	log       *zap.SugaredLogger
}

// New creates a Driver. store may be nil, in which case cycles are only
// written to the CSV output.
func New(diagnoser models.Diagnoser, store models.Store, outPath string, interval, duration time.Duration, log *zap.SugaredLogger) *Driver {
	if outPath == "" {
		outPath = OutputFile
	}
	return &Driver{
		diagnoser: diagnoser,
		store:     store,
		outPath:   outPath,
		interval:  interval,
		duration:  duration,
		log:       log,
	}
}

// Run executes diagnostic cycles until the deadline, rewriting the output
// file after each one. The first cycle always runs, however small the
// duration. Only a failed write ends the run early: a lost cycle of probing
// is recoverable, a lost output file is not.
func (d *Driver) Run(ctx context.Context, hosts []string) error {
	deadline := time.Now().Add(d.duration)

	for {
		records := d.diagnoser.Run(ctx, hosts)
		if err := csvlog.WriteFile(d.outPath, records); err != nil {
			return err
		}
		if d.store != nil {
			if err := d.store.SaveRows(models.Flatten(records)); err != nil {
				return fmt.Errorf("save history: %w", err)
			}
		}
		d.log.Infow("logged results", "hosts", len(hosts), "file", d.outPath)

		if !time.Now().Before(deadline) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d.interval):
		}
		// The interval may have carried us past the deadline while asleep.
		if !time.Now().Before(deadline) {
			return nil
		}
	}
}
