package diagnose

import (
	"context"
	"time"

	"go.uber.org/zap"

	"netdiag/internal/models"
)

// DefaultMaxHops is the traceroute hop ceiling used for every host.
const DefaultMaxHops = 20

// Runner evaluates every probe category for each host in turn.
type Runner struct {
	prober models.Prober
	ports  []int
	count  int
	log    *zap.SugaredLogger
}

// New creates a Runner probing the given ports with the given ping count.
func New(prober models.Prober, ports []int, count int, log *zap.SugaredLogger) *Runner {
	return &Runner{prober: prober, ports: ports, count: count, log: log}
}

// DiagnoseHost runs DNS, ping, traceroute and port probes for one host. The
// categories are independent: a failure in one is captured on its sub-result
// and never blocks the others, so DiagnoseHost itself cannot fail. The
// timestamp is captured once, at the start, in UTC.
func (r *Runner) DiagnoseHost(ctx context.Context, host string) models.DiagnosticRecord {
	record := models.DiagnosticRecord{
		Timestamp: time.Now().UTC(),
		Target:    host,
	}

	record.DNS = r.prober.Resolve(ctx, host)
	record.Ping = r.prober.Ping(ctx, host, r.count)
	record.Traceroute = r.prober.Traceroute(ctx, host, DefaultMaxHops)
	for _, port := range r.ports {
		record.Ports = append(record.Ports, r.prober.ProbePort(ctx, host, port))
	}

	return record
}

// Run diagnoses every host in order, so repeated runs over the same host
// list emit records, and eventually rows, in the same order.
func (r *Runner) Run(ctx context.Context, hosts []string) []models.DiagnosticRecord {
	records := make([]models.DiagnosticRecord, 0, len(hosts))
	for _, host := range hosts {
		r.log.Infow("running checks", "host", host)
		records = append(records, r.DiagnoseHost(ctx, host))
	}
	return records
}
