package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseFlags parses command-line flags and returns a Config
func ParseFlags() (Config, error) {
	var (
		hosts       = flag.String("hosts", "", "Comma-separated hosts to diagnose (hostname or IP)")
		ports       = flag.String("ports", "", "Comma-separated TCP ports to check (e.g. 22,80,443)")
		count       = flag.Int("count", 3, "Ping count per host")
		out         = flag.String("out", "net_diagnostics_log.csv", "CSV output filename")
		dbPath      = flag.String("db", "netdiag.db", "History database path (empty to disable)")
		telemetry   = flag.Bool("telemetry", false, "Repeat diagnostics on an interval")
		interval    = flag.Duration("interval", 30*time.Second, "Telemetry cycle interval")
		duration    = flag.Duration("duration", 5*time.Minute, "Telemetry run duration")
		httpAddr    = flag.String("http", "", "Serve the history API on this address during telemetry (e.g. :8080)")
		report      = flag.Bool("report", false, "Generate a report from the history database and exit")
		reportDir   = flag.String("report-dir", "reports", "Report output directory")
		reportHours = flag.Int("report-hours", 24, "Hours of history to include in reports")
		logDir      = flag.String("logdir", "logs", "Log file directory")
	)
	flag.Parse()

	portList, err := splitPorts(*ports)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Hosts:        splitHosts(*hosts),
		Ports:        portList,
		PingCount:    *count,
		OutputPath:   *out,
		DatabasePath: *dbPath,
		Telemetry:    *telemetry,
		Interval:     *interval,
		Duration:     *duration,
		HTTPAddr:     *httpAddr,
		Report:       *report,
		ReportDir:    *reportDir,
		ReportHours:  *reportHours,
		LogDir:       *logDir,
	}, nil
}

func splitHosts(s string) []string {
	var hosts []string
	for _, h := range strings.Split(s, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

func splitPorts(s string) ([]int, error) {
	var ports []int
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid port %q: %w", p, err)
		}
		ports = append(ports, n)
	}
	return ports, nil
}
