package models

import "context"

// Prober issues the individual external checks for a host. Every method
// captures failure in its result; none of them return an error.
type Prober interface {
	Resolve(ctx context.Context, host string) DNSResult
	Ping(ctx context.Context, host string, count int) PingResult
	Traceroute(ctx context.Context, host string, maxHops int) TracerouteResult
	ProbePort(ctx context.Context, host string, port int) PortProbeResult
}

// Diagnoser runs one full diagnostic pass across a set of hosts.
type Diagnoser interface {
	Run(ctx context.Context, hosts []string) []DiagnosticRecord
}

// Store interface defines operations for history persistence
type Store interface {
	SaveRows(rows []Row) error
	GetRecent(hours int) ([]Row, error)
	GetStats(hours int) ([]Stats, error)
	Close() error
}
