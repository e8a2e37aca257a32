package probe

import (
	"context"
	"net"
	"strconv"
	"time"

	"netdiag/internal/models"
	"netdiag/internal/platform"
)

const (
	dnsTimeout   = 3 * time.Second
	portTimeout  = 2 * time.Second
	traceTimeout = 60 * time.Second
	// pingGrace pads the count-dependent timeout so the command can print
	// its summary before the runner gives up on it.
	pingGrace = 2 * time.Second
)

// Prober issues the external checks for the injected platform profile.
// Every method records failure in its result instead of returning an error.
type Prober struct {
	profile  platform.Profile
	resolver *net.Resolver
}

// New creates a Prober using the OS resolver.
func New(profile platform.Profile) *Prober {
	return &Prober{
		profile:  profile,
		resolver: &net.Resolver{},
	}
}

// Resolve looks up the first address for host.
func (p *Prober) Resolve(ctx context.Context, host string) models.DNSResult {
	result := models.DNSResult{Target: host}

	ctx, cancel := context.WithTimeout(ctx, dnsTimeout)
	defer cancel()

	ips, err := p.resolver.LookupIP(ctx, "ip", host)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	if len(ips) == 0 {
		result.Error = "no addresses found"
		return result
	}
	result.IP = ips[0].String()
	result.Success = true
	return result
}

// Ping runs the platform ping with the given probe count and parses its output.
func (p *Prober) Ping(ctx context.Context, host string, count int) models.PingResult {
	if count < 1 {
		count = 1
	}
	timeout := time.Duration(count)*time.Second + pingGrace
	ok, out := runCommand(ctx, timeout, p.profile.PingCmd, p.profile.PingArgs(host, count)...)
	if !ok {
		return models.PingResult{Target: host, Raw: out}
	}
	result := ParsePing(out, p.profile)
	result.Target = host
	return result
}

// Traceroute runs the platform traceroute with the given hop ceiling and
// keeps a truncated snippet of its output.
func (p *Prober) Traceroute(ctx context.Context, host string, maxHops int) models.TracerouteResult {
	ok, out := runCommand(ctx, traceTimeout, p.profile.TraceCmd, p.profile.TraceArgs(host, maxHops)...)
	return models.TracerouteResult{
		Target:  host,
		Success: ok,
		Snippet: models.Truncate(out),
	}
}

// ProbePort attempts a TCP connect and records the elapsed time, which is
// kept even on failure so refused and timed-out ports stay distinguishable.
func (p *Prober) ProbePort(ctx context.Context, host string, port int) models.PortProbeResult {
	result := models.PortProbeResult{Target: host, Port: port}

	d := net.Dialer{Timeout: portTimeout}
	start := time.Now()
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	result.RTTMs = float64(time.Since(start)) / float64(time.Millisecond)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	conn.Close()
	result.Open = true
	return result
}
