package models

import "time"

// TracerouteSnippetLimit bounds how much raw traceroute output is kept on a record.
const TracerouteSnippetLimit = 400

// TruncationMarker is appended to traceroute output cut at TracerouteSnippetLimit.
const TruncationMarker = "...[truncated]"

// Truncate caps s at TracerouteSnippetLimit, appending TruncationMarker when
// it had to cut.
func Truncate(s string) string {
	if len(s) <= TracerouteSnippetLimit {
		return s
	}
	return s[:TracerouteSnippetLimit] + TruncationMarker
}

// DNSResult represents a single hostname resolution attempt
type DNSResult struct {
	Target  string `json:"target"`
	IP      string `json:"ip,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// PingResult represents a parsed ping invocation. The numeric fields are
// pointers so that "the tool's output did not contain this" stays
// distinguishable from zero.
type PingResult struct {
	Target   string   `json:"target"`
	Success  bool     `json:"success"`
	Raw      string   `json:"-"`
	Sent     *int     `json:"sent"`
	Received *int     `json:"received"`
	LossPct  *float64 `json:"loss_pct"`
	AvgRTTMs *float64 `json:"avg_rtt_ms"`
}

// TracerouteResult holds a truncated traceroute capture.
type TracerouteResult struct {
	Target  string `json:"target"`
	Success bool   `json:"success"`
	Snippet string `json:"snippet"`
}

// PortProbeResult represents one TCP connect attempt.
type PortProbeResult struct {
	Target string  `json:"target"`
	Port   int     `json:"port"`
	Open   bool    `json:"open"`
	RTTMs  float64 `json:"rtt_ms"`
	Error  string  `json:"error,omitempty"`
}

// DiagnosticRecord aggregates all probe results for one host in one cycle.
// Immutable once assembled; the unit of serialization.
type DiagnosticRecord struct {
	Timestamp  time.Time         `json:"timestamp"`
	Target     string            `json:"target"`
	DNS        DNSResult         `json:"dns"`
	Ping       PingResult        `json:"ping"`
	Traceroute TracerouteResult  `json:"traceroute"`
	Ports      []PortProbeResult `json:"ports"`
}

// Row is one flattened serialization row of a DiagnosticRecord. A record with
// N probed ports flattens to N rows repeating the non-port columns; a record
// with no probed ports flattens to exactly one row with the port columns nil.
type Row struct {
	Timestamp         time.Time `json:"timestamp"`
	Host              string    `json:"host"`
	DNSIP             string    `json:"dns_ip"`
	DNSOK             bool      `json:"dns_ok"`
	PingSent          *int      `json:"ping_sent"`
	PingRecv          *int      `json:"ping_recv"`
	PingLossPct       *float64  `json:"ping_loss_pct"`
	PingAvgRTTMs      *float64  `json:"ping_avg_rtt_ms"`
	Port              *int      `json:"port"`
	PortOpen          *bool     `json:"port_open"`
	PortRTTMs         *float64  `json:"port_rtt_ms"`
	TracerouteSnippet string    `json:"traceroute_snippet"`
}

// Flatten expands records into serialization rows, preserving record order
// and, within a record, requested-port order.
func Flatten(records []DiagnosticRecord) []Row {
	var rows []Row
	for _, r := range records {
		base := Row{
			Timestamp:         r.Timestamp,
			Host:              r.Target,
			DNSIP:             r.DNS.IP,
			DNSOK:             r.DNS.Success,
			PingSent:          r.Ping.Sent,
			PingRecv:          r.Ping.Received,
			PingLossPct:       r.Ping.LossPct,
			PingAvgRTTMs:      r.Ping.AvgRTTMs,
			TracerouteSnippet: r.Traceroute.Snippet,
		}
		if len(r.Ports) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, p := range r.Ports {
			row := base
			port := p.Port
			open := p.Open
			rtt := p.RTTMs
			row.Port = &port
			row.PortOpen = &open
			row.PortRTTMs = &rtt
			rows = append(rows, row)
		}
	}
	return rows
}
