package platform

import (
	"regexp"
	"runtime"
	"strconv"
)

// PatternSet holds the compiled matchers for one family of ping output.
type PatternSet struct {
	// Counters captures sent, received and a third numeric group which is
	// either a loss percentage or a lost-packet count (see DerivedLoss).
	Counters *regexp.Regexp
	// DerivedLoss marks the third Counters group as a lost count, from
	// which the loss percentage must be computed as lost/sent*100.
	DerivedLoss bool
	// AvgRTT captures the average round-trip time in milliseconds.
	AvgRTT *regexp.Regexp
}

// Profile describes how to invoke and interpret the network utilities of one
// platform: command names, argument flags and the parser pattern set that
// applies to their output.
type Profile struct {
	Name          string
	PingCmd       string
	PingCountFlag string
	TraceCmd      string
	TraceHopsFlag string
	Patterns      PatternSet
}

// Unix covers Linux, macOS and the BSDs.
var Unix = Profile{
	Name:          "unix",
	PingCmd:       "ping",
	PingCountFlag: "-c",
	TraceCmd:      "traceroute",
	TraceHopsFlag: "-m",
	Patterns: PatternSet{
		Counters: regexp.MustCompile(`(?is)(\d+)\s+packets transmitted.*?(\d+)\s+(?:packets\s+)?received.*?([\d.]+)%\s+packet loss`),
		AvgRTT:   regexp.MustCompile(`(?i)(?:rtt|round-trip)\s+[\w/]+\s*=\s*[\d.]+/([\d.]+)/`),
	},
}

// Windows covers the ping/tracert variants shipped with Windows.
var Windows = Profile{
	Name:          "windows",
	PingCmd:       "ping",
	PingCountFlag: "-n",
	TraceCmd:      "tracert",
	TraceHopsFlag: "-h",
	Patterns: PatternSet{
		Counters:    regexp.MustCompile(`Sent = (\d+), Received = (\d+), Lost = (\d+)`),
		DerivedLoss: true,
		AvgRTT:      regexp.MustCompile(`Average = (\d+)ms`),
	},
}

// Current returns the profile for the running OS.
func Current() Profile {
	if runtime.GOOS == "windows" {
		return Windows
	}
	return Unix
}

// PingArgs builds the argument list for a ping with the given probe count.
func (p Profile) PingArgs(host string, count int) []string {
	return []string{p.PingCountFlag, strconv.Itoa(count), host}
}

// TraceArgs builds the argument list for a traceroute with the given hop ceiling.
func (p Profile) TraceArgs(host string, maxHops int) []string {
	return []string{p.TraceHopsFlag, strconv.Itoa(maxHops), host}
}

// PatternSets returns every known pattern set, the profile's own first, so a
// parser can fall back to the other platform's format on a miss.
func (p Profile) PatternSets() []PatternSet {
	if p.Name == Windows.Name {
		return []PatternSet{Windows.Patterns, Unix.Patterns}
	}
	return []PatternSet{Unix.Patterns, Windows.Patterns}
}
