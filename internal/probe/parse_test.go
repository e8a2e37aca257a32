package probe

import (
	"reflect"
	"testing"

	"netdiag/internal/platform"
)

func TestParsePingUnixSummary(t *testing.T) {
	output := `PING example.com (93.184.216.34) 56(84) bytes of data.
64 bytes from 93.184.216.34: icmp_seq=1 ttl=56 time=12.1 ms
64 bytes from 93.184.216.34: icmp_seq=2 ttl=56 time=12.5 ms

--- example.com ping statistics ---
4 packets transmitted, 4 received, 0% packet loss, time 3004ms
rtt min/avg/max/mdev = 10.1/12.3/15.0/1.2 ms`

	result := ParsePing(output, platform.Unix)

	if !result.Success {
		t.Errorf("expected success for 4 received packets")
	}
	if result.Sent == nil || *result.Sent != 4 {
		t.Errorf("Sent = %v, want 4", result.Sent)
	}
	if result.Received == nil || *result.Received != 4 {
		t.Errorf("Received = %v, want 4", result.Received)
	}
	if result.LossPct == nil || *result.LossPct != 0 {
		t.Errorf("LossPct = %v, want 0", result.LossPct)
	}
	if result.AvgRTTMs == nil || *result.AvgRTTMs != 12.3 {
		t.Errorf("AvgRTTMs = %v, want 12.3", result.AvgRTTMs)
	}
}

func TestParsePingMacOSSummary(t *testing.T) {
	output := `PING 8.8.8.8 (8.8.8.8): 56 data bytes
64 bytes from 8.8.8.8: icmp_seq=0 ttl=118 time=44.347 ms

--- 8.8.8.8 ping statistics ---
1 packets transmitted, 1 packets received, 0.0% packet loss
round-trip min/avg/max/stddev = 44.347/44.347/44.347/0.000 ms`

	result := ParsePing(output, platform.Unix)

	if !result.Success {
		t.Errorf("expected success")
	}
	if result.Sent == nil || *result.Sent != 1 {
		t.Errorf("Sent = %v, want 1", result.Sent)
	}
	if result.Received == nil || *result.Received != 1 {
		t.Errorf("Received = %v, want 1", result.Received)
	}
	if result.LossPct == nil || *result.LossPct != 0 {
		t.Errorf("LossPct = %v, want 0", result.LossPct)
	}
	if result.AvgRTTMs == nil || *result.AvgRTTMs != 44.347 {
		t.Errorf("AvgRTTMs = %v, want 44.347", result.AvgRTTMs)
	}
}

func TestParsePingWindowsDerivedLoss(t *testing.T) {
	output := `Pinging example.com [93.184.216.34] with 32 bytes of data:
Reply from 93.184.216.34: bytes=32 time=14ms TTL=56
Request timed out.

Ping statistics for 93.184.216.34:
    Packets: Sent = 4, Received = 2, Lost = 2 (50% loss),
Approximate round trip times in milli-seconds:
    Minimum = 12ms, Maximum = 16ms, Average = 14ms`

	result := ParsePing(output, platform.Windows)

	if !result.Success {
		t.Errorf("expected success for 2 received packets")
	}
	if result.Sent == nil || *result.Sent != 4 {
		t.Errorf("Sent = %v, want 4", result.Sent)
	}
	if result.Received == nil || *result.Received != 2 {
		t.Errorf("Received = %v, want 2", result.Received)
	}
	if result.LossPct == nil || *result.LossPct != 50 {
		t.Errorf("LossPct = %v, want 50", result.LossPct)
	}
	if result.AvgRTTMs == nil || *result.AvgRTTMs != 14 {
		t.Errorf("AvgRTTMs = %v, want 14", result.AvgRTTMs)
	}
}

func TestParsePingWindowsOutputWithUnixHint(t *testing.T) {
	// A capture labelled with the wrong platform still parses via fallback.
	output := "Packets: Sent = 4, Received = 4, Lost = 0 (0% loss),"

	result := ParsePing(output, platform.Unix)

	if result.Sent == nil || *result.Sent != 4 {
		t.Errorf("Sent = %v, want 4", result.Sent)
	}
	if result.LossPct == nil || *result.LossPct != 0 {
		t.Errorf("LossPct = %v, want 0", result.LossPct)
	}
}

func TestParsePingZeroSentLeavesLossUnset(t *testing.T) {
	output := "Packets: Sent = 0, Received = 0, Lost = 0 (0% loss),"

	result := ParsePing(output, platform.Windows)

	if result.LossPct != nil {
		t.Errorf("LossPct = %v, want nil when no packets were sent", *result.LossPct)
	}
	if result.Success {
		t.Errorf("expected failure with no replies")
	}
}

func TestParsePingReplyMarkerFallback(t *testing.T) {
	output := "Reply from 10.0.0.1: bytes=32 time=5ms TTL=64"

	result := ParsePing(output, platform.Unix)

	if !result.Success {
		t.Errorf("expected success from ttl= marker")
	}
	if result.Sent != nil || result.Received != nil || result.LossPct != nil || result.AvgRTTMs != nil {
		t.Errorf("expected all numeric fields unset, got %+v", result)
	}
}

func TestParsePingEmptyAndGarbled(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{name: "empty", output: ""},
		{name: "unknown host", output: "ping: unknown host example.invalid"},
		{name: "binary noise", output: "\x00\xff\xfe garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParsePing(tt.output, platform.Unix)
			if result.Success {
				t.Errorf("expected failure")
			}
			if result.Sent != nil || result.Received != nil || result.LossPct != nil || result.AvgRTTMs != nil {
				t.Errorf("expected all numeric fields unset, got %+v", result)
			}
		})
	}
}

func TestParsePingIsPure(t *testing.T) {
	output := `4 packets transmitted, 3 received, 25% packet loss
rtt min/avg/max/mdev = 10.0/11.5/13.0/1.0 ms`

	first := ParsePing(output, platform.Unix)
	second := ParsePing(output, platform.Unix)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated parsing diverged: %+v vs %+v", first, second)
	}
}
