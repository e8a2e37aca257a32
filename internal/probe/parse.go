package probe

import (
	"strconv"
	"strings"

	"netdiag/internal/models"
	"netdiag/internal/platform"
)

// replyMarker appears in per-packet reply lines on most platforms even when
// the summary section is missing or in a format no pattern set knows.
const replyMarker = "ttl="

// ParsePing extracts packet counters and the average round-trip time from
// raw ping output. Matching is best effort and first-match-wins: the
// profile's own pattern set is tried before the other platform's, a missed
// pattern leaves its fields nil, and the function never fails. Unknown
// output formats degrade to a result with at most the success flag set.
func ParsePing(raw string, profile platform.Profile) models.PingResult {
	result := models.PingResult{Raw: raw}

	for _, set := range profile.PatternSets() {
		m := set.Counters.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		if sent, err := strconv.Atoi(m[1]); err == nil {
			result.Sent = &sent
		}
		if received, err := strconv.Atoi(m[2]); err == nil {
			result.Received = &received
		}
		if set.DerivedLoss {
			if lost, err := strconv.Atoi(m[3]); err == nil && result.Sent != nil && *result.Sent > 0 {
				loss := float64(lost) / float64(*result.Sent) * 100
				result.LossPct = &loss
			}
		} else if loss, err := strconv.ParseFloat(m[3], 64); err == nil {
			result.LossPct = &loss
		}
		break
	}

	for _, set := range profile.PatternSets() {
		m := set.AvgRTT.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		if avg, err := strconv.ParseFloat(m[1], 64); err == nil {
			result.AvgRTTMs = &avg
		}
		break
	}

	if result.Received != nil && *result.Received > 0 {
		result.Success = true
	} else if strings.Contains(strings.ToLower(raw), replyMarker) {
		result.Success = true
	}

	return result
}
