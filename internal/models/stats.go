package models

// Stats represents aggregated reachability statistics for a target
type Stats struct {
	Target      string  `json:"target"`
	TotalChecks int     `json:"total_checks"`
	Successful  int     `json:"successful_checks"`
	AvgRTT      float64 `json:"avg_rtt"`
	MaxRTT      float64 `json:"max_rtt"`
	MinRTT      float64 `json:"min_rtt"`
	FailureRate float64 `json:"failure_rate"`
}
