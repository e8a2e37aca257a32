package csvlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"netdiag/internal/models"
)

// Header is the fixed column schema of the diagnostics CSV.
var Header = []string{
	"timestamp", "host", "dns_ip", "dns_ok",
	"ping_sent", "ping_recv", "ping_loss_pct", "ping_avg_rtt_ms",
	"port", "port_open", "port_rtt_ms", "traceroute_snippet",
}

// Render formats flattened rows as CSV cells in Header order. Optional
// fields that were never parsed render as empty cells.
func Render(rows []models.Row) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Timestamp.Format(time.RFC3339Nano),
			r.Host,
			r.DNSIP,
			strconv.FormatBool(r.DNSOK),
			intCell(r.PingSent),
			intCell(r.PingRecv),
			floatCell(r.PingLossPct),
			floatCell(r.PingAvgRTTMs),
			intCell(r.Port),
			boolCell(r.PortOpen),
			floatCell(r.PortRTTMs),
			r.TracerouteSnippet,
		})
	}
	return out
}

// WriteFile writes records to path as CSV, replacing any previous contents.
// This is the one place a failure propagates: a lost write loses the whole
// cycle's work.
func WriteFile(path string, records []models.DiagnosticRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, cells := range Render(models.Flatten(records)) {
		if err := w.Write(cells); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func intCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func boolCell(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}
