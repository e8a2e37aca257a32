package database

import (
	"path/filepath"
	"testing"
	"time"

	"netdiag/internal/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.InitSchema(); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}
	return db
}

func sampleRows(ts time.Time) []models.Row {
	sent, recv, port := 2, 2, 443
	loss, avg, portRTT := 0.0, 12.3, 8.5
	open := true
	return []models.Row{
		{
			Timestamp:         ts,
			Host:              "example.com",
			DNSIP:             "93.184.216.34",
			DNSOK:             true,
			PingSent:          &sent,
			PingRecv:          &recv,
			PingLossPct:       &loss,
			PingAvgRTTMs:      &avg,
			Port:              &port,
			PortOpen:          &open,
			PortRTTMs:         &portRTT,
			TracerouteSnippet: "1 gateway 1.2 ms",
		},
		{
			Timestamp: ts,
			Host:      "dead.example.com",
			DNSOK:     false,
		},
	}
}

func TestSaveAndGetRecent(t *testing.T) {
	db := newTestDB(t)

	if err := db.SaveRows(sampleRows(time.Now().UTC())); err != nil {
		t.Fatalf("SaveRows failed: %v", err)
	}

	rows, err := db.GetRecent(24)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	byHost := make(map[string]models.Row)
	for _, r := range rows {
		byHost[r.Host] = r
	}

	good, ok := byHost["example.com"]
	if !ok {
		t.Fatalf("example.com row missing")
	}
	if good.DNSIP != "93.184.216.34" || !good.DNSOK {
		t.Errorf("dns columns wrong: %+v", good)
	}
	if good.PingRecv == nil || *good.PingRecv != 2 {
		t.Errorf("PingRecv = %v, want 2", good.PingRecv)
	}
	if good.Port == nil || *good.Port != 443 || good.PortOpen == nil || !*good.PortOpen {
		t.Errorf("port columns wrong: %+v", good)
	}

	dead, ok := byHost["dead.example.com"]
	if !ok {
		t.Fatalf("dead.example.com row missing")
	}
	if dead.PingSent != nil || dead.PingRecv != nil || dead.Port != nil || dead.PortOpen != nil {
		t.Errorf("expected nil optional columns for unparsed result, got %+v", dead)
	}
	if dead.DNSIP != "" {
		t.Errorf("DNSIP = %q, want empty", dead.DNSIP)
	}
}

func TestGetStats(t *testing.T) {
	db := newTestDB(t)

	if err := db.SaveRows(sampleRows(time.Now().UTC())); err != nil {
		t.Fatalf("SaveRows failed: %v", err)
	}

	stats, err := db.GetStats(24)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("got %d stats entries, want 2", len(stats))
	}

	byHost := make(map[string]models.Stats)
	for _, s := range stats {
		byHost[s.Target] = s
	}

	good := byHost["example.com"]
	if good.TotalChecks != 1 || good.Successful != 1 {
		t.Errorf("example.com checks = %d/%d, want 1/1", good.Successful, good.TotalChecks)
	}
	if good.AvgRTT != 12.3 {
		t.Errorf("AvgRTT = %v, want 12.3", good.AvgRTT)
	}
	if good.FailureRate != 0 {
		t.Errorf("FailureRate = %v, want 0", good.FailureRate)
	}

	dead := byHost["dead.example.com"]
	if dead.TotalChecks != 1 || dead.Successful != 0 {
		t.Errorf("dead.example.com checks = %d/%d, want 0/1", dead.Successful, dead.TotalChecks)
	}
	if dead.FailureRate != 100 {
		t.Errorf("FailureRate = %v, want 100", dead.FailureRate)
	}
}

func TestGetStatsCollapsesPortFanOut(t *testing.T) {
	db := newTestDB(t)

	ts := time.Now().UTC()
	recv := 2
	avg := 10.0
	port1, port2 := 22, 443
	open := true
	rows := []models.Row{
		{Timestamp: ts, Host: "multi.example.com", DNSOK: true, PingRecv: &recv, PingAvgRTTMs: &avg, Port: &port1, PortOpen: &open},
		{Timestamp: ts, Host: "multi.example.com", DNSOK: true, PingRecv: &recv, PingAvgRTTMs: &avg, Port: &port2, PortOpen: &open},
	}
	if err := db.SaveRows(rows); err != nil {
		t.Fatalf("SaveRows failed: %v", err)
	}

	stats, err := db.GetStats(24)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("got %d stats entries, want 1", len(stats))
	}
	if stats[0].TotalChecks != 1 {
		t.Errorf("TotalChecks = %d, want 1 (fan-out rows collapsed)", stats[0].TotalChecks)
	}
}
