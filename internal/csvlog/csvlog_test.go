package csvlog

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"netdiag/internal/models"
)

func TestRenderOptionalFieldsEmpty(t *testing.T) {
	rows := []models.Row{{
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Host:      "dead.example.com",
	}}

	cells := Render(rows)

	if len(cells) != 1 {
		t.Fatalf("got %d rows, want 1", len(cells))
	}
	want := []string{
		"2025-06-01T12:00:00Z", "dead.example.com", "", "false",
		"", "", "", "",
		"", "", "", "",
	}
	if !reflect.DeepEqual(cells[0], want) {
		t.Errorf("Render() = %v, want %v", cells[0], want)
	}
}

func TestRenderParsedFields(t *testing.T) {
	sent, recv, port := 4, 3, 443
	loss, avg, portRTT := 25.0, 11.5, 8.25
	open := true
	rows := []models.Row{{
		Timestamp:         time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
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
	}}

	cells := Render(rows)

	want := []string{
		"2025-06-01T12:00:00Z", "example.com", "93.184.216.34", "true",
		"4", "3", "25", "11.5",
		"443", "true", "8.25", "1 gateway 1.2 ms",
	}
	if !reflect.DeepEqual(cells[0], want) {
		t.Errorf("Render() = %v, want %v", cells[0], want)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	records := []models.DiagnosticRecord{{
		Timestamp: time.Now().UTC(),
		Target:    "example.com",
		DNS:       models.DNSResult{Target: "example.com", IP: "93.184.216.34", Success: true},
		Ports: []models.PortProbeResult{
			{Port: 22, Open: false, RTTMs: 2000},
			{Port: 443, Open: true, RTTMs: 9.5},
		},
	}}

	if err := WriteFile(path, records); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open written file: %v", err)
	}
	defer f.Close()

	all, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read written file: %v", err)
	}

	if len(all) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(all))
	}
	if !reflect.DeepEqual(all[0], Header) {
		t.Errorf("header = %v, want %v", all[0], Header)
	}
	if all[1][8] != "22" || all[2][8] != "443" {
		t.Errorf("port column order wrong: %s, %s", all[1][8], all[2][8])
	}
}

func TestWriteFileReplacesContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	many := []models.DiagnosticRecord{
		{Timestamp: time.Now().UTC(), Target: "a"},
		{Timestamp: time.Now().UTC(), Target: "b"},
	}
	if err := WriteFile(path, many); err != nil {
		t.Fatalf("first write failed: %v", err)
	}

	few := []models.DiagnosticRecord{
		{Timestamp: time.Now().UTC(), Target: "c"},
	}
	if err := WriteFile(path, few); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open written file: %v", err)
	}
	defer f.Close()

	all, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read written file: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d lines after rewrite, want header + 1 row", len(all))
	}
}
