package database

import (
	"database/sql"
	"fmt"

	"netdiag/internal/models"
)

// SaveRows appends flattened diagnostic rows to the history in one transaction.
func (db *DB) SaveRows(rows []models.Row) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("history save failed: %w", err)
	}

	query := `
        INSERT INTO diagnostic_results
            (timestamp, host, dns_ip, dns_ok, ping_sent, ping_recv, ping_loss_pct,
             ping_avg_rtt_ms, port, port_open, port_rtt_ms, traceroute_snippet)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	for _, r := range rows {
		_, err := tx.Exec(query,
			r.Timestamp,
			r.Host,
			nullString(r.DNSIP),
			r.DNSOK,
			nullInt(r.PingSent),
			nullInt(r.PingRecv),
			nullFloat(r.PingLossPct),
			nullFloat(r.PingAvgRTTMs),
			nullInt(r.Port),
			nullBool(r.PortOpen),
			nullFloat(r.PortRTTMs),
			r.TracerouteSnippet,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("history save failed: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("history save failed: %w", err)
	}
	return nil
}

// GetRecent retrieves recent diagnostic rows, newest first.
func (db *DB) GetRecent(hours int) ([]models.Row, error) {
	query := `
        SELECT timestamp, host, dns_ip, dns_ok, ping_sent, ping_recv, ping_loss_pct,
               ping_avg_rtt_ms, port, port_open, port_rtt_ms, traceroute_snippet
        FROM diagnostic_results
        WHERE timestamp > datetime('now', '-' || ? || ' hours')
        ORDER BY timestamp DESC
        LIMIT 10000
    `

	rows, err := db.Query(query, hours)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.Row
	for rows.Next() {
		var r models.Row
		var dnsIP, snippet sql.NullString
		var sent, recv, port sql.NullInt64
		var loss, avgRTT, portRTT sql.NullFloat64
		var portOpen sql.NullBool
		err := rows.Scan(&r.Timestamp, &r.Host, &dnsIP, &r.DNSOK, &sent, &recv,
			&loss, &avgRTT, &port, &portOpen, &portRTT, &snippet)
		if err != nil {
			continue
		}
		r.DNSIP = dnsIP.String
		r.TracerouteSnippet = snippet.String
		r.PingSent = intPtr(sent)
		r.PingRecv = intPtr(recv)
		r.PingLossPct = floatPtr(loss)
		r.PingAvgRTTMs = floatPtr(avgRTT)
		r.Port = intPtr(port)
		r.PortOpen = boolPtr(portOpen)
		r.PortRTTMs = floatPtr(portRTT)
		results = append(results, r)
	}

	return results, nil
}

// GetStats retrieves aggregated per-host ping statistics. Port fan-out rows
// are collapsed to one check per (timestamp, host) first so multi-port hosts
// are not counted more than once per cycle.
func (db *DB) GetStats(hours int) ([]models.Stats, error) {
	query := `
        WITH checks AS (
            SELECT DISTINCT timestamp, host, ping_recv, ping_avg_rtt_ms
            FROM diagnostic_results
            WHERE timestamp > datetime('now', '-' || ? || ' hours')
        )
        SELECT
            host,
            COUNT(*) as total_checks,
            SUM(CASE WHEN ping_recv > 0 THEN 1 ELSE 0 END) as successful_checks,
            AVG(CASE WHEN ping_recv > 0 THEN ping_avg_rtt_ms ELSE NULL END) as avg_rtt,
            MAX(CASE WHEN ping_recv > 0 THEN ping_avg_rtt_ms ELSE NULL END) as max_rtt,
            MIN(CASE WHEN ping_recv > 0 THEN ping_avg_rtt_ms ELSE NULL END) as min_rtt,
            ROUND((1.0 - (CAST(SUM(CASE WHEN ping_recv > 0 THEN 1 ELSE 0 END) AS REAL) / COUNT(*))) * 100, 2) as failure_rate
        FROM checks
        GROUP BY host
    `

	rows, err := db.Query(query, hours)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.Stats
	for rows.Next() {
		var s models.Stats
		var avgRTT, maxRTT, minRTT sql.NullFloat64
		err := rows.Scan(&s.Target, &s.TotalChecks, &s.Successful,
			&avgRTT, &maxRTT, &minRTT, &s.FailureRate)
		if err != nil {
			continue
		}
		s.AvgRTT = avgRTT.Float64
		s.MaxRTT = maxRTT.Float64
		s.MinRTT = minRTT.Float64
		stats = append(stats, s)
	}

	return stats, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullBool(v *bool) any {
	if v == nil {
		return nil
	}
	return *v
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func boolPtr(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Bool
	return &b
}
