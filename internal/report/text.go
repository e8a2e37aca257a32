package report

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func (g *Generator) generateTextReport(outputDir string, hours int) error {
	filename := filepath.Join(outputDir, "summary.txt")
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(file, "Network Diagnostics Report\n")
	fmt.Fprintf(file, "Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(file, "Period: Last %d hours\n\n", hours)
	fmt.Fprintln(file, strings.Repeat("=", 60))

	// Per-host reachability and latency
	query := `
        WITH checks AS (
            SELECT DISTINCT timestamp, host, dns_ok, ping_recv, ping_loss_pct, ping_avg_rtt_ms
            FROM diagnostic_results
            WHERE timestamp > datetime('now', '-' || ? || ' hours')
        )
        SELECT
            host,
            COUNT(*) as total_checks,
            SUM(CASE WHEN ping_recv > 0 THEN 1 ELSE 0 END) as reachable,
            SUM(CASE WHEN dns_ok THEN 1 ELSE 0 END) as dns_ok_count,
            AVG(CASE WHEN ping_recv > 0 THEN ping_avg_rtt_ms ELSE NULL END) as avg_rtt,
            MAX(CASE WHEN ping_recv > 0 THEN ping_avg_rtt_ms ELSE NULL END) as max_rtt,
            MIN(CASE WHEN ping_recv > 0 THEN ping_avg_rtt_ms ELSE NULL END) as min_rtt,
            AVG(ping_loss_pct) as avg_loss
        FROM checks
        GROUP BY host
    `

	rows, err := g.db.Query(query, hours)
	if err != nil {
		return err
	}
	defer rows.Close()

	fmt.Fprintln(file, "\nHOST SUMMARY")

	for rows.Next() {
		var host string
		var total, reachable, dnsOK int
		var avgRTT, maxRTT, minRTT, avgLoss sql.NullFloat64

		if err := rows.Scan(&host, &total, &reachable, &dnsOK, &avgRTT, &maxRTT, &minRTT, &avgLoss); err != nil {
			continue
		}

		uptime := float64(reachable) / float64(total) * 100

		fmt.Fprintf(file, "Host: %s\n", host)
		fmt.Fprintf(file, "  Total Checks: %d\n", total)
		fmt.Fprintf(file, "  Reachable: %d (%.2f%%)\n", reachable, uptime)
		fmt.Fprintf(file, "  DNS Resolved: %d/%d\n", dnsOK, total)

		if avgLoss.Valid {
			fmt.Fprintf(file, "  Average Packet Loss: %.2f%%\n", avgLoss.Float64)
		}
		if avgRTT.Valid {
			fmt.Fprintf(file, "  Average RTT: %.2f ms\n", avgRTT.Float64)
			fmt.Fprintf(file, "  Min RTT: %.2f ms\n", minRTT.Float64)
			fmt.Fprintf(file, "  Max RTT: %.2f ms\n", maxRTT.Float64)
		}
		fmt.Fprintln(file)
	}

	fmt.Fprintln(file, strings.Repeat("=", 60))

	// Port probe summary
	portQuery := `
        SELECT
            host,
            port,
            COUNT(*) as total,
            SUM(CASE WHEN port_open THEN 1 ELSE 0 END) as open_count,
            AVG(port_rtt_ms) as avg_rtt
        FROM diagnostic_results
        WHERE port IS NOT NULL
        AND timestamp > datetime('now', '-' || ? || ' hours')
        GROUP BY host, port
        ORDER BY host, port
    `

	portRows, portErr := g.db.Query(portQuery, hours)
	if portErr != nil {
		return portErr
	}
	defer portRows.Close()

	fmt.Fprintln(file, "\nPORT PROBES")

	for portRows.Next() {
		var host string
		var port, total, openCount int
		var avgRTT sql.NullFloat64

		if scanErr := portRows.Scan(&host, &port, &total, &openCount, &avgRTT); scanErr != nil {
			continue
		}

		fmt.Fprintf(file, "%s:%d\n", host, port)
		fmt.Fprintf(file, "  Open: %d/%d probes\n", openCount, total)
		if avgRTT.Valid {
			fmt.Fprintf(file, "  Average Connect Time: %.2f ms\n", avgRTT.Float64)
		}
		fmt.Fprintln(file)
	}

	return nil
}
