package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func (g *Generator) generateLatencyChart(outputDir string, hours int) error {
	query := `
        SELECT DISTINCT timestamp, host, ping_avg_rtt_ms
        FROM diagnostic_results
        WHERE ping_recv > 0
        AND ping_avg_rtt_ms IS NOT NULL
        AND timestamp > datetime('now', '-' || ? || ' hours')
        ORDER BY timestamp
    `

	rows, err := g.db.Query(query, hours)
	if err != nil {
		return err
	}
	defer rows.Close()

	// Group data by host
	hostData := make(map[string]struct {
		timestamps []time.Time
		values     []float64
	})

	for rows.Next() {
		var timestamp time.Time
		var host string
		var rtt float64

		if err := rows.Scan(&timestamp, &host, &rtt); err != nil {
			continue
		}

		data := hostData[host]
		data.timestamps = append(data.timestamps, timestamp)
		data.values = append(data.values, rtt)
		hostData[host] = data
	}

	// Create chart for each host
	for host, data := range hostData {
		graph := chart.Chart{
			Title: fmt.Sprintf("Average Ping RTT - %s", host),
			TitleStyle: chart.Style{
				FontSize: 16,
			},
			Background: chart.Style{
				Padding: chart.Box{
					Top:    20,
					Left:   20,
					Right:  20,
					Bottom: 20,
				},
			},
			Width:  1200,
			Height: 400,
			XAxis: chart.XAxis{
				Name: "Time",
				NameStyle: chart.Style{
					FontSize: 12,
				},
				Style: chart.Style{
					StrokeColor: drawing.ColorBlack,
					FontSize:    10,
				},
				ValueFormatter: chart.TimeMinuteValueFormatter,
			},
			YAxis: chart.YAxis{
				Name: "RTT (ms)",
				NameStyle: chart.Style{
					FontSize: 12,
				},
				Style: chart.Style{
					StrokeColor: drawing.ColorBlack,
					FontSize:    10,
				},
				GridMajorStyle: chart.Style{
					StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
					StrokeWidth: 1.0,
				},
			},
			Series: []chart.Series{
				chart.TimeSeries{
					Name: host,
					Style: chart.Style{
						StrokeColor: chart.GetDefaultColor(0),
						StrokeWidth: 2,
					},
					XValues: data.timestamps,
					YValues: data.values,
				},
			},
		}

		// Add moving average
		if len(data.values) > 10 {
			ts := graph.Series[0].(chart.TimeSeries)
			graph.Series = append(graph.Series, chart.SMASeries{
				Name: "Moving Avg",
				Style: chart.Style{
					StrokeColor:     chart.GetDefaultColor(1),
					StrokeWidth:     2,
					StrokeDashArray: []float64{5, 5},
				},
				InnerSeries: ts,
				Period:      10,
			})
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("rtt_%s.png", sanitizeFilename(host)))
		file, err := os.Create(filename)
		if err != nil {
			return err
		}

		if err := graph.Render(chart.PNG, file); err != nil {
			file.Close()
			return err
		}
		file.Close()
	}

	return nil
}

func (g *Generator) generateAvailabilityChart(outputDir string, hours int) error {
	query := `
        WITH checks AS (
            SELECT DISTINCT timestamp, host, ping_recv
            FROM diagnostic_results
            WHERE timestamp > datetime('now', '-' || ? || ' hours')
        ),
        hourly AS (
            SELECT
                strftime('%Y-%m-%d %H:00:00', timestamp) as hour,
                host,
                COUNT(*) as total,
                SUM(CASE WHEN ping_recv > 0 THEN 1 ELSE 0 END) as reachable
            FROM checks
            GROUP BY hour, host
        )
        SELECT hour, host, CAST(reachable AS REAL) / total * 100 as uptime
        FROM hourly
        ORDER BY hour
    `

	rows, err := g.db.Query(query, hours)
	if err != nil {
		return err
	}
	defer rows.Close()

	hostData := make(map[string]struct {
		timestamps []time.Time
		values     []float64
	})

	for rows.Next() {
		var hour string
		var host string
		var uptime float64

		if err := rows.Scan(&hour, &host, &uptime); err != nil {
			continue
		}
		ts, err := time.Parse("2006-01-02 15:04:05", hour)
		if err != nil {
			continue
		}

		data := hostData[host]
		data.timestamps = append(data.timestamps, ts)
		data.values = append(data.values, uptime)
		hostData[host] = data
	}

	// Combined availability chart
	var allSeries []chart.Series
	colorIndex := 0

	for host, data := range hostData {
		if len(data.timestamps) < 2 {
			continue
		}
		allSeries = append(allSeries, chart.TimeSeries{
			Name: host,
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(colorIndex),
				StrokeWidth: 2,
			},
			XValues: data.timestamps,
			YValues: data.values,
		})
		colorIndex++
	}

	if len(allSeries) == 0 {
		return nil
	}

	graph := chart.Chart{
		Title: "Host Reachability (Hourly)",
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Time",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			ValueFormatter: chart.TimeHourValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Reachable %",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: 100,
			},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
				StrokeWidth: 1.0,
			},
		},
		Series: allSeries,
	}

	graph.Elements = []chart.Renderable{
		chart.Legend(&graph),
	}

	filename := filepath.Join(outputDir, "availability.png")
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}
