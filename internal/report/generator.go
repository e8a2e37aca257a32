package report

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Generator creates static charts and text summaries from the diagnostics
// history.
type Generator struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// NewGenerator creates a new report generator
func NewGenerator(db *sql.DB, log *zap.SugaredLogger) *Generator {
	return &Generator{db: db, log: log}
}

// GenerateReport renders latency and availability charts plus a text summary
// into a timestamped directory under outputDir. Individual artifacts failing
// to render are logged and skipped so one bad dataset does not sink the rest.
func (g *Generator) GenerateReport(outputDir string, hours int) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	reportDir := filepath.Join(outputDir, fmt.Sprintf("netdiag_report_%s", timestamp))
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	if err := g.generateLatencyChart(reportDir, hours); err != nil {
		g.log.Warnw("failed to generate latency chart", "error", err)
	}

	if err := g.generateAvailabilityChart(reportDir, hours); err != nil {
		g.log.Warnw("failed to generate availability chart", "error", err)
	}

	if err := g.generateTextReport(reportDir, hours); err != nil {
		g.log.Warnw("failed to generate text report", "error", err)
	}

	g.log.Infow("report generated", "dir", reportDir)
	return nil
}
