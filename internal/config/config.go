package config

import (
	"fmt"
	"time"
)

// Config holds all configuration for the diagnostics run
type Config struct {
	Hosts        []string
	Ports        []int
	PingCount    int
	OutputPath   string
	DatabasePath string // empty disables history persistence
	Telemetry    bool
	Interval     time.Duration
	Duration     time.Duration
	HTTPAddr     string // empty disables the web API
	Report       bool
	ReportDir    string
	ReportHours  int
	LogDir       string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Report {
		if c.DatabasePath == "" {
			return fmt.Errorf("report generation requires a database path")
		}
		if c.ReportHours <= 0 {
			return fmt.Errorf("report hours must be positive")
		}
		return nil
	}
	if len(c.Hosts) == 0 {
		return fmt.Errorf("at least one host must be specified")
	}
	for _, h := range c.Hosts {
		if h == "" {
			return fmt.Errorf("host names cannot be empty")
		}
	}
	for _, p := range c.Ports {
		if p < 1 || p > 65535 {
			return fmt.Errorf("port %d out of range 1-65535", p)
		}
	}
	if c.PingCount <= 0 {
		return fmt.Errorf("ping count must be positive")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output path cannot be empty")
	}
	if c.Telemetry {
		if c.Interval <= 0 {
			return fmt.Errorf("telemetry interval must be positive")
		}
		if c.Duration <= 0 {
			return fmt.Errorf("telemetry duration must be positive")
		}
	}
	return nil
}
