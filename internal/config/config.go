package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/meltforce/trainingdash/internal/plan"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Plan      PlanConfig      `yaml:"plan"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	MCP       MCPConfig       `yaml:"mcp"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type PlanConfig struct {
	Path          string `yaml:"path"`
	GoalTime      string `yaml:"goal_time"`
	ReferenceDate string `yaml:"reference_date"`
}

type DashboardConfig struct {
	WindowDays int `yaml:"window_days"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type MCPConfig struct {
	Enabled bool `yaml:"enabled"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Defaults returns the configuration used for keys the file leaves out.
func Defaults() *Config {
	return &Config{
		Server:    ServerConfig{Host: "127.0.0.1", Port: 8080},
		Plan:      PlanConfig{Path: "data/plan.csv", GoalTime: plan.DefaultGoalTime.String()},
		Dashboard: DashboardConfig{WindowDays: plan.DefaultRollingDays},
		Tailscale: TailscaleConfig{Hostname: "trainingdash"},
		MCP:       MCPConfig{Enabled: true},
		Metrics:   MetricsConfig{Enabled: true},
	}
}

// Goal parses plan.goal_time.
func (p PlanConfig) Goal() (plan.GoalTime, error) {
	return plan.ParseGoalTime(p.GoalTime)
}

// Reference parses plan.reference_date. It returns nil when unset,
// meaning "today".
func (p PlanConfig) Reference() (*time.Time, error) {
	if p.ReferenceDate == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, p.ReferenceDate)
	if err != nil {
		return nil, fmt.Errorf("plan.reference_date %q: %w", p.ReferenceDate, err)
	}
	return &t, nil
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix TRAININGDASH_ and underscore-separated paths:
//
//	TRAININGDASH_SERVER_HOST, TRAININGDASH_SERVER_PORT,
//	TRAININGDASH_PLAN_PATH, TRAININGDASH_PLAN_GOAL_TIME, TRAININGDASH_PLAN_REFERENCE_DATE,
//	TRAININGDASH_DASHBOARD_WINDOW_DAYS,
//	TRAININGDASH_TAILSCALE_ENABLED, TRAININGDASH_TAILSCALE_HOSTNAME, TRAININGDASH_TAILSCALE_STATE_DIR,
//	TRAININGDASH_MCP_ENABLED, TRAININGDASH_METRICS_ENABLED
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRAININGDASH_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("TRAININGDASH_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("TRAININGDASH_PLAN_PATH"); v != "" {
		cfg.Plan.Path = v
	}
	if v := os.Getenv("TRAININGDASH_PLAN_GOAL_TIME"); v != "" {
		cfg.Plan.GoalTime = v
	}
	if v := os.Getenv("TRAININGDASH_PLAN_REFERENCE_DATE"); v != "" {
		cfg.Plan.ReferenceDate = v
	}
	if v := os.Getenv("TRAININGDASH_DASHBOARD_WINDOW_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Dashboard.WindowDays = n
		}
	}
	if v := os.Getenv("TRAININGDASH_TAILSCALE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = b
		}
	}
	if v := os.Getenv("TRAININGDASH_TAILSCALE_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("TRAININGDASH_TAILSCALE_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
	if v := os.Getenv("TRAININGDASH_MCP_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.MCP.Enabled = b
		}
	}
	if v := os.Getenv("TRAININGDASH_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Plan.Path == "" {
		return fmt.Errorf("plan.path is required")
	}
	if _, err := c.Plan.Goal(); err != nil {
		return fmt.Errorf("plan.goal_time: %w", err)
	}
	if _, err := c.Plan.Reference(); err != nil {
		return err
	}
	if c.Dashboard.WindowDays < 1 || c.Dashboard.WindowDays > 31 {
		return fmt.Errorf("dashboard.window_days must be between 1 and 31")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}
