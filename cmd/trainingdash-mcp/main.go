package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/meltforce/trainingdash/internal/config"
	"github.com/meltforce/trainingdash/internal/dashboard"
	"github.com/meltforce/trainingdash/internal/ingest/csvplan"
	"github.com/meltforce/trainingdash/internal/mcp"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	remote := flag.String("remote", "", "trainingdash server URL; tools call its REST API instead of reading a local plan")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("trainingdash-mcp", Version)
		return
	}

	// stdout carries the MCP protocol; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	if *remote != "" {
		ds = mcp.NewHTTPClient(*remote)
		log.Info("mcp remote mode", "server", *remote)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		goal, err := cfg.Plan.Goal()
		if err != nil {
			log.Error("invalid goal time", "error", err)
			os.Exit(1)
		}
		ref, err := cfg.Plan.Reference()
		if err != nil {
			log.Error("invalid reference date", "error", err)
			os.Exit(1)
		}
		provider := csvplan.NewProvider(cfg.Plan.Path, log)
		ds = dashboard.New(provider, dashboard.Defaults{
			Goal:        goal,
			Reference:   ref,
			RollingDays: cfg.Dashboard.WindowDays,
		}, nil, log)
		log.Info("mcp local mode", "plan", cfg.Plan.Path)
	}

	if err := mcp.ServeStdio(mcp.New(ds, Version, log)); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
