package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	trainingdash "github.com/meltforce/trainingdash"
	"github.com/meltforce/trainingdash/internal/config"
	"github.com/meltforce/trainingdash/internal/dashboard"
	"github.com/meltforce/trainingdash/internal/ingest/csvplan"
	"github.com/meltforce/trainingdash/internal/mcp"
	"github.com/meltforce/trainingdash/internal/server"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	checkOnly := flag.Bool("check", false, "load and validate the plan, then exit")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("trainingdash starting", "version", Version)

	// Load config
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

	// Load the plan once up front so a broken file fails at startup
	ctx := context.Background()
	provider := csvplan.NewProvider(cfg.Plan.Path, log)
	rows, err := provider.Rows(ctx)
	if err != nil {
		log.Error("failed to load plan", "path", cfg.Plan.Path, "error", err)
		os.Exit(1)
	}
	summary := csvplan.Summarize(rows)
	log.Info("plan loaded", "path", cfg.Plan.Path, "summary", summary.Message)
	if len(summary.UnknownTypes) > 0 {
		log.Warn("plan has unknown run types", "types", summary.UnknownTypes)
	}

	if *checkOnly {
		log.Info("check: exiting")
		return
	}

	svc := dashboard.New(provider, dashboard.Defaults{
		Goal:        goal,
		Reference:   ref,
		RollingDays: cfg.Dashboard.WindowDays,
	}, nil, log)

	var metrics *server.Metrics
	if cfg.Metrics.Enabled {
		metrics = server.NewMetrics()
	}

	// Create server
	srv := server.New(svc, provider, metrics, log)

	// Serve embedded dashboard
	webRoot, err := fs.Sub(trainingdash.WebFS, "web")
	if err != nil {
		log.Error("failed to load embedded web assets", "error", err)
		os.Exit(1)
	}
	if err := srv.SetWeb(webRoot); err != nil {
		log.Error("failed to load embedded web assets", "error", err)
		os.Exit(1)
	}

	if cfg.MCP.Enabled {
		srv.SetMCP(mcp.HTTPHandler(mcp.New(svc, Version, log)))
		log.Info("mcp endpoint enabled", "path", "/mcp")
	}

	// Start server: tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
