// Package cli defines the trainingdash-cli command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/meltforce/trainingdash/internal/dashboard"
	"github.com/meltforce/trainingdash/internal/ingest/csvplan"
	"github.com/meltforce/trainingdash/internal/plan"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// Viper keys. They match the server's YAML layout so one config file
// serves both binaries.
const (
	keyConfig     = "config"
	keyColor      = "color"
	keyPlanPath   = "plan.path"
	keyGoalTime   = "plan.goal_time"
	keyReference  = "plan.reference_date"
	keyWindowDays = "dashboard.window_days"
)

// flagKeys maps persistent flags to the viper keys they override.
var flagKeys = map[string]string{
	"config": keyConfig,
	"plan":   keyPlanPath,
	"date":   keyReference,
	"goal":   keyGoalTime,
	"color":  keyColor,
}

// app carries the resolved settings for one invocation.
type app struct {
	v       *viper.Viper
	version string
	log     *slog.Logger
	svc     *dashboard.Service
	goal    plan.GoalTime
}

// NewRootCmd builds the command tree. Each call gets its own viper
// instance so commands can be run repeatedly in tests.
func NewRootCmd(version string) *cobra.Command {
	a := &app{v: viper.New(), version: version}

	root := &cobra.Command{
		Use:                "trainingdash-cli",
		Short:              "Print marathon training plan views in the terminal.",
		Long:               `trainingdash-cli reads a training plan CSV and prints the current week, progress, long-run pace, weekly strength work and mileage.`,
		Version:            version,
		SilenceErrors:      true,
		SilenceUsage:       true,
		DisableSuggestions: true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Path to config file (YAML)")
	pf.String("plan", "", "Path to the training plan CSV")
	pf.String("date", "", "Reference date (YYYY-MM-DD), default today")
	pf.String("goal", "", "Goal marathon time (H:MM:SS)")
	pf.String("color", "auto", "Colored output: yes, no or auto")
	for name, key := range flagKeys {
		if err := a.v.BindPFlag(key, pf.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding --%s: %v", name, err))
		}
	}

	a.v.SetDefault(keyPlanPath, "data/plan.csv")
	a.v.SetDefault(keyGoalTime, plan.DefaultGoalTime.String())
	a.v.SetDefault(keyReference, "")
	a.v.SetDefault(keyWindowDays, plan.DefaultRollingDays)
	a.v.SetDefault(keyColor, "auto")

	a.v.SetEnvPrefix("TRAININGDASH")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		a.planCmd(),
		a.weekCmd(),
		a.progressCmd(),
		a.paceCmd(),
		a.liftCmd(),
		a.mileageCmd(),
		a.validateCmd(),
		a.versionCmd(),
	)
	return root
}

// Execute runs the CLI with os.Args and returns the process exit code.
func Execute(version string) int {
	root := NewRootCmd(version)
	if err := root.Execute(); err != nil {
		_, _ = color.New(color.FgRed).Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}
	return 0
}

// readConfig merges the optional config file under env and flags.
// Without --config, ./config.yaml is used when present.
func (a *app) readConfig() error {
	if path := a.v.GetString(keyConfig); path != "" {
		a.v.SetConfigFile(path)
	} else {
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return nil
}

// setup resolves configuration, output color and the plan service.
// It runs before every command that reads the plan.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := a.readConfig(); err != nil {
		return err
	}
	if err := a.setupColor(cmd.OutOrStdout()); err != nil {
		return err
	}

	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))

	goal, err := plan.ParseGoalTime(a.v.GetString(keyGoalTime))
	if err != nil {
		return fmt.Errorf("invalid --goal: %w", err)
	}
	a.goal = goal

	defaults := dashboard.Defaults{Goal: goal, RollingDays: a.v.GetInt(keyWindowDays)}
	if ref := a.v.GetString(keyReference); ref != "" {
		t, err := time.Parse(time.DateOnly, ref)
		if err != nil {
			return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", ref)
		}
		defaults.Reference = &t
	}

	provider := csvplan.NewProvider(a.v.GetString(keyPlanPath), a.log)
	a.svc = dashboard.New(provider, defaults, nil, a.log)
	return nil
}

// setupColor applies --color. auto enables color only on a terminal.
func (a *app) setupColor(out io.Writer) error {
	switch mode := strings.ToLower(a.v.GetString(keyColor)); mode {
	case "yes", "true", "1", "always":
		color.NoColor = false
	case "no", "false", "0", "never":
		color.NoColor = true
	case "auto", "":
		f, ok := out.(*os.File)
		color.NoColor = !ok || !term.IsTerminal(int(f.Fd()))
	default:
		return fmt.Errorf("invalid --color value %q: want yes, no or auto", mode)
	}
	return nil
}
