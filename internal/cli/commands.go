package cli

import (
	"fmt"
	"os"
	"runtime"
	"slices"
	"strconv"

	"github.com/meltforce/trainingdash/internal/dashboard"
	"github.com/meltforce/trainingdash/internal/ingest/csvplan"
	"github.com/meltforce/trainingdash/internal/plan"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

func (a *app) planCmd() *cobra.Command {
	var week int
	cmd := &cobra.Command{
		Use:     "plan",
		Short:   "Print the full training plan with week numbers.",
		PreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := dashboard.Query{}
			if cmd.Flags().Changed("week") {
				q.Week = &week
			}
			rows, err := a.svc.GetPlan(cmd.Context(), q)
			if err != nil {
				return err
			}
			data := make([][]string, 0, len(rows))
			var total float64
			for _, r := range rows {
				data = append(data, []string{
					formatDate(r.Date),
					r.DayOfWeek,
					strconv.Itoa(r.Week),
					colorRunType(r.RunType),
					formatMiles(r.Distance),
				})
				total += r.Distance
			}
			out := cmd.OutOrStdout()
			if err := renderTable(out, []string{"Date", "Day", "Week", "Type", "Distance"}, data, tw.AlignLeft); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "%d days, %s\n", len(rows), formatMiles(total))
			return err
		},
	}
	cmd.Flags().IntVar(&week, "week", 0, "Only show this training week")
	return cmd
}

func (a *app) weekCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "week",
		Short:   "Print the next seven days starting at the reference date.",
		PreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := a.svc.GetDashboard(cmd.Context(), dashboard.Query{})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = headingColor.Fprintf(out, "Week %d of %d\n", r.Window.DisplayWeek(r.CurrentWeek), r.TotalWeeks)

			data := make([][]string, 0, len(r.Days))
			for _, d := range r.Days {
				date := formatDate(d.Date)
				if d.IsToday {
					date = todayColor.Sprint(date)
				}
				row := []string{date, d.Label, mutedColor.Sprint("rest"), "", ""}
				if d.Row != nil {
					row[2] = colorRunType(d.Row.RunType)
					row[3] = formatMiles(d.Row.Distance)
					if d.ShowPace {
						row[4] = r.Pace.Range
					}
				}
				data = append(data, row)
			}
			if err := renderTable(out, []string{"Date", "Day", "Type", "Distance", "Pace"}, data, tw.AlignLeft); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "%q - %s\n", r.Quote.Text, r.Quote.Author)
			return err
		},
	}
}

func (a *app) progressCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "progress",
		Short:   "Print training progress as of the reference date.",
		PreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.svc.GetProgress(cmd.Context(), dashboard.Query{})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = headingColor.Fprintf(out, "Week %d of %d\n", p.DisplayWeek, p.TotalWeeks)
			_, err = fmt.Fprintf(out, "%s\nDay %d of %d (as of %s)\n",
				progressBar(p.ProgressPct, 30), p.DaysCompleted, p.DaysTotal, formatDate(p.ReferenceDate))
			return err
		},
	}
}

func (a *app) paceCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "pace",
		Short:   "Print the long-run pace range for the goal marathon time.",
		PreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pr, err := a.svc.GetPaceRange(cmd.Context(), dashboard.Query{})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Goal:          %s (%s)\n", pr.Goal, plan.FormatPace(pr.GoalPace))
			_, err = fmt.Fprintf(out, "Long-run pace: %s\n", runTypeColors[plan.RunLong].Sprint(pr.Range))
			return err
		},
	}
}

func (a *app) liftCmd() *cobra.Command {
	var week int
	cmd := &cobra.Command{
		Use:     "lift",
		Short:   "Print the weekly strength recommendation.",
		PreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := dashboard.Query{}
			if cmd.Flags().Changed("week") {
				q.Week = &week
			}
			l, err := a.svc.GetWeeklyLift(cmd.Context(), q)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = headingColor.Fprintf(out, "Week %d lift\n", l.Week)
			var data [][]string
			for _, item := range l.Items() {
				data = append(data, []string{item.Group.Label(), exerciseOrDash(item.Exercise)})
			}
			return renderTable(out, []string{"Group", "Exercise"}, data, tw.AlignLeft)
		},
	}
	cmd.Flags().IntVar(&week, "week", 0, "Training week (default: current week)")
	return cmd
}

func (a *app) mileageCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "mileage",
		Short:   "Print scheduled miles per training week.",
		PreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := a.svc.GetDashboard(cmd.Context(), dashboard.Query{})
			if err != nil {
				return err
			}
			current := r.Window.DisplayWeek(r.CurrentWeek)
			var data [][]string
			for _, w := range r.Mileage.Weeks {
				week := strconv.Itoa(w.Week)
				if w.Week == current {
					week = todayColor.Sprint(week + " *")
				}
				data = append(data, []string{week, formatMiles(w.Distance)})
			}
			out := cmd.OutOrStdout()
			if err := renderTable(out, []string{"Week", "Distance"}, data, tw.AlignRight); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "Total: %s\n", formatMiles(r.Mileage.Total()))
			return err
		},
	}
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a training plan CSV without serving it.",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setupColor(cmd.OutOrStdout())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening plan: %w", err)
			}
			defer func() { _ = f.Close() }()

			rows, err := csvplan.Parse(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			res := csvplan.Summarize(rows)

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s: %s\n", args[0], res.Message)
			_, _ = fmt.Fprintf(out, "Total distance: %s\n", formatMiles(res.TotalDistance))

			types := make([]string, 0, len(res.RunTypes))
			for k := range res.RunTypes {
				types = append(types, k)
			}
			slices.Sort(types)
			data := make([][]string, 0, len(types))
			for _, k := range types {
				data = append(data, []string{colorRunType(k), strconv.Itoa(res.RunTypes[k])})
			}
			if len(data) > 0 {
				if err := renderTable(out, []string{"Type", "Days"}, data, tw.AlignLeft); err != nil {
					return err
				}
			}
			for _, k := range res.UnknownTypes {
				_, _ = mutedColor.Fprintf(out, "warning: unknown run type %q shown in the default color\n", k)
			}
			return nil
		},
	}
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of trainingdash-cli.",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("trainingdash-cli\n")
			cmd.Printf("  Version: %s\n", a.version)
			cmd.Printf("  Runtime: %s\n", runtime.Version())
		},
	}
}
