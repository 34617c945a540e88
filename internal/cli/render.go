package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/meltforce/trainingdash/internal/plan"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var (
	runTypeColors = map[string]*color.Color{
		plan.RunEasy:  color.New(color.FgBlue),
		plan.RunLong:  color.New(color.FgHiYellow, color.Bold),
		plan.RunTempo: color.New(color.FgMagenta),
		plan.RunPace:  color.New(color.FgRed),
		plan.RunCross: color.New(color.FgGreen),
		plan.RunRest:  color.New(color.FgHiBlack),
		plan.RunRace:  color.New(color.FgYellow, color.Bold),
	}
	defaultRunColor = color.New(color.FgWhite)

	headingColor = color.New(color.Bold)
	todayColor   = color.New(color.FgCyan, color.Bold)
	mutedColor   = color.New(color.FgHiBlack)
)

// colorRunType colors a run type tag by its style key.
func colorRunType(runType string) string {
	c, ok := runTypeColors[plan.RunTypeKey(runType)]
	if !ok {
		c = defaultRunColor
	}
	return c.Sprint(runType)
}

func formatMiles(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64) + " mi"
}

func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

func exerciseOrDash(e *string) string {
	if e == nil {
		return "-"
	}
	return *e
}

// renderTable writes a table with the given header and rows.
func renderTable(w io.Writer, header []string, rows [][]string, align tw.Align) error {
	table := tablewriter.NewWriter(w)
	table.Header(header)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = align
	})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// progressBar draws pct as a fixed-width bar.
func progressBar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	filled = min(max(filled, 0), width)
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '░'
		}
	}
	return fmt.Sprintf("[%s] %.1f%%", string(bar), pct)
}
