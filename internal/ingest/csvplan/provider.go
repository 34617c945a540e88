package csvplan

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/meltforce/trainingdash/internal/ingest"
	"github.com/meltforce/trainingdash/internal/models"
	"github.com/meltforce/trainingdash/internal/plan"
)

// Provider serves the plan stored in a CSV file. The file is re-read
// when its modification time or size changes. A rewrite that keeps the
// same size within one modification-time tick of the filesystem is not
// noticed until the next change; plan edits are rare and manual, so no
// content hash is taken.
type Provider struct {
	path string
	log  *slog.Logger

	mu      sync.Mutex
	rows    []models.PlanRow
	modTime time.Time
	size    int64
	loaded  bool
}

// NewProvider creates a provider for the plan at path. Nothing is read
// until the first call to Rows.
func NewProvider(path string, log *slog.Logger) *Provider {
	return &Provider{path: path, log: log}
}

// Path returns the plan file location.
func (p *Provider) Path() string {
	return p.path
}

// Rows returns the current plan, sorted by date. The returned slice is a copy.
func (p *Provider) Rows(ctx context.Context) ([]models.PlanRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(p.path)
	if err != nil {
		return nil, fmt.Errorf("stat plan: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.loaded || !info.ModTime().Equal(p.modTime) || info.Size() != p.size {
		if err := p.reload(info); err != nil {
			return nil, err
		}
	}

	out := make([]models.PlanRow, len(p.rows))
	copy(out, p.rows)
	return out, nil
}

func (p *Provider) reload(info os.FileInfo) error {
	f, err := os.Open(p.path)
	if err != nil {
		return fmt.Errorf("opening plan: %w", err)
	}
	defer f.Close()

	rows, err := Parse(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", p.path, err)
	}

	first := !p.loaded
	p.rows = rows
	p.modTime = info.ModTime()
	p.size = info.Size()
	p.loaded = true

	if first {
		p.log.Info("plan loaded", "path", p.path, "rows", len(rows))
	} else {
		p.log.Info("plan reloaded", "path", p.path, "rows", len(rows))
	}
	return nil
}

// Validate parses an uploaded plan and summarizes it without replacing
// the served plan.
func (p *Provider) Validate(ctx context.Context, r io.Reader) (*ingest.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	result := Summarize(rows)
	p.log.Info("plan validated", "rows", result.RowsReceived, "weeks", result.Weeks)
	return result, nil
}

// Summarize describes rows: date span, week count, distance and run-type
// counts. Run types outside the style table are listed in UnknownTypes.
func Summarize(rows []models.PlanRow) *ingest.Result {
	result := &ingest.Result{RowsReceived: len(rows)}
	window, err := plan.NewWindow(rows)
	if err != nil {
		result.Message = "plan has no rows"
		return result
	}
	result.StartDate = &window.Start
	result.EndDate = &window.End
	result.Weeks = window.LastWeek()

	result.RunTypes = make(map[string]int)
	unknown := make(map[string]bool)
	for _, r := range rows {
		result.TotalDistance += r.Distance
		style := plan.StyleFor(r.RunType)
		result.RunTypes[style.Key]++
		if !style.Known && !unknown[style.Key] {
			unknown[style.Key] = true
			result.UnknownTypes = append(result.UnknownTypes, style.Key)
		}
	}
	sort.Strings(result.UnknownTypes)

	result.Message = fmt.Sprintf("%d rows over %d weeks, %s", len(rows), result.Weeks, window)
	return result
}
