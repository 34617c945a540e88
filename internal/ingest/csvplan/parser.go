package csvplan

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/trainingdash/internal/models"
	"github.com/meltforce/trainingdash/internal/plan"
)

// Required header columns, matched case-insensitively.
const (
	ColDate     = "date"
	ColDOW      = "dow"
	ColDistance = "distance"
	ColType     = "type"
)

var requiredColumns = []string{ColDate, ColDOW, ColDistance, ColType}

// dateLayouts are tried in order; time-of-day is discarded.
var dateLayouts = []string{
	time.DateOnly,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseError locates a problem in the plan file. It matches both
// plan.ErrValidation and the underlying cause with errors.Is.
type ParseError struct {
	Line   int
	Column string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("line %d: column %q: %v", e.Line, e.Column, e.Err)
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e *ParseError) Unwrap() []error {
	return []error{plan.ErrValidation, e.Err}
}

var (
	errMissingHeader = errors.New("missing header row")
	errMissingColumn = errors.New("missing required column")
	errBadDate       = errors.New("unparseable date")
	errBadDistance   = errors.New("unparseable distance")
	errNegative      = errors.New("negative distance")
	errDuplicateDate = errors.New("duplicate date")
)

// Parse reads a plan table with date, dow, distance and Type columns.
// Extra columns are ignored. Rows are returned sorted by date; any
// error means no rows are returned.
func Parse(r io.Reader) ([]models.PlanRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{Err: errMissingHeader}
	}
	if err != nil {
		return nil, &ParseError{Line: 1, Err: err}
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var rows []models.PlanRow
	seen := make(map[time.Time]int)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &ParseError{Line: pe.Line, Err: pe.Err}
			}
			return nil, fmt.Errorf("reading plan: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if blank(record) {
			continue
		}

		row, err := parseRecord(record, idx, line)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[row.Date]; ok {
			return nil, &ParseError{
				Line:   line,
				Column: ColDate,
				Err:    fmt.Errorf("%w %s (first seen on line %d)", errDuplicateDate, row.Date.Format(time.DateOnly), prev),
			}
		}
		seen[row.Date] = line
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			return nil, &ParseError{Line: 1, Column: c, Err: errMissingColumn}
		}
	}
	return idx, nil
}

func parseRecord(record []string, idx map[string]int, line int) (models.PlanRow, error) {
	field := func(col string) string {
		i := idx[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	date, err := parseDate(field(ColDate))
	if err != nil {
		return models.PlanRow{}, &ParseError{Line: line, Column: ColDate, Err: err}
	}

	distance, err := parseDistance(field(ColDistance))
	if err != nil {
		return models.PlanRow{}, &ParseError{Line: line, Column: ColDistance, Err: err}
	}

	return models.PlanRow{
		Date:      date,
		DayOfWeek: field(ColDOW),
		Distance:  distance,
		RunType:   field(ColType),
	}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return plan.Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w %q", errBadDate, s)
}

func parseDistance(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	d, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(d) || math.IsInf(d, 0) {
		return 0, fmt.Errorf("%w %q", errBadDistance, s)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w %q", errNegative, s)
	}
	return d, nil
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
