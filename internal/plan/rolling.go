package plan

import (
	"time"
	"unicode/utf8"
)

// DefaultRollingDays is the length of the "next days" strip.
const DefaultRollingDays = 7

// DayTile is one day in the rolling view. Row is nil when nothing is
// scheduled, which displays as rest.
type DayTile struct {
	Date     time.Time    `json:"date"`
	Label    string       `json:"label"`
	IsToday  bool         `json:"is_today"`
	Row      *WeekRow     `json:"row,omitempty"`
	Style    RunTypeStyle `json:"style"`
	ShowPace bool         `json:"show_pace"`
}

// Scheduled reports whether the tile has a plan row.
func (t DayTile) Scheduled() bool {
	return t.Row != nil
}

// RollingWindow lays out n consecutive days starting at ref. rows must
// already carry week numbers relative to the full plan start.
func RollingWindow(ref time.Time, rows []WeekRow, n int) []DayTile {
	byDate := make(map[time.Time]WeekRow, len(rows))
	for _, r := range rows {
		byDate[Day(r.Date)] = r
	}

	ref = Day(ref)
	tiles := make([]DayTile, 0, n)
	for i := range n {
		d := ref.AddDate(0, 0, i)
		tile := DayTile{
			Date:    d,
			Label:   d.Format("Mon"),
			IsToday: i == 0,
			Style:   RunTypeStyle{Key: RunRest, Color: DefaultColor},
		}
		if r, ok := byDate[d]; ok {
			tile.Row = &r
			tile.Style = StyleFor(r.RunType)
			tile.ShowPace = IsLongRun(r.RunType)
			if l := shortLabel(r.DayOfWeek); l != "" {
				tile.Label = l
			}
		}
		tiles = append(tiles, tile)
	}
	return tiles
}

// shortLabel is the first three characters of a day name, or "" when the
// name is shorter than that.
func shortLabel(dow string) string {
	if utf8.RuneCountInString(dow) < 3 {
		return ""
	}
	r := []rune(dow)
	return string(r[:3])
}
