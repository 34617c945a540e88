package plan

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MarathonMiles is the race distance goal pace is computed over.
const MarathonMiles = 26.2

// Long-run pace band, in seconds per mile slower than goal pace.
const (
	LongRunFastOffset = 30
	LongRunSlowOffset = 60
)

// GoalTime is a target marathon finish time.
type GoalTime struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// DefaultGoalTime is 3:40:00.
var DefaultGoalTime = GoalTime{Hours: 3, Minutes: 40}

// TotalSeconds converts the goal to seconds.
func (g GoalTime) TotalSeconds() int {
	return g.Hours*3600 + g.Minutes*60 + g.Seconds
}

func (g GoalTime) String() string {
	return fmt.Sprintf("%d:%02d:%02d", g.Hours, g.Minutes, g.Seconds)
}

// ParseGoalTime parses "H:MM:SS" or "H:MM".
func ParseGoalTime(s string) (GoalTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return GoalTime{}, fmt.Errorf("goal time %q: want H:MM:SS: %w", s, ErrValidation)
	}

	vals := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return GoalTime{}, fmt.Errorf("goal time %q: bad field %q: %w", s, p, ErrValidation)
		}
		vals[i] = n
	}
	if vals[1] > 59 || vals[2] > 59 {
		return GoalTime{}, fmt.Errorf("goal time %q: minutes and seconds must be below 60: %w", s, ErrValidation)
	}
	return GoalTime{Hours: vals[0], Minutes: vals[1], Seconds: vals[2]}, nil
}

// PaceRange is the suggested long-run pace band for a goal time.
// Paces are in seconds per mile.
type PaceRange struct {
	Goal     GoalTime `json:"goal"`
	GoalPace float64  `json:"goal_pace_seconds"`
	FastPace float64  `json:"fast_pace_seconds"`
	SlowPace float64  `json:"slow_pace_seconds"`
	Fast     string   `json:"fast"`
	Slow     string   `json:"slow"`
	Range    string   `json:"range"`
}

// NewPaceRange derives the long-run band: goal pace plus 30 to 60 seconds per mile.
func NewPaceRange(g GoalTime) PaceRange {
	goalPace := float64(g.TotalSeconds()) / MarathonMiles
	pr := PaceRange{
		Goal:     g,
		GoalPace: goalPace,
		FastPace: goalPace + LongRunFastOffset,
		SlowPace: goalPace + LongRunSlowOffset,
	}
	pr.Fast = FormatPace(pr.FastPace)
	pr.Slow = FormatPace(pr.SlowPace)
	pr.Range = pr.Fast + " – " + pr.Slow
	return pr
}

// PaceRangeFor is NewPaceRange for separate hour, minute and second values.
func PaceRangeFor(hours, minutes, seconds int) PaceRange {
	return NewPaceRange(GoalTime{Hours: hours, Minutes: minutes, Seconds: seconds})
}

func (p PaceRange) String() string {
	return p.Range
}

// FormatPace renders seconds per mile as "M:SS/mi". Both fields are
// truncated, never rounded: 533.8s is "8:53/mi".
func FormatPace(sec float64) string {
	m := int(math.Floor(sec / 60))
	s := int(math.Floor(math.Mod(sec, 60)))
	return fmt.Sprintf("%d:%02d/mi", m, s)
}
