package plan

import (
	"math/bits"
	"strings"
)

// MuscleGroup keys the weekly strength recommendation.
type MuscleGroup string

const (
	Legs      MuscleGroup = "legs"
	Core      MuscleGroup = "core"
	UpperBody MuscleGroup = "upper body"
)

// MuscleGroups is the fixed draw order. Changing it changes every pick.
var MuscleGroups = []MuscleGroup{Legs, Core, UpperBody}

// Label is the display form, e.g. "Upper body".
func (g MuscleGroup) Label() string {
	s := string(g)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// LiftCatalog lists candidate exercises per muscle group.
type LiftCatalog map[MuscleGroup][]string

// LiftSelectorVersion identifies the generator and selection procedure
// below. Bump it whenever either changes so stored expectations can be
// told apart.
const LiftSelectorVersion = 1

// DefaultLiftCatalog is the version 1 candidate list.
var DefaultLiftCatalog = LiftCatalog{
	Legs:      {"3x 10 squats", "3x 10 alt. lunges", "3x 10 calf raises"},
	Core:      {"3x 15 sit-ups", "3x 15 leg raises", "2x 60-second planks"},
	UpperBody: {"3x 10 push-ups", "3x 10 dumbbell rows", "3x 10 shoulder presses"},
}

// WeeklyLift is the strength recommendation for one week.
// A nil exercise means the group had no candidates.
type WeeklyLift struct {
	Week      int     `json:"week"`
	Version   int     `json:"version"`
	Legs      *string `json:"legs"`
	Core      *string `json:"core"`
	UpperBody *string `json:"upper_body"`
}

// LiftItem is one row of the recommendation table.
type LiftItem struct {
	Group    MuscleGroup
	Exercise *string
}

// Items returns the recommendation in draw order.
func (l WeeklyLift) Items() []LiftItem {
	return []LiftItem{
		{Group: Legs, Exercise: l.Legs},
		{Group: Core, Exercise: l.Core},
		{Group: UpperBody, Exercise: l.UpperBody},
	}
}

// Get returns the exercise for g, or nil.
func (l WeeklyLift) Get(g MuscleGroup) *string {
	switch g {
	case Legs:
		return l.Legs
	case Core:
		return l.Core
	case UpperBody:
		return l.UpperBody
	}
	return nil
}

// LiftSelector picks one exercise per muscle group, deterministically per week.
//
// Version 1 procedure: seed SplitMix64 with uint64(int64(week)); for each
// group in MuscleGroups order with a non-empty list, draw one 64-bit value x
// and take index hi64(x * len(list)). Empty lists consume no draw.
type LiftSelector struct {
	catalog LiftCatalog
}

// NewLiftSelector builds a selector over catalog.
func NewLiftSelector(catalog LiftCatalog) *LiftSelector {
	return &LiftSelector{catalog: catalog}
}

// Select returns the recommendation for week.
func (s *LiftSelector) Select(week int) WeeklyLift {
	rng := splitMix64{state: uint64(int64(week))}
	out := WeeklyLift{Week: week, Version: LiftSelectorVersion}
	for _, g := range MuscleGroups {
		options := s.catalog[g]
		if len(options) == 0 {
			continue
		}
		pick := options[rng.intn(len(options))]
		switch g {
		case Legs:
			out.Legs = &pick
		case Core:
			out.Core = &pick
		case UpperBody:
			out.UpperBody = &pick
		}
	}
	return out
}

var defaultSelector = NewLiftSelector(DefaultLiftCatalog)

// WeeklyLiftFor selects from DefaultLiftCatalog.
func WeeklyLiftFor(week int) WeeklyLift {
	return defaultSelector.Select(week)
}

// splitMix64 is Steele, Lea and Flood's SplitMix64 generator.
type splitMix64 struct {
	state uint64
}

func (s *splitMix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// intn maps one draw onto [0, n) with a multiply-shift.
func (s *splitMix64) intn(n int) int {
	hi, _ := bits.Mul64(s.next(), uint64(n))
	return int(hi)
}
