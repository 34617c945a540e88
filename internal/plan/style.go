package plan

import "strings"

// Run-type keys recognized by the style table.
const (
	RunEasy  = "easy"
	RunLong  = "long"
	RunTempo = "tempo"
	RunPace  = "pace"
	RunCross = "cross"
	RunRest  = "rest"
	RunRace  = "race"
)

// DefaultColor is used for unrecognized run types and unscheduled days.
const DefaultColor = "#374151"

// RunTypeStyle is how a run type is displayed.
type RunTypeStyle struct {
	Key   string `json:"key"`
	Color string `json:"color"`
	Known bool   `json:"known"`
}

var runTypeColors = map[string]string{
	RunEasy:  "#2563eb",
	RunLong:  "#ea580c",
	RunTempo: "#7c3aed",
	RunPace:  "#dc2626",
	RunCross: "#059669",
	RunRest:  "#4b5563",
	RunRace:  "#d97706",
}

// RunTypeKey normalizes a free-text run type tag.
func RunTypeKey(runType string) string {
	return strings.ToLower(strings.TrimSpace(runType))
}

// StyleFor looks up a run type case-insensitively. Unknown tags get
// DefaultColor with Known=false; the lookup never fails.
func StyleFor(runType string) RunTypeStyle {
	key := RunTypeKey(runType)
	if c, ok := runTypeColors[key]; ok {
		return RunTypeStyle{Key: key, Color: c, Known: true}
	}
	return RunTypeStyle{Key: key, Color: DefaultColor}
}

// IsLongRun reports whether the long-run pace band applies to runType.
func IsLongRun(runType string) bool {
	return RunTypeKey(runType) == RunLong
}
