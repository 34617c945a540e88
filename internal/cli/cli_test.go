package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/meltforce/trainingdash/internal/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePlan writes a three-week plan starting Monday 2026-01-05. Every
// week repeats Rest, Easy, Tempo, Easy, Rest, Long, Cross at 1..7 miles.
func writePlan(t *testing.T, extraType string) string {
	t.Helper()
	types := []string{"Rest", "Easy", "Tempo", "Easy", "Rest", "Long", "Cross"}
	if extraType != "" {
		types[6] = extraType
	}
	var b strings.Builder
	b.WriteString("date,dow,distance,type\n")
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	for i := range 21 {
		d := start.AddDate(0, 0, i)
		fmt.Fprintf(&b, "%s,%s,%d,%s\n", d.Format(time.DateOnly), d.Weekday(), i%7+1, types[i%7])
	}
	path := filepath.Join(t.TempDir(), "plan.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd("test")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func runPlan(t *testing.T, args ...string) string {
	t.Helper()
	base := []string{"--plan", writePlan(t, ""), "--date", "2026-01-12", "--color", "no"}
	out, err := run(t, append(base, args...)...)
	require.NoError(t, err)
	return out
}

func TestProgressCommand(t *testing.T) {
	out := runPlan(t, "progress")
	assert.Contains(t, out, "Week 2 of 3")
	assert.Contains(t, out, "Day 8 of 21 (as of 2026-01-12)")
	assert.Contains(t, out, "38.1%")
}

func TestPaceCommand(t *testing.T) {
	out := runPlan(t, "pace")
	assert.Contains(t, out, "3:40:00 (8:23/mi)")
	assert.Contains(t, out, "8:53/mi – 9:23/mi")

	out = runPlan(t, "--goal", "3:00:00", "pace")
	assert.Contains(t, out, "7:22/mi – 7:52/mi")
}

func TestPaceFromEnv(t *testing.T) {
	t.Setenv("TRAININGDASH_PLAN_GOAL_TIME", "4:00:00")
	out := runPlan(t, "pace")
	assert.Contains(t, out, "9:39/mi – 10:09/mi")
}

func TestConfigFile(t *testing.T) {
	path := writePlan(t, "")
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	yaml := fmt.Sprintf("plan:\n  path: %s\n  goal_time: \"3:00:00\"\n  reference_date: \"2026-01-20\"\n", path)
	require.NoError(t, os.WriteFile(cfg, []byte(yaml), 0o644))

	out, err := run(t, "--config", cfg, "--color", "no", "progress")
	require.NoError(t, err)
	assert.Contains(t, out, "Week 3 of 3")

	out, err = run(t, "--config", cfg, "--color", "no", "pace")
	require.NoError(t, err)
	assert.Contains(t, out, "7:22/mi – 7:52/mi")
}

func TestLiftCommand(t *testing.T) {
	out := runPlan(t, "lift")
	assert.Contains(t, out, "Week 2 lift")
	assert.Contains(t, out, "3x 10 alt. lunges")
	assert.Contains(t, out, "3x 10 dumbbell rows")

	out = runPlan(t, "lift", "--week", "3")
	assert.Contains(t, out, "Week 3 lift")
	assert.Contains(t, out, "3x 10 squats")
	assert.Contains(t, out, "2x 60-second planks")
	assert.Contains(t, out, "Upper body")
}

func TestPlanCommand(t *testing.T) {
	out := runPlan(t, "plan")
	assert.Contains(t, out, "2026-01-05")
	assert.Contains(t, out, "2026-01-25")
	assert.Contains(t, out, "21 days, 84 mi")

	out = runPlan(t, "plan", "--week", "2")
	assert.NotContains(t, out, "2026-01-05")
	assert.Contains(t, out, "2026-01-12")
	assert.Contains(t, out, "7 days, 28 mi")
}

func TestWeekCommand(t *testing.T) {
	out := runPlan(t, "week")
	assert.Contains(t, out, "Week 2 of 3")
	assert.Contains(t, out, "2026-01-18")
	assert.NotContains(t, out, "2026-01-19")
	assert.Contains(t, out, "8:53/mi – 9:23/mi", "long run tile shows the pace band")
}

func TestMileageCommand(t *testing.T) {
	out := runPlan(t, "mileage")
	assert.Contains(t, out, "28 mi")
	assert.Contains(t, out, "2 *")
	assert.Contains(t, out, "Total: 84 mi")
}

func TestValidateCommand(t *testing.T) {
	path := writePlan(t, "Yoga")
	out, err := run(t, "--color", "no", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "21 rows over 3 weeks")
	assert.Contains(t, out, "Total distance: 84 mi")
	assert.Contains(t, out, `unknown run type "yoga"`)
}

func TestValidateCommandRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,dow,distance,type\nnot-a-date,Monday,3,Easy\n"), 0o644))

	_, err := run(t, "--color", "no", "validate", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, plan.ErrValidation), "err = %v", err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestMissingPlanFile(t *testing.T) {
	_, err := run(t, "--plan", filepath.Join(t.TempDir(), "missing.csv"), "--color", "no", "progress")
	require.Error(t, err)
}

func TestInvalidFlags(t *testing.T) {
	path := writePlan(t, "")
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"color", []string{"--plan", path, "--color", "sometimes", "pace"}, "invalid --color"},
		{"goal", []string{"--plan", path, "--color", "no", "--goal", "fast", "pace"}, "invalid --goal"},
		{"date", []string{"--plan", path, "--color", "no", "--date", "01/12/2026", "progress"}, "invalid --date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version: test")
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[░░░░] 0.0%", progressBar(0, 4))
	assert.Equal(t, "[██░░] 50.0%", progressBar(50, 4))
	assert.Equal(t, "[████] 100.0%", progressBar(100, 4))
}
