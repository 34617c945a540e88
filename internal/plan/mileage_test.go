package plan

import "testing"

// TestSummarizeMileage verifies per-week totals and axis bounds.
func TestSummarizeMileage(t *testing.T) {
	rows := []WeekRow{
		{Week: 2, PlanRow: planRow(3)},
		{Week: 1, PlanRow: planRow(4)},
		{Week: 1, PlanRow: planRow(6)},
		{Week: 2, PlanRow: planRow(17)},
	}
	m := SummarizeMileage(rows)
	if len(m.Weeks) != 2 {
		t.Fatalf("weeks = %d, want 2", len(m.Weeks))
	}
	if m.Weeks[0].Week != 1 || m.Weeks[0].Distance != 10 {
		t.Errorf("week 1 = %+v", m.Weeks[0])
	}
	if m.Weeks[1].Week != 2 || m.Weeks[1].Distance != 20 {
		t.Errorf("week 2 = %+v", m.Weeks[1])
	}
	if m.XMin != 1 || m.XMax != 18 {
		t.Errorf("x axis = %d..%d, want 1..18", m.XMin, m.XMax)
	}
	if m.YMax != 21 {
		t.Errorf("y max = %d, want 21", m.YMax)
	}
	if m.Total() != 30 {
		t.Errorf("total = %v, want 30", m.Total())
	}
}

// TestSummarizeMileageLongPlan verifies the x axis grows past 18 weeks.
func TestSummarizeMileageLongPlan(t *testing.T) {
	rows := AssignWeeks(samplePlan(7*20), date(2026, 1, 5))
	m := SummarizeMileage(rows)
	if m.XMax != 20 {
		t.Errorf("x max = %d, want 20", m.XMax)
	}
}

// TestSummarizeMileageEmpty verifies the empty-chart defaults.
func TestSummarizeMileageEmpty(t *testing.T) {
	m := SummarizeMileage(nil)
	if len(m.Weeks) != 0 || m.YMax != 10 || m.XMax != 18 {
		t.Errorf("empty summary = %+v", m)
	}
}
