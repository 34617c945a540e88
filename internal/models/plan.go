package models

import "time"

// PlanRow is one scheduled training day loaded from the plan table.
// Date is a calendar date normalized to midnight UTC.
type PlanRow struct {
	Date      time.Time `json:"date"`
	DayOfWeek string    `json:"dow"`
	Distance  float64   `json:"distance"`
	RunType   string    `json:"type"`
}
