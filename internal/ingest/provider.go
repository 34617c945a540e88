package ingest

import "time"

// Result summarizes a parsed training plan.
type Result struct {
	RowsReceived  int            `json:"rows_received"`
	StartDate     *time.Time     `json:"start_date,omitempty"`
	EndDate       *time.Time     `json:"end_date,omitempty"`
	Weeks         int            `json:"weeks"`
	TotalDistance float64        `json:"total_distance"`
	RunTypes      map[string]int `json:"run_types,omitempty"`
	UnknownTypes  []string       `json:"unknown_types,omitempty"`

	Message string `json:"message,omitempty"`
}
