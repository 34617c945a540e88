package server

import (
	"net/http"
	"time"

	"github.com/meltforce/trainingdash/internal/plan"
)

// settingsResponse describes the server-side defaults a query falls back to.
type settingsResponse struct {
	GoalTime      string         `json:"goal_time"`
	ReferenceDate *string        `json:"reference_date"`
	WindowDays    int            `json:"window_days"`
	Pace          plan.PaceRange `json:"pace"`
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	d := s.svc.Defaults()
	resp := settingsResponse{
		GoalTime:   d.Goal.String(),
		WindowDays: d.RollingDays,
		Pace:       plan.NewPaceRange(d.Goal),
	}
	if d.Reference != nil {
		ref := d.Reference.Format(time.DateOnly)
		resp.ReferenceDate = &ref
	}
	writeJSON(w, http.StatusOK, resp)
}
