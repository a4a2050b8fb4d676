package handler

import (
	"net/http"

	"github.com/rocjay1/wire-dashboard/internal/report"
)

// HandleHealth answers liveness probes.
func (d *Dependencies) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("OK"))
}

// HandleCustomers lists the selection options.
func (d *Dependencies) HandleCustomers(w http.ResponseWriter, r *http.Request) {
	res, ok := d.load(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, map[string][]string{"customers": report.Options(res.Flagged)})
}

// HandleReport returns the full view for the selected customer.
func (d *Dependencies) HandleReport(w http.ResponseWriter, r *http.Request) {
	view := d.loadView(w, r)
	if view == nil {
		return
	}
	WriteJSON(w, http.StatusOK, view)
}

// HandleStats returns descriptive statistics of the full flagged set.
func (d *Dependencies) HandleStats(w http.ResponseWriter, r *http.Request) {
	res, ok := d.load(w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"flagged_count": len(res.Flagged),
		"stats":         report.Describe(res.Flagged),
	})
}
