package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rocjay1/wire-dashboard/internal/dataerr"
	"github.com/rocjay1/wire-dashboard/internal/pipeline"
	"github.com/rocjay1/wire-dashboard/internal/report"
)

// QueryCustomer is the query parameter carrying the selected customer name.
const QueryCustomer = "customer"

// Dependencies holds the services required by the handlers.
type Dependencies struct {
	Reports ReportLoader
	Charts  ChartRenderer
}

// Routes registers every dashboard endpoint on r.
func (d *Dependencies) Routes(r chi.Router) {
	r.Get("/", d.HandleDashboard)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", d.HandleHealth)
		r.Get("/customers", d.HandleCustomers)
		r.Get("/report", d.HandleReport)
		r.Get("/stats", d.HandleStats)
		r.Get("/charts/comparison.png", d.HandleComparisonChart)
		r.Get("/charts/distribution.png", d.HandleDistributionChart)
	})
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// WriteError writes an error response.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// loadView loads the data set and derives the view for the request's customer.
// On failure it writes the error response and returns nil.
func (d *Dependencies) loadView(w http.ResponseWriter, r *http.Request) *report.View {
	res, ok := d.load(w, r)
	if !ok {
		return nil
	}
	return report.BuildView(res, r.URL.Query().Get(QueryCustomer))
}

func (d *Dependencies) load(w http.ResponseWriter, r *http.Request) (*pipeline.Result, bool) {
	res, err := d.Reports.Load(r.Context())
	if err != nil {
		slog.Error("failed to load dashboard data", "error", err)
		WriteError(w, http.StatusInternalServerError, dataerr.UserMessage(err))
		return nil, false
	}
	return res, true
}
