package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocjay1/wire-dashboard/internal/dataerr"
	"github.com/rocjay1/wire-dashboard/internal/models"
	"github.com/rocjay1/wire-dashboard/internal/report"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTemplate = template.Must(
	template.New("dashboard.html").Funcs(template.FuncMap{
		"money": report.FormatMoney,
		"date":  func(t time.Time) string { return t.Format(models.DateLayout) },
		"stat":  formatStat,
		"deref": func(n *int) int { return *n },
	}).ParseFS(templateFS, "templates/dashboard.html"),
)

type dashboardPage struct {
	Error string
	About string
	View  *report.View
}

func formatStat(v *float64) string {
	if v == nil {
		return "NaN"
	}
	return fmt.Sprintf("%.2f", *v)
}

// HandleDashboard renders the HTML dashboard. A load failure renders only the error message.
func (d *Dependencies) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	page := dashboardPage{About: report.MsgAbout}
	status := http.StatusOK

	res, err := d.Reports.Load(r.Context())
	if err != nil {
		slog.Error("failed to load dashboard data", "error", err)
		page.Error = dataerr.UserMessage(err)
		status = http.StatusInternalServerError
	} else {
		page.View = report.BuildView(res, r.URL.Query().Get(QueryCustomer))
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, page); err != nil {
		slog.Error("failed to render dashboard", "error", err)
		http.Error(w, "Failed to render dashboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
