package handler

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocjay1/wire-dashboard/internal/charts"
	"github.com/rocjay1/wire-dashboard/internal/report"
)

// HandleComparisonChart renders the limit vs amount bar chart of one customer.
func (d *Dependencies) HandleComparisonChart(w http.ResponseWriter, r *http.Request) {
	view := d.loadView(w, r)
	if view == nil {
		return
	}
	if !view.ChartsAvailable() {
		writeMessage(w, view.ComparisonMessage)
		return
	}
	d.writeChart(w, "comparison", func(buf *bytes.Buffer) error {
		return d.Charts.Comparison(buf, view.Selected, *view.Comparison)
	})
}

// HandleDistributionChart renders the selected customer's share of all flagged volume.
func (d *Dependencies) HandleDistributionChart(w http.ResponseWriter, r *http.Request) {
	view := d.loadView(w, r)
	if view == nil {
		return
	}
	if !view.ChartsAvailable() {
		writeMessage(w, view.DistributionMessage)
		return
	}
	d.writeChart(w, "distribution", func(buf *bytes.Buffer) error {
		return d.Charts.Distribution(buf, view.Selected, *view.Distribution)
	})
}

// writeMessage maps a guidance message to 400 for a missing selection and 404 for missing data.
func writeMessage(w http.ResponseWriter, msg *report.Message) {
	status := http.StatusNotFound
	if msg.Level == report.LevelError {
		status = http.StatusBadRequest
	}
	WriteError(w, status, msg.Text)
}

func (d *Dependencies) writeChart(w http.ResponseWriter, name string, draw func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := draw(&buf); err != nil {
		if errors.Is(err, charts.ErrNothingToPlot) {
			WriteError(w, http.StatusNotFound, report.MsgNoCustomerData)
			return
		}
		slog.Error("failed to render chart", "chart", name, "error", err)
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("failed to write chart", "chart", name, "error", err)
	}
}
