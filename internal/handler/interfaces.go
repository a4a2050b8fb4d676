package handler

import (
	"context"
	"io"

	"github.com/rocjay1/wire-dashboard/internal/pipeline"
	"github.com/rocjay1/wire-dashboard/internal/report"
)

// ReportLoader defines the data loading used by handlers.
type ReportLoader interface {
	Load(ctx context.Context) (*pipeline.Result, error)
}

// ChartRenderer defines the chart drawing used by handlers.
type ChartRenderer interface {
	Comparison(w io.Writer, customer string, c report.Comparison) error
	Distribution(w io.Writer, customer string, d report.Distribution) error
}
