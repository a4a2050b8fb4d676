package handler

import (
	"context"
	"io"

	"github.com/rocjay1/wire-dashboard/internal/pipeline"
	"github.com/rocjay1/wire-dashboard/internal/report"
)

// MockReportLoader is a mock implementation of ReportLoader.
type MockReportLoader struct {
	LoadFunc func(ctx context.Context) (*pipeline.Result, error)
}

func (m *MockReportLoader) Load(ctx context.Context) (*pipeline.Result, error) {
	return m.LoadFunc(ctx)
}

// MockChartRenderer is a mock implementation of ChartRenderer.
type MockChartRenderer struct {
	ComparisonFunc   func(w io.Writer, customer string, c report.Comparison) error
	DistributionFunc func(w io.Writer, customer string, d report.Distribution) error
}

func (m *MockChartRenderer) Comparison(w io.Writer, customer string, c report.Comparison) error {
	return m.ComparisonFunc(w, customer, c)
}

func (m *MockChartRenderer) Distribution(w io.Writer, customer string, d report.Distribution) error {
	return m.DistributionFunc(w, customer, d)
}
