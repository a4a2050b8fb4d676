package charts

import (
	"errors"
	"fmt"
	"io"

	"github.com/rocjay1/wire-dashboard/internal/report"
	"github.com/shopspring/decimal"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNothingToPlot is returned when every value of a chart is zero.
var ErrNothingToPlot = errors.New("nothing to plot")

var (
	colorLimit     = drawing.Color{R: 214, G: 39, B: 40, A: 178}
	colorAmount    = drawing.Color{R: 31, G: 119, B: 180, A: 178}
	colorSelected  = drawing.Color{R: 255, G: 221, B: 0, A: 255}
	colorRemaining = drawing.Color{R: 44, G: 160, B: 44, A: 255}
)

// Renderer draws the dashboard charts as PNG.
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer returns a Renderer with the dashboard's default chart size.
func NewRenderer() *Renderer {
	return &Renderer{Width: 1000, Height: 600}
}

// Comparison draws the summed limit against the summed transfer amount for one customer.
func (r *Renderer) Comparison(w io.Writer, customer string, c report.Comparison) error {
	limit := c.TotalLimit.InexactFloat64()
	amount := c.TotalAmount.InexactFloat64()
	top := max(limit, amount)
	if top <= 0 {
		return ErrNothingToPlot
	}

	bc := chart.BarChart{
		Title:  fmt.Sprintf("Wire Transfer Comparison for %s", customer),
		Width:  r.Width,
		Height: r.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		BarWidth: r.Width / 4,
		YAxis: chart.YAxis{
			Name:  "Amount ($)",
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return report.FormatMoney(decimal.NewFromFloat(f).Round(0))
				}
				return ""
			},
		},
		Bars: []chart.Value{
			{
				Label: "Wire Transfer Limit " + report.FormatMoney(c.TotalLimit),
				Value: limit,
				Style: chart.Style{FillColor: colorLimit, StrokeColor: colorLimit, StrokeWidth: 1},
			},
			{
				Label: "Outgoing Wire Amount " + report.FormatMoney(c.TotalAmount),
				Value: amount,
				Style: chart.Style{FillColor: colorAmount, StrokeColor: colorAmount, StrokeWidth: 1},
			},
		},
	}

	if err := bc.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render comparison chart: %w", err)
	}
	return nil
}

// Distribution draws the selected customer's transfer volume against the remainder.
func (r *Renderer) Distribution(w io.Writer, customer string, d report.Distribution) error {
	if !d.Overall.IsPositive() {
		return ErrNothingToPlot
	}

	slices := []chart.Value{
		{
			Label: fmt.Sprintf("Selected: %.1f%%", d.SelectedPercent),
			Value: d.Selected.InexactFloat64(),
			Style: chart.Style{FillColor: colorSelected},
		},
		{
			Label: fmt.Sprintf("Remaining: %.1f%%", d.RemainingPercent),
			Value: d.Remaining.InexactFloat64(),
			Style: chart.Style{FillColor: colorRemaining},
		},
	}
	values := slices[:0]
	for _, s := range slices {
		if s.Value > 0 {
			values = append(values, s)
		}
	}
	if len(values) == 0 {
		return ErrNothingToPlot
	}

	size := min(r.Width, r.Height)
	pc := chart.PieChart{
		Title:  fmt.Sprintf("Outgoing Wire Transfer Distribution: %s vs All Customers", customer),
		Width:  size,
		Height: size,
		Values: values,
	}

	if err := pc.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render distribution chart: %w", err)
	}
	return nil
}
