package service

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"mortgage-engine/domain"
)

// RenderBalanceChart renders remaining principal by month as a PNG line
// chart. Months with an anniversary payment are marked with dots.
func RenderBalanceChart(schedule domain.Schedule) ([]byte, error) {
	if len(schedule.Entries) < 2 {
		return nil, fmt.Errorf("need at least 2 months to chart, got %d", len(schedule.Entries))
	}

	months := make([]float64, 0, len(schedule.Entries)+1)
	balances := make([]float64, 0, len(schedule.Entries)+1)
	months = append(months, 0)
	balances = append(balances, schedule.Terms.Principal)

	var prepayMonths, prepayBalances []float64
	for _, e := range schedule.Entries {
		months = append(months, float64(e.Month))
		balances = append(balances, e.RemainingPrincipal)
		if e.AnniversaryPayment != nil {
			prepayMonths = append(prepayMonths, float64(e.Month))
			prepayBalances = append(prepayBalances, e.RemainingPrincipal)
		}
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name: "Remaining Principal",
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
				StrokeWidth: 2.5,
			},
			XValues: months,
			YValues: balances,
		},
	}

	if len(prepayMonths) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name: "Anniversary Payment",
			Style: chart.Style{
				StrokeColor: drawing.ColorTransparent,
				DotColor:    drawing.ColorFromHex("dc2626"), // red-600
				DotWidth:    4,
			},
			XValues: prepayMonths,
			YValues: prepayBalances,
		})
	}

	graph := chart.Chart{
		Title:  "Mortgage Balance",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name: "Month",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.0fk", f/1000)
				}
				return ""
			},
		},
		Series: series,
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
