package services

import (
	"bytes"

	chart "github.com/wcharczuk/go-chart/v2"
)

// chartDays caps how many days the summary chart shows, newest kept.
const chartDays = 14

// PizzasPerDayChart renders the most recent days of pizza sales as a PNG bar
// chart. It returns nil when there is nothing to plot.
func PizzasPerDayChart(days []DayPizzas) ([]byte, error) {
	if len(days) > chartDays {
		days = days[len(days)-chartDays:]
	}

	peak := 0
	bars := make([]chart.Value, 0, len(days))
	for _, d := range days {
		if d.Pizzas > peak {
			peak = d.Pizzas
		}
		bars = append(bars, chart.Value{Label: d.Date.Format("02/01"), Value: float64(d.Pizzas)})
	}
	if peak == 0 {
		return nil, nil
	}

	graph := chart.BarChart{
		Title:      "Pizzas per day",
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Width:      900,
		Height:     400,
		BarWidth:   40,
		BarSpacing: 20,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(peak)},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
