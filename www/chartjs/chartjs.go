package chartjs

import (
	"math"
)

const (
	ColorTransparent = "#00000000"
	ColorHighlight   = "#1e88e5"
)

// NewBarChart creates a chart with one dataset of len(labels) empty bars.
func NewBarChart(title string, labels []string) Chart {
	n := len(labels)
	borders := make([]string, n)
	for i := range borders {
		borders[i] = ColorTransparent
	}

	chart := Chart{
		Type: "bar",
		Data: ChartData{
			Labels: labels,
			Datasets: []ChartDataset{
				{
					Data:            make([]*float64, n),
					BackgroundColor: make([]string, n),
					BorderColor:     borders,
					BorderWidth:     2,
				},
			},
		},
		Options: ChartOptions{
			Responsive: true,
			Plugins: ChartPlugins{
				Legend: ChartLegend{Display: false},
				Title:  ChartTitle{Display: false},
			},
			Scales: map[string]ChartScale{
				"x": {Display: true},
				"y": {Type: "linear", Display: true, Position: "left"},
			},
		},
	}

	if title != "" {
		chart.Options.Plugins.Title = ChartTitle{Display: true, Text: title}
	}

	return chart
}

// SetBar sets value and fill color of bar i.
func (c *Chart) SetBar(i int, value float64, color string) {
	ds := &c.Data.Datasets[0]
	ds.Data[i] = FixedFloat64(value, 4)
	ds.BackgroundColor[i] = color
}

// Highlight draws a border around bar i, out of range indexes are ignored.
func (c *Chart) Highlight(i int) {
	ds := &c.Data.Datasets[0]
	if i < 0 || i >= len(ds.BorderColor) {
		return
	}
	ds.BorderColor[i] = ColorHighlight
}

func (cs ChartScale) WithTitle(title string) ChartScale {
	cs.Title = ChartScaleTitle{Display: true, Text: title}
	return cs
}

func FixedFloat64(num float64, precision int) *float64 {
	p := math.Pow(10, float64(precision))
	rounded := math.Round(num * p)
	result := rounded / p
	return &result
}
