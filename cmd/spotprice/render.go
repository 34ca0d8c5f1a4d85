package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/icodeforyou/spotprice-go/board"
	"github.com/icodeforyou/spotprice-go/pricing"
)

const (
	chartHeight = 10
	chartWidth  = 72
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

var trendArrows = map[board.Trend]string{
	board.TrendUp:   "↑",
	board.TrendDown: "↓",
	board.TrendFlat: "→",
}

func priceStyle(c pricing.HSL) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Hex()))
}

func render(v board.View) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", titleStyle.Render("Spot price "+v.Area), dimStyle.Render(v.Provider))

	if !v.HasStats {
		b.WriteString("No prices for today\n")
		writeWarnings(&b, v.Warnings)
		return b.String()
	}

	if v.HasCurrent() {
		fmt.Fprintf(&b, "Now   %s  %s SEK/kWh %s\n",
			v.Current.Label,
			priceStyle(v.CurrentColor).Render(pricing.FormatPrice(v.Current.AvgPrice)),
			trendArrows[v.Trend])
	}
	fmt.Fprintf(&b, "Next  %s  %s SEK/kWh\n",
		v.Next.Label,
		priceStyle(v.NextColor).Render(pricing.FormatPrice(v.Next.AvgPrice)))

	s := v.TodayStats
	fmt.Fprintf(&b, "Min %s (%s)  Max %s (%s)  Avg %s\n",
		pricing.FormatPrice(s.Min.AvgPrice), s.Min.Label,
		pricing.FormatPrice(s.Max.AvgPrice), s.Max.Label,
		pricing.FormatPrice(s.Avg))

	if v.Window != nil {
		day := "today"
		if v.Window.IsTomorrow {
			day = "tomorrow"
		}
		fmt.Fprintf(&b, "Cheapest %dh window %s %s, avg %s\n",
			v.WindowSize, day, v.Window.Label(), pricing.FormatPrice(v.Window.AvgPrice))
	}

	switch {
	case v.ShowTomorrowComparison:
		fmt.Fprintf(&b, "Tomorrow avg %s (%+.0f%%)\n",
			priceStyle(v.TomorrowAvgColor).Render(pricing.FormatPrice(v.TomorrowStats.Avg)),
			v.AvgDiffPercent)
	case v.AwaitingTomorrow:
		b.WriteString(dimStyle.Render("Waiting for tomorrow's prices") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(chart(v.Today))
	b.WriteString("\n")
	writeWarnings(&b, v.Warnings)

	return b.String()
}

func chart(today []pricing.HourlyPrice) string {
	prices := make([]float64, len(today))
	for i, p := range today {
		prices[i] = p.AvgPrice
	}
	return asciigraph.Plot(prices,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Caption("SEK/kWh per hour today"),
	)
}

func writeWarnings(b *strings.Builder, warnings []string) {
	for _, w := range warnings {
		b.WriteString(dimStyle.Render("warning: "+w) + "\n")
	}
}
