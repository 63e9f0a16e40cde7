package chart

import (
	"fmt"
	"math"
	"strings"

	"ledger/internal/report"
)

// Cumulative chart plot box.
const (
	LineWidth   = 600
	LineHeight  = 300
	linePadding = 40
)

type (
	// Point is one plotted sample of the cumulative series.
	Point struct {
		X          float64 `json:"x"`
		Y          float64 `json:"y"`
		Date       string  `json:"date"`
		Cumulative float64 `json:"cumulative"`
	}

	// Line is the rendered cumulative chart: the shared point set, the
	// stroke path and the filled area closed down to the baseline.
	Line struct {
		Points   []Point `json:"points"`
		LinePath string  `json:"linePath"`
		AreaPath string  `json:"areaPath"`
		MaxValue float64 `json:"maxValue"`
	}
)

// CumulativeLine maps a chronologically ordered cumulative series onto
// plot coordinates. X spreads indices linearly across the plot width; Y
// scales against a rounded maximum (next multiple of 1000, at least
// 1000) so axis gridlines land on round numbers.
func CumulativeLine(series []report.CumulativePoint) Line {
	if len(series) == 0 {
		return Line{}
	}

	chartWidth := float64(LineWidth - 2*linePadding)
	chartHeight := float64(LineHeight - 2*linePadding)
	baseline := float64(LineHeight - linePadding)

	niceMax := NiceMax(series[len(series)-1].Cumulative)

	span := float64(len(series) - 1)
	if span == 0 {
		span = 1
	}

	points := make([]Point, 0, len(series))
	for i, s := range series {
		points = append(points, Point{
			X:          linePadding + float64(i)/span*chartWidth,
			Y:          baseline - s.Cumulative/niceMax*chartHeight,
			Date:       s.Date,
			Cumulative: s.Cumulative,
		})
	}

	var line strings.Builder
	for i, p := range points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&line, "%s %s %s ", cmd, f(p.X), f(p.Y))
	}
	linePath := strings.TrimSpace(line.String())

	var area strings.Builder
	fmt.Fprintf(&area, "M %s %s ", f(linePadding), f(baseline))
	for _, p := range points {
		fmt.Fprintf(&area, "L %s %s ", f(p.X), f(p.Y))
	}
	fmt.Fprintf(&area, "L %s %s Z", f(points[len(points)-1].X), f(baseline))

	return Line{
		Points:   points,
		LinePath: linePath,
		AreaPath: area.String(),
		MaxValue: niceMax,
	}
}

// NiceMax rounds a maximum up to the nearest thousand with a floor of
// 1000, keeping gridline labels round.
func NiceMax(max float64) float64 {
	nice := math.Ceil(max/1000) * 1000
	if nice < 1000 {
		return 1000
	}
	return nice
}
