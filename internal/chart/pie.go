// Package chart maps aggregated series onto plot primitives: pie-slice
// arcs and the cumulative line/area paths. Pure geometry; rendering is
// someone else's job.
package chart

import (
	"fmt"
	"math"

	"ledger/internal/report"
)

// Pie layout constants. Slices start at 12 o'clock and labels sit at 70%
// of the radius; labels under the visibility threshold are suppressed to
// avoid unreadable overlaps.
const (
	PieSize            = 300
	pieMargin          = 20
	startAngleOffset   = -90.0
	labelRadiusFactor  = 0.7
	labelMinPercentage = 5.0
)

// Slice is one pie segment, ready to render: an SVG path, the percentage
// share and an optional label anchor.
type Slice struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
	StartAngle float64 `json:"startAngle"`
	SweepAngle float64 `json:"sweepAngle"`
	Path       string  `json:"path"`
	LabelX     float64 `json:"labelX"`
	LabelY     float64 `json:"labelY"`
	ShowLabel  bool    `json:"showLabel"`
}

// PieSlices lays out the ranked groups as consecutive slices proportional
// to value/total. A group covering the entire total degenerates to a full
// circle drawn as two half arcs, since a single 360° arc collapses to a
// zero-length path. Returns nil when total is not positive.
func PieSlices(groups []report.Group, total float64) []Slice {
	if total <= 0 {
		return nil
	}

	center := float64(PieSize) / 2
	radius := center - pieMargin

	slices := make([]Slice, 0, len(groups))
	currentAngle := 0.0
	for _, g := range groups {
		sweep := g.Total / total * 360
		percentage := g.Total / total * 100

		labelAngle := currentAngle + sweep/2
		labelX := center + radius*labelRadiusFactor*cosDeg(labelAngle+startAngleOffset)
		labelY := center + radius*labelRadiusFactor*sinDeg(labelAngle+startAngleOffset)

		slices = append(slices, Slice{
			Name:       g.Name,
			Value:      g.Total,
			Percentage: percentage,
			StartAngle: currentAngle,
			SweepAngle: sweep,
			Path:       slicePath(center, radius, currentAngle, sweep),
			LabelX:     labelX,
			LabelY:     labelY,
			ShowLabel:  percentage > labelMinPercentage,
		})
		currentAngle += sweep
	}
	return slices
}

// slicePath builds the SVG path for one slice. Angles are in degrees with
// 0 at 12 o'clock, growing clockwise.
func slicePath(center, radius, startAngle, sweep float64) string {
	if fullCircle(sweep) {
		// Two 180° arcs; a single arc whose endpoints coincide renders
		// as nothing.
		return fmt.Sprintf("M %s %s A %s %s 0 1 1 %s %s A %s %s 0 1 1 %s %s Z",
			f(center), f(center-radius),
			f(radius), f(radius), f(center), f(center+radius),
			f(radius), f(radius), f(center), f(center-radius))
	}

	endAngle := startAngle + sweep
	startX := center + radius*cosDeg(startAngle+startAngleOffset)
	startY := center + radius*sinDeg(startAngle+startAngleOffset)
	endX := center + radius*cosDeg(endAngle+startAngleOffset)
	endY := center + radius*sinDeg(endAngle+startAngleOffset)

	largeArc := 0
	if sweep > 180 {
		largeArc = 1
	}
	return fmt.Sprintf("M %s %s L %s %s A %s %s 0 %d 1 %s %s Z",
		f(center), f(center),
		f(startX), f(startY),
		f(radius), f(radius), largeArc, f(endX), f(endY))
}

func fullCircle(sweep float64) bool {
	return math.Abs(sweep-360) < 1e-9
}

func cosDeg(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }
func sinDeg(deg float64) float64 { return math.Sin(deg * math.Pi / 180) }

// f trims float noise out of path strings.
func f(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
