package chart

import (
	"math"
	"strings"
	"testing"

	"ledger/internal/report"
)

func TestPieSlicesAnglesSumTo360(t *testing.T) {
	cases := [][]report.Group{
		{{Name: "A", Total: 50}, {Name: "B", Total: 30}, {Name: "C", Total: 20}},
		{{Name: "A", Total: 1}, {Name: "B", Total: 1}, {Name: "C", Total: 1}},
		{{Name: "Only", Total: 42}},
		{{Name: "A", Total: 0.1}, {Name: "B", Total: 99.9}},
	}
	for i, groups := range cases {
		var total float64
		for _, g := range groups {
			total += g.Total
		}
		slices := PieSlices(groups, total)
		if len(slices) != len(groups) {
			t.Fatalf("case %d: expected %d slices, got %d", i, len(groups), len(slices))
		}
		var sum float64
		for _, s := range slices {
			sum += s.SweepAngle
		}
		if math.Abs(sum-360) > 1e-9 {
			t.Fatalf("case %d: sweep angles sum to %v, want 360", i, sum)
		}
	}
}

func TestPieSlicesConsecutive(t *testing.T) {
	groups := []report.Group{{Name: "A", Total: 75}, {Name: "B", Total: 25}}
	slices := PieSlices(groups, 100)
	if slices[0].StartAngle != 0 {
		t.Fatalf("first slice should start at 0, got %v", slices[0].StartAngle)
	}
	if math.Abs(slices[1].StartAngle-slices[0].SweepAngle) > 1e-9 {
		t.Fatalf("second slice should start where the first ends: %v vs %v",
			slices[1].StartAngle, slices[0].SweepAngle)
	}
	if math.Abs(slices[0].SweepAngle-270) > 1e-9 {
		t.Fatalf("75%% share should sweep 270 degrees, got %v", slices[0].SweepAngle)
	}
}

func TestPieSingleSliceIsFullCircle(t *testing.T) {
	slices := PieSlices([]report.Group{{Name: "Everything", Total: 10}}, 10)
	if len(slices) != 1 {
		t.Fatalf("expected 1 slice, got %d", len(slices))
	}
	s := slices[0]
	if math.Abs(s.SweepAngle-360) > 1e-9 {
		t.Fatalf("sweep = %v, want 360", s.SweepAngle)
	}
	// Full circle renders as two half arcs, not a degenerate single arc.
	if strings.Count(s.Path, "A ") != 2 {
		t.Fatalf("full-circle path should contain two arcs: %q", s.Path)
	}
	if strings.Contains(s.Path, "L ") {
		t.Fatalf("full-circle path should not contain a line segment: %q", s.Path)
	}
}

func TestPieLabelVisibilityThreshold(t *testing.T) {
	groups := []report.Group{
		{Name: "Big", Total: 96},
		{Name: "Tiny", Total: 4},
	}
	slices := PieSlices(groups, 100)
	if !slices[0].ShowLabel {
		t.Fatal("96% slice should carry a label")
	}
	if slices[1].ShowLabel {
		t.Fatal("4% slice should suppress its label")
	}
}

func TestPieLabelAnchorInsideRadius(t *testing.T) {
	slices := PieSlices([]report.Group{{Name: "A", Total: 60}, {Name: "B", Total: 40}}, 100)
	center := float64(PieSize) / 2
	radius := center - pieMargin
	for _, s := range slices {
		dx := s.LabelX - center
		dy := s.LabelY - center
		dist := math.Hypot(dx, dy)
		if math.Abs(dist-radius*labelRadiusFactor) > 1e-6 {
			t.Fatalf("label anchor for %q at distance %v, want %v", s.Name, dist, radius*labelRadiusFactor)
		}
	}
}

func TestPieSlicesEmptyOrZeroTotal(t *testing.T) {
	if got := PieSlices(nil, 0); got != nil {
		t.Fatalf("zero total should yield nil, got %v", got)
	}
	if got := PieSlices([]report.Group{{Name: "A", Total: 0}}, 0); got != nil {
		t.Fatalf("zero total should yield nil, got %v", got)
	}
}
