package kdtree

import (
	"math"
	"testing"
)

func TestEuclideanDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{name: "same point", a: point(1, 2, 3), b: point(1, 2, 3), want: 0},
		{name: "3-4-5 triangle", a: point(0, 0), b: point(3, 4), want: 5},
		{name: "single axis", a: point(0, 0, 0), b: point(0, 0, 7), want: 7},
	}

	d := NewEuclideanDistance[[]float64]()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Distance(SliceAccessor, tt.a, tt.b, len(tt.a))
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Distance(%v, %v) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestEuclideanProjDistance(t *testing.T) {
	d := NewEuclideanDistance[[]float64]()
	got := d.ProjDistance(SliceAccessor, point(1, 5), point(4, 9), 0)
	if got != 3 {
		t.Errorf("ProjDistance axis 0 = %f, want 3", got)
	}
	got = d.ProjDistance(SliceAccessor, point(1, 5), point(4, 9), 1)
	if got != 4 {
		t.Errorf("ProjDistance axis 1 = %f, want 4", got)
	}
}

func TestManhattanDistance(t *testing.T) {
	d := NewManhattanDistance[[]float64]()
	got := d.Distance(SliceAccessor, point(1, 2), point(4, 6), 2)
	if got != 7 {
		t.Errorf("Distance = %f, want 7", got)
	}
}

func TestChebyshevDistance(t *testing.T) {
	d := NewChebyshevDistance[[]float64]()
	got := d.Distance(SliceAccessor, point(1, 2, 3), point(4, 9, 3), 3)
	if got != 7 {
		t.Errorf("Distance = %f, want 7", got)
	}
}
