package field

import (
	"math"
	"testing"
)

func TestRange(t *testing.T) {
	tests := []struct {
		name             string
		values           []float64
		wantMin, wantMax float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{4.5}, 4.5, 4.5},
		{"ascending", []float64{-2, 0, 7}, -2, 7},
		{"descending", []float64{7, 0, -2}, -2, 7},
		{"all equal", []float64{3, 3, 3}, 3, 3},
		{"negative only", []float64{-5, -1, -9}, -9, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max := Range(tt.values)
			if min != tt.wantMin || max != tt.wantMax {
				t.Errorf("Range() = (%g, %g), want (%g, %g)", min, max, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestSpacedValues(t *testing.T) {
	got := SpacedValues(0, 1, 3)
	want := []float64{0.25, 0.5, 0.75}
	if len(got) != len(want) {
		t.Fatalf("SpacedValues len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("SpacedValues[%d] = %g, want %g", i, got[i], want[i])
		}
	}

	// Values stay strictly inside the range and ascend.
	got = SpacedValues(-3, 9, 10)
	if !Ascending(got) {
		t.Error("SpacedValues not ascending")
	}
	if got[0] <= -3 || got[len(got)-1] >= 9 {
		t.Errorf("SpacedValues endpoints %g, %g not strictly interior", got[0], got[len(got)-1])
	}

	if SpacedValues(1, 1, 5) != nil {
		t.Error("degenerate range should return nil")
	}
	if SpacedValues(0, 1, 0) != nil {
		t.Error("zero count should return nil")
	}
}

func TestAscending(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   bool
	}{
		{"empty", nil, true},
		{"single", []float64{1}, true},
		{"sorted", []float64{1, 2, 2, 3}, true},
		{"unsorted", []float64{1, 3, 2}, false},
		{"nan", []float64{1, math.NaN(), 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ascending(tt.values); got != tt.want {
				t.Errorf("Ascending(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}
