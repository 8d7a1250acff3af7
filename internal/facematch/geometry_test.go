package facematch

import (
	"math"
	"testing"
)

func TestXYWHToCorners(t *testing.T) {
	tests := []struct {
		name     string
		box      []float64
		expected []float64
	}{
		{
			name:     "pixel box",
			box:      []float64{100, 150, 80, 100},
			expected: []float64{100, 150, 180, 250},
		},
		{
			name:     "relative box",
			box:      []float64{0.1, 0.2, 0.3, 0.4},
			expected: []float64{0.1, 0.2, 0.4, 0.6},
		},
		{
			name:     "short box",
			box:      []float64{1, 2, 3},
			expected: nil,
		},
		{
			name:     "empty box",
			box:      nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := XYWHToCorners(tt.box)
			assertBox(t, result, tt.expected)
		})
	}
}

func TestCornersToXYWH(t *testing.T) {
	result := CornersToXYWH([]float64{100, 150, 180, 250})
	assertBox(t, result, []float64{100, 150, 80, 100})

	if CornersToXYWH([]float64{1, 2}) != nil {
		t.Error("expected nil for invalid box")
	}
}

func TestCornersRoundTrip(t *testing.T) {
	box := []float64{300, 140, 90, 110}
	assertBox(t, CornersToXYWH(XYWHToCorners(box)), box)
}

func assertBox(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("box length = %d, want %d (got %v)", len(got), len(want), got)
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > 0.0001 {
			t.Errorf("box[%d] = %v, want %v (full result: %v)", i, got[i], want[i], got)
		}
	}
}
