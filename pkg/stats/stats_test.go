package stats

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name     string
		sorted   []float64
		p        int
		expected float64
	}{
		{"empty slice", nil, 50, 0},
		{"single element", []float64{42}, 50, 42},
		{"median of four", []float64{1, 2, 3, 4}, 50, 3},
		{"p100 clamps to last", []float64{1, 2, 3, 4}, 100, 4},
		{"p0 is first", []float64{1, 2, 3, 4}, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percentile(tt.sorted, tt.p); got != tt.expected {
				t.Errorf("Percentile(%v, %d) = %v, want %v", tt.sorted, tt.p, got, tt.expected)
			}
		})
	}
}

func TestQuantile(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

	tests := []struct {
		name     string
		q        float64
		expected float64
	}{
		{"lower tail", 0.025, 10},
		{"upper tail", 0.975, 100},
		{"median", 0.5, 60},
		{"clamped below", -1, 10},
		{"clamped above", 2, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quantile(sorted, tt.q); got != tt.expected {
				t.Errorf("Quantile(%v) = %v, want %v", tt.q, got, tt.expected)
			}
		})
	}

	if got := Quantile(nil, 0.5); got != 0 {
		t.Errorf("Quantile(nil) = %v, want 0", got)
	}
}

func TestNormalCDF(t *testing.T) {
	tests := []struct {
		z        float64
		expected float64
	}{
		{0, 0.5},
		{1.96, 0.975},
		{-1.96, 0.025},
		{3.5, 0.9998},
	}
	for _, tt := range tests {
		if got := NormalCDF(tt.z); math.Abs(got-tt.expected) > 0.001 {
			t.Errorf("NormalCDF(%v) = %v, want ~%v", tt.z, got, tt.expected)
		}
	}
}
