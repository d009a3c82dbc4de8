package interp

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-12 }

func TestLinear(t *testing.T) {
	tests := []struct {
		a, b, t, want float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.25, 2.5},
		{-1, 1, 0.5, 0},
		{2, 4, 1.5, 5},
	}
	for _, tt := range tests {
		if got := Linear(tt.a, tt.b, tt.t); !near(got, tt.want) {
			t.Errorf("Linear(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}

func TestCubic(t *testing.T) {
	if got := Cubic(0, 1, 2, 3, 0); got != 1 {
		t.Errorf("Cubic at t=0 = %v, want n1", got)
	}
	if got := Cubic(0, 1, 2, 3, 1); !near(got, 2) {
		t.Errorf("Cubic at t=1 = %v, want n2", got)
	}
	tests := []struct {
		t, want float64
	}{
		{0.1, 1.172},
		{0.5, 1.5},
		{0.9, 1.828},
	}
	for _, tt := range tests {
		if got := Cubic(0, 1, 2, 3, tt.t); !near(got, tt.want) {
			t.Errorf("Cubic(0, 1, 2, 3, %v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestSCurves(t *testing.T) {
	curves := []struct {
		name string
		fn   func(float64) float64
	}{
		{"SCurve3", SCurve3},
		{"SCurve5", SCurve5},
	}
	for _, c := range curves {
		t.Run(c.name, func(t *testing.T) {
			if c.fn(0) != 0 || c.fn(1) != 1 {
				t.Errorf("%s(0), %s(1) = %v, %v, want 0, 1", c.name, c.name, c.fn(0), c.fn(1))
			}
			if !near(c.fn(0.5), 0.5) {
				t.Errorf("%s(0.5) = %v, want 0.5", c.name, c.fn(0.5))
			}
			prev := 0.0
			for i := 1; i <= 100; i++ {
				v := c.fn(float64(i) / 100)
				if v < prev {
					t.Fatalf("%s decreases at %v", c.name, float64(i)/100)
				}
				prev = v
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-2, -1, 1) != -1 || Clamp(2, -1, 1) != 1 || Clamp(0.5, -1, 1) != 0.5 {
		t.Error("Clamp does not restrict to [lo, hi]")
	}
	if ClampInt(-2, 0, 3) != 0 || ClampInt(9, 0, 3) != 3 || ClampInt(2, 0, 3) != 2 {
		t.Error("ClampInt does not restrict to [lo, hi]")
	}
}
