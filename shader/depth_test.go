package shader

import (
	"testing"

	"github.com/gogpu/noise"
)

func TestDepthPass_Bounds(t *testing.T) {
	c := noise.NewConstant(1)
	add := noise.Must(noise.NewAdd(c, c))
	scaled := noise.Must(noise.NewScalePoint(noise.Must(noise.NewTranslatePoint(noise.NewCheckerboard()))))

	tests := []struct {
		name       string
		root       noise.Module
		wantCoord  int
		wantResult int
	}{
		{"constant", c, 1, 1},
		{"add", add, 1, 2},
		{"nested add right", noise.Must(noise.NewAdd(c, add)), 1, 3},
		{"nested add left", noise.Must(noise.NewAdd(add, c)), 1, 2},
		{"two transforms", scaled, 3, 1},
		{"selector", noise.Must(noise.NewSelector(c, c, add)), 1, 4},
		{"displace", noise.Must(noise.NewDisplace(noise.NewCheckerboard(), add, c, c)), 2, 3},
		{"displace deep source", noise.Must(noise.NewDisplace(scaled, c, c, c)), 4, 3},
		{"cache", noise.Must(noise.NewCache(add)), 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coord, result, err := newDepthPass().bounds(tt.root)
			if err != nil {
				t.Fatalf("bounds: %v", err)
			}
			if coord != tt.wantCoord || result != tt.wantResult {
				t.Errorf("bounds = (%d, %d), want (%d, %d)", coord, result, tt.wantCoord, tt.wantResult)
			}

			res, err := Compile(tt.root)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			_, maxCoord, maxResult := res.Program.Trace(0.5, 0.5, 0.5)
			if maxCoord != coord || maxResult != result {
				t.Errorf("trace peaked at (%d, %d), bounds (%d, %d)", maxCoord, maxResult, coord, result)
			}
		})
	}
}
