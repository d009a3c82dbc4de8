package mapping

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/gogpu/noise"
	"github.com/gogpu/noise/kernel"
)

func perlinGraph(t *testing.T, cached bool) noise.Module {
	t.Helper()
	p := noise.Must(noise.NewPerlin(kernel.New(7)))
	p.Octaves = 3
	var src noise.Module = p
	if cached {
		src = noise.Must(noise.NewCache(p))
	}
	turb := noise.Must(noise.NewTurbulence(src, kernel.New(8)))
	turb.Power = 0.1
	return noise.Must(noise.NewAdd(turb, src))
}

// =============================================================================
// NoiseMap Tests
// =============================================================================

func TestNewNoiseMap_InvalidSize(t *testing.T) {
	for _, sz := range [][2]int{{0, 4}, {4, 0}, {-1, 3}} {
		if _, err := NewNoiseMap(sz[0], sz[1]); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewNoiseMap(%d, %d) error = %v, want ErrInvalidSize", sz[0], sz[1], err)
		}
	}
}

func TestNoiseMap_Border(t *testing.T) {
	m, err := NewNoiseMap(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	m.SetBorder(-2)
	m.Set(1, 1, 0.5)
	m.Set(5, 5, 9)

	tests := []struct {
		x, y int
		want float32
	}{
		{1, 1, 0.5},
		{0, 0, 0},
		{-1, 0, -2},
		{3, 1, -2},
		{0, 2, -2},
	}
	for _, tt := range tests {
		if got := m.At(tt.x, tt.y); got != tt.want {
			t.Errorf("At(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if got := m.Row(1)[1]; got != 0.5 {
		t.Errorf("Row(1)[1] = %v, want 0.5", got)
	}
}

func TestNoiseMap_Range(t *testing.T) {
	m, _ := NewNoiseMap(2, 2)
	copy(m.Values(), []float32{0.25, -0.5, float32(math.NaN()), 0.75})
	lo, hi := m.Range()
	if lo != -0.5 || hi != 0.75 {
		t.Errorf("Range() = %v, %v, want -0.5, 0.75", lo, hi)
	}
}

// =============================================================================
// Surface Tests
// =============================================================================

func TestSeamlessPlane_EdgesMatch(t *testing.T) {
	f := Field(noise.Source(perlinGraph(t, false)))
	s := SeamlessPlane(f, -1, 2, 4, 3)
	for _, v := range []float64{2, 2.7, 4.1} {
		left, right := s(-1, v), s(3, v)
		if math.Abs(left-right) > 1e-9 {
			t.Errorf("v=%g: left edge %v, right edge %v", v, left, right)
		}
	}
	for _, u := range []float64{-1, 0.3, 2.2} {
		bottom, top := s(u, 2), s(u, 5)
		if math.Abs(bottom-top) > 1e-9 {
			t.Errorf("u=%g: bottom edge %v, top edge %v", u, bottom, top)
		}
	}
}

func TestLatLonToXYZ(t *testing.T) {
	tests := []struct {
		lat, lon   float64
		wx, wy, wz float64
	}{
		{0, 0, 1, 0, 0},
		{90, 0, 0, 1, 0},
		{-90, 45, 0, -1, 0},
		{0, 90, 0, 0, 1},
		{0, 180, -1, 0, 0},
	}
	for _, tt := range tests {
		x, y, z := LatLonToXYZ(tt.lat, tt.lon)
		if math.Abs(x-tt.wx) > 1e-12 || math.Abs(y-tt.wy) > 1e-12 || math.Abs(z-tt.wz) > 1e-12 {
			t.Errorf("LatLonToXYZ(%g, %g) = (%g, %g, %g), want (%g, %g, %g)",
				tt.lat, tt.lon, x, y, z, tt.wx, tt.wy, tt.wz)
		}
	}
}

func TestCylinder_Wraps(t *testing.T) {
	s := Cylinder(Field(noise.Source(perlinGraph(t, false))))
	if a, b := s(-180, 0.4), s(180, 0.4); math.Abs(a-b) > 1e-9 {
		t.Errorf("cylinder at -180 = %v, at 180 = %v", a, b)
	}
}

// =============================================================================
// Builder Tests
// =============================================================================

func TestPlaneBuilder_MatchesSequential(t *testing.T) {
	src := perlinGraph(t, false)
	b := NewPlaneBuilder(src, 37, 23)
	b.SetBounds(-2, 2, 1, 3)
	b.Workers, b.BandHeight = 4, 3

	m, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for y := range 23 {
		for x := range 37 {
			u := -2 + float64(x)*4/37
			v := 1 + float64(y)*2/23
			want := float32(noise.Evaluate(src, u, 0, v))
			if got := m.At(x, y); got != want {
				t.Fatalf("At(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestBuilders_CachedGraphIsWorkerLocal(t *testing.T) {
	// Run with -race: a shared Cache slot would be written concurrently.
	plain, cached := perlinGraph(t, false), perlinGraph(t, true)

	build := func(src noise.Module) *NoiseMap {
		b := NewSphereBuilder(src, 64, 32)
		b.Workers, b.BandHeight = 8, 1
		m, err := b.Build(context.Background())
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		return m
	}
	want, got := build(plain), build(cached)
	for i, v := range want.Values() {
		if got.Values()[i] != v {
			t.Fatalf("value %d = %v with Cache, want %v", i, got.Values()[i], v)
		}
	}
}

func TestBuilders_Compiled(t *testing.T) {
	src := perlinGraph(t, true)
	builders := []struct {
		name string
		make func(compiled bool) Builder
	}{
		{"plane", func(c bool) Builder {
			b := NewPlaneBuilder(src, 16, 16)
			b.Seamless, b.Compiled = true, c
			return b
		}},
		{"cylinder", func(c bool) Builder {
			b := NewCylinderBuilder(src, 16, 8)
			b.Compiled = c
			return b
		}},
		{"sphere", func(c bool) Builder {
			b := NewSphereBuilder(src, 16, 8)
			b.Compiled = c
			return b
		}},
	}
	for _, tt := range builders {
		t.Run(tt.name, func(t *testing.T) {
			want, err := tt.make(false).Build(context.Background())
			if err != nil {
				t.Fatalf("interpreted Build: %v", err)
			}
			got, err := tt.make(true).Build(context.Background())
			if err != nil {
				t.Fatalf("compiled Build: %v", err)
			}
			for i, v := range want.Values() {
				if d := math.Abs(float64(got.Values()[i] - v)); d > 1e-4 {
					t.Fatalf("value %d: compiled %v, interpreted %v", i, got.Values()[i], v)
				}
			}
		})
	}
}

func TestBuilders_Errors(t *testing.T) {
	src := noise.NewConstant(1)

	noSource := NewPlaneBuilder(nil, 4, 4)
	badSize := NewSphereBuilder(src, 0, 4)
	badPlane := NewPlaneBuilder(src, 4, 4)
	badPlane.SetBounds(1, 1, 0, 1)
	badCylinder := NewCylinderBuilder(src, 4, 4)
	badCylinder.LowerHeight = 2
	badSphere := NewSphereBuilder(src, 4, 4)
	badSphere.West, badSphere.East = 10, -10

	tests := []struct {
		name string
		b    Builder
		want error
	}{
		{"no source", noSource, ErrNoSource},
		{"bad size", badSize, ErrInvalidSize},
		{"plane bounds", badPlane, ErrInvalidBounds},
		{"cylinder bounds", badCylinder, ErrInvalidBounds},
		{"sphere bounds", badSphere, ErrInvalidBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.b.Build(context.Background())
			if !errors.Is(err, tt.want) {
				t.Errorf("Build error = %v, want %v", err, tt.want)
			}
			if m != nil {
				t.Error("Build returned a map alongside the error")
			}
		})
	}
}

func TestBuild_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := NewPlaneBuilder(perlinGraph(t, false), 64, 64)
	if _, err := b.Build(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Build error = %v, want context.Canceled", err)
	}
}
