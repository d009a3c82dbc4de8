package mapping

import (
	"context"
	"fmt"

	"github.com/gogpu/noise"
	"github.com/gogpu/noise/internal/parallel"
	"github.com/gogpu/noise/shader"
)

// Config holds the settings shared by every builder.
type Config struct {
	// Source is the root of the graph to sample.
	Source noise.Module

	// Width and Height are the map dimensions in values.
	Width, Height int

	// Workers is the number of goroutines used. Zero means GOMAXPROCS.
	Workers int

	// BandHeight is the number of rows a worker takes at a time. Zero
	// means parallel.DefaultBandHeight.
	BandHeight int

	// Compiled evaluates the graph through its compiled instruction
	// stream instead of the interpreter.
	Compiled bool
}

func (c *Config) validate() error {
	if c.Source == nil {
		return ErrNoSource
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	return noise.Validate(c.Source)
}

// fields returns a function handing out the field a worker evaluates.
//
// A Cache slot must not be shared between goroutines, so a graph holding a
// Cache is cloned once per worker. Other graphs and compiled programs are
// read-only and shared.
func (c *Config) fields(workers int) (func(worker int) (Field, error), error) {
	if c.Compiled {
		res, err := shader.Compile(c.Source)
		if err != nil {
			return nil, err
		}
		prog := res.Program
		return func(int) (Field, error) { return prog.Execute, nil }, nil
	}
	if !noise.ContainsCache(c.Source) {
		f := Field(noise.Source(c.Source))
		return func(int) (Field, error) { return f, nil }, nil
	}
	local := make([]Field, workers)
	return func(worker int) (Field, error) {
		if local[worker] == nil {
			clone, err := noise.Clone(c.Source)
			if err != nil {
				return nil, err
			}
			local[worker] = noise.Source(clone)
		}
		return local[worker], nil
	}, nil
}

// build fills a Width x Height map. surface wraps the worker's field, u maps
// a column and v a row to its surface parameter.
func (c *Config) build(ctx context.Context, surface func(Field) Surface, u, v func(i int) float64) (*NoiseMap, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	m, err := NewNoiseMap(c.Width, c.Height)
	if err != nil {
		return nil, err
	}

	pool := parallel.NewWorkerPool(c.Workers)
	defer pool.Close()

	fieldFor, err := c.fields(pool.Workers())
	if err != nil {
		return nil, err
	}
	bands := parallel.SplitRows(c.Height, c.BandHeight)

	err = pool.Run(ctx, len(bands), func(worker, item int) error {
		f, err := fieldFor(worker)
		if err != nil {
			return err
		}
		s := surface(f)
		band := bands[item]
		for y := band.Start; y < band.End; y++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := m.Row(y)
			vy := v(y)
			for x := range row {
				row[x] = float32(s(u(x), vy))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	noise.Logger().Debug("mapping: built noise map",
		"width", c.Width, "height", c.Height,
		"bands", len(bands), "workers", pool.Workers(), "compiled", c.Compiled)
	return m, nil
}

// step returns the coordinate of index i for n samples over [lo, hi).
func step(lo, hi float64, n int) func(i int) float64 {
	d := (hi - lo) / float64(n)
	return func(i int) float64 { return lo + float64(i)*d }
}

// PlaneBuilder samples a rectangle of the y = 0 plane.
type PlaneBuilder struct {
	Config

	// LowerX, UpperX, LowerZ and UpperZ bound the sampled rectangle.
	LowerX, UpperX, LowerZ, UpperZ float64

	// Seamless blends the values near each edge with the values across
	// the rectangle so the map tiles.
	Seamless bool
}

// NewPlaneBuilder returns a builder for the unit square [0,1) x [0,1).
func NewPlaneBuilder(src noise.Module, width, height int) *PlaneBuilder {
	return &PlaneBuilder{
		Config: Config{Source: src, Width: width, Height: height},
		UpperX: 1,
		UpperZ: 1,
	}
}

// SetBounds sets the sampled rectangle.
func (b *PlaneBuilder) SetBounds(lowerX, upperX, lowerZ, upperZ float64) {
	b.LowerX, b.UpperX, b.LowerZ, b.UpperZ = lowerX, upperX, lowerZ, upperZ
}

// Build evaluates the map.
func (b *PlaneBuilder) Build(ctx context.Context) (*NoiseMap, error) {
	if b.LowerX >= b.UpperX || b.LowerZ >= b.UpperZ {
		return nil, fmt.Errorf("%w: x [%g, %g] z [%g, %g]", ErrInvalidBounds, b.LowerX, b.UpperX, b.LowerZ, b.UpperZ)
	}
	surface := Plane
	if b.Seamless {
		ex, ez := b.UpperX-b.LowerX, b.UpperZ-b.LowerZ
		surface = func(f Field) Surface { return SeamlessPlane(f, b.LowerX, b.LowerZ, ex, ez) }
	}
	return b.build(ctx, surface,
		step(b.LowerX, b.UpperX, b.Width),
		step(b.LowerZ, b.UpperZ, b.Height))
}

// CylinderBuilder samples the surface of the unit cylinder around the y
// axis. Columns run over the angle, rows over the height.
type CylinderBuilder struct {
	Config

	// LowerAngle and UpperAngle bound the angle, in degrees.
	LowerAngle, UpperAngle float64

	// LowerHeight and UpperHeight bound the height.
	LowerHeight, UpperHeight float64
}

// NewCylinderBuilder returns a builder for the full circumference between
// heights -1 and 1.
func NewCylinderBuilder(src noise.Module, width, height int) *CylinderBuilder {
	return &CylinderBuilder{
		Config:      Config{Source: src, Width: width, Height: height},
		LowerAngle:  -180,
		UpperAngle:  180,
		LowerHeight: -1,
		UpperHeight: 1,
	}
}

// Build evaluates the map.
func (b *CylinderBuilder) Build(ctx context.Context) (*NoiseMap, error) {
	if b.LowerAngle >= b.UpperAngle || b.LowerHeight >= b.UpperHeight {
		return nil, fmt.Errorf("%w: angle [%g, %g] height [%g, %g]",
			ErrInvalidBounds, b.LowerAngle, b.UpperAngle, b.LowerHeight, b.UpperHeight)
	}
	return b.build(ctx, Cylinder,
		step(b.LowerAngle, b.UpperAngle, b.Width),
		step(b.LowerHeight, b.UpperHeight, b.Height))
}

// SphereBuilder samples the surface of the unit sphere. Columns run over
// the longitude from west to east, rows over the latitude from south to
// north.
type SphereBuilder struct {
	Config

	// South and North bound the latitude, in degrees.
	South, North float64

	// West and East bound the longitude, in degrees.
	West, East float64
}

// NewSphereBuilder returns a builder for the whole sphere.
func NewSphereBuilder(src noise.Module, width, height int) *SphereBuilder {
	return &SphereBuilder{
		Config: Config{Source: src, Width: width, Height: height},
		South:  -90,
		North:  90,
		West:   -180,
		East:   180,
	}
}

// Build evaluates the map.
func (b *SphereBuilder) Build(ctx context.Context) (*NoiseMap, error) {
	if b.South >= b.North || b.West >= b.East {
		return nil, fmt.Errorf("%w: lat [%g, %g] lon [%g, %g]", ErrInvalidBounds, b.South, b.North, b.West, b.East)
	}
	return b.build(ctx, Sphere,
		step(b.West, b.East, b.Width),
		step(b.South, b.North, b.Height))
}

// Builder is implemented by every map builder.
type Builder interface {
	Build(ctx context.Context) (*NoiseMap, error)
}

var (
	_ Builder = (*PlaneBuilder)(nil)
	_ Builder = (*CylinderBuilder)(nil)
	_ Builder = (*SphereBuilder)(nil)
)
