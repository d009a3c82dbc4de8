// Package preset holds ready-made noise graphs used by the noisegen
// command.
package preset

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/noise"
	"github.com/gogpu/noise/kernel"
)

// ErrUnknown is returned for a preset name that does not exist.
var ErrUnknown = errors.New("preset: unknown preset")

type builder func(seed int32) (noise.Module, error)

var presets = map[string]builder{
	"terrain": Terrain,
	"marble":  Marble,
	"cells":   Cells,
}

// Names returns the preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Build returns the named preset built from seed.
func Build(name string, seed int32) (noise.Module, error) {
	b, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknown, name, Names())
	}
	return b(seed)
}

// Terrain mixes flat lowlands and ridged mountains, chosen by a low
// frequency Perlin control and roughened by turbulence.
func Terrain(seed int32) (noise.Module, error) {
	mountains, err := noise.NewRidgedMulti(kernel.New(seed))
	if err != nil {
		return nil, err
	}
	mountains.SetName("mountains")

	billow, err := noise.NewBillow(kernel.New(seed + 1))
	if err != nil {
		return nil, err
	}
	billow.Frequency = 2
	flat, err := noise.NewScaleBias(billow, 0.125, -0.75)
	if err != nil {
		return nil, err
	}
	flat.SetName("lowlands")

	control, err := noise.NewPerlin(kernel.New(seed + 2))
	if err != nil {
		return nil, err
	}
	control.Frequency, control.Persistence = 0.5, 0.25
	control.SetName("terrain_type")

	sel, err := noise.NewSelector(flat, mountains, control)
	if err != nil {
		return nil, err
	}
	sel.SetBounds(0, 1000)
	sel.SetEdgeFalloff(0.125)

	turb, err := noise.NewTurbulence(sel, kernel.New(seed+3))
	if err != nil {
		return nil, err
	}
	turb.Frequency, turb.Power = 4, 0.125
	turb.SetName("terrain")
	return turb, nil
}

// Marble bends tilted cylinder shells with turbulence and sharpens the
// veins with a curve.
func Marble(seed int32) (noise.Module, error) {
	shells := noise.NewCylinder()
	shells.Frequency = 3

	tilt, err := noise.NewRotatePoint(shells)
	if err != nil {
		return nil, err
	}
	tilt.SetAngles(0, 0, 35)

	turb, err := noise.NewTurbulence(tilt, kernel.New(seed))
	if err != nil {
		return nil, err
	}
	turb.Frequency, turb.Power, turb.Roughness = 2, 0.35, 4

	veins, err := noise.NewCurve(turb)
	if err != nil {
		return nil, err
	}
	for _, p := range [][2]float64{{-1, -1}, {-0.25, -0.6}, {0.5, 0.2}, {0.85, 0.9}, {1, 1}} {
		if err := veins.AddControlPoint(p[0], p[1]); err != nil {
			return nil, err
		}
	}
	veins.SetName("marble")
	return veins, nil
}

// Cells is a Voronoi diagram whose cells are terraced and speckled with
// billow detail.
func Cells(seed int32) (noise.Module, error) {
	k := kernel.New(seed)
	cells, err := noise.NewVoronoi(k)
	if err != nil {
		return nil, err
	}
	cells.Frequency, cells.Displacement, cells.EnableDistance = 2, 0.5, true

	steps, err := noise.NewTerrace(cells)
	if err != nil {
		return nil, err
	}
	steps.MakeControlPoints(6)
	steps.SetInverted(true)

	detail, err := noise.NewBillow(k)
	if err != nil {
		return nil, err
	}
	detail.Frequency, detail.Octaves = 16, 3
	speckle, err := noise.NewScaleBias(detail, 0.1, 0)
	if err != nil {
		return nil, err
	}

	sum, err := noise.NewAdd(steps, speckle)
	if err != nil {
		return nil, err
	}
	out, err := noise.NewClamp(sum)
	if err != nil {
		return nil, err
	}
	out.SetBounds(-1, 1)
	out.SetName("cells")
	return out, nil
}
