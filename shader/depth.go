package shader

import (
	"fmt"

	"github.com/gogpu/noise"
)

// stackDepth is the peak number of entries a module pushes above the
// stack heights it was entered with.
type stackDepth struct {
	coord  int
	result int
}

// depthPass computes the exact stack bounds of a graph in one structural
// pass, memoized per module so shared sources are measured once.
type depthPass struct {
	memo map[noise.Module]stackDepth
}

func newDepthPass() *depthPass {
	return &depthPass{memo: make(map[noise.Module]stackDepth)}
}

// bounds returns the coordinate and result stack sizes needed to run the
// graph rooted at root. The coordinate stack holds the input coordinate
// before any instruction runs.
func (d *depthPass) bounds(root noise.Module) (coord, result int, err error) {
	sd, err := d.measure(root)
	if err != nil {
		return 0, 0, err
	}
	return 1 + sd.coord, sd.result, nil
}

func (d *depthPass) measure(m noise.Module) (stackDepth, error) {
	if sd, ok := d.memo[m]; ok {
		return sd, nil
	}

	srcs := make([]stackDepth, m.SourceCount())
	for i := range srcs {
		sd, err := d.measure(m.Source(i))
		if err != nil {
			return stackDepth{}, err
		}
		srcs[i] = sd
	}

	var sd stackDepth
	switch m.Kind() {
	case noise.KindConstant, noise.KindCheckerboard, noise.KindCylinder, noise.KindSphere,
		noise.KindPerlin, noise.KindBillow, noise.KindRidgedMulti, noise.KindVoronoi:
		sd = stackDepth{coord: 0, result: 1}

	case noise.KindAdd, noise.KindMultiply, noise.KindMin, noise.KindMax, noise.KindPower,
		noise.KindSelector, noise.KindBlend:
		// Source i runs with i earlier results on the stack.
		for i, s := range srcs {
			sd.coord = max(sd.coord, s.coord)
			sd.result = max(sd.result, i+s.result)
		}

	case noise.KindAbs, noise.KindInvert, noise.KindClamp, noise.KindScaleBias,
		noise.KindCurve, noise.KindTerrace, noise.KindCache:
		sd = srcs[0]

	case noise.KindScalePoint, noise.KindTranslatePoint, noise.KindRotatePoint,
		noise.KindLine, noise.KindTurbulence:
		sd = stackDepth{coord: 1 + srcs[0].coord, result: srcs[0].result}

	case noise.KindDisplace:
		// Displacements run at the entry coordinate, stacking up to three
		// results; they are consumed before the source runs one coordinate
		// deeper.
		for i, s := range srcs[1:] {
			sd.coord = max(sd.coord, s.coord)
			sd.result = max(sd.result, i+s.result)
		}
		sd.coord = max(sd.coord, 1+srcs[0].coord)
		sd.result = max(sd.result, srcs[0].result)

	default:
		return stackDepth{}, fmt.Errorf("%w: %s", ErrUnsupportedModule, m.Kind())
	}

	d.memo[m] = sd
	return sd, nil
}
