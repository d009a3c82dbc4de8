package persist

import (
	"fmt"
	"math"

	"github.com/gogpu/noise"
	"github.com/gogpu/noise/kernel"
)

// encodeGraph writes nodes, which are in noise.Walk order so every source
// precedes its users and the root is last.
func encodeGraph(e *encoder, nodes []noise.Module) {
	index := make(map[noise.Module]int, len(nodes))
	kernels := make(map[*kernel.Kernel]int)
	var seeds []int32
	for _, m := range nodes {
		if k := noise.KernelOf(m); k != nil {
			if _, ok := kernels[k]; !ok {
				kernels[k] = len(seeds)
				seeds = append(seeds, k.Seed())
			}
		}
	}

	e.uvarint(uint64(len(seeds)))
	for _, s := range seeds {
		e.varint(int64(s))
	}

	e.uvarint(uint64(len(nodes)))
	for i, m := range nodes {
		e.string(m.Kind().String())
		e.string(m.Name())
		for s := range m.SourceCount() {
			e.uvarint(uint64(index[m.Source(s)]))
		}
		encodeParams(e, m, kernels)
		index[m] = i
	}
	e.uvarint(uint64(len(nodes) - 1))
}

func encodeParams(e *encoder, m noise.Module, kernels map[*kernel.Kernel]int) {
	switch v := m.(type) {
	case *noise.Constant:
		e.float(v.Value)
	case *noise.Clamp:
		lo, hi := v.Bounds()
		e.float(lo)
		e.float(hi)
	case *noise.ScaleBias:
		e.float(v.Scale)
		e.float(v.Bias)
	case *noise.Curve:
		points := v.ControlPoints()
		e.uvarint(uint64(len(points)))
		for _, p := range points {
			e.float(p.In)
			e.float(p.Out)
		}
	case *noise.Terrace:
		e.bool(v.IsInverted())
		points := v.ControlPoints()
		e.uvarint(uint64(len(points)))
		for _, p := range points {
			e.float(p)
		}
	case *noise.Selector:
		lo, hi := v.Bounds()
		e.float(lo)
		e.float(hi)
		e.float(v.EdgeFalloff())
	case *noise.Cylinder:
		e.float(v.Frequency)
	case *noise.Sphere:
		e.float(v.Frequency)
	case *noise.Perlin:
		e.uvarint(uint64(kernels[v.Kernel()]))
		e.float(v.Frequency)
		e.float(v.Lacunarity)
		e.float(v.Persistence)
		e.varint(int64(v.Octaves))
	case *noise.Billow:
		e.uvarint(uint64(kernels[v.Kernel()]))
		e.float(v.Frequency)
		e.float(v.Lacunarity)
		e.float(v.Persistence)
		e.varint(int64(v.Octaves))
	case *noise.RidgedMulti:
		e.uvarint(uint64(kernels[v.Kernel()]))
		e.float(v.Frequency)
		e.float(v.Lacunarity)
		e.varint(int64(v.Octaves))
	case *noise.Voronoi:
		e.uvarint(uint64(kernels[v.Kernel()]))
		e.float(v.Frequency)
		e.float(v.Displacement)
		e.bool(v.EnableDistance)
	case *noise.ScalePoint:
		e.float(v.X)
		e.float(v.Y)
		e.float(v.Z)
	case *noise.TranslatePoint:
		e.float(v.X)
		e.float(v.Y)
		e.float(v.Z)
	case *noise.RotatePoint:
		x, y, z := v.Angles()
		e.float(x)
		e.float(y)
		e.float(z)
	case *noise.Line:
		e.float(v.Start.X)
		e.float(v.Start.Y)
		e.float(v.Start.Z)
		e.float(v.End.X)
		e.float(v.End.Y)
		e.float(v.End.Z)
		e.bool(v.Attenuate)
	case *noise.Turbulence:
		e.uvarint(uint64(kernels[v.Kernel()]))
		e.float(v.Frequency)
		e.float(v.Power)
		e.varint(int64(v.Roughness))
	case *noise.Add, *noise.Multiply, *noise.Min, *noise.Max, *noise.Power,
		*noise.Abs, *noise.Invert, *noise.Blend, *noise.Cache,
		*noise.Checkerboard, *noise.Displace:
		// No parameters.
	default:
		if e.err == nil {
			e.err = fmt.Errorf("%w: cannot save %T", ErrInvalidArgument, m)
		}
	}
}

// kernelTable resolves kernel references of a stream. Kernels are built
// on first reference, once per distinct seed.
type kernelTable struct {
	seeds []int32
	built map[int32]*kernel.Kernel
}

// get returns the kernel for entry idx.
func (kt *kernelTable) get(idx uint64) (*kernel.Kernel, error) {
	if idx >= uint64(len(kt.seeds)) {
		return nil, fmt.Errorf("%w: kernel %d of %d", ErrBadReference, idx, len(kt.seeds))
	}
	seed := kt.seeds[idx]
	k, ok := kt.built[seed]
	if !ok {
		k = kernel.New(seed)
		kt.built[seed] = k
	}
	return k, nil
}

// decodeGraph reads a graph and returns its root and node count.
func decodeGraph(d *decoder) (noise.Module, int, error) {
	nk := d.count(maxKernels, "kernel")
	if d.err != nil {
		return nil, 0, d.err
	}
	kernels := &kernelTable{
		seeds: make([]int32, 0, nk),
		built: make(map[int32]*kernel.Kernel),
	}
	for range nk {
		seed := d.varint()
		if d.err != nil {
			return nil, 0, d.err
		}
		if seed < math.MinInt32 || seed > math.MaxInt32 {
			return nil, 0, fmt.Errorf("%w: kernel seed %d out of range", ErrCorrupt, seed)
		}
		kernels.seeds = append(kernels.seeds, int32(seed))
	}

	nn := d.count(maxNodes, "node")
	if d.err != nil {
		return nil, 0, d.err
	}
	if nk > nn {
		return nil, 0, fmt.Errorf("%w: %d kernels for %d nodes", ErrCorrupt, nk, nn)
	}
	nodes := make([]noise.Module, 0, nn)
	for i := range nn {
		tag := d.string()
		name := d.string()
		if d.err != nil {
			return nil, 0, d.err
		}
		kind, ok := noise.ParseKind(tag)
		if !ok {
			return nil, 0, fmt.Errorf("%w: %q at node %d", ErrUnknownTag, tag, i)
		}
		sources := make([]noise.Module, kind.Arity())
		for s := range sources {
			idx := d.uvarint()
			if d.err != nil {
				return nil, 0, d.err
			}
			if idx >= uint64(len(nodes)) {
				return nil, 0, fmt.Errorf("%w: node %d source %d refers to %d", ErrBadReference, i, s, idx)
			}
			sources[s] = nodes[idx]
		}
		m, err := decodeModule(d, kind, sources, kernels)
		if err != nil {
			return nil, 0, fmt.Errorf("persist: node %d (%s): %w", i, kind, err)
		}
		m.SetName(name)
		nodes = append(nodes, m)
	}

	root := d.uvarint()
	if d.err != nil {
		return nil, 0, d.err
	}
	if root >= uint64(len(nodes)) {
		return nil, 0, fmt.Errorf("%w: root %d of %d nodes", ErrBadReference, root, len(nodes))
	}
	return nodes[root], len(nodes), nil
}

// kernelRef reads a kernel index.
func kernelRef(d *decoder, kernels *kernelTable) (*kernel.Kernel, error) {
	idx := d.uvarint()
	if d.err != nil {
		return nil, d.err
	}
	return kernels.get(idx)
}

func decodeModule(d *decoder, kind noise.Kind, src []noise.Module, kernels *kernelTable) (noise.Module, error) {
	var (
		m   noise.Module
		err error
	)
	switch kind {
	case noise.KindConstant:
		m = noise.NewConstant(d.float())
	case noise.KindAdd:
		m, err = noise.NewAdd(src[0], src[1])
	case noise.KindMultiply:
		m, err = noise.NewMultiply(src[0], src[1])
	case noise.KindMin:
		m, err = noise.NewMin(src[0], src[1])
	case noise.KindMax:
		m, err = noise.NewMax(src[0], src[1])
	case noise.KindPower:
		m, err = noise.NewPower(src[0], src[1])
	case noise.KindAbs:
		m, err = noise.NewAbs(src[0])
	case noise.KindInvert:
		m, err = noise.NewInvert(src[0])
	case noise.KindClamp:
		var c *noise.Clamp
		if c, err = noise.NewClamp(src[0]); err == nil {
			c.SetBounds(d.float(), d.float())
			m = c
		}
	case noise.KindScaleBias:
		m, err = noise.NewScaleBias(src[0], d.float(), d.float())
	case noise.KindCurve:
		var c *noise.Curve
		if c, err = noise.NewCurve(src[0]); err == nil {
			n := d.count(maxPoints, "control point")
			for range n {
				if err = c.AddControlPoint(d.float(), d.float()); err != nil {
					break
				}
			}
			m = c
		}
	case noise.KindTerrace:
		var t *noise.Terrace
		if t, err = noise.NewTerrace(src[0]); err == nil {
			t.SetInverted(d.bool())
			n := d.count(maxPoints, "control point")
			for range n {
				if err = t.AddControlPoint(d.float()); err != nil {
					break
				}
			}
			m = t
		}
	case noise.KindSelector:
		var s *noise.Selector
		if s, err = noise.NewSelector(src[0], src[1], src[2]); err == nil {
			s.SetBounds(d.float(), d.float())
			s.SetEdgeFalloff(d.float())
			m = s
		}
	case noise.KindBlend:
		m, err = noise.NewBlend(src[0], src[1], src[2])
	case noise.KindCache:
		m, err = noise.NewCache(src[0])
	case noise.KindCheckerboard:
		m = noise.NewCheckerboard()
	case noise.KindCylinder:
		c := noise.NewCylinder()
		c.Frequency = d.float()
		m = c
	case noise.KindSphere:
		s := noise.NewSphere()
		s.Frequency = d.float()
		m = s
	case noise.KindPerlin:
		var k *kernel.Kernel
		if k, err = kernelRef(d, kernels); err == nil {
			p := noise.Must(noise.NewPerlin(k))
			p.Frequency, p.Lacunarity, p.Persistence = d.float(), d.float(), d.float()
			p.Octaves = int(d.varint())
			m = p
		}
	case noise.KindBillow:
		var k *kernel.Kernel
		if k, err = kernelRef(d, kernels); err == nil {
			b := noise.Must(noise.NewBillow(k))
			b.Frequency, b.Lacunarity, b.Persistence = d.float(), d.float(), d.float()
			b.Octaves = int(d.varint())
			m = b
		}
	case noise.KindRidgedMulti:
		var k *kernel.Kernel
		if k, err = kernelRef(d, kernels); err == nil {
			r := noise.Must(noise.NewRidgedMulti(k))
			r.Frequency, r.Lacunarity = d.float(), d.float()
			r.Octaves = int(d.varint())
			m = r
		}
	case noise.KindVoronoi:
		var k *kernel.Kernel
		if k, err = kernelRef(d, kernels); err == nil {
			v := noise.Must(noise.NewVoronoi(k))
			v.Frequency, v.Displacement = d.float(), d.float()
			v.EnableDistance = d.bool()
			m = v
		}
	case noise.KindScalePoint:
		var s *noise.ScalePoint
		if s, err = noise.NewScalePoint(src[0]); err == nil {
			s.X, s.Y, s.Z = d.float(), d.float(), d.float()
			m = s
		}
	case noise.KindTranslatePoint:
		var t *noise.TranslatePoint
		if t, err = noise.NewTranslatePoint(src[0]); err == nil {
			t.X, t.Y, t.Z = d.float(), d.float(), d.float()
			m = t
		}
	case noise.KindRotatePoint:
		var r *noise.RotatePoint
		if r, err = noise.NewRotatePoint(src[0]); err == nil {
			r.SetAngles(d.float(), d.float(), d.float())
			m = r
		}
	case noise.KindDisplace:
		m, err = noise.NewDisplace(src[0], src[1], src[2], src[3])
	case noise.KindLine:
		var l *noise.Line
		if l, err = noise.NewLine(src[0]); err == nil {
			l.Start = kernel.Vec3{X: d.float(), Y: d.float(), Z: d.float()}
			l.End = kernel.Vec3{X: d.float(), Y: d.float(), Z: d.float()}
			l.Attenuate = d.bool()
			m = l
		}
	case noise.KindTurbulence:
		var k *kernel.Kernel
		if k, err = kernelRef(d, kernels); err == nil {
			var t *noise.Turbulence
			if t, err = noise.NewTurbulence(src[0], k); err == nil {
				t.Frequency, t.Power = d.float(), d.float()
				t.Roughness = int(d.varint())
				m = t
			}
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTag, kind)
	}
	if err != nil {
		return nil, err
	}
	if d.err != nil {
		return nil, d.err
	}
	return m, nil
}
