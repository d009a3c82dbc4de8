// Package reconstruct emits Go source code that rebuilds a noise graph
// through the public constructors of package noise.
//
// The generated function declares one variable per distinct module, named
// after the module when it has a name, so shared sources stay shared.
// Kernels are declared once per distinct kernel.
package reconstruct

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/noise"
	"github.com/gogpu/noise/kernel"
)

// ErrInvalidArgument is returned for nil writers or graphs and for
// package or function names that are not Go identifiers.
var ErrInvalidArgument = errors.New("reconstruct: invalid argument")

// Options configure the emitted file.
type Options struct {
	// Package is the package clause of the file. Defaults to "main".
	Package string
	// Func is the name of the generated function. Defaults to "BuildNoise".
	Func string
	// Generator names the tool in the generated-code header. Defaults to
	// "reconstruct".
	Generator string
}

func (o Options) withDefaults() Options {
	if o.Package == "" {
		o.Package = "main"
	}
	if o.Func == "" {
		o.Func = "BuildNoise"
	}
	if o.Generator == "" {
		o.Generator = "reconstruct"
	}
	return o
}

// Emit writes a gofmt-formatted Go file to w holding a function
//
//	func <Func>() (noise.Module, error)
//
// that returns a graph equal to the one rooted at root.
func Emit(w io.Writer, root noise.Module, opts Options) error {
	if w == nil || root == nil {
		return ErrInvalidArgument
	}
	src, err := Source(root, opts)
	if err != nil {
		return err
	}
	_, err = w.Write(src)
	return err
}

// Source returns the formatted file Emit would write.
func Source(root noise.Module, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	if !token.IsIdentifier(opts.Package) || !token.IsIdentifier(opts.Func) {
		return nil, fmt.Errorf("%w: package %q, func %q", ErrInvalidArgument, opts.Package, opts.Func)
	}
	nodes, err := noise.Modules(root)
	if err != nil {
		return nil, err
	}

	g := newGen()
	for _, m := range nodes {
		if err := g.module(m); err != nil {
			return nil, err
		}
	}

	var file bytes.Buffer
	fmt.Fprintf(&file, "// Code generated by %s. DO NOT EDIT.\n\n", opts.Generator)
	fmt.Fprintf(&file, "package %s\n\n", opts.Package)
	file.WriteString("import (\n")
	if g.useMath {
		file.WriteString("\t\"math\"\n\n")
	}
	file.WriteString("\t\"github.com/gogpu/noise\"\n")
	if g.useKernel {
		file.WriteString("\t\"github.com/gogpu/noise/kernel\"\n")
	}
	file.WriteString(")\n\n")
	fmt.Fprintf(&file, "// %s rebuilds a noise graph of %d modules.\n", opts.Func, len(nodes))
	fmt.Fprintf(&file, "func %s() (noise.Module, error) {\n", opts.Func)
	file.WriteString(g.body.String())
	fmt.Fprintf(&file, "return %s, nil\n}\n", g.vars[root])

	out, err := format.Source(file.Bytes())
	if err != nil {
		return nil, fmt.Errorf("reconstruct: formatting generated code: %w", err)
	}
	noise.Logger().Debug("reconstruct: emitted graph", "modules", len(nodes), "bytes", len(out))
	return out, nil
}

// reserved identifiers generated code must not shadow.
var reserved = map[string]bool{
	"err": true, "noise": true, "kernel": true, "math": true,
}

type gen struct {
	body      strings.Builder
	namer     *noise.Namer
	taken     map[string]bool
	vars      map[noise.Module]string
	kernels   map[*kernel.Kernel]string
	useKernel bool
	useMath   bool
}

func newGen() *gen {
	return &gen{
		namer:   noise.NewNamer(),
		taken:   make(map[string]bool),
		vars:    make(map[noise.Module]string),
		kernels: make(map[*kernel.Kernel]string),
	}
}

// ident returns a unique Go identifier based on base.
func (g *gen) ident(base string) string {
	if token.IsKeyword(base) || reserved[base] {
		base += "_"
	}
	id := base
	for n := 2; g.taken[id]; n++ {
		id = base + strconv.Itoa(n)
	}
	g.taken[id] = true
	return id
}

func (g *gen) printf(format string, args ...any) {
	fmt.Fprintf(&g.body, format, args...)
}

func (g *gen) float(v float64) string {
	switch {
	case math.IsNaN(v):
		g.useMath = true
		return "math.NaN()"
	case math.IsInf(v, 1):
		g.useMath = true
		return "math.Inf(1)"
	case math.IsInf(v, -1):
		g.useMath = true
		return "math.Inf(-1)"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (g *gen) vec3(v kernel.Vec3) string {
	g.useKernel = true
	return fmt.Sprintf("kernel.Vec3{X: %s, Y: %s, Z: %s}", g.float(v.X), g.float(v.Y), g.float(v.Z))
}

func (g *gen) kernel(k *kernel.Kernel) string {
	if name, ok := g.kernels[k]; ok {
		return name
	}
	g.useKernel = true
	name := g.ident(fmt.Sprintf("kernel%d", len(g.kernels)))
	g.kernels[k] = name
	g.printf("%s := kernel.New(%d)\n", name, k.Seed())
	return name
}

// fallible declares v from a constructor returning (module, error).
func (g *gen) fallible(v, call string) {
	g.printf("%s, err := %s\nif err != nil {\nreturn nil, err\n}\n", v, call)
}

func (g *gen) check(call string) {
	g.printf("if err := %s; err != nil {\nreturn nil, err\n}\n", call)
}

func (g *gen) sources(m noise.Module) string {
	names := make([]string, m.SourceCount())
	for i := range names {
		names[i] = g.vars[m.Source(i)]
	}
	return strings.Join(names, ", ")
}

func (g *gen) module(m noise.Module) error {
	// Kernels are declared before the module that first uses them.
	var kname string
	if k := noise.KernelOf(m); k != nil {
		kname = g.kernel(k)
	}

	v := g.ident(g.namer.Name(m))
	g.vars[m] = v
	src := g.sources(m)

	switch t := m.(type) {
	case *noise.Constant:
		g.printf("%s := noise.NewConstant(%s)\n", v, g.float(t.Value))
	case *noise.Add:
		g.fallible(v, "noise.NewAdd("+src+")")
	case *noise.Multiply:
		g.fallible(v, "noise.NewMultiply("+src+")")
	case *noise.Min:
		g.fallible(v, "noise.NewMin("+src+")")
	case *noise.Max:
		g.fallible(v, "noise.NewMax("+src+")")
	case *noise.Power:
		g.fallible(v, "noise.NewPower("+src+")")
	case *noise.Abs:
		g.fallible(v, "noise.NewAbs("+src+")")
	case *noise.Invert:
		g.fallible(v, "noise.NewInvert("+src+")")
	case *noise.Clamp:
		g.fallible(v, "noise.NewClamp("+src+")")
		lo, hi := t.Bounds()
		g.printf("%s.SetBounds(%s, %s)\n", v, g.float(lo), g.float(hi))
	case *noise.ScaleBias:
		g.fallible(v, fmt.Sprintf("noise.NewScaleBias(%s, %s, %s)", src, g.float(t.Scale), g.float(t.Bias)))
	case *noise.Curve:
		g.fallible(v, "noise.NewCurve("+src+")")
		for _, p := range t.ControlPoints() {
			g.check(fmt.Sprintf("%s.AddControlPoint(%s, %s)", v, g.float(p.In), g.float(p.Out)))
		}
	case *noise.Terrace:
		g.fallible(v, "noise.NewTerrace("+src+")")
		for _, p := range t.ControlPoints() {
			g.check(fmt.Sprintf("%s.AddControlPoint(%s)", v, g.float(p)))
		}
		if t.IsInverted() {
			g.printf("%s.SetInverted(true)\n", v)
		}
	case *noise.Selector:
		g.fallible(v, "noise.NewSelector("+src+")")
		lo, hi := t.Bounds()
		g.printf("%s.SetBounds(%s, %s)\n", v, g.float(lo), g.float(hi))
		g.printf("%s.SetEdgeFalloff(%s)\n", v, g.float(t.EdgeFalloff()))
	case *noise.Blend:
		g.fallible(v, "noise.NewBlend("+src+")")
	case *noise.Cache:
		g.fallible(v, "noise.NewCache("+src+")")
	case *noise.Checkerboard:
		g.printf("%s := noise.NewCheckerboard()\n", v)
	case *noise.Cylinder:
		g.printf("%s := noise.NewCylinder()\n", v)
		g.printf("%s.Frequency = %s\n", v, g.float(t.Frequency))
	case *noise.Sphere:
		g.printf("%s := noise.NewSphere()\n", v)
		g.printf("%s.Frequency = %s\n", v, g.float(t.Frequency))
	case *noise.Perlin:
		g.fallible(v, "noise.NewPerlin("+kname+")")
		g.fields(v, "Frequency", t.Frequency, "Lacunarity", t.Lacunarity, "Persistence", t.Persistence)
		g.printf("%s.Octaves = %d\n", v, t.Octaves)
	case *noise.Billow:
		g.fallible(v, "noise.NewBillow("+kname+")")
		g.fields(v, "Frequency", t.Frequency, "Lacunarity", t.Lacunarity, "Persistence", t.Persistence)
		g.printf("%s.Octaves = %d\n", v, t.Octaves)
	case *noise.RidgedMulti:
		g.fallible(v, "noise.NewRidgedMulti("+kname+")")
		g.fields(v, "Frequency", t.Frequency, "Lacunarity", t.Lacunarity)
		g.printf("%s.Octaves = %d\n", v, t.Octaves)
	case *noise.Voronoi:
		g.fallible(v, "noise.NewVoronoi("+kname+")")
		g.fields(v, "Frequency", t.Frequency, "Displacement", t.Displacement)
		g.printf("%s.EnableDistance = %t\n", v, t.EnableDistance)
	case *noise.ScalePoint:
		g.fallible(v, "noise.NewScalePoint("+src+")")
		g.fields(v, "X", t.X, "Y", t.Y, "Z", t.Z)
	case *noise.TranslatePoint:
		g.fallible(v, "noise.NewTranslatePoint("+src+")")
		g.fields(v, "X", t.X, "Y", t.Y, "Z", t.Z)
	case *noise.RotatePoint:
		g.fallible(v, "noise.NewRotatePoint("+src+")")
		x, y, z := t.Angles()
		g.printf("%s.SetAngles(%s, %s, %s)\n", v, g.float(x), g.float(y), g.float(z))
	case *noise.Displace:
		g.fallible(v, "noise.NewDisplace("+src+")")
	case *noise.Line:
		g.fallible(v, "noise.NewLine("+src+")")
		g.printf("%s.Start = %s\n", v, g.vec3(t.Start))
		g.printf("%s.End = %s\n", v, g.vec3(t.End))
		g.printf("%s.Attenuate = %t\n", v, t.Attenuate)
	case *noise.Turbulence:
		g.fallible(v, "noise.NewTurbulence("+src+", "+kname+")")
		g.fields(v, "Frequency", t.Frequency, "Power", t.Power)
		g.printf("%s.Roughness = %d\n", v, t.Roughness)
	default:
		return fmt.Errorf("%w: cannot reconstruct %T", ErrInvalidArgument, m)
	}

	if name := m.Name(); name != "" {
		g.printf("%s.SetName(%q)\n", v, name)
	}
	g.printf("\n")
	return nil
}

// fields assigns float fields given as name, value pairs.
func (g *gen) fields(v string, pairs ...any) {
	for i := 0; i+1 < len(pairs); i += 2 {
		g.printf("%s.%s = %s\n", v, pairs[i].(string), g.float(pairs[i+1].(float64)))
	}
}
