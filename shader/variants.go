package shader

import (
	"fmt"
	"math"

	"github.com/gogpu/noise"
	"github.com/gogpu/noise/internal/ops"
	"github.com/gogpu/noise/interp"
)

// functionDef is the function case of a variant: WGSL text and the host
// equivalent.
type functionDef struct {
	text string
	exec func(*machine)
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// emit lowers m and its sources into instructions.
func (c *Context) emit(m noise.Module) error {
	switch v := m.(type) {
	case *noise.Constant:
		c.header(noise.KindConstant)
		c.settings(v, []float64{v.Value}, nil)
		c.function(v)

	case *noise.Add:
		c.header(noise.KindAdd)
		return c.binary(v)
	case *noise.Multiply:
		c.header(noise.KindMultiply)
		return c.binary(v)
	case *noise.Min:
		c.header(noise.KindMin)
		return c.binary(v)
	case *noise.Max:
		c.header(noise.KindMax)
		return c.binary(v)
	case *noise.Power:
		c.header(noise.KindPower)
		return c.binary(v)

	case *noise.Abs:
		c.header(noise.KindAbs)
		if err := c.sources(v, 0); err != nil {
			return err
		}
		c.function(v)
	case *noise.Invert:
		c.header(noise.KindInvert)
		if err := c.sources(v, 0); err != nil {
			return err
		}
		c.function(v)
	case *noise.Clamp:
		c.header(noise.KindClamp)
		if err := c.sources(v, 0); err != nil {
			return err
		}
		lo, hi := v.Bounds()
		c.settings(v, []float64{lo, hi}, nil)
		c.function(v)
	case *noise.ScaleBias:
		c.header(noise.KindScaleBias)
		if err := c.sources(v, 0); err != nil {
			return err
		}
		c.settings(v, []float64{v.Scale, v.Bias}, nil)
		c.function(v)
	case *noise.Curve:
		c.header(noise.KindCurve, helperCubic)
		if err := c.sources(v, 0); err != nil {
			return err
		}
		points := v.EffectivePoints()
		vals := make([]float64, 0, 1+2*len(points))
		vals = append(vals, float64(len(points)))
		for _, p := range points {
			vals = append(vals, p.In, p.Out)
		}
		c.settings(v, vals, points)
		c.function(v)
	case *noise.Terrace:
		c.header(noise.KindTerrace, helperLerp)
		if err := c.sources(v, 0); err != nil {
			return err
		}
		points := v.EffectivePoints()
		vals := make([]float64, 0, 2+len(points))
		vals = append(vals, float64(len(points)), boolValue(v.IsInverted()))
		vals = append(vals, points...)
		c.settings(v, vals, points)
		c.function(v)

	case *noise.Selector:
		c.header(noise.KindSelector, helperSelect)
		if err := c.sources(v, 0, 1, 2); err != nil {
			return err
		}
		lo, hi := v.Bounds()
		c.settings(v, []float64{lo, hi, v.EdgeFalloff()}, nil)
		c.function(v)
	case *noise.Blend:
		c.header(noise.KindBlend, helperLerp)
		if err := c.sources(v, 0, 1, 2); err != nil {
			return err
		}
		c.function(v)

	case *noise.Cache:
		// Within one evaluation the compiled stream has no state to reuse,
		// so a Cache lowers to its source.
		return c.sources(v, 0)

	case *noise.Checkerboard:
		c.header(noise.KindCheckerboard, helperCheckerboard)
		c.function(v)
	case *noise.Cylinder:
		c.header(noise.KindCylinder, helperShells)
		c.settings(v, []float64{v.Frequency}, nil)
		c.function(v)
	case *noise.Sphere:
		c.header(noise.KindSphere, helperShells)
		c.settings(v, []float64{v.Frequency}, nil)
		c.function(v)
	case *noise.Perlin:
		c.header(noise.KindPerlin, helperPerlin)
		kb := c.kernelIndex(v.Kernel())
		c.settings(v, []float64{float64(kb), v.Frequency, v.Lacunarity, v.Persistence,
			float64(ops.ClampOctaves(v.Octaves))}, nil)
		c.function(v)
	case *noise.Billow:
		c.header(noise.KindBillow, helperBillow)
		kb := c.kernelIndex(v.Kernel())
		c.settings(v, []float64{float64(kb), v.Frequency, v.Lacunarity, v.Persistence,
			float64(ops.ClampOctaves(v.Octaves))}, nil)
		c.function(v)
	case *noise.RidgedMulti:
		c.header(noise.KindRidgedMulti, helperRidged)
		kb := c.kernelIndex(v.Kernel())
		c.settings(v, []float64{float64(kb), v.Frequency, v.Lacunarity,
			float64(ops.ClampOctaves(v.Octaves))}, nil)
		c.function(v)
	case *noise.Voronoi:
		c.header(noise.KindVoronoi, helperVoronoi)
		kb := c.kernelIndex(v.Kernel())
		c.settings(v, []float64{float64(kb), v.Frequency, v.Displacement,
			boolValue(v.EnableDistance)}, nil)
		c.function(v)

	case *noise.ScalePoint:
		c.header(noise.KindScalePoint)
		sx, sy, sz := v.X, v.Y, v.Z
		c.coords(v, 0, pushCoordText("coord_stack[csp - 1u] * "+formatVec3(sx, sy, sz)), func(vm *machine) {
			p := vm.top()
			vm.pushCoord(p[0]*sx, p[1]*sy, p[2]*sz)
		})
		return c.transformed(v)
	case *noise.TranslatePoint:
		c.header(noise.KindTranslatePoint)
		tx, ty, tz := v.X, v.Y, v.Z
		c.coords(v, 0, pushCoordText("coord_stack[csp - 1u] + "+formatVec3(tx, ty, tz)), func(vm *machine) {
			p := vm.top()
			vm.pushCoord(p[0]+tx, p[1]+ty, p[2]+tz)
		})
		return c.transformed(v)
	case *noise.RotatePoint:
		c.header(noise.KindRotatePoint)
		mat := v.Matrix()
		text := "let p = coord_stack[csp - 1u];\n" + pushCoordText(fmt.Sprintf(
			"vec3<f32>(\n    %s * p.x + %s * p.y + %s * p.z,\n    %s * p.x + %s * p.y + %s * p.z,\n    %s * p.x + %s * p.y + %s * p.z)",
			formatFloat(mat[0]), formatFloat(mat[1]), formatFloat(mat[2]),
			formatFloat(mat[3]), formatFloat(mat[4]), formatFloat(mat[5]),
			formatFloat(mat[6]), formatFloat(mat[7]), formatFloat(mat[8])))
		c.coords(v, 0, text, func(vm *machine) {
			p := vm.top()
			vm.pushCoord(ops.Rotate(mat, p[0], p[1], p[2]))
		})
		return c.transformed(v)
	case *noise.Displace:
		c.header(noise.KindDisplace)
		if err := c.sources(v, 1, 2, 3); err != nil {
			return err
		}
		text := "rsp = rsp - 3u;\n" + pushCoordText(
			"coord_stack[csp - 1u] + vec3<f32>(result_stack[rsp], result_stack[rsp + 1u], result_stack[rsp + 2u])")
		c.coords(v, 0, text, func(vm *machine) {
			dz := vm.pop()
			dy := vm.pop()
			dx := vm.pop()
			p := vm.top()
			vm.pushCoord(p[0]+dx, p[1]+dy, p[2]+dz)
		})
		return c.transformed(v)
	case *noise.Line:
		c.header(noise.KindLine)
		start, end := v.Start, v.End
		text := "let t = coord_stack[csp - 1u].x;\n" + pushCoordText(fmt.Sprintf(
			"vec3<f32>(\n    %s * t + %s,\n    %s * t + %s,\n    %s * t + %s)",
			formatFloat(end.X-start.X), formatFloat(start.X),
			formatFloat(end.Y-start.Y), formatFloat(start.Y),
			formatFloat(end.Z-start.Z), formatFloat(start.Z)))
		c.coords(v, 0, text, func(vm *machine) {
			vm.pushCoord(ops.LinePoint(start, end, vm.top()[0]))
		})
		if err := c.sources(v, 0); err != nil {
			return err
		}
		c.settings(v, []float64{boolValue(v.Attenuate)}, nil)
		c.function(v)
	case *noise.Turbulence:
		c.header(noise.KindTurbulence, helperPerlin)
		k := v.Kernel()
		kb := c.kernelIndex(k)
		freq, power, rough := v.Frequency, v.Power, ops.ClampOctaves(v.Roughness)
		for axis := range 3 {
			o := ops.TurbulenceOffsets[axis]
			text := fmt.Sprintf("turbulence_d.%c = noise_perlin(%d, coord_stack[csp - 1u] + %s, %s, %s, %s, %d);\n",
				"xyz"[axis], kb*256, formatVec3(o.X, o.Y, o.Z), formatFloat(freq),
				formatFloat(ops.TurbulenceLacunarity), formatFloat(ops.TurbulencePersistence), rough)
			c.coords(v, axis, text, func(vm *machine) {
				p := vm.top()
				vm.turb[axis] = ops.TurbulenceComponent(k, axis, p[0], p[1], p[2], freq, rough)
			})
		}
		c.coords(v, 3, pushCoordText("coord_stack[csp - 1u] + turbulence_d * "+formatFloat(power)), func(vm *machine) {
			p := vm.top()
			vm.pushCoord(p[0]+vm.turb[0]*power, p[1]+vm.turb[1]*power, p[2]+vm.turb[2]*power)
		})
		return c.transformed(v)

	default:
		return fmt.Errorf("%w: %T (%s)", ErrUnsupportedModule, m, m.Kind())
	}
	return nil
}

// binary emits both sources of a two-input combiner and its function.
func (c *Context) binary(m noise.Module) error {
	if err := c.sources(m, 0, 1); err != nil {
		return err
	}
	c.function(m)
	return nil
}

// transformed emits the source of a coordinate transform, evaluated at the
// pushed coordinate, and the function that pops it.
func (c *Context) transformed(m noise.Module) error {
	if err := c.sources(m, 0); err != nil {
		return err
	}
	c.function(m)
	return nil
}

func pushCoordText(expr string) string {
	return "coord_stack[csp] = " + expr + ";\ncsp = csp + 1u;\n"
}

const popCoordText = "csp = csp - 1u;\n"

func popCoord(vm *machine) { vm.popCoord() }

func binaryText(expr string) string {
	return "rsp = rsp - 1u;\nlet a = result_stack[rsp - 1u];\nlet b = result_stack[rsp];\nresult_stack[rsp - 1u] = " + expr + ";\n"
}

func binaryExec(op func(a, b float64) float64) func(*machine) {
	return func(vm *machine) {
		b := vm.pop()
		a := vm.pop()
		vm.push(op(a, b))
	}
}

func unaryText(expr string) string {
	return "let v = result_stack[rsp - 1u];\nresult_stack[rsp - 1u] = " + expr + ";\n"
}

func unaryExec(op func(v float64) float64) func(*machine) {
	return func(vm *machine) {
		vm.push(op(vm.pop()))
	}
}

func generatorText(expr string) string {
	return "let p = coord_stack[csp - 1u];\nresult_stack[rsp] = " + expr + ";\nrsp = rsp + 1u;\n"
}

const curveText = `let v = result_stack[rsp - 1u];
let n = i32(curve_s[0]);
var pos = 0;
loop {
    if (pos >= n || v < curve_s[1 + 2 * pos]) {
        break;
    }
    pos = pos + 1;
}
let i0 = clamp(pos - 2, 0, n - 1);
let i1 = clamp(pos - 1, 0, n - 1);
let i2 = clamp(pos, 0, n - 1);
let i3 = clamp(pos + 1, 0, n - 1);
if (i1 == i2) {
    result_stack[rsp - 1u] = curve_s[2 + 2 * i1];
} else {
    let in0 = curve_s[1 + 2 * i1];
    let in1 = curve_s[1 + 2 * i2];
    let alpha = (v - in0) / (in1 - in0);
    result_stack[rsp - 1u] = noise_cubic(curve_s[2 + 2 * i0], curve_s[2 + 2 * i1], curve_s[2 + 2 * i2], curve_s[2 + 2 * i3], alpha);
}
`

const terraceText = `let v = result_stack[rsp - 1u];
let n = i32(terrace_s[0]);
var pos = 0;
loop {
    if (pos >= n || v < terrace_s[2 + pos]) {
        break;
    }
    pos = pos + 1;
}
let i0 = clamp(pos - 1, 0, n - 1);
let i1 = clamp(pos, 0, n - 1);
if (i0 == i1) {
    result_stack[rsp - 1u] = terrace_s[2 + i1];
} else {
    var v0 = terrace_s[2 + i0];
    var v1 = terrace_s[2 + i1];
    var alpha = (v - v0) / (v1 - v0);
    if (terrace_s[1] != 0.0) {
        alpha = 1.0 - alpha;
        let t = v0;
        v0 = v1;
        v1 = t;
    }
    alpha = alpha * alpha;
    result_stack[rsp - 1u] = noise_lerp(v0, v1, alpha);
}
`

const lineText = `let r = result_stack[rsp - 1u];
csp = csp - 1u;
let t = coord_stack[csp - 1u].x;
if (line_s[0] != 0.0) {
    result_stack[rsp - 1u] = r * t * (1.0 - t) * 4.0;
}
`

func kernelArgs(reg string, n int) string {
	s := fmt.Sprintf("i32(%s[0]) * 256, p", reg)
	for i := 1; i < n; i++ {
		s += fmt.Sprintf(", %s[%d]", reg, i)
	}
	return s
}

// functions holds the function case of every variant that has one.
var functions = [noise.NumKinds]functionDef{
	noise.KindConstant: {
		text: "result_stack[rsp] = constant_s[0];\nrsp = rsp + 1u;\n",
		exec: func(vm *machine) { vm.push(vm.regs[noise.KindConstant][0]) },
	},

	noise.KindAdd:      {text: binaryText("a + b"), exec: binaryExec(func(a, b float64) float64 { return a + b })},
	noise.KindMultiply: {text: binaryText("a * b"), exec: binaryExec(func(a, b float64) float64 { return a * b })},
	noise.KindMin:      {text: binaryText("min(a, b)"), exec: binaryExec(math.Min)},
	noise.KindMax:      {text: binaryText("max(a, b)"), exec: binaryExec(math.Max)},
	noise.KindPower:    {text: binaryText("pow(a, b)"), exec: binaryExec(ops.Power)},

	noise.KindAbs:    {text: unaryText("abs(v)"), exec: unaryExec(math.Abs)},
	noise.KindInvert: {text: unaryText("-v"), exec: unaryExec(func(v float64) float64 { return -v })},
	noise.KindClamp: {
		text: unaryText("clamp(v, clamp_s[0], clamp_s[1])"),
		exec: func(vm *machine) {
			s := vm.regs[noise.KindClamp]
			vm.push(interp.Clamp(vm.pop(), s[0], s[1]))
		},
	},
	noise.KindScaleBias: {
		text: unaryText("v * scale_bias_s[0] + scale_bias_s[1]"),
		exec: func(vm *machine) {
			s := vm.regs[noise.KindScaleBias]
			vm.push(ops.ScaleBias(vm.pop(), s[0], s[1]))
		},
	},
	noise.KindCurve: {
		text: curveText,
		exec: func(vm *machine) {
			points := vm.aux[noise.KindCurve].([]ops.ControlPoint)
			vm.push(ops.Curve(points, vm.pop()))
		},
	},
	noise.KindTerrace: {
		text: terraceText,
		exec: func(vm *machine) {
			s := vm.regs[noise.KindTerrace]
			points := vm.aux[noise.KindTerrace].([]float64)
			vm.push(ops.Terrace(points, s[1] != 0, vm.pop()))
		},
	},

	noise.KindSelector: {
		text: "rsp = rsp - 2u;\nresult_stack[rsp - 1u] = noise_select(result_stack[rsp + 1u], result_stack[rsp - 1u], result_stack[rsp], selector_s[0], selector_s[1], selector_s[2]);\n",
		exec: func(vm *machine) {
			s := vm.regs[noise.KindSelector]
			ctl := vm.pop()
			v1 := vm.pop()
			v0 := vm.pop()
			vm.push(ops.Selector(ctl, v0, v1, s[0], s[1], s[2]))
		},
	},
	noise.KindBlend: {
		text: "rsp = rsp - 2u;\nresult_stack[rsp - 1u] = noise_lerp(result_stack[rsp - 1u], result_stack[rsp], (result_stack[rsp + 1u] + 1.0) / 2.0);\n",
		exec: func(vm *machine) {
			ctl := vm.pop()
			v1 := vm.pop()
			v0 := vm.pop()
			vm.push(ops.Blend(v0, v1, ctl))
		},
	},

	noise.KindCheckerboard: {
		text: generatorText("noise_checkerboard(p)"),
		exec: func(vm *machine) {
			p := vm.top()
			vm.push(ops.Checkerboard(p[0], p[1], p[2]))
		},
	},
	noise.KindCylinder: {
		text: "let p = coord_stack[csp - 1u] * cylinder_s[0];\nresult_stack[rsp] = noise_shells(sqrt(p.x * p.x + p.z * p.z));\nrsp = rsp + 1u;\n",
		exec: func(vm *machine) {
			p := vm.top()
			vm.push(ops.Cylinders(vm.regs[noise.KindCylinder][0], p[0], p[2]))
		},
	},
	noise.KindSphere: {
		text: "let p = coord_stack[csp - 1u] * sphere_s[0];\nresult_stack[rsp] = noise_shells(sqrt(p.x * p.x + p.y * p.y + p.z * p.z));\nrsp = rsp + 1u;\n",
		exec: func(vm *machine) {
			p := vm.top()
			vm.push(ops.Spheres(vm.regs[noise.KindSphere][0], p[0], p[1], p[2]))
		},
	},
	noise.KindPerlin: {
		text: generatorText("noise_perlin(" + kernelArgs("perlin_s", 4) + ", i32(perlin_s[4]))"),
		exec: func(vm *machine) {
			s := vm.regs[noise.KindPerlin]
			p := vm.top()
			vm.push(ops.Perlin(vm.prog.kernels[int(s[0])], p[0], p[1], p[2], s[1], s[2], s[3], int(s[4])))
		},
	},
	noise.KindBillow: {
		text: generatorText("noise_billow(" + kernelArgs("billow_s", 4) + ", i32(billow_s[4]))"),
		exec: func(vm *machine) {
			s := vm.regs[noise.KindBillow]
			p := vm.top()
			vm.push(ops.Billow(vm.prog.kernels[int(s[0])], p[0], p[1], p[2], s[1], s[2], s[3], int(s[4])))
		},
	},
	noise.KindRidgedMulti: {
		text: generatorText("noise_ridged(" + kernelArgs("ridged_multi_s", 3) + ", i32(ridged_multi_s[3]))"),
		exec: func(vm *machine) {
			s := vm.regs[noise.KindRidgedMulti]
			p := vm.top()
			vm.push(ops.RidgedMulti(vm.prog.kernels[int(s[0])], p[0], p[1], p[2], s[1], s[2], int(s[3])))
		},
	},
	noise.KindVoronoi: {
		text: generatorText("noise_voronoi(" + kernelArgs("voronoi_s", 3) + ", voronoi_s[3] != 0.0)"),
		exec: func(vm *machine) {
			s := vm.regs[noise.KindVoronoi]
			p := vm.top()
			vm.push(ops.Voronoi(vm.prog.kernels[int(s[0])], p[0], p[1], p[2], s[1], s[2], s[3] != 0))
		},
	},

	noise.KindScalePoint:     {text: popCoordText, exec: popCoord},
	noise.KindTranslatePoint: {text: popCoordText, exec: popCoord},
	noise.KindRotatePoint:    {text: popCoordText, exec: popCoord},
	noise.KindDisplace:       {text: popCoordText, exec: popCoord},
	noise.KindTurbulence:     {text: popCoordText, exec: popCoord},
	noise.KindLine: {
		text: lineText,
		exec: func(vm *machine) {
			r := vm.pop()
			vm.popCoord()
			t := vm.top()[0]
			vm.push(ops.LineAttenuate(r, t, vm.regs[noise.KindLine][0] != 0))
		},
	},
}
