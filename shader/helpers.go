package shader

import (
	"fmt"
	"strings"

	"github.com/gogpu/noise/internal/ops"
	"github.com/gogpu/noise/kernel"
)

// helper is a WGSL function (or declaration group) that case bodies call.
// Every helper is a transliteration of a function in internal/ops, kernel
// or interp.
type helper struct {
	deps []string
	text string
}

// Helper names.
const (
	helperLerp         = "lerp"
	helperSCurve3      = "scurve3"
	helperSCurve5      = "scurve5"
	helperCubic        = "cubic"
	helperPerm         = "perm"
	helperGradient     = "gradient"
	helperIntValue     = "int_value"
	helperPerlin       = "perlin"
	helperBillow       = "billow"
	helperRidged       = "ridged"
	helperVoronoi      = "voronoi"
	helperSelect       = "select"
	helperCheckerboard = "checkerboard"
	helperShells       = "shells"
)

var helpers = map[string]helper{
	helperLerp: {text: `fn noise_lerp(a: f32, b: f32, t: f32) -> f32 {
    return (1.0 - t) * a + t * b;
}
`},
	helperSCurve3: {text: `fn noise_s_curve3(t: f32) -> f32 {
    return t * t * (3.0 - 2.0 * t);
}
`},
	helperSCurve5: {text: `fn noise_s_curve5(t: f32) -> f32 {
    return t * t * t * (t * (t * 6.0 - 15.0) + 10.0);
}
`},
	helperCubic: {text: `fn noise_cubic(n0: f32, n1: f32, n2: f32, n3: f32, t: f32) -> f32 {
    let p = (n3 - n2) - (n0 - n1);
    let q = (n0 - n1) - p;
    let r = n2 - n0;
    return p * t * t * t + q * t * t + r * t + n1;
}
`},
	// helperPerm is rendered by permTables once the kernels are known.
	helperPerm: {},
	helperGradient: {deps: []string{helperPerm, helperLerp, helperSCurve5}, text: `fn noise_gradient(kb: i32, p: vec3<f32>) -> f32 {
    let fl = floor(p);
    let pi = vec3<i32>(fl);
    let f = p - fl;
    let ux = noise_s_curve5(f.x);
    let uy = noise_s_curve5(f.y);
    let uz = noise_s_curve5(f.z);

    let a = noise_perm(kb, pi.x) + pi.y;
    let b = noise_perm(kb, pi.x + 1) + pi.y;
    let aa = noise_perm(kb, a) + pi.z;
    let ab = noise_perm(kb, a + 1) + pi.z;
    let ba = noise_perm(kb, b) + pi.z;
    let bb = noise_perm(kb, b + 1) + pi.z;

    let n000 = noise_grad(kb, aa, f);
    let n100 = noise_grad(kb, ba, f + vec3<f32>(-1.0, 0.0, 0.0));
    let n010 = noise_grad(kb, ab, f + vec3<f32>(0.0, -1.0, 0.0));
    let n110 = noise_grad(kb, bb, f + vec3<f32>(-1.0, -1.0, 0.0));
    let n001 = noise_grad(kb, aa + 1, f + vec3<f32>(0.0, 0.0, -1.0));
    let n101 = noise_grad(kb, ba + 1, f + vec3<f32>(-1.0, 0.0, -1.0));
    let n011 = noise_grad(kb, ab + 1, f + vec3<f32>(0.0, -1.0, -1.0));
    let n111 = noise_grad(kb, bb + 1, f + vec3<f32>(-1.0, -1.0, -1.0));

    let nx00 = noise_lerp(n000, n100, ux);
    let nx10 = noise_lerp(n010, n110, ux);
    let nx01 = noise_lerp(n001, n101, ux);
    let nx11 = noise_lerp(n011, n111, ux);
    let ny0 = noise_lerp(nx00, nx10, uy);
    let ny1 = noise_lerp(nx01, nx11, uy);
    return noise_lerp(ny0, ny1, uz);
}
`},
	helperIntValue: {deps: []string{helperPerm}, text: `fn noise_int_value(kb: i32, c: vec3<i32>) -> f32 {
    let v = noise_perm(kb, noise_perm(kb, noise_perm(kb, c.x) + c.y) + c.z);
    return f32(v) / 255.0 * 2.0 - 1.0;
}
`},
	helperPerlin: {deps: []string{helperGradient}, text: `fn noise_perlin(kb: i32, p: vec3<f32>, freq: f32, lac: f32, pers: f32, octaves: i32) -> f32 {
    var q = p * freq;
    var value = 0.0;
    var amp = 1.0;
    for (var i = 0; i < octaves; i = i + 1) {
        value = value + noise_gradient(kb, q) * amp;
        q = q * lac;
        amp = amp * pers;
    }
    return value;
}
`},
	helperBillow: {deps: []string{helperGradient}, text: `fn noise_billow(kb: i32, p: vec3<f32>, freq: f32, lac: f32, pers: f32, octaves: i32) -> f32 {
    var q = p * freq;
    var value = 0.0;
    var amp = 1.0;
    for (var i = 0; i < octaves; i = i + 1) {
        let signal = 2.0 * abs(noise_gradient(kb, q)) - 1.0;
        value = value + signal * amp;
        q = q * lac;
        amp = amp * pers;
    }
    return value + 0.5;
}
`},
	helperRidged: {deps: []string{helperGradient}, text: fmt.Sprintf(`fn noise_ridged(kb: i32, p: vec3<f32>, freq: f32, lac: f32, octaves: i32) -> f32 {
    var q = p * freq;
    var value = 0.0;
    var weight = 1.0;
    var spectral = 1.0;
    for (var i = 0; i < octaves; i = i + 1) {
        var signal = %s - abs(noise_gradient(kb, q));
        signal = signal * signal;
        signal = signal * weight;
        weight = clamp(signal * %s, 0.0, 1.0);
        value = value + signal / spectral;
        spectral = spectral * lac;
        q = q * lac;
    }
    return value * 1.25 - 1.0;
}
`, formatFloat(ops.RidgedOffset), formatFloat(ops.RidgedGain))},
	helperVoronoi: {deps: []string{helperIntValue}, text: fmt.Sprintf(`fn noise_voronoi(kb: i32, p: vec3<f32>, freq: f32, displacement: f32, distance: bool) -> f32 {
    let q = p * freq;
    let qi = vec3<i32>(floor(q));
    var min_dist = 3.4e38;
    var cand = vec3<f32>(0.0, 0.0, 0.0);
    for (var zc = qi.z - 2; zc <= qi.z + 2; zc = zc + 1) {
        for (var yc = qi.y - 2; yc <= qi.y + 2; yc = yc + 1) {
            for (var xc = qi.x - 2; xc <= qi.x + 2; xc = xc + 1) {
                let c = vec3<i32>(xc, yc, zc);
                let sp = vec3<f32>(c) + vec3<f32>(
                    noise_int_value(kb, c + %s),
                    noise_int_value(kb, c + %s),
                    noise_int_value(kb, c + %s));
                let d = sp - q;
                let dist = d.x * d.x + d.y * d.y + d.z * d.z;
                if (dist < min_dist) {
                    min_dist = dist;
                    cand = sp;
                }
            }
        }
    }
    var value = 0.0;
    if (distance) {
        let d = cand - q;
        value = sqrt(d.x * d.x + d.y * d.y + d.z * d.z) * sqrt(3.0) - 1.0;
    }
    return value + displacement * noise_int_value(kb, vec3<i32>(floor(cand)));
}
`, formatIVec3(ops.VoronoiJitter[0]), formatIVec3(ops.VoronoiJitter[1]), formatIVec3(ops.VoronoiJitter[2]))},
	helperSelect: {deps: []string{helperLerp, helperSCurve3}, text: `fn noise_select(c: f32, v0: f32, v1: f32, lower: f32, upper: f32, falloff: f32) -> f32 {
    if (falloff <= 0.0) {
        if (c < lower || c > upper) {
            return v0;
        }
        return v1;
    }
    if (c < lower - falloff) {
        return v0;
    }
    if (c < lower + falloff) {
        let lo = lower - falloff;
        let hi = lower + falloff;
        return noise_lerp(v0, v1, noise_s_curve3((c - lo) / (hi - lo)));
    }
    if (c < upper - falloff) {
        return v1;
    }
    if (c < upper + falloff) {
        let lo = upper - falloff;
        let hi = upper + falloff;
        return noise_lerp(v1, v0, noise_s_curve3((c - lo) / (hi - lo)));
    }
    return v0;
}
`},
	helperCheckerboard: {text: `fn noise_checkerboard(p: vec3<f32>) -> f32 {
    let c = vec3<i32>(floor(p)) & vec3<i32>(1, 1, 1);
    if ((c.x ^ c.y ^ c.z) != 0) {
        return -1.0;
    }
    return 1.0;
}
`},
	helperShells: {text: `fn noise_shells(d: f32) -> f32 {
    let from_smaller = d - floor(d);
    let nearest = min(from_smaller, 1.0 - from_smaller);
    return 1.0 - nearest * 4.0;
}
`},
}

// permTables renders the concatenated permutation tables of kernels (one
// block of 256 entries per kernel, addressed by kernel index * 256), the
// gradient table and the lookup functions.
func permTables(kernels []*kernel.Kernel) string {
	n := max(len(kernels), 1) * kernel.TableSize
	var sb strings.Builder
	fmt.Fprintf(&sb, "var<private> noise_perm_table: array<i32, %d> = array<i32, %d>(", n, n)
	written := 0
	for _, k := range kernels {
		perm := k.Permutation()
		for _, v := range perm {
			if written > 0 {
				sb.WriteString(", ")
			}
			if written%16 == 0 {
				sb.WriteString("\n    ")
			}
			fmt.Fprintf(&sb, "%d", v)
			written++
		}
	}
	for written < n {
		if written > 0 {
			sb.WriteString(", ")
		}
		if written%16 == 0 {
			sb.WriteString("\n    ")
		}
		fmt.Fprintf(&sb, "%d", written)
		written++
	}
	sb.WriteString("\n);\n\n")

	sb.WriteString("var<private> noise_grad_table: array<vec3<f32>, 12> = array<vec3<f32>, 12>(")
	for i := range 12 {
		g := kernel.Gradient(i)
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, "\n    %s", formatVec3(g.X, g.Y, g.Z))
	}
	sb.WriteString("\n);\n\n")

	sb.WriteString(`fn noise_perm(kb: i32, x: i32) -> i32 {
    return noise_perm_table[kb + (x & 255)];
}

fn noise_grad(kb: i32, x: i32, p: vec3<f32>) -> f32 {
    let g = noise_grad_table[noise_perm(kb, x) % 12];
    return g.x * p.x + g.y * p.y + g.z * p.z;
}
`)
	return sb.String()
}
