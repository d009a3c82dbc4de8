package shader

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gogpu/noise"
	"github.com/gogpu/noise/kernel"
)

// --- Formatting Tests ---

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{-0.5, "-0.5"},
		{0.1, "0.1"},
		{65536, "65536.0"},
		{1.0 / 65536, "0.0000152587890625"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.v); got != tt.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestSnakeName(t *testing.T) {
	tests := []struct {
		k    noise.Kind
		want string
	}{
		{noise.KindConstant, "constant"},
		{noise.KindScaleBias, "scale_bias"},
		{noise.KindRidgedMulti, "ridged_multi"},
		{noise.KindTranslatePoint, "translate_point"},
	}
	for _, tt := range tests {
		if got := snakeName(tt.k); got != tt.want {
			t.Errorf("snakeName(%s) = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestPermTables(t *testing.T) {
	res, err := Compile(noise.Must(noise.NewTurbulence(noise.NewCheckerboard(), kernel.New(42))))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	perm := res.Program.Kernels()[0].Permutation()
	first := "array<i32, 256> = array<i32, 256>(\n    " + fmt.Sprintf("%d, %d, %d, %d", perm[0], perm[1], perm[2], perm[3])
	if !strings.Contains(res.Header, first) {
		t.Errorf("permutation table does not start with the kernel permutation")
	}
	if !strings.Contains(res.Header, "var<private> turbulence_d: vec3<f32>;") {
		t.Error("header lacks the turbulence scratch register")
	}
}

// --- Assembly Tests ---

func TestResult_HelpersBeforeUse(t *testing.T) {
	g := newGraphBuilder(5)
	res, err := Compile(g.module(4))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	src := res.Source()
	// Each helper is declared before the first call to it.
	for _, decl := range []string{"noise_lerp", "noise_s_curve5", "noise_gradient", "noise_perm", "noise_int_value"} {
		def := strings.Index(src, "fn "+decl+"(")
		use := strings.Index(src, decl+"(")
		if def < 0 {
			continue
		}
		if use < def {
			t.Errorf("%s used at %d before its declaration at %d", decl, use, def)
		}
	}
}

func TestCompileSPIRV(t *testing.T) {
	root := noise.Must(noise.NewScaleBias(noise.NewConstant(0.5), 2, -1))
	res, err := Compile(root, WithComputeEntry(true))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	words, err := res.SPIRV()
	if err != nil {
		t.Fatalf("SPIRV: %v\n%s", err, res.Source())
	}
	const magic = 0x07230203
	if len(words) == 0 || words[0] != magic {
		t.Errorf("SPIR-V does not start with the magic number")
	}
}

func TestCompileSPIRV_RandomGraphs(t *testing.T) {
	const magic = 0x07230203
	for seed := range uint64(20) {
		root := newGraphBuilder(200 + seed).module(3)
		res, err := Compile(root, WithComputeEntry(true))
		if err != nil {
			t.Fatalf("graph %d: Compile: %v", seed, err)
		}
		words, err := res.SPIRV()
		if err != nil {
			t.Fatalf("graph %d: SPIRV: %v\n%s", seed, err, res.Source())
		}
		if len(words) == 0 || words[0] != magic {
			t.Errorf("graph %d: SPIR-V does not start with the magic number", seed)
		}
	}
}

func TestCompileSPIRV_EveryVariant(t *testing.T) {
	k := kernel.New(3)
	c := noise.NewConstant(0.5)
	curve := noise.Must(noise.NewCurve(c))
	curve.ClearControlPoints()
	terrace := noise.Must(noise.NewTerrace(c))
	terrace.MakeControlPoints(4)
	line := noise.Must(noise.NewLine(c))
	for _, m := range []noise.Module{
		c,
		noise.Must(noise.NewAdd(c, c)),
		noise.Must(noise.NewMultiply(c, c)),
		noise.Must(noise.NewMin(c, c)),
		noise.Must(noise.NewMax(c, c)),
		noise.Must(noise.NewPower(c, c)),
		noise.Must(noise.NewAbs(c)),
		noise.Must(noise.NewInvert(c)),
		noise.Must(noise.NewClamp(c)),
		noise.Must(noise.NewScaleBias(c, 2, 1)),
		curve,
		terrace,
		noise.Must(noise.NewSelector(c, c, c)),
		noise.Must(noise.NewBlend(c, c, c)),
		noise.Must(noise.NewCache(c)),
		noise.NewCheckerboard(),
		noise.NewCylinder(),
		noise.NewSphere(),
		noise.Must(noise.NewPerlin(k)),
		noise.Must(noise.NewBillow(k)),
		noise.Must(noise.NewRidgedMulti(k)),
		noise.Must(noise.NewVoronoi(k)),
		noise.Must(noise.NewScalePoint(c)),
		noise.Must(noise.NewTranslatePoint(c)),
		noise.Must(noise.NewRotatePoint(c)),
		noise.Must(noise.NewDisplace(c, c, c, c)),
		line,
		noise.Must(noise.NewTurbulence(c, k)),
	} {
		t.Run(m.Kind().String(), func(t *testing.T) {
			res, err := Compile(m)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			if _, err := res.SPIRV(); err != nil {
				t.Fatalf("SPIRV: %v\n%s", err, res.Source())
			}
		})
	}
}

func TestCompileSPIRV_Invalid(t *testing.T) {
	if _, err := CompileSPIRV("fn broken( {"); !errors.Is(err, ErrCompile) {
		t.Errorf("CompileSPIRV error = %v, want ErrCompile", err)
	}
}
