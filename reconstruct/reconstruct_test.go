package reconstruct

import (
	"bytes"
	"errors"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/noise"
	"github.com/gogpu/noise/kernel"
)

func parseFile(t *testing.T, src []byte) *ast.File {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "graph.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, src)
	}
	return f
}

// typeCheck checks generated code against the noise and kernel packages
// compiled from source, so every constructor, setter and field it uses
// must exist with the right types.
func typeCheck(t *testing.T, src []byte) {
	t.Helper()
	if testing.Short() {
		t.Skip("type-checking from source is slow")
	}
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "graph.go", src, 0)
	if err != nil {
		t.Fatalf("generated code does not parse: %v\n%s", err, src)
	}
	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	pkg, err := conf.Check(f.Name.Name, fset, []*ast.File{f}, nil)
	if err != nil {
		t.Fatalf("generated code does not type-check: %v\n%s", err, src)
	}
	for _, name := range pkg.Scope().Names() {
		fn, ok := pkg.Scope().Lookup(name).(*types.Func)
		if !ok {
			continue
		}
		sig := fn.Type().(*types.Signature)
		if sig.Params().Len() != 0 || sig.Results().Len() != 2 ||
			sig.Results().At(0).Type().String() != "github.com/gogpu/noise.Module" ||
			sig.Results().At(1).Type().String() != "error" {
			t.Errorf("%s has signature %s, want func() (noise.Module, error)", name, sig)
		}
	}
}

func TestSource_Simple(t *testing.T) {
	root := noise.Must(noise.NewAdd(noise.NewConstant(1), noise.NewConstant(2.5)))
	src, err := Source(root, Options{Package: "terrain", Func: "Build"})
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	f := parseFile(t, src)
	if f.Name.Name != "terrain" {
		t.Errorf("package = %q, want terrain", f.Name.Name)
	}

	text := string(src)
	for _, want := range []string{
		"// Code generated by reconstruct. DO NOT EDIT.",
		"func Build() (noise.Module, error) {",
		"constant1 := noise.NewConstant(1)",
		"constant2 := noise.NewConstant(2.5)",
		"add1, err := noise.NewAdd(constant1, constant2)",
		"return add1, nil",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("source missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "gogpu/noise/kernel") {
		t.Error("kernel package imported without kernels")
	}
}

func TestSource_SharingAndKernels(t *testing.T) {
	k := kernel.New(77)
	p := noise.Must(noise.NewPerlin(k))
	p.SetName("base")
	p.Octaves = 3
	r := noise.Must(noise.NewRidgedMulti(k))
	root := noise.Must(noise.NewMultiply(noise.Must(noise.NewAdd(p, p)), r))

	src, err := Source(root, Options{})
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	typeCheck(t, src)
	text := string(src)
	if n := strings.Count(text, "kernel.New("); n != 1 {
		t.Errorf("kernel declared %d times, want 1", n)
	}
	if !strings.Contains(text, "kernel0 := kernel.New(77)") {
		t.Errorf("kernel declaration missing:\n%s", text)
	}
	if n := strings.Count(text, "noise.NewPerlin("); n != 1 {
		t.Errorf("shared Perlin declared %d times, want 1", n)
	}
	for _, want := range []string{
		"base, err := noise.NewPerlin(kernel0)",
		"base.Octaves = 3",
		`base.SetName("base")`,
		"noise.NewAdd(base, base)",
		"func BuildNoise() (noise.Module, error) {",
		"package main",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("source missing %q:\n%s", want, text)
		}
	}
}

func TestSource_EveryVariantTypeChecks(t *testing.T) {
	k := kernel.New(5)
	c := noise.NewConstant(math.Inf(1))
	curve := noise.Must(noise.NewCurve(noise.Must(noise.NewPerlin(k))))
	for _, in := range []float64{-1, 0, 0.5, 1} {
		if err := curve.AddControlPoint(in, in*in); err != nil {
			t.Fatalf("AddControlPoint: %v", err)
		}
	}
	terrace := noise.Must(noise.NewTerrace(noise.Must(noise.NewBillow(k))))
	terrace.MakeControlPoints(3)
	terrace.SetInverted(true)
	sel := noise.Must(noise.NewSelector(curve, terrace, noise.Must(noise.NewVoronoi(k))))
	line := noise.Must(noise.NewLine(noise.NewCylinder()))
	rot := noise.Must(noise.NewRotatePoint(noise.NewSphere()))
	rot.SetAngles(0, 45, 90)
	turb := noise.Must(noise.NewTurbulence(noise.NewCheckerboard(), k))
	disp := noise.Must(noise.NewDisplace(sel, line, rot, turb))
	clamp := noise.Must(noise.NewClamp(noise.Must(noise.NewCache(disp))))
	clamp.SetBounds(-0.5, 0.5)
	sb := noise.Must(noise.NewScaleBias(clamp, 2, c.Value))
	root := noise.Must(noise.NewBlend(sb, noise.Must(noise.NewScalePoint(noise.Must(noise.NewTranslatePoint(
		noise.Must(noise.NewInvert(noise.Must(noise.NewAbs(noise.Must(noise.NewPower(c, c)))))))))),
		noise.Must(noise.NewMin(noise.Must(noise.NewMax(c, c)), noise.Must(noise.NewRidgedMulti(k))))))

	var buf bytes.Buffer
	if err := Emit(&buf, root, Options{Package: "graphs", Generator: "noisegen"}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	typeCheck(t, buf.Bytes())
	text := buf.String()
	for _, want := range []string{
		"// Code generated by noisegen. DO NOT EDIT.",
		"\"math\"",
		"math.Inf(1)",
		"SetInverted(true)",
		"kernel.Vec3{X: 1, Y: 1, Z: 1}",
		"noise.NewTurbulence(checkerboard1, kernel0)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("source missing %q:\n%s", want, text)
		}
	}
}

func TestSource_ReservedNames(t *testing.T) {
	c := noise.NewConstant(1)
	c.SetName("err")
	d := noise.NewConstant(2)
	d.SetName("range")
	root := noise.Must(noise.NewAdd(c, d))
	src, err := Source(root, Options{})
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	parseFile(t, src)
	text := string(src)
	if !strings.Contains(text, "err_ := noise.NewConstant(1)") || !strings.Contains(text, "range_ := noise.NewConstant(2)") {
		t.Errorf("reserved names not escaped:\n%s", text)
	}
}

func TestEmit_InvalidArguments(t *testing.T) {
	c := noise.NewConstant(1)
	tests := []struct {
		name string
		err  error
	}{
		{"nil writer", Emit(nil, c, Options{})},
		{"nil root", Emit(&bytes.Buffer{}, nil, Options{})},
		{"bad package", Emit(&bytes.Buffer{}, c, Options{Package: "my-pkg"})},
		{"bad func", Emit(&bytes.Buffer{}, c, Options{Func: "1build"})},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, ErrInvalidArgument) {
			t.Errorf("%s: error = %v, want ErrInvalidArgument", tt.name, tt.err)
		}
	}
}
