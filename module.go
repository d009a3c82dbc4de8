package noise

import (
	"fmt"
	"reflect"
)

// Kind identifies a module variant.
type Kind uint8

// Module variants. The order is part of no format; persisted graphs use
// Kind.String as the tag.
const (
	KindConstant Kind = iota
	KindAdd
	KindMultiply
	KindMin
	KindMax
	KindPower
	KindAbs
	KindInvert
	KindClamp
	KindScaleBias
	KindCurve
	KindTerrace
	KindSelector
	KindBlend
	KindCache
	KindCheckerboard
	KindScalePoint
	KindTranslatePoint
	KindRotatePoint
	KindDisplace
	KindLine
	KindPerlin
	KindBillow
	KindRidgedMulti
	KindVoronoi
	KindCylinder
	KindSphere
	KindTurbulence

	kindCount
)

// NumKinds is the number of module variants.
const NumKinds = int(kindCount)

var kindInfo = [kindCount]struct {
	name  string
	arity int
}{
	KindConstant:       {"Constant", 0},
	KindAdd:            {"Add", 2},
	KindMultiply:       {"Multiply", 2},
	KindMin:            {"Min", 2},
	KindMax:            {"Max", 2},
	KindPower:          {"Power", 2},
	KindAbs:            {"Abs", 1},
	KindInvert:         {"Invert", 1},
	KindClamp:          {"Clamp", 1},
	KindScaleBias:      {"ScaleBias", 1},
	KindCurve:          {"Curve", 1},
	KindTerrace:        {"Terrace", 1},
	KindSelector:       {"Selector", 3},
	KindBlend:          {"Blend", 3},
	KindCache:          {"Cache", 1},
	KindCheckerboard:   {"Checkerboard", 0},
	KindScalePoint:     {"ScalePoint", 1},
	KindTranslatePoint: {"TranslatePoint", 1},
	KindRotatePoint:    {"RotatePoint", 1},
	KindDisplace:       {"Displace", 4},
	KindLine:           {"Line", 1},
	KindPerlin:         {"Perlin", 0},
	KindBillow:         {"Billow", 0},
	KindRidgedMulti:    {"RidgedMulti", 0},
	KindVoronoi:        {"Voronoi", 0},
	KindCylinder:       {"Cylinder", 0},
	KindSphere:         {"Sphere", 0},
	KindTurbulence:     {"Turbulence", 1},
}

// Kinds returns every module variant in declaration order.
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// String returns the variant name, e.g. "ScaleBias".
func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindInfo[k].name
}

// Arity returns the number of required sources of the variant.
func (k Kind) Arity() int {
	if k >= kindCount {
		return 0
	}
	return kindInfo[k].arity
}

// ParseKind returns the Kind whose String is name.
func ParseKind(name string) (Kind, bool) {
	for i := range kindCount {
		if kindInfo[i].name == name {
			return i, true
		}
	}
	return 0, false
}

// Module is a node of a noise graph.
//
// The set of implementations is closed: every variant is a concrete type of
// this package, and Evaluate, the shader compiler and the persistence layer
// switch over them. A module may be the source of several parents.
type Module interface {
	// Kind returns the variant of the module.
	Kind() Kind

	// Name returns the diagnostic name, or "" when unnamed.
	Name() string

	// SetName sets the diagnostic name. Characters outside [A-Za-z0-9_]
	// are replaced by '_'. Names never affect evaluation.
	SetName(name string)

	// SourceCount returns the fixed number of sources.
	SourceCount() int

	// Source returns source i, or nil when i is out of range.
	Source(i int) Module

	// SetSource replaces source i.
	SetSource(i int, src Module) error

	base() *moduleBase
	shallowCopy() Module
}

// moduleBase carries the name and the fixed-size source slots.
type moduleBase struct {
	name    string
	sources []Module
}

func (b *moduleBase) base() *moduleBase { return b }

// Name returns the diagnostic name.
func (b *moduleBase) Name() string { return b.name }

// SetName sets the sanitized diagnostic name.
func (b *moduleBase) SetName(name string) { b.name = SanitizeName(name) }

// SourceCount returns the number of sources.
func (b *moduleBase) SourceCount() int { return len(b.sources) }

// Source returns source i, or nil when out of range.
func (b *moduleBase) Source(i int) Module {
	if i < 0 || i >= len(b.sources) {
		return nil
	}
	return b.sources[i]
}

// SetSource replaces source i.
func (b *moduleBase) SetSource(i int, src Module) error {
	if i < 0 || i >= len(b.sources) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrSourceIndex, i, len(b.sources))
	}
	if isNil(src) {
		return fmt.Errorf("%w: source %d", ErrNilSource, i)
	}
	b.sources[i] = src
	return nil
}

// newBase allocates the source slots of kind and fills them from sources.
// Every slot must be filled; a module is never built partially.
func newBase(kind Kind, sources ...Module) (moduleBase, error) {
	if len(sources) != kind.Arity() {
		return moduleBase{}, fmt.Errorf("%w: %s needs %d sources, got %d",
			ErrSourceIndex, kind, kind.Arity(), len(sources))
	}
	b := moduleBase{sources: make([]Module, len(sources))}
	for i, s := range sources {
		if isNil(s) {
			return moduleBase{}, fmt.Errorf("%w: %s source %d", ErrNilSource, kind, i)
		}
		b.sources[i] = s
	}
	return b, nil
}

func (b moduleBase) copySources() moduleBase {
	return moduleBase{name: b.name, sources: append([]Module(nil), b.sources...)}
}

// isNil reports whether m is nil, including typed nil pointers.
func isNil(m Module) bool {
	if m == nil {
		return true
	}
	v := reflect.ValueOf(m)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Must panics if err is non-nil and returns m otherwise.
// It is intended for graphs built from literals.
func Must[T Module](m T, err error) T {
	if err != nil {
		panic(err)
	}
	return m
}
