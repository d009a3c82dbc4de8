// Package noise builds procedural scalar fields from a graph of composable
// modules.
//
// # Overview
//
// A graph is made of Module values: generators (Perlin, Billow,
// RidgedMulti, Voronoi, Cylinder, Sphere, Checkerboard, Constant),
// modifiers (Abs, Invert, Clamp, ScaleBias, Curve, Terrace, Cache),
// combiners (Add, Multiply, Min, Max, Power, Blend, Selector) and
// coordinate transformers (ScalePoint, TranslatePoint, RotatePoint,
// Displace, Line, Turbulence). A module may feed several parents, so a
// graph is a DAG rather than a tree.
//
// # Quick Start
//
//	k := kernel.New(42)
//	perlin := noise.Must(noise.NewPerlin(k))
//	hills := noise.Must(noise.NewScaleBias(perlin, 0.5, 0.25))
//
//	v := noise.Evaluate(hills, 1.25, 0.5, 3.0)
//
// # Backends
//
// Evaluate interprets a graph directly. Package shader compiles the same
// graph into a flat instruction stream with explicit coordinate and result
// stacks, rendered as WGSL, and both backends compute identical values
// because every formula lives in one place (internal/ops).
//
// # Related packages
//
//   - kernel: the permutation-table gradient noise sampled by generators
//   - interp: interpolation helpers shared by both backends
//   - shader: instruction-stream compiler and WGSL emitter
//   - persist: binary graph format
//   - reconstruct: Go source that rebuilds a graph
//   - mapping: plane, cylinder and sphere noise maps
//   - render: color gradients and lighting
//
// # Concurrency
//
// Kernels and module parameters are read-only during evaluation, so a
// graph can be evaluated from many goroutines at once, except for Cache
// modules, whose single slot belongs to one goroutine. Parallel callers
// clone cache-bearing graphs per worker; package mapping does this.
package noise

// Version is the current version of the library.
const Version = "0.1.0"
