// Package mapping turns a noise graph into a two-dimensional NoiseMap by
// sampling it over a plane, a cylinder or a sphere.
//
// Rows are split into bands evaluated in parallel. A graph holding a Cache
// module is cloned once per worker, so cache slots are never shared between
// goroutines:
//
//	b := mapping.NewSphereBuilder(root, 512, 256)
//	m, err := b.Build(ctx)
package mapping
