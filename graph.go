package noise

import (
	"fmt"

	"github.com/gogpu/noise/internal/ops"
)

// Walk calls fn once for every distinct module reachable from root,
// sources before the modules that use them, in source order. Walk stops at
// the first error returned by fn and reports ErrCycle when a module is
// reachable from itself.
func Walk(root Module, fn func(Module) error) error {
	if isNil(root) {
		return ErrNilSource
	}
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[Module]uint8)
	var visit func(m Module) error
	visit = func(m Module) error {
		switch state[m] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w: at %s %q", ErrCycle, m.Kind(), m.Name())
		}
		state[m] = visiting
		for _, src := range m.base().sources {
			if isNil(src) {
				return fmt.Errorf("%w: under %s", ErrNilSource, m.Kind())
			}
			if err := visit(src); err != nil {
				return err
			}
		}
		state[m] = done
		return fn(m)
	}
	return visit(root)
}

// Validate checks that root is a well-formed graph: every source slot is
// filled and no module is reachable from itself. Curve and Terrace modules
// with too few control points are valid; they evaluate with the default
// points and a warning is logged.
func Validate(root Module) error {
	return Walk(root, func(m Module) error {
		switch v := m.(type) {
		case *Curve:
			if len(v.points) < ops.MinCurvePoints {
				Logger().Warn("noise: curve has too few control points, using defaults",
					"name", v.Name(), "points", len(v.points), "min", ops.MinCurvePoints)
			}
		case *Terrace:
			if len(v.points) < ops.MinTerracePoints {
				Logger().Warn("noise: terrace has too few control points, using defaults",
					"name", v.Name(), "points", len(v.points), "min", ops.MinTerracePoints)
			}
		}
		return nil
	})
}

// Modules returns the distinct modules reachable from root in Walk order.
func Modules(root Module) ([]Module, error) {
	var out []Module
	err := Walk(root, func(m Module) error {
		out = append(out, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ContainsCache reports whether a Cache module is reachable from root.
func ContainsCache(root Module) bool {
	found := false
	_ = Walk(root, func(m Module) error {
		if m.Kind() == KindCache {
			found = true
		}
		return nil
	})
	return found
}

// Clone returns a deep copy of the graph rooted at root. Sharing is
// preserved: a module reached through several parents is copied once.
// Kernels are shared, being read-only, and Cache slots start empty.
func Clone(root Module) (Module, error) {
	copies := make(map[Module]Module)
	err := Walk(root, func(m Module) error {
		c := m.shallowCopy()
		srcs := c.base().sources
		for i, s := range srcs {
			srcs[i] = copies[s]
		}
		copies[m] = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return copies[root], nil
}
