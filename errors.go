package noise

import "errors"

// Construction errors. Constructors and setters wrap them with detail;
// test with errors.Is.
var (
	// ErrNilSource is returned when a required source is nil.
	ErrNilSource = errors.New("noise: nil source module")

	// ErrSourceIndex is returned for an out-of-range source index or a
	// wrong number of sources.
	ErrSourceIndex = errors.New("noise: source index out of range")

	// ErrNilKernel is returned when a generator is built without a kernel.
	ErrNilKernel = errors.New("noise: nil noise kernel")

	// ErrDuplicatePoint is returned when a control point with the same
	// input value already exists.
	ErrDuplicatePoint = errors.New("noise: duplicate control point")

	// ErrCycle is returned when a graph walk reaches a module twice on the
	// same path.
	ErrCycle = errors.New("noise: module graph contains a cycle")
)
