package shader

import "errors"

var (
	// ErrUnsupportedModule is returned when the compiler reaches a module
	// it has no lowering for. No text is produced.
	ErrUnsupportedModule = errors.New("shader: unsupported module")

	// ErrContextUsed is returned when Compile is called twice on one
	// Context.
	ErrContextUsed = errors.New("shader: context already compiled a graph")

	// ErrCompile wraps failures of the WGSL to SPIR-V compiler.
	ErrCompile = errors.New("shader: WGSL compilation failed")
)
