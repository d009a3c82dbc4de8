package shader

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/noise"
)

// SPIRV compiles the generated WGSL module to SPIR-V words ready for
// shader module creation.
func (r *Result) SPIRV() ([]uint32, error) {
	return CompileSPIRV(r.Source())
}

// CompileSPIRV compiles WGSL source to SPIR-V words.
func CompileSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompile, err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("%w: SPIR-V length %d is not a multiple of 4", ErrCompile, len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	noise.Logger().Debug("shader: compiled SPIR-V", "words", len(words))
	return words, nil
}
