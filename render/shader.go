package render

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/mandelbrot.wgsl
var mandelbrotShaderSource string

// Shader entry points.
const (
	vertexEntryPoint   = "vertex_main"
	fragmentEntryPoint = "fragment_main"
)

// ShaderSource returns the WGSL source of the fractal shader.
func ShaderSource() string { return mandelbrotShaderSource }

// compileShaderToSPIRV compiles WGSL source to SPIR-V words.
func compileShaderToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShaderCompile, err)
	}

	// SPIR-V is little-endian 32-bit words.
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}

// createShaderModule validates the WGSL by compiling it up front, then
// hands both forms to the backend so it can use whichever it consumes.
func createShaderModule(device hal.Device, label, wgslSource string) (hal.ShaderModule, error) {
	spirv, err := compileShaderToSPIRV(wgslSource)
	if err != nil {
		return nil, err
	}
	return device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: label,
		Source: hal.ShaderSource{
			WGSL:  wgslSource,
			SPIRV: spirv,
		},
	})
}
