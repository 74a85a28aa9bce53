// Package shader provides OpenGL shader compilation utilities.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	// Compile vertex shader
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	// Compile fragment shader
	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	// Link program
	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}

// BindUniformBlock binds the named uniform block to the given binding point.
// Returns an error if the program has no active block with that name.
func BindUniformBlock(program uint32, name string, binding uint32) error {
	idx := gl.GetUniformBlockIndex(program, gl.Str(name+"\x00"))
	if idx == gl.INVALID_INDEX {
		return fmt.Errorf("uniform block %q not found in program %d", name, program)
	}
	gl.UniformBlockBinding(program, idx, binding)
	return nil
}

// SetSamplerUnit points the named sampler uniform at a texture unit without
// requiring the program to be current.
func SetSamplerUnit(program uint32, name string, unit int32) error {
	loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	if loc < 0 {
		return fmt.Errorf("sampler %q not found in program %d", name, program)
	}
	gl.ProgramUniform1i(program, loc, unit)
	return nil
}
