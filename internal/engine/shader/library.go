package shader

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/lighthouse/internal/engine/material"
	"github.com/Faultbox/lighthouse/internal/engine/shader/shaders"
	"github.com/Faultbox/lighthouse/internal/logger"
)

// ErrMissingUniform is returned when a program lacks a uniform every draw needs.
var ErrMissingUniform = errors.New("missing uniform")

// Program is a linked shader program with its uniform locations resolved.
type Program struct {
	ID uint32

	Model      int32
	View       int32
	Projection int32
	Eye        int32

	LightPosition  int32
	LightIntensity int32

	AmbientColor int32
	DiffuseColor int32
	Coefficients int32
	Shininess    int32
}

// Library holds one program per shading technique.
type Library struct {
	programs map[material.Shader]*Program
}

// source returns the GLSL stages for a shading technique.
func source(s material.Shader) (vert, frag string, err error) {
	switch s {
	case material.Phong:
		return shaders.PhongVertexShader, shaders.PhongFragmentShader, nil
	case material.Gouraud:
		return shaders.GouraudVertexShader, shaders.GouraudFragmentShader, nil
	}
	return "", "", fmt.Errorf("no program for %s", s)
}

// NewLibrary compiles the programs for every supported shading technique.
// Requires a current GL context.
func NewLibrary() (*Library, error) {
	lib := &Library{programs: make(map[material.Shader]*Program)}
	for _, s := range []material.Shader{material.Phong, material.Gouraud} {
		p, err := load(s)
		if err != nil {
			lib.Close()
			return nil, fmt.Errorf("%s program: %w", s, err)
		}
		lib.programs[s] = p
		logger.Debug("shader program created",
			zap.Stringer("shader", s),
			zap.Uint32("program", p.ID),
		)
	}
	return lib, nil
}

func load(s material.Shader) (*Program, error) {
	vert, frag, err := source(s)
	if err != nil {
		return nil, err
	}
	id, err := CompileProgram(vert, frag)
	if err != nil {
		return nil, err
	}

	p := &Program{
		ID:             id,
		Eye:            GetUniform(id, "u_eye"),
		LightPosition:  GetUniform(id, "u_lightPosition"),
		LightIntensity: GetUniform(id, "u_lightIntensity"),
		AmbientColor:   GetUniform(id, "u_ambientColor"),
		DiffuseColor:   GetUniform(id, "u_diffuseColor"),
		Coefficients:   GetUniform(id, "u_coefficients"),
		Shininess:      GetUniform(id, "u_shininess"),
	}
	err = requireUniforms(func(name string) int32 { return GetUniform(id, name) },
		uniformSlot{"u_model", &p.Model},
		uniformSlot{"u_view", &p.View},
		uniformSlot{"u_projection", &p.Projection},
	)
	if err != nil {
		gl.DeleteProgram(id)
		return nil, err
	}
	return p, nil
}

// uniformSlot names a uniform every program must expose and where its location goes.
type uniformSlot struct {
	name string
	loc  *int32
}

// requireUniforms resolves each slot through lookup and fails on the first
// uniform the program does not expose.
func requireUniforms(lookup func(string) int32, slots ...uniformSlot) error {
	for _, s := range slots {
		loc := lookup(s.name)
		if loc < 0 {
			return fmt.Errorf("%w: %q", ErrMissingUniform, s.name)
		}
		*s.loc = loc
	}
	return nil
}

// Get returns the program for a shading technique.
func (l *Library) Get(s material.Shader) (*Program, bool) {
	p, ok := l.programs[s]
	return p, ok
}

// Each calls fn for every program in the library.
func (l *Library) Each(fn func(material.Shader, *Program)) {
	for s, p := range l.programs {
		fn(s, p)
	}
}

// Close deletes all programs.
func (l *Library) Close() {
	for s, p := range l.programs {
		gl.DeleteProgram(p.ID)
		delete(l.programs, s)
	}
}
