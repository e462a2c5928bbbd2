package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/nightwalk/common"
	"github.com/milk9111/nightwalk/ecs/component"
	"github.com/milk9111/nightwalk/prefabs"
)

const inputDispatchScript = `
__out = frame(__frame, __time)
`

// ScriptSource drives input from a tengo script that defines
// frame(n, t) and returns a map of move_x, move_z, look_x, look_y, sprint,
// crouch and flashlight. Missing keys read as zero.
type ScriptSource struct {
	name     string
	compiled *tengo.Compiled
	elapsed  float64
}

// LoadScriptSource compiles a script from the prefab scripts directory.
func LoadScriptSource(name string) (*ScriptSource, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("load input script %q: %w", name, err)
	}
	return NewScriptSource(name, src)
}

func NewScriptSource(name string, src []byte) (*ScriptSource, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), []byte("\n"+inputDispatchScript)...))
	_ = script.Add("__frame", 0)
	_ = script.Add("__time", 0.0)
	_ = script.Add("__out", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile input script %q: %w", name, err)
	}
	return &ScriptSource{name: name, compiled: compiled}, nil
}

func (s *ScriptSource) Poll(frame uint64, dt float64) (component.Input, error) {
	if s == nil || s.compiled == nil {
		return component.Input{}, fmt.Errorf("nil script source")
	}
	s.elapsed += dt
	if err := s.compiled.Set("__frame", int64(frame)); err != nil {
		return component.Input{}, err
	}
	if err := s.compiled.Set("__time", s.elapsed); err != nil {
		return component.Input{}, err
	}
	if err := s.compiled.Run(); err != nil {
		return component.Input{}, fmt.Errorf("run input script %q: %w", s.name, err)
	}

	out := s.compiled.Get("__out").Map()
	if out == nil {
		return component.Input{}, fmt.Errorf("input script %q: frame must return a map", s.name)
	}
	return component.Input{
		MoveX:          common.Clamp(scriptFloat(out["move_x"]), -1, 1),
		MoveZ:          common.Clamp(scriptFloat(out["move_z"]), -1, 1),
		LookX:          scriptFloat(out["look_x"]),
		LookY:          scriptFloat(out["look_y"]),
		Sprint:         scriptBool(out["sprint"]),
		CrouchHeld:     scriptBool(out["crouch"]),
		FlashlightHeld: scriptBool(out["flashlight"]),
	}, nil
}

func scriptFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	default:
		return 0
	}
}

func scriptBool(v any) bool {
	b, _ := v.(bool)
	return b
}
