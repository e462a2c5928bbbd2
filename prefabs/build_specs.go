package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is a named bag of component specs keyed by registry name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec re-encodes a loosely typed component node into T.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type NameComponentSpec struct {
	Value string `yaml:"value"`
}

// TransformComponentSpec positions an entity. Angles are degrees; Parent
// names an entity built earlier.
type TransformComponentSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Z      float64 `yaml:"z"`
	Yaw    float64 `yaml:"yaw"`
	Pitch  float64 `yaml:"pitch"`
	Parent string  `yaml:"parent"`
}

type CharacterBodyComponentSpec struct {
	Height float64 `yaml:"height"`
	Radius float64 `yaml:"radius"`
}

// SpeedSetSpec overrides one axis of speeds. Nil fields keep the preset; an
// explicit zero is applied.
type SpeedSetSpec struct {
	Walk   *float64 `yaml:"walk,omitempty"`
	Run    *float64 `yaml:"run,omitempty"`
	Crouch *float64 `yaml:"crouch,omitempty"`
}

// LocomotionComponentSpec overrides the variant preset; omitted fields keep
// the preset value.
type LocomotionComponentSpec struct {
	Variant        string        `yaml:"variant"`
	Forward        *SpeedSetSpec `yaml:"forward,omitempty"`
	Strafe         *SpeedSetSpec `yaml:"strafe,omitempty"`
	CrouchHeight   *float64      `yaml:"crouch_height,omitempty"`
	CrouchDuration *float64      `yaml:"crouch_duration,omitempty"`
	LookSpeed      *float64      `yaml:"look_speed,omitempty"`
	LookXLimit     *float64      `yaml:"look_x_limit,omitempty"`
	Gravity        *float64      `yaml:"gravity,omitempty"`
	Camera         string        `yaml:"camera,omitempty"`
	Flashlight     string        `yaml:"flashlight,omitempty"`
}

type CameraRigComponentSpec struct {
	Speed float64 `yaml:"speed"`
}

type LightComponentSpec struct {
	Enabled bool       `yaml:"enabled"`
	Range   float64    `yaml:"range"`
	Angle   float64    `yaml:"angle"`
	Color   *YAMLColor `yaml:"color"`
}
