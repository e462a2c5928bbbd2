package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/milk9111/nightwalk/common"
	"github.com/milk9111/nightwalk/ecs"
	"github.com/milk9111/nightwalk/ecs/component"
	"github.com/milk9111/nightwalk/ecs/entity"
	ecssystem "github.com/milk9111/nightwalk/ecs/system"
	"github.com/milk9111/nightwalk/system"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Script  string  `help:"Tengo input script in prefabs/scripts." default:"patrol"`
	Frames  int     `help:"Number of frames to simulate." default:"600"`
	DT      float64 `name:"dt" help:"Seconds per frame." default:"0.0166666667"`
	Variant string  `help:"Locomotion variant." enum:"basic,axis_split" default:"axis_split"`
	Level   string  `help:"Level name or path." default:"arena"`
	Debug   bool    `help:"Whether to enable debug logging."`
}

type options struct {
	Script  string
	Frames  int
	DT      float64
	Variant string
	Level   string
}

type summary struct {
	Position   [3]float64
	Yaw        float64
	Pitch      float64
	Height     float64
	Crouching  bool
	Grounded   bool
	Flashlight bool
	Events     map[string]int
	Faulted    bool
}

func run(opts options) (summary, error) {
	var out summary

	variant, err := component.ParseVariant(opts.Variant)
	if err != nil {
		return out, err
	}
	src, err := ecssystem.LoadScriptSource(opts.Script)
	if err != nil {
		return out, err
	}
	scene, err := system.NewWorld(system.Options{
		Level:   opts.Level,
		Variant: variant,
		Input:   src,
		Cursor:  &ecssystem.RecordingCursor{},
	})
	if err != nil {
		return out, err
	}

	out.Events = make(map[string]int)
	for i := 0; i < opts.Frames; i++ {
		for _, evt := range scene.Step(opts.DT) {
			out.Events[evt.Type]++
		}
	}

	pos, _, _ := ecs.WorldPose(scene.ECS, scene.Player)
	out.Position = [3]float64{pos.X(), pos.Y(), pos.Z()}
	out.Yaw = entity.Heading(scene.ECS, scene.Player)
	if loco := scene.Locomotion(); loco != nil {
		out.Pitch = loco.RotationX
		out.Crouching = loco.IsCrouching
		out.Faulted = loco.Faulted
	}
	if body, ok := ecs.Get(scene.ECS, scene.Player, component.CharacterBodyComponent.Kind()); ok {
		out.Height = body.Height
		out.Grounded = body.Grounded
	}
	if light, ok := ecs.Get(scene.ECS, scene.Flashlight, component.LightComponent.Kind()); ok {
		out.Flashlight = light.Enabled
	}
	return out, nil
}

func main() {
	kong.Parse(&CLI,
		kong.Name("fpsim"),
		kong.Description("run the first-person controller headless from a script"),
		kong.UsageOnError(),
	)
	common.SetupLogging(CLI.Debug)

	s, err := run(options{
		Script:  CLI.Script,
		Frames:  CLI.Frames,
		DT:      CLI.DT,
		Variant: CLI.Variant,
		Level:   CLI.Level,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}

	log.Info().
		Floats64("position", s.Position[:]).
		Float64("yaw", s.Yaw).
		Float64("pitch", s.Pitch).
		Float64("height", s.Height).
		Bool("crouching", s.Crouching).
		Bool("grounded", s.Grounded).
		Bool("flashlight", s.Flashlight).
		Interface("events", s.Events).
		Msgf("simulated %d frames", CLI.Frames)
	if s.Faulted {
		os.Exit(1)
	}
}
