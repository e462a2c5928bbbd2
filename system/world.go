package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/nightwalk/common"
	"github.com/milk9111/nightwalk/ecs"
	"github.com/milk9111/nightwalk/ecs/component"
	"github.com/milk9111/nightwalk/ecs/entity"
	ecssystem "github.com/milk9111/nightwalk/ecs/system"
	"github.com/milk9111/nightwalk/levels"
	"github.com/milk9111/nightwalk/prefabs"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const DefaultLevel = "arena"

// Options configures a scene.
type Options struct {
	Level   string
	Variant component.LocomotionVariant
	Input   ecssystem.InputSource
	Cursor  ecssystem.CursorLocker
}

// World owns the level, the ECS world with its physics, and the per-frame
// system schedule for one player.
type World struct {
	ECS     *ecs.World
	Physics *ecs.PhysicsWorld
	Level   *levels.Level

	Player     ecs.Entity
	Camera     ecs.Entity
	Flashlight ecs.Entity

	Input *ecssystem.InputSystem

	variant   component.LocomotionVariant
	scheduler *ecs.Scheduler
	render    *ecssystem.RenderSystem
}

// NewWorld loads a level and builds the player, its camera and the
// flashlight rig at the level spawn.
func NewWorld(opts Options) (*World, error) {
	name := opts.Level
	if name == "" {
		name = DefaultLevel
	}
	lvl, err := loadLevel(name)
	if err != nil {
		return nil, err
	}

	ew := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld(lvl.FloorY)
	ew.SetPhysicsWorld(pw)
	for _, c := range lvl.SolidCells() {
		x, z := float64(c.X)*common.TileSize, float64(c.Z)*common.TileSize
		pw.AddSolidBox(x, z, x+common.TileSize, z+common.TileSize)
	}

	spawn := mgl64.Vec3{
		(float64(lvl.SpawnX) + 0.5) * common.TileSize,
		lvl.FloorY,
		(float64(lvl.SpawnZ) + 0.5) * common.TileSize,
	}
	player, err := entity.NewPlayerAt(ew, opts.Variant, spawn, lvl.SpawnYaw)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	camera, err := entity.NewCamera(ew)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	flashlight, err := entity.NewFlashlightFor(ew, player)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	cursor := opts.Cursor
	if cursor == nil {
		cursor = &ecssystem.RecordingCursor{}
	}
	input := ecssystem.NewInputSystem(opts.Input)
	rigs := ecssystem.NewCameraRigSystem()
	rigs.Init(ew)

	w := &World{
		ECS:        ew,
		Physics:    pw,
		Level:      lvl,
		Player:     player,
		Camera:     camera,
		Flashlight: flashlight,
		Input:      input,
		variant:    opts.Variant,
		scheduler: ecs.NewScheduler(
			input,
			ecssystem.NewLocomotionSystem(cursor),
			rigs,
		),
	}
	log.Info().
		Str("level", name).
		Int("walls", len(pw.Solids())).
		Str("variant", string(w.Locomotion().Variant)).
		Msgf("scene: spawned player at %.2f,%.2f", spawn.X(), spawn.Z())
	return w, nil
}

// Step runs one frame and returns the events it produced.
func (w *World) Step(dt float64) []ecs.Event {
	w.scheduler.Update(w.ECS, dt)
	events := w.ECS.Events().Drain()
	for _, evt := range events {
		logEvent(w.ECS.Frame(), evt)
	}
	return events
}

func (w *World) Draw(screen *ebiten.Image) {
	if w.render == nil {
		w.render = ecssystem.NewRenderSystem()
	}
	w.render.Draw(w.ECS, screen)
}

// Locomotion returns the player's controller state.
func (w *World) Locomotion() *component.Locomotion {
	loco, _ := ecs.Get(w.ECS, w.Player, component.LocomotionComponent.Kind())
	return loco
}

// PlayerPrefab is the prefab file the player was built from.
func (w *World) PlayerPrefab() string {
	return entity.PlayerPrefab(w.variant)
}

// ReloadTuning re-reads the player prefab and applies its locomotion tuning
// without resetting posture, velocity or look state.
func (w *World) ReloadTuning() error {
	loco := w.Locomotion()
	if loco == nil {
		return errors.New("reload tuning: player has no locomotion")
	}
	spec, err := prefabs.LoadEntityBuildSpec(w.PlayerPrefab())
	if err != nil {
		return fmt.Errorf("reload tuning: %w", err)
	}
	ls, err := prefabs.DecodeComponentSpec[prefabs.LocomotionComponentSpec](spec.Components["locomotion"])
	if err != nil {
		return fmt.Errorf("reload tuning: decode locomotion: %w", err)
	}
	if err := entity.ApplyLocomotionSpec(loco, ls); err != nil {
		return fmt.Errorf("reload tuning: %w", err)
	}
	log.Info().Str("prefab", w.PlayerPrefab()).Str("variant", string(loco.Variant)).Msg("scene: tuning reloaded")
	return nil
}

// ReloadScript recompiles a tengo input script and swaps it in as the input
// source. Held keys carry across the swap. On error the current source stays.
func (w *World) ReloadScript(name string) error {
	if w.Input == nil {
		return errors.New("reload script: no input system")
	}
	src, err := ecssystem.LoadScriptSource(name)
	if err != nil {
		return fmt.Errorf("reload script: %w", err)
	}
	w.Input.SetSource(src)
	log.Info().Str("script", name).Uint64("frame", w.ECS.Frame()).Msg("scene: input script reloaded")
	return nil
}

// TuningYAML renders the live locomotion tuning as a prefab component block.
func (w *World) TuningYAML() ([]byte, error) {
	loco := w.Locomotion()
	if loco == nil {
		return nil, errors.New("tuning: player has no locomotion")
	}
	return yaml.Marshal(map[string]any{"locomotion": entity.TuningSpec(loco)})
}

func logEvent(frame uint64, evt ecs.Event) {
	switch data := evt.Data.(type) {
	case ecs.CrouchEvent:
		log.Debug().Uint64("frame", frame).Stringer("entity", data.Entity).Bool("crouching", data.Crouching).Float64("target_height", data.TargetHeight).Msg(evt.Type)
	case ecs.FlashlightEvent:
		log.Debug().Uint64("frame", frame).Stringer("entity", data.Entity).Bool("enabled", data.Enabled).Msg(evt.Type)
	case ecs.FaultEvent:
		log.Debug().Uint64("frame", frame).Stringer("entity", data.Entity).Str("system", data.System).AnErr("cause", data.Err).Msg(evt.Type)
	default:
		log.Debug().Uint64("frame", frame).Msg(evt.Type)
	}
}

// loadLevel tries embedded levels first, then a file on disk.
func loadLevel(name string) (*levels.Level, error) {
	if lvl, err := levels.LoadLevelFromFS(name); err == nil {
		return lvl, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load level %s: %w", name, err)
	}
	lvl, err := levels.ParseLevel(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load level %s: %w", name, err)
	}
	return lvl, nil
}
