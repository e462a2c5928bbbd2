package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/nightwalk/common"
	ecssystem "github.com/milk9111/nightwalk/ecs/system"
	"github.com/milk9111/nightwalk/prefabs"
	"github.com/milk9111/nightwalk/system"
	"github.com/rs/zerolog/log"
	"golang.design/x/clipboard"
)

type Game struct {
	frames int

	scene   *system.World
	mouse   *ecssystem.EbitenSource
	cursor  ecssystem.CursorLocker
	watcher *prefabs.Watcher
	script  string

	pauseUI *ebitenui.UI
	paused  bool
	quit    bool

	clipboardOK bool
	status      string
}

type gameOptions struct {
	Level   string
	Variant string
	Script  string
	Watch   bool
}

func NewGame(opts gameOptions) (*Game, error) {
	variant, err := parseVariant(opts.Variant)
	if err != nil {
		return nil, err
	}

	g := &Game{cursor: ecssystem.EbitenCursor{}, script: opts.Script}

	var source ecssystem.InputSource
	if opts.Script != "" {
		src, err := ecssystem.LoadScriptSource(opts.Script)
		if err != nil {
			return nil, err
		}
		source = src
	} else {
		g.mouse = ecssystem.NewEbitenSource()
		source = g.mouse
	}

	scene, err := system.NewWorld(system.Options{
		Level:   opts.Level,
		Variant: variant,
		Input:   source,
		Cursor:  g.cursor,
	})
	if err != nil {
		return nil, err
	}
	g.scene = scene
	g.pauseUI = NewPauseUI(g)

	if err := clipboard.Init(); err != nil {
		log.Warn().Err(err).Msg("clipboard unavailable, tuning export disabled")
	} else {
		g.clipboardOK = true
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			log.Warn().Err(err).Msg("prefab hot reload disabled")
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		g.copyTuning()
	}
	g.reloadChangedPrefabs()

	g.scene.Step(1.0 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) setPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	if paused {
		g.cursor.Unlock()
		return
	}
	g.cursor.Lock()
	if g.mouse != nil {
		g.mouse.ResetMouse()
	}
}

func (g *Game) copyTuning() {
	if !g.clipboardOK {
		g.status = "clipboard unavailable"
		return
	}
	out, err := g.scene.TuningYAML()
	if err != nil {
		log.Error().Err(err).Msg("export tuning")
		g.status = "export failed"
		return
	}
	clipboard.Write(clipboard.FmtText, out)
	g.status = "tuning copied to clipboard"
	log.Info().Int("bytes", len(out)).Msg("tuning copied to clipboard")
}

func (g *Game) reloadChangedPrefabs() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Warn().Err(err).Msg("prefab watcher")
		}
	default:
	}
	for _, path := range g.watcher.Drain() {
		if prefabs.IsScript(path) {
			g.reloadScript(path)
			continue
		}
		if prefabs.PrefabName(path) != g.scene.PlayerPrefab() {
			log.Debug().Str("path", path).Msg("prefab changed, not reloadable")
			continue
		}
		if err := g.scene.ReloadTuning(); err != nil {
			log.Error().Err(err).Str("path", path).Msg("hot reload")
			g.status = "reload failed"
			continue
		}
		g.status = "tuning reloaded"
	}
}

func (g *Game) reloadScript(path string) {
	if g.script == "" || prefabs.ScriptName(path) != prefabs.ScriptName(g.script) {
		log.Debug().Str("path", path).Msg("script changed, not in use")
		return
	}
	if err := g.scene.ReloadScript(g.script); err != nil {
		log.Error().Err(err).Str("path", path).Msg("hot reload")
		g.status = "script reload failed"
		return
	}
	g.status = "script reloaded"
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f  %s", ebiten.ActualFPS(), g.status), 8, common.BaseHeight-20)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
