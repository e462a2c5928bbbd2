package main

import (
	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/nightwalk/common"
	"github.com/milk9111/nightwalk/ecs/component"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Level       string `help:"Level name in levels/ (basename, .json optional) or a path on disk." default:"arena"`
	Variant     string `help:"Locomotion variant." enum:"basic,axis_split" default:"axis_split"`
	Script      string `help:"Drive input from a tengo script in prefabs/scripts instead of keyboard and mouse."`
	Debug       bool   `help:"Whether to enable debug logging."`
	NoWatch     bool   `help:"Disable prefab hot reload."`
	BaseMonitor bool   `help:"Use the base monitor instead of the primary one." short:"m"`
}

func parseVariant(s string) (component.LocomotionVariant, error) {
	return component.ParseVariant(s)
}

func main() {
	kong.Parse(&CLI,
		kong.Name("nightwalk"),
		kong.Description("first-person walk-around with a flashlight rig"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	common.SetupLogging(CLI.Debug)

	if CLI.BaseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("nightwalk")

	game, err := NewGame(gameOptions{
		Level:   CLI.Level,
		Variant: CLI.Variant,
		Script:  CLI.Script,
		Watch:   !CLI.NoWatch,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("game exited")
	}
}
