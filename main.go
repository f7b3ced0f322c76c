package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	allAbilities := flag.Bool("all", false, "start with every ability unlocked and every level open")
	debug := flag.Bool("debug", false, "enable prefab hot reload and the no-damage toggle (F1)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "start at the named level from prefabs/levels.yaml")
	slotDir := flag.String("slot-dir", "saves", "directory holding save slot files")
	mute := flag.Bool("mute", false, "disable sound and music")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("bossrush")

	game, err := NewGame(Options{
		Level:        *levelName,
		Debug:        *debug,
		AllAbilities: *allAbilities,
		SlotDir:      *slotDir,
		Mute:         *mute,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
