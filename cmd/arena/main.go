package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/dungeondash/audio"
	"github.com/milk9111/dungeondash/common"
	"github.com/milk9111/dungeondash/game"
)

func main() {
	arenaName := flag.String("arena", "arena", "arena prefab in prefabs/ (basename, .yaml optional)")
	seed := flag.Int64("seed", 1, "random seed for loot and wandering")
	dash := flag.Bool("dash", false, "start with the dash unlocked")
	savePath := flag.String("save", "", "save file to load at start and write on checkpoints and quit")
	mute := flag.Bool("mute", false, "disable audio")
	tps := flag.Int("tps", 60, "simulation ticks per second")
	flag.Parse()

	synth := audio.NewSynth()
	if *mute {
		synth.SetMuted(true)
	} else if err := synth.Init(); err != nil {
		log.Printf("audio: %v (continuing muted)", err)
		synth.SetMuted(true)
	}
	defer synth.Close()

	session, err := game.NewSession(game.Options{
		Arena:        *arenaName,
		Seed:         *seed,
		DashUnlocked: *dash,
		Cues:         synth,
		LogEvents:    true,
	})
	if err != nil {
		log.Fatal(err)
	}
	if *savePath != "" {
		if _, err := os.Stat(*savePath); err == nil {
			if err := session.Load(*savePath); err != nil {
				log.Printf("load save: %v", err)
			}
		}
	}

	if *tps <= 0 {
		*tps = 60
	}
	ebiten.SetTPS(*tps)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("dungeondash")

	g := NewGame(session, synth, *savePath, 1/float64(*tps))
	defer g.Close()
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
