package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/dungeondash/audio"
	"github.com/milk9111/dungeondash/common"
	"github.com/milk9111/dungeondash/ecs"
	"github.com/milk9111/dungeondash/game"
	"github.com/milk9111/dungeondash/prefabs"
)

type Game struct {
	session  *game.Session
	synth    *audio.Synth
	savePath string
	dt       float64

	watcher *prefabs.Watcher
	pause   *ebitenui.UI
	paused  bool
	quit    bool
	status  string
}

func NewGame(session *game.Session, synth *audio.Synth, savePath string, dt float64) *Game {
	g := &Game{session: session, synth: synth, savePath: savePath, dt: dt}
	g.pause = NewPauseUI(g)

	var dirs []string
	for _, dir := range []string{"prefabs", filepath.Join("prefabs", "scripts")} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) > 0 {
		w, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			log.Printf("prefabs: watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if g.quit {
		g.save()
		return ebiten.Termination
	}
	g.reloadChanged()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.synth.SetMuted(!g.synth.Muted())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.save()
	}
	if g.paused {
		g.pause.Update()
		return nil
	}

	g.session.SetInput(readInput())
	for _, evt := range g.session.Update(g.dt) {
		if evt.Kind == ecs.EventCheckpoint {
			g.save()
		}
	}
	return nil
}

func (g *Game) reloadChanged() {
	if g.watcher == nil {
		return
	}
	changed := g.watcher.Drain()
	if len(changed) == 0 {
		return
	}
	reloadArena := false
	for _, name := range changed {
		if filepath.Ext(name) == ".tengo" {
			g.session.ReloadScripts()
			continue
		}
		reloadArena = true
	}
	if !reloadArena {
		g.status = "scripts reloaded"
		return
	}
	if err := g.session.Reload(); err != nil {
		log.Printf("prefabs: reload: %v", err)
		g.status = "reload failed"
		return
	}
	g.status = "arena reloaded"
}

func (g *Game) newGame() {
	if err := g.session.NewGame(); err != nil {
		log.Printf("new game: %v", err)
		return
	}
	g.paused = false
}

func (g *Game) save() {
	if g.savePath == "" {
		return
	}
	if err := g.session.Save(g.savePath); err != nil {
		log.Printf("save: %v", err)
		return
	}
	g.status = "saved"
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawArena(screen, g.session.Snapshot(), g.status)
	if g.paused {
		g.pause.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
