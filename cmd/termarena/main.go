// Command termarena runs the arena in a terminal. Terminals report key
// presses but not releases, so a movement key keeps the player walking for
// a short hold window after each press.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/dungeondash/combat"
	"github.com/milk9111/dungeondash/common"
	"github.com/milk9111/dungeondash/ecs/component"
	"github.com/milk9111/dungeondash/game"
)

const moveHold = 0.15

func main() {
	arenaName := flag.String("arena", "arena", "arena prefab in prefabs/")
	seed := flag.Int64("seed", 1, "random seed for loot and wandering")
	dash := flag.Bool("dash", false, "start with the dash unlocked")
	savePath := flag.String("save", "", "save file to load at start and write on quit")
	tps := flag.Int("tps", 30, "simulation ticks per second")
	logPath := flag.String("log", "termarena.log", "log file (the terminal is taken by the arena)")
	flag.Parse()

	if f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		log.SetOutput(f)
		defer f.Close()
	}

	session, err := game.NewSession(game.Options{Arena: *arenaName, Seed: *seed, DashUnlocked: *dash, LogEvents: true})
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

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	if *tps <= 0 {
		*tps = 30
	}
	run(screen, session, 1/float64(*tps))

	if *savePath != "" {
		if err := session.Save(*savePath); err != nil {
			log.Printf("save: %v", err)
		}
	}
}

func run(screen tcell.Screen, session *game.Session, dt float64) {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer ticker.Stop()

	var (
		move     common.Vec2
		moveLeft float64
		pending  component.Input
	)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'x' {
					return
				}
				if dir, ok := keyDirection(ev); ok {
					move, moveLeft = dir, moveHold
					continue
				}
				switch ev.Rune() {
				case 'j', ' ':
					pending.Attack = true
				case 'k':
					pending.Dash = true
				case 'e':
					pending.Interact = true
				case 'q':
					pending.UsePotion = true
				case 'n':
					if err := session.NewGame(); err != nil {
						log.Printf("new game: %v", err)
					}
				}
			}
		case <-ticker.C:
			if moveLeft -= dt; moveLeft <= 0 {
				move = common.Vec2{}
			}
			pending.Move = move
			session.SetInput(pending)
			pending = component.Input{}
			session.Update(dt)
			draw(screen, session.Snapshot())
		}
	}
}

func keyDirection(ev *tcell.EventKey) (common.Vec2, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return common.V(0, -1), true
	case tcell.KeyDown:
		return common.V(0, 1), true
	case tcell.KeyLeft:
		return common.V(-1, 0), true
	case tcell.KeyRight:
		return common.V(1, 0), true
	}
	switch ev.Rune() {
	case 'w':
		return common.V(0, -1), true
	case 's':
		return common.V(0, 1), true
	case 'a':
		return common.V(-1, 0), true
	case 'd':
		return common.V(1, 0), true
	}
	return common.Vec2{}, false
}

var (
	styleWall   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleEnemy  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleItem   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleProp   = tcell.StyleDefault.Foreground(tcell.ColorPurple)
)

// cellsPerUnit maps world units to terminal cells. Cells are roughly twice
// as tall as they are wide.
const (
	cellsPerUnitX = 2.0
	cellsPerUnitY = 1.0
	originX       = 1
	originY       = 2
)

func cell(p common.Vec2) (int, int) {
	return originX + int(p.X*cellsPerUnitX), originY + int(p.Y*cellsPerUnitY)
}

func draw(screen tcell.Screen, snap game.Snapshot) {
	screen.Clear()

	x0, y0 := cell(common.V(snap.Bounds.X, snap.Bounds.Y))
	x1, y1 := cell(common.V(snap.Bounds.X+snap.Bounds.Width, snap.Bounds.Y+snap.Bounds.Height))
	for x := x0 - 1; x <= x1+1; x++ {
		screen.SetContent(x, y0-1, '#', nil, styleWall)
		screen.SetContent(x, y1+1, '#', nil, styleWall)
	}
	for y := y0; y <= y1; y++ {
		screen.SetContent(x0-1, y, '#', nil, styleWall)
		screen.SetContent(x1+1, y, '#', nil, styleWall)
	}

	for _, st := range snap.Entities {
		if st.IsDead {
			continue
		}
		r, style := glyph(st)
		x, y := cell(st.Pos)
		screen.SetContent(x, y, r, nil, style)
	}

	p := snap.Progress
	hud := fmt.Sprintf("coins %d potions %d/%d fragments %d/%d keys %d boss %d dash %v",
		p.Coins, p.Potions, combat.MaxPotions, p.Fragments, combat.MaxFragments, p.Keys, p.BossKeys, p.DashUnlocked)
	if player, ok := snap.Player(); ok {
		hud = fmt.Sprintf("hp %3.0f  %s", player.HP, hud)
	}
	drawText(screen, 0, 0, hud, styleHUD)
	screen.Show()
}

func glyph(st game.EntityStatus) (rune, tcell.Style) {
	switch st.Kind {
	case game.KindPlayer:
		if st.IsDashing {
			return '»', stylePlayer
		}
		return '@', stylePlayer
	case game.KindEnemy:
		if st.IsAttacking {
			return 'E', styleEnemy
		}
		return 'e', styleEnemy
	case game.KindPickup:
		return '*', styleItem
	case game.KindLootBag:
		return '$', styleItem
	case game.KindDoor:
		return '+', styleProp
	case game.KindChest:
		if st.State == "opened" {
			return 'u', styleProp
		}
		return '=', styleProp
	case game.KindCheckpoint:
		return '^', styleProp
	}
	return '?', styleHUD
}

func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
