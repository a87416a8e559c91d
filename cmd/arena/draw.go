package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/dungeondash/common"
	"github.com/milk9111/dungeondash/game"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

var hudFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

const (
	arenaOffsetX = 16
	arenaOffsetY = 48
)

func toScreen(p common.Vec2) (float32, float32) {
	return float32(arenaOffsetX + p.X*common.PixelsPerUnit), float32(arenaOffsetY + p.Y*common.PixelsPerUnit)
}

func kindColor(st game.EntityStatus) color.Color {
	switch st.Kind {
	case game.KindPlayer:
		if st.IsDashing {
			return colornames.Deepskyblue
		}
		return colornames.Crimson
	case game.KindEnemy:
		return colornames.Olivedrab
	case game.KindPickup:
		return colornames.Gold
	case game.KindLootBag:
		return colornames.Saddlebrown
	case game.KindDoor:
		return colornames.Slategray
	case game.KindChest:
		return colornames.Peru
	case game.KindCheckpoint:
		return colornames.Mediumpurple
	default:
		return colornames.White
	}
}

func drawArena(screen *ebiten.Image, snap game.Snapshot, status string) {
	screen.Fill(colornames.Black)

	x, y := toScreen(common.V(snap.Bounds.X, snap.Bounds.Y))
	w := float32(snap.Bounds.Width * common.PixelsPerUnit)
	h := float32(snap.Bounds.Height * common.PixelsPerUnit)
	vector.FillRect(screen, x, y, w, h, colornames.Darkslategray, false)
	vector.StrokeRect(screen, x, y, w, h, 2, colornames.Lightgrey, false)

	for _, st := range snap.Entities {
		drawEntity(screen, st)
	}

	p := snap.Progress
	hud := fmt.Sprintf("coins %d  potions %d  fragments %d  keys %d  boss keys %d  dash %v  checkpoint %d",
		p.Coins, p.Potions, p.Fragments, p.Keys, p.BossKeys, p.DashUnlocked, p.Checkpoint)
	if player, ok := snap.Player(); ok {
		hud = fmt.Sprintf("hp %.0f/%.0f  %s", player.HP, player.MaxHP, hud)
		if player.IsDead {
			hud += "  (respawning)"
		}
	}
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(arenaOffsetX, 8)
	op.ColorScale.ScaleWithColor(colornames.White)
	ebtext.Draw(screen, hud, hudFace, op)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  %s", ebiten.ActualTPS(), status), arenaOffsetX, 26)
}

func drawEntity(screen *ebiten.Image, st game.EntityStatus) {
	if st.IsDead {
		return
	}
	cx, cy := toScreen(st.Pos)
	r := float32(st.Radius * common.PixelsPerUnit)
	if r <= 0 {
		r = 6
	}
	clr := kindColor(st)
	if st.IsFlashing {
		clr = colornames.White
	}
	vector.FillCircle(screen, cx, cy, r, clr, true)
	if st.IsAttacking {
		vector.StrokeCircle(screen, cx, cy, r+4, 2, colornames.Orangered, true)
	}
	if !st.Facing.IsZero() && (st.Kind == game.KindPlayer || st.Kind == game.KindEnemy) {
		fx, fy := toScreen(st.Pos.Add(st.Facing.Normalize().Scale(st.Radius * 1.4)))
		vector.StrokeLine(screen, cx, cy, fx, fy, 2, colornames.Lightgrey, true)
	}
	if st.MaxHP > 0 && st.Kind == game.KindEnemy {
		frac := float32(st.HP / st.MaxHP)
		vector.FillRect(screen, cx-r, cy-r-8, 2*r*frac, 4, colornames.Limegreen, false)
	}
	if st.Kind == game.KindPlayer && st.DashCooldown > 0 {
		vector.FillRect(screen, cx-r, cy+r+4, 2*r*float32(st.DashCooldown), 3, colornames.Deepskyblue, false)
	}
	if st.Label != "" && st.Kind != game.KindPlayer && st.Kind != game.KindEnemy {
		ebitenutil.DebugPrintAt(screen, st.Label, int(cx-r), int(cy+r+2))
	}
}
