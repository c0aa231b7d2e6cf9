package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/planetfall/component"
	"github.com/lixenwraith/planetfall/engine"
	"github.com/lixenwraith/planetfall/parameter"
)

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleWall    = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleEnemy   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleHeavy   = tcell.StyleDefault.Foreground(tcell.ColorDarkMagenta).Bold(true)
	styleHeal    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleDrop    = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleAlert   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

func (g *Game) draw(snap *engine.Snapshot) {
	g.screen.Clear()
	switch snap.Lifecycle {
	case engine.LifecycleMenu:
		g.drawMenu(snap)
	case engine.LifecyclePlaying:
		g.drawPlay(snap)
	case engine.LifecycleGameOver:
		g.drawPlay(snap)
		g.drawGameOver(snap)
	}
	g.screen.Show()
}

func (g *Game) drawMenu(snap *engine.Snapshot) {
	w, h := g.screen.Size()
	y := max(1, h/2-parameter.MenuScoreRows/2-4)

	g.drawCentered(w, y, styleTitle, "P L A N E T F A L L")
	y += 2
	g.drawCentered(w, y, styleDefault, "Enter: start   m: mute   q: quit")
	y += 2
	g.drawCentered(w, y, styleTitle, "HIGH SCORES")
	y++

	if len(snap.HighScores) == 0 {
		g.drawCentered(w, y+1, styleDim, "no scores yet")
	}
	for i, e := range snap.HighScores {
		if i >= parameter.MenuScoreRows {
			break
		}
		line := fmt.Sprintf("%2d. %-*s %8d", i+1, parameter.LeaderboardNameMaxLen, e.Name, e.Score)
		g.drawCentered(w, y+1+i, styleDefault, line)
	}
}

func (g *Game) drawPlay(snap *engine.Snapshot) {
	w, h := g.screen.Size()
	g.drawHUD(w, snap)

	top := parameter.TopMargin
	bottom := h - parameter.BottomMargin - 1
	if bottom-top < 2 || w < 4 {
		return
	}

	// Border
	for x := 0; x < w; x++ {
		g.screen.SetContent(x, top, parameter.GlyphWall, nil, styleWall)
		g.screen.SetContent(x, bottom, parameter.GlyphWall, nil, styleWall)
	}
	for y := top; y <= bottom; y++ {
		g.screen.SetContent(0, y, parameter.GlyphWall, nil, styleWall)
		g.screen.SetContent(w-1, y, parameter.GlyphWall, nil, styleWall)
	}

	view := viewport{left: 1, top: top + 1, width: w - 2, height: bottom - top - 1}

	for _, it := range snap.Items {
		x, y := view.project(it.Position)
		switch it.Kind {
		case component.ItemHeal:
			g.screen.SetContent(x, y, parameter.GlyphHeal, nil, styleHeal)
		case component.ItemWeaponDrop:
			g.screen.SetContent(x, y, parameter.GlyphWeapon, nil, styleDrop)
		}
	}

	for _, e := range snap.Enemies {
		pos, ok := g.arena.Body(e.ID)
		if !ok {
			pos = e.Position
		}
		x, y := view.project(pos)
		switch e.Kind {
		case component.EnemyHeavy:
			g.screen.SetContent(x, y, parameter.GlyphHeavy, nil, styleHeavy)
		default:
			g.screen.SetContent(x, y, parameter.GlyphStandard, nil, styleEnemy)
		}
	}

	px, py := view.project(g.arena.Player)
	g.screen.SetContent(px, py, parameter.GlyphPlayer, nil, stylePlayer)

	g.drawText(1, h-2, styleDefault, snap.LastMessage)
	g.drawText(1, h-1, styleDim, "arrows/wasd: move   space: fire   m: mute   esc: menu")
}

func (g *Game) drawHUD(w int, snap *engine.Snapshot) {
	x := g.drawText(0, 0, styleTitle, fmt.Sprintf("SCORE %d", snap.Score))
	x = g.drawText(x+2, 0, styleDim, fmt.Sprintf("x%.1f", snap.Multiplier))

	x = g.drawText(x+2, 0, styleDefault, "HP ")
	filled := snap.Health * parameter.HealthBarWidth / parameter.PlayerMaxHealth
	hpStyle := styleHeal
	if snap.Health <= parameter.PlayerMaxHealth/4 {
		hpStyle = styleAlert
	}
	for i := 0; i < parameter.HealthBarWidth; i++ {
		if i < filled {
			g.screen.SetContent(x+i, 0, parameter.GlyphHealthOn, nil, hpStyle)
		} else {
			g.screen.SetContent(x+i, 0, parameter.GlyphHealthOff, nil, styleDim)
		}
	}
	g.drawText(x+parameter.HealthBarWidth+1, 0, hpStyle, fmt.Sprintf("%3d", snap.Health))

	weapon := tcell.StyleDefault.Foreground(tcell.GetColor(snap.Weapon.Color))
	x = g.drawText(0, 1, weapon, fmt.Sprintf("%s (%d)", snap.Weapon.Name, snap.Weapon.Damage))
	g.drawText(x+2, 1, styleDim, fmt.Sprintf("enemies %d", len(snap.Enemies)))

	if g.sound != nil && !g.sound.Muted() {
		g.drawText(w-len([]rune(parameter.AudioStr)), 0, styleDim, parameter.AudioStr)
	}
}

func (g *Game) drawGameOver(snap *engine.Snapshot) {
	w, h := g.screen.Size()
	y := h/2 - 2

	g.drawCentered(w, y, styleAlert, " GAME OVER ")
	g.drawCentered(w, y+1, styleDefault, fmt.Sprintf(" final score %d ", snap.Score))

	if g.entering(snap) {
		prompt := fmt.Sprintf(" new high score! name: %s_ ", string(g.name))
		g.drawCentered(w, y+3, styleTitle, prompt)
		g.drawCentered(w, y+4, styleDim, " enter: save   esc: skip ")
		return
	}
	g.drawCentered(w, y+3, styleDim, " enter: play again   esc: menu   q: quit ")
}

// drawText writes s at x,y and returns the column after it
func (g *Game) drawText(x, y int, style tcell.Style, s string) int {
	for _, r := range s {
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func (g *Game) drawCentered(w, y int, style tcell.Style, s string) {
	x := (w - len([]rune(s))) / 2
	g.drawText(max(0, x), y, style, s)
}

// viewport maps the spawn square onto a cell rectangle
type viewport struct {
	left, top, width, height int
}

func (v viewport) project(p component.Vec3) (int, int) {
	span := 2 * parameter.SpawnHalfExtent
	fx := (p.X + parameter.SpawnHalfExtent) / span
	fz := (p.Z + parameter.SpawnHalfExtent) / span
	x := v.left + int(fx*float64(v.width-1)+0.5)
	y := v.top + int(fz*float64(v.height-1)+0.5)
	return clampInt(x, v.left, v.left+v.width-1), clampInt(y, v.top, v.top+v.height-1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
