package main

import (
	"context"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/planetfall/audio"
	"github.com/lixenwraith/planetfall/core"
	"github.com/lixenwraith/planetfall/engine"
	"github.com/lixenwraith/planetfall/parameter"
)

// Game is the terminal collaborator: input, arena mirror and drawing
// Engine direct methods are only called from Run's goroutine
type Game struct {
	screen tcell.Screen
	eng    *engine.Engine
	arena  *Arena
	sound  *audio.SoundManager
	log    zerolog.Logger
	tick   time.Duration

	// Name entry on the game over screen
	name      []rune
	doneEntry uint64 // Session whose name entry finished, saved or skipped
}

// NewGame wires the driver; sound may be nil
func NewGame(screen tcell.Screen, eng *engine.Engine, sound *audio.SoundManager, tick time.Duration, log zerolog.Logger) *Game {
	return &Game{
		screen:    screen,
		eng:       eng,
		arena:     NewArena(),
		sound:     sound,
		log:       log.With().Str("component", "terminal").Logger(),
		tick:      tick,
		doneEntry: ^uint64(0),
	}
}

// Run owns the simulation thread until quit or ctx cancellation
func (g *Game) Run(ctx context.Context) error {
	eventChan := make(chan tcell.Event, parameter.InputEventBuffer)
	core.Go(func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				// Screen finalized
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	ticker := time.NewTicker(g.tick)
	defer ticker.Stop()

	last := time.Now()
	g.draw(g.eng.Snapshot())

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-eventChan:
			if !g.handleInput(ev) {
				return nil
			}

		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now

			g.arena.Step(dt, g.eng.Snapshot(), g.eng)
			g.eng.Update(dt)
			g.draw(g.eng.Snapshot())
		}
	}
}

// handleInput returns false to quit
func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
		return true
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		snap := g.eng.Snapshot()
		switch snap.Lifecycle {
		case engine.LifecycleMenu:
			return g.menuKey(ev)
		case engine.LifecyclePlaying:
			return g.playKey(ev, snap)
		case engine.LifecycleGameOver:
			return g.gameOverKey(ev, snap)
		}
	}
	return true
}

func (g *Game) menuKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		return false
	case tcell.KeyEnter:
		g.start()
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 's', ' ':
			g.start()
		case 'm':
			g.toggleMute()
		}
	}
	return true
}

func (g *Game) playKey(ev *tcell.EventKey, snap *engine.Snapshot) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		g.eng.ResetGame()
		g.arena.Reset()
	case tcell.KeyUp:
		g.arena.MovePlayer(0, -1)
	case tcell.KeyDown:
		g.arena.MovePlayer(0, 1)
	case tcell.KeyLeft:
		g.arena.MovePlayer(-1, 0)
	case tcell.KeyRight:
		g.arena.MovePlayer(1, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'k':
			g.arena.MovePlayer(0, -1)
		case 's', 'j':
			g.arena.MovePlayer(0, 1)
		case 'a', 'h':
			g.arena.MovePlayer(-1, 0)
		case 'd', 'l':
			g.arena.MovePlayer(1, 0)
		case ' ', 'f':
			g.arena.Fire(snap, g.eng)
		case 'm':
			g.toggleMute()
		}
	}
	return true
}

func (g *Game) gameOverKey(ev *tcell.EventKey, snap *engine.Snapshot) bool {
	if g.entering(snap) {
		switch ev.Key() {
		case tcell.KeyEnter:
			if g.eng.SaveHighScore(string(g.name)) {
				g.finishEntry(snap.Session)
			}
		case tcell.KeyEscape:
			g.finishEntry(snap.Session)
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if len(g.name) > 0 {
				g.name = g.name[:len(g.name)-1]
			}
		case tcell.KeyRune:
			r := ev.Rune()
			if len(g.name) < parameter.LeaderboardNameMaxLen && unicode.IsPrint(r) {
				g.name = append(g.name, r)
			}
		}
		return true
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		g.eng.ResetGame()
		g.arena.Reset()
	case tcell.KeyEnter:
		g.start()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'r':
			g.start()
		case 'm':
			g.toggleMute()
		}
	}
	return true
}

// entering reports whether the name prompt is shown for this game over
func (g *Game) entering(snap *engine.Snapshot) bool {
	return snap.Qualifies && snap.Score > 0 && g.doneEntry != snap.Session
}

func (g *Game) finishEntry(session uint64) {
	g.doneEntry = session
	g.name = g.name[:0]
}

func (g *Game) start() {
	g.arena.Reset()
	g.eng.StartGame()
}

func (g *Game) toggleMute() {
	if g.sound == nil {
		return
	}
	g.sound.SetMuted(!g.sound.Muted())
	g.log.Debug().Bool("muted", g.sound.Muted()).Msg("audio toggled")
}
