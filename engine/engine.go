package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/planetfall/component"
	"github.com/lixenwraith/planetfall/event"
	"github.com/lixenwraith/planetfall/leaderboard"
	"github.com/lixenwraith/planetfall/parameter"
	"github.com/lixenwraith/planetfall/progression"
	"github.com/lixenwraith/planetfall/status"
)

// Greeting is the message set by StartGame
const Greeting = "Welcome to Planetfall. Good luck!"

// ScoreBoard is the leaderboard collaborator
// *leaderboard.Leaderboard satisfies it
type ScoreBoard interface {
	Save(name string, score int, session uint64) (leaderboard.Entry, bool)
	Poll() []leaderboard.Result
	Scores() []leaderboard.Entry
	Qualifies(score int) bool
}

// Config configures an Engine
type Config struct {
	Seed       uint64           // PCG seed, 0 draws a random seed
	Rand       Rand             // Overrides Seed when set
	ScoreBoard ScoreBoard       // nil disables high scores
	Status     *status.Registry // nil creates a private registry
	Logger     zerolog.Logger
}

// Engine owns the session state and every entity
//
// Thread model:
//   - Direct command methods and Update: simulation thread only
//   - Submit and Snapshot: any goroutine
type Engine struct {
	state    GameState
	registry *Registry
	spawner  *Spawner
	combat   *Combat
	scores   ScoreBoard

	queue   *event.EventQueue
	router  *event.Router
	pending []event.GameEvent

	frame   int64
	now     time.Duration // Engine time, advances only while playing
	session uint64        // Incremented on every start and reset

	snapshot atomic.Pointer[Snapshot]
	status   *status.Registry
	log      zerolog.Logger

	statTicks      *atomic.Int64
	statCommands   *atomic.Int64
	statLifecycle  *status.AtomicString
	statMultiplier *status.AtomicFloat
}

// New creates an engine in the menu state
func New(cfg Config) *Engine {
	reg := cfg.Status
	if reg == nil {
		reg = status.NewRegistry()
	}
	rng := cfg.Rand
	if rng == nil {
		rng = NewRand(cfg.Seed)
	}

	e := &Engine{
		state:          NewGameState(),
		registry:       NewRegistry(),
		scores:         cfg.ScoreBoard,
		queue:          event.NewEventQueue(),
		router:         event.NewRouter(),
		status:         reg,
		log:            cfg.Logger.With().Str("component", "engine").Logger(),
		statTicks:      reg.Ints.Get(status.KeyTicks),
		statCommands:   reg.Ints.Get(status.KeyCommandsQueued),
		statLifecycle:  reg.Strings.Get(status.KeyLifecycle),
		statMultiplier: reg.Floats.Get(status.KeyMultiplier),
	}
	e.spawner = NewSpawner(e.registry, rng, reg, e.emit)
	e.combat = NewCombat(e.registry, rng, reg, e.emit)

	e.publish()
	return e
}

// RegisterHandler subscribes h to notifications; call before the loop starts
func (e *Engine) RegisterHandler(h event.Handler) {
	e.router.Register(h)
}

// Status returns the telemetry registry
func (e *Engine) Status() *status.Registry {
	return e.status
}

// --- Tick ---

// Submit queues a command for the next Update; safe from any goroutine
// Notifications are rejected
func (e *Engine) Submit(ev event.GameEvent) bool {
	if !event.IsCommand(ev.Type) {
		return false
	}
	e.queue.Push(ev)
	return true
}

// Update advances the simulation by dt
// Order: queued commands, engine time and spawner, leaderboard completions,
// notification dispatch, snapshot publish
func (e *Engine) Update(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	if dt > parameter.MaxFrameDelta {
		dt = parameter.MaxFrameDelta
	}
	e.frame++
	e.statTicks.Add(1)

	for _, ev := range e.queue.Consume() {
		e.statCommands.Add(1)
		e.apply(ev)
	}

	if e.state.Lifecycle == LifecyclePlaying {
		e.now += dt
		e.spawner.Advance(dt, e.state.Score)
	}

	e.pollScores()
	e.flush()
	e.publish()
}

// Snapshot returns the last published state; never nil
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot.Load()
}

// apply dispatches a queued command to its direct method
func (e *Engine) apply(ev event.GameEvent) {
	switch ev.Type {
	case event.EventStartGame:
		e.StartGame()
		return

	case event.EventResetGame:
		e.ResetGame()
		return

	case event.EventAddScore:
		if p, ok := ev.Payload.(*event.AddScorePayload); ok {
			e.AddScore(p.Amount)
			return
		}

	case event.EventTakeDamage:
		if p, ok := ev.Payload.(*event.TakeDamagePayload); ok {
			e.TakeDamage(p.Amount)
			return
		}

	case event.EventSetLastMessage:
		if p, ok := ev.Payload.(*event.SetLastMessagePayload); ok {
			e.SetLastMessage(p.Text)
			return
		}

	case event.EventSpawnEnemy:
		if p, ok := ev.Payload.(*event.SpawnEnemyPayload); ok {
			e.SpawnEnemy(p.Kind)
			return
		}

	case event.EventHitEnemy:
		if p, ok := ev.Payload.(*event.HitEnemyPayload); ok {
			e.HitEnemy(p.ID, p.Damage)
			return
		}

	case event.EventPickupItem:
		if p, ok := ev.Payload.(*event.PickupItemPayload); ok {
			e.PickupItem(p.ID)
			return
		}

	case event.EventSaveHighScore:
		if p, ok := ev.Payload.(*event.SaveHighScorePayload); ok {
			e.SaveHighScore(p.Name)
			return
		}

	case event.EventEnemyContact:
		if p, ok := ev.Payload.(*event.EnemyContactPayload); ok {
			e.EnemyContact(p.ID)
			return
		}

	case event.EventEnemyMoved:
		if p, ok := ev.Payload.(*event.EnemyMovedPayload); ok {
			e.UpdateEnemyPosition(p.ID, p.Position)
			return
		}
	}

	e.log.Warn().
		Str("type", event.GetEventName(ev.Type)).
		Str("payload", fmt.Sprintf("%T", ev.Payload)).
		Msg("command ignored: unexpected payload")
}

// emit queues a notification for dispatch at the end of the tick
func (e *Engine) emit(t event.EventType, payload any) {
	e.pending = append(e.pending, event.GameEvent{Type: t, Payload: payload, Frame: e.frame})
}

func (e *Engine) flush() {
	if len(e.pending) == 0 {
		return
	}
	events := e.pending
	e.pending = nil
	e.router.Dispatch(events)
}

func (e *Engine) pollScores() {
	if e.scores == nil {
		return
	}
	for _, res := range e.scores.Poll() {
		// Older sessions still refresh the shared view but stay invisible to this one
		if res.Session != e.session {
			e.log.Debug().Uint64("session", res.Session).Uint64("current", e.session).Msg("leaderboard result from previous session")
			continue
		}
		e.emit(event.EventLeaderboardUpdated, &event.LeaderboardUpdatedPayload{Entries: len(res.Entries), Session: res.Session})
	}
}

func (e *Engine) publish() {
	snap := &Snapshot{
		Frame:       e.frame,
		Session:     e.session,
		Lifecycle:   e.state.Lifecycle,
		Score:       e.state.Score,
		Health:      e.state.Health,
		Weapon:      e.state.Weapon,
		LastMessage: e.state.LastMessage,
		Multiplier:  progression.Multiplier(e.state.Score),
		Enemies:     e.registry.Enemies(),
		Items:       e.registry.Items(),
	}
	if e.scores != nil {
		snap.HighScores = e.scores.Scores()
		snap.Qualifies = leaderboard.Qualifies(snap.HighScores, e.state.Score)
	}
	e.snapshot.Store(snap)

	e.statLifecycle.Store(snap.Lifecycle.String())
	e.statMultiplier.Set(snap.Multiplier)
}

// --- Lifecycle ---

// StartGame begins a new session from any lifecycle
func (e *Engine) StartGame() {
	e.beginSession(LifecyclePlaying, Greeting)
	e.emit(event.EventGameStarted, nil)
	e.log.Info().Uint64("session", e.session).Msg("game started")
}

// ResetGame abandons the session and returns to the menu without saving
func (e *Engine) ResetGame() {
	e.beginSession(LifecycleMenu, "")
	e.emit(event.EventGameReset, nil)
	e.log.Info().Uint64("session", e.session).Msg("game reset")
}

func (e *Engine) beginSession(lc Lifecycle, greeting string) {
	e.session++
	e.state.reset(lc, greeting)
	e.registry.Clear()
	e.spawner.Reset()
}

// --- Session commands ---

// AddScore adds points; non-positive amounts are ignored
func (e *Engine) AddScore(amount int) {
	e.state.AddScore(amount)
}

// TakeDamage subtracts health and ends the session at zero
func (e *Engine) TakeDamage(amount int) {
	if amount < 0 {
		amount = 0
	}
	over := e.state.TakeDamage(amount)
	e.state.LastMessage = fmt.Sprintf("Took %d damage!", amount)
	e.emit(event.EventPlayerDamaged, &event.PlayerDamagedPayload{Amount: amount, Health: e.state.Health})

	if over {
		e.spawner.Reset()
		e.emit(event.EventGameOver, &event.GameOverPayload{Score: e.state.Score})
		e.log.Info().Int("score", e.state.Score).Msg("game over")
	}
}

// SetLastMessage replaces the transient message
func (e *Engine) SetLastMessage(text string) {
	e.state.LastMessage = text
}

// SpawnEnemy places one enemy of kind subject to population caps
// Ignored outside a running session
func (e *Engine) SpawnEnemy(kind component.EnemyKind) (component.Enemy, bool) {
	if e.state.Lifecycle != LifecyclePlaying {
		return component.Enemy{}, false
	}
	return e.spawner.Spawn(kind, e.state.Score)
}

// HitEnemy applies weapon damage; ignored outside a running session
func (e *Engine) HitEnemy(id uint64, damage int) {
	if e.state.Lifecycle != LifecyclePlaying {
		return
	}
	e.combat.HitEnemy(&e.state, id, damage)
}

// PickupItem collects an item; ignored outside a running session
func (e *Engine) PickupItem(id uint64) {
	if e.state.Lifecycle != LifecyclePlaying {
		return
	}
	e.combat.PickupItem(&e.state, id)
}

// EnemyContact applies contact damage from enemy id, once per cooldown
func (e *Engine) EnemyContact(id uint64) {
	if e.state.Lifecycle != LifecyclePlaying {
		return
	}
	if dmg := e.combat.Contact(id, e.now); dmg > 0 {
		e.TakeDamage(dmg)
	}
}

// UpdateEnemyPosition records the physics position of enemy id
func (e *Engine) UpdateEnemyPosition(id uint64, pos component.Vec3) {
	e.combat.MoveEnemy(id, pos)
}

// SaveHighScore records the current score under name
func (e *Engine) SaveHighScore(name string) bool {
	if e.scores == nil {
		return false
	}
	entry, ok := e.scores.Save(name, e.state.Score, e.session)
	if !ok {
		return false
	}
	e.state.LastMessage = fmt.Sprintf("Score saved for %s", entry.Name)
	e.emit(event.EventHighScoreSaved, &event.HighScoreSavedPayload{Name: entry.Name, Score: entry.Score})
	return true
}

// QualifiesForLeaderboard reports whether the current score would enter the top list
func (e *Engine) QualifiesForLeaderboard() bool {
	if e.scores == nil {
		return false
	}
	return e.scores.Qualifies(e.state.Score)
}

// --- Accessors ---

// State returns a copy of the session state
func (e *Engine) State() GameState {
	return e.state
}

// Enemies returns a copy of the live enemies
func (e *Engine) Enemies() []component.Enemy {
	return e.registry.Enemies()
}

// Items returns a copy of the live items
func (e *Engine) Items() []component.Item {
	return e.registry.Items()
}

// Session returns the current session generation
func (e *Engine) Session() uint64 {
	return e.session
}

// Elapsed returns play time since the session started
func (e *Engine) Elapsed() time.Duration {
	return e.spawner.Elapsed()
}
