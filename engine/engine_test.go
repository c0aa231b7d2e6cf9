package engine

import (
	"encoding/json"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/planetfall/component"
	"github.com/lixenwraith/planetfall/event"
	"github.com/lixenwraith/planetfall/leaderboard"
	"github.com/lixenwraith/planetfall/parameter"
)

func newTestEngine(t *testing.T, sb ScoreBoard) *Engine {
	t.Helper()
	return New(Config{Seed: 1, ScoreBoard: sb, Logger: zerolog.Nop()})
}

// fakeScoreBoard delivers scripted results
type fakeScoreBoard struct {
	results []leaderboard.Result
	saved   []leaderboard.Entry
}

func (f *fakeScoreBoard) Save(name string, score int, session uint64) (leaderboard.Entry, bool) {
	name = leaderboard.NormalizeName(name)
	if name == "" {
		return leaderboard.Entry{}, false
	}
	e := leaderboard.Entry{Name: name, Score: score}
	f.saved = leaderboard.Insert(f.saved, e)
	return e, true
}

func (f *fakeScoreBoard) Poll() []leaderboard.Result {
	r := f.results
	f.results = nil
	return r
}

func (f *fakeScoreBoard) Scores() []leaderboard.Entry {
	return f.saved
}

func (f *fakeScoreBoard) Qualifies(score int) bool {
	return leaderboard.Qualifies(f.saved, score)
}

func TestEngineStartsInMenu(t *testing.T) {
	e := newTestEngine(t, nil)
	snap := e.Snapshot()
	if snap == nil {
		t.Fatal("Expected initial snapshot")
	}
	if snap.Lifecycle != LifecycleMenu || snap.Health != parameter.PlayerMaxHealth || snap.Score != 0 {
		t.Errorf("Expected menu/100/0, got %s/%d/%d", snap.Lifecycle, snap.Health, snap.Score)
	}
	if snap.Weapon != DefaultWeapon() {
		t.Errorf("Expected default weapon, got %+v", snap.Weapon)
	}
}

func TestEngineTakeDamageEndsSession(t *testing.T) {
	e := newTestEngine(t, nil)
	h := &collectingHandler{types: []event.EventType{event.EventGameOver}}
	e.RegisterHandler(h)

	e.StartGame()
	e.AddScore(250)
	e.TakeDamage(100)

	st := e.State()
	if st.Health != 0 || st.Lifecycle != LifecycleGameOver {
		t.Errorf("Expected health 0 and gameover, got %d/%s", st.Health, st.Lifecycle)
	}
	if st.LastMessage != "Took 100 damage!" {
		t.Errorf("Expected damage message, got %q", st.LastMessage)
	}

	e.Update(parameter.FrameUpdateInterval)
	if len(h.events) != 1 {
		t.Fatalf("Expected 1 gameover notification, got %d", len(h.events))
	}
	if p := h.events[0].Payload.(*event.GameOverPayload); p.Score != 250 {
		t.Errorf("Expected final score 250, got %d", p.Score)
	}
}

func TestEngineSpawnCap(t *testing.T) {
	e := newTestEngine(t, nil)
	e.StartGame()

	for i := 0; i < 25; i++ {
		e.SpawnEnemy(component.EnemyStandard)
	}
	if n := len(e.Enemies()); n != 20 {
		t.Errorf("Expected 20 live enemies, got %d", n)
	}
}

func TestEngineResetFromAnyState(t *testing.T) {
	setups := map[string]func(e *Engine){
		"menu": func(e *Engine) {},
		"playing": func(e *Engine) {
			e.StartGame()
			e.AddScore(300)
			e.SpawnEnemy(component.EnemyHeavy)
			e.TakeDamage(40)
		},
		"gameover": func(e *Engine) {
			e.StartGame()
			e.SpawnEnemy(component.EnemyStandard)
			e.TakeDamage(100)
		},
	}

	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			e := newTestEngine(t, nil)
			setup(e)
			before := e.Session()
			e.ResetGame()

			st := e.State()
			if st.Lifecycle != LifecycleMenu {
				t.Errorf("Expected menu, got %s", st.Lifecycle)
			}
			if st.Score != 0 || st.Health != parameter.PlayerMaxHealth {
				t.Errorf("Expected score 0 health 100, got %d/%d", st.Score, st.Health)
			}
			if st.Weapon != DefaultWeapon() {
				t.Errorf("Expected default weapon, got %+v", st.Weapon)
			}
			if len(e.Enemies()) != 0 || len(e.Items()) != 0 {
				t.Errorf("Expected empty world, got %d enemies %d items", len(e.Enemies()), len(e.Items()))
			}
			if e.Elapsed() != 0 {
				t.Errorf("Expected spawner reset, got elapsed %v", e.Elapsed())
			}
			if e.Session() != before+1 {
				t.Errorf("Expected session %d, got %d", before+1, e.Session())
			}
		})
	}
}

func TestEngineStartGameGreets(t *testing.T) {
	e := newTestEngine(t, nil)
	e.StartGame()
	e.AddScore(100)
	e.StartGame()

	st := e.State()
	if st.Lifecycle != LifecyclePlaying || st.Score != 0 {
		t.Errorf("Expected fresh playing session, got %s/%d", st.Lifecycle, st.Score)
	}
	if st.LastMessage != Greeting {
		t.Errorf("Expected greeting, got %q", st.LastMessage)
	}
}

func TestEngineCombatGatedOutsidePlaying(t *testing.T) {
	e := newTestEngine(t, nil)
	if _, ok := e.SpawnEnemy(component.EnemyStandard); ok {
		t.Error("Expected spawn to be ignored in menu")
	}

	e.StartGame()
	enemy, _ := e.SpawnEnemy(component.EnemyStandard)
	e.TakeDamage(100)

	e.HitEnemy(enemy.ID, 1000)
	e.EnemyContact(enemy.ID)
	if e.State().Score != 0 {
		t.Errorf("Expected hit ignored after gameover, got score %d", e.State().Score)
	}
	if len(e.Enemies()) != 1 {
		t.Errorf("Expected enemy untouched, got %d live", len(e.Enemies()))
	}
}

func TestEngineKillFlow(t *testing.T) {
	e := newTestEngine(t, nil)
	e.StartGame()
	enemy, _ := e.SpawnEnemy(component.EnemyStandard)

	e.HitEnemy(enemy.ID, enemy.HP)
	e.HitEnemy(enemy.ID, enemy.HP)

	if e.State().Score != parameter.CombatKillScore {
		t.Errorf("Expected one kill award, got %d", e.State().Score)
	}
	if len(e.Enemies()) != 0 {
		t.Errorf("Expected enemy removed, got %d", len(e.Enemies()))
	}
}

func TestEngineContactCooldown(t *testing.T) {
	e := newTestEngine(t, nil)
	e.StartGame()
	heavy, _ := e.SpawnEnemy(component.EnemyHeavy)

	e.EnemyContact(heavy.ID)
	e.EnemyContact(heavy.ID)
	if h := e.State().Health; h != 90 {
		t.Errorf("Expected one contact hit, got health %d", h)
	}

	for i := 0; i < 4; i++ {
		e.Update(250 * time.Millisecond)
	}
	e.EnemyContact(heavy.ID)
	if h := e.State().Health; h != 80 {
		t.Errorf("Expected second hit after cooldown, got health %d", h)
	}

	e.EnemyContact(12345)
	if h := e.State().Health; h != 80 {
		t.Errorf("Expected unknown id ignored, got health %d", h)
	}
}

func TestEngineSubmitFIFO(t *testing.T) {
	e := newTestEngine(t, nil)

	e.Submit(event.GameEvent{Type: event.EventStartGame})
	e.Submit(event.GameEvent{Type: event.EventAddScore, Payload: &event.AddScorePayload{Amount: 10}})
	e.Submit(event.GameEvent{Type: event.EventSetLastMessage, Payload: &event.SetLastMessagePayload{Text: "first"}})
	e.Submit(event.GameEvent{Type: event.EventAddScore, Payload: &event.AddScorePayload{Amount: 20}})
	e.Submit(event.GameEvent{Type: event.EventSetLastMessage, Payload: &event.SetLastMessagePayload{Text: "second"}})

	if ok := e.Submit(event.GameEvent{Type: event.EventGameOver}); ok {
		t.Error("Expected notification to be rejected by Submit")
	}

	e.Update(0)
	snap := e.Snapshot()
	if snap.Score != 30 || snap.LastMessage != "second" {
		t.Errorf("Expected score 30 message second, got %d/%q", snap.Score, snap.LastMessage)
	}
}

func TestEngineSubmittedScoreSaturates(t *testing.T) {
	e := newTestEngine(t, nil)
	e.StartGame()

	e.Submit(event.GameEvent{Type: event.EventAddScore, Payload: &event.AddScorePayload{Amount: math.MaxInt}})
	e.Submit(event.GameEvent{Type: event.EventAddScore, Payload: &event.AddScorePayload{Amount: 100}})
	e.Update(0)

	if got := e.Snapshot().Score; got != math.MaxInt {
		t.Errorf("Expected score held at MaxInt, got %d", got)
	}
}

func TestEngineSubmitConcurrent(t *testing.T) {
	e := newTestEngine(t, nil)
	e.StartGame()

	const producers = 4
	const perProducer = 200
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				e.Submit(event.GameEvent{Type: event.EventAddScore, Payload: &event.AddScorePayload{Amount: 1}})
			}
		}()
	}
	wg.Wait()

	e.Update(0)
	if got := e.State().Score; got != producers*perProducer {
		t.Errorf("Expected score %d, got %d", producers*perProducer, got)
	}
}

func TestEngineDecodedCommand(t *testing.T) {
	e := newTestEngine(t, nil)
	e.StartGame()

	ev, err := event.DecodeCommand("TakeDamage", json.RawMessage(`{"amount":15}`))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	e.Submit(ev)
	e.Update(0)

	if h := e.Snapshot().Health; h != 85 {
		t.Errorf("Expected health 85, got %d", h)
	}
}

func TestEngineSpawnsWhilePlayingOnly(t *testing.T) {
	e := newTestEngine(t, nil)

	for i := 0; i < 8; i++ {
		e.Update(250 * time.Millisecond)
	}
	if n := len(e.Snapshot().Enemies); n != 0 {
		t.Errorf("Expected no spawns in menu, got %d", n)
	}

	e.StartGame()
	for i := 0; i < 8; i++ {
		e.Update(250 * time.Millisecond)
	}
	if n := len(e.Snapshot().Enemies); n != 1 {
		t.Errorf("Expected 1 spawn after 2s of play, got %d", n)
	}

	e.TakeDamage(100)
	for i := 0; i < 8; i++ {
		e.Update(250 * time.Millisecond)
	}
	if n := len(e.Snapshot().Enemies); n != 1 {
		t.Errorf("Expected no spawns after gameover, got %d", n)
	}
	if e.Elapsed() != 0 {
		t.Errorf("Expected spawner reset on gameover, got %v", e.Elapsed())
	}
}

func TestEngineUpdateClampsDelta(t *testing.T) {
	e := newTestEngine(t, nil)
	e.StartGame()

	e.Update(time.Hour)
	if e.Elapsed() != parameter.MaxFrameDelta {
		t.Errorf("Expected elapsed clamped to %v, got %v", parameter.MaxFrameDelta, e.Elapsed())
	}
	e.Update(-time.Second)
	if e.Elapsed() != parameter.MaxFrameDelta {
		t.Errorf("Expected negative delta ignored, got %v", e.Elapsed())
	}
}

func TestEngineNotificationOrder(t *testing.T) {
	e := newTestEngine(t, nil)
	h := &collectingHandler{types: []event.EventType{
		event.EventGameStarted,
		event.EventPlayerDamaged,
		event.EventGameOver,
	}}
	e.RegisterHandler(h)

	e.Submit(event.GameEvent{Type: event.EventStartGame})
	e.Submit(event.GameEvent{Type: event.EventTakeDamage, Payload: &event.TakeDamagePayload{Amount: 100}})
	e.Update(0)

	want := []event.EventType{event.EventGameStarted, event.EventPlayerDamaged, event.EventGameOver}
	if len(h.events) != len(want) {
		t.Fatalf("Expected %d notifications, got %d", len(want), len(h.events))
	}
	for i, et := range want {
		if h.events[i].Type != et {
			t.Errorf("Expected %s at %d, got %s", event.GetEventName(et), i, event.GetEventName(h.events[i].Type))
		}
		if h.events[i].Frame != 1 {
			t.Errorf("Expected frame 1, got %d", h.events[i].Frame)
		}
	}
}

func TestEngineSaveHighScore(t *testing.T) {
	sb := &fakeScoreBoard{}
	e := newTestEngine(t, sb)

	e.StartGame()
	e.AddScore(500)
	e.TakeDamage(100)

	if !e.QualifiesForLeaderboard() {
		t.Error("Expected score to qualify on empty leaderboard")
	}
	if !e.SaveHighScore("  AAA  ") {
		t.Fatal("Expected save to succeed")
	}
	if msg := e.State().LastMessage; msg != "Score saved for AAA" {
		t.Errorf("Expected save message, got %q", msg)
	}
	if e.SaveHighScore("") {
		t.Error("Expected empty name to be ignored")
	}

	e.Update(0)
	snap := e.Snapshot()
	if len(snap.HighScores) != 1 || snap.HighScores[0] != (leaderboard.Entry{Name: "AAA", Score: 500}) {
		t.Errorf("Expected AAA/500 in snapshot, got %+v", snap.HighScores)
	}
}

func TestEngineSaveWithoutScoreBoard(t *testing.T) {
	e := newTestEngine(t, nil)
	if e.SaveHighScore("AAA") {
		t.Error("Expected save to be ignored without a leaderboard")
	}
	if e.QualifiesForLeaderboard() {
		t.Error("Expected no qualification without a leaderboard")
	}
}

func TestEngineLeaderboardResultsScopedToSession(t *testing.T) {
	sb := &fakeScoreBoard{}
	e := newTestEngine(t, sb)
	h := &collectingHandler{types: []event.EventType{event.EventLeaderboardUpdated}}
	e.RegisterHandler(h)

	e.StartGame()
	old := e.Session()
	e.ResetGame()

	sb.results = []leaderboard.Result{
		{Session: old, Ticket: 1, Entries: []leaderboard.Entry{{Name: "Old", Score: 1}}},
		{Session: e.Session(), Ticket: 2, Entries: []leaderboard.Entry{{Name: "New", Score: 2}}},
	}
	e.Update(0)

	if len(h.events) != 1 {
		t.Fatalf("Expected 1 visible update, got %d", len(h.events))
	}
	if p := h.events[0].Payload.(*event.LeaderboardUpdatedPayload); p.Session != e.Session() {
		t.Errorf("Expected current session %d, got %d", e.Session(), p.Session)
	}
}

func TestEngineRemoteFailureKeepsLocalTop(t *testing.T) {
	remote := leaderboard.NewMemoryRemote()
	remote.SetFailure(leaderboard.ErrRemoteDisabled)
	lb := leaderboard.New(leaderboard.Options{
		Store:  leaderboard.NewStore(t.TempDir()),
		Remote: remote,
		Logger: zerolog.Nop(),
	})
	lb.Init()

	e := newTestEngine(t, lb)
	e.StartGame()
	e.AddScore(700)
	e.SaveHighScore("AAA")
	lb.Wait()
	e.Update(0)

	snap := e.Snapshot()
	if len(snap.HighScores) != 1 || snap.HighScores[0].Name != "AAA" {
		t.Errorf("Expected local AAA to survive remote failure, got %+v", snap.HighScores)
	}
}

func TestEngineSnapshotIsCopy(t *testing.T) {
	e := newTestEngine(t, nil)
	e.StartGame()
	e.SpawnEnemy(component.EnemyStandard)
	e.Update(0)

	snap := e.Snapshot()
	snap.Enemies[0].HP = -1
	if e.Enemies()[0].HP == -1 {
		t.Error("Expected snapshot enemies to be a copy")
	}
	if snap.Frame != 1 {
		t.Errorf("Expected frame 1, got %d", snap.Frame)
	}
	if _, ok := snap.Enemy(snap.Enemies[0].ID); !ok {
		t.Error("Expected snapshot lookup to find the enemy")
	}
}
