package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/planetfall/core"
	"github.com/lixenwraith/planetfall/parameter"
	"github.com/lixenwraith/planetfall/status"
)

// Result is a remote top list delivered to the simulation thread
type Result struct {
	Session uint64 // Session generation that launched the task
	Ticket  uint64 // Launch order; higher is newer
	Entries []Entry
}

// Options configures a Leaderboard
type Options struct {
	Store   *Store
	Remote  Remote // nil runs offline
	Status  *status.Registry
	Clock   core.Clock
	Logger  zerolog.Logger
	Timeout time.Duration
}

// Leaderboard keeps the local top list and replicates it to a remote store
//
// Thread model:
//   - Save, Init, Fetch, Poll: simulation thread
//   - Network legs run in background goroutines and only send Results
//   - Scores is safe from any goroutine
type Leaderboard struct {
	store   *Store
	remote  Remote
	clock   core.Clock
	log     zerolog.Logger
	timeout time.Duration

	mu     sync.RWMutex
	scores []Entry

	results chan Result
	wg      sync.WaitGroup
	tickets atomic.Uint64
	applied uint64 // Last applied ticket, simulation thread only

	playerID string

	statFailures *atomic.Int64
	statApplied  *atomic.Int64
	statOnline   *atomic.Bool
}

// New creates a leaderboard; call Init before use
func New(opts Options) *Leaderboard {
	reg := opts.Status
	if reg == nil {
		reg = status.NewRegistry()
	}
	clock := opts.Clock
	if clock == nil {
		clock = core.NewTimeProvider()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = parameter.LeaderboardRemoteTimeout
	}

	l := &Leaderboard{
		store:        opts.Store,
		remote:       opts.Remote,
		clock:        clock,
		log:          opts.Logger.With().Str("component", "leaderboard").Logger(),
		timeout:      timeout,
		results:      make(chan Result, parameter.LeaderboardResultBuffer),
		statFailures: reg.Ints.Get(status.KeyRemoteFailures),
		statApplied:  reg.Ints.Get(status.KeyRemoteApplied),
		statOnline:   reg.Bools.Get(status.KeyRemoteOnline),
	}
	l.statOnline.Store(opts.Remote != nil)
	return l
}

// Init loads the local cache, registers the player identity once and starts a remote fetch
func (l *Leaderboard) Init() {
	l.loadLocal()
	l.initIdentity()

	if l.remote == nil {
		l.log.Info().Msg("remote leaderboard offline, using local scores only")
		return
	}
	l.Fetch(0)
}

// PlayerID returns the persisted installation identity, empty before Init
func (l *Leaderboard) PlayerID() string {
	return l.playerID
}

// Scores returns a copy of the current view
func (l *Leaderboard) Scores() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.scores))
	copy(out, l.scores)
	return out
}

// Qualifies reports whether score would enter the current view
func (l *Leaderboard) Qualifies(score int) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Qualifies(l.scores, score)
}

// Save inserts a score locally, persists it and replicates it in the background
// Returns false when the name is empty after normalization
func (l *Leaderboard) Save(name string, score int, session uint64) (Entry, bool) {
	name = NormalizeName(name)
	if name == "" {
		return Entry{}, false
	}
	if score < 0 {
		score = 0
	}
	entry := Entry{Name: name, Score: score}

	l.mu.Lock()
	l.scores = Insert(l.scores, entry)
	scores := make([]Entry, len(l.scores))
	copy(scores, l.scores)
	l.mu.Unlock()

	l.persist(scores)

	if l.remote != nil {
		at := l.clock.Now()
		l.launch("save", session, func(ctx context.Context) ([]Entry, error) {
			if err := l.remote.AddScore(ctx, entry, at); err != nil {
				return nil, err
			}
			return l.remote.TopScores(ctx, parameter.LeaderboardSize)
		})
	}
	return entry, true
}

// Fetch reads the remote top list in the background
func (l *Leaderboard) Fetch(session uint64) {
	if l.remote == nil {
		return
	}
	l.launch("fetch", session, func(ctx context.Context) ([]Entry, error) {
		return l.remote.TopScores(ctx, parameter.LeaderboardSize)
	})
}

// Poll applies completed remote results without blocking
// Results older than the last applied ticket are dropped
func (l *Leaderboard) Poll() []Result {
	var applied []Result
	for {
		select {
		case res := <-l.results:
			if res.Ticket <= l.applied {
				l.log.Debug().Uint64("ticket", res.Ticket).Uint64("applied", l.applied).Msg("stale remote result dropped")
				continue
			}
			l.applied = res.Ticket
			l.apply(res.Entries)
			l.statApplied.Add(1)
			applied = append(applied, res)
		default:
			return applied
		}
	}
}

// PlayerCount reads the unique-player counter
func (l *Leaderboard) PlayerCount(ctx context.Context) (int64, error) {
	if l.remote == nil {
		return 0, ErrRemoteDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	return l.remote.PlayerCount(ctx)
}

// Wait blocks until all background tasks finish
func (l *Leaderboard) Wait() {
	l.wg.Wait()
}

// --- Internals ---

func (l *Leaderboard) apply(entries []Entry) {
	list := make([]Entry, len(entries))
	copy(list, entries)
	list = normalize(list)

	l.mu.Lock()
	l.scores = list
	l.mu.Unlock()

	l.persist(list)
}

func (l *Leaderboard) persist(scores []Entry) {
	if l.store == nil {
		return
	}
	if err := l.store.Save(parameter.LeaderboardKeyHighScores, scores); err != nil {
		l.log.Warn().Err(err).Msg("failed to persist high scores")
	}
}

func (l *Leaderboard) loadLocal() {
	if l.store == nil {
		return
	}

	var scores []Entry
	if err := l.store.Load(parameter.LeaderboardKeyHighScores, &scores); err != nil {
		if !errors.Is(err, ErrNotFound) {
			l.log.Warn().Err(err).Msg("high score cache unreadable, starting empty")
		}
		scores = nil
	}

	valid := scores[:0]
	for _, e := range scores {
		if e.Name == "" || e.Score < 0 {
			continue
		}
		valid = append(valid, e)
	}

	l.mu.Lock()
	l.scores = normalize(valid)
	l.mu.Unlock()
}

// initIdentity generates the installation id on first run
// The remote counter is bumped only when the id was persisted, so a failed write never double counts
func (l *Leaderboard) initIdentity() {
	if l.store == nil {
		return
	}

	var id string
	err := l.store.Load(parameter.LeaderboardKeyPlayerID, &id)
	if err == nil && id != "" {
		l.playerID = id
		return
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		l.log.Warn().Err(err).Msg("player id unreadable, regenerating")
	}

	id = uuid.NewString()
	if err := l.store.Save(parameter.LeaderboardKeyPlayerID, id); err != nil {
		l.log.Warn().Err(err).Msg("failed to persist player id, skipping registration")
		return
	}
	l.playerID = id
	l.log.Info().Str("player_id", id).Msg("new player registered")

	if l.remote != nil {
		l.launch("register", 0, func(ctx context.Context) ([]Entry, error) {
			return nil, l.remote.IncrementPlayers(ctx)
		})
	}
}

// launch runs task in the background with a deadline and panic recovery
// Non-empty lists are delivered to Poll tagged with a fresh ticket
func (l *Leaderboard) launch(op string, session uint64, task func(ctx context.Context) ([]Entry, error)) {
	ticket := l.tickets.Add(1)
	l.wg.Add(1)

	go func() {
		defer l.wg.Done()

		entries, err := l.run(task)
		if err != nil {
			l.statFailures.Add(1)
			l.log.Warn().Err(err).Str("op", op).Msg("remote leaderboard call failed")
			return
		}
		if len(entries) == 0 {
			return
		}

		select {
		case l.results <- Result{Session: session, Ticket: ticket, Entries: entries}:
		default:
			l.log.Warn().Str("op", op).Msg("result buffer full, dropping remote result")
		}
	}()
}

func (l *Leaderboard) run(task func(ctx context.Context) ([]Entry, error)) (entries []Entry, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("remote task panic: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()
	return task(ctx)
}
