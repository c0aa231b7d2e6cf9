package leaderboard

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRemote is an in-process Remote with failure injection
type MemoryRemote struct {
	mu      sync.Mutex
	entries []memoryRecord
	players int64
	failErr error
	calls   int
}

type memoryRecord struct {
	entry Entry
	at    time.Time
}

// NewMemoryRemote creates an empty in-process remote
func NewMemoryRemote() *MemoryRemote {
	return &MemoryRemote{}
}

// SetFailure makes every subsequent call return err; nil restores normal operation
func (m *MemoryRemote) SetFailure(err error) {
	m.mu.Lock()
	m.failErr = err
	m.mu.Unlock()
}

// Calls returns the number of calls received, failed ones included
func (m *MemoryRemote) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MemoryRemote) begin(ctx context.Context) error {
	m.calls++
	if err := ctx.Err(); err != nil {
		return err
	}
	return m.failErr
}

func (m *MemoryRemote) AddScore(ctx context.Context, e Entry, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(ctx); err != nil {
		return err
	}
	m.entries = append(m.entries, memoryRecord{entry: e, at: at})
	return nil
}

func (m *MemoryRemote) TopScores(ctx context.Context, limit int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(ctx); err != nil {
		return nil, err
	}

	records := make([]memoryRecord, len(m.entries))
	copy(records, m.entries)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].entry.Score > records[j].entry.Score
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	out := make([]Entry, len(records))
	for i, r := range records {
		out[i] = r.entry
	}
	return out, nil
}

func (m *MemoryRemote) IncrementPlayers(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(ctx); err != nil {
		return err
	}
	m.players++
	return nil
}

func (m *MemoryRemote) PlayerCount(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin(ctx); err != nil {
		return 0, err
	}
	return m.players, nil
}
