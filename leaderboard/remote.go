package leaderboard

import (
	"context"
	"errors"
	"time"
)

// ErrRemoteDisabled is returned by remotes that cannot reach a backend
var ErrRemoteDisabled = errors.New("remote leaderboard disabled")

// Remote is the shared high-score backend
// Implementations must be safe for concurrent use; every call receives a deadline-bound context
type Remote interface {
	// AddScore appends an entry stamped with at
	AddScore(ctx context.Context, e Entry, at time.Time) error

	// TopScores returns up to limit entries sorted by score descending
	TopScores(ctx context.Context, limit int) ([]Entry, error)

	// IncrementPlayers bumps the unique-player counter by one
	IncrementPlayers(ctx context.Context) error

	// PlayerCount reads the unique-player counter
	PlayerCount(ctx context.Context) (int64, error)
}
