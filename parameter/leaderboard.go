package parameter

import "time"

// Leaderboard
const (
	// LeaderboardSize is the length of the local cache and of remote top-N queries
	LeaderboardSize = 10

	// LeaderboardNameMaxLen is the maximum player name length in runes
	LeaderboardNameMaxLen = 10

	// LeaderboardRemoteTimeout bounds each remote round trip
	LeaderboardRemoteTimeout = 5 * time.Second

	// LeaderboardResultBuffer is the completion channel capacity
	LeaderboardResultBuffer = 16
)

// Durable keys of the local store
const (
	LeaderboardKeyHighScores = "highScores"
	LeaderboardKeyPlayerID   = "playerId"
)

// Remote collection names
const (
	LeaderboardCollection = "highscores"
	LeaderboardStatsPath  = "stats/players"
	LeaderboardStatsField = "count"
)
