package leaderboard

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lixenwraith/planetfall/parameter"
)

// Entry is one high score
type Entry struct {
	Name  string `json:"name" msgpack:"name"`
	Score int    `json:"score" msgpack:"score"`
}

// NormalizeName trims whitespace and truncates to LeaderboardNameMaxLen runes
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) <= parameter.LeaderboardNameMaxLen {
		return name
	}
	runes := []rune(name)
	return strings.TrimSpace(string(runes[:parameter.LeaderboardNameMaxLen]))
}

// Insert returns a new list with e added, sorted by score descending and truncated
// Equal scores keep earlier entries first
func Insert(list []Entry, e Entry) []Entry {
	out := make([]Entry, 0, len(list)+1)
	out = append(out, list...)
	out = append(out, e)
	return normalize(out)
}

// normalize sorts descending and truncates in place
func normalize(list []Entry) []Entry {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Score > list[j].Score
	})
	if len(list) > parameter.LeaderboardSize {
		list = list[:parameter.LeaderboardSize]
	}
	return list
}

// Qualifies reports whether score would enter list
func Qualifies(list []Entry, score int) bool {
	if len(list) < parameter.LeaderboardSize {
		return true
	}
	return score > list[len(list)-1].Score
}
