package leaderboard

import (
	"errors"
	"testing"

	"github.com/lixenwraith/planetfall/parameter"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"AAA", "AAA"},
		{"  Bob  ", "Bob"},
		{"Abcdefghijklmnop", "Abcdefghij"},
		{"ÅÄÖåäöÅÄÖåäö", "ÅÄÖåäöÅÄÖå"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestInsertStableAndTruncated(t *testing.T) {
	var list []Entry
	for i := 0; i < parameter.LeaderboardSize; i++ {
		list = Insert(list, Entry{Name: "Same", Score: 100})
	}
	list = Insert(list, Entry{Name: "Late", Score: 100})

	if len(list) != parameter.LeaderboardSize {
		t.Fatalf("Expected %d entries, got %d", parameter.LeaderboardSize, len(list))
	}
	for _, e := range list {
		if e.Name == "Late" {
			t.Error("Expected later equal score to fall off the end")
		}
	}
}

func TestQualifies(t *testing.T) {
	if !Qualifies(nil, 0) {
		t.Error("Expected empty list to accept any score")
	}

	var full []Entry
	for i := 1; i <= parameter.LeaderboardSize; i++ {
		full = Insert(full, Entry{Name: "P", Score: i * 10})
	}
	if Qualifies(full, 10) {
		t.Error("Expected tie with lowest to not qualify")
	}
	if !Qualifies(full, 11) {
		t.Error("Expected score above lowest to qualify")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	var missing string
	if err := store.Load("absent", &missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if store.Exists("id") {
		t.Error("Expected key to not exist before save")
	}

	if err := store.Save("id", "abc"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !store.Exists("id") {
		t.Error("Expected key to exist after save")
	}

	var got string
	if err := store.Load("id", &got); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != "abc" {
		t.Errorf("Expected abc, got %s", got)
	}
}
