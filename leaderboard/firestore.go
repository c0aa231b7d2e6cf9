package leaderboard

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/lixenwraith/planetfall/parameter"
)

// FirestoreRemote stores scores in a Firestore collection
//
// Layout:
//   - highscores/{auto}: {name, score, date}
//   - stats/players: {count}
type FirestoreRemote struct {
	client *firestore.Client
}

// scoreDoc is the document shape of one high score
type scoreDoc struct {
	Name  string    `firestore:"name"`
	Score int64     `firestore:"score"`
	Date  time.Time `firestore:"date"`
}

// NewFirestoreRemote connects to projectID
// An empty credentialsFile falls back to application default credentials
func NewFirestoreRemote(ctx context.Context, projectID, credentialsFile string) (*FirestoreRemote, error) {
	if projectID == "" {
		return nil, ErrRemoteDisabled
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &FirestoreRemote{client: client}, nil
}

// Close releases the client connection
func (f *FirestoreRemote) Close() error {
	return f.client.Close()
}

func (f *FirestoreRemote) AddScore(ctx context.Context, e Entry, at time.Time) error {
	doc := scoreDoc{
		Name:  e.Name,
		Score: int64(e.Score),
		Date:  at,
	}
	if _, _, err := f.client.Collection(parameter.LeaderboardCollection).Add(ctx, doc); err != nil {
		return fmt.Errorf("add score: %w", err)
	}
	return nil
}

func (f *FirestoreRemote) TopScores(ctx context.Context, limit int) ([]Entry, error) {
	query := f.client.Collection(parameter.LeaderboardCollection).
		OrderBy("score", firestore.Desc).
		Limit(limit)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("top scores: %w", err)
	}

	entries := make([]Entry, 0, len(docs))
	for _, snap := range docs {
		var doc scoreDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", snap.Ref.ID, err)
		}
		entries = append(entries, Entry{Name: doc.Name, Score: int(doc.Score)})
	}
	return entries, nil
}

func (f *FirestoreRemote) IncrementPlayers(ctx context.Context) error {
	update := map[string]any{
		parameter.LeaderboardStatsField: firestore.Increment(1),
	}
	if _, err := f.client.Doc(parameter.LeaderboardStatsPath).Set(ctx, update, firestore.MergeAll); err != nil {
		return fmt.Errorf("increment players: %w", err)
	}
	return nil
}

func (f *FirestoreRemote) PlayerCount(ctx context.Context) (int64, error) {
	snap, err := f.client.Doc(parameter.LeaderboardStatsPath).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return 0, nil
		}
		return 0, fmt.Errorf("player count: %w", err)
	}

	v, err := snap.DataAt(parameter.LeaderboardStatsField)
	if err != nil {
		return 0, fmt.Errorf("player count: %w", err)
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("player count: unexpected type %T", v)
	}
}
