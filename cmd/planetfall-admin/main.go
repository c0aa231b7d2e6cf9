package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/planetfall/config"
	"github.com/lixenwraith/planetfall/leaderboard"
	"github.com/lixenwraith/planetfall/network"
	"github.com/lixenwraith/planetfall/parameter"
)

var (
	configFlag = flag.String("config", "planetfall.yaml", "Path to the YAML config file")
	jsonFlag   = flag.Bool("json", false, "Print stats as JSON")
	watchFlag  = flag.String("watch", "", "Spectator address to follow (host:port); empty prints remote stats")
)

// stats is the admin view of the shared leaderboard
type stats struct {
	Players int64               `json:"players"`
	Top     []leaderboard.Entry `json:"top"`
}

// eventLine is a notification frame with its payload left raw for printing
type eventLine struct {
	Type    string          `json:"type"`
	Frame   int64           `json:"frame"`
	Payload json.RawMessage `json:"payload"`
}

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *watchFlag != "" {
		err = watch(ctx, *watchFlag, os.Stdout)
	} else {
		err = printStats(ctx, cfg, os.Stdout)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "planetfall-admin: %v\n", err)
		os.Exit(1)
	}
}

func printStats(ctx context.Context, cfg config.Config, w io.Writer) error {
	remote, err := leaderboard.NewFirestoreRemote(ctx, cfg.Remote.ProjectID, cfg.Remote.CredentialsFile)
	if errors.Is(err, leaderboard.ErrRemoteDisabled) {
		return errors.New("no remote configured, set remote.project_id or PLANETFALL_REMOTE_PROJECT_ID")
	}
	if err != nil {
		return err
	}
	defer remote.Close()

	ctx, cancel := context.WithTimeout(ctx, cfg.Remote.Timeout)
	defer cancel()

	s, err := collect(ctx, remote)
	if err != nil {
		return err
	}
	if *jsonFlag {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	return render(w, s)
}

// collect reads the player counter and the top list
func collect(ctx context.Context, remote leaderboard.Remote) (stats, error) {
	players, err := remote.PlayerCount(ctx)
	if err != nil {
		return stats{}, fmt.Errorf("player count: %w", err)
	}
	top, err := remote.TopScores(ctx, parameter.LeaderboardSize)
	if err != nil {
		return stats{}, fmt.Errorf("top scores: %w", err)
	}
	return stats{Players: players, Top: top}, nil
}

func render(w io.Writer, s stats) error {
	fmt.Fprintf(w, "Unique players: %d\n\n", s.Players)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tSCORE")
	for i, e := range s.Top {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", i+1, e.Name, e.Score)
	}
	if len(s.Top) == 0 {
		fmt.Fprintln(tw, "-\t(no scores)\t-")
	}
	return tw.Flush()
}

// watch follows a running game's spectator feed until ctx ends or the feed closes
func watch(ctx context.Context, addr string, w io.Writer) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, "ws://"+addr+"/ws", nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	lastLifecycle := ""
	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		switch kind {
		case websocket.BinaryMessage:
			snap, err := network.DecodeSnapshot(data)
			if err != nil {
				fmt.Fprintf(w, "bad snapshot: %v\n", err)
				continue
			}
			// Snapshots arrive many times a second; print only phase changes
			if lc := snap.Lifecycle.String(); lc != lastLifecycle {
				lastLifecycle = lc
				fmt.Fprintf(w, "[%d] %s score=%d health=%d enemies=%d\n", snap.Frame, lc, snap.Score, snap.Health, len(snap.Enemies))
			}
		case websocket.TextMessage:
			var ev eventLine
			if err := json.Unmarshal(data, &ev); err != nil {
				fmt.Fprintf(w, "bad event: %v\n", err)
				continue
			}
			fmt.Fprintf(w, "[%d] %s %s\n", ev.Frame, ev.Type, string(ev.Payload))
		}
	}
}
