package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/planetfall/audio"
	"github.com/lixenwraith/planetfall/config"
	"github.com/lixenwraith/planetfall/core"
	"github.com/lixenwraith/planetfall/engine"
	"github.com/lixenwraith/planetfall/leaderboard"
	"github.com/lixenwraith/planetfall/logging"
	"github.com/lixenwraith/planetfall/network"
	"github.com/lixenwraith/planetfall/status"
)

var (
	configFlag = flag.String("config", "planetfall.yaml", "Path to the YAML config file")
	debugFlag  = flag.Bool("debug", false, "Enable debug logging (overrides config)")
	muteFlag   = flag.Bool("mute", false, "Start with audio muted")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *debugFlag {
		cfg.Debug = true
	}

	logger, logCloser := logging.Setup(cfg.Debug, cfg.LogDir)
	defer logCloser.Close()

	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("exited with error")
		fmt.Fprintf(os.Stderr, "planetfall: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger zerolog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg := status.NewRegistry()

	// Leaderboard
	remote, closeRemote := openRemote(ctx, cfg, logger)
	defer closeRemote()

	board := leaderboard.New(leaderboard.Options{
		Store:   leaderboard.NewStore(cfg.DataDir),
		Remote:  remote,
		Status:  reg,
		Logger:  logger,
		Timeout: cfg.Remote.Timeout,
	})
	board.Init()
	defer board.Wait()

	eng := engine.New(engine.Config{
		Seed:       cfg.Seed,
		ScoreBoard: board,
		Status:     reg,
		Logger:     logger,
	})

	// Audio, non-fatal
	var sound *audio.SoundManager
	if cfg.Audio {
		sound = audio.NewSoundManager(audio.DefaultAudioConfig())
		if err := sound.Initialize(); err != nil {
			logger.Warn().Err(err).Msg("audio unavailable, continuing silent")
			sound = nil
		} else {
			defer sound.Cleanup()
			sound.SetMuted(*muteFlag)
			eng.RegisterHandler(audio.NewHandler(sound))
		}
	}

	// Terminal
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	core.SetCrashCleanup(screen.Fini)
	defer screen.Fini()

	screen.SetStyle(tcell.StyleDefault)
	screen.HideCursor()

	game := NewGame(screen, eng, sound, cfg.TickRate, logger)

	g, gctx := errgroup.WithContext(ctx)

	// Spectator feed, optional
	if cfg.Spectator.Address != "" {
		netCfg := network.DefaultConfig()
		netCfg.Address = cfg.Spectator.Address
		netCfg.BroadcastInterval = cfg.Spectator.BroadcastInterval

		server := network.NewServer(netCfg, eng, eng, reg, logger)
		eng.RegisterHandler(server)

		// A dead feed never ends the game
		g.Go(func() error {
			if err := server.ListenAndServe(gctx); err != nil {
				logger.Warn().Err(err).Msg("spectator feed stopped")
			}
			return nil
		})
	}

	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				core.HandleCrash(r)
			}
		}()
		// Quitting the game stops every other member
		defer cancel()
		return game.Run(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// openRemote connects the shared leaderboard; any failure runs offline
func openRemote(ctx context.Context, cfg config.Config, logger zerolog.Logger) (leaderboard.Remote, func()) {
	remote, err := leaderboard.NewFirestoreRemote(ctx, cfg.Remote.ProjectID, cfg.Remote.CredentialsFile)
	switch {
	case err == nil:
		logger.Info().Str("project", cfg.Remote.ProjectID).Msg("remote leaderboard connected")
		return remote, func() {
			if err := remote.Close(); err != nil {
				logger.Warn().Err(err).Msg("remote close failed")
			}
		}
	case errors.Is(err, leaderboard.ErrRemoteDisabled):
		return nil, func() {}
	default:
		logger.Warn().Err(err).Msg("remote leaderboard unavailable")
		return nil, func() {}
	}
}
