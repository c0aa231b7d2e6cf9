// Package config loads runtime settings
// Precedence: built-in defaults, then the YAML file, then PLANETFALL_* environment variables
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/planetfall/parameter"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "PLANETFALL_"

// Config holds runtime settings; gameplay constants live in parameter
type Config struct {
	DataDir   string          `yaml:"data_dir"`
	LogDir    string          `yaml:"log_dir"`
	Seed      uint64          `yaml:"seed"`
	Debug     bool            `yaml:"debug"`
	Audio     bool            `yaml:"audio"`
	TickRate  time.Duration   `yaml:"tick_rate"`
	Spectator SpectatorConfig `yaml:"spectator"`
	Remote    RemoteConfig    `yaml:"remote"`
}

// SpectatorConfig configures the websocket feed; empty Address disables it
type SpectatorConfig struct {
	Address           string        `yaml:"address"`
	BroadcastInterval time.Duration `yaml:"broadcast_interval"`
}

// RemoteConfig configures the shared leaderboard; empty ProjectID runs offline
type RemoteConfig struct {
	ProjectID       string        `yaml:"project_id"`
	CredentialsFile string        `yaml:"credentials_file"`
	Timeout         time.Duration `yaml:"timeout"`
}

// Default returns the built-in settings
func Default() Config {
	dataDir := ".planetfall"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".planetfall")
	}
	return Config{
		DataDir:  dataDir,
		LogDir:   "logs",
		Audio:    true,
		TickRate: parameter.FrameUpdateInterval,
		Spectator: SpectatorConfig{
			BroadcastInterval: parameter.SpectatorBroadcastInterval,
		},
		Remote: RemoteConfig{
			Timeout: parameter.LeaderboardRemoteTimeout,
		},
	}
}

// Load builds the configuration
// A missing file at path or a missing .env is not an error; an empty path skips the file
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the game cannot run with
func (c Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("config: data_dir is empty")
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive, got %v", c.TickRate)
	}
	if c.Spectator.Address != "" && c.Spectator.BroadcastInterval <= 0 {
		return fmt.Errorf("config: spectator.broadcast_interval must be positive, got %v", c.Spectator.BroadcastInterval)
	}
	if c.Remote.Timeout <= 0 {
		return fmt.Errorf("config: remote.timeout must be positive, got %v", c.Remote.Timeout)
	}
	return nil
}

// applyEnv overrides fields from PLANETFALL_* variables
func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"DATA_DIR":                &cfg.DataDir,
		"LOG_DIR":                 &cfg.LogDir,
		"SPECTATOR_ADDRESS":       &cfg.Spectator.Address,
		"REMOTE_PROJECT_ID":       &cfg.Remote.ProjectID,
		"REMOTE_CREDENTIALS_FILE": &cfg.Remote.CredentialsFile,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"DEBUG": &cfg.Debug,
		"AUDIO": &cfg.Audio,
	}
	for key, dst := range bools {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("env %s%s: %w", EnvPrefix, key, err)
			}
			*dst = b
		}
	}

	durations := map[string]*time.Duration{
		"TICK_RATE":                    &cfg.TickRate,
		"SPECTATOR_BROADCAST_INTERVAL": &cfg.Spectator.BroadcastInterval,
		"REMOTE_TIMEOUT":               &cfg.Remote.Timeout,
	}
	for key, dst := range durations {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("env %s%s: %w", EnvPrefix, key, err)
			}
			*dst = d
		}
	}

	if v, ok := os.LookupEnv(EnvPrefix + "SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("env %sSEED: %w", EnvPrefix, err)
		}
		cfg.Seed = seed
	}
	return nil
}
