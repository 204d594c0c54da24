package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"

	"github.com/lixenwraith/flipcard/asset"
	"github.com/lixenwraith/flipcard/engine"
	"github.com/lixenwraith/flipcard/network"
	"github.com/lixenwraith/flipcard/render"
)

// Run modes
const (
	ModeTerminal = "terminal"
	ModeServe    = "serve"
)

var ErrInvalidMode = errors.New("invalid mode")

// Settings is the process configuration: .env, then environment, then flags
type Settings struct {
	Mode     string `env:"FLIPCARD_MODE,default=terminal"`
	Addr     string `env:"FLIPCARD_ADDR,default=:8080"`
	LogLevel string `env:"FLIPCARD_LOG_LEVEL,default=info"`
	LogFile  string `env:"FLIPCARD_LOG_FILE,default=flipcard.log"`
	Seed     uint64 `env:"FLIPCARD_SEED"`
	Atlas    string `env:"FLIPCARD_ATLAS"`

	Rows    int           `env:"FLIPCARD_ROWS,default=4"`
	Cols    int           `env:"FLIPCARD_COLS,default=3"`
	Pairs   int           `env:"FLIPCARD_PAIRS,default=6"`
	ShowAll time.Duration `env:"FLIPCARD_SHOW_ALL,default=3s"`
}

// loadEnvFiles merges .env files into the environment
// Missing files are skipped; a file that exists but cannot be read or parsed is an error
func loadEnvFiles(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// loadSettings decodes the environment and applies command-line overrides
func loadSettings(args []string) (Settings, error) {
	var s Settings
	if err := envdecode.Decode(&s); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return s, fmt.Errorf("decode environment: %w", err)
	}

	flags := flag.NewFlagSet("flipcard", flag.ContinueOnError)
	flags.StringVar(&s.Mode, "mode", s.Mode, "Run mode: terminal, serve")
	flags.StringVar(&s.Addr, "addr", s.Addr, "Listen address in serve mode")
	flags.Uint64Var(&s.Seed, "seed", s.Seed, "Shuffle seed, 0 picks a random one")
	flags.StringVar(&s.Atlas, "atlas", s.Atlas, "Glyph atlas YAML file, empty uses the built-in one")
	flags.StringVar(&s.LogLevel, "log-level", s.LogLevel, "Log level: trace, debug, info, warn, error")
	flags.StringVar(&s.LogFile, "log-file", s.LogFile, "Log file in terminal mode")
	if err := flags.Parse(args); err != nil {
		return s, err
	}

	return s, s.Validate()
}

// Validate checks the mode and the board geometry
func (s Settings) Validate() error {
	switch s.Mode {
	case ModeTerminal, ModeServe:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, s.Mode)
	}
	return s.GameConfig().Validate()
}

// GameConfig returns the engine configuration for these settings
func (s Settings) GameConfig() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.Rows = s.Rows
	cfg.Cols = s.Cols
	cfg.Pairs = s.Pairs
	cfg.ShowAllDuration = s.ShowAll
	return cfg
}

// NetworkConfig returns the serve mode configuration
func (s Settings) NetworkConfig() *network.Config {
	cfg := network.DefaultConfig()
	cfg.Address = s.Addr
	return cfg
}

// Rand returns the shuffle source, nil lets the board seed itself
func (s Settings) Rand() *rand.Rand {
	if s.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(s.Seed, s.Seed))
}

// LoadAtlas reads the configured atlas and checks it covers every card type
func (s Settings) LoadAtlas() (*render.Atlas, error) {
	data := []byte(asset.DefaultAtlas)
	if s.Atlas != "" {
		b, err := os.ReadFile(s.Atlas)
		if err != nil {
			return nil, fmt.Errorf("read atlas: %w", err)
		}
		data = b
	}

	atlas, err := render.LoadAtlas(data)
	if err != nil {
		return nil, err
	}
	if err := atlas.Require(s.Pairs); err != nil {
		return nil, err
	}
	return atlas, nil
}
