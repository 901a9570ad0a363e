// go-match is a seasonal memory-matching game for the terminal.
//
// Usage:
//
//	go-match [play]        - Play the four seasons
//	go-match serve         - Start SSH server for remote play
//	go-match records       - Show recorded results and best times
//	go-match check         - Verify every level has enough items
//	go-match levels        - List the level progression
//
// Global flags:
//
//	--config <path>      - Config file (default: search ~/.go-match, ./configs, embedded)
//	--seed <value>       - RNG seed for reproducible deals
//	--time-limit <t>     - Override every level's limit (MM:SS, seconds or off)
//	--tick-rate <d>      - Override the frame interval
//	--assets <dir>       - Read items from <dir>/<theme>/<item>/*.png
//	--store json|sqlite  - Records backend
//	--records <path>     - Records file
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Log file for the interactive game
package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"go-match/internal/config"
	"go-match/internal/game"
	"go-match/internal/records"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig    string
	flagSeed      int64
	flagTimeLimit timerFlag
	flagTickRate  time.Duration
	flagAssets    string
	flagStore     string
	flagRecords   string
	flagLogLevel  string
	flagLogFile   string
)

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "go-match",
	Short: "Seasonal memory-matching game",
	Long: `go-match is a memory-matching game played across four seasonal levels.
Flip two cards at a time and find every pair before the clock runs out.

Available commands:
  play     - Play the game (default)
  serve    - Start SSH server for remote play
  records  - Show recorded results and best times
  check    - Verify every level has enough items
  levels   - List the level progression

Examples:
  go-match
  go-match --time-limit 1:30
  go-match --assets ./assets --store sqlite
  go-match serve --ssh :2222
  go-match records --top 3`,
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML (env GO_MATCH_CONFIG)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().Var(&flagTimeLimit, "time-limit", "Time limit for every level (e.g. 45 or 1:30, off = unlimited)")
	rootCmd.PersistentFlags().DurationVar(&flagTickRate, "tick-rate", 0, "Frame interval (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "Asset directory laid out as <theme>/<item>/<image>")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "json", "Records backend: json or sqlite")
	rootCmd.PersistentFlags().StringVar(&flagRecords, "records", "", "Path to records file (default in ~/.go-match)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (env GO_MATCH_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", filepath.Join(records.DefaultDir, "go-match.log"), "Log file for the interactive game")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(levelsCmd)
}

// loadConfig loads the config and applies the flag overrides.
func loadConfig() (config.Config, error) {
	path := flagConfig
	if path == "" {
		path = os.Getenv("GO_MATCH_CONFIG")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	applyOverrides(&cfg)
	return cfg, nil
}

func applyOverrides(cfg *config.Config) {
	if flagTimeLimit.set {
		for i := range cfg.Levels {
			cfg.Levels[i].TimeLimit = flagTimeLimit.Duration()
		}
	}
	if flagTickRate > 0 {
		cfg.Timing.TickRate = flagTickRate
	}
}

// catalogFor returns the asset directory catalog when --assets is set and
// the configured glyphs otherwise.
func catalogFor(cfg config.Config, rng *rand.Rand) game.Catalog {
	if flagAssets != "" {
		return game.NewDirCatalog(flagAssets, rng)
	}
	return cfg.Catalog()
}

func newRand() *rand.Rand {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// newLogger creates a logger writing to w at the level from the flag or the
// environment. An unknown level falls back to info.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	name := flagLogLevel
	if name == "" {
		name = os.Getenv("GO_MATCH_LOG_LEVEL")
	}
	if name == "" {
		name = "info"
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", name)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openLogFile opens the log file for appending, creating its directory.
func openLogFile(path string) (*os.File, error) {
	path, err := records.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}
