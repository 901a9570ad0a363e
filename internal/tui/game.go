package tui

import (
	"io"
	"math/rand"

	"go-match/internal/achievement"
	"go-match/internal/config"
	"go-match/internal/game"
	"go-match/internal/state"

	"github.com/charmbracelet/log"
)

// Game holds what is shared by every program: local or one per SSH session.
type Game struct {
	Config  config.Config
	Catalog game.Catalog
	Engine  *achievement.Engine
	Logger  *log.Logger
}

// NewGame builds a Game from cfg. A nil catalog serves the configured glyphs.
func NewGame(cfg config.Config, catalog game.Catalog, logger *log.Logger) Game {
	if catalog == nil {
		catalog = cfg.Catalog()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return Game{
		Config:  cfg,
		Catalog: catalog,
		Engine:  achievement.NewEngine(cfg.Achievements),
		Logger:  logger,
	}
}

// NewModel creates a controller with a fresh achievement store and wraps it in a model.
func (g Game) NewModel(rng *rand.Rand, recorder state.Recorder, styles Styles, width, height int) *Model {
	opts := state.Options{
		Levels:   g.Config.LevelSpecs(),
		Catalog:  g.Catalog,
		Rand:     rng,
		Timing:   g.Config.GameTiming(),
		Layout:   g.Config.Layout(width, max(height-helpHeight, 1)),
		Engine:   g.Engine,
		Recorder: recorder,
		Logger:   g.Logger,
	}
	return NewModel(state.NewController(opts), g.Config, styles, width, height)
}
