package state

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"time"

	"go-match/internal/achievement"
	"go-match/internal/game"
	"go-match/internal/records"

	"github.com/charmbracelet/log"
	"github.com/looplab/fsm"
)

// Controller states.
const (
	StateMenu          = "menu"
	StatePlaying       = "playing"
	StateLevelComplete = "level_complete"
	StateGameOver      = "game_over"
	StateAllComplete   = "all_levels_complete"
)

// Recorder persists finished levels and answers best-time queries.
type Recorder interface {
	Record(r records.Result) error
	Best(levelID int) (records.Entry, bool, error)
}

// Options wires a controller to its collaborators.
type Options struct {
	Levels   []game.LevelSpec
	Catalog  game.Catalog
	Rand     *rand.Rand
	Timing   game.Timing
	Layout   game.Layout
	Engine   *achievement.Engine
	Store    *achievement.Store // nil creates a fresh store
	Recorder Recorder           // optional
	Logger   *log.Logger        // optional
}

// Popup is an achievement banner counting down to dismissal.
type Popup struct {
	Record    achievement.Record
	Remaining time.Duration
}

// Controller sequences level sessions across the level list.
// It is driven from a single goroutine and is not safe for concurrent use.
type Controller struct {
	FSM *fsm.FSM

	levels   []game.LevelSpec
	catalog  game.Catalog
	rng      *rand.Rand
	timing   game.Timing
	layout   game.Layout
	engine   *achievement.Engine
	store    *achievement.Store
	recorder Recorder
	logger   *log.Logger

	levelIndex    int
	deal          *game.Deal
	session       *game.LevelSession
	newlyUnlocked []achievement.Record
	popup         *Popup
	best          *records.Entry
	newBest       bool
	lastErr       error
	quitting      bool
}

// NewController creates a controller in the menu state.
func NewController(opts Options) *Controller {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Engine == nil {
		opts.Engine = achievement.NewEngine(achievement.DefaultRules())
	}
	if opts.Store == nil {
		opts.Store = opts.Engine.NewStore()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	c := &Controller{
		levels:   opts.Levels,
		catalog:  opts.Catalog,
		rng:      opts.Rand,
		timing:   opts.Timing,
		layout:   opts.Layout,
		engine:   opts.Engine,
		store:    opts.Store,
		recorder: opts.Recorder,
		logger:   opts.Logger,
	}
	c.FSM = fsm.NewFSM(
		StateMenu,
		getStateTransitions(),
		getStateCallbacks(c),
	)
	return c
}

func getStateTransitions() []fsm.EventDesc {
	return fsm.Events{
		{Name: "start", Src: []string{StateMenu}, Dst: StatePlaying},
		{Name: "win", Src: []string{StatePlaying}, Dst: StateLevelComplete},
		{Name: "timeout", Src: []string{StatePlaying}, Dst: StateGameOver},
		{Name: "next", Src: []string{StateLevelComplete}, Dst: StatePlaying},
		{Name: "finish", Src: []string{StateLevelComplete}, Dst: StateAllComplete},

		// Leaving a game
		{Name: "cancel", Src: []string{StatePlaying, StateLevelComplete, StateGameOver, StateAllComplete}, Dst: StateMenu},
		{Name: "back", Src: []string{StateGameOver, StateAllComplete}, Dst: StateMenu},
	}
}

func getStateCallbacks(c *Controller) map[string]fsm.Callback {
	return fsm.Callbacks{
		"enter_" + StatePlaying: func(_ context.Context, e *fsm.Event) {
			spec := c.levels[c.levelIndex]
			c.logger.Info("level started", "level", spec.ID, "theme", spec.Theme, "limit", spec.TimeLimit)
		},
		"enter_" + StateLevelComplete: func(_ context.Context, e *fsm.Event) {
			s := c.session
			outcome := achievement.Outcome{
				LevelID:  s.Spec.ID,
				Theme:    s.Spec.Theme,
				Elapsed:  s.Elapsed,
				Mistakes: s.Mistakes,
				Attempts: s.Attempts,
			}
			c.logger.Info("level won", "level", outcome.LevelID, "elapsed", outcome.Elapsed, "attempts", outcome.Attempts, "mistakes", outcome.Mistakes)
			c.newBest = c.best == nil || s.Elapsed <= c.best.Elapsed
			c.unlocked(c.engine.LevelWon(c.store, outcome))
			c.record(true)
		},
		"enter_" + StateGameOver: func(_ context.Context, e *fsm.Event) {
			c.logger.Info("level timed out", "level", c.session.Spec.ID, "matched", c.session.MatchedPairs, "total", c.session.TotalPairs)
			c.record(false)
		},
		"enter_" + StateAllComplete: func(_ context.Context, e *fsm.Event) {
			ids := make([]int, len(c.levels))
			for i, l := range c.levels {
				ids[i] = l.ID
			}
			c.logger.Info("all levels complete")
			c.unlocked(c.engine.AllLevelsComplete(c.store, ids))
		},
		"enter_" + StateMenu: func(_ context.Context, e *fsm.Event) {
			c.deal = nil
			c.session = nil
			c.best = nil
			c.newBest = false
			c.newlyUnlocked = nil
			c.levelIndex = 0
		},
	}
}

// unlocked stores newly unlocked records and pops up the first one.
func (c *Controller) unlocked(recs []achievement.Record) {
	c.newlyUnlocked = recs
	for _, r := range recs {
		c.logger.Info("achievement unlocked", "id", r.ID, "name", r.Name)
	}
	if len(recs) > 0 {
		c.popup = &Popup{Record: recs[0], Remaining: c.timing.Popup}
	}
}

func (c *Controller) record(won bool) {
	if c.recorder == nil || c.session == nil {
		return
	}
	s := c.session
	err := c.recorder.Record(records.Result{
		LevelID:  s.Spec.ID,
		Theme:    s.Spec.Theme,
		Won:      won,
		Elapsed:  s.Elapsed,
		Attempts: s.Attempts,
		Mistakes: s.Mistakes,
	})
	if err != nil {
		c.logger.Warn("could not record result", "level", s.Spec.ID, "err", err)
	}
}

func (c *Controller) event(name string) {
	if err := c.FSM.Event(context.Background(), name); err != nil {
		c.logger.Debug("transition refused", "event", name, "state", c.FSM.Current(), "err", err)
	}
}

// startLevel sets up the level at idx and fires event on success. On failure
// the controller ends up in the menu with the error kept in LastError.
func (c *Controller) startLevel(idx int, event string) {
	if idx < 0 || idx >= len(c.levels) {
		c.fail(game.ErrConfiguration)
		return
	}
	spec := c.levels[idx]
	deal, err := game.SetupLevel(spec, c.catalog, c.rng, c.layout)
	if err != nil {
		c.logger.Error("level setup failed", "level", spec.ID, "theme", spec.Theme, "err", err)
		c.fail(err)
		return
	}
	for _, w := range deal.Warnings {
		c.logger.Warn("asset load failed, using placeholder", "theme", w.Theme, "item", w.Item, "err", w.Err)
	}

	c.lastErr = nil
	c.levelIndex = idx
	c.deal = deal
	c.session = game.NewLevelSession(spec, deal.Board, c.timing)
	c.newlyUnlocked = nil
	c.newBest = false
	c.best = nil
	if c.recorder != nil {
		best, ok, err := c.recorder.Best(spec.ID)
		switch {
		case err != nil:
			c.logger.Warn("could not load best time", "level", spec.ID, "err", err)
		case ok:
			c.best = &best
		}
	}
	c.event(event)
}

func (c *Controller) fail(err error) {
	c.lastErr = err
	if !c.FSM.Is(StateMenu) {
		c.event("cancel")
	}
}

// Handle applies one input.
func (c *Controller) Handle(in Input) {
	switch in.Kind {
	case InputQuit:
		c.quitting = true
	case InputCancel:
		c.cancel()
	case InputConfirm:
		c.confirm()
	case InputClick:
		c.click(in.X, in.Y)
	}
}

func (c *Controller) cancel() {
	if c.FSM.Is(StateMenu) {
		c.quitting = true
		return
	}
	c.event("cancel")
}

func (c *Controller) confirm() {
	switch c.FSM.Current() {
	case StateMenu:
		c.startLevel(0, "start")
	case StateLevelComplete:
		if c.levelIndex+1 < len(c.levels) {
			c.startLevel(c.levelIndex+1, "next")
		} else {
			c.event("finish")
		}
	case StateGameOver, StateAllComplete:
		c.event("back")
	}
}

func (c *Controller) click(x, y int) {
	if !c.FSM.Is(StatePlaying) || c.session == nil || !c.session.AcceptingFlips() {
		return
	}
	if c.session.Board.TryFlip(x, y) != game.FlipSecond {
		return
	}

	c.session.OnSecondFlipSelected()
	r, err := c.session.Board.ResolveSelection()
	if err != nil {
		// TryFlip reported a second card, so two are selected.
		c.logger.Error("resolve failed", "err", err)
		return
	}
	c.session.OnResolution(r)
	if c.session.Won() {
		c.event("win")
	}
}

// Tick advances the popup countdown and, while playing, the session clock.
func (c *Controller) Tick(dt time.Duration) {
	if dt <= 0 {
		return
	}
	if c.popup != nil {
		c.popup.Remaining = max(c.popup.Remaining-dt, 0)
		if c.popup.Remaining <= 0 {
			c.popup = nil
		}
	}
	if !c.FSM.Is(StatePlaying) || c.session == nil {
		return
	}
	c.session.Tick(dt)
	if c.session.TimedOut() {
		c.event("timeout")
	}
}

// Resize relayouts the active board for a new draw area.
func (c *Controller) Resize(width, height int) {
	c.layout.Width = width
	c.layout.Height = height
	if c.deal != nil {
		c.deal.Board.Relayout(c.layout)
	}
}

func (c *Controller) State() string {
	return c.FSM.Current()
}

// Quitting reports whether a quit was requested. Exiting is up to the caller.
func (c *Controller) Quitting() bool {
	return c.quitting
}

func (c *Controller) LastError() error {
	return c.lastErr
}

// InsufficientAssets unwraps LastError when it reports a too small item pool.
func (c *Controller) InsufficientAssets() (*game.InsufficientAssetsError, bool) {
	var e *game.InsufficientAssetsError
	if errors.As(c.lastErr, &e) {
		return e, true
	}
	return nil, false
}

func (c *Controller) LevelIndex() int {
	return c.levelIndex
}

// Session returns the active level session, or nil.
func (c *Controller) Session() *game.LevelSession {
	return c.session
}

func (c *Controller) Store() *achievement.Store {
	return c.store
}
