package main

import (
	"fmt"
	"os"

	"go-match/internal/records"
	"go-match/internal/state"
	"go-match/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Play the four seasonal levels in order.

Controls:
  Mouse click      - Flip the card under the pointer
  Arrows/hjkl      - Move the cursor
  Enter/Space      - Flip the card under the cursor, start, continue
  Esc              - Back to the menu (quits from the menu)
  ?                - Toggle help
  Q/Ctrl+C         - Quit`,
	Run: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The game owns the terminal, so logs go to a file.
	logFile, err := openLogFile(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := newLogger(logFile, "go-match")

	// Get terminal size before the program starts
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	var recorder state.Recorder
	storage, err := records.Open(flagStore, flagRecords)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open records: %v\n", err)
		logger.Warn("playing without records", "err", err)
	} else {
		defer storage.Close()
		tracker := records.NewTracker(storage)
		logger.Info("run started", "run", tracker.RunID(), "store", flagStore)
		recorder = tracker
	}

	rng := newRand()
	g := tui.NewGame(cfg, catalogFor(cfg, rng), logger)
	m := g.NewModel(rng, recorder, tui.NewStyles(nil), width, height)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}

	if e, ok := m.Controller().InsufficientAssets(); ok {
		fmt.Fprintf(os.Stderr, "Not enough items: %v\n", e)
	}
}
