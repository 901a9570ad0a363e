package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the level progression",
	Args:  cobra.NoArgs,
	Run:   runLevels,
}

func runLevels(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Levels:")
	fmt.Println()
	for _, l := range cfg.LevelSpecs() {
		limit := "unlimited"
		if !l.Unlimited() {
			limit = l.TimeLimit.String()
		}
		fmt.Printf("  %d  %-8s  %dx%d  %d pairs  %s\n", l.ID, cfg.ThemeName(l.Theme), l.Rows, l.Cols, l.TotalPairs(), limit)
	}
	fmt.Println()
	fmt.Println("Usage: go-match play")
}
