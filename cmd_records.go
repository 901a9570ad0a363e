package main

import (
	"fmt"
	"os"

	"go-match/internal/records"
	"go-match/internal/tui"

	"github.com/spf13/cobra"
)

var flagTop int

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Show recorded results and best times",
	Long: `Show every level's play count and its fastest wins.

Examples:
  go-match records
  go-match records --top 10
  go-match records --store sqlite`,
	Args: cobra.NoArgs,
	Run:  runRecords,
}

func init() {
	recordsCmd.Flags().IntVar(&flagTop, "top", 5, "Number of best times per level")
}

func runRecords(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	storage, err := records.Open(flagStore, flagRecords)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open records: %v\n", err)
		os.Exit(1)
	}
	defer storage.Close()

	entries, err := storage.LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		fmt.Println("No results recorded yet. Play a level first!")
		return
	}

	fmt.Print(tui.RenderRecords(cfg, entries, flagTop, tui.NewStyles(nil)))
}
