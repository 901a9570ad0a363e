package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"

	"go-match/internal/config"
	"go-match/internal/game"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify every level has enough items",
	Long: `Deal every level once without playing it. Fails when a theme has too few
items for its level; missing images are reported as warnings.

Examples:
  go-match check
  go-match check --assets ./assets`,
	Args: cobra.NoArgs,
	Run:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(1))
	if !checkLevels(os.Stdout, cfg, catalogFor(cfg, rng), rng) {
		os.Exit(1)
	}
}

// checkLevels dry-runs the setup of every level and reports what it finds.
// It returns false if any level cannot be dealt.
func checkLevels(w io.Writer, cfg config.Config, catalog game.Catalog, rng *rand.Rand) bool {
	ok := true
	checked := map[string]bool{}
	for _, spec := range cfg.LevelSpecs() {
		_, err := game.SetupLevel(spec, catalog, rng, cfg.Layout(80, 24))
		var insufficient *game.InsufficientAssetsError
		switch {
		case errors.As(err, &insufficient):
			fmt.Fprintf(w, "FAIL level %d: theme %s has %d items, needs %d\n",
				spec.ID, insufficient.Theme, insufficient.Available, insufficient.Required)
			ok = false
		case err != nil:
			fmt.Fprintf(w, "FAIL level %d: %v\n", spec.ID, err)
			ok = false
		default:
			fmt.Fprintf(w, "ok   level %d: %s, %d pairs\n", spec.ID, spec.Theme, spec.TotalPairs())
		}

		dir, isDir := catalog.(*game.DirCatalog)
		if !isDir || checked[spec.Theme] {
			continue
		}
		checked[spec.Theme] = true
		empty, err := dir.Check(spec.Theme)
		if err != nil {
			continue
		}
		for _, item := range empty {
			fmt.Fprintf(w, "warn theme %s: item %s has no images\n", spec.Theme, item)
		}
	}
	return ok
}
