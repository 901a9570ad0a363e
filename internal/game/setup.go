package game

import (
	"fmt"
	"math/rand"
)

// AssetWarning records a visual that fell back to the placeholder.
type AssetWarning struct {
	Theme string
	Item  string
	Err   error
}

func (w AssetWarning) Error() string {
	return fmt.Sprintf("asset %s/%s: %v", w.Theme, w.Item, w.Err)
}

func (w AssetWarning) Unwrap() error {
	return w.Err
}

// Deal is a freshly set up level: the board and the visual of every item on it.
type Deal struct {
	Board    *Board
	Visuals  map[string]string
	Warnings []AssetWarning
}

// Visual returns the visual for an item, or the placeholder.
func (d *Deal) Visual(item string) string {
	if v, ok := d.Visuals[item]; ok {
		return v
	}
	return PlaceholderVisual
}

// DealItems samples pairs distinct items from pool, duplicates them and shuffles the result.
func DealItems(theme string, pool []string, pairs int, rng *rand.Rand) ([]string, error) {
	distinct := dedupe(pool)
	if len(distinct) < pairs {
		return nil, &InsufficientAssetsError{Theme: theme, Available: len(distinct), Required: pairs}
	}

	perm := rng.Perm(len(distinct))
	items := make([]string, 0, pairs*2)
	for _, p := range perm[:pairs] {
		items = append(items, distinct[p], distinct[p])
	}
	rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	return items, nil
}

// SetupLevel builds the board for spec. No card is created when it fails.
func SetupLevel(spec LevelSpec, catalog Catalog, rng *rand.Rand, layout Layout) (*Deal, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	pool, err := catalog.ListItems(spec.Theme)
	if err != nil {
		return nil, fmt.Errorf("failed to list items for theme %s: %w", spec.Theme, err)
	}
	items, err := DealItems(spec.Theme, pool, spec.TotalPairs(), rng)
	if err != nil {
		return nil, err
	}
	board, err := Build(items, spec.Rows, spec.Cols, layout)
	if err != nil {
		return nil, err
	}

	deal := &Deal{Board: board, Visuals: make(map[string]string, spec.TotalPairs())}
	for _, item := range items {
		if _, done := deal.Visuals[item]; done {
			continue
		}
		visual, err := catalog.ResolveVisual(spec.Theme, item)
		if err != nil {
			deal.Warnings = append(deal.Warnings, AssetWarning{Theme: spec.Theme, Item: item, Err: err})
			visual = PlaceholderVisual
		}
		deal.Visuals[item] = visual
	}
	return deal, nil
}

func dedupe(pool []string) []string {
	seen := make(map[string]bool, len(pool))
	out := make([]string, 0, len(pool))
	for _, item := range pool {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
