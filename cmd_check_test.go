package main

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-match/internal/config"
	"go-match/internal/game"
)

func TestCheckLevelsConfigCatalog(t *testing.T) {
	cfg, err := config.Parse(nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var out bytes.Buffer
	if !checkLevels(&out, cfg, cfg.Catalog(), rand.New(rand.NewSource(1))) {
		t.Fatalf("checkLevels() = false, output:\n%s", out.String())
	}
	if got := strings.Count(out.String(), "ok   level"); got != len(cfg.Levels) {
		t.Errorf("%d levels ok, want %d", got, len(cfg.Levels))
	}
}

func TestCheckLevelsInsufficient(t *testing.T) {
	cfg, err := config.Parse(nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	cat := cfg.Catalog()
	cat.Themes["summer"] = cat.Themes["summer"][:4]

	var out bytes.Buffer
	if checkLevels(&out, cfg, cat, rand.New(rand.NewSource(1))) {
		t.Fatal("checkLevels() = true, want false")
	}
	if !strings.Contains(out.String(), "FAIL level 2: theme summer has 4 items, needs 6") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestCheckLevelsDirCatalog(t *testing.T) {
	cfg, err := config.Parse([]byte(`
levels:
  - { id: 1, rows: 2, cols: 2, theme: spring, time_limit: 0s }
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	root := t.TempDir()
	for _, item := range []string{"plum", "peach", "empty"} {
		dir := filepath.Join(root, "spring", item)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if item == "empty" {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, "a.png"), []byte("png"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	rng := rand.New(rand.NewSource(1))
	var out bytes.Buffer
	if !checkLevels(&out, cfg, game.NewDirCatalog(root, rng), rng) {
		t.Fatalf("checkLevels() = false, output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "warn theme spring: item empty has no images") {
		t.Errorf("missing warning for the empty item:\n%s", out.String())
	}
}
