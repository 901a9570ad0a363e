package game

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// PlaceholderVisual is shown for an item whose visual could not be resolved.
const PlaceholderVisual = "?"

// Catalog resolves themes to pairable items and items to a visual.
type Catalog interface {
	ListItems(theme string) ([]string, error)
	ResolveVisual(theme, item string) (string, error)
}

var imageExts = []string{".png", ".jpg", ".jpeg"}

func isImage(name string) bool {
	return slices.Contains(imageExts, strings.ToLower(filepath.Ext(name)))
}

// DirCatalog reads items from an asset tree laid out as root/<theme>/<item>/<image>.
// An item directory without images is skipped. It is safe for concurrent use;
// SSH sessions share one.
type DirCatalog struct {
	Root string
	Rand *rand.Rand

	mu sync.Mutex // guards Rand
}

// NewDirCatalog returns a catalog over root. A nil rng picks images deterministically.
func NewDirCatalog(root string, rng *rand.Rand) *DirCatalog {
	return &DirCatalog{Root: root, Rand: rng}
}

func (c *DirCatalog) ListItems(theme string) ([]string, error) {
	themeDir := filepath.Join(c.Root, theme)
	entries, err := os.ReadDir(themeDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme dir %s: %w", themeDir, err)
	}

	var items []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		images, err := c.images(theme, entry.Name())
		if err != nil || len(images) == 0 {
			continue
		}
		items = append(items, entry.Name())
	}
	return items, nil
}

// ResolveVisual picks one of the item's images and returns its path.
func (c *DirCatalog) ResolveVisual(theme, item string) (string, error) {
	images, err := c.images(theme, item)
	if err != nil {
		return "", err
	}
	if len(images) == 0 {
		return "", fmt.Errorf("no images for %s/%s", theme, item)
	}
	pick := 0
	if c.Rand != nil {
		c.mu.Lock()
		pick = c.Rand.Intn(len(images))
		c.mu.Unlock()
	}
	return filepath.Join(c.Root, theme, item, images[pick]), nil
}

// Check reports every item directory of the theme that holds no image.
func (c *DirCatalog) Check(theme string) ([]string, error) {
	themeDir := filepath.Join(c.Root, theme)
	entries, err := os.ReadDir(themeDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme dir %s: %w", themeDir, err)
	}
	var empty []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		images, err := c.images(theme, entry.Name())
		if err != nil || len(images) == 0 {
			empty = append(empty, entry.Name())
		}
	}
	return empty, nil
}

func (c *DirCatalog) images(theme, item string) ([]string, error) {
	dir := filepath.Join(c.Root, theme, item)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read item dir %s: %w", dir, err)
	}
	var images []string
	for _, entry := range entries {
		if !entry.IsDir() && isImage(entry.Name()) {
			images = append(images, entry.Name())
		}
	}
	return images, nil
}

// StaticCatalog serves items from memory. Visuals map item ids to display glyphs.
type StaticCatalog struct {
	Themes  map[string][]string
	Visuals map[string]string
}

func (c *StaticCatalog) ListItems(theme string) ([]string, error) {
	items, ok := c.Themes[theme]
	if !ok {
		return nil, fmt.Errorf("unknown theme %q", theme)
	}
	return slices.Clone(items), nil
}

func (c *StaticCatalog) ResolveVisual(theme, item string) (string, error) {
	if v, ok := c.Visuals[item]; ok && v != "" {
		return v, nil
	}
	return "", fmt.Errorf("no visual for %s/%s", theme, item)
}
