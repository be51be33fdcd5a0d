// Package colors assigns stable Google Calendar colors to task
// categories so mirrored events are visually grouped.
package colors

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type CategoryState struct {
	ColorID      string    `json:"color_id"`
	LastModified time.Time `json:"last_modified"`
}

type ColorCache struct {
	Path       string
	Categories map[string]*CategoryState `json:"categories"`
	dirty      bool
}

const (
	xdgAppName = "taskflow"
	cacheFile  = "category_colors.json"

	// Calendar color ids 1-11 are the usable event palette; 14 is the
	// gray fallback for uncategorized tasks.
	paletteSize    = 11
	fallbackColor  = "14"
	defaultColorID = "1"
)

func NewColorCache() (*ColorCache, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(home, ".config", xdgAppName, cacheFile)

	cache := &ColorCache{
		Path:       path,
		Categories: make(map[string]*CategoryState),
	}

	if _, err := os.Stat(path); err == nil {
		if err := cache.Load(); err != nil {
			return nil, err
		}
	}
	return cache, nil
}

func (c *ColorCache) Load() error {
	f, err := os.Open(c.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(&c.Categories)
}

func (c *ColorCache) Save() error {
	if !c.dirty {
		return nil
	}
	dir := filepath.Dir(c.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		log.Printf("Error creating color cache directory: %v", err)
		return err
	}

	f, err := os.Create(c.Path)
	if err != nil {
		log.Printf("Error creating color cache file: %v", err)
		return err
	}
	defer f.Close()
	err = json.NewEncoder(f).Encode(c.Categories)
	if err == nil {
		c.dirty = false
	}
	return err
}

// GetColorID returns the color for a category, assigning one from the
// palette on first use and recycling the least recently used slot when
// the palette is exhausted.
func (c *ColorCache) GetColorID(category string) string {
	if category == "" {
		return fallbackColor
	}

	if state, exists := c.Categories[category]; exists {
		state.LastModified = time.Now()
		c.dirty = true
		return state.ColorID
	}
	return c.assignColor(category)
}

func (c *ColorCache) assignColor(category string) string {
	used := make(map[string]bool)
	for _, s := range c.Categories {
		used[s.ColorID] = true
	}

	for i := 1; i <= paletteSize; i++ {
		id := strconv.Itoa(i)
		if !used[id] {
			c.Categories[category] = &CategoryState{
				ColorID:      id,
				LastModified: time.Now(),
			}
			c.dirty = true
			return id
		}
	}

	// Palette full, evict the least recently used category.
	var oldestCategory string
	var oldestTime time.Time
	first := true
	for cat, s := range c.Categories {
		if first || s.LastModified.Before(oldestTime) {
			oldestTime = s.LastModified
			oldestCategory = cat
			first = false
		}
	}

	if oldestCategory != "" {
		recycled := c.Categories[oldestCategory].ColorID
		delete(c.Categories, oldestCategory)
		c.Categories[category] = &CategoryState{
			ColorID:      recycled,
			LastModified: time.Now(),
		}
		c.dirty = true
		return recycled
	}

	return defaultColorID
}
