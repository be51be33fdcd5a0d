package colors

import (
	"fmt"
	"testing"
	"time"
)

func newCache(t *testing.T) *ColorCache {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cache, err := NewColorCache()
	if err != nil {
		t.Fatalf("NewColorCache: %v", err)
	}
	return cache
}

func TestGetColorIDStablePerCategory(t *testing.T) {
	cache := newCache(t)

	first := cache.GetColorID("work")
	if first != cache.GetColorID("work") {
		t.Error("repeated lookups must return the same color")
	}
	if cache.GetColorID("personal") == first {
		t.Error("distinct categories must get distinct colors while the palette has room")
	}
}

func TestGetColorIDFallbackForEmptyCategory(t *testing.T) {
	cache := newCache(t)
	if got := cache.GetColorID(""); got != fallbackColor {
		t.Errorf("empty category color = %q, want %q", got, fallbackColor)
	}
}

func TestAssignColorRecyclesOldest(t *testing.T) {
	cache := newCache(t)

	base := time.Now().Add(-time.Hour)
	for i := 1; i <= paletteSize; i++ {
		cat := fmt.Sprintf("cat%d", i)
		cache.GetColorID(cat)
		// Backdate so cat1 is unambiguously the least recently used.
		cache.Categories[cat].LastModified = base.Add(time.Duration(i) * time.Minute)
	}
	recycledFrom := cache.Categories["cat1"].ColorID

	got := cache.GetColorID("overflow")
	if got != recycledFrom {
		t.Errorf("overflow color = %q, want recycled %q", got, recycledFrom)
	}
	if _, exists := cache.Categories["cat1"]; exists {
		t.Error("least recently used category must be evicted")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cache := newCache(t)
	want := cache.GetColorID("work")
	if err := cache.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := NewColorCache()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := reloaded.GetColorID("work"); got != want {
		t.Errorf("reloaded color = %q, want %q", got, want)
	}
}
