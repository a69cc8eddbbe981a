package pypage

import (
	"strings"
	"testing"
	"time"
)

func prepared(t *testing.T, input string) *PreparedDocument {
	t.Helper()
	doc, err := Prepare(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	return doc
}

func TestDocumentCacheGetSet(t *testing.T) {
	cache := NewDocumentCacheWithConfig(CacheConfig{MaxSize: 2})

	if _, ok := cache.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}

	doc := prepared(t, "hello\n")
	cache.Set("a", doc)

	got, ok := cache.Get("a")
	if !ok {
		t.Fatal("expected hit for key a")
	}
	if got != doc {
		t.Error("cache returned a different document")
	}
}

func TestDocumentCacheLRUEviction(t *testing.T) {
	cache := NewDocumentCacheWithConfig(CacheConfig{MaxSize: 2})

	cache.Set("a", prepared(t, "a\n"))
	cache.Set("b", prepared(t, "b\n"))

	// Touch a so b becomes the eviction candidate.
	if _, ok := cache.Get("a"); !ok {
		t.Fatal("expected hit for key a")
	}

	cache.Set("c", prepared(t, "c\n"))

	if _, ok := cache.Get("b"); ok {
		t.Error("expected b to have been evicted")
	}
	if _, ok := cache.Get("a"); !ok {
		t.Error("expected a to survive eviction")
	}
	if _, ok := cache.Get("c"); !ok {
		t.Error("expected c to be cached")
	}
	if cache.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cache.Len())
	}
}

func TestDocumentCacheTTL(t *testing.T) {
	cache := NewDocumentCacheWithConfig(CacheConfig{MaxSize: 2, TTL: time.Millisecond})

	cache.Set("a", prepared(t, "a\n"))
	time.Sleep(5 * time.Millisecond)

	if _, ok := cache.Get("a"); ok {
		t.Error("expected entry to have expired")
	}
}

func TestDocumentCacheDisabled(t *testing.T) {
	cache := NewDocumentCacheWithConfig(CacheConfig{MaxSize: 0})

	cache.Set("a", prepared(t, "a\n"))
	if _, ok := cache.Get("a"); ok {
		t.Error("disabled cache must not store entries")
	}
	if cache.Len() != 0 {
		t.Errorf("Len() = %d, want 0", cache.Len())
	}
}

func TestDocumentCacheRemoveAndClear(t *testing.T) {
	cache := NewDocumentCacheWithConfig(CacheConfig{MaxSize: 4})

	cache.Set("a", prepared(t, "a\n"))
	cache.Set("b", prepared(t, "b\n"))

	cache.Remove("a")
	if _, ok := cache.Get("a"); ok {
		t.Error("expected a to be removed")
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", cache.Len())
	}
}
