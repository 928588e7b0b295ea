package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/carousel/pkg/observability"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "frames"))
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "frame", []byte("<svg/>"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "frame")
	if err != nil || !hit {
		t.Fatalf("Get(frame) = hit %v, err %v; want hit", hit, err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("Get(frame) = %q, want %q", data, "<svg/>")
	}

	if err := c.Delete(ctx, "frame"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "frame"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "frame"); err != nil {
		t.Errorf("Delete of missing key error: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	if err := c.Set(ctx, "old", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("old")); !os.IsNotExist(err) {
		t.Errorf("expired entry should be removed, stat err = %v", err)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	path := c.path("bad")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("Get(bad) = hit %v, err %v; want silent miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set(%s) error: %v", k, err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after Clear, want 0", len(entries))
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %s, want %s", c.Dir(), dir)
	}

	gone := &FileCache{dir: filepath.Join(dir, "never-created")}
	if n, err := gone.Clear(); n != 0 || err != nil {
		t.Errorf("Clear() on missing dir = %d, %v; want 0, nil", n, err)
	}
}

func TestFileCacheConcurrentSet(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Set(ctx, "shared", []byte(strings.Repeat("x", i+1)), 0)
		}()
	}
	wg.Wait()

	data, hit, err := c.Get(ctx, "shared")
	if err != nil || !hit {
		t.Fatalf("Get(shared) = hit %v, err %v; want hit", hit, err)
	}
	if len(data) == 0 || strings.Trim(string(data), "x") != "" {
		t.Errorf("Get(shared) = %q, want one complete write", data)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	k1 := k.FrameKey("hash123", FrameKeyOpts{Offset: 0, Format: "svg"})
	k2 := k.FrameKey("hash123", FrameKeyOpts{Offset: 210, Format: "svg"})
	k3 := k.FrameKey("hash123", FrameKeyOpts{Offset: 0, Format: "json"})
	k4 := k.FrameKey("hash456", FrameKeyOpts{Offset: 0, Format: "svg"})
	if k1 == k2 || k1 == k3 || k1 == k4 {
		t.Errorf("FrameKey should differ per offset, format and config: %s %s %s %s", k1, k2, k3, k4)
	}
	if k1 != k.FrameKey("hash123", FrameKeyOpts{Offset: 0, Format: "svg"}) {
		t.Error("FrameKey should be deterministic")
	}
	if !strings.HasPrefix(k1, "frame:") {
		t.Errorf("FrameKey should be prefixed: %s", k1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "v1.0.0:")

	opts := FrameKeyOpts{Offset: 420, Format: "svg"}
	got := scoped.FrameKey("abc", opts)
	if want := "v1.0.0:" + inner.FrameKey("abc", opts); got != want {
		t.Errorf("ScopedKeyer FrameKey = %s, want %s", got, want)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.FrameKey("abc", FrameKeyOpts{})
	if !strings.HasPrefix(key, "prefix:frame:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestOffsetLabel(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{210, "210"},
		{-52.5, "-52.5"},
	}
	for _, tt := range tests {
		if got := OffsetLabel(tt.in); got != tt.want {
			t.Errorf("OffsetLabel(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

// countingHooks records cache events.
type countingHooks struct {
	mu                sync.Mutex
	hits, misses, set int
	bytes             int
}

func (h *countingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *countingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func (h *countingHooks) OnCacheSet(_ context.Context, _ string, size int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.set++
	h.bytes += size
}

func TestObserved(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	inner, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	c := NewObserved(inner, "frame")
	defer c.Close()

	_, _, _ = c.Get(ctx, "k")
	_ = c.Set(ctx, "k", []byte("12345"), 0)
	_, _, _ = c.Get(ctx, "k")
	_ = c.Delete(ctx, "k")

	if hooks.hits != 1 || hooks.misses != 1 || hooks.set != 1 || hooks.bytes != 5 {
		t.Errorf("hooks = %d hits, %d misses, %d sets, %d bytes; want 1, 1, 1, 5",
			hooks.hits, hooks.misses, hooks.set, hooks.bytes)
	}
	if _, hit, _ := inner.Get(ctx, "k"); hit {
		t.Error("Delete should reach the inner cache")
	}
}
