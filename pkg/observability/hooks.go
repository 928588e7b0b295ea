// Package observability provides hooks for metrics, tracing, and logging.
//
// The layout engine is a pure computation unit, so it never logs or records
// metrics itself. Instead it reports events through the hooks registered
// here. Consumers install implementations at startup; the defaults are no-ops.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Registration is done by main packages, never by libraries, which keeps the
// engine free of any observability backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnRecompute(observability.RecomputeEvent{...})
package observability

import (
	"context"
	"sync"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// RecomputeEvent describes one recomputation of derived layout state.
type RecomputeEvent struct {
	Axis         string  // "horizontal" or "vertical"
	Sections     int     // Number of virtual sections
	Items        int     // Items per section
	Stride       float64 // Item extent plus spacing along the scroll axis
	Extent       float64 // Content extent along the scroll axis
	Recomputes   int     // Total recomputations so far, including this one
	ViewportSize [2]float64
}

// QueryEvent describes one windowed attribute query.
type QueryEvent struct {
	Min, Max float64 // Query bounds along the scroll axis, after clipping
	Count    int     // Number of attributes produced
}

// SnapEvent describes one snap-target decision.
type SnapEvent struct {
	Policy   string  // "automatic" or "fixed(D)"
	Proposed float64 // Proposed offset along the scroll axis
	Velocity float64 // Scroll-axis velocity
	Target   float64 // Clamped target offset
}

// LayoutHooks receives events from the layout engine.
type LayoutHooks interface {
	// OnRecompute is called after derived state has been rebuilt.
	OnRecompute(ev RecomputeEvent)

	// OnQuery is called after a windowed attribute query completes.
	OnQuery(ev QueryEvent)

	// OnSnap is called after a snap target has been decided.
	OnSnap(ev SnapEvent)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnRecompute(RecomputeEvent) {}
func (NoopLayoutHooks) OnQuery(QueryEvent)         {}
func (NoopLayoutHooks) OnSnap(SnapEvent)           {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks LayoutHooks = NoopLayoutHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any layout work.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	cacheHooks = NoopCacheHooks{}
}
