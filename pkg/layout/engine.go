package layout

import (
	"iter"
	"math"

	"github.com/matzehuels/carousel/pkg/geom"
	"github.com/matzehuels/carousel/pkg/observability"
)

// boundaryULPs is the relative tolerance, in units of machine epsilon, used
// when deciding whether an item origin lies past the end of a query.
const boundaryULPs = 100

// machineEpsilon is the difference between 1 and the next float64.
var machineEpsilon = math.Nextafter(1, 2) - 1

// Engine owns the derived layout state of one carousel.
//
// An Engine is not safe for concurrent use; all calls are expected to come
// from the goroutine that drives its host.
type Engine struct {
	host Host

	viewport geom.Size
	axis     geom.Axis
	sections int
	items    int
	itemSize geom.Size
	spacing  float64
	inset    float64
	stride   float64
	content  geom.Size

	dirty      bool
	recomputes int
}

// New returns an engine bound to host. A nil host is allowed; every operation
// is then a no-op until [Engine.Attach] is called.
func New(host Host) *Engine {
	return &Engine{host: host, dirty: true}
}

// Attach binds the engine to host and marks it dirty.
func (e *Engine) Attach(host Host) {
	e.host = host
	e.dirty = true
}

// ForceInvalidate marks the derived state stale. The next call to
// [Engine.RecomputeIfNeeded] rebuilds it regardless of the viewport size.
// Hosts call it after any configuration change or orientation event.
func (e *Engine) ForceInvalidate() {
	e.dirty = true
}

// NeedsRecompute reports whether the engine has been invalidated since the
// last recomputation.
func (e *Engine) NeedsRecompute() bool {
	return e.dirty
}

// RecomputeIfNeeded rebuilds the derived state when the engine is dirty or
// viewport differs from the cached viewport size, then re-centers the
// viewport on the host's current item. It reports whether a recomputation
// happened.
func (e *Engine) RecomputeIfNeeded(viewport geom.Size) bool {
	if e.host == nil {
		return false
	}
	if !e.dirty && viewport == e.viewport {
		return false
	}
	e.dirty = false
	e.viewport = viewport

	cfg := e.host.LayoutConfig()
	e.axis = cfg.Axis
	e.sections = max(e.host.NumberOfSections(), 1)
	e.items = max(e.host.NumberOfItems(), 0)

	e.itemSize = cfg.ItemSize
	if e.itemSize.IsZero() {
		e.itemSize = viewport
	}
	if tr := e.host.Transformer(); tr != nil {
		if b, ok := tr.(Binder); ok {
			b.Bind(cfg.Axis, cfg.ItemSize)
		}
		e.spacing = tr.ProposedSpacing()
	} else {
		e.spacing = cfg.Spacing
	}

	viewExtent := e.axis.Extent(viewport)
	itemExtent := e.axis.Extent(e.itemSize)
	e.inset = (viewExtent - itemExtent) / 2
	e.stride = itemExtent + e.spacing

	var along float64
	if n := e.sections * e.items; n > 0 {
		along = 2*e.inset + float64(n-1)*e.spacing + float64(n)*itemExtent
	}
	e.content = e.axis.Size(along, e.axis.Cross().Extent(viewport))
	e.recomputes++

	e.AdjustViewportToCurrentItem()

	observability.Layout().OnRecompute(observability.RecomputeEvent{
		Axis:         e.axis.String(),
		Sections:     e.sections,
		Items:        e.items,
		Stride:       e.stride,
		Extent:       along,
		Recomputes:   e.recomputes,
		ViewportSize: [2]float64{viewport.Width, viewport.Height},
	})
	return true
}

// AdjustViewportToCurrentItem moves the host's viewport so that its current
// logical item is centered. When looping, the item is taken from the middle
// section. The move is not animated.
func (e *Engine) AdjustViewportToCurrentItem() {
	if e.host == nil || e.items == 0 {
		return
	}
	cfg := e.host.LayoutConfig()
	section := 0
	if cfg.Looping {
		section = e.sections / 2
	}
	e.host.SetContentOffset(e.ContentOffsetFor(section, cfg.CurrentIndex))
}

// HandleOrientationChange re-centers the current item after the host reports
// a device orientation change. It only acts when the item size tracks the
// viewport, since fixed-size items keep their offsets.
func (e *Engine) HandleOrientationChange() {
	if e.host == nil {
		return
	}
	if e.host.LayoutConfig().ItemSize.IsZero() {
		e.AdjustViewportToCurrentItem()
	}
}

// ContentExtent returns the size of the whole virtual strip.
func (e *Engine) ContentExtent() geom.Size {
	return e.content
}

// Stride returns the distance between successive item origins.
func (e *Engine) Stride() float64 { return e.stride }

// LeadingInset returns the padding before the first item on the scroll axis.
func (e *Engine) LeadingInset() float64 { return e.inset }

// ItemSize returns the actual item size.
func (e *Engine) ItemSize() geom.Size { return e.itemSize }

// Spacing returns the actual inter-item spacing.
func (e *Engine) Spacing() float64 { return e.spacing }

// Axis returns the scroll axis captured at the last recomputation.
func (e *Engine) Axis() geom.Axis { return e.axis }

// ViewportSize returns the viewport size captured at the last recomputation.
func (e *Engine) ViewportSize() geom.Size { return e.viewport }

// NumberOfSections returns the section count captured at the last
// recomputation.
func (e *Engine) NumberOfSections() int { return e.sections }

// NumberOfItems returns the items-per-section count captured at the last
// recomputation.
func (e *Engine) NumberOfItems() int { return e.items }

// Recomputations returns how many times derived state has been rebuilt.
func (e *Engine) Recomputations() int { return e.recomputes }

// VirtualIndex flattens a (section, item) pair.
func (e *Engine) VirtualIndex(section, item int) int {
	return e.items*section + item
}

// SplitIndex decomposes a virtual index into (section, item) using
// Euclidean division. It returns (0, 0) when there are no items.
func (e *Engine) SplitIndex(v int) (section, item int) {
	if e.items == 0 {
		return 0, 0
	}
	return splitIndex(v, e.items)
}

func splitIndex(v, n int) (section, item int) {
	section, item = v/n, v%n
	if item < 0 {
		section--
		item += n
	}
	return section, item
}

// Frame returns the rectangle of the item at (section, item). Indices are
// not bounds-checked; the mapping is pure arithmetic on the derived state.
func (e *Engine) Frame(section, item int) geom.Rect {
	if e.host == nil {
		return geom.Rect{}
	}
	cross := e.axis.Cross()
	along := e.inset + float64(e.VirtualIndex(section, item))*e.stride
	across := (cross.Extent(e.viewport) - cross.Extent(e.itemSize)) / 2
	return geom.NewRectFromOrigin(e.axis.Point(along, across), e.itemSize)
}

// ContentOffsetFor returns the content offset that centers (section, item)
// in the viewport. The cross-axis component is always zero.
func (e *Engine) ContentOffsetFor(section, item int) geom.Point {
	if e.host == nil {
		return geom.Point{}
	}
	origin := e.axis.Of(e.Frame(section, item).Origin())
	pad := (e.axis.Extent(e.viewport) - e.axis.Extent(e.itemSize)) / 2
	return e.axis.Point(origin-pad, 0)
}

// AttributesFor returns the fully decorated attributes of a single item,
// including its signed position and transformer output.
func (e *Engine) AttributesFor(section, item int) Attributes {
	if e.host == nil {
		return newAttributes(section, item)
	}
	return e.attributes(section, item)
}

// AttributesIntersecting returns the attributes of every item intersecting
// rect in ascending virtual-index order.
func (e *Engine) AttributesIntersecting(rect geom.Rect) []Attributes {
	var out []Attributes
	for a := range e.All(rect) {
		out = append(out, a)
	}
	if len(out) > 0 {
		clipped := rect.Intersect(geom.NewRectFromOrigin(geom.Point{}, e.content))
		observability.Layout().OnQuery(observability.QueryEvent{
			Min:   e.axis.Min(clipped),
			Max:   e.axis.Max(clipped),
			Count: len(out),
		})
	}
	return out
}

// All yields the attributes of every item intersecting rect in ascending
// virtual-index order without collecting them. Only the candidate window is
// visited; the full strip is never walked.
func (e *Engine) All(rect geom.Rect) iter.Seq[Attributes] {
	return func(yield func(Attributes) bool) {
		if e.host == nil || !(e.stride > 0) || e.items == 0 || rect.IsEmpty() {
			return
		}
		rect = rect.Intersect(geom.NewRectFromOrigin(geom.Point{}, e.content))
		if rect.IsEmpty() {
			return
		}

		first := max(int(math.Floor((e.axis.Min(rect)-e.inset)/e.stride)), 0)
		itemExtent := e.axis.Extent(e.itemSize)
		limit := min(e.axis.Max(rect), e.axis.Extent(e.content)-itemExtent-e.inset)
		total := e.sections * e.items

		for v := first; v < total; v++ {
			origin := e.inset + float64(v)*e.stride
			if pastBoundary(origin, limit) {
				return
			}
			section, item := splitIndex(v, e.items)
			if !yield(e.attributes(section, item)) {
				return
			}
		}
	}
}

// pastBoundary reports whether origin lies beyond limit by more than a
// tolerance relative to the magnitude of both operands.
func pastBoundary(origin, limit float64) bool {
	tol := max(boundaryULPs*machineEpsilon*math.Abs(origin+limit), math.SmallestNonzeroFloat64)
	return origin-limit > tol
}

func (e *Engine) attributes(section, item int) Attributes {
	a := newAttributes(section, item)
	a.Center = e.Frame(section, item).Center()
	a.Size = e.itemSize
	a.Axis = e.axis
	e.applyTransform(&a)
	return a
}

// applyTransform sets the signed position and paint order, then hands the
// attributes to the host's transformer.
func (e *Engine) applyTransform(a *Attributes) {
	if e.stride > 0 {
		mid := e.axis.Of(e.host.ContentOffset()) + e.axis.Extent(e.viewport)/2
		a.Position = (e.axis.Of(a.Center) - mid) / e.stride
	}
	a.ZIndex = e.items - int(math.Round(a.Position))
	if tr := e.host.Transformer(); tr != nil {
		tr.Apply(a)
	}
}

// SnapTarget returns the offset a released drag should come to rest at. Only
// the scroll-axis component of proposed is changed.
func (e *Engine) SnapTarget(proposed, velocity geom.Point) geom.Point {
	if e.host == nil {
		return proposed
	}
	cfg := e.host.LayoutConfig()
	in := SnapInput{
		Proposed: e.axis.Of(proposed),
		Velocity: e.axis.Of(velocity),
		Current:  e.axis.Of(e.host.ContentOffset()),
		Stride:   e.stride,
		Extent:   e.axis.Extent(e.content),
		Policy:   cfg.Deceleration,
	}
	target := Snap(in)

	observability.Layout().OnSnap(observability.SnapEvent{
		Policy:   in.Policy.String(),
		Proposed: in.Proposed,
		Velocity: in.Velocity,
		Target:   target,
	})
	return e.axis.With(proposed, target)
}
