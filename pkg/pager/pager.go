package pager

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/carousel/pkg/geom"
	"github.com/matzehuels/carousel/pkg/layout"
)

// MaxVirtualItems bounds the number of virtual items a looping pager
// reports.
const MaxVirtualItems = math.MaxInt16

// decelerationRate is the per-millisecond velocity decay used to project a
// release velocity (points per millisecond) into a resting offset.
const decelerationRate = 0.998

// DataSource answers how many logical items the carousel shows.
type DataSource interface {
	NumberOfItems() int
}

// Items is a DataSource with a fixed count.
type Items int

// NumberOfItems implements DataSource.
func (n Items) NumberOfItems() int { return int(n) }

// Options configures a Pager.
type Options struct {
	// ItemSize is the desired item size. Zero matches the viewport.
	ItemSize geom.Size

	// Spacing separates neighbouring items. A Transformer overrides it.
	Spacing float64

	Axis         geom.Axis
	Looping      bool
	Deceleration layout.Deceleration
	Transformer  layout.Transformer

	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// Pager hosts a layout engine over a data source.
type Pager struct {
	opts     Options
	source   DataSource
	viewport geom.Size
	offset   geom.Point
	current  int
	engine   *layout.Engine
	logger   *log.Logger
}

// New returns a pager over source. The viewport is empty until
// [Pager.SetViewportSize] is called.
func New(source DataSource, opts Options) *Pager {
	p := &Pager{source: source}
	p.setOptions(opts)
	p.engine = layout.New(p)
	return p
}

func (p *Pager) setOptions(opts Options) {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	p.opts = opts
	p.logger = opts.Logger
}

// ===== layout.Host =====

// NumberOfSections reports how many copies of the data source are laid out.
func (p *Pager) NumberOfSections() int {
	n := p.NumberOfItems()
	if !p.opts.Looping || n == 0 {
		return 1
	}
	return max(MaxVirtualItems/n, 1)
}

// NumberOfItems reports the data source's item count, never negative.
func (p *Pager) NumberOfItems() int {
	if p.source == nil {
		return 0
	}
	return max(p.source.NumberOfItems(), 0)
}

// LayoutConfig returns the engine configuration for the pager's options.
func (p *Pager) LayoutConfig() layout.Config {
	return layout.Config{
		ItemSize:     p.opts.ItemSize,
		Spacing:      p.opts.Spacing,
		Axis:         p.opts.Axis,
		Looping:      p.opts.Looping,
		CurrentIndex: p.current,
		Deceleration: p.opts.Deceleration,
	}
}

// Transformer implements layout.Host.
func (p *Pager) Transformer() layout.Transformer { return p.opts.Transformer }

// ContentOffset implements layout.Host.
func (p *Pager) ContentOffset() geom.Point { return p.offset }

// SetContentOffset implements layout.Host. The offset is stored unclamped.
func (p *Pager) SetContentOffset(pt geom.Point) {
	p.offset = pt
}

// ===== Configuration =====

// Engine returns the underlying layout engine.
func (p *Pager) Engine() *layout.Engine { return p.engine }

// Options returns the current options.
func (p *Pager) Options() Options { return p.opts }

// SetOptions replaces the options and invalidates the layout. The new layout
// takes effect on the next call to [Pager.Layout].
func (p *Pager) SetOptions(opts Options) {
	p.current = p.CurrentIndex()
	p.setOptions(opts)
	p.engine.ForceInvalidate()
}

// SetTransformer swaps the transformer and invalidates the layout.
func (p *Pager) SetTransformer(tr layout.Transformer) {
	opts := p.opts
	opts.Transformer = tr
	p.SetOptions(opts)
}

// SetAxis changes the scroll direction and invalidates the layout.
func (p *Pager) SetAxis(axis geom.Axis) {
	opts := p.opts
	opts.Axis = axis
	p.SetOptions(opts)
}

// SetLooping toggles looping and invalidates the layout.
func (p *Pager) SetLooping(looping bool) {
	opts := p.opts
	opts.Looping = looping
	p.SetOptions(opts)
}

// SetItemSize changes the item size and invalidates the layout.
func (p *Pager) SetItemSize(sz geom.Size) {
	opts := p.opts
	opts.ItemSize = sz
	p.SetOptions(opts)
}

// ViewportSize returns the viewport size.
func (p *Pager) ViewportSize() geom.Size { return p.viewport }

// SetViewportSize records a new viewport size. The engine notices the change
// on the next call to [Pager.Layout].
func (p *Pager) SetViewportSize(sz geom.Size) {
	p.viewport = sz
}

// Layout recomputes the engine's derived state if anything changed and
// reports whether it did.
func (p *Pager) Layout() bool {
	if !p.engine.RecomputeIfNeeded(p.viewport) {
		return false
	}
	p.logger.Debug("layout recomputed",
		"sections", p.engine.NumberOfSections(),
		"items", p.engine.NumberOfItems(),
		"stride", p.engine.Stride(),
		"extent", p.engine.Axis().Extent(p.engine.ContentExtent()))
	return true
}

// ReloadData re-reads the data source, keeps the current index in range and
// lays out again.
func (p *Pager) ReloadData() {
	n := p.NumberOfItems()
	switch {
	case n == 0:
		p.current = 0
	case p.current >= n:
		p.current = n - 1
	case p.current < 0:
		p.current = 0
	}
	p.engine.ForceInvalidate()
	p.Layout()
}

// Rotate swaps the viewport's width and height, lays out again and forwards
// the orientation change to the engine. The current item stays centered.
func (p *Pager) Rotate() {
	p.current = p.CurrentIndex()
	p.viewport = p.viewport.Transpose()
	p.engine.ForceInvalidate()
	p.Layout()
	p.engine.HandleOrientationChange()
	p.logger.Debug("orientation changed", "viewport", p.viewport, "current", p.current)
}

// ===== Scrolling =====

// VisibleRect returns the viewport rectangle in content coordinates.
func (p *Pager) VisibleRect() geom.Rect {
	return geom.NewRectFromOrigin(p.offset, p.viewport)
}

// VisibleAttributes returns the attributes of every item intersecting the
// viewport.
func (p *Pager) VisibleAttributes() []layout.Attributes {
	return p.engine.AttributesIntersecting(p.VisibleRect())
}

// maxOffset returns the largest scroll offset along the axis.
func (p *Pager) maxOffset() float64 {
	axis := p.engine.Axis()
	return max(axis.Extent(p.engine.ContentExtent())-axis.Extent(p.viewport), 0)
}

// ScrollTo moves the viewport to offset, clamped to the content. The
// current index is not updated until the scroll settles.
func (p *Pager) ScrollTo(offset geom.Point) {
	axis := p.engine.Axis()
	along := min(max(axis.Of(offset), 0), p.maxOffset())
	p.offset = axis.With(offset, along)
}

// ScrollBy moves the viewport by delta along the scroll axis.
func (p *Pager) ScrollBy(delta float64) {
	axis := p.engine.Axis()
	p.ScrollTo(axis.With(p.offset, axis.Of(p.offset)+delta))
}

// SnapTarget returns where a drag released at the current offset with the
// given scroll-axis velocity, in points per millisecond, comes to rest.
func (p *Pager) SnapTarget(velocity float64) geom.Point {
	axis := p.engine.Axis()
	projected := axis.Of(p.offset) + velocity*decelerationRate/(1-decelerationRate)
	proposed := axis.With(p.offset, projected)
	return p.engine.SnapTarget(proposed, axis.Point(velocity, 0))
}

// Settle moves the viewport to offset, clamped to the content, and updates
// the current index.
func (p *Pager) Settle(offset geom.Point) {
	p.ScrollTo(offset)
	p.current = p.CurrentIndex()
	p.logger.Debug("settled", "offset", p.offset, "current", p.current)
}

// Release ends a drag with the given velocity, settles on the snap target
// and returns the resting offset.
func (p *Pager) Release(velocity float64) geom.Point {
	p.Settle(p.SnapTarget(velocity))
	return p.offset
}

// CurrentIndex returns the logical item nearest the viewport center.
func (p *Pager) CurrentIndex() int {
	n := p.engine.NumberOfItems()
	stride := p.engine.Stride()
	if n == 0 || stride <= 0 {
		return p.current
	}
	_, item := p.engine.SplitIndex(p.virtualIndex())
	return item
}

// virtualIndex returns the virtual index nearest the viewport center.
func (p *Pager) virtualIndex() int {
	return int(math.Round(p.engine.Axis().Of(p.offset) / p.engine.Stride()))
}

// ScrollToItem centers the logical item index, clamped to the data source.
// When looping, the copy nearest the current offset is chosen. It returns
// the new offset.
func (p *Pager) ScrollToItem(index int) geom.Point {
	n := p.engine.NumberOfItems()
	if n == 0 || p.engine.Stride() <= 0 {
		return p.offset
	}
	index = min(max(index, 0), n-1)

	section := 0
	if p.opts.Looping {
		from := p.virtualIndex()
		here, _ := p.engine.SplitIndex(from)
		best := math.MaxInt
		for _, s := range []int{here - 1, here, here + 1} {
			if s < 0 || s >= p.engine.NumberOfSections() {
				continue
			}
			d := p.engine.VirtualIndex(s, index) - from
			if d < 0 {
				d = -d
			}
			if d < best {
				best, section = d, s
			}
		}
	}

	p.Settle(p.engine.ContentOffsetFor(section, index))
	return p.offset
}
