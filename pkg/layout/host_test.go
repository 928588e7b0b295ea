package layout

import "github.com/matzehuels/carousel/pkg/geom"

// fakeHost is a minimal in-memory Host for engine tests.
type fakeHost struct {
	sections int
	items    int
	cfg      Config
	tr       Transformer
	offset   geom.Point
	moves    int
}

func (h *fakeHost) NumberOfSections() int     { return h.sections }
func (h *fakeHost) NumberOfItems() int        { return h.items }
func (h *fakeHost) LayoutConfig() Config      { return h.cfg }
func (h *fakeHost) Transformer() Transformer  { return h.tr }
func (h *fakeHost) ContentOffset() geom.Point { return h.offset }

func (h *fakeHost) SetContentOffset(offset geom.Point) {
	h.offset = offset
	h.moves++
}

// fadeTransformer fades items linearly with their distance from center.
type fadeTransformer struct {
	spacing float64
	calls   int
}

func (t *fadeTransformer) ProposedSpacing() float64 { return t.spacing }

func (t *fadeTransformer) Apply(a *Attributes) {
	t.calls++
	a.Alpha = max(1-abs(a.Position), 0)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// newTestEngine builds an engine over a horizontal strip and runs the first
// layout pass.
func newTestEngine(items int, itemSize geom.Size, spacing float64, viewport geom.Size) (*Engine, *fakeHost) {
	h := &fakeHost{
		sections: 1,
		items:    items,
		cfg:      Config{ItemSize: itemSize, Spacing: spacing},
	}
	e := New(h)
	e.RecomputeIfNeeded(viewport)
	return e, h
}
