package transform

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/carousel/pkg/geom"
	"github.com/matzehuels/carousel/pkg/layout"
)

const (
	// DefaultMinimumScale is the smallest scale applied to off-center items.
	DefaultMinimumScale = 0.65

	// DefaultMinimumAlpha is the lowest opacity applied to off-center items.
	DefaultMinimumAlpha = 0.6
)

// Options configures a transformer.
type Options struct {
	// ItemSize is the host's configured item size. Variants that propose
	// their own spacing derive it from this size.
	ItemSize geom.Size

	// Axis is the scroll direction. Some variants only act horizontally.
	Axis geom.Axis

	// Spacing is proposed by variants without a spacing of their own.
	Spacing float64

	// MinimumScale and MinimumAlpha bound the effect. Nil selects
	// [DefaultMinimumScale] and [DefaultMinimumAlpha]; an explicit zero is
	// honoured.
	MinimumScale *float64
	MinimumAlpha *float64
}

// minimums resolves the effect bounds.
func (o Options) minimums() (scale, alpha float64) {
	scale, alpha = DefaultMinimumScale, DefaultMinimumAlpha
	if o.MinimumScale != nil {
		scale = *o.MinimumScale
	}
	if o.MinimumAlpha != nil {
		alpha = *o.MinimumAlpha
	}
	return scale, alpha
}

// base carries the options shared by every variant.
type base struct {
	opts     Options
	minScale float64
	minAlpha float64
}

func newBase(opts Options) base {
	b := base{opts: opts}
	b.minScale, b.minAlpha = opts.minimums()
	return b
}

// Bind implements layout.Binder. The engine calls it with the host's current
// axis and item size, replacing the values given at construction.
func (b *base) Bind(axis geom.Axis, itemSize geom.Size) {
	b.opts.Axis = axis
	b.opts.ItemSize = itemSize
}

// ProposedSpacing returns the configured spacing.
func (b base) ProposedSpacing() float64 {
	return b.opts.Spacing
}

// horizontal reports whether the host scrolls horizontally.
func (b base) horizontal() bool {
	return b.opts.Axis == geom.Horizontal
}

// stride returns the item extent plus spacing along the scroll axis.
func stride(a *layout.Attributes, spacing float64) float64 {
	return a.Axis.Extent(a.Size) + spacing
}

var constructors = map[string]func(Options) layout.Transformer{
	"cross-fading":          func(o Options) layout.Transformer { return NewCrossFading(o) },
	"zoom-out":              func(o Options) layout.Transformer { return NewZoomOut(o) },
	"depth":                 func(o Options) layout.Transformer { return NewDepth(o) },
	"overlap":               func(o Options) layout.Transformer { return NewOverlap(o) },
	"linear":                func(o Options) layout.Transformer { return NewLinear(o) },
	"cover-flow":            func(o Options) layout.Transformer { return NewCoverFlow(o) },
	"ferris-wheel":          func(o Options) layout.Transformer { return NewFerrisWheel(o, false) },
	"inverted-ferris-wheel": func(o Options) layout.Transformer { return NewFerrisWheel(o, true) },
	"cubic":                 func(o Options) layout.Transformer { return NewCubic(o) },
}

// Names returns the names accepted by [ByName], sorted.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ByName returns the transformer registered under name. An empty name or
// "none" returns a nil transformer and no error.
func ByName(name string, opts Options) (layout.Transformer, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "_", "-")
	if key == "" || key == "none" {
		return nil, nil
	}
	ctor, ok := constructors[key]
	if !ok {
		return nil, fmt.Errorf("unknown transformer %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return ctor(opts), nil
}
