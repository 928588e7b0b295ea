package layout

import "github.com/matzehuels/carousel/pkg/geom"

// Config is the configuration surface a host exposes to the engine.
type Config struct {
	// ItemSize is the desired item size. The zero value means "match the
	// viewport".
	ItemSize geom.Size

	// Spacing is the gap between neighbouring items along the scroll axis.
	// It is ignored when a Transformer is attached.
	Spacing float64

	// Axis is the scroll direction.
	Axis geom.Axis

	// Looping centers the viewport in the middle section so the strip can
	// be scrolled in either direction.
	Looping bool

	// CurrentIndex is the logical item the viewport is centered on after
	// each recomputation.
	CurrentIndex int

	// Deceleration controls how far a released drag travels.
	Deceleration Deceleration
}

// Transformer writes visual fields into attributes based on their signed
// position.
type Transformer interface {
	// ProposedSpacing returns the inter-item spacing the transformer wants.
	// It overrides Config.Spacing.
	ProposedSpacing() float64

	// Apply mutates the visual fields of a in place.
	Apply(a *Attributes)
}

// Binder is implemented by transformers whose effect depends on the host's
// scroll axis or configured item size. The engine binds them on every
// recomputation, before asking for ProposedSpacing, so a transformer attached
// to one engine must not be shared with another.
type Binder interface {
	Bind(axis geom.Axis, itemSize geom.Size)
}

// Host supplies configuration and viewport state to an [Engine] and receives
// the re-centered content offset.
type Host interface {
	// NumberOfSections returns the number of virtual sections (≥ 1).
	NumberOfSections() int

	// NumberOfItems returns the number of items per section (≥ 0).
	NumberOfItems() int

	// LayoutConfig returns the current configuration.
	LayoutConfig() Config

	// Transformer returns the attached transformer, or nil.
	Transformer() Transformer

	// ContentOffset returns the viewport's current scroll position.
	ContentOffset() geom.Point

	// SetContentOffset moves the viewport without animation.
	SetContentOffset(offset geom.Point)
}
