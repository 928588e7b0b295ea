// Package transform provides the visual effects applied to carousel items.
//
// Each type in this package implements [layout.Transformer]. A transformer
// reads an item's signed Position (its distance from the viewport center in
// strides) and writes alpha, scale, rotation and translation into the
// attributes. It may also propose its own inter-item spacing, which replaces
// the host's configured spacing.
//
// # Variants
//
//   - [CrossFading]: items stack in place and fade into one another
//   - [ZoomOut]: neighbours shrink and fade toward the center
//   - [Depth]: the outgoing item recedes behind the incoming one
//   - [Overlap], [Linear]: neighbours shrink and overlap (horizontal only)
//   - [CoverFlow]: neighbours rotate away in perspective (horizontal only)
//   - [FerrisWheel]: items ride a wheel below or above the strip (horizontal only)
//   - [Cubic]: items are faces of a rotating cube
//
// Use [ByName] to select a variant from configuration:
//
//	tr, err := transform.ByName("zoom-out", transform.Options{ItemSize: geom.Sz(200, 120)})
//
// The engine never depends on a concrete variant, so new effects can be
// added without touching package layout.
package transform
