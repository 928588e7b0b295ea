// Package sink renders one carousel frame to an output format.
//
// # Overview
//
// A [Frame] is a snapshot of what a host would draw: the viewport rectangle
// in content coordinates and the attributes of every item intersecting it.
// This package turns a frame into:
//
//   - SVG: items drawn as cards with their transformer output applied
//   - JSON: the raw attributes for external tools
//   - PDF, PNG: converted from SVG with rsvg-convert
//
// Basic usage:
//
//	frame := sink.Frame{Viewport: p.VisibleRect(), Items: p.VisibleAttributes()}
//	svg := sink.RenderSVG(frame, sink.WithLabels(), sink.WithViewportOutline())
//
// # Drawing Order
//
// Items are painted in ascending ZIndex, ties broken by virtual index, so
// an item with a higher ZIndex covers its neighbours. Items with zero alpha
// are skipped.
//
// # Projection
//
// SVG has no 3D transforms. Rotation about the cross axis (cover flow and
// cubic transformers) is projected as a foreshortening of the item along the
// scroll axis, and Depth as a uniform perspective scale with the eye
// [Perspective] points away.
//
// # SVG Options
//
//   - [WithPalette]: Card fill colors, cycled by item index
//   - [WithLabels]: Print the item index on each card
//   - [WithLabeler]: Custom card labels
//   - [WithBackground]: Background fill
//   - [WithViewportOutline]: Outline the viewport and mark its center
//
// # JSON Output
//
// [RenderJSON] writes a pretty-printed document with the viewport and one
// record per item, including hidden items when [WithJSONHidden] is given.
package sink
