// Package pager is a reference host for the carousel layout engine.
//
// A [Pager] owns everything the engine treats as external: the viewport
// size, the scroll offset, the data source and the configuration. It
// implements [layout.Host] and forwards viewport changes, reloads,
// orientation changes and drag releases to its [layout.Engine].
//
// # Looping
//
// When looping is enabled the pager reports many copies ("sections") of the
// data source so the strip can be scrolled in either direction for a long
// time. The section count is [MaxVirtualItems] divided by the item count, and
// the engine starts in the middle section:
//
//	p := pager.New(pager.Items(5), pager.Options{
//		ItemSize: geom.Sz(200, 120),
//		Spacing:  10,
//		Looping:  true,
//	})
//	p.SetViewportSize(geom.Sz(320, 200))
//	p.Layout()
//	p.CurrentIndex() // 0, in section 3276
//
// # Dragging
//
// Raw input handling is left to the caller. A drag moves the offset with
// [Pager.ScrollBy]; lifting the finger calls [Pager.Release] with the
// release velocity, which asks the engine for a snap target and settles
// there. Callers that animate toward the target use [Pager.SnapTarget] and
// [Pager.Settle] instead.
//
// A Pager is not safe for concurrent use.
package pager
