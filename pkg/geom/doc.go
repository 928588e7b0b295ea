// Package geom provides the small set of 2D value types shared by the
// carousel packages: [Point], [Size], [Rect] and the scroll [Axis].
//
// All types are plain values with no behavior beyond arithmetic. Rectangles
// are stored by their extents (X0, Y0, X1, Y1) in a y-down coordinate space;
// constructors normalize them so width and height are non-negative.
//
// # Axis-relative access
//
// Most carousel math is written once and applied to whichever axis the strip
// scrolls along. [Axis] selects a component out of points, sizes and
// rectangles, and builds new values from (along, across) pairs:
//
//	along := geom.Horizontal.Of(pt)          // pt.X
//	extent := geom.Vertical.Extent(size)     // size.Height
//	pt = geom.Vertical.Point(along, across)  // Point{X: across, Y: along}
package geom
