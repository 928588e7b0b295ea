// Package pkg provides the libraries behind the carousel command.
//
// # Overview
//
// A carousel is a row (or column) of equally sized items scrolled one page at
// a time. When looping is enabled the items are repeated in many sections so
// the user can scroll in either direction without reaching an edge. The pkg
// directory is organized by concern:
//
//  1. [geom] - Points, sizes, rectangles and the scroll axis
//  2. [layout] - The layout engine: content extent, item frames, snapping
//  3. [transform] - Per-item visual effects (cover flow, ferris wheel, ...)
//  4. [pager] - A headless scroll view hosting the engine
//  5. [render/sink] - SVG, PNG, PDF and JSON output of a laid-out frame
//
// Supporting packages are [config] (TOML and YAML files), [cache] (rendered
// frame cache), [observability] (layout and cache hooks), [errors] (coded
// errors and input validation) and [buildinfo].
//
// # Architecture
//
// The typical data flow:
//
//	config file (TOML/YAML)
//	         ↓
//	    [config] package (validate, build options)
//	         ↓
//	    [pager] package (viewport, content offset, current index)
//	         ↓
//	    [layout] package (frames, snap targets) + [transform] effects
//	         ↓
//	    [render/sink] package (SVG/PDF/PNG/JSON)
//
// # Quick Start
//
// Lay out five items, flick to the next one and render the result:
//
//	import (
//	    "github.com/matzehuels/carousel/pkg/config"
//	    "github.com/matzehuels/carousel/pkg/render/sink"
//	)
//
//	cfg := config.Default()
//	p, _ := cfg.Pager(nil)
//
//	// Release a drag moving right at 0.5 points per millisecond.
//	p.Release(0.5)
//
//	frame := sink.Frame{Viewport: p.VisibleRect(), Items: p.VisibleAttributes()}
//	svg := sink.RenderSVG(frame, sink.WithLabels())
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/layout/...   # Specific package
//	go test -run Example       # Examples only
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/carousel/pkg/geom
// [layout]: https://pkg.go.dev/github.com/matzehuels/carousel/pkg/layout
// [transform]: https://pkg.go.dev/github.com/matzehuels/carousel/pkg/transform
// [pager]: https://pkg.go.dev/github.com/matzehuels/carousel/pkg/pager
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/carousel/pkg/render/sink
// [config]: https://pkg.go.dev/github.com/matzehuels/carousel/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/carousel/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/carousel/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/carousel/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/carousel/pkg/buildinfo
package pkg
