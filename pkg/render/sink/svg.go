package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/carousel/pkg/geom"
	"github.com/matzehuels/carousel/pkg/layout"
)

// Perspective is the eye distance used to project Depth, matching a 3D
// transform with m34 = −1/500.
const Perspective = 500

const cardRadius = 8

var defaultPalette = []string{"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f", "#edc948", "#b07aa1"}

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette    []string
	labeler    func(section, item int) string
	background string
	outline    bool
}

func WithPalette(colors ...string) SVGOption { return func(r *svgRenderer) { r.palette = colors } }
func WithBackground(c string) SVGOption      { return func(r *svgRenderer) { r.background = c } }
func WithViewportOutline() SVGOption         { return func(r *svgRenderer) { r.outline = true } }
func WithLabels() SVGOption {
	return WithLabeler(func(_, item int) string { return strconv.Itoa(item) })
}
func WithLabeler(fn func(section, item int) string) SVGOption {
	return func(r *svgRenderer) { r.labeler = fn }
}

// RenderSVG draws f as a standalone SVG document the size of its viewport.
func RenderSVG(f Frame, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	w, h := f.Viewport.Width(), f.Viewport.Height()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="%s"/>`+"\n", w, h, r.background)
	}

	for _, a := range f.PaintOrder() {
		r.renderItem(&buf, f, a)
	}

	if r.outline {
		renderOutline(&buf, w, h)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{palette: defaultPalette}
	for _, opt := range opts {
		opt(&r)
	}
	if len(r.palette) == 0 {
		r.palette = defaultPalette
	}
	return r
}

func (r *svgRenderer) renderItem(buf *bytes.Buffer, f Frame, a layout.Attributes) {
	c := f.local(a.Center.Add(a.Translation))
	sx, sy := projectedScale(a)
	w, h := a.Size.Width, a.Size.Height
	fill := r.palette[mod(a.Item, len(r.palette))]

	fmt.Fprintf(buf, `  <g id="item-%d-%d" transform="translate(%.2f %.2f) rotate(%.2f) scale(%.4f %.4f)" opacity="%.3f">`+"\n",
		a.Section, a.Item, c.X, c.Y, a.Rotation*180/math.Pi, sx, sy, clamp01(a.Alpha))
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%d" fill="%s" stroke="#333" stroke-width="1.5"/>`+"\n",
		-w/2, -h/2, w, h, cardRadius, fill)
	if r.labeler != nil {
		fmt.Fprintf(buf, `    <text text-anchor="middle" dominant-baseline="central" font-family="sans-serif" font-size="%.1f" fill="#fff">%s</text>`+"\n",
			max(min(w, h)*0.3, 6), escape(r.labeler(a.Section, a.Item)))
	}
	buf.WriteString("  </g>\n")
}

// projectedScale folds Scale, RotationY and Depth into 2D scale factors.
func projectedScale(a layout.Attributes) (sx, sy float64) {
	s := a.Scale
	if a.Depth != 0 {
		s *= Perspective / (Perspective - a.Depth)
	}
	foreshorten := math.Abs(math.Cos(a.RotationY))
	if a.Axis == geom.Vertical {
		return s, s * foreshorten
	}
	return s * foreshorten, s
}

func renderOutline(buf *bytes.Buffer, w, h float64) {
	fmt.Fprintf(buf, `  <rect width="%.1f" height="%.1f" fill="none" stroke="#999" stroke-dasharray="4 4"/>`+"\n", w, h)
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="0" x2="%.1f" y2="%.1f" stroke="#999" stroke-dasharray="2 4"/>`+"\n", w/2, w/2, h)
}

func clamp01(v float64) float64 { return max(min(v, 1), 0) }

func mod(a, n int) int { return ((a % n) + n) % n }

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
