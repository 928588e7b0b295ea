package sink

import (
	"encoding/json"

	"github.com/matzehuels/carousel/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	hidden bool
	source string
	offset *float64
}

// WithJSONHidden includes items whose alpha is zero.
func WithJSONHidden() JSONOption { return func(r *jsonRenderer) { r.hidden = true } }

// WithJSONSource records the configuration the frame was rendered from.
func WithJSONSource(path string) JSONOption { return func(r *jsonRenderer) { r.source = path } }

// WithJSONOffset records the scroll-axis offset of the frame.
func WithJSONOffset(offset float64) JSONOption {
	return func(r *jsonRenderer) { r.offset = &offset }
}

type jsonOutput struct {
	Source   string     `json:"source,omitempty"`
	Offset   *float64   `json:"offset,omitempty"`
	Viewport jsonRect   `json:"viewport"`
	Items    []jsonItem `json:"items"`
}

type jsonRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jsonItem struct {
	Section      int      `json:"section"`
	Item         int      `json:"item"`
	Frame        jsonRect `json:"frame"`
	Position     float64  `json:"position"`
	ZIndex       int      `json:"z_index"`
	Alpha        float64  `json:"alpha"`
	Scale        float64  `json:"scale"`
	Rotation     float64  `json:"rotation,omitempty"`
	RotationY    float64  `json:"rotation_y,omitempty"`
	TranslationX float64  `json:"translation_x,omitempty"`
	TranslationY float64  `json:"translation_y,omitempty"`
	Depth        float64  `json:"depth,omitempty"`
}

// RenderJSON exports the frame as a pretty-printed JSON document. Items keep
// their query order (ascending virtual index); frames are in content
// coordinates.
func RenderJSON(f Frame, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	v := f.Viewport
	out := jsonOutput{
		Source:   r.source,
		Offset:   r.offset,
		Viewport: jsonRect{X: v.X0, Y: v.Y0, Width: v.Width(), Height: v.Height()},
		Items:    make([]jsonItem, 0, len(f.Items)),
	}
	for _, a := range f.Items {
		if a.Hidden() && !r.hidden {
			continue
		}
		out.Items = append(out.Items, buildJSONItem(a))
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildJSONItem(a layout.Attributes) jsonItem {
	fr := a.Frame()
	return jsonItem{
		Section:      a.Section,
		Item:         a.Item,
		Frame:        jsonRect{X: fr.X0, Y: fr.Y0, Width: fr.Width(), Height: fr.Height()},
		Position:     a.Position,
		ZIndex:       a.ZIndex,
		Alpha:        a.Alpha,
		Scale:        a.Scale,
		Rotation:     a.Rotation,
		RotationY:    a.RotationY,
		TranslationX: a.Translation.X,
		TranslationY: a.Translation.Y,
		Depth:        a.Depth,
	}
}
