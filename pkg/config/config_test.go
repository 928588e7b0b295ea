package config

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/carousel/pkg/errors"
	"github.com/matzehuels/carousel/pkg/geom"
	"github.com/matzehuels/carousel/pkg/layout"
	"github.com/matzehuels/carousel/pkg/transform"
)

const sampleTOML = `
items = 8
spacing = 12
axis = "vertical"
looping = true
current_index = 3
deceleration = "fixed:2"
transformer = "cover-flow"

[viewport]
width = 480
height = 240

[item_size]
width = 200
height = 160
`

const sampleYAML = `
items: 8
spacing: 12
axis: vertical
looping: true
current_index: 3
deceleration: fixed:2
transformer: cover-flow
viewport:
  width: 480
  height: 240
item_size:
  width: 200
  height: 160
`

func sampleFile() *File {
	return &File{
		Viewport:     Dimensions{Width: 480, Height: 240},
		ItemSize:     Dimensions{Width: 200, Height: 160},
		Items:        8,
		Spacing:      12,
		Axis:         "vertical",
		Looping:      true,
		CurrentIndex: 3,
		Deceleration: "fixed:2",
		Transformer:  "cover-flow",
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format string
	}{
		{"toml", sampleTOML, FormatTOML},
		{"yaml", sampleYAML, FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if diff := cmp.Diff(sampleFile(), got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseKeepsDefaults(t *testing.T) {
	got, err := Parse([]byte("spacing = 4\n"), FormatTOML)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := Default()
	want.Spacing = 4
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format string
		code   errors.Code
	}{
		{"bad toml", "items = [", FormatTOML, errors.ErrCodeInvalidConfig},
		{"bad yaml", "items: [", FormatYAML, errors.ErrCodeInvalidConfig},
		{"unknown format", "", "ini", errors.ErrCodeInvalidFormat},
		{"negative items", "items = -1", FormatTOML, errors.ErrCodeInvalidConfig},
		{"empty viewport", "[viewport]\nwidth = 0\nheight = 0", FormatTOML, errors.ErrCodeInvalidSize},
		{"half item size", "[item_size]\nwidth = 100", FormatTOML, errors.ErrCodeInvalidSize},
		{"current out of range", "current_index = 5", FormatTOML, errors.ErrCodeInvalidIndex},
		{"bad axis", `axis = "diagonal"`, FormatTOML, errors.ErrCodeInvalidAxis},
		{"bad deceleration", `deceleration = "fixed:-1"`, FormatTOML, errors.ErrCodeInvalidDeceleration},
		{"bad transformer", `transformer = "spiral"`, FormatTOML, errors.ErrCodeInvalidTransformer},
		{"scale above one", "minimum_scale = 1.5", FormatTOML, errors.ErrCodeInvalidConfig},
		{"negative alpha", "minimum_alpha: -0.1", FormatYAML, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Parse() code = %v, want %v (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "carousel.yml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(sampleFile(), got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want %v", err, errors.ErrCodeFileNotFound)
	}

	_, err = Load(filepath.Join(dir, "carousel.json"))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Load(json) error = %v, want %v", err, errors.ErrCodeUnsupported)
	}
}

func TestEncode(t *testing.T) {
	for _, format := range []string{FormatTOML, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := sampleFile().Encode(&buf, format); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			got, err := Parse(buf.Bytes(), format)
			if err != nil {
				t.Fatalf("Parse(Encode()) error = %v\n%s", err, buf.String())
			}
			if diff := cmp.Diff(sampleFile(), got); diff != "" {
				t.Errorf("Encode() did not survive decoding (-want +got):\n%s", diff)
			}
		})
	}

	if err := sampleFile().Encode(&bytes.Buffer{}, "xml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Encode(xml) error = %v, want %v", err, errors.ErrCodeInvalidFormat)
	}
}

func TestBytesStable(t *testing.T) {
	bytesOf := func(f *File) []byte {
		t.Helper()
		data, err := f.Bytes()
		if err != nil {
			t.Fatalf("Bytes() error = %v", err)
		}
		if len(data) == 0 {
			t.Fatal("Bytes() returned no data")
		}
		return data
	}

	a, b := bytesOf(sampleFile()), bytesOf(sampleFile())
	if !bytes.Equal(a, b) {
		t.Error("Bytes() should be deterministic")
	}
	other := sampleFile()
	other.Spacing = 13
	if bytes.Equal(a, bytesOf(other)) {
		t.Error("Bytes() should change with the configuration")
	}
}

// failingWriter rejects every write.
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, stderrors.New("disk full") }

func TestEncodeWriteError(t *testing.T) {
	if err := sampleFile().Encode(failingWriter{}, FormatTOML); err == nil {
		t.Error("Encode() to a failing writer should return an error")
	}
}

func TestOptions(t *testing.T) {
	opts, err := sampleFile().Options(nil)
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	if opts.Axis != geom.Vertical {
		t.Errorf("Axis = %v, want vertical", opts.Axis)
	}
	if opts.Deceleration != layout.Fixed(2) {
		t.Errorf("Deceleration = %v, want fixed(2)", opts.Deceleration)
	}
	if opts.ItemSize != geom.Sz(200, 160) || opts.Spacing != 12 || !opts.Looping {
		t.Errorf("Options() = %+v", opts)
	}
	if _, ok := opts.Transformer.(*transform.CoverFlow); !ok {
		t.Errorf("Transformer = %T, want *transform.CoverFlow", opts.Transformer)
	}

	f := Default()
	opts, err = f.Options(nil)
	if err != nil {
		t.Fatalf("Default().Options() error = %v", err)
	}
	if opts.Transformer != nil {
		t.Errorf("Default().Options().Transformer = %T, want nil", opts.Transformer)
	}
	if !opts.Deceleration.IsAutomatic() {
		t.Errorf("Default().Options().Deceleration = %v, want automatic", opts.Deceleration)
	}
}

func TestExplicitZeroMinimums(t *testing.T) {
	const base = "transformer = \"overlap\"\n[item_size]\nwidth = 200\nheight = 100\n"
	tests := []struct {
		name    string
		data    string
		set     bool
		spacing float64
	}{
		{"unset uses defaults", base, false, 200 * -transform.DefaultMinimumScale * 0.6},
		{"zero kept", "minimum_scale = 0\nminimum_alpha = 0\n" + base, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.data), FormatTOML)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if set := f.MinimumScale != nil && f.MinimumAlpha != nil; set != tt.set {
				t.Fatalf("minimums set = %v, want %v", set, tt.set)
			}
			if tt.set && (*f.MinimumScale != 0 || *f.MinimumAlpha != 0) {
				t.Errorf("minimums = %v, %v, want 0, 0", *f.MinimumScale, *f.MinimumAlpha)
			}
			opts, err := f.Options(nil)
			if err != nil {
				t.Fatalf("Options() error = %v", err)
			}
			if got := opts.Transformer.ProposedSpacing(); got != tt.spacing {
				t.Errorf("ProposedSpacing() = %v, want %v", got, tt.spacing)
			}

			var buf bytes.Buffer
			if err := f.Encode(&buf, FormatYAML); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			back, err := Parse(buf.Bytes(), FormatYAML)
			if err != nil {
				t.Fatalf("Parse(Encode()) error = %v", err)
			}
			if diff := cmp.Diff(f, back); diff != "" {
				t.Errorf("minimums did not survive encoding (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPager(t *testing.T) {
	f := Default()
	f.ItemSize = Dimensions{Width: 200, Height: 100}
	f.Spacing = 10
	f.CurrentIndex = 2

	p, err := f.Pager(nil)
	if err != nil {
		t.Fatalf("Pager() error = %v", err)
	}
	if got := p.CurrentIndex(); got != 2 {
		t.Errorf("CurrentIndex() = %d, want 2", got)
	}
	if got := p.ContentOffset().X; got != 420 {
		t.Errorf("ContentOffset().X = %v, want 420", got)
	}
	if got := p.ViewportSize(); got != geom.Sz(320, 200) {
		t.Errorf("ViewportSize() = %v, want 320×200", got)
	}
}
