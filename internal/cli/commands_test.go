package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/carousel/pkg/cache"
	"github.com/matzehuels/carousel/pkg/config"
	"github.com/matzehuels/carousel/pkg/errors"
	"github.com/matzehuels/carousel/pkg/observability"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(observability.Reset)

	var out bytes.Buffer
	root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfigCommandOverrides(t *testing.T) {
	path := writeConfig(t, "strip.toml", "items = 8\nspacing = 10\n")

	out, err := execute(t, "config", "-c", path, "--loop", "-t", "cover-flow", "--width", "480")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	got, err := config.Parse([]byte(out), config.FormatTOML)
	if err != nil {
		t.Fatalf("parse printed config: %v\n%s", err, out)
	}

	want := config.Default()
	want.Items = 8
	want.Spacing = 10
	want.Looping = true
	want.Transformer = "cover-flow"
	want.Viewport.Width = 480
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("effective config mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigCommandYAML(t *testing.T) {
	out, err := execute(t, "config", "-f", "yaml", "--axis", "vertical")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, "axis: vertical") {
		t.Errorf("YAML output missing axis:\n%s", out)
	}
}

func TestConfigCommandTransformers(t *testing.T) {
	out, err := execute(t, "config", "--transformers")
	if err != nil {
		t.Fatalf("config --transformers: %v", err)
	}
	for _, name := range []string{"cover-flow", "cubic", "linear"} {
		if !strings.Contains(out, name+"\n") {
			t.Errorf("transformer list missing %q:\n%s", name, out)
		}
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad axis", []string{"layout", "--axis", "diagonal"}, errors.ErrCodeInvalidAxis},
		{"bad transformer", []string{"layout", "-t", "spin"}, errors.ErrCodeInvalidTransformer},
		{"bad deceleration", []string{"snap", "--deceleration", "sometimes"}, errors.ErrCodeInvalidDeceleration},
		{"bad current", []string{"layout", "--current", "9"}, errors.ErrCodeInvalidIndex},
		{"bad layout format", []string{"layout", "-f", "xml"}, errors.ErrCodeInvalidFormat},
		{"bad render format", []string{"render", "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"bad config extension", []string{"layout", "-c", "carousel.ini"}, errors.ErrCodeUnsupported},
		{"missing config", []string{"layout", "-c", "/nonexistent/carousel.toml"}, errors.ErrCodeFileNotFound},
		{"bad rect", []string{"layout", "--rect", "1,2,3"}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil {
				t.Fatalf("%v: expected error", tt.args)
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("%v: code = %s, want %s (%v)", tt.args, got, tt.code, err)
			}
		})
	}
}

func TestLayoutCommandTable(t *testing.T) {
	out, err := execute(t, "layout", "--offset", "160")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	for _, want := range []string{"of 5 at offset 160", "Position", "(160, 100)", "(480, 100)"} {
		if !strings.Contains(out, want) {
			t.Errorf("layout table missing %q:\n%s", want, out)
		}
	}
}

func TestLayoutCommandJSON(t *testing.T) {
	out, err := execute(t, "layout", "--offset", "160", "-f", "json")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}

	var doc struct {
		Offset float64 `json:"offset"`
		Items  []struct {
			Item     int     `json:"item"`
			Position float64 `json:"position"`
		} `json:"items"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if doc.Offset != 160 {
		t.Errorf("offset = %v, want 160", doc.Offset)
	}
	if len(doc.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(doc.Items))
	}
	if doc.Items[0].Position != -0.5 || doc.Items[1].Position != 0.5 {
		t.Errorf("positions = %v, %v, want -0.5, 0.5", doc.Items[0].Position, doc.Items[1].Position)
	}
}

func TestLayoutCommandRect(t *testing.T) {
	out, err := execute(t, "layout", "--rect", "0,0,1600,200", "-f", "json")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if n := strings.Count(out, `"section"`); n != 5 {
		t.Errorf("rect covering the strip returned %d items, want 5", n)
	}
}

func TestComputeSnap(t *testing.T) {
	tests := []struct {
		name         string
		deceleration string
		opts         snapOpts
		want         snapResult
	}{
		{"rest rounds down", "automatic", snapOpts{proposed: 100}, snapResult{target: 0, item: 0}},
		{"flick advances", "automatic", snapOpts{proposed: 100, velocity: 0.5}, snapResult{target: 320, item: 1}},
		{"clamped at end", "automatic", snapOpts{proposed: 5000}, snapResult{target: 1280, item: 4}},
		{"fixed one page", "fixed:1", snapOpts{offset: 340, proposed: 900, velocity: 0.5}, snapResult{target: 640, item: 2}},
		{"fixed two pages", "fixed:2", snapOpts{offset: 340, proposed: 900, velocity: 0.5}, snapResult{target: 960, item: 3}},
		{"fixed backwards", "fixed:1", snapOpts{offset: 340, proposed: 0, velocity: -0.5}, snapResult{target: 320, item: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Deceleration = tt.deceleration
			got, err := computeSnap(context.Background(), cfg, tt.opts)
			if err != nil {
				t.Fatalf("computeSnap() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("computeSnap() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRenderCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	base := filepath.Join(dir, "frames", "strip")

	_, err := execute(t, "render", "-o", base, "-f", "svg,json", "--offset", "0", "--offset", "160", "--index", "1")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, name := range []string{
		"strip_0.svg", "strip_0.json",
		"strip_160.svg", "strip_160.json",
		"strip_320.svg", "strip_320.json",
	} {
		data, err := os.ReadFile(filepath.Join(dir, "frames", name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if strings.HasSuffix(name, ".svg") && !bytes.HasPrefix(data, []byte("<svg")) {
			t.Errorf("%s is not an SVG document", name)
		}
	}
}

func TestRenderCommandSingleOutput(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "frame.svg")

	if _, err := execute(t, "render", "-o", path, "--no-cache", "-t", "cover-flow", "-n", "8", "--loop"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if !bytes.Contains(data, []byte("<g ")) {
		t.Errorf("rendered frame has no items:\n%s", data)
	}
}

func TestFrameRendererCache(t *testing.T) {
	t.Cleanup(observability.Reset)
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	opts := renderOpts{formats: []string{formatSVG}, labels: true}
	cfgHash, err := configHash(cfg, opts)
	if err != nil {
		t.Fatalf("configHash() error: %v", err)
	}
	r := &frameRenderer{
		cfg:     cfg,
		opts:    opts,
		cache:   fc,
		keyer:   frameKeyer(),
		cfgHash: cfgHash,
	}
	job := frameJob{offset: 160, format: formatSVG, path: filepath.Join(t.TempDir(), "f.svg")}

	first, err := r.render(context.Background(), job)
	if err != nil {
		t.Fatalf("render() error: %v", err)
	}
	if first.cached {
		t.Error("first render should miss the cache")
	}
	if first.visible != 2 {
		t.Errorf("visible = %d, want 2", first.visible)
	}

	second, err := r.render(context.Background(), job)
	if err != nil {
		t.Fatalf("render() error: %v", err)
	}
	if !second.cached {
		t.Error("second render should hit the cache")
	}
}

func TestResolveOffsets(t *testing.T) {
	tests := []struct {
		name    string
		looping bool
		opts    renderOpts
		want    []float64
	}{
		{"default is current item", false, renderOpts{}, []float64{0}},
		{"explicit offsets", false, renderOpts{offsets: []float64{10, 20}}, []float64{10, 20}},
		{"indices", false, renderOpts{indices: []int{0, 2}}, []float64{0, 640}},
		{"duplicates removed", false, renderOpts{offsets: []float64{320}, indices: []int{1}}, []float64{320}},
		{"looping starts in the middle copy", true, renderOpts{}, []float64{5241600}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Looping = tt.looping
			got, err := resolveOffsets(cfg, tt.opts)
			if err != nil {
				t.Fatalf("resolveOffsets() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("resolveOffsets() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		output, config string
		want           string
	}{
		{"", "", "carousel"},
		{"", "configs/cover.toml", "cover"},
		{"out/frame.svg", "", "out/frame"},
		{"out/frame", "cover.yaml", "out/frame"},
		{"out/frame.v2", "", "out/frame.v2"},
	}
	for _, tt := range tests {
		got, err := outputBase(tt.output, tt.config)
		if err != nil {
			t.Errorf("outputBase(%q, %q) error: %v", tt.output, tt.config, err)
			continue
		}
		if got != tt.want {
			t.Errorf("outputBase(%q, %q) = %q, want %q", tt.output, tt.config, got, tt.want)
		}
	}

	if _, err := outputBase("out/", ""); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("outputBase(dir) error = %v, want INVALID_PATH", err)
	}

	if got := framePath("out/strip", 160.5, "png", true); got != "out/strip_160.5.png" {
		t.Errorf("framePath(multi) = %q", got)
	}
	if got := framePath("out/strip", 160.5, "png", false); got != "out/strip.png" {
		t.Errorf("framePath(single) = %q", got)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"SVG, json,,png", []string{"svg", "json", "png"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, parseFormats(tt.in)); diff != "" {
			t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestPreviewHint(t *testing.T) {
	if got := previewHint(""); got != "carousel preview" {
		t.Errorf("previewHint(\"\") = %q", got)
	}
	if got := previewHint("strip.toml"); got != "carousel preview -c strip.toml" {
		t.Errorf("previewHint(strip.toml) = %q", got)
	}
}

func TestConfigHash(t *testing.T) {
	base := renderOpts{labels: true, scale: defaultPNGScale}
	hash := func(cfg *config.File, opts renderOpts) string {
		t.Helper()
		h, err := configHash(cfg, opts)
		if err != nil {
			t.Fatalf("configHash() error: %v", err)
		}
		return h
	}

	want := hash(config.Default(), base)
	if got := hash(config.Default(), base); got != want {
		t.Errorf("configHash() not stable: %q vs %q", got, want)
	}

	looping := config.Default()
	looping.Looping = true
	outlined := base
	outlined.outline = true
	for name, got := range map[string]string{
		"config change": hash(looping, base),
		"option change": hash(config.Default(), outlined),
	} {
		if got == want {
			t.Errorf("%s should change the hash", name)
		}
	}
}
