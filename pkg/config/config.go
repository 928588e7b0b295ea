// Package config loads carousel configuration files.
//
// A configuration describes one carousel: its viewport, item size, item
// count, scroll axis, looping and deceleration behavior, and the visual
// transformer. Files may be written in TOML or YAML:
//
//	# carousel.toml
//	items = 8
//	spacing = 12
//	axis = "horizontal"
//	looping = true
//	deceleration = "fixed:1"
//	transformer = "cover-flow"
//
//	[viewport]
//	width = 480
//	height = 240
//
//	[item_size]
//	width = 200
//	height = 160
//
// Keys missing from a file keep their [Default] values. Every loaded file is
// validated; errors carry codes from package errors.
package config

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/carousel/pkg/errors"
	"github.com/matzehuels/carousel/pkg/geom"
	"github.com/matzehuels/carousel/pkg/layout"
	"github.com/matzehuels/carousel/pkg/pager"
	"github.com/matzehuels/carousel/pkg/transform"
)

// Supported file formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Defaults applied by [Default].
const (
	DefaultViewportWidth  = 320
	DefaultViewportHeight = 200
	DefaultItems          = 5
)

// Dimensions is a width and height pair.
type Dimensions struct {
	Width  float64 `toml:"width" yaml:"width" json:"width"`
	Height float64 `toml:"height" yaml:"height" json:"height"`
}

// Size converts d to a geom.Size.
func (d Dimensions) Size() geom.Size { return geom.Sz(d.Width, d.Height) }

// File is the on-disk carousel configuration.
type File struct {
	// Viewport is the visible area in points.
	Viewport Dimensions `toml:"viewport" yaml:"viewport" json:"viewport"`

	// ItemSize is the size of every item. Zero matches the viewport.
	ItemSize Dimensions `toml:"item_size" yaml:"item_size" json:"item_size"`

	Items        int     `toml:"items" yaml:"items" json:"items"`
	Spacing      float64 `toml:"spacing" yaml:"spacing" json:"spacing"`
	Axis         string  `toml:"axis" yaml:"axis" json:"axis"`
	Looping      bool    `toml:"looping" yaml:"looping" json:"looping"`
	CurrentIndex int     `toml:"current_index" yaml:"current_index" json:"current_index"`

	// Deceleration is "automatic" or "fixed:N".
	Deceleration string `toml:"deceleration" yaml:"deceleration" json:"deceleration"`

	// Transformer names a visual effect; empty means none.
	Transformer  string  `toml:"transformer" yaml:"transformer" json:"transformer,omitempty"`
	// MinimumScale and MinimumAlpha are left unset to use the transformer's
	// defaults. An explicit zero is kept.
	MinimumScale *float64 `toml:"minimum_scale,omitempty" yaml:"minimum_scale,omitempty" json:"minimum_scale,omitempty"`
	MinimumAlpha *float64 `toml:"minimum_alpha,omitempty" yaml:"minimum_alpha,omitempty" json:"minimum_alpha,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *File {
	return &File{
		Viewport:     Dimensions{Width: DefaultViewportWidth, Height: DefaultViewportHeight},
		Items:        DefaultItems,
		Axis:         geom.Horizontal.String(),
		Deceleration: layout.Automatic().String(),
	}
}

// FormatFromPath returns the format implied by path's extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "unsupported config file %q (use .toml, .yaml or .yml)", path)
	}
}

// Load reads, decodes and validates the file at path.
func Load(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes data on top of [Default] and validates the result.
func Parse(data []byte, format string) (*File, error) {
	f := Default()
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to parse TOML config")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to parse YAML config")
		}
	default:
		return nil, errors.ValidateFormat(format, FormatTOML, FormatYAML)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Encode writes f to w in the given format.
func (f *File) Encode(w io.Writer, format string) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(f)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.ValidateFormat(format, FormatTOML, FormatYAML)
	}
}

// Bytes returns f encoded as TOML. The encoding is stable, so it can be
// hashed to key caches. An encoding error is returned rather than partial
// bytes, which would collide with other configurations.
func (f *File) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Encode(&buf, FormatTOML); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to encode config")
	}
	return buf.Bytes(), nil
}

// Validate checks every field and returns the first problem found.
func (f *File) Validate() error {
	if err := errors.ValidateViewport(f.Viewport.Width, f.Viewport.Height); err != nil {
		return err
	}
	if err := errors.ValidateSize("item size", f.ItemSize.Width, f.ItemSize.Height); err != nil {
		return err
	}
	if err := errors.ValidateFinite("spacing", f.Spacing); err != nil {
		return err
	}
	if f.Items < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "items cannot be negative: %d", f.Items)
	}
	if err := errors.ValidateIndex(f.CurrentIndex, f.Items); err != nil {
		return err
	}
	if _, err := geom.ParseAxis(f.Axis); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidAxis, err, "invalid axis %q", f.Axis)
	}
	if _, err := layout.ParseDeceleration(f.Deceleration); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDeceleration, err, "invalid deceleration %q", f.Deceleration)
	}
	if err := validateUnit("minimum_scale", f.MinimumScale); err != nil {
		return err
	}
	if err := validateUnit("minimum_alpha", f.MinimumAlpha); err != nil {
		return err
	}
	if _, err := transform.ByName(f.Transformer, transform.Options{}); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidTransformer, err, "invalid transformer %q", f.Transformer)
	}
	return nil
}

// validateUnit checks that v, when set, lies in [0, 1].
func validateUnit(name string, v *float64) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || *v < 0 || *v > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s must be within [0, 1], got %v", name, *v)
	}
	return nil
}

// Options converts f into pager options. The transformer is built for f's
// item size and axis. f must be valid.
func (f *File) Options(logger *log.Logger) (pager.Options, error) {
	axis, err := geom.ParseAxis(f.Axis)
	if err != nil {
		return pager.Options{}, errors.Wrap(errors.ErrCodeInvalidAxis, err, "invalid axis %q", f.Axis)
	}
	decel, err := layout.ParseDeceleration(f.Deceleration)
	if err != nil {
		return pager.Options{}, errors.Wrap(errors.ErrCodeInvalidDeceleration, err, "invalid deceleration %q", f.Deceleration)
	}
	tr, err := transform.ByName(f.Transformer, transform.Options{
		ItemSize:     f.ItemSize.Size(),
		Axis:         axis,
		Spacing:      f.Spacing,
		MinimumScale: f.MinimumScale,
		MinimumAlpha: f.MinimumAlpha,
	})
	if err != nil {
		return pager.Options{}, errors.Wrap(errors.ErrCodeInvalidTransformer, err, "invalid transformer %q", f.Transformer)
	}
	return pager.Options{
		ItemSize:     f.ItemSize.Size(),
		Spacing:      f.Spacing,
		Axis:         axis,
		Looping:      f.Looping,
		Deceleration: decel,
		Transformer:  tr,
		Logger:       logger,
	}, nil
}

// Pager builds a laid-out pager for f, centered on f's current index.
func (f *File) Pager(logger *log.Logger) (*pager.Pager, error) {
	opts, err := f.Options(logger)
	if err != nil {
		return nil, err
	}
	p := pager.New(pager.Items(f.Items), opts)
	p.SetViewportSize(f.Viewport.Size())
	p.Layout()
	if f.CurrentIndex != 0 {
		p.ScrollToItem(f.CurrentIndex)
	}
	return p, nil
}
