package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/carousel/pkg/cache"
	"github.com/matzehuels/carousel/pkg/config"
	"github.com/matzehuels/carousel/pkg/errors"
	"github.com/matzehuels/carousel/pkg/render/sink"
)

const (
	formatSVG  = "svg"
	formatJSON = "json"
	formatPNG  = "png"
	formatPDF  = "pdf"

	// frameTTL is how long rendered frames stay in the cache.
	frameTTL = 7 * 24 * time.Hour

	defaultPNGScale = 2.0
)

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{formatSVG: true, formatJSON: true, formatPNG: true, formatPDF: true}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string    // output file or base path
	formats    []string  // svg, json, png, pdf
	offsets    []float64 // scroll offsets to render
	indices    []int     // items to center and render
	noCache    bool      // bypass the frame cache
	labels     bool      // draw item indices on cards
	outline    bool      // outline the viewport and its center line
	background string    // SVG background color
	scale      float64   // PNG scale factor
	hidden     bool      // keep transparent items in JSON
}

// frameJob is one frame to render.
type frameJob struct {
	offset float64
	format string
	path   string
}

// frameResult reports a rendered frame.
type frameResult struct {
	job     frameJob
	visible int
	cached  bool
}

// renderCommand creates the render command for writing frames to files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      configFlags
		formatsStr string
	)
	opts := renderOpts{scale: defaultPNGScale}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render carousel frames to SVG, PNG, PDF or JSON",
		Long: `Render carousel frames to SVG, PNG, PDF or JSON.

One file is written per offset and format. Without --offset or --index the
carousel is rendered at rest on its current item. Frames are rendered
concurrently and cached locally; PNG and PDF require rsvg-convert.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			cfg, err := c.loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cfg, opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single frame) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, png, pdf (comma-separated)")
	cmd.Flags().Float64SliceVar(&opts.offsets, "offset", nil, "scroll offset(s) to render")
	cmd.Flags().IntSliceVar(&opts.indices, "index", nil, "render with these items centered")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.labels, "labels", true, "draw item indices")
	cmd.Flags().BoolVar(&opts.outline, "outline", false, "outline the viewport")
	cmd.Flags().StringVar(&opts.background, "background", "", "background color (SVG, PNG, PDF)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.hidden, "hidden", false, "include fully transparent items (JSON)")

	return cmd
}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return errors.ValidateFormat(f, formatSVG, formatJSON, formatPNG, formatPDF)
		}
	}
	return nil
}

// runRender renders every offset/format combination concurrently.
func (c *CLI) runRender(ctx context.Context, cfg *config.File, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	base, err := outputBase(opts.output, c.configPath)
	if err != nil {
		return err
	}
	offsets, err := resolveOffsets(cfg, opts)
	if err != nil {
		return err
	}

	single := len(offsets) == 1 && len(opts.formats) == 1 && opts.output != ""
	var jobs []frameJob
	for _, offset := range offsets {
		for _, format := range opts.formats {
			jobs = append(jobs, frameJob{
				offset: offset,
				format: format,
				path:   framePath(base, offset, format, len(offsets) > 1),
			})
		}
	}
	if single {
		jobs[0].path = opts.output
	}

	fc, err := newCache(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer fc.Close()

	cfgHash, err := configHash(cfg, opts)
	if err != nil {
		return err
	}
	r := &frameRenderer{
		cfg:     cfg,
		opts:    opts,
		cache:   fc,
		keyer:   frameKeyer(),
		cfgHash: cfgHash,
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d frame(s)...", len(jobs)))
	spinner.Start()

	results := make([]frameResult, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, job := range jobs {
		g.Go(func() error {
			res, err := r.render(gctx, job)
			if err != nil {
				return fmt.Errorf("%s at offset %s: %w", job.format, cache.OffsetLabel(job.offset), err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Rendered %d frame(s)", len(results))
	empty := 0
	for _, res := range results {
		printFile(res.job.path)
		printFrameStats(res.job.offset, res.visible, res.job.format, res.cached)
		if res.visible == 0 {
			empty++
		}
	}
	if empty > 0 {
		printWarning("%d frame(s) have no items in view", empty)
	}
	prog.done("Render complete")

	printNewline()
	printNextStep("Scroll through it interactively", previewHint(c.configPath))
	return nil
}

// resolveOffsets returns the distinct scroll offsets to render: explicit
// offsets first, then the resting offset of each requested item. With
// neither, the configured current item is rendered.
func resolveOffsets(cfg *config.File, opts renderOpts) ([]float64, error) {
	offsets := make([]float64, 0, len(opts.offsets)+len(opts.indices))
	for _, o := range opts.offsets {
		if err := errors.ValidateFinite("offset", o); err != nil {
			return nil, err
		}
		offsets = append(offsets, o)
	}

	p, err := cfg.Pager(nil)
	if err != nil {
		return nil, err
	}
	axis := p.Engine().Axis()
	for _, idx := range opts.indices {
		if err := errors.ValidateIndex(idx, cfg.Items); err != nil {
			return nil, err
		}
		offsets = append(offsets, axis.Of(p.ScrollToItem(idx)))
	}

	if len(offsets) == 0 {
		return []float64{axis.Of(p.ContentOffset())}, nil
	}

	seen := make(map[float64]bool, len(offsets))
	unique := offsets[:0]
	for _, o := range offsets {
		if !seen[o] {
			seen[o] = true
			unique = append(unique, o)
		}
	}
	return unique, nil
}

// framePath builds the output path of one frame.
func framePath(base string, offset float64, format string, multi bool) string {
	if multi {
		return fmt.Sprintf("%s_%s.%s", base, cache.OffsetLabel(offset), format)
	}
	return base + "." + format
}

// renderFingerprint captures the options that change rendered bytes.
func renderFingerprint(opts renderOpts) string {
	return fmt.Sprintf("labels=%t outline=%t background=%s scale=%g hidden=%t",
		opts.labels, opts.outline, opts.background, opts.scale, opts.hidden)
}

// configHash identifies the rendered output of cfg under opts.
func configHash(cfg *config.File, opts renderOpts) (string, error) {
	data, err := cfg.Bytes()
	if err != nil {
		return "", err
	}
	return cache.Hash(append(data, renderFingerprint(opts)...)), nil
}

// frameRenderer renders frames of one configuration. Each call builds its
// own pager, so render is safe for concurrent use.
type frameRenderer struct {
	cfg     *config.File
	opts    renderOpts
	cache   cache.Cache
	keyer   cache.Keyer
	cfgHash string
}

func (r *frameRenderer) render(ctx context.Context, job frameJob) (frameResult, error) {
	if err := ctx.Err(); err != nil {
		return frameResult{}, err
	}
	logger := loggerFromContext(ctx)

	p, err := r.cfg.Pager(logger)
	if err != nil {
		return frameResult{}, err
	}
	p.ScrollTo(p.Engine().Axis().Point(job.offset, 0))
	frame := sink.Frame{Viewport: p.VisibleRect(), Items: p.VisibleAttributes()}
	res := frameResult{job: job, visible: len(frame.PaintOrder())}

	key := r.keyer.FrameKey(r.cfgHash, cache.FrameKeyOpts{
		Offset: job.offset,
		Format: job.format,
		Width:  r.cfg.Viewport.Width,
		Height: r.cfg.Viewport.Height,
	})
	data, hit, err := r.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
	}
	if hit {
		res.cached = true
	} else {
		if data, err = r.encode(frame, job); err != nil {
			return frameResult{}, err
		}
		if err := r.cache.Set(ctx, key, data, frameTTL); err != nil {
			logger.Warn("cache write failed", "err", err)
		}
	}

	if err := writeFile(job.path, data); err != nil {
		return frameResult{}, err
	}
	logger.Debug("wrote frame", "path", job.path, "bytes", len(data), "cached", res.cached)
	return res, nil
}

func (r *frameRenderer) encode(frame sink.Frame, job frameJob) ([]byte, error) {
	switch job.format {
	case formatJSON:
		jsonOpts := []sink.JSONOption{sink.WithJSONOffset(job.offset)}
		if r.opts.hidden {
			jsonOpts = append(jsonOpts, sink.WithJSONHidden())
		}
		return sink.RenderJSON(frame, jsonOpts...)
	case formatPNG:
		return sink.RenderPNG(frame, r.opts.scale, r.svgOptions()...)
	case formatPDF:
		return sink.RenderPDF(frame, r.svgOptions()...)
	case formatSVG:
		return sink.RenderSVG(frame, r.svgOptions()...), nil
	default:
		return nil, errors.ValidateFormat(job.format, formatSVG, formatJSON, formatPNG, formatPDF)
	}
}

func (r *frameRenderer) svgOptions() []sink.SVGOption {
	var opts []sink.SVGOption
	if r.opts.labels {
		opts = append(opts, sink.WithLabels())
	}
	if r.opts.outline {
		opts = append(opts, sink.WithViewportOutline())
	}
	if r.opts.background != "" {
		opts = append(opts, sink.WithBackground(r.opts.background))
	}
	return opts
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}

// previewHint returns the preview command for the current config.
func previewHint(configPath string) string {
	if configPath == "" {
		return appName + " preview"
	}
	return appName + " preview -c " + configPath
}
