package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/carousel/pkg/config"
	"github.com/matzehuels/carousel/pkg/errors"
	"github.com/matzehuels/carousel/pkg/geom"
	"github.com/matzehuels/carousel/pkg/render/sink"
)

const (
	layoutFormatTable = "table"
	layoutFormatJSON  = "json"
)

type layoutOpts struct {
	offset float64
	rect   string
	format string
	hidden bool
}

// layoutCommand creates the layout command for inspecting item attributes.
func (c *CLI) layoutCommand() *cobra.Command {
	var flags configFlags
	opts := layoutOpts{format: layoutFormatTable}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the layout attributes of the items in view",
		Long: `Print the layout attributes of the items in view.

The carousel is built from --config (or the defaults) and flags, centered on
its current item. --offset scrolls it first; --rect queries an arbitrary
rectangle in content coordinates instead of the viewport.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateFormat(opts.format, layoutFormatTable, layoutFormatJSON); err != nil {
				return err
			}
			cfg, err := c.loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), cfg, opts, cmd.Flags().Changed("offset"))
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64Var(&opts.offset, "offset", 0, "scroll offset along the axis")
	cmd.Flags().StringVar(&opts.rect, "rect", "", "query rectangle x,y,w,h in content coordinates")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: table, json")
	cmd.Flags().BoolVar(&opts.hidden, "hidden", false, "include fully transparent items in JSON output")

	return cmd
}

// runLayout builds the pager, queries the attributes and writes them to w.
func (c *CLI) runLayout(ctx context.Context, w io.Writer, cfg *config.File, opts layoutOpts, scroll bool) error {
	logger := loggerFromContext(ctx)

	p, err := cfg.Pager(logger)
	if err != nil {
		return err
	}
	axis := p.Engine().Axis()
	if scroll {
		p.ScrollTo(axis.Point(opts.offset, 0))
	}

	rect := p.VisibleRect()
	if opts.rect != "" {
		if rect, err = parseRect(opts.rect); err != nil {
			return err
		}
	}
	attrs := p.Engine().AttributesIntersecting(rect)
	logger.Debug("queried attributes", "rect", rect, "count", len(attrs))

	if opts.format == layoutFormatJSON {
		jsonOpts := []sink.JSONOption{
			sink.WithJSONOffset(axis.Of(p.ContentOffset())),
			sink.WithJSONSource(c.configPath),
		}
		if opts.hidden {
			jsonOpts = append(jsonOpts, sink.WithJSONHidden())
		}
		data, err := sink.RenderJSON(sink.Frame{Viewport: rect, Items: attrs}, jsonOpts...)
		if err != nil {
			return fmt.Errorf("encode attributes: %w", err)
		}
		_, err = w.Write(data)
		return err
	}

	fmt.Fprintln(w, StyleTitle.Render(layoutTitle(p.CurrentIndex(), cfg.Items, axis.Of(p.ContentOffset()))))
	if len(attrs) == 0 {
		fmt.Fprintln(w, StyleDim.Render("no items in view"))
		return nil
	}
	fmt.Fprintln(w, attributesTable(attrs))
	return nil
}

func layoutTitle(current, items int, offset float64) string {
	if items == 0 {
		return "empty carousel"
	}
	return fmt.Sprintf("item %d of %d at offset %s", current+1, items, formatFloat(offset))
}

// parseRect parses "x,y,w,h".
func parseRect(s string) (geom.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geom.Rect{}, errors.New(errors.ErrCodeInvalidInput, "invalid rect %q (want x,y,w,h)", s)
	}
	var v [4]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return geom.Rect{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid rect %q", s)
		}
		v[i] = f
	}
	if err := errors.ValidateSize("rect", v[2], v[3]); err != nil {
		return geom.Rect{}, err
	}
	return geom.NewRectFromOrigin(geom.Pt(v[0], v[1]), geom.Sz(v[2], v[3])), nil
}

// snapOpts holds the snap command's flags.
type snapOpts struct {
	offset   float64
	proposed float64
	velocity float64
}

// snapCommand creates the snap command for computing snap targets.
func (c *CLI) snapCommand() *cobra.Command {
	var flags configFlags
	var opts snapOpts

	cmd := &cobra.Command{
		Use:   "snap",
		Short: "Compute where a released drag comes to rest",
		Long: `Compute where a released drag comes to rest.

The drag is released at --offset with --velocity (points per millisecond
along the scroll axis). --proposed is where the scroll would naturally stop;
it defaults to the offset. The target follows the configured deceleration
policy and is clamped to the content.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("proposed") {
				opts.proposed = opts.offset
			}
			res, err := computeSnap(cmd.Context(), cfg, opts)
			if err != nil {
				return err
			}
			printKeyValue("policy", cfg.Deceleration)
			printKeyValue("target", formatFloat(res.target))
			if cfg.Items > 0 {
				printKeyValue("item", strconv.Itoa(res.item))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64Var(&opts.offset, "offset", 0, "offset at release")
	cmd.Flags().Float64Var(&opts.proposed, "proposed", 0, "proposed resting offset (default: --offset)")
	cmd.Flags().Float64Var(&opts.velocity, "velocity", 0, "release velocity in points per millisecond")

	return cmd
}

type snapResult struct {
	target float64
	item   int
}

func computeSnap(ctx context.Context, cfg *config.File, opts snapOpts) (snapResult, error) {
	for _, v := range []struct {
		name string
		val  float64
	}{{"offset", opts.offset}, {"proposed", opts.proposed}, {"velocity", opts.velocity}} {
		if err := errors.ValidateFinite(v.name, v.val); err != nil {
			return snapResult{}, err
		}
	}

	p, err := cfg.Pager(loggerFromContext(ctx))
	if err != nil {
		return snapResult{}, err
	}
	e := p.Engine()
	axis := e.Axis()
	p.ScrollTo(axis.Point(opts.offset, 0))

	target := e.SnapTarget(axis.Point(opts.proposed, 0), axis.Point(opts.velocity, 0))
	p.Settle(target)
	return snapResult{target: axis.Of(target), item: p.CurrentIndex()}, nil
}
