package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/carousel/pkg/buildinfo"
	"github.com/matzehuels/carousel/pkg/cache"
	"github.com/matzehuels/carousel/pkg/config"
	"github.com/matzehuels/carousel/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "carousel"

	// frameKeyType labels frame entries in cache hooks.
	frameKeyType = "frame"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is set by the persistent --config flag.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Carousel lays out looping paginated carousels",
		Long: `Carousel computes the layout of a horizontally or vertically scrolling,
optionally looping carousel: item frames, snap targets and visual transforms.

Layouts can be inspected as tables, rendered to SVG, PNG, PDF or JSON, or
explored interactively in the terminal.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			installHooks(c.Logger)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "carousel config file (.toml, .yaml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.snapCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the --config file, or the defaults when none is given,
// and applies flag overrides.
func (c *CLI) loadConfig(cmd *cobra.Command, flags *configFlags) (*config.File, error) {
	cfg := config.Default()
	if c.configPath != "" {
		loaded, err := config.Load(c.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		c.Logger.Debug("loaded config", "path", c.configPath)
	}
	if flags != nil {
		flags.apply(cmd, cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configFlags override individual config file values.
type configFlags struct {
	width, height         float64
	itemWidth, itemHeight float64
	items                 int
	spacing               float64
	axis                  string
	looping               bool
	current               int
	deceleration          string
	transformer           string
}

func (f *configFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.width, "width", config.DefaultViewportWidth, "viewport width")
	fs.Float64Var(&f.height, "height", config.DefaultViewportHeight, "viewport height")
	fs.Float64Var(&f.itemWidth, "item-width", 0, "item width (0 matches the viewport)")
	fs.Float64Var(&f.itemHeight, "item-height", 0, "item height (0 matches the viewport)")
	fs.IntVarP(&f.items, "items", "n", config.DefaultItems, "number of items")
	fs.Float64Var(&f.spacing, "spacing", 0, "spacing between items")
	fs.StringVar(&f.axis, "axis", "horizontal", "scroll axis: horizontal, vertical")
	fs.BoolVar(&f.looping, "loop", false, "loop past the last item")
	fs.IntVar(&f.current, "current", 0, "item centered initially")
	fs.StringVar(&f.deceleration, "deceleration", "automatic", "snap policy: automatic, fixed:N")
	fs.StringVarP(&f.transformer, "transformer", "t", "", "visual transformer (see 'carousel config --transformers')")
	completeConfigFlags(cmd)
}

// apply copies every flag the user set onto cfg.
func (f *configFlags) apply(cmd *cobra.Command, cfg *config.File) {
	fs := cmd.Flags()
	if fs.Changed("width") {
		cfg.Viewport.Width = f.width
	}
	if fs.Changed("height") {
		cfg.Viewport.Height = f.height
	}
	if fs.Changed("item-width") {
		cfg.ItemSize.Width = f.itemWidth
	}
	if fs.Changed("item-height") {
		cfg.ItemSize.Height = f.itemHeight
	}
	if fs.Changed("items") {
		cfg.Items = f.items
	}
	if fs.Changed("spacing") {
		cfg.Spacing = f.spacing
	}
	if fs.Changed("axis") {
		cfg.Axis = f.axis
	}
	if fs.Changed("loop") {
		cfg.Looping = f.looping
	}
	if fs.Changed("current") {
		cfg.CurrentIndex = f.current
	}
	if fs.Changed("deceleration") {
		cfg.Deceleration = f.deceleration
	}
	if fs.Changed("transformer") {
		cfg.Transformer = f.transformer
	}
}

// =============================================================================
// Cache
// =============================================================================

// newCache returns the frame cache, or a no-op cache when caching is
// disabled or no cache directory is available.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return cache.NewObserved(fc, frameKeyType), nil
}

// frameKeyer scopes frame keys by build version.
func frameKeyer() cache.Keyer {
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":")
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/carousel/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// outputBase derives the base output path. An explicit output loses a known
// format extension; otherwise the config file name is used, falling back to
// the app name.
func outputBase(output, configPath string) (string, error) {
	if output != "" {
		if err := errors.ValidatePath(output); err != nil {
			return "", err
		}
		ext := filepath.Ext(output)
		if validFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext), nil
		}
		return output, nil
	}
	if configPath != "" {
		return strings.TrimSuffix(filepath.Base(configPath), filepath.Ext(configPath)), nil
	}
	return appName, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
