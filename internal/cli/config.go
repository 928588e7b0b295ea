package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/carousel/pkg/config"
	"github.com/matzehuels/carousel/pkg/errors"
	"github.com/matzehuels/carousel/pkg/transform"
)

// configCommand creates the config command, which prints the effective
// configuration after flag overrides.
func (c *CLI) configCommand() *cobra.Command {
	var (
		flags        configFlags
		format       string
		transformers bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the effective configuration.

The output combines --config (or the defaults) with any override flags and can
be saved as a starting point for a config file:

  carousel config --items 8 --loop -t cover-flow > carousel.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if transformers {
				for _, name := range transform.Names() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}
			if err := errors.ValidateFormat(format, config.FormatTOML, config.FormatYAML); err != nil {
				return err
			}
			cfg, err := c.loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			return cfg.Encode(cmd.OutOrStdout(), format)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", config.FormatTOML, "output format: toml, yaml")
	cmd.Flags().BoolVar(&transformers, "transformers", false, "list the available transformers")

	return cmd
}
