package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/carousel/pkg/observability"
)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Explore a carousel interactively in the terminal",
		Long: `Explore a carousel interactively in the terminal.

Arrow keys flick the carousel by one release; it springs to the snap target
chosen by the deceleration policy. Shift+arrow drags without releasing, space
snaps from the current position, digits jump to an item, t cycles the
transformer, o toggles looping and r rotates the viewport.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			m, err := NewPreviewModel(cfg)
			if err != nil {
				return err
			}

			// Log output would tear the alternate screen.
			observability.Reset()

			prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := prog.Run(); err != nil {
				return fmt.Errorf("preview: %w", err)
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
