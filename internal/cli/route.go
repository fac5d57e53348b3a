package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"laygrid/pkg/layout"
	"laygrid/pkg/route"
)

// routeCommand creates the route command.
func (c *CLI) routeCommand() *cobra.Command {
	var (
		output string
		margin float64
	)
	cmd := &cobra.Command{
		Use:   "route <diagram.json>",
		Short: "Route connectors around shapes",
		Long: `Route connectors around shapes.

Every connector is re-routed orthogonally: straight where the corridor is
clear, and around intervening shapes otherwise. Existing waypoints are
replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := readDiagram(args[0])
			if err != nil {
				return err
			}
			if margin <= 0 {
				margin = layout.DefaultConfig().EdgeMargin
			}

			p := newProgress(c.Logger)
			routed := route.Edges(d, margin)
			p.done(fmt.Sprintf("Routed %d connectors", routed))

			outputPath := output
			if outputPath == "" {
				outputPath = args[0]
			}
			if err := writeDiagram(d, outputPath); err != nil {
				return err
			}

			printSuccess("Routed %d of %d connectors", routed, len(d.Connectors))
			printFile(outputPath)
			printNewline()
			printNextStep("Clean up", "laygrid optimize "+outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input file)")
	cmd.Flags().Float64Var(&margin, "margin", 0, "clearance around shapes")
	return cmd
}
