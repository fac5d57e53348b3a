package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"laygrid/pkg/route"
)

// optimizeCommand creates the optimize command.
func (c *CLI) optimizeCommand() *cobra.Command {
	var (
		output  string
		margin  float64
		spacing float64
	)
	cmd := &cobra.Command{
		Use:   "optimize <diagram.json>",
		Short: "Simplify and straighten connector paths",
		Long: `Simplify and straighten connector paths.

Collinear waypoints are removed, nearly straight segments are snapped onto
one axis, pointless detours are shortened, paths are centered in the gaps
between shapes, and overlapping parallel runs are nudged apart.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := readDiagram(args[0])
			if err != nil {
				return err
			}

			p := newProgress(c.Logger)
			modified := route.Optimize(d, route.OptimizeOptions{
				Margin:       margin,
				NudgeSpacing: spacing,
			})
			p.done(fmt.Sprintf("Optimized %d connectors", modified))

			outputPath := output
			if outputPath == "" {
				outputPath = args[0]
			}
			if err := writeDiagram(d, outputPath); err != nil {
				return err
			}

			if modified == 0 {
				printInfo("All connector paths already clean")
			} else {
				printSuccess("Optimized %d connector paths", modified)
			}
			printFile(outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input file)")
	cmd.Flags().Float64Var(&margin, "margin", 0, "clearance around shapes")
	cmd.Flags().Float64Var(&spacing, "spacing", 0, "gap between parallel connector runs")
	return cmd
}
