package cli

import (
	"github.com/spf13/cobra"

	"laygrid/pkg/layout"
)

// overlapsCommand creates the overlaps command.
func (c *CLI) overlapsCommand() *cobra.Command {
	var (
		output  string
		resolve bool
		margin  float64
	)
	cmd := &cobra.Command{
		Use:   "overlaps <diagram.json>",
		Short: "Detect or resolve overlapping shapes",
		Long: `Detect or resolve overlapping shapes.

Without --resolve, the overlapping pairs are listed. With --resolve, shapes
are pushed apart iteratively until no pair overlaps, then snapped back to
the grid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := readDiagram(args[0])
			if err != nil {
				return err
			}

			overlaps := layout.FindOverlaps(d, margin)
			if len(overlaps) == 0 {
				printSuccess("No overlapping shapes")
				return nil
			}

			if !resolve {
				printWarning("%d overlapping pairs", len(overlaps))
				for _, pair := range overlaps {
					a, b := d.Shape(pair[0]), d.Shape(pair[1])
					if a != nil && b != nil {
						printDetail("%s ↔ %s", a.Label, b.Label)
					}
				}
				printNewline()
				printNextStep("Fix", "laygrid overlaps --resolve "+args[0])
				return nil
			}

			cfg := layout.DefaultConfig()
			moved := layout.ResolveOverlaps(d, margin, cfg.MaxOverlapIterations)

			outputPath := output
			if outputPath == "" {
				outputPath = args[0]
			}
			if err := writeDiagram(d, outputPath); err != nil {
				return err
			}

			printSuccess("Resolved %d overlaps with %d pushes", len(overlaps), moved)
			printFile(outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input file)")
	cmd.Flags().BoolVar(&resolve, "resolve", false, "push overlapping shapes apart")
	cmd.Flags().Float64Var(&margin, "margin", 0, "required gap between shapes")
	return cmd
}
