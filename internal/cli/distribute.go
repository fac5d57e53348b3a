package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"laygrid/pkg/errors"
	"laygrid/pkg/geom"
	"laygrid/pkg/layout"
)

// distributeCommand creates the distribute command.
func (c *CLI) distributeCommand() *cobra.Command {
	var (
		output string
		axis   string
	)
	cmd := &cobra.Command{
		Use:   "distribute <diagram.json>",
		Short: "Spread shapes with equal gaps along one axis",
		Long: `Spread shapes with equal gaps along one axis.

Top-level shapes keep their order and the span between the first and last
shape; only the gaps between them are equalized. Nested children move with
their container.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if axis != "x" && axis != "y" {
				return errors.New(errors.ErrCodeInvalidInput, "axis must be x or y, got %q", axis)
			}

			d, err := readDiagram(args[0])
			if err != nil {
				return err
			}

			var shapes []int
			for i, s := range d.Shapes {
				if s.Parent == "" {
					shapes = append(shapes, i)
				}
			}
			if len(shapes) < 3 {
				printInfo("Nothing to distribute (%d top-level shapes)", len(shapes))
				return nil
			}

			pos := func(i int) float64 {
				if axis == "x" {
					return d.Shapes[i].X
				}
				return d.Shapes[i].Y
			}
			sort.Slice(shapes, func(a, b int) bool { return pos(shapes[a]) < pos(shapes[b]) })

			positions := make([]float64, len(shapes))
			sizes := make([]float64, len(shapes))
			for n, i := range shapes {
				positions[n] = pos(i)
				if axis == "x" {
					sizes[n] = d.Shapes[i].Width
				} else {
					sizes[n] = d.Shapes[i].Height
				}
			}

			start := positions[0]
			end := positions[len(positions)-1] + sizes[len(sizes)-1]
			moved := layout.DistributeEvenly(positions, sizes, start, end)

			grid := d.Grid()
			for n, i := range shapes {
				v := geom.SnapToGrid(moved[n], grid)
				if axis == "x" {
					d.Shapes[i].X = v
				} else {
					d.Shapes[i].Y = v
				}
			}

			outputPath := output
			if outputPath == "" {
				outputPath = args[0]
			}
			if err := writeDiagram(d, outputPath); err != nil {
				return err
			}

			printSuccess("Distributed %d shapes along %s", len(shapes), axis)
			printFile(outputPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input file)")
	cmd.Flags().StringVar(&axis, "axis", "x", "axis to distribute along: x or y")
	return cmd
}
