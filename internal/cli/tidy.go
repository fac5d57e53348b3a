package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"laygrid/pkg/errors"
	"laygrid/pkg/pipeline"
)

// tidyCommand creates the tidy command.
func (c *CLI) tidyCommand() *cobra.Command {
	var (
		output string
		opts   pipeline.TidyOptions
	)
	cmd := &cobra.Command{
		Use:   "tidy <diagram.json>",
		Short: "Polish an already laid out diagram",
		Long: `Polish an already laid out diagram.

Rows are compacted and aligned, near-identical sizes are equalized, the
content is placed inside the page margins, and edge labels are moved off
any shapes they collide with. The layout itself is not recomputed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateDirection(opts.Direction); err != nil {
				return err
			}

			d, err := readDiagram(args[0])
			if err != nil {
				return err
			}

			p := newProgress(c.Logger)
			res := pipeline.Tidy(d, opts)
			p.done(fmt.Sprintf("Tidied %d shapes", len(d.Shapes)))

			outputPath := output
			if outputPath == "" {
				outputPath = args[0]
			}
			if err := writeDiagram(d, outputPath); err != nil {
				return err
			}

			printSuccess("Tidy complete")
			printDetail("moved %d, aligned %d, equalized %d, ports %d, labels %d",
				res.Moved, res.Aligned, res.Equalized, res.Ports, res.Labels)
			printFile(outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input file)")
	cmd.Flags().Float64Var(&opts.Margin, "margin", 0, "spacing between shapes and page edge")
	cmd.Flags().StringVarP(&opts.Direction, "direction", "d", "TB", "flow direction: TB, BT, LR, RL")
	cmd.Flags().BoolVar(&opts.CenterPage, "center", false, "center content on the page")
	return cmd
}
