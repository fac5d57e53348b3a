package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"laygrid/pkg/diagram"
	"laygrid/pkg/layout"
	"laygrid/pkg/pipeline"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		edgesFile  string
		output     string
		configPath string
		noCache    bool
		noRoute    bool
		optimize   bool
	)
	opts := pipeline.Options{RouteEdges: true}

	cmd := &cobra.Command{
		Use:   "layout [diagram.json]",
		Short: "Compute a layered layout for a diagram",
		Long: `Compute a layered layout for a diagram.

With a diagram.json argument, the existing diagram is re-laid out in place:
shapes are assigned to ranks along the flow direction, overlaps are removed,
and connectors are routed around the shapes.

With --edges, a new diagram is built from an edge list file and laid out from
scratch. The edge list is a JSON array of {"source", "target", "label"}
objects (or an object with an "edges" key).

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			if edgesFile == "" && input == "" {
				picked, err := pickDiagramFile()
				if err != nil {
					return err
				}
				input = picked
			}

			opts.RouteEdges = !noRoute
			opts.Optimize = optimize

			if edgesFile != "" {
				return c.runLayoutFromEdges(edgesFile, input, output, configPath, opts)
			}
			return c.runRelayout(cmd.Context(), input, output, configPath, opts, noCache)
		},
	}

	cmd.Flags().StringVarP(&edgesFile, "edges", "f", "", "build a new diagram from this edge list file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: input file)")
	cmd.Flags().StringVar(&configPath, "config", "", "layout config file (default: laygrid.toml)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().StringVarP(&opts.Direction, "direction", "d", "TB", "flow direction: TB, BT, LR, RL")
	cmd.Flags().Float64Var(&opts.RankSpacing, "rank-spacing", 0, "gap between layers")
	cmd.Flags().Float64Var(&opts.NodeSpacing, "node-spacing", 0, "gap between nodes in a layer")
	cmd.Flags().BoolVar(&opts.Compact, "compact", false, "compact the result after layout")
	cmd.Flags().BoolVar(&noRoute, "no-route", false, "skip connector routing")
	cmd.Flags().BoolVar(&optimize, "optimize", false, "optimize connector paths after routing")

	return cmd
}

// runLayoutFromEdges builds a fresh diagram from an edge list and lays it out.
func (c *CLI) runLayoutFromEdges(edgesFile, input, output, configPath string, opts pipeline.Options) error {
	edges, err := readEdgeSpecs(edgesFile)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	cfg.RouteEdges = opts.RouteEdges

	outputPath := output
	if outputPath == "" {
		if input != "" {
			outputPath = input
		} else {
			base := strings.TrimSuffix(edgesFile, filepath.Ext(edgesFile))
			outputPath = base + ".diagram.json"
		}
	}

	name := strings.TrimSuffix(filepath.Base(outputPath), ".json")
	d := diagram.New(name)

	p := newProgress(c.Logger)
	ids := layout.Sugiyama(d, edges, layout.Options{
		Direction: opts.Direction,
		Config:    cfg,
	})
	p.done(fmt.Sprintf("Laid out %d nodes", len(ids)))

	if err := writeDiagram(d, outputPath); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(d.Shapes), len(d.Connectors), false)
	printNewline()
	printNextStep("Polish", "laygrid tidy "+outputPath)

	return nil
}

// runRelayout re-lays out an existing diagram through the cached pipeline.
func (c *CLI) runRelayout(ctx context.Context, input, output, configPath string, opts pipeline.Options, noCache bool) error {
	d, err := readDiagram(input)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if opts.RankSpacing == 0 {
		opts.RankSpacing = cfg.RankSpacing
	}
	if opts.NodeSpacing == 0 {
		opts.NodeSpacing = cfg.NodeSpacing
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	res, err := runner.Execute(ctx, d, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = input
	}
	if err := writeDiagram(d, outputPath); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(res.Stats.ShapeCount, res.Stats.EdgeCount, res.CacheInfo.AnyHit())
	printNewline()
	printNextStep("Polish", "laygrid tidy "+outputPath)

	return nil
}
