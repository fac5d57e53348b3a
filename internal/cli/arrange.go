package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"laygrid/pkg/diagram"
	"laygrid/pkg/errors"
	"laygrid/pkg/layout"
)

// arrangeCommand creates the arrange command with its subcommands.
func (c *CLI) arrangeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arrange",
		Short: "Place new shapes in simple arrangements",
		Long: `Place new shapes in simple arrangements.

Each subcommand adds shapes to a diagram file, creating the file if it does
not exist. Labels are given as arguments; positions snap to the grid.`,
	}

	cmd.AddCommand(c.arrangeRowCommand())
	cmd.AddCommand(c.arrangeColumnCommand())
	cmd.AddCommand(c.arrangeGridCommand())
	cmd.AddCommand(c.arrangeTreeCommand())
	cmd.AddCommand(c.arrangeChainCommand())

	return cmd
}

// loadOrCreateDiagram opens a diagram file, creating an empty diagram when
// the file does not exist yet.
func loadOrCreateDiagram(path string) (*diagram.Diagram, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		name := diagramNameFromPath(path)
		return diagram.New(name), nil
	}
	return readDiagram(path)
}

func (c *CLI) arrangeRowCommand() *cobra.Command {
	var (
		file  string
		style string
	)
	cmd := &cobra.Command{
		Use:   "row <label>...",
		Short: "Add shapes in a horizontal row",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadOrCreateDiagram(file)
			if err != nil {
				return err
			}
			ids := layout.Row(d, args, style, nil)
			if err := writeDiagram(d, file); err != nil {
				return err
			}
			printSuccess("Added %d shapes in a row", len(ids))
			printFile(file)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "diagram.json", "diagram file")
	cmd.Flags().StringVar(&style, "style", "", "shape style")
	return cmd
}

func (c *CLI) arrangeColumnCommand() *cobra.Command {
	var (
		file  string
		style string
	)
	cmd := &cobra.Command{
		Use:   "column <label>...",
		Short: "Add shapes in a vertical column",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadOrCreateDiagram(file)
			if err != nil {
				return err
			}
			ids := layout.Column(d, args, style, nil)
			if err := writeDiagram(d, file); err != nil {
				return err
			}
			printSuccess("Added %d shapes in a column", len(ids))
			printFile(file)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "diagram.json", "diagram file")
	cmd.Flags().StringVar(&style, "style", "", "shape style")
	return cmd
}

func (c *CLI) arrangeGridCommand() *cobra.Command {
	var (
		file    string
		style   string
		columns int
	)
	cmd := &cobra.Command{
		Use:   "grid <label>...",
		Short: "Add shapes in a grid",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateColumns(columns); err != nil {
				return err
			}
			d, err := loadOrCreateDiagram(file)
			if err != nil {
				return err
			}
			ids := layout.Grid(d, args, columns, style, nil)
			if err := writeDiagram(d, file); err != nil {
				return err
			}
			printSuccess("Added %d shapes in a %d-column grid", len(ids), columns)
			printFile(file)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "diagram.json", "diagram file")
	cmd.Flags().StringVar(&style, "style", "", "shape style")
	cmd.Flags().IntVar(&columns, "columns", 3, "number of columns")
	return cmd
}

func (c *CLI) arrangeChainCommand() *cobra.Command {
	var (
		file      string
		style     string
		edgeStyle string
		vertical  bool
	)
	cmd := &cobra.Command{
		Use:   "chain <label>...",
		Short: "Add shapes connected in sequence",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadOrCreateDiagram(file)
			if err != nil {
				return err
			}
			var ids []string
			if vertical {
				ids = layout.Column(d, args, style, nil)
			} else {
				ids = layout.Row(d, args, style, nil)
			}
			edges := layout.ConnectChain(d, ids, edgeStyle, nil)
			if err := writeDiagram(d, file); err != nil {
				return err
			}
			printSuccess("Added %d shapes linked by %d connectors", len(ids), len(edges))
			printFile(file)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "diagram.json", "diagram file")
	cmd.Flags().StringVar(&style, "style", "", "shape style")
	cmd.Flags().StringVar(&edgeStyle, "edge-style", "", "connector style")
	cmd.Flags().BoolVar(&vertical, "vertical", false, "stack the chain vertically")
	return cmd
}

func (c *CLI) arrangeTreeCommand() *cobra.Command {
	var (
		file      string
		style     string
		edgeStyle string
		root      string
		direction string
	)
	cmd := &cobra.Command{
		Use:   "tree <adjacency.json>",
		Short: "Add a tree of connected shapes",
		Long: `Add a tree of connected shapes.

The adjacency file maps each parent label to its child labels:

	{"Root": ["A", "B"], "A": ["C"]}

Levels are placed along the flow direction with crossing reduction.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateDirection(direction); err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("load adjacency %s: %w", args[0], err)
			}
			var adjacency map[string][]string
			if err := json.Unmarshal(data, &adjacency); err != nil {
				return fmt.Errorf("parse adjacency %s: %w", args[0], err)
			}
			if root == "" {
				return errors.New(errors.ErrCodeInvalidInput, "tree arrangement requires --root")
			}

			d, err := loadOrCreateDiagram(file)
			if err != nil {
				return err
			}
			ids := layout.Tree(d, adjacency, root, style, edgeStyle, nil,
				errors.NormalizeDirection(direction, "TB"))
			if err := writeDiagram(d, file); err != nil {
				return err
			}
			printSuccess("Added a tree of %d shapes", len(ids))
			printFile(file)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "diagram.json", "diagram file")
	cmd.Flags().StringVar(&style, "style", "", "shape style")
	cmd.Flags().StringVar(&edgeStyle, "edge-style", "", "connector style")
	cmd.Flags().StringVar(&root, "root", "", "root label of the tree")
	cmd.Flags().StringVarP(&direction, "direction", "d", "TB", "flow direction: TB, BT, LR, RL")
	return cmd
}
