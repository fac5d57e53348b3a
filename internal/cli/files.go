package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"laygrid/pkg/diagram"
	"laygrid/pkg/errors"
	"laygrid/pkg/layout"
)

// readDiagram loads a diagram JSON file.
func readDiagram(path string) (*diagram.Diagram, error) {
	d, err := diagram.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load diagram %s: %w", path, err)
	}
	return d, nil
}

// writeDiagram saves a diagram JSON file.
func writeDiagram(d *diagram.Diagram, path string) error {
	if err := diagram.WriteFile(d, path); err != nil {
		return fmt.Errorf("write diagram %s: %w", path, err)
	}
	return nil
}

// diagramNameFromPath derives a diagram name from a file path.
func diagramNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// edgeFile is the JSON shape of an edge list input file.
// Either a bare array of edges or an object with an "edges" key is accepted.
type edgeFile struct {
	Edges []layout.EdgeSpec `json:"edges"`
}

// readEdgeSpecs loads an edge list from a JSON file.
func readEdgeSpecs(path string) ([]layout.EdgeSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load edges %s: %w", path, err)
	}

	var list []layout.EdgeSpec
	if err := json.Unmarshal(data, &list); err == nil {
		return validateEdges(list)
	}

	var f edgeFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse edges %s: %w", path, err)
	}
	return validateEdges(f.Edges)
}

func validateEdges(edges []layout.EdgeSpec) ([]layout.EdgeSpec, error) {
	pairs := make([][2]string, len(edges))
	for i, e := range edges {
		pairs[i] = [2]string{e.Source, e.Target}
	}
	if err := errors.ValidateEdges(pairs); err != nil {
		return nil, err
	}
	return edges, nil
}
