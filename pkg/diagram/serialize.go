package diagram

import (
	"encoding/json"
	"fmt"
	"os"
)

// Marshal serializes a diagram to pretty-printed JSON bytes.
func Marshal(d *Diagram) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal deserializes JSON bytes into a diagram and normalizes the
// grid size.
func Unmarshal(data []byte) (*Diagram, error) {
	var d Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal diagram: %w", err)
	}
	if d.GridSize <= 0 {
		d.GridSize = DefaultGridSize
	}
	return &d, nil
}

// WriteFile writes a diagram to a JSON file.
func WriteFile(d *Diagram, path string) error {
	data, err := Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a diagram from a JSON file.
func ReadFile(path string) (*Diagram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
