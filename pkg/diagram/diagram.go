// Package diagram holds the document model the layout engine operates on:
// named diagrams containing positioned shapes and the connectors between
// them.
//
// The model is deliberately small. Shapes carry absolute geometry (relative
// to their parent container, if any), connectors reference shapes by their
// stable identity and own an ordered waypoint list that routing and
// optimization passes rewrite in place. All algorithmic work lives in
// pkg/layout and pkg/route; this package only stores and resolves geometry.
//
// Diagram is not safe for concurrent use. Callers that share a diagram
// across goroutines (the HTTP store does) must serialize access.
package diagram

import (
	"strings"

	"github.com/google/uuid"

	"laygrid/pkg/geom"
)

// Default styles applied when a caller passes an empty style string.
const (
	DefaultShapeStyle     = "rounded=1;whiteSpace=wrap;html=1;"
	DefaultConnectorStyle = "edgeStyle=orthogonalEdgeStyle;rounded=1;orthogonalLoop=1;jettySize=auto;html=1;endArrow=classic;"
)

// DefaultGridSize is the snap unit used when a diagram does not set one.
const DefaultGridSize = 10

// Shape is a positioned, labeled box. X/Y are relative to the parent
// container when Parent is set, absolute otherwise.
type Shape struct {
	ID     string  `json:"id" bson:"id"`
	Label  string  `json:"label,omitempty" bson:"label,omitempty"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Style  string  `json:"style,omitempty" bson:"style,omitempty"`

	// Parent is the ID of the containing shape, or empty for top-level.
	Parent string `json:"parent,omitempty" bson:"parent,omitempty"`

	// Container marks shapes that may hold children.
	Container bool `json:"container,omitempty" bson:"container,omitempty"`
}

// Box returns the shape's geometry relative to its parent.
func (s *Shape) Box() geom.Box {
	return geom.Box{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

// Connector is a directed edge between two shapes, identified by their IDs.
type Connector struct {
	ID     string `json:"id" bson:"id"`
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
	Style  string `json:"style,omitempty" bson:"style,omitempty"`

	// Waypoints are the intermediate bend points of the connector's path,
	// excluding the endpoints on the source and target shapes. An empty
	// list means the renderer draws its own default path.
	Waypoints []geom.Point `json:"waypoints,omitempty" bson:"waypoints,omitempty"`

	// LabelOffset shifts the label away from the path midpoint. Nil means
	// the renderer's default placement.
	LabelOffset *geom.Point `json:"label_offset,omitempty" bson:"label_offset,omitempty"`
}

// Diagram is a single page of shapes and connectors.
type Diagram struct {
	Name       string       `json:"name" bson:"name"`
	GridSize   int          `json:"grid_size,omitempty" bson:"grid_size,omitempty"`
	PageWidth  float64      `json:"page_width,omitempty" bson:"page_width,omitempty"`
	PageHeight float64      `json:"page_height,omitempty" bson:"page_height,omitempty"`
	Shapes     []*Shape     `json:"shapes" bson:"shapes"`
	Connectors []*Connector `json:"connectors" bson:"connectors"`
}

// New creates an empty diagram with the default grid size.
func New(name string) *Diagram {
	return &Diagram{Name: name, GridSize: DefaultGridSize}
}

// Grid returns the diagram's snap unit, falling back to the default when
// unset (e.g. after deserializing an older document).
func (d *Diagram) Grid() int {
	if d.GridSize <= 0 {
		return DefaultGridSize
	}
	return d.GridSize
}

func newID() string {
	// Compact hex form, matching the identity scheme of exported documents.
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// AddShape creates a top-level shape and returns its generated ID.
// An empty style gets the default shape style.
func (d *Diagram) AddShape(label string, x, y, width, height float64, style string) string {
	return d.AddChildShape(label, x, y, width, height, style, "")
}

// AddChildShape creates a shape nested inside the given parent container.
// Coordinates are relative to the parent. An empty parent creates a
// top-level shape.
func (d *Diagram) AddChildShape(label string, x, y, width, height float64, style, parent string) string {
	if style == "" {
		style = DefaultShapeStyle
	}
	s := &Shape{
		ID:     newID(),
		Label:  label,
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Style:  style,
		Parent: parent,
	}
	d.Shapes = append(d.Shapes, s)
	return s.ID
}

// AddConnector creates a connector between two shapes and returns its ID.
// The endpoints are not validated here; connectors referencing unknown
// shapes are skipped by routing and optimization.
func (d *Diagram) AddConnector(source, target, label, style string) string {
	if style == "" {
		style = DefaultConnectorStyle
	}
	c := &Connector{
		ID:     newID(),
		Source: source,
		Target: target,
		Label:  label,
		Style:  style,
	}
	d.Connectors = append(d.Connectors, c)
	return c.ID
}

// SetStyleParam returns style with the given key set to value, replacing an
// existing entry or appending one. Styles are semicolon-separated key=value
// lists in export form ("rounded=1;html=1;").
func SetStyleParam(style, key, value string) string {
	entry := key + "=" + value
	parts := strings.Split(style, ";")
	out := parts[:0]
	found := false
	for _, p := range parts {
		if p == "" {
			continue
		}
		if strings.HasPrefix(p, key+"=") {
			p = entry
			found = true
		}
		out = append(out, p)
	}
	if !found {
		out = append(out, entry)
	}
	return strings.Join(out, ";") + ";"
}

// Shape returns the shape with the given ID, or nil.
func (d *Diagram) Shape(id string) *Shape {
	for _, s := range d.Shapes {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Connector returns the connector with the given ID, or nil.
func (d *Diagram) Connector(id string) *Connector {
	for _, c := range d.Connectors {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// ShapeByLabel returns the first shape with the given label, or nil.
func (d *Diagram) ShapeByLabel(label string) *Shape {
	for _, s := range d.Shapes {
		if s.Label == label {
			return s
		}
	}
	return nil
}

// Bounds resolves the absolute bounding box of every shape, walking parent
// chains iteratively to accumulate container offsets. Shapes whose parent
// chain contains a cycle or an unknown ID are resolved as far as possible
// and then treated as top-level.
func (d *Diagram) Bounds() map[string]geom.Box {
	byID := make(map[string]*Shape, len(d.Shapes))
	for _, s := range d.Shapes {
		byID[s.ID] = s
	}

	bounds := make(map[string]geom.Box, len(d.Shapes))
	for _, s := range d.Shapes {
		x, y := s.X, s.Y
		seen := map[string]bool{s.ID: true}
		for parent := s.Parent; parent != ""; {
			p, ok := byID[parent]
			if !ok || seen[parent] {
				break
			}
			seen[parent] = true
			x += p.X
			y += p.Y
			parent = p.Parent
		}
		bounds[s.ID] = geom.Box{X: x, Y: y, Width: s.Width, Height: s.Height}
	}
	return bounds
}

// TopLevelBounds returns absolute bounds for top-level shapes only,
// excluding children of containers. Layout passes that reposition whole
// shapes operate on this set so nested children move with their parent.
func (d *Diagram) TopLevelBounds() map[string]geom.Box {
	bounds := make(map[string]geom.Box, len(d.Shapes))
	for _, s := range d.Shapes {
		if s.Parent == "" {
			bounds[s.ID] = s.Box()
		}
	}
	return bounds
}

// Edge is a (source, target, label) triple extracted from a connector,
// used to rebuild the layout graph of an existing diagram.
type Edge struct {
	Source string
	Target string
	Label  string
}

// EdgeList returns the connector endpoints of the diagram as edges between
// shape IDs. Connectors with a missing endpoint reference are skipped.
func (d *Diagram) EdgeList() []Edge {
	var edges []Edge
	for _, c := range d.Connectors {
		if c.Source == "" || c.Target == "" {
			continue
		}
		if d.Shape(c.Source) == nil || d.Shape(c.Target) == nil {
			continue
		}
		edges = append(edges, Edge{Source: c.Source, Target: c.Target, Label: c.Label})
	}
	return edges
}
