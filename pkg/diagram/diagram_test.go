package diagram

import (
	"testing"
)

func TestAddShapeGeneratesUniqueIDs(t *testing.T) {
	d := New("test")
	a := d.AddShape("A", 0, 0, 120, 60, "")
	b := d.AddShape("B", 200, 0, 120, 60, "")
	if a == b {
		t.Fatalf("expected distinct IDs, got %q twice", a)
	}
	if d.Shape(a) == nil || d.Shape(b) == nil {
		t.Fatal("shapes not retrievable by ID")
	}
	if got := d.Shape(a).Style; got != DefaultShapeStyle {
		t.Errorf("empty style not defaulted, got %q", got)
	}
}

func TestBoundsResolvesNestedContainers(t *testing.T) {
	d := New("test")
	outer := d.AddShape("outer", 100, 100, 400, 300, "")
	d.Shape(outer).Container = true
	inner := d.AddChildShape("inner", 50, 40, 200, 150, "", outer)
	d.Shape(inner).Container = true
	leaf := d.AddChildShape("leaf", 10, 20, 80, 40, "", inner)

	bounds := d.Bounds()
	got := bounds[leaf]
	if got.X != 160 || got.Y != 160 {
		t.Errorf("leaf absolute position = (%v,%v), want (160,160)", got.X, got.Y)
	}
	if got.Width != 80 || got.Height != 40 {
		t.Errorf("leaf size changed: %+v", got)
	}
	if b := bounds[outer]; b.X != 100 || b.Y != 100 {
		t.Errorf("top-level shape moved: %+v", b)
	}
}

func TestBoundsToleratesParentCycle(t *testing.T) {
	d := New("test")
	a := d.AddShape("a", 10, 10, 50, 50, "")
	b := d.AddShape("b", 20, 20, 50, 50, "")
	d.Shape(a).Parent = b
	d.Shape(b).Parent = a

	// Must terminate and produce some box for both.
	bounds := d.Bounds()
	if len(bounds) != 2 {
		t.Fatalf("expected 2 bounds, got %d", len(bounds))
	}
}

func TestEdgeListSkipsDanglingConnectors(t *testing.T) {
	d := New("test")
	a := d.AddShape("A", 0, 0, 120, 60, "")
	b := d.AddShape("B", 0, 200, 120, 60, "")
	d.AddConnector(a, b, "ok", "")
	d.AddConnector(a, "missing", "dangling", "")

	edges := d.EdgeList()
	if len(edges) != 1 {
		t.Fatalf("expected 1 valid edge, got %d", len(edges))
	}
	if edges[0].Label != "ok" {
		t.Errorf("wrong edge survived: %+v", edges[0])
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	d := New("rt")
	a := d.AddShape("A", 0, 0, 120, 60, "")
	b := d.AddShape("B", 0, 200, 120, 60, "")
	d.AddConnector(a, b, "flow", "")

	data, err := Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Name != "rt" || len(got.Shapes) != 2 || len(got.Connectors) != 1 {
		t.Errorf("round trip lost data: %+v", got)
	}
	if got.Grid() != DefaultGridSize {
		t.Errorf("grid size not normalized: %d", got.Grid())
	}
}

func TestSetStyleParam(t *testing.T) {
	tests := []struct {
		name  string
		style string
		key   string
		value string
		want  string
	}{
		{"append to existing", "rounded=1;html=1;", "exitX", "0.5", "rounded=1;html=1;exitX=0.5;"},
		{"replace existing", "rounded=1;exitX=0;html=1;", "exitX", "1", "rounded=1;exitX=1;html=1;"},
		{"empty style", "", "exitX", "0.5", "exitX=0.5;"},
		{"no trailing semicolon", "rounded=1", "exitX", "0.5", "rounded=1;exitX=0.5;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SetStyleParam(tt.style, tt.key, tt.value); got != tt.want {
				t.Errorf("SetStyleParam(%q, %q, %q) = %q, want %q", tt.style, tt.key, tt.value, got, tt.want)
			}
		})
	}
}
