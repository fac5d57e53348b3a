package store

import (
	"context"
	"testing"

	"laygrid/pkg/diagram"
	"laygrid/pkg/errors"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	d := diagram.New("arch")
	d.AddShape("API", 0, 0, 120, 60, "")

	if err := s.Put(ctx, d); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, err := s.Get(ctx, "arch")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Name != "arch" || len(got.Shapes) != 1 {
		t.Errorf("unexpected diagram: %+v", got)
	}
	if got.Shapes[0].Label != "API" {
		t.Errorf("shape label = %q", got.Shapes[0].Label)
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	d := diagram.New("arch")
	d.AddShape("API", 0, 0, 120, 60, "")
	if err := s.Put(ctx, d); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	first, _ := s.Get(ctx, "arch")
	first.Shapes[0].X = 999

	second, _ := s.Get(ctx, "arch")
	if second.Shapes[0].X != 0 {
		t.Error("mutation of a returned diagram leaked into the store")
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	_, err := s.Get(ctx, "missing")
	if !errors.Is(err, errors.ErrCodeDiagramNotFound) {
		t.Errorf("expected diagram not found, got %v", err)
	}

	if err := s.Delete(ctx, "missing"); !errors.Is(err, errors.ErrCodeDiagramNotFound) {
		t.Errorf("expected diagram not found on delete, got %v", err)
	}
}

func TestMemoryStorePutValidation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	if err := s.Put(ctx, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil diagram should be rejected, got %v", err)
	}
	if err := s.Put(ctx, &diagram.Diagram{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unnamed diagram should be rejected, got %v", err)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := s.Put(ctx, diagram.New(name)); err != nil {
			t.Fatalf("Put %q error: %v", name, err)
		}
	}

	names, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("List returned %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	if err := s.Put(ctx, diagram.New("gone")); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := s.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Get(ctx, "gone"); !errors.Is(err, errors.ErrCodeDiagramNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}
