// Package store provides persistence for named diagrams.
//
// This package defines an interface for diagram storage with implementations
// for different backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for production deployments
//
// Diagrams are keyed by name. Backends return a typed not-found error so
// callers can distinguish missing diagrams from backend failures.
package store

import (
	"context"

	"laygrid/pkg/diagram"
	"laygrid/pkg/errors"
)

// Store is the interface for diagram storage backends.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get retrieves a diagram by name.
	// Returns an error with code ErrCodeDiagramNotFound if it does not exist.
	Get(ctx context.Context, name string) (*diagram.Diagram, error)

	// Put stores a diagram under its name, replacing any existing one.
	Put(ctx context.Context, d *diagram.Diagram) error

	// Delete removes a diagram by name.
	// Returns an error with code ErrCodeDiagramNotFound if it does not exist.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored diagrams, sorted.
	List(ctx context.Context) ([]string, error)

	// Close releases any resources held by the store.
	Close(ctx context.Context) error
}

// notFound builds the standard not-found error for a diagram name.
func notFound(name string) error {
	return errors.New(errors.ErrCodeDiagramNotFound, "diagram %q not found", name)
}
