// Package sqlite provides the public API for the SQLite catalog backend.
// This package exposes the factory function for creating SQLite backends
// while keeping implementation details internal.
package sqlite

import (
	"github.com/mesh-intelligence/catalog/internal/sqlite"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

// Option configures a backend created by NewBackend.
type Option = sqlite.Option

// WithLogger sets the structured logger used by the backend.
var WithLogger = sqlite.WithLogger

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	catalog := sqlite.NewBackend()
//	err := catalog.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: "./data",
//	})
//	defer catalog.Detach()
func NewBackend(opts ...Option) types.Catalog {
	return sqlite.NewBackend(opts...)
}
