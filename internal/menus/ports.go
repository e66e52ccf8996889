// Package menus defines the ports the core depends on for persistence.
package menus

import (
	"context"
	"errors"

	"github.com/PCalderonpm/menu-escolar/internal/core"
)

// ErrNotFound is returned by Load when no record exists for the identifier.
var ErrNotFound = errors.New("menu not found")

type (
	// BundleLoader reads a persisted bundle by its opaque identifier.
	BundleLoader interface {
		Load(ctx context.Context, id string) (core.MenuBundle, error)
	}

	// BundleSaver stores a bundle wholesale, replacing any existing record.
	// When id is empty the adapter mints a new opaque identifier and
	// returns it; otherwise it returns id unchanged.
	BundleSaver interface {
		Save(ctx context.Context, id string, b core.MenuBundle) (string, error)
	}

	// Gateway is the full persistence surface the session needs.
	Gateway interface {
		BundleLoader
		BundleSaver
	}
)
