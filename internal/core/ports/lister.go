package ports

import (
	"context"

	"go.trai.ch/impacted/internal/core/domain"
)

// TestFileLister enumerates candidate test files.
//
//go:generate mockgen -source=lister.go -destination=mocks/mock_lister.go -package=mocks
type TestFileLister interface {
	// List returns the sorted, duplicate-free absolute paths selected by spec under root.
	List(ctx context.Context, root string, spec domain.TestSpec) ([]string, error)
}
