package ports

import "context"

// SpecifierExtractor extracts literal module specifiers from source text.
//
//go:generate mockgen -source=extractor.go -destination=mocks/mock_extractor.go -package=mocks
type SpecifierExtractor interface {
	// Extract returns the specifiers referenced by source in source order.
	// The path selects the grammar. ok is false when the source could not be parsed,
	// in which case specifiers is empty.
	Extract(ctx context.Context, path string, source []byte) (specifiers []string, ok bool)
}
