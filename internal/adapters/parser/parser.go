// Package parser extracts module specifiers from JavaScript and TypeScript sources using tree-sitter.
package parser

import (
	"context"
	"fmt"
	"sync/atomic"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"go.trai.ch/impacted/internal/core/domain"
	"go.trai.ch/impacted/internal/core/ports"
)

var _ ports.SpecifierExtractor = (*Extractor)(nil)

var (
	javascriptLanguage = javascript.GetLanguage()
	typescriptLanguage = typescript.GetLanguage()
	tsxLanguage        = tsx.GetLanguage()
)

// Extractor implements ports.SpecifierExtractor with tree-sitter grammars.
// It is safe for concurrent use; every call parses with its own parser.
type Extractor struct {
	logger ports.Logger
	// warned is set once the first unparseable file has been reported.
	warned atomic.Bool
}

// New creates a new Extractor reporting parse failures to logger.
func New(logger ports.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract returns the literal specifiers referenced by source in source order.
// The primary grammar of the file's dialect is tried first and a fallback grammar second.
// If neither yields an error-free tree, Extract returns an empty list and ok is false.
func (e *Extractor) Extract(ctx context.Context, path string, source []byte) ([]string, bool) {
	for _, lang := range grammarsFor(domain.DialectOf(path)) {
		if specifiers, ok := parse(ctx, lang, source); ok {
			return specifiers, true
		}
	}

	e.reportFailure(path)
	return []string{}, false
}

func (e *Extractor) reportFailure(path string) {
	if e.logger == nil {
		return
	}
	e.logger.Debug("could not parse " + path)
	if e.warned.CompareAndSwap(false, true) {
		e.logger.Warn(fmt.Sprintf("could not parse %s; imports of unparseable files are ignored", path))
	}
}

// grammarsFor returns the primary and fallback grammar of a dialect.
func grammarsFor(d domain.Dialect) []*sitter.Language {
	switch d {
	case domain.DialectTypeScript:
		return []*sitter.Language{typescriptLanguage, tsxLanguage}
	case domain.DialectTSX:
		return []*sitter.Language{tsxLanguage, typescriptLanguage}
	default:
		return []*sitter.Language{javascriptLanguage, tsxLanguage}
	}
}

func parse(ctx context.Context, lang *sitter.Language, source []byte) ([]string, bool) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, false
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.HasError() {
		return nil, false
	}
	return collect(root, source), true
}
