package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

// Node types of the javascript, typescript and tsx grammars.
const (
	nodeImportStatement     = "import_statement"
	nodeExportStatement     = "export_statement"
	nodeCallExpression      = "call_expression"
	nodeImportClause        = "import_clause"
	nodeImportRequireClause = "import_require_clause"
	nodeNamedImports        = "named_imports"
	nodeImportSpecifier     = "import_specifier"
	nodeExportClause        = "export_clause"
	nodeExportSpecifier     = "export_specifier"
	nodeNamespaceImport     = "namespace_import"
	nodeIdentifier          = "identifier"
	nodeArguments           = "arguments"
	nodeString              = "string"
	nodeComment             = "comment"
	nodeImport              = "import"
	keywordType             = "type"
	keywordTypeof           = "typeof"
	requireIdentifier       = "require"
)

// collect walks the tree in source order with an explicit stack and gathers specifiers.
func collect(root *sitter.Node, src []byte) []string {
	specifiers := []string{}
	stack := []*sitter.Node{root}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch node.Type() {
		case nodeImportStatement:
			if spec, ok := importSpecifier(node, src); ok {
				specifiers = append(specifiers, spec)
			}
			continue
		case nodeExportStatement:
			if source := node.ChildByFieldName("source"); source != nil {
				if !hasKeyword(node, keywordType) && !onlyTypeExports(childOfType(node, nodeExportClause)) {
					if spec, ok := stringValue(source, src); ok {
						specifiers = append(specifiers, spec)
					}
				}
				continue
			}
		case nodeCallExpression:
			if spec, ok := callSpecifier(node, src); ok {
				specifiers = append(specifiers, spec)
			}
		}

		for i := int(node.NamedChildCount()) - 1; i >= 0; i-- {
			if child := node.NamedChild(i); child != nil {
				stack = append(stack, child)
			}
		}
	}

	return specifiers
}

// importSpecifier handles `import … from 'x'`, `import 'x'` and `import x = require('x')`.
// Type-only imports yield nothing.
func importSpecifier(node *sitter.Node, src []byte) (string, bool) {
	if hasKeyword(node, keywordType) || hasKeyword(node, keywordTypeof) {
		return "", false
	}

	if clause := childOfType(node, nodeImportRequireClause); clause != nil {
		source := clause.ChildByFieldName("source")
		if source == nil {
			return "", false
		}
		return stringValue(source, src)
	}

	source := node.ChildByFieldName("source")
	if source == nil {
		return "", false
	}
	if clause := childOfType(node, nodeImportClause); clause != nil && onlyTypeBindings(clause) {
		return "", false
	}
	return stringValue(source, src)
}

// onlyTypeBindings reports whether every binding of an import clause is marked `type`.
func onlyTypeBindings(clause *sitter.Node) bool {
	specifiers := 0
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		child := clause.NamedChild(i)
		switch child.Type() {
		case nodeIdentifier, nodeNamespaceImport:
			return false
		case nodeNamedImports:
			for j := 0; j < int(child.NamedChildCount()); j++ {
				spec := child.NamedChild(j)
				if spec.Type() != nodeImportSpecifier {
					continue
				}
				if !hasKeyword(spec, keywordType) {
					return false
				}
				specifiers++
			}
		}
	}
	return specifiers > 0
}

// onlyTypeExports reports whether every specifier of an export clause is marked `type`.
func onlyTypeExports(clause *sitter.Node) bool {
	if clause == nil {
		return false
	}
	specifiers := 0
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		spec := clause.NamedChild(i)
		if spec.Type() != nodeExportSpecifier {
			continue
		}
		if !hasKeyword(spec, keywordType) {
			return false
		}
		specifiers++
	}
	return specifiers > 0
}

// callSpecifier handles `import('x')` and `require('x')` with a literal first argument.
func callSpecifier(node *sitter.Node, src []byte) (string, bool) {
	fn := node.ChildByFieldName("function")
	args := node.ChildByFieldName("arguments")
	if fn == nil || args == nil || args.Type() != nodeArguments {
		return "", false
	}

	switch fn.Type() {
	case nodeImport:
	case nodeIdentifier:
		if fn.Content(src) != requireIdentifier {
			return "", false
		}
	default:
		return "", false
	}

	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		if arg.Type() == nodeComment {
			continue
		}
		if arg.Type() != nodeString {
			return "", false
		}
		return stringValue(arg, src)
	}
	return "", false
}

// stringValue returns the decoded value of a string literal.
func stringValue(node *sitter.Node, src []byte) (string, bool) {
	if node.Type() != nodeString {
		return "", false
	}
	text := node.Content(src)
	if len(text) < 2 {
		return "", false
	}
	return unescape(text[1:len(text)-1], text[0]), true
}

// unescape decodes the escape sequences of a string literal body quoted with quote.
// Unknown escapes stand for the escaped character and line continuations vanish.
func unescape(raw string, quote byte) string {
	if !strings.ContainsRune(raw, '\\') {
		return raw
	}
	var b strings.Builder
	for s := raw; len(s) > 0; {
		if rest, ok := strings.CutPrefix(s, "\\\n"); ok {
			s = rest
			continue
		}
		value, _, tail, err := strconv.UnquoteChar(s, quote)
		if err == nil {
			b.WriteRune(value)
			s = tail
			continue
		}
		if s[0] == '\\' && len(s) > 1 {
			s = s[1:]
		}
		r, size := utf8.DecodeRuneInString(s)
		b.WriteRune(r)
		s = s[size:]
	}
	return b.String()
}

func hasKeyword(node *sitter.Node, keyword string) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil && !child.IsNamed() && child.Type() == keyword {
			return true
		}
	}
	return false
}

func childOfType(node *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child != nil && child.Type() == typ {
			return child
		}
	}
	return nil
}
