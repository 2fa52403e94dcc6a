// Package pyast provides the syntax tree layer for freview. It parses Python
// source text with tree-sitter and exposes the small set of node helpers the
// extractors need: walking, callee resolution, literal unquoting, and
// keyword-argument lookup.
package pyast

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// SyntaxError reports malformed Python source. It carries the line of the
// first error node so the caller can attribute the failure.
type SyntaxError struct {
	Msg  string
	Line int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Msg)
}

// Tree bundles a parsed syntax tree with its source so node text can be
// resolved without threading the byte slice through every call site.
type Tree struct {
	tree *sitter.Tree
	src  []byte
}

// Parse parses Python source text. Source containing syntax errors returns a
// *SyntaxError; the tree is not exposed in that case since extraction over a
// broken tree is reported as a parse failure, not attempted best-effort.
func Parse(ctx context.Context, src []byte) (*Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	root := tree.RootNode()
	if root.HasError() {
		return nil, firstSyntaxError(root)
	}

	return &Tree{tree: tree, src: src}, nil
}

// firstSyntaxError locates the first ERROR or missing node in the tree.
func firstSyntaxError(root *sitter.Node) *SyntaxError {
	serr := &SyntaxError{Msg: "invalid syntax", Line: 1}
	Walk(root, func(n *sitter.Node) bool {
		if n.Type() == "ERROR" || n.IsMissing() {
			serr.Line = Line(n)
			return false
		}
		return true
	})
	return serr
}

// Root returns the module node.
func (t *Tree) Root() *sitter.Node {
	return t.tree.RootNode()
}

// Text returns the source text covered by a node.
func (t *Tree) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(t.src)
}

// Walk traverses the subtree rooted at n in preorder. Returning false from fn
// prunes the subtree below the current node.
func Walk(n *sitter.Node, fn func(*sitter.Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		Walk(n.Child(i), fn)
	}
}

// Line returns the 1-based source line of a node.
func Line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

// DottedName resolves an identifier or attribute chain to its dotted text
// (e.g. "app.route"). Non-name expressions resolve to "unknown", matching the
// tolerant classification the extractors rely on.
func (t *Tree) DottedName(n *sitter.Node) string {
	if n == nil {
		return "unknown"
	}
	switch n.Type() {
	case "identifier":
		return t.Text(n)
	case "attribute":
		obj := n.ChildByFieldName("object")
		attr := n.ChildByFieldName("attribute")
		return t.DottedName(obj) + "." + t.Text(attr)
	default:
		return "unknown"
	}
}

// CalleeName resolves the dotted name of a call expression's callee.
func (t *Tree) CalleeName(call *sitter.Node) string {
	return t.DottedName(call.ChildByFieldName("function"))
}

// CalleeAttr returns the final segment of a call expression's callee, i.e.
// the attribute name for `db.Column(...)` ("Column") or the bare identifier
// for `relationship(...)`.
func (t *Tree) CalleeAttr(call *sitter.Node) string {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	switch fn.Type() {
	case "identifier":
		return t.Text(fn)
	case "attribute":
		return t.Text(fn.ChildByFieldName("attribute"))
	default:
		return ""
	}
}

// PositionalArgs returns the positional arguments of a call expression in
// declaration order.
func (t *Tree) PositionalArgs(call *sitter.Node) []*sitter.Node {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(args.NamedChildCount()); i++ {
		child := args.NamedChild(i)
		if child.Type() != "keyword_argument" {
			out = append(out, child)
		}
	}
	return out
}

// KeywordArg returns the value node of the named keyword argument, or nil.
func (t *Tree) KeywordArg(call *sitter.Node, name string) *sitter.Node {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		child := args.NamedChild(i)
		if child.Type() != "keyword_argument" {
			continue
		}
		if t.Text(child.ChildByFieldName("name")) == name {
			return child.ChildByFieldName("value")
		}
	}
	return nil
}

// StringLiteral unquotes a string node. Returns false for any other node
// type, including computed expressions, so callers fall back to defaults.
func (t *Tree) StringLiteral(n *sitter.Node) (string, bool) {
	if n == nil || n.Type() != "string" {
		return "", false
	}
	return unquote(t.Text(n)), true
}

// IsTrue reports whether the node is the literal True.
func IsTrue(n *sitter.Node) bool {
	return n != nil && n.Type() == "true"
}

// StringList unquotes a literal list of strings (e.g. methods=["GET"]).
// Non-literal elements are ignored. Returns false when the node is not a
// list at all.
func (t *Tree) StringList(n *sitter.Node) ([]string, bool) {
	if n == nil || n.Type() != "list" {
		return nil, false
	}
	var out []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if s, ok := t.StringLiteral(n.NamedChild(i)); ok {
			out = append(out, s)
		}
	}
	return out, true
}

// HasDocstring reports whether a function or class body opens with a string
// expression statement.
func (t *Tree) HasDocstring(def *sitter.Node) bool {
	body := def.ChildByFieldName("body")
	if body == nil || body.NamedChildCount() == 0 {
		return false
	}
	first := body.NamedChild(0)
	if first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return false
	}
	return first.NamedChild(0).Type() == "string"
}

// unquote strips Python string quoting: optional r/b/u/f prefixes, then
// triple or single quote pairs.
func unquote(s string) string {
	for len(s) > 0 {
		c := s[0]
		if c == 'r' || c == 'R' || c == 'b' || c == 'B' || c == 'u' || c == 'U' || c == 'f' || c == 'F' {
			s = s[1:]
			continue
		}
		break
	}
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) >= 2*len(q) {
			return s[len(q) : len(s)-len(q)]
		}
	}
	return s
}
