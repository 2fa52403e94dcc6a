// Package extract converts parsed Python syntax trees into typed entity
// records. Extraction is best-effort per node: shapes that cannot be
// classified are skipped, never surfaced as errors.
package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/Chatelo/freview/pkg/pyast"
	"github.com/Chatelo/freview/pkg/review"
)

// collectImports records module and qualified name imports from an import
// statement node into the set.
func collectImports(t *pyast.Tree, n *sitter.Node, imports review.ImportSet) {
	switch n.Type() {
	case "import_statement":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			switch child.Type() {
			case "dotted_name":
				imports.Add(t.Text(child))
			case "aliased_import":
				imports.Add(t.Text(child.ChildByFieldName("name")))
			}
		}
	case "import_from_statement":
		module := n.ChildByFieldName("module_name")
		if module == nil {
			return
		}
		moduleName := t.Text(module)
		imports.Add(moduleName)
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			if child == module {
				continue
			}
			switch child.Type() {
			case "dotted_name":
				imports.Add(moduleName + "." + t.Text(child))
			case "aliased_import":
				imports.Add(moduleName + "." + t.Text(child.ChildByFieldName("name")))
			}
		}
	}
}

// attrCallee returns the attribute name of a call whose callee is an
// attribute access (e.g. "Column" for db.Column(...)). Bare-name calls and
// computed callees return "".
func attrCallee(t *pyast.Tree, call *sitter.Node) string {
	fn := call.ChildByFieldName("function")
	if fn == nil || fn.Type() != "attribute" {
		return ""
	}
	return t.Text(fn.ChildByFieldName("attribute"))
}

// firstStringArg returns the first positional argument of a call when it is
// a string literal.
func firstStringArg(t *pyast.Tree, call *sitter.Node) (string, bool) {
	args := t.PositionalArgs(call)
	if len(args) == 0 {
		return "", false
	}
	return t.StringLiteral(args[0])
}

// assignTarget returns the identifier text of a simple assignment target,
// or "" for tuple/attribute/subscript targets.
func assignTarget(t *pyast.Tree, assign *sitter.Node) string {
	left := assign.ChildByFieldName("left")
	if left == nil || left.Type() != "identifier" {
		return ""
	}
	return t.Text(left)
}
