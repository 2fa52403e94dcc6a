package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/Chatelo/freview/pkg/pyast"
	"github.com/Chatelo/freview/pkg/review"
)

// modelBaseMarkers: a class is treated as an ORM model iff at least one of
// its base-class names contains one of these substrings. This is a name
// heuristic, intentionally not import resolution.
var modelBaseMarkers = []string{"Model", "Base", "DeclarativeBase"}

// ModelsResult holds the entities extracted from one model file.
type ModelsResult struct {
	Models  []review.ModelRecord
	Imports review.ImportSet
}

// Models extracts SQLAlchemy model declarations from a parsed file. Classes
// that fail the base-class test are skipped for model-ness but still
// traversed for nested declarations.
func Models(t *pyast.Tree, file string) ModelsResult {
	res := ModelsResult{Imports: review.NewImportSet()}

	pyast.Walk(t.Root(), func(n *sitter.Node) bool {
		switch n.Type() {
		case "import_statement", "import_from_statement":
			collectImports(t, n, res.Imports)
		case "class_definition":
			bases := baseClassNames(t, n)
			if !looksLikeModel(bases) {
				return true // keep walking for nested classes
			}
			model := review.ModelRecord{
				Name:        t.Text(n.ChildByFieldName("name")),
				File:        file,
				BaseClasses: bases,
				Line:        pyast.Line(n),
			}
			scanModelBody(t, n, &model)
			res.Models = append(res.Models, model)
		}
		return true
	})

	return res
}

// baseClassNames collects the declared base-class names of a class: bare
// identifiers as-is, attribute accesses by their final segment.
func baseClassNames(t *pyast.Tree, class *sitter.Node) []string {
	supers := class.ChildByFieldName("superclasses")
	if supers == nil {
		return nil
	}
	var names []string
	for i := 0; i < int(supers.NamedChildCount()); i++ {
		base := supers.NamedChild(i)
		switch base.Type() {
		case "identifier":
			names = append(names, t.Text(base))
		case "attribute":
			names = append(names, t.Text(base.ChildByFieldName("attribute")))
		}
	}
	return names
}

func looksLikeModel(bases []string) bool {
	for _, base := range bases {
		for _, marker := range modelBaseMarkers {
			if strings.Contains(base, marker) {
				return true
			}
		}
	}
	return false
}

// scanModelBody reads the direct statements of a model class body: method
// names, the __tablename__ assignment, and Column/relationship calls.
func scanModelBody(t *pyast.Tree, class *sitter.Node, model *review.ModelRecord) {
	body := class.ChildByFieldName("body")
	if body == nil {
		return
	}

	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)
		switch stmt.Type() {
		case "function_definition":
			model.Methods = append(model.Methods, t.Text(stmt.ChildByFieldName("name")))
		case "decorated_definition":
			if def := stmt.ChildByFieldName("definition"); def != nil && def.Type() == "function_definition" {
				model.Methods = append(model.Methods, t.Text(def.ChildByFieldName("name")))
			}
		case "expression_statement":
			if stmt.NamedChildCount() > 0 && stmt.NamedChild(0).Type() == "assignment" {
				scanModelAssignment(t, stmt.NamedChild(0), model)
			}
		}
	}
}

func scanModelAssignment(t *pyast.Tree, assign *sitter.Node, model *review.ModelRecord) {
	target := assignTarget(t, assign)
	right := assign.ChildByFieldName("right")
	if target == "" || right == nil {
		return
	}

	if target == "__tablename__" {
		model.HasTablename = true
		if name, ok := t.StringLiteral(right); ok {
			model.Tablename = name
		}
		return
	}

	if right.Type() != "call" {
		return
	}
	switch attrCallee(t, right) {
	case "Column":
		model.HasColumns = true
		if pyast.IsTrue(t.KeywordArg(right, "primary_key")) {
			model.HasPrimaryKey = true
		}
		for _, arg := range t.PositionalArgs(right) {
			if arg.Type() != "call" || attrCallee(t, arg) != "ForeignKey" {
				continue
			}
			if ref, ok := firstStringArg(t, arg); ok {
				model.ForeignKeys = append(model.ForeignKeys, ref)
			}
		}
	case "relationship":
		if rel, ok := firstStringArg(t, right); ok {
			model.Relationships = append(model.Relationships, rel)
		}
	}
}
