package extract

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/Chatelo/freview/pkg/pyast"
	"github.com/Chatelo/freview/pkg/review"
)

// routeDecoratorAttrs are the attribute names that mark a decorator as
// route-shaped, e.g. @app.route(...) or @bp.get(...).
var routeDecoratorAttrs = map[string]bool{
	"route":  true,
	"get":    true,
	"post":   true,
	"put":    true,
	"delete": true,
	"patch":  true,
}

// validationVocabulary marks calls that look like input validation.
var validationVocabulary = []string{"validate", "check", "verify", "parse_args", "get_json"}

// authVocabulary marks calls that look like authentication.
var authVocabulary = []string{"login_required", "auth", "authenticate", "check_token", "verify_token"}

// RoutesResult holds the entities extracted from one route file.
type RoutesResult struct {
	Routes     []review.RouteRecord
	Blueprints []review.BlueprintRecord
	Imports    review.ImportSet
}

// Routes extracts route handlers and blueprint declarations from a parsed
// file. Blueprint scope is a single cursor: the most recently seen
// Blueprint(...) assignment owns every route declared after it in the same
// file. Nested or re-opened blueprints simply overwrite the cursor.
func Routes(t *pyast.Tree, file string) RoutesResult {
	res := RoutesResult{Imports: review.NewImportSet()}
	var blueprints []*review.BlueprintRecord
	var current *review.BlueprintRecord

	pyast.Walk(t.Root(), func(n *sitter.Node) bool {
		switch n.Type() {
		case "import_statement", "import_from_statement":
			collectImports(t, n, res.Imports)
		case "assignment":
			if bp := extractBlueprint(t, n, file); bp != nil {
				blueprints = append(blueprints, bp)
				current = bp
			}
		case "decorated_definition":
			def := n.ChildByFieldName("definition")
			if def == nil || def.Type() != "function_definition" {
				return true
			}
			if route, ok := extractRoute(t, n, def); ok {
				if current != nil {
					route.Blueprint = current.Name
				}
				res.Routes = append(res.Routes, route)
				if current != nil {
					current.Routes = append(current.Routes, route)
				}
			}
		}
		return true
	})

	for _, bp := range blueprints {
		res.Blueprints = append(res.Blueprints, *bp)
	}
	return res
}

// extractBlueprint recognizes `name = Blueprint("users", ..., url_prefix=...)`
// assignments. Constructions with no literal name are discarded.
func extractBlueprint(t *pyast.Tree, assign *sitter.Node, file string) *review.BlueprintRecord {
	right := assign.ChildByFieldName("right")
	if right == nil || right.Type() != "call" {
		return nil
	}
	if t.CalleeAttr(right) != "Blueprint" {
		return nil
	}

	name, ok := firstStringArg(t, right)
	if !ok || name == "" {
		return nil
	}

	bp := &review.BlueprintRecord{
		Name: name,
		File: file,
		Line: pyast.Line(assign),
	}
	if prefix, ok := t.StringLiteral(t.KeywordArg(right, "url_prefix")); ok {
		bp.URLPrefix = prefix
	}
	return bp
}

// extractRoute builds a RouteRecord from a decorated function definition.
// Only the first route-shaped decorator determines path and methods; any
// further route decorators on the same function are recorded as raw text but
// otherwise ignored.
func extractRoute(t *pyast.Tree, dd, def *sitter.Node) (review.RouteRecord, bool) {
	var decorators []*sitter.Node
	for i := 0; i < int(dd.NamedChildCount()); i++ {
		child := dd.NamedChild(i)
		if child.Type() == "decorator" {
			decorators = append(decorators, child.NamedChild(0))
		}
	}

	var routeDec *sitter.Node
	for _, dec := range decorators {
		if isRouteDecorator(t, dec) {
			routeDec = dec
			break
		}
	}
	if routeDec == nil {
		return review.RouteRecord{}, false
	}

	path, methods := parseRouteDecorator(t, routeDec)
	route := review.RouteRecord{
		Name:         t.Text(def.ChildByFieldName("name")),
		Path:         path,
		Methods:      methods,
		HasDocstring: t.HasDocstring(def),
		Line:         pyast.Line(def),
	}
	for _, dec := range decorators {
		route.Decorators = append(route.Decorators, decoratorText(t, dec))
	}

	scanRouteBody(t, dd, &route)
	return route, true
}

// isRouteDecorator classifies the decorator expression by shape: a bare name
// "route", an attribute access ending in a route verb, or a call over either.
func isRouteDecorator(t *pyast.Tree, dec *sitter.Node) bool {
	if dec == nil {
		return false
	}
	switch dec.Type() {
	case "identifier":
		return t.Text(dec) == "route"
	case "attribute":
		return routeDecoratorAttrs[t.Text(dec.ChildByFieldName("attribute"))]
	case "call":
		fn := dec.ChildByFieldName("function")
		if fn == nil {
			return false
		}
		switch fn.Type() {
		case "identifier":
			return t.Text(fn) == "route"
		case "attribute":
			return routeDecoratorAttrs[t.Text(fn.ChildByFieldName("attribute"))]
		}
	}
	return false
}

// parseRouteDecorator reads path and methods from the decorator call. Both
// must be literal constants; computed values fall back to the defaults
// "/" and {GET}.
func parseRouteDecorator(t *pyast.Tree, dec *sitter.Node) (string, []string) {
	path := "/"
	methods := []string{"GET"}

	if dec.Type() != "call" {
		return path, methods
	}
	if p, ok := firstStringArg(t, dec); ok {
		path = p
	}
	if list, ok := t.StringList(t.KeywordArg(dec, "methods")); ok && len(list) > 0 {
		methods = list
	}
	return path, methods
}

// scanRouteBody walks the full handler subtree (decorators included) for
// error handling, validation, and authentication patterns.
func scanRouteBody(t *pyast.Tree, dd *sitter.Node, route *review.RouteRecord) {
	pyast.Walk(dd, func(n *sitter.Node) bool {
		switch n.Type() {
		case "try_statement":
			route.HasErrorCheck = true
		case "call":
			callee := strings.ToLower(lastCalleeSegment(t, n))
			if matchesAny(callee, validationVocabulary) {
				route.HasValidation = true
			}
			if matchesAny(callee, authVocabulary) {
				route.HasAuth = true
			}
		}
		return true
	})
}

// lastCalleeSegment returns the final name segment of a call's callee,
// whether bare or attribute-qualified.
func lastCalleeSegment(t *pyast.Tree, call *sitter.Node) string {
	return t.CalleeAttr(call)
}

func matchesAny(name string, vocabulary []string) bool {
	for _, v := range vocabulary {
		if strings.Contains(name, v) {
			return true
		}
	}
	return false
}

// decoratorText renders a decorator expression for the raw decorator list.
func decoratorText(t *pyast.Tree, dec *sitter.Node) string {
	if dec == nil {
		return "unknown"
	}
	switch dec.Type() {
	case "identifier", "attribute":
		return t.DottedName(dec)
	case "call":
		return t.DottedName(dec.ChildByFieldName("function")) + "(...)"
	default:
		return "unknown"
	}
}
