package extract

import (
	"path/filepath"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/Chatelo/freview/pkg/pyast"
	"github.com/Chatelo/freview/pkg/review"
)

// queryVocabulary marks calls that look like database queries.
var queryVocabulary = []string{
	"query", "select", "filter", "join", "execute", "fetchall",
	"fetchone", "first", "all", "get", "get_or_404",
}

// transactionVocabulary marks calls that look like transaction handling.
var transactionVocabulary = []string{"commit", "rollback", "begin", "transaction", "session"}

// configSignalTerms select assignment targets captured as database
// configuration signals.
var configSignalTerms = []string{"DATABASE", "DB", "SQL", "URI", "POOL"}

// UsageResult holds the database usage facts extracted from one file.
type UsageResult struct {
	Usage   review.UsageRecord
	Imports review.ImportSet
}

// Usage classifies every call expression in the file against the query and
// transaction vocabularies and captures configuration-shaped constant
// assignments.
func Usage(t *pyast.Tree, file string) UsageResult {
	res := UsageResult{
		Usage:   review.UsageRecord{File: file},
		Imports: review.NewImportSet(),
	}

	pyast.Walk(t.Root(), func(n *sitter.Node) bool {
		switch n.Type() {
		case "import_statement", "import_from_statement":
			collectImports(t, n, res.Imports)
		case "call":
			name := strings.ToLower(t.CalleeName(n))
			if matchesAny(name, queryVocabulary) {
				res.Usage.QueryCalls = append(res.Usage.QueryCalls, t.CalleeName(n))
			}
			if matchesAny(name, transactionVocabulary) {
				res.Usage.Transactions = append(res.Usage.Transactions, t.CalleeName(n))
			}
		case "assignment":
			if sig, ok := extractConfigSignal(t, n, file); ok {
				res.Usage.Signals = append(res.Usage.Signals, sig)
			}
		}
		return true
	})

	return res
}

// extractConfigSignal captures assignments of literal constants to names
// matching the database configuration vocabulary.
func extractConfigSignal(t *pyast.Tree, assign *sitter.Node, file string) (review.ConfigSignal, bool) {
	target := assignTarget(t, assign)
	right := assign.ChildByFieldName("right")
	if target == "" || right == nil || !isConstant(right) {
		return review.ConfigSignal{}, false
	}

	upper := strings.ToUpper(target)
	for _, term := range configSignalTerms {
		if strings.Contains(upper, term) {
			value := t.Text(right)
			if s, ok := t.StringLiteral(right); ok {
				value = s
			}
			return review.ConfigSignal{
				Key:   upper,
				Value: value,
				File:  file,
				Line:  pyast.Line(assign),
			}, true
		}
	}
	return review.ConfigSignal{}, false
}

func isConstant(n *sitter.Node) bool {
	switch n.Type() {
	case "string", "integer", "float", "true", "false", "none":
		return true
	default:
		return false
	}
}

// Migration scanning works over raw text: migration files are treated as
// semi-opaque, pattern-searched rather than parsed.
var (
	migrationOpRe  = regexp.MustCompile(`op\.(\w+)`)
	downRevisionRe = regexp.MustCompile(`down_revision\s*=\s*['"]([^'"]+)['"]`)
)

const (
	upgradeMarker   = "def upgrade():"
	downgradeMarker = "def downgrade():"
)

// Migration builds a MigrationRecord from raw migration file text.
func Migration(content []byte, file string) review.MigrationRecord {
	text := string(content)
	rec := review.MigrationRecord{
		Version:      strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)),
		File:         file,
		HasUpgrade:   strings.Contains(text, upgradeMarker),
		HasDowngrade: strings.Contains(text, downgradeMarker),
	}

	seen := map[string]bool{}
	for _, m := range migrationOpRe.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			rec.Operations = append(rec.Operations, m[1])
		}
	}
	for _, m := range downRevisionRe.FindAllStringSubmatch(text, -1) {
		rec.Dependencies = append(rec.Dependencies, m[1])
	}
	return rec
}
