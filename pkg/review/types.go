// Package review defines the core data model for freview: the entity records
// produced by extraction, the findings produced by rule evaluation, and the
// report mapping handed to the output writers.
package review

import "strings"

// =============================================================================
// Findings
// =============================================================================

// Finding represents one reported diagnostic, scoped to a file or to a
// synthetic project-level key. Findings are append-only, ordered by
// discovery, and never deduplicated.
type Finding struct {
	RuleID   string   `json:"rule_id,omitempty"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	File     string   `json:"file,omitempty"`
	Line     int      `json:"line,omitempty"`
}

// String renders the finding with its fixed severity marker prefix.
func (f Finding) String() string {
	return f.Severity.Marker() + " " + f.Message
}

// Report maps a file path (or a synthetic project-level key such as
// KeyAPIArchitecture) to the ordered findings for that key.
type Report map[string][]Finding

// Synthetic project-level report keys.
const (
	KeyProject         = "PROJECT"
	KeyAPIAnalysis     = "API_ANALYSIS"
	KeyAPIArchitecture = "API_ARCHITECTURE"
	KeyMigrations      = "MIGRATIONS"
	KeyDatabaseConfig  = "DATABASE_CONFIG"
	KeyDatabaseUsage   = "DATABASE_USAGE"
	KeyQueryPatterns   = "QUERY_OPTIMIZATION"
)

// Add appends findings to a key, preserving discovery order.
func (r Report) Add(key string, findings ...Finding) {
	if len(findings) == 0 {
		return
	}
	r[key] = append(r[key], findings...)
}

// Total returns the total number of findings across all keys.
func (r Report) Total() int {
	n := 0
	for _, fs := range r {
		n += len(fs)
	}
	return n
}

// CountBySeverity returns the number of findings with the given severity.
func (r Report) CountBySeverity(sev Severity) int {
	n := 0
	for _, fs := range r {
		for _, f := range fs {
			if f.Severity == sev {
				n++
			}
		}
	}
	return n
}

// =============================================================================
// Entity records
// =============================================================================

// RouteRecord identifies one Flask request-handler declaration.
// Records are immutable after extraction.
type RouteRecord struct {
	Name          string   // handler function name
	Path          string   // path pattern, "/" when the decorator carried none
	Methods       []string // never empty, defaults to [GET]
	Blueprint     string   // owning blueprint name, empty when unscoped
	HasDocstring  bool
	HasErrorCheck bool // any try/except in the handler body
	HasValidation bool // any call matching the validation vocabulary
	HasAuth       bool // any call matching the authentication vocabulary
	Line          int
	Decorators    []string // raw decorator text
}

// IsGETOnly reports whether the method set is exactly {GET}.
func (r RouteRecord) IsGETOnly() bool {
	return len(r.Methods) == 1 && r.Methods[0] == "GET"
}

// HasMethod reports whether the route declares the given HTTP method.
func (r RouteRecord) HasMethod(method string) bool {
	for _, m := range r.Methods {
		if m == method {
			return true
		}
	}
	return false
}

// BlueprintRecord identifies one Flask blueprint construction.
// Blueprints without an extractable literal name are discarded during
// extraction, never recorded.
type BlueprintRecord struct {
	Name      string
	URLPrefix string
	Routes    []RouteRecord
	File      string
	Line      int
}

// ModelRecord identifies one SQLAlchemy model class declaration.
type ModelRecord struct {
	Name          string
	File          string
	HasTablename  bool
	Tablename     string
	HasPrimaryKey bool
	HasColumns    bool
	Relationships []string // declared relationship targets, unresolved
	ForeignKeys   []string // declared foreign-key targets, unresolved
	BaseClasses   []string
	Methods       []string
	Line          int
}

// MigrationRecord identifies one Alembic migration script. Migration files
// are treated as semi-opaque: fields come from raw text search, not parsing.
type MigrationRecord struct {
	Version      string // file stem
	File         string
	HasUpgrade   bool
	HasDowngrade bool
	Operations   []string
	Dependencies []string
}

// ConfigSignal is a configuration assignment whose name matches the database
// configuration vocabulary (DATABASE, DB, SQL, URI, POOL).
type ConfigSignal struct {
	Key   string // upper-cased assignment target
	Value string // literal value as written
	File  string
	Line  int
}

// UsageRecord summarizes database usage observed in one file.
type UsageRecord struct {
	File         string
	QueryCalls   []string // calls matching the query vocabulary
	Transactions []string // calls matching the transaction vocabulary
	Signals      []ConfigSignal
}

// =============================================================================
// Import sets
// =============================================================================

// ImportSet tracks the module and name imports seen in one file.
type ImportSet map[string]struct{}

// NewImportSet creates an empty import set.
func NewImportSet() ImportSet {
	return make(ImportSet)
}

// Add records an imported name.
func (s ImportSet) Add(name string) {
	s[name] = struct{}{}
}

// ContainsSubstring reports whether any recorded import contains the given
// substring, case-insensitively.
func (s ImportSet) ContainsSubstring(sub string) bool {
	sub = strings.ToLower(sub)
	for name := range s {
		if strings.Contains(strings.ToLower(name), sub) {
			return true
		}
	}
	return false
}
