package review

import "regexp"

// Options configures rule evaluation. It is owned by this package so rule
// packages never depend on the CLI configuration layer; internal/config maps
// the loaded .freview.yaml onto it.
type Options struct {
	// ClassNamePattern validates model class names.
	ClassNamePattern string
	// TableNamePattern validates __tablename__ values.
	TableNamePattern string

	// SkipRules contains rule IDs to skip entirely.
	SkipRules map[string]bool

	// ErrorAsWarning downgrades error findings to warnings.
	ErrorAsWarning bool
	// WarningAsError upgrades warning findings to errors.
	WarningAsError bool

	// MaxFindingsPerFile caps the findings recorded under one report key.
	// Zero means unlimited.
	MaxFindingsPerFile int

	// ShowSuccess controls whether success findings are emitted.
	ShowSuccess bool

	// CheckReprMethods enables the __repr__ presence check.
	CheckReprMethods bool
	// CheckStrMethods enables the __str__ presence check.
	CheckStrMethods bool
	// RequireDocstrings escalates the missing-docstring finding to a warning.
	RequireDocstrings bool

	classNameRe *regexp.Regexp
	tableNameRe *regexp.Regexp
}

// Default naming convention patterns.
const (
	DefaultClassNamePattern = `^[A-Z][a-zA-Z0-9]+$`
	DefaultTableNamePattern = `^[a-z][a-z0-9_]*$`
)

// DefaultOptions returns the built-in defaults used when no configuration is
// present or the configuration input is malformed.
func DefaultOptions() *Options {
	return &Options{
		ClassNamePattern:   DefaultClassNamePattern,
		TableNamePattern:   DefaultTableNamePattern,
		SkipRules:          map[string]bool{},
		MaxFindingsPerFile: 50,
		ShowSuccess:        true,
		CheckReprMethods:   true,
		CheckStrMethods:    true,
	}
}

// Skipped reports whether the rule ID is in the skip set.
func (o *Options) Skipped(ruleID string) bool {
	return o != nil && o.SkipRules[ruleID]
}

// ClassNameRegexp returns the compiled class-name pattern, falling back to
// the default when the configured pattern does not compile.
func (o *Options) ClassNameRegexp() *regexp.Regexp {
	if o.classNameRe == nil {
		o.classNameRe = compileOr(o.ClassNamePattern, DefaultClassNamePattern)
	}
	return o.classNameRe
}

// TableNameRegexp returns the compiled table-name pattern, falling back to
// the default when the configured pattern does not compile.
func (o *Options) TableNameRegexp() *regexp.Regexp {
	if o.tableNameRe == nil {
		o.tableNameRe = compileOr(o.TableNamePattern, DefaultTableNamePattern)
	}
	return o.tableNameRe
}

// Escalate applies the configured severity overrides to a finding severity.
func (o *Options) Escalate(sev Severity) Severity {
	if o == nil {
		return sev
	}
	if o.ErrorAsWarning && sev == SeverityError {
		return SeverityWarning
	}
	if o.WarningAsError && sev == SeverityWarning {
		return SeverityError
	}
	return sev
}

func compileOr(pattern, fallback string) *regexp.Regexp {
	if pattern != "" {
		if re, err := regexp.Compile(pattern); err == nil {
			return re
		}
	}
	return regexp.MustCompile(fallback)
}
