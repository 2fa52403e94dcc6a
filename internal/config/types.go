// Package config provides shared configuration types for freview. This
// package is decoupled from CLI concerns so the watch mode and other tools
// can load project configuration directly.
package config

import "github.com/Chatelo/freview/pkg/review"

// Config holds the full freview configuration.
type Config struct {
	// Output selects the renderer: text, markdown, or json.
	Output string `koanf:"output" yaml:"output"`

	// ReportFile is the path reports are written to with --save.
	ReportFile string `koanf:"report_file" yaml:"report_file"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose" yaml:"verbose"`

	// ShowSuccess includes success findings in the report.
	ShowSuccess bool `koanf:"show_success" yaml:"show_success"`

	// Rules tunes rule behavior.
	Rules RulesConfig `koanf:"rules" yaml:"rules"`
}

// RulesConfig holds rule configuration.
type RulesConfig struct {
	// Skip contains rule IDs to disable.
	Skip []string `koanf:"skip" yaml:"skip"`

	// ClassNamePattern overrides the model class naming convention.
	ClassNamePattern string `koanf:"class_name_pattern" yaml:"class_name_pattern"`

	// TableNamePattern overrides the table naming convention.
	TableNamePattern string `koanf:"table_name_pattern" yaml:"table_name_pattern"`

	// ErrorAsWarning downgrades error findings to warnings.
	ErrorAsWarning bool `koanf:"error_as_warning" yaml:"error_as_warning"`

	// WarningAsError upgrades warning findings to errors.
	WarningAsError bool `koanf:"warning_as_error" yaml:"warning_as_error"`

	// MaxFindingsPerFile caps findings reported per file (0 = unlimited).
	MaxFindingsPerFile int `koanf:"max_findings_per_file" yaml:"max_findings_per_file"`

	// CheckReprMethods suggests __repr__ on models lacking one.
	CheckReprMethods bool `koanf:"check_repr_methods" yaml:"check_repr_methods"`

	// CheckStrMethods suggests __str__ on models lacking one.
	CheckStrMethods bool `koanf:"check_str_methods" yaml:"check_str_methods"`

	// RequireDocstrings escalates missing route docstrings to warnings.
	RequireDocstrings bool `koanf:"require_docstrings" yaml:"require_docstrings"`
}

// ToOptions converts the configuration into rule evaluation options.
func (c *Config) ToOptions() *review.Options {
	opts := review.DefaultOptions()
	opts.ShowSuccess = c.ShowSuccess
	for _, id := range c.Rules.Skip {
		opts.SkipRules[id] = true
	}
	if c.Rules.ClassNamePattern != "" {
		opts.ClassNamePattern = c.Rules.ClassNamePattern
	}
	if c.Rules.TableNamePattern != "" {
		opts.TableNamePattern = c.Rules.TableNamePattern
	}
	opts.ErrorAsWarning = c.Rules.ErrorAsWarning
	opts.WarningAsError = c.Rules.WarningAsError
	if c.Rules.MaxFindingsPerFile > 0 {
		opts.MaxFindingsPerFile = c.Rules.MaxFindingsPerFile
	}
	opts.CheckReprMethods = c.Rules.CheckReprMethods
	opts.CheckStrMethods = c.Rules.CheckStrMethods
	opts.RequireDocstrings = c.Rules.RequireDocstrings
	return opts
}
