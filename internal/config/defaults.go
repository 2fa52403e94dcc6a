package config

// Default configuration values.
const (
	DefaultOutput     = "text"
	DefaultReportFile = "review_report.md"
)

// Default returns a Config populated with defaults.
func Default() *Config {
	return &Config{
		Output:      DefaultOutput,
		ReportFile:  DefaultReportFile,
		ShowSuccess: true,
		Rules: RulesConfig{
			MaxFindingsPerFile: 50,
			CheckReprMethods:   true,
			CheckStrMethods:    true,
		},
	}
}

// DefaultYAML is the config file written by `freview init`.
const DefaultYAML = `# freview configuration
output: text
report_file: review_report.md
show_success: true

rules:
  # Rule IDs to skip, e.g. [MD09, RT03]
  skip: []

  # Naming conventions
  class_name_pattern: "^[A-Z][a-zA-Z0-9]+$"
  table_name_pattern: "^[a-z][a-z0-9_]*$"

  # Severity adjustments
  error_as_warning: false
  warning_as_error: false

  max_findings_per_file: 50
  check_repr_methods: true
  check_str_methods: true
  require_docstrings: false
`
