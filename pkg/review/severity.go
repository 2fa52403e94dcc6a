package review

import "strings"

// =============================================================================
// Severity
// =============================================================================

// Severity indicates the importance of a review finding.
type Severity int

// Severity levels for findings.
const (
	// SeverityError indicates a broken convention that should be fixed.
	SeverityError Severity = iota
	// SeverityWarning indicates a potential issue that should be reviewed.
	SeverityWarning
	// SeverityInfo indicates informational feedback.
	SeverityInfo
	// SeverityHint indicates a suggestion for improvement.
	SeverityHint
	// SeveritySuccess indicates a convention that is satisfied.
	SeveritySuccess
	// SeveritySecurity indicates a potential security problem.
	SeveritySecurity
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	case SeveritySuccess:
		return "success"
	case SeveritySecurity:
		return "security"
	default:
		return "unknown"
	}
}

// Marker returns the fixed textual prefix used when rendering findings.
// Report writers categorize findings by this prefix without re-deriving
// severity.
func (s Severity) Marker() string {
	switch s {
	case SeverityError:
		return "❌"
	case SeverityWarning:
		return "⚠️"
	case SeverityInfo:
		return "ℹ️"
	case SeverityHint:
		return "💡"
	case SeveritySuccess:
		return "✅"
	case SeveritySecurity:
		return "🔐"
	default:
		return "•"
	}
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityWarning and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(s) {
	case "error":
		return SeverityError, true
	case "warning":
		return SeverityWarning, true
	case "info":
		return SeverityInfo, true
	case "hint":
		return SeverityHint, true
	case "success":
		return SeveritySuccess, true
	case "security":
		return SeveritySecurity, true
	default:
		return SeverityWarning, false
	}
}
