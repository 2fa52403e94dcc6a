// Package output provides rendering for CLI results. The renderer adapts to
// the requested mode: styled text for terminals, markdown for piped output,
// and JSON for scripting.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Chatelo/freview/pkg/review"
)

// Mode selects the output format.
type Mode string

const (
	ModeAuto     Mode = ""
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Styles used across commands.
var (
	TitleStyle    = lipgloss.NewStyle().Bold(true)
	PathStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	SuccessStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	WarningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	InfoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	HintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	SecurityStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	MutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// SeverityStyle returns the style for a finding severity.
func SeverityStyle(sev review.Severity) lipgloss.Style {
	switch sev {
	case review.SeverityError:
		return ErrorStyle
	case review.SeverityWarning:
		return WarningStyle
	case review.SeverityInfo:
		return InfoStyle
	case review.SeverityHint:
		return HintStyle
	case review.SeveritySuccess:
		return SuccessStyle
	case review.SeveritySecurity:
		return SecurityStyle
	default:
		return lipgloss.NewStyle()
	}
}

// Renderer writes command output in the configured mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
}

// NewRenderer creates a renderer.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return &Renderer{out: out, errOut: errOut, mode: mode}
}

// EffectiveMode resolves ModeAuto to a concrete mode.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode == ModeAuto {
		return ModeText
	}
	return r.mode
}

// Out returns the output writer.
func (r *Renderer) Out() io.Writer {
	return r.out
}

// Printf writes formatted output.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Println writes a line of output.
func (r *Renderer) Println(args ...any) {
	_, _ = fmt.Fprintln(r.out, args...)
}

// Warning writes a styled warning line to the error stream.
func (r *Renderer) Warning(msg string) {
	_, _ = fmt.Fprintln(r.errOut, WarningStyle.Render("⚠️  "+msg))
}

// Error writes a styled error line to the error stream.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, ErrorStyle.Render("❌ "+msg))
}

// JSON writes a value as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Finding renders one finding as a styled bullet line.
func (r *Renderer) Finding(f review.Finding) {
	line := "- " + f.String()
	if r.EffectiveMode() == ModeText {
		line = "- " + SeverityStyle(f.Severity).Render(f.String())
	}
	r.Println(line)
}

// FormatHeader renders a markdown-style header.
func FormatHeader(level int, text string) string {
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue renders a "key: value" pair.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("%s: %s", TitleStyle.Render(key), value)
}
