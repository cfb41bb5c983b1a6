// Package diagnostic provides error reporting for the semantic checks.
//
// Diagnostics carry byte-accurate source positions and stable codes so host
// tooling can match on them. The checks append to a DiagnosticList; the list
// never aborts processing, matching a front end that keeps analyzing after
// the first error.
package diagnostic

import (
	"fmt"
	"strings"

	"codeberg.org/saruga/mustuse/internal/sourcepos"
)

// Severity represents the severity level of a diagnostic.
type Severity uint8

const (
	// Error prevents successful compilation.
	Error Severity = iota
	// Warning is a non-blocking issue.
	Warning
	// Note provides additional context for another diagnostic.
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// Position represents a position in source code.
type Position struct {
	Offset int // Byte offset (0-based)
	Line   int // Line number (1-based)
	Column int // Column number (1-based)
}

// Range represents a range in source code.
type Range struct {
	Start Position
	End   Position
}

// RelatedInfo provides additional location information for a diagnostic.
type RelatedInfo struct {
	Range   Range
	Message string
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	Severity Severity
	Code     string // Error code (e.g., "E0901")
	Message  string // Human-readable message
	Range    Range  // Source location
	Related  []RelatedInfo
}

// Error returns a formatted error string.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Range.Start.Line, d.Range.Start.Column, d.Severity, d.Message)
}

// DiagnosticList collects diagnostics during semantic analysis.
type DiagnosticList struct {
	diagnostics []Diagnostic
	lineIndex   *sourcepos.LineIndex
	source      string
	hasErrors   bool
}

// NewDiagnosticList creates a new diagnostic list for the given source.
func NewDiagnosticList(source string) *DiagnosticList {
	return &DiagnosticList{
		diagnostics: make([]Diagnostic, 0),
		lineIndex:   sourcepos.NewLineIndex(source),
		source:      source,
	}
}

// Add adds a diagnostic to the list.
func (dl *DiagnosticList) Add(d Diagnostic) {
	dl.diagnostics = append(dl.diagnostics, d)
	if d.Severity == Error {
		dl.hasErrors = true
	}
}

// AddError adds an error diagnostic at the given byte offset.
func (dl *DiagnosticList) AddError(offset int, message string) {
	dl.Add(Diagnostic{
		Severity: Error,
		Message:  message,
		Range:    dl.MakeRange(offset, offset+1),
	})
}

// AddErrorWithCode adds an error diagnostic with an error code.
func (dl *DiagnosticList) AddErrorWithCode(offset int, code, message string) {
	dl.Add(Diagnostic{
		Severity: Error,
		Code:     code,
		Message:  message,
		Range:    dl.MakeRange(offset, offset+1),
	})
}

// AddWarning adds a warning diagnostic at the given byte offset.
func (dl *DiagnosticList) AddWarning(offset int, message string) {
	dl.Add(Diagnostic{
		Severity: Warning,
		Message:  message,
		Range:    dl.MakeRange(offset, offset+1),
	})
}

// AddNote adds a note diagnostic at the given byte offset.
func (dl *DiagnosticList) AddNote(offset int, message string) {
	dl.Add(Diagnostic{
		Severity: Note,
		Message:  message,
		Range:    dl.MakeRange(offset, offset+1),
	})
}

// MakePosition converts a byte offset to a Position.
func (dl *DiagnosticList) MakePosition(offset int) Position {
	line, col := dl.lineIndex.ByteOffsetToLineColumn(offset)
	return Position{
		Offset: offset,
		Line:   line + 1, // Convert to 1-based
		Column: col + 1,  // Convert to 1-based
	}
}

// MakeRange converts byte offsets to a Range.
func (dl *DiagnosticList) MakeRange(start, end int) Range {
	return Range{
		Start: dl.MakePosition(start),
		End:   dl.MakePosition(end),
	}
}

// HasErrors returns true if there are any error-level diagnostics.
func (dl *DiagnosticList) HasErrors() bool {
	return dl.hasErrors
}

// Diagnostics returns all collected diagnostics.
func (dl *DiagnosticList) Diagnostics() []Diagnostic {
	return dl.diagnostics
}

// Errors returns only error-level diagnostics.
func (dl *DiagnosticList) Errors() []Diagnostic {
	var errors []Diagnostic
	for _, d := range dl.diagnostics {
		if d.Severity == Error {
			errors = append(errors, d)
		}
	}
	return errors
}

// Count returns the total number of diagnostics.
func (dl *DiagnosticList) Count() int {
	return len(dl.diagnostics)
}

// ErrorCount returns the number of error-level diagnostics.
func (dl *DiagnosticList) ErrorCount() int {
	count := 0
	for _, d := range dl.diagnostics {
		if d.Severity == Error {
			count++
		}
	}
	return count
}

// Format formats all diagnostics as a human-readable string.
func (dl *DiagnosticList) Format() string {
	if len(dl.diagnostics) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, d := range dl.diagnostics {
		sb.WriteString(dl.FormatDiagnostic(&d))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatDiagnostic formats a single diagnostic with source context.
func (dl *DiagnosticList) FormatDiagnostic(d *Diagnostic) string {
	var sb strings.Builder

	// Main error line
	sb.WriteString(fmt.Sprintf("%d:%d: %s: %s\n",
		d.Range.Start.Line, d.Range.Start.Column, d.Severity, d.Message))

	// Add source context
	sourceLine := dl.getSourceLine(d.Range.Start.Line)
	if sourceLine != "" {
		sb.WriteString(fmt.Sprintf("    %s\n", sourceLine))
		// Add caret indicator
		caret := strings.Repeat(" ", d.Range.Start.Column-1+4) + "^"
		if d.Range.End.Line == d.Range.Start.Line && d.Range.End.Column > d.Range.Start.Column {
			caret += strings.Repeat("~", d.Range.End.Column-d.Range.Start.Column-1)
		}
		sb.WriteString(caret)
		sb.WriteByte('\n')
	}

	// Add related info
	for _, rel := range d.Related {
		sb.WriteString(fmt.Sprintf("  %d:%d: note: %s\n",
			rel.Range.Start.Line, rel.Range.Start.Column, rel.Message))
	}

	return sb.String()
}

// getSourceLine returns the source code line at the given 1-based line number.
func (dl *DiagnosticList) getSourceLine(line int) string {
	if line < 1 {
		return ""
	}
	lines := strings.Split(dl.source, "\n")
	if line > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[line-1], "\r")
}

// Clear removes all diagnostics.
func (dl *DiagnosticList) Clear() {
	dl.diagnostics = dl.diagnostics[:0]
	dl.hasErrors = false
}

// DiagnosticCode defines standard error codes.
type DiagnosticCode string

const (
	// Attribute placement errors (E09xx)

	// CodeDiscardedMustUse: the value of a must-use struct or union type
	// was discarded by an expression statement.
	CodeDiscardedMustUse DiagnosticCode = "E0901"
	// CodeReservedMustUse: the must-use marker was attached to a
	// declaration kind on which its meaning is reserved.
	CodeReservedMustUse DiagnosticCode = "E0902"
)

// DiagnosticFilter controls which diagnostics are reported.
type DiagnosticFilter struct {
	// Rules maps diagnostic rule names to their severity override.
	Rules map[string]Severity
}

// NewDiagnosticFilter creates a new filter with default settings.
func NewDiagnosticFilter() *DiagnosticFilter {
	return &DiagnosticFilter{
		Rules: make(map[string]Severity),
	}
}

// SetRule sets the severity for a diagnostic rule.
func (f *DiagnosticFilter) SetRule(rule string, severity Severity) {
	f.Rules[rule] = severity
}

// DisableRule disables a diagnostic rule.
func (f *DiagnosticFilter) DisableRule(rule string) {
	// Sentinel value to indicate disabled
	f.Rules[rule] = Severity(255)
}

// IsDisabled returns true if the rule is disabled.
func (f *DiagnosticFilter) IsDisabled(rule string) bool {
	if sev, ok := f.Rules[rule]; ok {
		return sev == Severity(255)
	}
	return false
}

// Standard diagnostic rules.
const (
	RuleDiscardedMustUse = "discarded_must_use"
	RuleReservedMustUse  = "reserved_must_use"
)
