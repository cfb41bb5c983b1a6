// Package api provides the public API for the must-use checker.
//
// This package is intended for programmatic use. For CLI usage, see
// cmd/mustusecheck.
package api

import (
	"codeberg.org/saruga/mustuse/internal/ast"
	"codeberg.org/saruga/mustuse/internal/check"
	"codeberg.org/saruga/mustuse/internal/diagnostic"
	"codeberg.org/saruga/mustuse/internal/loader"
)

// Options controls check behavior.
type Options struct {
	// DisabledRules lists diagnostic rules that should not be reported.
	// Known rules: "discarded_must_use", "reserved_must_use".
	DisabledRules []string
}

// Issue is one reported problem.
type Issue struct {
	// Code is the stable diagnostic code, e.g. "E0901".
	Code string

	// Message is the human-readable description.
	Message string

	// Line and Column are 1-based positions into the module's source.
	Line   int
	Column int
}

// Result contains the check output for one module.
type Result struct {
	// Valid is true if no errors were found.
	Valid bool

	// Issues lists every reported problem in emission order.
	Issues []Issue

	// Formatted is the human-readable diagnostic listing with source
	// context, empty when there are no diagnostics.
	Formatted string
}

// CheckFile loads a module description from a YAML file and checks it.
func CheckFile(path string, opts Options) (Result, error) {
	module, err := loader.LoadFile(path)
	if err != nil {
		return Result{}, err
	}
	return CheckModule(module, opts), nil
}

// CheckModule checks an already-built module.
func CheckModule(module *ast.Module, opts Options) Result {
	filter := diagnostic.NewDiagnosticFilter()
	for _, rule := range opts.DisabledRules {
		filter.DisableRule(rule)
	}

	res := check.Check(module, check.Options{DiagnosticFilters: filter})

	out := Result{
		Valid:     res.Valid,
		Formatted: res.Diagnostics.Format(),
	}
	for _, d := range res.Diagnostics.Diagnostics() {
		out.Issues = append(out.Issues, Issue{
			Code:    d.Code,
			Message: d.Message,
			Line:    d.Range.Start.Line,
			Column:  d.Range.Start.Column,
		})
	}
	return out
}
