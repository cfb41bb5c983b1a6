// Package check enforces the must-use marker over an elaborated module.
//
// Two checks run at different points of the host pipeline. The reservation
// check runs at declaration time, before a declaration's own analysis
// completes, and rejects the marker on declaration kinds where its meaning
// is reserved. The discard check runs once per expression statement whose
// value would otherwise be silently dropped, and rejects dropping a value
// of a marked struct or union type.
package check

import (
	"fmt"

	"codeberg.org/saruga/mustuse/internal/ast"
	"codeberg.org/saruga/mustuse/internal/attrs"
	"codeberg.org/saruga/mustuse/internal/diagnostic"
	"codeberg.org/saruga/mustuse/internal/ops"
)

// Options controls check behavior.
type Options struct {
	// DiagnosticFilters control which diagnostics are reported.
	DiagnosticFilters *diagnostic.DiagnosticFilter
}

// Result contains the outcome of checking a module.
type Result struct {
	// Valid is true if no errors were found.
	Valid bool
	// Diagnostics contains all messages, in emission order.
	Diagnostics *diagnostic.DiagnosticList
}

// Checker runs the must-use checks against one module.
type Checker struct {
	module  *ast.Module
	diags   *diagnostic.DiagnosticList
	options Options
}

// New creates a checker for the given module.
func New(module *ast.Module, options Options) *Checker {
	if options.DiagnosticFilters == nil {
		options.DiagnosticFilters = diagnostic.NewDiagnosticFilter()
	}
	return &Checker{
		module:  module,
		diags:   diagnostic.NewDiagnosticList(module.Source),
		options: options,
	}
}

// Check runs both passes over a whole module, the way the host pipeline
// would drive them: the reservation check once per declaration, then the
// discard check once per expression statement in every function body.
func Check(module *ast.Module, options Options) *Result {
	c := New(module, options)

	for i := range module.Decls {
		c.CheckReserved(ast.MakeRef(uint32(i)))
	}

	for i := range module.Decls {
		d := &module.Decls[i]
		if d.Kind == ast.DeclFunction && d.Body != nil {
			c.checkStmts(d.Body.Stmts, module.Scope)
		}
	}

	return &Result{
		Valid:       !c.diags.HasErrors(),
		Diagnostics: c.diags,
	}
}

// Diagnostics returns the checker's diagnostic sink.
func (c *Checker) Diagnostics() *diagnostic.DiagnosticList {
	return c.diags
}

// ----------------------------------------------------------------------------
// Discard Check
// ----------------------------------------------------------------------------

// CheckDiscard decides whether discarding the value of an expression
// statement is allowed. Returns true when discarding is fine and false when
// a diagnostic was reported.
//
// Assignments and increments/decrements legitimately discard their nominal
// result. For everything else the expression's resolved type decides: only
// a struct or union declaration carrying the must-use marker is an error.
// An expression statement with no resolved type is a bug in the caller, not
// a user error, and panics.
func (c *Checker) CheckDiscard(expr ast.Expr, scope *ast.Scope) bool {
	if ops.IsAssignment(c.module, expr) || ops.IsIncrementOrDecrement(c.module, expr) {
		return true
	}

	t := expr.Type()
	if t == nil {
		panic(fmt.Sprintf("check: expression statement %T has no resolved type", expr))
	}

	ref, ok := c.module.ResolveTypeDecl(t, scope)
	if !ok {
		return true
	}
	decl := c.module.Decl(ref)
	if decl == nil {
		return true
	}
	if decl.Kind != ast.DeclStruct && decl.Kind != ast.DeclUnion {
		// The marker only has meaning on struct and union types.
		return true
	}
	if !attrs.Has(c.module, ref, scope) {
		return true
	}

	if c.options.DiagnosticFilters.IsDisabled(diagnostic.RuleDiscardedMustUse) {
		return true
	}
	c.errorWithCode(ast.ExprLoc(expr), diagnostic.CodeDiscardedMustUse,
		"ignored value of `%s` type `%s`; prepend a `cast(void)` to discard value silently",
		attrs.MarkerDisplayName, decl.QualifiedName)
	return false
}

// ----------------------------------------------------------------------------
// Reservation Check
// ----------------------------------------------------------------------------

// CheckReserved rejects the must-use marker on declaration kinds for which
// its meaning is reserved: functions, classes, and enums. The declaration
// is marked erroneous so downstream passes do not trust its attributes; the
// erroneous mark is applied even when reporting of the rule is disabled.
//
// This runs before the declaration's own analysis completes, so it inspects
// the raw attribute expressions directly instead of going through the
// resolved attribute query.
func (c *Checker) CheckReserved(declRef ast.Ref) {
	decl := c.module.Decl(declRef)
	if decl == nil || decl.Attributes == nil {
		return
	}

	for _, attr := range decl.Attributes.Attrs {
		if !attrs.IsMarkerExpr(c.module, attr, c.module.Scope) {
			continue
		}
		report := !c.options.DiagnosticFilters.IsDisabled(diagnostic.RuleReservedMustUse)
		switch decl.Kind {
		case ast.DeclFunction:
			if report {
				c.errorWithCode(decl.Loc, diagnostic.CodeReservedMustUse,
					"`%s` on functions is reserved for future use",
					attrs.MarkerDisplayName)
			}
			decl.Erroneous = true
		case ast.DeclClass, ast.DeclEnum:
			if report {
				c.errorWithCode(decl.Loc, diagnostic.CodeReservedMustUse,
					"`%s` on `%s` types is reserved for future use",
					attrs.MarkerDisplayName, decl.Kind)
			}
			decl.Erroneous = true
		}
	}
}

// ----------------------------------------------------------------------------
// Statement Walk
// ----------------------------------------------------------------------------

func (c *Checker) checkStmts(stmts []ast.Stmt, scope *ast.Scope) {
	for _, stmt := range stmts {
		c.checkStmt(stmt, scope)
	}
}

func (c *Checker) checkStmt(stmt ast.Stmt, scope *ast.Scope) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		c.CheckDiscard(s.Expr, scope)
	case *ast.CompoundStmt:
		c.checkStmts(s.Stmts, ast.NewScope(scope))
	case *ast.IfStmt:
		if s.Body != nil {
			c.checkStmts(s.Body.Stmts, ast.NewScope(scope))
		}
		if s.Else != nil {
			c.checkStmt(s.Else, scope)
		}
	}
	// DeclStmt and ReturnStmt never discard a value.
}

func (c *Checker) errorWithCode(loc ast.Loc, code diagnostic.DiagnosticCode, format string, args ...interface{}) {
	c.diags.AddErrorWithCode(int(loc.Start), string(code), fmt.Sprintf(format, args...))
}
