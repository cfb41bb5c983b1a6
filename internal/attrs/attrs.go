// Package attrs answers attribute queries over declarations.
//
// The only attribute with semantic weight here is the must-use marker, the
// enum declared as core.attribute.mustuse. Recognition is by exact symbol
// identity: a type reference in an attribute block matches only if it
// resolves to an enum declaration with that exact qualified name.
package attrs

import (
	"codeberg.org/saruga/mustuse/internal/ast"
	"codeberg.org/saruga/mustuse/internal/types"
)

// MarkerQualifiedName is the stable identity of the must-use marker enum.
const MarkerQualifiedName = "core.attribute.mustuse"

// MarkerDisplayName is how the marker is spelled in diagnostics.
const MarkerDisplayName = "@mustuse"

// IsMarkerExpr reports whether an attribute expression denotes the must-use
// marker. Only a type reference resolving to the marker enum matches; type
// references to non-enum declarations and all other expression shapes do not.
func IsMarkerExpr(m *ast.Module, expr ast.Expr, scope *ast.Scope) bool {
	tref, ok := expr.(*ast.TypeRefExpr)
	if !ok {
		return false
	}
	named, ok := tref.ReferencedType().(*types.Named)
	if !ok {
		return false
	}
	if named.QualifiedName != MarkerQualifiedName {
		return false
	}
	ref, ok := m.Lookup(named.QualifiedName, scope)
	if !ok {
		return false
	}
	decl := m.Decl(ref)
	return decl != nil && decl.Kind == ast.DeclEnum
}

// Has reports whether a declaration carries the must-use marker.
//
// The attribute block is scanned in declaration order and the scan stops at
// the first match. Only the attribute expressions themselves are resolved;
// the declaration's own analysis state is not consulted, so this is safe to
// call while that declaration is still StateInProgress.
func Has(m *ast.Module, declRef ast.Ref, scope *ast.Scope) bool {
	decl := m.Decl(declRef)
	if decl == nil || decl.Attributes == nil {
		return false
	}
	for _, attr := range decl.Attributes.Attrs {
		if IsMarkerExpr(m, attr, scope) {
			return true
		}
	}
	return false
}
