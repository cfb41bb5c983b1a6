// Package ops classifies elaborated expressions by operator identity.
//
// Assignment and increment/decrement are overloadable, so a structural tag
// check is not enough: by the time these passes run, an overloaded `a += b`
// is a plain call to a function named opAddAssign, and an overloaded postfix
// `a++` has been desugared into a comma sequence. The classifier therefore
// recognizes both the built-in tags and the specific overload call shapes,
// by exact identifier and literal match against a fixed vocabulary.
package ops

import "codeberg.org/saruga/mustuse/internal/ast"

// assignOverloadNames is the closed set of operator-overload identifiers
// that denote assignment. Matching is exact; no prefix or pattern matching.
var assignOverloadNames = map[string]bool{
	"opAssign":        true,
	"opAddAssign":     true,
	"opSubAssign":     true,
	"opMulAssign":     true,
	"opDivAssign":     true,
	"opModAssign":     true,
	"opAndAssign":     true,
	"opOrAssign":      true,
	"opXorAssign":     true,
	"opShlAssign":     true,
	"opShrAssign":     true,
	"opUshrAssign":    true,
	"opCatAssign":     true,
	"opPowAssign":     true,
	"opIndexAssign":   true,
	"opSliceAssign":   true,
	"opOpAssign":      true,
	"opIndexOpAssign": true,
	"opSliceOpAssign": true,
}

// unaryOverloadName is the identifier of the unary operator-overload
// template; its instantiation argument selects the operator.
const unaryOverloadName = "opUnary"

// IsAssignment reports whether an expression semantically denotes an
// assignment, either through a built-in assignment form or through a call
// to an assignment operator overload.
//
// A call with no resolved target (an indirect call) is never an assignment,
// even if the callee value originated from a same-named function.
func IsAssignment(m *ast.Module, expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.AssignExpr, *ast.IndexAssignExpr, *ast.SliceAssignExpr:
		return true
	case *ast.CallExpr:
		decl := m.Decl(e.Target)
		if decl == nil {
			return false
		}
		return decl.Kind == ast.DeclFunction && assignOverloadNames[decl.Name]
	default:
		return false
	}
}

// IsIncrementOrDecrement reports whether an expression semantically denotes
// an increment or decrement. Three shapes qualify:
//
//  1. the built-in prefix/postfix forms;
//  2. a call to opUnary instantiated with the single string template
//     argument "++" or "--" (overloaded prefix form);
//  3. the desugared overloaded postfix form, a comma sequence of the shape
//     ((tmp = a, <prefix form>), tmp), recognized by extracting the middle
//     effect and recursing on it.
//
// Any other comma shape is not an increment or decrement.
func IsIncrementOrDecrement(m *ast.Module, expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.IncrDecrExpr:
		return true
	case *ast.CallExpr:
		return isUnaryIncDecOverload(m, e)
	case *ast.CommaExpr:
		inner, ok := e.Left.(*ast.CommaExpr)
		if !ok {
			return false
		}
		return IsIncrementOrDecrement(m, inner.Right)
	default:
		return false
	}
}

// isUnaryIncDecOverload matches a resolved call to opUnary!"++" or
// opUnary!"--". The template argument is compared by string content.
func isUnaryIncDecOverload(m *ast.Module, call *ast.CallExpr) bool {
	decl := m.Decl(call.Target)
	if decl == nil || decl.Kind != ast.DeclFunction || decl.Name != unaryOverloadName {
		return false
	}
	if len(call.TemplateArgs) != 1 {
		return false
	}
	lit, ok := call.TemplateArgs[0].(*ast.StringLit)
	if !ok {
		return false
	}
	return lit.Value == "++" || lit.Value == "--"
}
