package ops

import (
	"testing"

	"codeberg.org/saruga/mustuse/internal/ast"
)

// declareFunc registers a function declaration and returns its handle.
func declareFunc(m *ast.Module, name string) ast.Ref {
	return m.AddDecl(ast.Decl{
		Kind:          ast.DeclFunction,
		Name:          name,
		QualifiedName: "app." + name,
	})
}

func TestIsAssignmentBuiltinForms(t *testing.T) {
	m := ast.NewModule("app")

	allOps := []ast.AssignOp{
		ast.AssignSimple, ast.AssignAdd, ast.AssignSub, ast.AssignMul,
		ast.AssignDiv, ast.AssignMod, ast.AssignAnd, ast.AssignOr,
		ast.AssignXor, ast.AssignShl, ast.AssignShr, ast.AssignUshr,
		ast.AssignCat, ast.AssignPow,
	}
	for _, op := range allOps {
		if !IsAssignment(m, &ast.AssignExpr{Op: op}) {
			t.Errorf("AssignExpr with op %d should classify as assignment", op)
		}
	}

	if !IsAssignment(m, &ast.IndexAssignExpr{}) {
		t.Error("index assignment should classify as assignment")
	}
	if !IsAssignment(m, &ast.SliceAssignExpr{}) {
		t.Error("slice assignment should classify as assignment")
	}
}

func TestIsAssignmentOverloadCalls(t *testing.T) {
	m := ast.NewModule("app")

	names := []string{
		"opAssign", "opAddAssign", "opSubAssign", "opMulAssign",
		"opDivAssign", "opModAssign", "opAndAssign", "opOrAssign",
		"opXorAssign", "opShlAssign", "opShrAssign", "opUshrAssign",
		"opCatAssign", "opPowAssign", "opIndexAssign", "opSliceAssign",
		"opOpAssign", "opIndexOpAssign", "opSliceOpAssign",
	}
	for _, name := range names {
		ref := declareFunc(m, name)
		if !IsAssignment(m, &ast.CallExpr{Target: ref}) {
			t.Errorf("call to %s should classify as assignment", name)
		}
	}
}

func TestIsAssignmentRejectsNonOverloads(t *testing.T) {
	m := ast.NewModule("app")
	plain := declareFunc(m, "discard")
	almost := declareFunc(m, "opAssignFoo") // not in the closed set

	tests := []struct {
		name string
		expr ast.Expr
	}{
		{"plain_call", &ast.CallExpr{Target: plain}},
		{"prefix_match_only", &ast.CallExpr{Target: almost}},
		{"unresolved_target", &ast.CallExpr{Target: ast.InvalidRef()}},
		{"binary", &ast.BinaryExpr{Op: ast.BinAdd}},
		{"ident", &ast.IdentExpr{Name: "opAssign"}},
		{"incr", &ast.IncrDecrExpr{Op: ast.PostInc}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if IsAssignment(m, tt.expr) {
				t.Error("expression should not classify as assignment")
			}
		})
	}
}

func TestIsAssignmentOverloadNameOnVariable(t *testing.T) {
	// Same identifier, but the resolved target is a variable, not a
	// function: an indirect call through it is not an assignment.
	m := ast.NewModule("app")
	ref := m.AddDecl(ast.Decl{
		Kind:          ast.DeclVariable,
		Name:          "opAssign",
		QualifiedName: "app.opAssign",
	})

	if IsAssignment(m, &ast.CallExpr{Target: ref}) {
		t.Error("call through a variable named opAssign should not classify")
	}
}

func TestIsIncrementOrDecrementBuiltinForms(t *testing.T) {
	m := ast.NewModule("app")

	for _, op := range []ast.IncrDecrOp{ast.PreInc, ast.PreDec, ast.PostInc, ast.PostDec} {
		if !IsIncrementOrDecrement(m, &ast.IncrDecrExpr{Op: op}) {
			t.Errorf("IncrDecrExpr with op %d should classify", op)
		}
	}
}

func TestIsIncrementOrDecrementUnaryOverload(t *testing.T) {
	m := ast.NewModule("app")
	opUnary := declareFunc(m, "opUnary")
	other := declareFunc(m, "opBinary")

	tests := []struct {
		name string
		expr ast.Expr
		want bool
	}{
		{
			"opUnary_plusplus",
			&ast.CallExpr{Target: opUnary, TemplateArgs: []ast.Expr{&ast.StringLit{Value: "++"}}},
			true,
		},
		{
			"opUnary_minusminus",
			&ast.CallExpr{Target: opUnary, TemplateArgs: []ast.Expr{&ast.StringLit{Value: "--"}}},
			true,
		},
		{
			"opUnary_negate",
			&ast.CallExpr{Target: opUnary, TemplateArgs: []ast.Expr{&ast.StringLit{Value: "-"}}},
			false,
		},
		{
			"opUnary_two_args",
			&ast.CallExpr{Target: opUnary, TemplateArgs: []ast.Expr{
				&ast.StringLit{Value: "++"}, &ast.StringLit{Value: "++"},
			}},
			false,
		},
		{
			"opUnary_non_string_arg",
			&ast.CallExpr{Target: opUnary, TemplateArgs: []ast.Expr{&ast.LiteralExpr{Value: "43"}}},
			false,
		},
		{
			"wrong_callee",
			&ast.CallExpr{Target: other, TemplateArgs: []ast.Expr{&ast.StringLit{Value: "++"}}},
			false,
		},
		{
			"unresolved_callee",
			&ast.CallExpr{Target: ast.InvalidRef(), TemplateArgs: []ast.Expr{&ast.StringLit{Value: "++"}}},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsIncrementOrDecrement(m, tt.expr); got != tt.want {
				t.Errorf("IsIncrementOrDecrement = %v, want %v", got, tt.want)
			}
		})
	}
}

// desugaredPostfix builds the comma shape the front end produces for an
// overloaded postfix increment: ((tmp = a, middle), tmp).
func desugaredPostfix(middle ast.Expr) ast.Expr {
	tmpAssign := &ast.AssignExpr{
		Op:    ast.AssignSimple,
		Left:  &ast.IdentExpr{Name: "__tmp"},
		Right: &ast.IdentExpr{Name: "a"},
	}
	return &ast.CommaExpr{
		Left:  &ast.CommaExpr{Left: tmpAssign, Right: middle},
		Right: &ast.IdentExpr{Name: "__tmp"},
	}
}

func TestIsIncrementOrDecrementDesugaredPostfix(t *testing.T) {
	m := ast.NewModule("app")
	opUnary := declareFunc(m, "opUnary")

	prefixForm := &ast.CallExpr{
		Target:       opUnary,
		TemplateArgs: []ast.Expr{&ast.StringLit{Value: "++"}},
	}
	if !IsIncrementOrDecrement(m, desugaredPostfix(prefixForm)) {
		t.Error("desugared overloaded postfix increment should classify")
	}

	builtinPrefix := &ast.IncrDecrExpr{Op: ast.PreInc}
	if !IsIncrementOrDecrement(m, desugaredPostfix(builtinPrefix)) {
		t.Error("desugared postfix wrapping a built-in prefix form should classify")
	}
}

func TestDesugaredPostfixShapeIsExact(t *testing.T) {
	m := ast.NewModule("app")

	// Middle effect is an unrelated call: not an increment.
	unrelated := &ast.CallExpr{Target: ast.InvalidRef()}
	if IsIncrementOrDecrement(m, desugaredPostfix(unrelated)) {
		t.Error("comma shape with unrelated middle effect should not classify")
	}

	// Outer comma whose left operand is not itself a comma: not the shape.
	flat := &ast.CommaExpr{
		Left:  &ast.IncrDecrExpr{Op: ast.PreInc},
		Right: &ast.IdentExpr{Name: "__tmp"},
	}
	if IsIncrementOrDecrement(m, flat) {
		t.Error("single-level comma sequence should not classify")
	}
}
