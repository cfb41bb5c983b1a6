// Package loader builds an elaborated module from a YAML description.
//
// The checks in this repo operate on a fully resolved expression graph that
// a compiler front end would normally hand over in memory. The loader
// provides that graph from a declarative file instead, for the CLI and for
// integration tests: declarations with kinds and attribute lists, and
// function bodies written as nested expression forms with their resolved
// types spelled out.
package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"codeberg.org/saruga/mustuse/internal/ast"
	"codeberg.org/saruga/mustuse/internal/types"
)

// ----------------------------------------------------------------------------
// YAML Schema
// ----------------------------------------------------------------------------

type moduleNode struct {
	Module       string     `yaml:"module"`
	Source       string     `yaml:"source"`
	Declarations []declNode `yaml:"declarations"`
}

type declNode struct {
	Name       string     `yaml:"name"`
	Qualified  string     `yaml:"qualified"` // defaults to "<module>.<name>"
	Kind       string     `yaml:"kind"`
	Attributes []string   `yaml:"attributes"` // type-reference attributes by qualified name
	Loc        int        `yaml:"loc"`
	Body       []stmtNode `yaml:"body"` // function bodies only
}

type stmtNode struct {
	Expr   *exprNode  `yaml:"expr"`
	Block  []stmtNode `yaml:"block"`
	If     *ifNode    `yaml:"if"`
	Return *exprNode  `yaml:"return"`
	Loc    int        `yaml:"loc"`
}

type ifNode struct {
	Cond *exprNode  `yaml:"cond"`
	Then []stmtNode `yaml:"then"`
	Else []stmtNode `yaml:"else"`
}

// exprNode is a sum of the supported expression forms; exactly one of the
// form fields must be set.
type exprNode struct {
	Loc  int    `yaml:"loc"`
	Type string `yaml:"type"` // resolved type, empty for untyped forms

	Ident   string    `yaml:"ident"`
	Literal string    `yaml:"literal"`
	String  *string   `yaml:"string"`
	TypeRef string    `yaml:"typeref"`
	Assign  *binNode  `yaml:"assign"`
	IncDec  string    `yaml:"incdec"` // pre-inc, pre-dec, post-inc, post-dec
	Call    *callNode `yaml:"call"`
	Comma   *binNode  `yaml:"comma"`
}

type binNode struct {
	Op    string    `yaml:"op"` // assignment flavor, default "="
	Left  *exprNode `yaml:"left"`
	Right *exprNode `yaml:"right"`
}

type callNode struct {
	Target       string      `yaml:"target"` // qualified name, empty for indirect calls
	Args         []*exprNode `yaml:"args"`
	TemplateArgs []*exprNode `yaml:"template_args"`
}

// ----------------------------------------------------------------------------
// Loading
// ----------------------------------------------------------------------------

// LoadFile reads and builds a module from a YAML file.
func LoadFile(path string) (*ast.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.SourcePath = path
	return m, nil
}

// Load builds a module from YAML data.
func Load(data []byte) (*ast.Module, error) {
	var mn moduleNode
	if err := yaml.Unmarshal(data, &mn); err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	if mn.Module == "" {
		return nil, fmt.Errorf("loader: missing module name")
	}

	b := &builder{module: ast.NewModule(mn.Module)}
	b.module.Source = mn.Source

	// Pass 1: declare everything so call targets and attribute type
	// references resolve regardless of declaration order.
	for _, dn := range mn.Declarations {
		if err := b.declare(dn); err != nil {
			return nil, err
		}
	}

	// Pass 2: attribute blocks and function bodies.
	for i, dn := range mn.Declarations {
		if err := b.elaborate(ast.MakeRef(uint32(i)), dn); err != nil {
			return nil, err
		}
	}

	return b.module, nil
}

type builder struct {
	module *ast.Module
}

func (b *builder) qualified(dn declNode) string {
	if dn.Qualified != "" {
		return dn.Qualified
	}
	return b.module.Name + "." + dn.Name
}

func (b *builder) declare(dn declNode) error {
	kind, err := declKind(dn.Kind)
	if err != nil {
		return fmt.Errorf("loader: declaration %q: %w", dn.Name, err)
	}
	b.module.AddDecl(ast.Decl{
		Loc:           ast.Loc{Start: int32(dn.Loc)},
		Kind:          kind,
		Name:          dn.Name,
		QualifiedName: b.qualified(dn),
		State:         ast.StateComplete,
	})
	return nil
}

func (b *builder) elaborate(ref ast.Ref, dn declNode) error {
	decl := b.module.Decl(ref)

	if len(dn.Attributes) > 0 {
		block := &ast.UserAttributeBlock{}
		for _, name := range dn.Attributes {
			block.Attrs = append(block.Attrs, &ast.TypeRefExpr{
				RefType: &types.Named{QualifiedName: name},
			})
		}
		decl.Attributes = block
	}

	if len(dn.Body) > 0 {
		if decl.Kind != ast.DeclFunction {
			return fmt.Errorf("loader: declaration %q: body on non-function", dn.Name)
		}
		body, err := b.buildStmts(dn.Body)
		if err != nil {
			return fmt.Errorf("loader: function %q: %w", dn.Name, err)
		}
		decl.Body = &ast.CompoundStmt{Stmts: body}
	}
	return nil
}

func (b *builder) buildStmts(nodes []stmtNode) ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for _, sn := range nodes {
		s, err := b.buildStmt(sn)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

func (b *builder) buildStmt(sn stmtNode) (ast.Stmt, error) {
	switch {
	case sn.Expr != nil:
		// Diagnostics report at the expression, so a statement-level loc
		// stands in when the expression does not carry its own.
		if sn.Expr.Loc == 0 {
			sn.Expr.Loc = sn.Loc
		}
		e, err := b.buildExpr(sn.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Loc: ast.Loc{Start: int32(sn.Loc)}, Expr: e}, nil

	case sn.Block != nil:
		inner, err := b.buildStmts(sn.Block)
		if err != nil {
			return nil, err
		}
		return &ast.CompoundStmt{Loc: ast.Loc{Start: int32(sn.Loc)}, Stmts: inner}, nil

	case sn.If != nil:
		cond, err := b.buildExpr(sn.If.Cond)
		if err != nil {
			return nil, err
		}
		then, err := b.buildStmts(sn.If.Then)
		if err != nil {
			return nil, err
		}
		stmt := &ast.IfStmt{
			Loc:       ast.Loc{Start: int32(sn.Loc)},
			Condition: cond,
			Body:      &ast.CompoundStmt{Stmts: then},
		}
		if sn.If.Else != nil {
			elseStmts, err := b.buildStmts(sn.If.Else)
			if err != nil {
				return nil, err
			}
			stmt.Else = &ast.CompoundStmt{Stmts: elseStmts}
		}
		return stmt, nil

	case sn.Return != nil:
		e, err := b.buildExpr(sn.Return)
		if err != nil {
			return nil, err
		}
		return &ast.ReturnStmt{Loc: ast.Loc{Start: int32(sn.Loc)}, Value: e}, nil

	default:
		return &ast.ReturnStmt{Loc: ast.Loc{Start: int32(sn.Loc)}}, nil
	}
}

func (b *builder) buildExpr(en *exprNode) (ast.Expr, error) {
	if en == nil {
		return nil, fmt.Errorf("missing expression")
	}
	loc := ast.Loc{Start: int32(en.Loc)}
	t := parseType(en.Type)

	switch {
	case en.Ident != "":
		return &ast.IdentExpr{Loc: loc, Name: en.Ident, ExprType: t}, nil

	case en.Literal != "":
		return &ast.LiteralExpr{Loc: loc, Value: en.Literal, ExprType: t}, nil

	case en.String != nil:
		return &ast.StringLit{Loc: loc, Value: *en.String, ExprType: t}, nil

	case en.TypeRef != "":
		return &ast.TypeRefExpr{Loc: loc, RefType: parseType(en.TypeRef)}, nil

	case en.Assign != nil:
		return b.buildAssign(loc, en.Assign, t)

	case en.IncDec != "":
		op, err := incDecOp(en.IncDec)
		if err != nil {
			return nil, err
		}
		return &ast.IncrDecrExpr{Loc: loc, Op: op, ExprType: t}, nil

	case en.Call != nil:
		return b.buildCall(loc, en.Call, t)

	case en.Comma != nil:
		left, err := b.buildExpr(en.Comma.Left)
		if err != nil {
			return nil, err
		}
		right, err := b.buildExpr(en.Comma.Right)
		if err != nil {
			return nil, err
		}
		return &ast.CommaExpr{Loc: loc, Left: left, Right: right, ExprType: t}, nil

	default:
		return nil, fmt.Errorf("expression has no recognized form")
	}
}

func (b *builder) buildAssign(loc ast.Loc, bn *binNode, t types.Type) (ast.Expr, error) {
	op, err := assignOp(bn.Op)
	if err != nil {
		return nil, err
	}
	left, err := b.buildExpr(bn.Left)
	if err != nil {
		return nil, err
	}
	right, err := b.buildExpr(bn.Right)
	if err != nil {
		return nil, err
	}
	return &ast.AssignExpr{Loc: loc, Op: op, Left: left, Right: right, ExprType: t}, nil
}

func (b *builder) buildCall(loc ast.Loc, cn *callNode, t types.Type) (ast.Expr, error) {
	target := ast.InvalidRef()
	if cn.Target != "" {
		ref, ok := b.module.Lookup(cn.Target, b.module.Scope)
		if !ok {
			return nil, fmt.Errorf("call target %q is not declared", cn.Target)
		}
		target = ref
	}

	call := &ast.CallExpr{Loc: loc, Target: target, ExprType: t}
	for _, an := range cn.Args {
		arg, err := b.buildExpr(an)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
	}
	for _, tn := range cn.TemplateArgs {
		arg, err := b.buildExpr(tn)
		if err != nil {
			return nil, err
		}
		call.TemplateArgs = append(call.TemplateArgs, arg)
	}
	return call, nil
}

// ----------------------------------------------------------------------------
// Name Tables
// ----------------------------------------------------------------------------

var declKinds = map[string]ast.DeclKind{
	"function": ast.DeclFunction,
	"struct":   ast.DeclStruct,
	"union":    ast.DeclUnion,
	"class":    ast.DeclClass,
	"enum":     ast.DeclEnum,
	"variable": ast.DeclVariable,
	"template": ast.DeclTemplate,
	"other":    ast.DeclOther,
}

func declKind(name string) (ast.DeclKind, error) {
	kind, ok := declKinds[name]
	if !ok {
		return ast.DeclOther, fmt.Errorf("unknown declaration kind %q", name)
	}
	return kind, nil
}

var basicTypes = map[string]types.BasicKind{
	"void":   types.BasicVoid,
	"bool":   types.BasicBool,
	"int":    types.BasicInt,
	"uint":   types.BasicUint,
	"long":   types.BasicLong,
	"float":  types.BasicFloat,
	"double": types.BasicDouble,
	"char":   types.BasicChar,
	"string": types.BasicString,
}

// parseType maps a type name to the type model: built-in names become basic
// types, everything else is a named type resolved by qualified name. An
// empty name means the expression has no resolved type.
func parseType(name string) types.Type {
	if name == "" {
		return nil
	}
	if kind, ok := basicTypes[name]; ok {
		if kind == types.BasicVoid {
			return types.Void
		}
		return &types.Basic{Kind: kind}
	}
	return &types.Named{QualifiedName: name}
}

var assignOps = map[string]ast.AssignOp{
	"":     ast.AssignSimple,
	"=":    ast.AssignSimple,
	"+=":   ast.AssignAdd,
	"-=":   ast.AssignSub,
	"*=":   ast.AssignMul,
	"/=":   ast.AssignDiv,
	"%=":   ast.AssignMod,
	"&=":   ast.AssignAnd,
	"|=":   ast.AssignOr,
	"^=":   ast.AssignXor,
	"<<=":  ast.AssignShl,
	">>=":  ast.AssignShr,
	">>>=": ast.AssignUshr,
	"~=":   ast.AssignCat,
	"^^=":  ast.AssignPow,
}

func assignOp(name string) (ast.AssignOp, error) {
	op, ok := assignOps[name]
	if !ok {
		return ast.AssignSimple, fmt.Errorf("unknown assignment operator %q", name)
	}
	return op, nil
}

var incDecOps = map[string]ast.IncrDecrOp{
	"pre-inc":  ast.PreInc,
	"pre-dec":  ast.PreDec,
	"post-inc": ast.PostInc,
	"post-dec": ast.PostDec,
}

func incDecOp(name string) (ast.IncrDecrOp, error) {
	op, ok := incDecOps[name]
	if !ok {
		return ast.PreInc, fmt.Errorf("unknown increment/decrement form %q", name)
	}
	return op, nil
}
