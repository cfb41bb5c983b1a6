// Package ast defines the elaborated expression/declaration graph that the
// must-use enforcement passes inspect.
//
// The graph models a front end that has already finished parsing, name
// resolution, and type checking: call targets are resolved to declaration
// handles, expressions carry resolved types, and overloaded postfix
// increment/decrement may already be desugared into comma sequences. This
// package owns the data; the passes in internal/attrs, internal/ops and
// internal/check only read it.
package ast

import "codeberg.org/saruga/mustuse/internal/types"

// ----------------------------------------------------------------------------
// Source Location
// ----------------------------------------------------------------------------

// Loc represents a location in source code.
type Loc struct {
	Start int32 // Byte offset of start
}

// ----------------------------------------------------------------------------
// Declaration References
// ----------------------------------------------------------------------------

// Ref is a stable handle into a Module's declaration arena. Handles stay
// valid for the lifetime of the module; the arena never shrinks.
type Ref struct {
	Index uint32
	valid bool
}

// MakeRef creates a valid reference to the given arena index.
func MakeRef(i uint32) Ref {
	return Ref{Index: i, valid: true}
}

// InvalidRef returns an invalid reference. Call expressions whose target
// could not be resolved (indirect calls) carry this.
func InvalidRef() Ref {
	return Ref{}
}

// IsValid returns true if this is a valid reference.
func (r Ref) IsValid() bool {
	return r.valid
}

// ----------------------------------------------------------------------------
// Declarations
// ----------------------------------------------------------------------------

// DeclKind identifies what a declaration declares.
type DeclKind uint8

const (
	DeclOther DeclKind = iota
	DeclFunction
	DeclStruct
	DeclUnion
	DeclClass
	DeclEnum
	DeclVariable
	DeclTemplate
)

func (k DeclKind) String() string {
	switch k {
	case DeclFunction:
		return "function"
	case DeclStruct:
		return "struct"
	case DeclUnion:
		return "union"
	case DeclClass:
		return "class"
	case DeclEnum:
		return "enum"
	case DeclVariable:
		return "variable"
	case DeclTemplate:
		return "template"
	default:
		return "declaration"
	}
}

// AnalysisState tracks how far semantic analysis of a declaration has
// progressed. Attribute queries must work in StateInProgress: the attribute
// block of a declaration is inspected while that declaration's own signature
// is still being analyzed.
type AnalysisState uint8

const (
	StateUnanalyzed AnalysisState = iota
	StateInProgress
	StateComplete
)

// UserAttributeBlock holds the ordered attribute expressions syntactically
// attached to a declaration. A nil block and an empty block both mean "no
// attributes".
type UserAttributeBlock struct {
	Attrs []Expr
}

// Decl is a declaration record stored in a Module's arena.
type Decl struct {
	Loc  Loc
	Kind DeclKind

	// Name is the identifier as written; QualifiedName is the stable
	// fully qualified name used for identity and diagnostics.
	Name          string
	QualifiedName string

	// Attributes is the user-defined attribute block, nil if none.
	Attributes *UserAttributeBlock

	// State is the declaration's semantic-analysis progress.
	State AnalysisState

	// Erroneous is set when a declaration-time check rejects this
	// declaration. Downstream passes must not trust its attributes.
	Erroneous bool

	// Body is the function body, only for DeclFunction.
	Body *CompoundStmt
}

// ----------------------------------------------------------------------------
// Module and Scope
// ----------------------------------------------------------------------------

// Module owns the declaration arena and the name table.
type Module struct {
	// Source information
	Source     string // Original source text, may be empty for synthetic modules
	SourcePath string // File path (for error messages)

	// Name is the module's own qualified name prefix.
	Name string

	// Declarations in arena order; Refs index into this slice.
	Decls []Decl

	// byName maps qualified names to arena indices.
	byName map[string]uint32

	// Module-level scope
	Scope *Scope
}

// NewModule creates an empty module.
func NewModule(name string) *Module {
	m := &Module{
		Name:   name,
		byName: make(map[string]uint32),
	}
	m.Scope = NewScope(nil)
	return m
}

// AddDecl appends a declaration to the arena and indexes it by qualified
// name. Returns the handle for the new declaration.
func (m *Module) AddDecl(d Decl) Ref {
	idx := uint32(len(m.Decls))
	m.Decls = append(m.Decls, d)
	if d.QualifiedName != "" {
		m.byName[d.QualifiedName] = idx
	}
	return MakeRef(idx)
}

// Decl returns the declaration for a handle, or nil for an invalid or
// out-of-range handle.
func (m *Module) Decl(r Ref) *Decl {
	if !r.IsValid() || int(r.Index) >= len(m.Decls) {
		return nil
	}
	return &m.Decls[r.Index]
}

// Lookup finds a declaration by qualified name, consulting the scope chain
// first so that locally shadowed or still-unfinished symbols resolve the
// same way the surrounding analysis would resolve them.
func (m *Module) Lookup(qualifiedName string, scope *Scope) (Ref, bool) {
	for s := scope; s != nil; s = s.Parent {
		if ref, ok := s.Members[qualifiedName]; ok {
			return ref, true
		}
	}
	if idx, ok := m.byName[qualifiedName]; ok {
		return MakeRef(idx), true
	}
	return InvalidRef(), false
}

// ResolveTypeDecl resolves a type to its introducing declaration. Only named
// types resolve; basic types have no declaration.
func (m *Module) ResolveTypeDecl(t types.Type, scope *Scope) (Ref, bool) {
	named, ok := t.(*types.Named)
	if !ok {
		return InvalidRef(), false
	}
	return m.Lookup(named.QualifiedName, scope)
}

// Scope represents a lexical scope. The enforcement passes thread a scope
// through their queries but never mutate it.
type Scope struct {
	Parent  *Scope
	Members map[string]Ref
}

// NewScope creates a new scope with the given parent.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		Parent:  parent,
		Members: make(map[string]Ref),
	}
}

// ----------------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------------

// Expr represents an elaborated expression.
type Expr interface {
	// Type returns the expression's resolved type, nil if the expression
	// has none (e.g. a bare type reference used as an attribute).
	Type() types.Type
	isExpr()
}

// IdentExpr is a resolved identifier reference.
type IdentExpr struct {
	Loc      Loc
	Name     string
	Ref      Ref
	ExprType types.Type
}

func (e *IdentExpr) Type() types.Type { return e.ExprType }
func (*IdentExpr) isExpr()            {}

// LiteralExpr is a numeric or boolean literal.
type LiteralExpr struct {
	Loc      Loc
	Value    string // Raw literal text
	ExprType types.Type
}

func (e *LiteralExpr) Type() types.Type { return e.ExprType }
func (*LiteralExpr) isExpr()            {}

// StringLit is a string literal. Template instantiations of unary operator
// overloads carry their operator token ("++", "--") as one of these.
type StringLit struct {
	Loc      Loc
	Value    string
	ExprType types.Type
}

func (e *StringLit) Type() types.Type { return e.ExprType }
func (*StringLit) isExpr()            {}

// AssignOp identifies the assignment flavor of an AssignExpr.
type AssignOp uint8

const (
	AssignSimple AssignOp = iota // =
	AssignAdd                    // +=
	AssignSub                    // -=
	AssignMul                    // *=
	AssignDiv                    // /=
	AssignMod                    // %=
	AssignAnd                    // &=
	AssignOr                     // |=
	AssignXor                    // ^=
	AssignShl                    // <<=
	AssignShr                    // >>=
	AssignUshr                   // >>>=
	AssignCat                    // ~=
	AssignPow                    // ^^=
)

// AssignExpr is a simple or compound assignment. Its value is the assigned
// value, but discarding that value is always legitimate.
type AssignExpr struct {
	Loc      Loc
	Op       AssignOp
	Left     Expr
	Right    Expr
	ExprType types.Type
}

func (e *AssignExpr) Type() types.Type { return e.ExprType }
func (*AssignExpr) isExpr()            {}

// IndexAssignExpr is an assignment through an index: base[index] = value.
type IndexAssignExpr struct {
	Loc      Loc
	Base     Expr
	Index    Expr
	Value    Expr
	ExprType types.Type
}

func (e *IndexAssignExpr) Type() types.Type { return e.ExprType }
func (*IndexAssignExpr) isExpr()            {}

// SliceAssignExpr is an assignment through a slice: base[lo..hi] = value.
type SliceAssignExpr struct {
	Loc      Loc
	Base     Expr
	Value    Expr
	ExprType types.Type
}

func (e *SliceAssignExpr) Type() types.Type { return e.ExprType }
func (*SliceAssignExpr) isExpr()            {}

// IncrDecrOp identifies the four built-in increment/decrement forms.
type IncrDecrOp uint8

const (
	PreInc IncrDecrOp = iota // ++x
	PreDec                   // --x
	PostInc                  // x++
	PostDec                  // x--
)

// IncrDecrExpr is a built-in increment or decrement.
type IncrDecrExpr struct {
	Loc      Loc
	Op       IncrDecrOp
	Operand  Expr
	ExprType types.Type
}

func (e *IncrDecrExpr) Type() types.Type { return e.ExprType }
func (*IncrDecrExpr) isExpr()            {}

// CallExpr is a function call. Target is the resolved callee declaration;
// an indirect call (through a pointer or delegate) carries InvalidRef.
// TemplateArgs are the instantiation arguments when the callee is an
// instance of a function template, in declaration order.
type CallExpr struct {
	Loc          Loc
	Target       Ref
	Args         []Expr
	TemplateArgs []Expr
	ExprType     types.Type
}

func (e *CallExpr) Type() types.Type { return e.ExprType }
func (*CallExpr) isExpr()            {}

// CommaExpr is a sequence of two effects: evaluate Left, discard its value,
// yield Right. The front end desugars overloaded postfix increment into
// nested CommaExpr nodes of the shape ((tmp = a, ++a), tmp).
type CommaExpr struct {
	Loc      Loc
	Left     Expr
	Right    Expr
	ExprType types.Type
}

func (e *CommaExpr) Type() types.Type { return e.ExprType }
func (*CommaExpr) isExpr()            {}

// TypeRefExpr is a bare reference to a type, as it appears in a user
// attribute list: @(core.attribute.mustuse) struct S { ... }.
type TypeRefExpr struct {
	Loc     Loc
	RefType types.Type
}

// Type returns nil: a type reference denotes a type, it does not have one.
func (e *TypeRefExpr) Type() types.Type { return nil }
func (*TypeRefExpr) isExpr()            {}

// ReferencedType returns the type this expression denotes.
func (e *TypeRefExpr) ReferencedType() types.Type { return e.RefType }

// BinaryOp represents ordinary binary operators.
type BinaryOp uint8

const (
	BinAdd BinaryOp = iota // +
	BinSub                 // -
	BinMul                 // *
	BinDiv                 // /
	BinMod                 // %
	BinEq                  // ==
	BinLt                  // <
)

// BinaryExpr is an ordinary binary operation.
type BinaryExpr struct {
	Loc      Loc
	Op       BinaryOp
	Left     Expr
	Right    Expr
	ExprType types.Type
}

func (e *BinaryExpr) Type() types.Type { return e.ExprType }
func (*BinaryExpr) isExpr()            {}

// ----------------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------------

// Stmt represents a statement in a function body.
type Stmt interface {
	isStmt()
}

// CompoundStmt represents a block of statements: { stmts }
type CompoundStmt struct {
	Loc   Loc
	Stmts []Stmt
}

func (*CompoundStmt) isStmt() {}

// ExprStmt is an expression evaluated for effect; its value is discarded.
// This is the statement form the must-use enforcement inspects.
type ExprStmt struct {
	Loc  Loc
	Expr Expr
}

func (*ExprStmt) isStmt() {}

// DeclStmt wraps a local declaration as a statement.
type DeclStmt struct {
	Decl Ref
}

func (*DeclStmt) isStmt() {}

// ReturnStmt represents: return [expr];
type ReturnStmt struct {
	Loc   Loc
	Value Expr // nil for bare return
}

func (*ReturnStmt) isStmt() {}

// IfStmt represents: if (cond) { } [else { }]
type IfStmt struct {
	Loc       Loc
	Condition Expr
	Body      *CompoundStmt
	Else      Stmt // nil, *IfStmt, or *CompoundStmt
}

func (*IfStmt) isStmt() {}

// ExprLoc returns the source location of an expression, for diagnostics.
func ExprLoc(e Expr) Loc {
	switch x := e.(type) {
	case *IdentExpr:
		return x.Loc
	case *LiteralExpr:
		return x.Loc
	case *StringLit:
		return x.Loc
	case *AssignExpr:
		return x.Loc
	case *IndexAssignExpr:
		return x.Loc
	case *SliceAssignExpr:
		return x.Loc
	case *IncrDecrExpr:
		return x.Loc
	case *CallExpr:
		return x.Loc
	case *CommaExpr:
		return x.Loc
	case *TypeRefExpr:
		return x.Loc
	case *BinaryExpr:
		return x.Loc
	default:
		return Loc{}
	}
}
