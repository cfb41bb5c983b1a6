// Package types provides the resolved-type model consumed by the must-use
// enforcement passes.
//
// The model is deliberately small: every expression handed to the checker
// arrives fully elaborated, so a type only needs a display name for
// diagnostics and, for named types, the stable qualified name that resolves
// it to a declaration. Declaration lookup itself lives with the symbol table
// owner (ast.Module); a Named type carries only the name used for that lookup.
package types

// Type represents a resolved type attached to an elaborated expression.
type Type interface {
	// String returns the fully qualified pretty name of this type,
	// as used in diagnostics.
	String() string
	// Equals returns true if this type equals another type.
	Equals(Type) bool
	// isType is a marker method.
	isType()
}

// ----------------------------------------------------------------------------
// Basic Types
// ----------------------------------------------------------------------------

// BasicKind represents the kind of built-in type.
type BasicKind uint8

const (
	BasicVoid BasicKind = iota
	BasicBool
	BasicInt
	BasicUint
	BasicLong
	BasicFloat
	BasicDouble
	BasicChar
	BasicString
)

// Basic represents a built-in value type.
type Basic struct {
	Kind BasicKind
}

func (b *Basic) String() string {
	switch b.Kind {
	case BasicVoid:
		return "void"
	case BasicBool:
		return "bool"
	case BasicInt:
		return "int"
	case BasicUint:
		return "uint"
	case BasicLong:
		return "long"
	case BasicFloat:
		return "float"
	case BasicDouble:
		return "double"
	case BasicChar:
		return "char"
	case BasicString:
		return "string"
	default:
		return "unknown"
	}
}

func (b *Basic) Equals(other Type) bool {
	if o, ok := other.(*Basic); ok {
		return b.Kind == o.Kind
	}
	return false
}

func (b *Basic) isType() {}

// Void is the canonical void type.
var Void = &Basic{Kind: BasicVoid}

// ----------------------------------------------------------------------------
// Named Types
// ----------------------------------------------------------------------------

// Named represents a type introduced by a declaration (struct, union, class,
// enum). Identity is the stable fully qualified name, not object identity:
// two Named values with equal qualified names denote the same declaration.
type Named struct {
	// QualifiedName is the fully qualified name, e.g. "app.Result" or
	// "core.attribute.mustuse".
	QualifiedName string
}

func (n *Named) String() string {
	return n.QualifiedName
}

func (n *Named) Equals(other Type) bool {
	if o, ok := other.(*Named); ok {
		return n.QualifiedName == o.QualifiedName
	}
	return false
}

func (n *Named) isType() {}
