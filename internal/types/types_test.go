package types

import "testing"

func TestBasicString(t *testing.T) {
	tests := []struct {
		kind BasicKind
		want string
	}{
		{BasicVoid, "void"},
		{BasicBool, "bool"},
		{BasicInt, "int"},
		{BasicUint, "uint"},
		{BasicLong, "long"},
		{BasicFloat, "float"},
		{BasicDouble, "double"},
		{BasicChar, "char"},
		{BasicString, "string"},
	}

	for _, tt := range tests {
		b := &Basic{Kind: tt.kind}
		if got := b.String(); got != tt.want {
			t.Errorf("Basic{%d}.String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestBasicEquals(t *testing.T) {
	a := &Basic{Kind: BasicInt}
	b := &Basic{Kind: BasicInt}
	c := &Basic{Kind: BasicBool}

	if !a.Equals(b) {
		t.Error("two int types should be equal")
	}
	if a.Equals(c) {
		t.Error("int should not equal bool")
	}
	if a.Equals(&Named{QualifiedName: "int"}) {
		t.Error("basic type should not equal a named type")
	}
}

func TestNamedEquals(t *testing.T) {
	a := &Named{QualifiedName: "app.Result"}
	b := &Named{QualifiedName: "app.Result"}
	c := &Named{QualifiedName: "app.Other"}

	if !a.Equals(b) {
		t.Error("identity is by qualified name, distinct values should be equal")
	}
	if a.Equals(c) {
		t.Error("different qualified names should not be equal")
	}
}

func TestNamedString(t *testing.T) {
	n := &Named{QualifiedName: "core.attribute.mustuse"}
	if n.String() != "core.attribute.mustuse" {
		t.Errorf("String() = %q, want qualified name", n.String())
	}
}
