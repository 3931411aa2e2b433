// Package query implements the signature mini-language grammar: parsing
// a query string such as `fn foo(s: &str) -> Option<T>` into the AST
// consumed by internal/compare.
package query

import "strings"

// PrimTy enumerates the primitive type names the grammar recognizes.
type PrimTy string

const (
	PrimIsize PrimTy = "isize"
	PrimI8    PrimTy = "i8"
	PrimI16   PrimTy = "i16"
	PrimI32   PrimTy = "i32"
	PrimI64   PrimTy = "i64"
	PrimI128  PrimTy = "i128"
	PrimUsize PrimTy = "usize"
	PrimU8    PrimTy = "u8"
	PrimU16   PrimTy = "u16"
	PrimU32   PrimTy = "u32"
	PrimU64   PrimTy = "u64"
	PrimU128  PrimTy = "u128"
	PrimF32   PrimTy = "f32"
	PrimF64   PrimTy = "f64"
	PrimBool  PrimTy = "bool"
	PrimChar  PrimTy = "char"
	PrimStr   PrimTy = "str"
	PrimUnit  PrimTy = "unit"
	PrimNever PrimTy = "never"
)

// primOrder fixes the order candidate prefixes are tried in, longest
// first so e.g. "i128" is not shadowed by "i1" + garbage.
var primOrder = []PrimTy{
	PrimIsize, PrimI128, PrimI64, PrimI32, PrimI16, PrimI8,
	PrimUsize, PrimU128, PrimU64, PrimU32, PrimU16, PrimU8,
	PrimF32, PrimF64, PrimBool, PrimChar, PrimStr,
}

// Type is the algebraic type-expression AST. A nil Type wherever one is
// expected represents the `_` wildcard.
type Type interface {
	typeNode()
	String() string
}

// UnresolvedPath is a named path with optional angle-bracketed generic
// arguments. Args == nil means no `<...>` was written at all; a non-nil
// Args with a nil element means that argument position is a wildcard.
type UnresolvedPath struct {
	Name string
	Args []Type
	// HasArgs distinguishes `Foo` (no args field written) from `Foo<>`
	// (an explicit, empty argument list).
	HasArgs bool
}

// Generic is a type-parameter reference, e.g. `T` or the reserved `Self`.
type Generic struct{ Name string }

// Primitive wraps one of the fixed primitive type names.
type Primitive struct{ Ty PrimTy }

// Tuple is a parenthesized list of element types; a nil element is a wildcard.
type Tuple struct{ Elems []Type }

// Slice is `[T]` or `[_]`; a nil Elem is a wildcard.
type Slice struct{ Elem Type }

// RawPointer is `*mut T` or `*const T`.
type RawPointer struct {
	Mutable bool
	Inner   Type
}

// BorrowedRef is `&T` or `&mut T`.
type BorrowedRef struct {
	Mutable bool
	Inner   Type
}

// Never is the `!` type.
type Never struct{}

func (UnresolvedPath) typeNode() {}
func (Generic) typeNode()        {}
func (Primitive) typeNode()      {}
func (Tuple) typeNode()          {}
func (Slice) typeNode()          {}
func (RawPointer) typeNode()     {}
func (BorrowedRef) typeNode()    {}
func (Never) typeNode()          {}

func typeOrWildcard(t Type) string {
	if t == nil {
		return "_"
	}
	return t.String()
}

func (p UnresolvedPath) String() string {
	if !p.HasArgs {
		return p.Name
	}
	parts := make([]string, len(p.Args))
	for i, a := range p.Args {
		parts[i] = typeOrWildcard(a)
	}
	return p.Name + "<" + strings.Join(parts, ", ") + ">"
}

func (g Generic) String() string   { return g.Name }
func (p Primitive) String() string { return string(p.Ty) }

func (t Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = typeOrWildcard(e)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (s Slice) String() string { return "[" + typeOrWildcard(s.Elem) + "]" }

func (r RawPointer) String() string {
	if r.Mutable {
		return "*mut " + typeOrWildcard(r.Inner)
	}
	return "*const " + typeOrWildcard(r.Inner)
}

func (r BorrowedRef) String() string {
	if r.Mutable {
		return "&mut " + typeOrWildcard(r.Inner)
	}
	return "&" + typeOrWildcard(r.Inner)
}

func (Never) String() string { return "!" }

// Argument is a function parameter: either side may be a wildcard/absent.
type Argument struct {
	Name *string
	Ty   Type
}

// Return is the query's requested output type; a nil *Return means the
// query did not specify one, matching any return.
type Return struct {
	Ty Type
}

// FnDecl is the declaration shape of a query's `fn(...)` clause.
//
// Inputs == nil means "any inputs" (the `..` sentinel). A query with no
// parens at all has no FnDecl; its Query.Kind is nil.
// A non-nil, zero-length Inputs means "exactly zero arguments" (`()`).
type FnDecl struct {
	Inputs []Argument
	Output *Return
}

// Function wraps a single FnDecl; kept as its own type (rather than
// folding FnDecl directly into QueryKind) to mirror the grammar's
// separation between "a function query" and "its declaration", leaving
// room for a future non-FnDecl function query shape without reshaping
// QueryKind's variants.
type Function struct {
	Decl FnDecl
}

// QueryKind discriminates what a Query's `kind` describes. The grammar
// currently only produces FunctionQuery; other kinds are reserved.
type QueryKind struct {
	Function *Function
}

// Query is the full parsed AST of a query string.
type Query struct {
	Name *string
	Kind *QueryKind
}
