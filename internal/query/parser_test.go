package query

import (
	"reflect"
	"testing"
)

func strp(s string) *string { return &s }

func TestParseBasic(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  *Query
	}{
		{
			name:  "name only",
			input: "fn foo",
			want:  &Query{Name: strp("foo")},
		},
		{
			name:  "zero args no return",
			input: "fn foo()",
			want: &Query{
				Name: strp("foo"),
				Kind: &QueryKind{Function: &Function{Decl: FnDecl{Inputs: []Argument{}}}},
			},
		},
		{
			name:  "any inputs sentinel",
			input: "fn foo(..)",
			want: &Query{
				Name: strp("foo"),
				Kind: &QueryKind{Function: &Function{Decl: FnDecl{Inputs: nil}}},
			},
		},
		{
			name:  "positional and named arguments with return",
			input: "fn foo(s: &str, _) -> Option<T>",
			want: &Query{
				Name: strp("foo"),
				Kind: &QueryKind{Function: &Function{Decl: FnDecl{
					Inputs: []Argument{
						{Name: strp("s"), Ty: BorrowedRef{Inner: Primitive{Ty: PrimStr}}},
						{Ty: nil},
					},
					Output: &Return{Ty: UnresolvedPath{Name: "Option", Args: []Type{Generic{Name: "T"}}, HasArgs: true}},
				}}},
			},
		},
		{
			name:  "no name bare function",
			input: "fn (i32) -> bool",
			want: &Query{
				Kind: &QueryKind{Function: &Function{Decl: FnDecl{
					Inputs: []Argument{{Ty: Primitive{Ty: PrimI32}}},
					Output: &Return{Ty: Primitive{Ty: PrimBool}},
				}}},
			},
		},
		{
			name:  "generic vs path disambiguation",
			input: "fn foo(x: TKey, y: T) -> U",
			want: &Query{
				Name: strp("foo"),
				Kind: &QueryKind{Function: &Function{Decl: FnDecl{
					Inputs: []Argument{
						{Name: strp("x"), Ty: UnresolvedPath{Name: "TKey"}},
						{Name: strp("y"), Ty: Generic{Name: "T"}},
					},
					Output: &Return{Ty: Generic{Name: "U"}},
				}}},
			},
		},
		{
			name:  "tuple and slice wildcards",
			input: "fn foo(_: (i32, _), _: [_])",
			want: &Query{
				Name: strp("foo"),
				Kind: &QueryKind{Function: &Function{Decl: FnDecl{
					Inputs: []Argument{
						{Name: strp("_"), Ty: Tuple{Elems: []Type{Primitive{Ty: PrimI32}, nil}}},
						{Name: strp("_"), Ty: Slice{Elem: nil}},
					},
				}}},
			},
		},
		{
			name:  "bare fn with no name and no kind",
			input: "fn ",
			want:  &Query{},
		},
		{
			name:  "raw pointer and mutable ref",
			input: "fn foo(a: *mut i32, b: &mut str)",
			want: &Query{
				Name: strp("foo"),
				Kind: &QueryKind{Function: &Function{Decl: FnDecl{
					Inputs: []Argument{
						{Name: strp("a"), Ty: RawPointer{Mutable: true, Inner: Primitive{Ty: PrimI32}}},
						{Name: strp("b"), Ty: BorrowedRef{Mutable: true, Inner: Primitive{Ty: PrimStr}}},
					},
				}}},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tc.input, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Parse(%q) = %#v, want %#v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseIdempotence(t *testing.T) {
	inputs := []string{
		"fn foo",
		"fn foo()",
		"fn foo(..)",
		"fn foo(s: &str, _) -> Option<T>",
		"fn foo(x: TKey, y: T) -> U",
		"fn foo(_: (i32, _), _: [_])",
		"fn foo(a: *mut i32, b: &mut str)",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			first, err := Parse(in)
			if err != nil {
				t.Fatalf("first parse failed: %v", err)
			}
			printed := first.String()
			second, err := Parse(printed)
			if err != nil {
				t.Fatalf("reparsing %q failed: %v", printed, err)
			}
			if !reflect.DeepEqual(first, second) {
				t.Fatalf("round-trip mismatch: %#v vs %#v (printed %q)", first, second, printed)
			}
		})
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"foo()",
		"fn foo(",
		"fn foo) -> ",
		"fn foo(s:)",
		"fn foo() -> ",
		"fn foo() junk",
	}
	for _, in := range cases {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			if err == nil {
				t.Fatalf("Parse(%q) unexpectedly succeeded", in)
			}
		})
	}
}
