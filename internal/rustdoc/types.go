// Package rustdoc models the subset of the rustdoc JSON output format that
// the search engine needs to compare against queries: crates, items, and
// the type expressions that appear in function signatures.
//
// rustdoc's enums are serialized externally-tagged (`{"function": {...}}`),
// which `encoding/json` cannot unmarshal into a Go sum type directly. Each
// tagged enum here is a struct of pointers, one per variant, populated by a
// custom UnmarshalJSON that dispatches on the single key present.
package rustdoc

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Id is rustdoc's opaque item identifier, unique within one crate's JSON.
type Id string

// Crate is one rustdoc JSON document: a crate's full item index plus the
// summary table used to resolve cross-item paths.
type Crate struct {
	Root            Id                   `json:"root"`
	CrateVersion    *string              `json:"crate_version"`
	IncludesPrivate bool                 `json:"includes_private"`
	Index           map[Id]*Item         `json:"index"`
	Paths           map[Id]*ItemSummary  `json:"paths"`
	ExternalCrates  map[string]ExternCrate `json:"external_crates"`
	FormatVersion   int                  `json:"format_version"`
}

type ExternCrate struct {
	Name string `json:"name"`
}

// ItemSummary resolves an Id to its fully qualified path and kind, used to
// build documentation links for items reached only through an impl block.
type ItemSummary struct {
	CrateID int      `json:"crate_id"`
	Path    []string `json:"path"`
	Kind    ItemKind `json:"kind"`
}

// ItemKind is the lowercase discriminant rustdoc uses for ItemSummary.Kind.
type ItemKind string

const (
	ItemKindStruct   ItemKind = "struct"
	ItemKindEnum     ItemKind = "enum"
	ItemKindUnion    ItemKind = "union"
	ItemKindTrait    ItemKind = "trait"
	ItemKindFunction ItemKind = "function"
	ItemKindMethod   ItemKind = "method"
	ItemKindTypedef  ItemKind = "typedef"
	ItemKindModule   ItemKind = "module"
)

// Item is anything with a source location that rustdoc documents.
type Item struct {
	ID         Id                `json:"id"`
	CrateID    int               `json:"crate_id"`
	Name       *string           `json:"name"`
	Docs       *string           `json:"docs"`
	Visibility json.RawMessage   `json:"visibility"`
	Deprecated bool              `json:"-"`
	Inner      ItemEnum          `json:"inner"`
}

// ItemEnum is rustdoc's externally-tagged `ItemEnum`. Only the variants
// the comparator and search driver touch are decoded; everything else
// surfaces as Other so callers can still see the tag name.
type ItemEnum struct {
	Function *Function
	Method   *Function
	Impl     *Impl
	Typedef  *Typedef
	Module   *Module
	Other    string
}

type Module struct {
	Items []Id `json:"items"`
}

func (e *ItemEnum) UnmarshalJSON(data []byte) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("rustdoc: decoding ItemEnum: %w", err)
	}
	for tag, raw := range tagged {
		switch tag {
		case "function":
			e.Function = &Function{}
			return json.Unmarshal(raw, e.Function)
		case "method":
			e.Method = &Function{}
			return json.Unmarshal(raw, e.Method)
		case "impl":
			e.Impl = &Impl{}
			return json.Unmarshal(raw, e.Impl)
		case "typedef":
			e.Typedef = &Typedef{}
			return json.Unmarshal(raw, e.Typedef)
		case "module":
			e.Module = &Module{}
			return json.Unmarshal(raw, e.Module)
		default:
			e.Other = tag
			return nil
		}
	}
	return nil
}

// Function is a free function or a trait/inherent method's declaration.
type Function struct {
	Decl     FnDecl   `json:"decl"`
	Generics Generics `json:"generics"`
}

// FnDecl is an item's actual, resolved function signature.
type FnDecl struct {
	Inputs    []NamedType `json:"inputs"`
	Output    *Type       `json:"output"`
	CVariadic bool        `json:"c_variadic"`
}

// NamedType pairs a parameter name with its type, mirroring rustdoc's
// `(String, Type)` tuple encoding for FnDecl.inputs.
type NamedType struct {
	Name string
	Ty   Type
}

func (n *NamedType) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("rustdoc: decoding function argument: %w", err)
	}
	if err := json.Unmarshal(pair[0], &n.Name); err != nil {
		return fmt.Errorf("rustdoc: decoding argument name: %w", err)
	}
	return json.Unmarshal(pair[1], &n.Ty)
}

// Generics is a declaration's type parameters and where-clauses.
type Generics struct {
	Params           []GenericParamDef `json:"params"`
	WherePredicates  []WherePredicate  `json:"where_predicates"`
}

type GenericParamDef struct {
	Name string `json:"name"`
}

// WherePredicate is rustdoc's externally-tagged where-clause kind. Only
// EqPredicate is consulted (to resolve `Self` inside an impl block).
type WherePredicate struct {
	EqPredicate *EqPredicate
}

type EqPredicate struct {
	Lhs Type `json:"lhs"`
	Rhs Type `json:"rhs"`
}

func (w *WherePredicate) UnmarshalJSON(data []byte) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("rustdoc: decoding WherePredicate: %w", err)
	}
	if raw, ok := tagged["eq_predicate"]; ok {
		w.EqPredicate = &EqPredicate{}
		return json.Unmarshal(raw, w.EqPredicate)
	}
	return nil
}

// PushEqSelf appends a synthetic `Self = for_` equality, the same trick
// the search driver uses to let an inherent impl's methods resolve `Self`
// during comparison.
func (g *Generics) PushEqSelf(forTy Type) {
	g.WherePredicates = append(g.WherePredicates, WherePredicate{
		EqPredicate: &EqPredicate{Lhs: Type{Generic: strPtr("Self")}, Rhs: forTy},
	})
}

func strPtr(s string) *string { return &s }

// Impl is an inherent or trait implementation block.
type Impl struct {
	Generics Generics `json:"generics"`
	Trait    *Type    `json:"trait"`
	For      Type     `json:"for"`
	Items    []Id     `json:"items"`
}

// Typedef is a `type X = ...;` alias; the comparator unfolds through it
// once when a candidate ResolvedPath resolves to one.
type Typedef struct {
	Type     Type     `json:"type"`
	Generics Generics `json:"generics"`
}

// Type is rustdoc's externally-tagged `Type` enum. Exactly one field is
// non-nil/non-zero after a successful unmarshal, selected by the tag key.
type Type struct {
	ResolvedPath *ResolvedPath
	DynTrait     bool
	Generic      *string
	Primitive    *string
	Tuple        []Type
	Slice        *Type
	Array        *ArrayType
	Never        bool
	RawPointer   *PointerType
	BorrowedRef  *RefType
	Other        string
}

type ResolvedPath struct {
	Name string        `json:"name"`
	ID   Id            `json:"id"`
	Args *GenericArgs  `json:"args"`
}

type ArrayType struct {
	Type Type   `json:"type"`
	Len  string `json:"len"`
}

type PointerType struct {
	Mutable bool `json:"mutable"`
	Type    Type `json:"type"`
}

type RefType struct {
	Lifetime *string `json:"lifetime"`
	Mutable  bool    `json:"mutable"`
	Type     Type    `json:"type"`
}

// GenericArgs is rustdoc's externally-tagged `GenericArgs` enum. Only
// AngleBracketed is handled; Parenthesized (`Fn(A) -> B` sugar) is left
// as a zero value, matching an explicit open question decision.
type GenericArgs struct {
	AngleBracketed *AngleBracketedArgs
}

type AngleBracketedArgs struct {
	Args []GenericArg `json:"args"`
}

// GenericArg is rustdoc's externally-tagged `GenericArg` enum; only the
// Type variant carries a comparable type, the rest compare as unmatched.
type GenericArg struct {
	Type *Type
}

func (a *GenericArg) UnmarshalJSON(data []byte) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("rustdoc: decoding GenericArg: %w", err)
	}
	if raw, ok := tagged["type"]; ok {
		a.Type = &Type{}
		return json.Unmarshal(raw, a.Type)
	}
	return nil
}

func (g *GenericArgs) UnmarshalJSON(data []byte) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("rustdoc: decoding GenericArgs: %w", err)
	}
	if raw, ok := tagged["angle_bracketed"]; ok {
		g.AngleBracketed = &AngleBracketedArgs{}
		return json.Unmarshal(raw, g.AngleBracketed)
	}
	return nil
}

func (t *Type) UnmarshalJSON(data []byte) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("rustdoc: decoding Type: %w", err)
	}
	for tag, raw := range tagged {
		switch tag {
		case "resolved_path":
			t.ResolvedPath = &ResolvedPath{}
			return json.Unmarshal(raw, t.ResolvedPath)
		case "generic":
			var name string
			if err := json.Unmarshal(raw, &name); err != nil {
				return err
			}
			t.Generic = &name
			return nil
		case "primitive":
			var name string
			if err := json.Unmarshal(raw, &name); err != nil {
				return err
			}
			t.Primitive = &name
			return nil
		case "tuple":
			return json.Unmarshal(raw, &t.Tuple)
		case "slice":
			t.Slice = &Type{}
			return json.Unmarshal(raw, t.Slice)
		case "array":
			t.Array = &ArrayType{}
			return json.Unmarshal(raw, t.Array)
		case "never":
			t.Never = true
			return nil
		case "raw_pointer":
			t.RawPointer = &PointerType{}
			return json.Unmarshal(raw, t.RawPointer)
		case "borrowed_ref":
			t.BorrowedRef = &RefType{}
			return json.Unmarshal(raw, t.BorrowedRef)
		default:
			t.Other = tag
			return nil
		}
	}
	return nil
}
