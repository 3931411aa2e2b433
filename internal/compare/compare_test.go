package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termfx/roogle/internal/query"
	"github.com/termfx/roogle/internal/rustdoc"
)

func strp(s string) *string { return &s }

func primItem(name string, inner rustdoc.ItemEnum) *rustdoc.Item {
	return &rustdoc.Item{Name: strp(name), Inner: inner}
}

func emptyFn() *rustdoc.Function {
	return &rustdoc.Function{Decl: rustdoc.FnDecl{Inputs: []rustdoc.NamedType{}}}
}

func TestCompareSymbolExactMatch(t *testing.T) {
	q := &query.Query{Name: strp("foo")}
	item := primItem("foo", rustdoc.ItemEnum{Function: emptyFn()})

	sims := CompareQuery(q, item, &rustdoc.Crate{}, &rustdoc.Generics{}, Substs{})
	require.Len(t, sims, 1)
	assert.Equal(t, float32(0), sims.Score())
}

func TestCompareFunctionZeroArgs(t *testing.T) {
	q := &query.Query{
		Kind: &query.QueryKind{Function: &query.Function{Decl: query.FnDecl{Inputs: []query.Argument{}}}},
	}
	item := primItem("foo", rustdoc.ItemEnum{Function: emptyFn()})

	sims := CompareQuery(q, item, &rustdoc.Crate{}, &rustdoc.Generics{}, Substs{})
	require.Len(t, sims, 1)
	assert.Equal(t, Disc(Equivalent), sims[0])
}

func TestCompareArgCountMismatchIsDifferent(t *testing.T) {
	q := &query.Query{
		Kind: &query.QueryKind{Function: &query.Function{Decl: query.FnDecl{
			Inputs: []query.Argument{{Ty: query.Primitive{Ty: query.PrimI32}}},
		}}},
	}
	fn := &rustdoc.Function{Decl: rustdoc.FnDecl{Inputs: []rustdoc.NamedType{}}}
	item := primItem("foo", rustdoc.ItemEnum{Function: fn})

	sims := CompareQuery(q, item, &rustdoc.Crate{}, &rustdoc.Generics{}, Substs{})
	require.Len(t, sims, 1)
	assert.Equal(t, float32(1), sims.Score())
}

func TestCompareGenericSubstitutionCoherence(t *testing.T) {
	// Query fn(i32, i32) against candidate fn(T, T) should substitute T=i32 once and
	// then confirm equivalence on the second occurrence.
	q := &query.Query{
		Kind: &query.QueryKind{Function: &query.Function{Decl: query.FnDecl{
			Inputs: []query.Argument{
				{Ty: query.Primitive{Ty: query.PrimI32}},
				{Ty: query.Primitive{Ty: query.PrimI32}},
			},
		}}},
	}
	fn := &rustdoc.Function{Decl: rustdoc.FnDecl{Inputs: []rustdoc.NamedType{
		{Name: "a", Ty: rustdoc.Type{Generic: strp("T")}},
		{Name: "b", Ty: rustdoc.Type{Generic: strp("T")}},
	}}}
	item := primItem("foo", rustdoc.ItemEnum{Function: fn})

	sims := CompareQuery(q, item, &rustdoc.Crate{}, &rustdoc.Generics{}, Substs{})
	require.Len(t, sims, 2) // arg0 binds T=i32 (Subequal), arg1 confirms it (Equivalent)
	assert.Equal(t, Disc(Subequal), sims[0])
	assert.Equal(t, Disc(Equivalent), sims[1])
}

func TestCompareGenericSubstitutionConflict(t *testing.T) {
	// fn(i32, bool) against fn(T, T) must fail the second position.
	q := &query.Query{
		Kind: &query.QueryKind{Function: &query.Function{Decl: query.FnDecl{
			Inputs: []query.Argument{
				{Ty: query.Primitive{Ty: query.PrimI32}},
				{Ty: query.Primitive{Ty: query.PrimBool}},
			},
		}}},
	}
	fn := &rustdoc.Function{Decl: rustdoc.FnDecl{Inputs: []rustdoc.NamedType{
		{Name: "a", Ty: rustdoc.Type{Generic: strp("T")}},
		{Name: "b", Ty: rustdoc.Type{Generic: strp("T")}},
	}}}
	item := primItem("foo", rustdoc.ItemEnum{Function: fn})

	sims := CompareQuery(q, item, &rustdoc.Crate{}, &rustdoc.Generics{}, Substs{})
	require.Len(t, sims, 2)
	assert.Equal(t, Disc(Subequal), sims[0])
	assert.Equal(t, Disc(Different), sims[1])
}

func TestCompareReferenceToleratesMismatchedMutability(t *testing.T) {
	lhs := query.BorrowedRef{Inner: query.Primitive{Ty: query.PrimStr}}
	rhs := rustdoc.Type{BorrowedRef: &rustdoc.RefType{Mutable: true, Type: rustdoc.Type{Primitive: strp("str")}}}

	sims := compareType(lhs, rhs, &rustdoc.Crate{}, &rustdoc.Generics{}, Substs{}, true)
	require.Len(t, sims, 2)
	assert.Equal(t, Disc(Equivalent), sims[0])
	assert.Equal(t, Disc(Subequal), sims[1])
}

func TestCompareWildcardProducesNoSimilarity(t *testing.T) {
	sims := compareType(nil, rustdoc.Type{Primitive: strp("i32")}, &rustdoc.Crate{}, &rustdoc.Generics{}, Substs{}, true)
	assert.Empty(t, sims)
}

func TestCompareEmptyQueryProducesEmptySimilarities(t *testing.T) {
	// "fn " (no name, no kind) must produce zero atoms, not a score of 0.
	q := &query.Query{}
	item := primItem("foo", rustdoc.ItemEnum{Function: emptyFn()})

	sims := CompareQuery(q, item, &rustdoc.Crate{}, &rustdoc.Generics{}, Substs{})
	assert.Empty(t, sims)
	assert.True(t, sims.Score() != sims.Score()) // NaN is the only value unequal to itself
}

func TestComparePathTruncatesLongerQueryArgsWithoutPenalty(t *testing.T) {
	// Option<T, U> (query) against a candidate Option<i32> (one arg):
	// truncate to the shorter list, no penalty for the overflow arg.
	lhs := query.UnresolvedPath{
		Name:    "Option",
		HasArgs: true,
		Args:    []query.Type{query.Generic{Name: "T"}, query.Generic{Name: "U"}},
	}
	rhs := rustdoc.ResolvedPath{
		Name: "Option",
		Args: &rustdoc.GenericArgs{AngleBracketed: &rustdoc.AngleBracketedArgs{
			Args: []rustdoc.GenericArg{{Type: &rustdoc.Type{Primitive: strp("i32")}}},
		}},
	}

	sims := comparePath(lhs, rhs, &rustdoc.Crate{}, &rustdoc.Generics{}, Substs{})
	require.Len(t, sims, 2) // name similarity + one paired arg comparison
	assert.Equal(t, float32(0), sims[0].Score())
}

func TestCompareSelfResolvesViaWherePredicate(t *testing.T) {
	generics := &rustdoc.Generics{}
	generics.PushEqSelf(rustdoc.Type{Primitive: strp("i32")})

	lhs := query.Primitive{Ty: query.PrimI32}
	rhs := rustdoc.Type{Generic: strp("Self")}

	sims := compareType(lhs, rhs, &rustdoc.Crate{}, generics, Substs{}, true)
	require.Len(t, sims, 1)
	assert.Equal(t, Disc(Equivalent), sims[0])
}
