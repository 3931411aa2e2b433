package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termfx/roogle/internal/query"
	"github.com/termfx/roogle/internal/rustdoc"
)

func strp(s string) *string { return &s }

func TestSearchFindsExactFunction(t *testing.T) {
	krate := &rustdoc.Crate{
		Index: map[rustdoc.Id]*rustdoc.Item{
			"fn:foo": {
				ID:   "fn:foo",
				Name: strp("foo"),
				Inner: rustdoc.ItemEnum{Function: &rustdoc.Function{
					Decl: rustdoc.FnDecl{Inputs: []rustdoc.NamedType{}},
				}},
			},
		},
		Paths: map[rustdoc.Id]*rustdoc.ItemSummary{
			"fn:foo": {Path: []string{"mycrate", "foo"}, Kind: rustdoc.ItemKindFunction},
		},
	}
	idx := &rustdoc.Index{Crates: map[string]*rustdoc.Crate{"mycrate": krate}}

	q, err := query.Parse("fn foo()")
	require.NoError(t, err)

	hits, err := Search(idx, q, Scope{Crate: "mycrate"}, 0.5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "foo", hits[0].Name)
	assert.Equal(t, []string{"mycrate", "foo"}, hits[0].Path)
	assert.Equal(t, []string{"mycrate", "fn.foo.html"}, hits[0].Link)
}

func TestSearchExcludesTraitImplMethods(t *testing.T) {
	krate := &rustdoc.Crate{
		Index: map[rustdoc.Id]*rustdoc.Item{
			"impl:1": {
				ID: "impl:1",
				Inner: rustdoc.ItemEnum{Impl: &rustdoc.Impl{
					Trait: &rustdoc.Type{ResolvedPath: &rustdoc.ResolvedPath{Name: "Display", ID: "trait:display"}},
					For:   rustdoc.Type{ResolvedPath: &rustdoc.ResolvedPath{Name: "Foo", ID: "struct:foo"}},
					Items: []rustdoc.Id{"method:fmt"},
				}},
			},
			"method:fmt": {
				ID:   "method:fmt",
				Name: strp("fmt"),
				Inner: rustdoc.ItemEnum{Method: &rustdoc.Function{
					Decl: rustdoc.FnDecl{Inputs: []rustdoc.NamedType{}},
				}},
			},
		},
	}
	idx := &rustdoc.Index{Crates: map[string]*rustdoc.Crate{"mycrate": krate}}

	q, err := query.Parse("fn fmt()")
	require.NoError(t, err)

	hits, err := Search(idx, q, Scope{Crate: "mycrate"}, 0.5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearchUnknownCrateErrors(t *testing.T) {
	idx := &rustdoc.Index{Crates: map[string]*rustdoc.Crate{}}
	q, err := query.Parse("fn foo()")
	require.NoError(t, err)

	_, err = Search(idx, q, Scope{Crate: "nope"}, 0.5)
	assert.Error(t, err)
}

func TestSearchUnknownSetErrors(t *testing.T) {
	idx := &rustdoc.Index{Crates: map[string]*rustdoc.Crate{}, Sets: map[string][]string{}}
	q, err := query.Parse("fn foo()")
	require.NoError(t, err)

	_, err = Search(idx, q, Scope{Set: "nope"}, 0.5)
	assert.Error(t, err)
}

// An empty-kind query ("fn " with no name and no signature) produces a
// zero-atom similarity vector for every candidate and must never match.
func TestSearchEmptyQueryMatchesNothing(t *testing.T) {
	krate := &rustdoc.Crate{
		Index: map[rustdoc.Id]*rustdoc.Item{
			"fn:foo": {
				ID:   "fn:foo",
				Name: strp("foo"),
				Inner: rustdoc.ItemEnum{Function: &rustdoc.Function{
					Decl: rustdoc.FnDecl{Inputs: []rustdoc.NamedType{}},
				}},
			},
		},
		Paths: map[rustdoc.Id]*rustdoc.ItemSummary{
			"fn:foo": {Path: []string{"mycrate", "foo"}, Kind: rustdoc.ItemKindFunction},
		},
	}
	idx := &rustdoc.Index{Crates: map[string]*rustdoc.Crate{"mycrate": krate}}

	q, err := query.Parse("fn ")
	require.NoError(t, err)

	hits, err := Search(idx, q, Scope{Crate: "mycrate"}, 0.75)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
