package httpapi

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termfx/roogle/internal/rlog"
	"github.com/termfx/roogle/internal/rustdoc"
)

func strp(s string) *string { return &s }

func testIndex() *rustdoc.Index {
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
	return &rustdoc.Index{Crates: map[string]*rustdoc.Crate{"mycrate": krate}, Sets: map[string][]string{}}
}

func TestHandleSearchReturnsHits(t *testing.T) {
	srv := New(":0", testIndex(), rlog.New(rlog.Off, nil))

	req := httptest.NewRequest("GET", "/search?query=fn+foo()&scope=crate:mycrate", nil)
	rec := httptest.NewRecorder()
	srv.corsMiddleware(srv.handleSearch)(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"foo"`)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandleSearchRejectsBadScope(t *testing.T) {
	srv := New(":0", testIndex(), rlog.New(rlog.Off, nil))

	req := httptest.NewRequest("GET", "/search?query=fn+foo()&scope=garbage", nil)
	rec := httptest.NewRecorder()
	srv.corsMiddleware(srv.handleSearch)(rec, req)

	assert.Equal(t, 400, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_SCOPE_SYNTAX")
}

func TestHandleScopesListsCratesAndSets(t *testing.T) {
	idx := testIndex()
	idx.Sets["myset"] = []string{"mycrate"}
	srv := New(":0", idx, rlog.New(rlog.Off, nil))

	req := httptest.NewRequest("GET", "/scopes", nil)
	rec := httptest.NewRecorder()
	srv.corsMiddleware(srv.handleScopes)(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Equal(t, `["crate:mycrate","set:myset"]`, strings.TrimSpace(rec.Body.String()))
}
