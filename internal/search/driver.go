// Package search implements the query-against-index driver: walking a
// scoped set of crates, scoring each function or inherent method against
// the query, and returning the hits that clear a similarity threshold.
package search

import (
	"math"
	"sort"

	"github.com/termfx/roogle/internal/compare"
	"github.com/termfx/roogle/internal/query"
	"github.com/termfx/roogle/internal/rqerr"
	"github.com/termfx/roogle/internal/rustdoc"
)

// Hit is one matching item: its resolved doc path/link, its docstring,
// and the similarity vector that produced its rank.
type Hit struct {
	Name         string
	Path         []string
	Link         []string
	Docs         *string
	Similarities compare.Similarities
}

// Search scores every function and inherent-impl method in scope against
// query, returning hits scoring below threshold, best match first.
// Trait-impl methods are not considered: only impls with no trait are
// descended into.
func Search(idx *rustdoc.Index, q *query.Query, scope Scope, threshold float32) ([]Hit, error) {
	var hits []Hit

	crateNames, err := scope.Flatten(idx.Sets)
	if err != nil {
		return nil, err
	}

	for _, crateName := range crateNames {
		krate, ok := idx.Crates[crateName]
		if !ok {
			return nil, &rqerr.CrateNotFound{Name: crateName}
		}

		for _, item := range krate.Index {
			switch {
			case item.Inner.Function != nil:
				sims := scoreItem(q, item, krate, nil)
				if !admitted(sims, threshold) {
					continue
				}
				path, link, err := pathAndLink(krate, crateName, item, nil)
				if err != nil {
					return nil, err
				}
				hits = append(hits, Hit{Name: deref(item.Name), Path: path, Link: link, Docs: item.Docs, Similarities: sims})

			case item.Inner.Impl != nil && item.Inner.Impl.Trait == nil:
				impl := item.Inner.Impl
				for _, assocID := range impl.Items {
					assoc, ok := krate.Index[assocID]
					if !ok {
						return nil, &rqerr.ItemNotFound{ID: string(assocID), Crate: crateName}
					}
					if assoc.Inner.Method == nil {
						continue
					}
					sims := scoreItem(q, assoc, krate, impl)
					if !admitted(sims, threshold) {
						continue
					}
					path, link, err := pathAndLink(krate, crateName, assoc, impl)
					if err != nil {
						return nil, err
					}
					hits = append(hits, Hit{Name: deref(assoc.Name), Path: path, Link: link, Docs: assoc.Docs, Similarities: sims})
				}
			}
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarities.Less(hits[j].Similarities)
	})
	return hits, nil
}

// admitted reports whether sims clears threshold. A NaN score (an empty
// similarity vector, e.g. from `fn ` with neither a name nor a signature) never
// admits a candidate, regardless of threshold.
func admitted(sims compare.Similarities, threshold float32) bool {
	score := sims.Score()
	return !math.IsNaN(float64(score)) && score < threshold
}

func scoreItem(q *query.Query, item *rustdoc.Item, krate *rustdoc.Crate, impl *rustdoc.Impl) compare.Similarities {
	generics := &rustdoc.Generics{}
	if impl != nil {
		generics.Params = append(generics.Params, impl.Generics.Params...)
		generics.WherePredicates = append(generics.WherePredicates, impl.Generics.WherePredicates...)
		generics.PushEqSelf(impl.For)
	}
	substs := compare.Substs{}
	return compare.CompareQuery(q, item, krate, generics, substs)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
