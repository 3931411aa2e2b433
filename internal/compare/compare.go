package compare

import (
	"reflect"

	"github.com/termfx/roogle/internal/query"
	"github.com/termfx/roogle/internal/rustdoc"
)

// Substs records, for the duration of one query/item comparison, which
// concrete type each of the candidate's unbound type parameters has been
// matched against so far — so `fn(T, T)` only matches `fn(i32, i32)`,
// never `fn(i32, bool)`.
type Substs map[string]query.Type

// CompareQuery compares a parsed query against one candidate item. generics
// carries the item's (and, for a method, its enclosing impl's) type
// parameters and where-clauses, and accumulates more as Function
// declarations are visited; substs starts empty per top-level comparison.
func CompareQuery(q *query.Query, item *rustdoc.Item, krate *rustdoc.Crate, generics *rustdoc.Generics, substs Substs) Similarities {
	var sims Similarities

	if q.Name != nil {
		if item.Name != nil {
			sims = append(sims, nameSimilarity(*q.Name, *item.Name))
		} else {
			sims = append(sims, Disc(Different))
		}
	}

	if q.Kind != nil {
		sims = append(sims, compareKind(q.Kind, item.Inner, krate, generics, substs)...)
	}

	return sims
}

func compareKind(kind *query.QueryKind, inner rustdoc.ItemEnum, krate *rustdoc.Crate, generics *rustdoc.Generics, substs Substs) Similarities {
	if kind.Function == nil {
		return Similarities{Disc(Different)}
	}
	switch {
	case inner.Function != nil:
		return compareFunction(kind.Function, inner.Function, krate, generics, substs)
	case inner.Method != nil:
		return compareFunction(kind.Function, inner.Method, krate, generics, substs)
	default:
		return Similarities{Disc(Different)}
	}
}

func compareFunction(f *query.Function, fn *rustdoc.Function, krate *rustdoc.Crate, generics *rustdoc.Generics, substs Substs) Similarities {
	generics.Params = append(generics.Params, fn.Generics.Params...)
	generics.WherePredicates = append(generics.WherePredicates, fn.Generics.WherePredicates...)
	return compareFnDecl(&f.Decl, &fn.Decl, krate, generics, substs)
}

func compareFnDecl(decl *query.FnDecl, candidate *rustdoc.FnDecl, krate *rustdoc.Crate, generics *rustdoc.Generics, substs Substs) Similarities {
	var sims Similarities

	if decl.Inputs != nil {
		for idx, qarg := range decl.Inputs {
			if idx < len(candidate.Inputs) {
				sims = append(sims, compareArgument(qarg, candidate.Inputs[idx], krate, generics, substs)...)
			}
		}
		switch {
		case len(decl.Inputs) != len(candidate.Inputs):
			diff := absDiff(len(decl.Inputs), len(candidate.Inputs))
			for i := 0; i < diff; i++ {
				sims = append(sims, Disc(Different))
			}
		case len(decl.Inputs) == 0:
			sims = append(sims, Disc(Equivalent))
		}
	}

	if decl.Output != nil {
		sims = append(sims, compareReturn(decl.Output, candidate.Output, krate, generics, substs)...)
	}

	return sims
}

func compareArgument(arg query.Argument, candidate rustdoc.NamedType, krate *rustdoc.Crate, generics *rustdoc.Generics, substs Substs) Similarities {
	var sims Similarities
	if arg.Name != nil {
		sims = append(sims, nameSimilarity(*arg.Name, candidate.Name))
	}
	if arg.Ty != nil {
		sims = append(sims, compareType(arg.Ty, candidate.Ty, krate, generics, substs, true)...)
	}
	return sims
}

func compareReturn(ret *query.Return, output *rustdoc.Type, krate *rustdoc.Crate, generics *rustdoc.Generics, substs Substs) Similarities {
	if ret.Ty == nil {
		return nil
	}
	if output == nil {
		return Similarities{Disc(Different)}
	}
	return compareType(ret.Ty, *output, krate, generics, substs, true)
}

// compareType is the structural type comparator. allowRecursion gates
// typedef unfolding: it is only attempted once per candidate path, so the
// recursive call made while scoring the unfolded alias passes false.
func compareType(lhs query.Type, rhs rustdoc.Type, krate *rustdoc.Crate, generics *rustdoc.Generics, substs Substs, allowRecursion bool) Similarities {
	if lhs == nil {
		return nil
	}

	// rhs == Generic("Self"): resolve via the enclosing impl's synthetic
	// `Self = for_` equality pushed onto generics.WherePredicates.
	if rhs.Generic != nil && *rhs.Generic == "Self" {
		resolved := resolveSelf(generics)
		if resolved == nil {
			return Similarities{Disc(Different)}
		}
		return compareType(lhs, *resolved, krate, generics, substs, true)
	}

	// rhs == Generic(other): query/candidate substitution coherence.
	if rhs.Generic != nil {
		name := *rhs.Generic
		if bound, ok := substs[name]; ok {
			if reflect.DeepEqual(lhs, bound) {
				return Similarities{Disc(Equivalent)}
			}
			return Similarities{Disc(Different)}
		}
		substs[name] = lhs
		return Similarities{Disc(Subequal)}
	}

	// rhs resolves to a typedef: try both the alias structurally and its
	// unfolded target, keeping whichever scores better. Only attempted once.
	if rhs.ResolvedPath != nil && allowRecursion {
		if target, ok := resolveTypedef(krate, rhs.ResolvedPath.ID); ok {
			simsAlias := compareType(lhs, rhs, krate, generics, substs, false)
			simsUnfolded := compareType(lhs, target, krate, generics, substs, false)
			if sum(simsUnfolded) < sum(simsAlias) {
				return simsUnfolded
			}
			return simsAlias
		}
	}

	if lt, ok := lhs.(query.Tuple); ok && rhs.Tuple != nil {
		var sims Similarities
		n := len(lt.Elems)
		if len(rhs.Tuple) < n {
			n = len(rhs.Tuple)
		}
		for i := 0; i < n; i++ {
			if lt.Elems[i] == nil {
				continue
			}
			sims = append(sims, compareType(lt.Elems[i], rhs.Tuple[i], krate, generics, substs, true)...)
		}
		sims = append(sims, Disc(Equivalent))
		diff := absDiff(len(lt.Elems), len(rhs.Tuple))
		for i := 0; i < diff; i++ {
			sims = append(sims, Disc(Different))
		}
		return sims
	}

	if ls, ok := lhs.(query.Slice); ok && rhs.Slice != nil {
		sims := Similarities{Disc(Equivalent)}
		if ls.Elem != nil {
			sims = append(sims, compareType(ls.Elem, *rhs.Slice, krate, generics, substs, true)...)
		}
		return sims
	}

	if lp, ok := lhs.(query.RawPointer); ok && rhs.RawPointer != nil {
		return comparePtrLike(lp.Mutable, lp.Inner, rhs.RawPointer.Mutable, rhs.RawPointer.Type, krate, generics, substs)
	}
	if lr, ok := lhs.(query.BorrowedRef); ok && rhs.BorrowedRef != nil {
		return comparePtrLike(lr.Mutable, lr.Inner, rhs.BorrowedRef.Mutable, rhs.BorrowedRef.Type, krate, generics, substs)
	}

	// Asymmetric: rhs is a pointer/ref the query didn't ask for — peel it.
	if rhs.RawPointer != nil {
		sims := compareType(lhs, rhs.RawPointer.Type, krate, generics, substs, true)
		return append(sims, Disc(Subequal))
	}
	if rhs.BorrowedRef != nil {
		sims := compareType(lhs, rhs.BorrowedRef.Type, krate, generics, substs, true)
		return append(sims, Disc(Subequal))
	}

	// Asymmetric: query asked for a pointer/ref but candidate isn't one.
	if lp, ok := lhs.(query.RawPointer); ok {
		sims := compareType(lp.Inner, rhs, krate, generics, substs, true)
		return append(sims, Disc(Subequal))
	}
	if lr, ok := lhs.(query.BorrowedRef); ok {
		sims := compareType(lr.Inner, rhs, krate, generics, substs, true)
		return append(sims, Disc(Subequal))
	}

	if lu, ok := lhs.(query.UnresolvedPath); ok && rhs.ResolvedPath != nil {
		return comparePath(lu, *rhs.ResolvedPath, krate, generics, substs)
	}

	if lprim, ok := lhs.(query.Primitive); ok && rhs.Primitive != nil {
		if string(lprim.Ty) == *rhs.Primitive {
			return Similarities{Disc(Equivalent)}
		}
		return Similarities{Disc(Different)}
	}

	return Similarities{Disc(Different)}
}

func comparePtrLike(qMut bool, qInner query.Type, iMut bool, iInner rustdoc.Type, krate *rustdoc.Crate, generics *rustdoc.Generics, substs Substs) Similarities {
	sims := compareType(qInner, iInner, krate, generics, substs, true)
	if qMut != iMut {
		sims = append(sims, Disc(Subequal))
	}
	return sims
}

func comparePath(lhs query.UnresolvedPath, rhs rustdoc.ResolvedPath, krate *rustdoc.Crate, generics *rustdoc.Generics, substs Substs) Similarities {
	sims := Similarities{nameSimilarity(lhs.Name, rhs.Name)}

	qArgs, qHasArgs := lhs.Args, lhs.HasArgs
	var iArgs []rustdoc.GenericArg
	iHasArgs := rhs.Args != nil && rhs.Args.AngleBracketed != nil
	if iHasArgs {
		iArgs = rhs.Args.AngleBracketed.Args
	}

	switch {
	case qHasArgs && iHasArgs:
		n := len(qArgs)
		if len(iArgs) < n {
			n = len(iArgs)
		}
		for i := 0; i < n; i++ {
			q := qArgs[i]
			var it *rustdoc.Type
			if iArgs[i].Type != nil {
				it = iArgs[i].Type
			}
			switch {
			case q != nil && it != nil:
				sims = append(sims, compareType(q, *it, krate, generics, substs, true)...)
			case q != nil && it == nil:
				sims = append(sims, Disc(Different))
			}
		}
	case qHasArgs && !iHasArgs:
		for _, q := range qArgs {
			if q != nil {
				sims = append(sims, Disc(Different))
			}
		}
	}

	return sims
}

// resolveSelf finds the `Self = T` equality a containing impl block
// pushes onto generics before its methods are compared.
func resolveSelf(generics *rustdoc.Generics) *rustdoc.Type {
	for _, pred := range generics.WherePredicates {
		if pred.EqPredicate == nil {
			continue
		}
		if pred.EqPredicate.Lhs.Generic != nil && *pred.EqPredicate.Lhs.Generic == "Self" {
			rhs := pred.EqPredicate.Rhs
			return &rhs
		}
	}
	return nil
}

func resolveTypedef(krate *rustdoc.Crate, id rustdoc.Id) (rustdoc.Type, bool) {
	if krate == nil {
		return rustdoc.Type{}, false
	}
	item, ok := krate.Index[id]
	if !ok || item.Inner.Typedef == nil {
		return rustdoc.Type{}, false
	}
	return item.Inner.Typedef.Type, true
}

func sum(sims Similarities) float32 {
	var total float32
	for _, s := range sims {
		total += s.Score()
	}
	return total
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
