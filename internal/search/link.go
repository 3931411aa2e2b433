package search

import (
	"fmt"

	"github.com/termfx/roogle/internal/rqerr"
	"github.com/termfx/roogle/internal/rustdoc"
)

// pathAndLink computes the documentation path and link fragments for a
// function or method item. For a method, impl is its enclosing inherent
// impl block and the link is rewritten to point at the receiver type's
// page (struct/enum/union/primitive/tuple/slice/array/pointer/reference).
func pathAndLink(krate *rustdoc.Crate, crateName string, item *rustdoc.Item, impl *rustdoc.Impl) ([]string, []string, error) {
	getPath := func(id rustdoc.Id) ([]string, error) {
		summary, ok := krate.Paths[id]
		if !ok {
			return nil, &rqerr.ItemNotFound{ID: string(id), Crate: crateName}
		}
		return append([]string{}, summary.Path...), nil
	}

	var path, link []string
	if impl != nil {
		var recv string
		var err error
		switch {
		case impl.Trait != nil && impl.Trait.ResolvedPath != nil:
			path, err = getPath(impl.Trait.ResolvedPath.ID)
			recv = fmt.Sprintf("trait.%s.html", impl.Trait.ResolvedPath.Name)
		case impl.For.ResolvedPath != nil:
			path, err = getPath(impl.For.ResolvedPath.ID)
			if err == nil {
				summary, ok := krate.Paths[impl.For.ResolvedPath.ID]
				if !ok {
					err = &rqerr.ItemNotFound{ID: string(impl.For.ResolvedPath.ID), Crate: crateName}
					break
				}
				switch summary.Kind {
				case rustdoc.ItemKindUnion:
					recv = fmt.Sprintf("union.%s.html", impl.For.ResolvedPath.Name)
				case rustdoc.ItemKindEnum:
					recv = fmt.Sprintf("enum.%s.html", impl.For.ResolvedPath.Name)
				default:
					recv = fmt.Sprintf("struct.%s.html", impl.For.ResolvedPath.Name)
				}
			}
		case impl.For.Primitive != nil:
			path = []string{*impl.For.Primitive}
			recv = fmt.Sprintf("primitive.%s.html", *impl.For.Primitive)
		case impl.For.Tuple != nil:
			path = []string{"tuple"}
			recv = "primitive.tuple.html"
		case impl.For.Slice != nil:
			path = []string{"slice"}
			recv = "primitive.slice.html"
		case impl.For.Array != nil:
			path = []string{"array"}
			recv = "primitive.array.html"
		case impl.For.RawPointer != nil:
			path = []string{"pointer"}
			recv = "primitive.pointer.html"
		case impl.For.BorrowedRef != nil:
			path = []string{"reference"}
			recv = "primitive.reference.html"
		default:
			return nil, nil, fmt.Errorf("search: impl target has no linkable representation")
		}
		if err != nil {
			return nil, nil, err
		}
		link = append([]string{}, path...)
		if len(link) > 0 {
			link[len(link)-1] = recv
		} else {
			link = []string{recv}
		}
	} else {
		p, err := getPath(item.ID)
		if err != nil {
			return nil, nil, err
		}
		path = p
		link = append([]string{}, path...)
	}

	switch {
	case item.Inner.Function != nil:
		if len(link) > 0 {
			link[len(link)-1] = fmt.Sprintf("fn.%s.html", link[len(link)-1])
		}
		return path, link, nil
	case item.Inner.Method != nil:
		name := ""
		if item.Name != nil {
			name = *item.Name
		}
		if len(link) > 0 {
			link[len(link)-1] = fmt.Sprintf("%s#method.%s", link[len(link)-1], name)
		}
		path = append(append([]string{}, path...), name)
		return path, link, nil
	default:
		return nil, nil, fmt.Errorf("search: item %s is neither a function nor a method", item.ID)
	}
}
