package search

import (
	"strings"

	"github.com/termfx/roogle/internal/rqerr"
)

// Scope names which crates a search runs over: either a single crate, or
// a named set resolved against the index's loaded sets.
type Scope struct {
	Crate string
	Set   string
}

// Flatten resolves the scope to its list of crate names. The caller
// supplies sets since resolving a named set requires the loaded index.
// A set name the index never loaded is a *rqerr.SetNotFound error,
// distinct from a set that loaded empty.
func (s Scope) Flatten(sets map[string][]string) ([]string, error) {
	if s.Crate != "" {
		return []string{s.Crate}, nil
	}
	members, ok := sets[s.Set]
	if !ok {
		return nil, &rqerr.SetNotFound{Name: s.Set}
	}
	return members, nil
}

// ParseScope parses the `crate:name` / `set:name` scope syntax used by the
// HTTP and CLI surfaces.
func ParseScope(text string) (Scope, bool) {
	switch {
	case strings.HasPrefix(text, "crate:"):
		return Scope{Crate: strings.TrimPrefix(text, "crate:")}, true
	case strings.HasPrefix(text, "set:"):
		return Scope{Set: strings.TrimPrefix(text, "set:")}, true
	default:
		return Scope{}, false
	}
}
