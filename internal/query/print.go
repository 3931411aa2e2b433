package query

import "strings"

// String renders the query back into its textual form. Parsing that
// output must reproduce an AST equal to the original.
func (q Query) String() string {
	var b strings.Builder
	b.WriteString("fn ")
	if q.Name != nil {
		b.WriteString(*q.Name)
	}
	if q.Kind != nil && q.Kind.Function != nil {
		b.WriteString(q.Kind.Function.Decl.String())
	}
	return b.String()
}

func (d FnDecl) String() string {
	var b strings.Builder
	b.WriteByte('(')
	if d.Inputs == nil {
		b.WriteString("..")
	} else {
		parts := make([]string, len(d.Inputs))
		for i, a := range d.Inputs {
			parts[i] = a.String()
		}
		b.WriteString(strings.Join(parts, ", "))
	}
	b.WriteByte(')')
	if d.Output != nil {
		b.WriteString(" -> ")
		b.WriteString(typeOrWildcard(d.Output.Ty))
	}
	return b.String()
}

func (a Argument) String() string {
	if a.Name == nil {
		return typeOrWildcard(a.Ty)
	}
	if a.Ty == nil {
		return *a.Name + ": _"
	}
	return *a.Name + ": " + a.Ty.String()
}
