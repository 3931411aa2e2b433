package query

import (
	"strings"
	"unicode"

	"github.com/termfx/roogle/internal/rqerr"
)

// Parse parses a query string into its AST. Trailing whitespace is
// tolerated and discarded; leftover non-whitespace input after a
// structurally complete parse is rejected with a ParseError pointing at
// the first byte that could not be consumed.
func Parse(input string) (*Query, error) {
	p := &parser{input: input}
	q, ok := p.parseQuery()
	if !ok {
		return nil, &rqerr.ParseError{Pos: p.maxPos, Description: p.describeFailure()}
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return nil, &rqerr.ParseError{Pos: p.pos, Description: "unexpected trailing input: " + p.input[p.pos:]}
	}
	return q, nil
}

// parser is a hand-written recursive-descent cursor over the query text.
// Failed alternatives never consume input (callers reset p.pos), so the
// only state that survives a backtrack is maxPos, tracking the furthest
// position any alternative reached — used to report the most useful
// failure location.
type parser struct {
	input  string
	pos    int
	maxPos int
	reason string
}

func (p *parser) fail(reason string) bool {
	if p.pos >= p.maxPos {
		p.maxPos = p.pos
		p.reason = reason
	}
	return false
}

func (p *parser) describeFailure() string {
	if p.reason == "" {
		return "failed to parse query"
	}
	return p.reason
}

func (p *parser) rest() string { return p.input[p.pos:] }

func (p *parser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

// literal consumes an exact prefix, with no surrounding whitespace handling.
func (p *parser) literal(s string) bool {
	if strings.HasPrefix(p.rest(), s) {
		p.pos += len(s)
		return true
	}
	return p.fail("expected `" + s + "`")
}

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }
func isIdentCont(r rune) bool  { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }

// ident parses `("_"|[A-Za-z]) ("_"|[A-Za-z0-9])*`.
func (p *parser) ident() (string, bool) {
	start := p.pos
	if p.pos >= len(p.input) || !isIdentStart(rune(p.input[p.pos])) {
		return "", p.fail("expected identifier")
	}
	p.pos++
	for p.pos < len(p.input) && isIdentCont(rune(p.input[p.pos])) {
		p.pos++
	}
	return p.input[start:p.pos], true
}

func (p *parser) parseQuery() (*Query, bool) {
	save := p.pos
	if !p.literal("fn") {
		p.pos = save
		return nil, false
	}
	if !p.ws1() {
		p.pos = save
		return nil, false
	}

	q := &Query{}
	if name, ok := p.ident(); ok {
		q.Name = &name
	}

	if fn, ok := p.parseFunction(); ok {
		q.Kind = &QueryKind{Function: fn}
	}

	return q, true
}

// ws1 requires at least one space.
func (p *parser) ws1() bool {
	save := p.pos
	p.skipSpaces()
	if p.pos == save {
		return p.fail("expected whitespace")
	}
	return true
}

func (p *parser) parseFunction() (*Function, bool) {
	save := p.pos
	decl, ok := p.parseFnDecl()
	if !ok {
		p.pos = save
		return nil, false
	}
	return &Function{Decl: *decl}, true
}

func (p *parser) parseFnDecl() (*FnDecl, bool) {
	save := p.pos
	if !p.literal("(") {
		p.pos = save
		return nil, false
	}

	decl := &FnDecl{}
	if strings.HasPrefix(p.rest(), "..") {
		p.pos += 2
		decl.Inputs = nil
	} else {
		args, ok := p.parseArguments()
		if !ok {
			p.pos = save
			return nil, false
		}
		decl.Inputs = args
	}

	if !p.literal(")") {
		p.pos = save
		return nil, false
	}

	if ret, ok := p.parseReturn(); ok {
		decl.Output = ret
	}

	return decl, true
}

func (p *parser) parseArguments() ([]Argument, bool) {
	args := []Argument{}
	p.skipSpaces()
	if strings.HasPrefix(p.rest(), ")") {
		return args, true
	}
	for {
		p.skipSpaces()
		arg, ok := p.parseArgument()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		p.skipSpaces()
		if strings.HasPrefix(p.rest(), ",") {
			p.pos++
			continue
		}
		break
	}
	return args, true
}

func (p *parser) parseArgument() (Argument, bool) {
	save := p.pos

	// Whole-argument wildcard: `_` not followed by `:`.
	if strings.HasPrefix(p.rest(), "_") {
		probe := p.pos + 1
		if probe >= len(p.input) || p.input[probe] != ':' {
			p.pos++
			return Argument{}, true
		}
	}

	// Named argument: `ident : (type|"_")`.
	if name, ok := p.ident(); ok {
		afterIdent := p.pos
		p.skipSpaces()
		if strings.HasPrefix(p.rest(), ":") {
			p.pos++
			p.skipSpaces()
			n := name
			if strings.HasPrefix(p.rest(), "_") && !p.nextIsIdentCont(1) {
				p.pos++
				return Argument{Name: &n}, true
			}
			ty, ok := p.parseType()
			if !ok {
				p.pos = save
				return Argument{}, false
			}
			return Argument{Name: &n, Ty: ty}, true
		}
		p.pos = afterIdent
	}
	p.pos = save

	// Positional argument: bare type, no name.
	ty, ok := p.parseType()
	if !ok {
		p.pos = save
		return Argument{}, false
	}
	return Argument{Ty: ty}, true
}

// nextIsIdentCont reports whether input[p.pos+offset] continues an
// identifier, used to tell a bare `_` wildcard apart from `_foo`.
func (p *parser) nextIsIdentCont(offset int) bool {
	i := p.pos + offset
	return i < len(p.input) && isIdentCont(rune(p.input[i]))
}

func (p *parser) parseReturn() (*Return, bool) {
	save := p.pos
	p.skipSpaces()
	if !p.literal("->") {
		p.pos = save
		return nil, false
	}
	p.skipSpaces()
	ty, ok := p.parseType()
	if !ok {
		p.pos = save
		return nil, false
	}
	return &Return{Ty: ty}, true
}

func (p *parser) parseType() (Type, bool) {
	p.skipSpaces()

	if ty, ok := p.parsePrimitive(); ok {
		return ty, true
	}
	if ty, ok := p.parseGeneric(); ok {
		return ty, true
	}
	if ty, ok := p.parsePath(); ok {
		return ty, true
	}
	if ty, ok := p.parseTuple(); ok {
		return ty, true
	}
	if ty, ok := p.parseSlice(); ok {
		return ty, true
	}
	if strings.HasPrefix(p.rest(), "!") {
		p.pos++
		return Never{}, true
	}
	if ty, ok := p.parseRawPointer(); ok {
		return ty, true
	}
	if ty, ok := p.parseBorrowedRef(); ok {
		return ty, true
	}
	return nil, p.fail("expected a type")
}

func (p *parser) parsePrimitive() (Type, bool) {
	for _, prim := range primOrder {
		s := string(prim)
		if strings.HasPrefix(p.rest(), s) {
			// Must not be the prefix of a longer identifier (e.g. "i32x4").
			after := p.pos + len(s)
			if after < len(p.input) && isIdentCont(rune(p.input[after])) {
				continue
			}
			p.pos = after
			return Primitive{Ty: prim}, true
		}
	}
	return nil, false
}

// parseGeneric accepts a run of ASCII-uppercase letters, but only if the
// very next character is not a lowercase letter — otherwise this is the
// head of a longer path identifier, e.g. "Option" is a path, not a
// one-letter generic "O" followed by garbage.
func (p *parser) parseGeneric() (Type, bool) {
	start := p.pos
	i := p.pos
	for i < len(p.input) && p.input[i] >= 'A' && p.input[i] <= 'Z' {
		i++
	}
	if i == start {
		return nil, false
	}
	if i < len(p.input) && p.input[i] >= 'a' && p.input[i] <= 'z' {
		return nil, false
	}
	p.pos = i
	return Generic{Name: p.input[start:i]}, true
}

func (p *parser) parsePath() (Type, bool) {
	save := p.pos
	name, ok := p.ident()
	if !ok {
		p.pos = save
		return nil, false
	}
	path := UnresolvedPath{Name: name}
	if args, hasArgs, ok := p.parseGenericArgsOpt(); ok {
		path.Args = args
		path.HasArgs = hasArgs
	}
	return path, true
}

func (p *parser) parseGenericArgsOpt() ([]Type, bool, bool) {
	save := p.pos
	if !strings.HasPrefix(p.rest(), "<") {
		return nil, false, true
	}
	p.pos++

	var args []Type
	p.skipSpaces()
	if !strings.HasPrefix(p.rest(), ">") {
		for {
			p.skipSpaces()
			if strings.HasPrefix(p.rest(), "_") && !p.nextIsIdentCont(1) {
				p.pos++
				args = append(args, nil)
			} else {
				ty, ok := p.parseType()
				if !ok {
					p.pos = save
					return nil, false, false
				}
				args = append(args, ty)
			}
			p.skipSpaces()
			if strings.HasPrefix(p.rest(), ",") {
				p.pos++
				continue
			}
			break
		}
	}
	if !p.literal(">") {
		p.pos = save
		return nil, false, false
	}
	if args == nil {
		args = []Type{}
	}
	return args, true, true
}

func (p *parser) parseTuple() (Type, bool) {
	save := p.pos
	if !strings.HasPrefix(p.rest(), "(") {
		return nil, false
	}
	p.pos++

	var elems []Type
	p.skipSpaces()
	if !strings.HasPrefix(p.rest(), ")") {
		for {
			p.skipSpaces()
			if strings.HasPrefix(p.rest(), "_") && !p.nextIsIdentCont(1) {
				p.pos++
				elems = append(elems, nil)
			} else {
				ty, ok := p.parseType()
				if !ok {
					p.pos = save
					return nil, false
				}
				elems = append(elems, ty)
			}
			p.skipSpaces()
			if strings.HasPrefix(p.rest(), ",") {
				p.pos++
				continue
			}
			break
		}
	}
	if !strings.HasPrefix(p.rest(), ")") {
		p.pos = save
		return nil, false
	}
	p.pos++
	if elems == nil {
		elems = []Type{}
	}
	return Tuple{Elems: elems}, true
}

func (p *parser) parseSlice() (Type, bool) {
	save := p.pos
	if !strings.HasPrefix(p.rest(), "[") {
		return nil, false
	}
	p.pos++
	p.skipSpaces()

	var elem Type
	if strings.HasPrefix(p.rest(), "_") && !p.nextIsIdentCont(1) {
		p.pos++
	} else {
		ty, ok := p.parseType()
		if !ok {
			p.pos = save
			return nil, false
		}
		elem = ty
	}

	p.skipSpaces()
	if !strings.HasPrefix(p.rest(), "]") {
		p.pos = save
		return nil, false
	}
	p.pos++
	return Slice{Elem: elem}, true
}

func (p *parser) parseRawPointer() (Type, bool) {
	save := p.pos
	var mutable bool
	switch {
	case strings.HasPrefix(p.rest(), "*mut"):
		mutable = true
		p.pos += len("*mut")
	case strings.HasPrefix(p.rest(), "*const"):
		mutable = false
		p.pos += len("*const")
	default:
		return nil, false
	}
	inner, ok := p.parseType()
	if !ok {
		p.pos = save
		return nil, false
	}
	return RawPointer{Mutable: mutable, Inner: inner}, true
}

func (p *parser) parseBorrowedRef() (Type, bool) {
	save := p.pos
	var mutable bool
	switch {
	case strings.HasPrefix(p.rest(), "&mut"):
		mutable = true
		p.pos += len("&mut")
	case strings.HasPrefix(p.rest(), "&"):
		mutable = false
		p.pos++
	default:
		return nil, false
	}
	inner, ok := p.parseType()
	if !ok {
		p.pos = save
		return nil, false
	}
	return BorrowedRef{Mutable: mutable, Inner: inner}, true
}
