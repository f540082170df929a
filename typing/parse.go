package typing

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// ErrSyntax reports a malformed type expression.
var ErrSyntax = errors.New("invalid type expression")

// Parse reads a type expression in display form, e.g. "list[int] | None".
// The empty string parses as Any.
func Parse(src string) (Ty, error) {
	if strings.TrimSpace(src) == "" {
		return Any(), nil
	}
	p := &parser{src: src}
	ty, err := p.union()
	if err != nil {
		return Ty{}, errors.Wrapf(err, "parse type %q", src)
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return Ty{}, errors.Wrapf(ErrSyntax, "parse type %q: unexpected %q at offset %d", src, p.src[p.pos:], p.pos)
	}
	return ty, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(src string) Ty {
	ty, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return ty
}

type parser struct {
	src string
	pos int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

func (p *parser) peek(c byte) bool {
	p.skipSpace()
	return p.pos < len(p.src) && p.src[p.pos] == c
}

func (p *parser) expect(c byte) error {
	if !p.peek(c) {
		return errors.Wrapf(ErrSyntax, "expected %q at offset %d", c, p.pos)
	}
	p.pos++
	return nil
}

func (p *parser) union() (Ty, error) {
	first, err := p.term()
	if err != nil {
		return Ty{}, err
	}
	tys := []Ty{first}
	for p.peek('|') {
		p.pos++
		next, err := p.term()
		if err != nil {
			return Ty{}, err
		}
		tys = append(tys, next)
	}
	return Unions(tys...), nil
}

func (p *parser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if r == '_' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			p.pos += size
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *parser) args() ([]Ty, bool, error) {
	var (
		out      []Ty
		ellipsis bool
	)
	for {
		p.skipSpace()
		if strings.HasPrefix(p.src[p.pos:], "...") {
			p.pos += 3
			ellipsis = true
		} else if strings.HasPrefix(p.src[p.pos:], "()") {
			p.pos += 2
		} else {
			ty, err := p.union()
			if err != nil {
				return nil, false, err
			}
			out = append(out, ty)
		}
		if p.peek(',') {
			p.pos++
			continue
		}
		if err := p.expect(']'); err != nil {
			return nil, false, err
		}
		return out, ellipsis, nil
	}
}

func (p *parser) term() (Ty, error) {
	name := p.ident()
	if name == "" {
		return Ty{}, errors.Wrapf(ErrSyntax, "expected type name at offset %d", p.pos)
	}
	var (
		args     []Ty
		ellipsis bool
		hasArgs  bool
	)
	if p.peek('[') {
		p.pos++
		var err error
		args, ellipsis, err = p.args()
		if err != nil {
			return Ty{}, err
		}
		hasArgs = true
	}
	switch name {
	case "Any", "typing.Any":
		return Any(), nil
	case "never":
		return Never(), nil
	case "Callable", "typing.Callable":
		return Callable(), nil
	case "list":
		if !hasArgs {
			return List(Any()), nil
		}
		if len(args) != 1 || ellipsis {
			return Ty{}, errors.Wrap(ErrSyntax, "list takes one type argument")
		}
		return List(args[0]), nil
	case "dict":
		if !hasArgs {
			return Dict(Any(), Any()), nil
		}
		if len(args) != 2 || ellipsis {
			return Ty{}, errors.Wrap(ErrSyntax, "dict takes two type arguments")
		}
		return Dict(args[0], args[1]), nil
	case "tuple":
		if !hasArgs {
			return TupleOf(Any()), nil
		}
		if ellipsis {
			if len(args) != 1 {
				return Ty{}, errors.Wrap(ErrSyntax, "variable tuple takes one type argument")
			}
			return TupleOf(args[0]), nil
		}
		return Tuple(args...), nil
	}
	if hasArgs {
		return Ty{}, errors.WithHint(
			errors.Wrapf(ErrSyntax, "%s does not take type arguments", name),
			"only list, dict and tuple are parameterised",
		)
	}
	return Name(name), nil
}
