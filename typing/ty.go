// Package typing holds the type values attached to documented entities.
//
// A Ty is an ordered union of basic shapes. The renderer only needs the
// display form and IsAny; the unpack helpers project item types out of
// sequence and mapping shapes for variadic bindings.
package typing

import "strings"

type basicKind uint8

const (
	kindAny basicKind = iota
	kindName
	kindList
	kindTuple
	kindTupleOf
	kindDict
	kindCallable
)

// Basic is one variant of a union.
type Basic struct {
	kind  basicKind
	name  string
	elems []Ty
}

// Ty is a union of basic shapes. The zero value is Any, so an unset type
// field means "unconstrained"; the empty union is built with Never.
type Ty struct {
	alts  []Basic
	never bool
}

var anyVariants = []Basic{{kind: kindAny}}

// Any returns the unconstrained type.
func Any() Ty { return Ty{} }

// Never returns the empty union.
func Never() Ty { return Ty{never: true} }

// Name returns a nominal type such as int or str.
func Name(name string) Ty { return Ty{alts: []Basic{{kind: kindName, name: name}}} }

// List returns list[elem].
func List(elem Ty) Ty { return Ty{alts: []Basic{{kind: kindList, elems: []Ty{elem}}}} }

// Tuple returns a fixed-length tuple.
func Tuple(items ...Ty) Ty {
	return Ty{alts: []Basic{{kind: kindTuple, elems: append([]Ty(nil), items...)}}}
}

// TupleOf returns a variable-length tuple, tuple[item, ...].
func TupleOf(item Ty) Ty { return Ty{alts: []Basic{{kind: kindTupleOf, elems: []Ty{item}}}} }

// Dict returns dict[key, value].
func Dict(key, value Ty) Ty {
	return Ty{alts: []Basic{{kind: kindDict, elems: []Ty{key, value}}}}
}

// Callable returns the opaque callable type.
func Callable() Ty { return Ty{alts: []Basic{{kind: kindCallable}}} }

// Unions flattens tys into one union. Variants are deduplicated by their
// display form and keep first-seen order.
func Unions(tys ...Ty) Ty {
	out := Ty{never: true}
	seen := make(map[string]struct{})
	for _, ty := range tys {
		for _, b := range ty.variants() {
			key := b.String()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out.alts = append(out.alts, b)
		}
	}
	if isAnyVariants(out.alts) {
		return Any()
	}
	return out
}

// Union is a two-argument shorthand for Unions.
func Union(a, b Ty) Ty { return Unions(a, b) }

func (t Ty) variants() []Basic {
	if len(t.alts) == 0 && !t.never {
		return anyVariants
	}
	return t.alts
}

func isAnyVariants(alts []Basic) bool {
	return len(alts) == 1 && alts[0].kind == kindAny
}

// Variants returns the union members in order.
func (t Ty) Variants() []Basic {
	return append([]Basic(nil), t.variants()...)
}

// IsAny reports whether t carries no shape information.
func (t Ty) IsAny() bool { return isAnyVariants(t.variants()) }

// IsNever reports whether t is the empty union.
func (t Ty) IsNever() bool { return len(t.variants()) == 0 }

// Equal compares by display form, which is canonical for a union.
func (t Ty) Equal(other Ty) bool { return t.String() == other.String() }

func (t Ty) String() string {
	alts := t.variants()
	switch len(alts) {
	case 0:
		return "never"
	case 1:
		return alts[0].String()
	}
	parts := make([]string, len(alts))
	for i, b := range alts {
		parts[i] = b.String()
	}
	return strings.Join(parts, " | ")
}

// AsTy wraps a single variant back into a union.
func (b Basic) AsTy() Ty {
	if b.kind == kindAny {
		return Any()
	}
	return Ty{alts: []Basic{b}}
}

// SequenceItem returns the element type when b is sequence-like.
func (b Basic) SequenceItem() (Ty, bool) {
	switch b.kind {
	case kindList, kindTupleOf:
		return b.elems[0], true
	case kindTuple:
		return Unions(b.elems...), true
	}
	return Ty{}, false
}

// MappingValue returns the key and value types when b is mapping-like.
func (b Basic) MappingValue() (key, value Ty, ok bool) {
	if b.kind != kindDict {
		return Ty{}, Ty{}, false
	}
	return b.elems[0], b.elems[1], true
}

func (b Basic) String() string {
	switch b.kind {
	case kindAny:
		return "typing.Any"
	case kindName:
		return b.name
	case kindList:
		return "list[" + b.elems[0].String() + "]"
	case kindTupleOf:
		return "tuple[" + b.elems[0].String() + ", ...]"
	case kindTuple:
		if len(b.elems) == 0 {
			return "tuple[()]"
		}
		parts := make([]string, len(b.elems))
		for i, e := range b.elems {
			parts[i] = e.String()
		}
		return "tuple[" + strings.Join(parts, ", ") + "]"
	case kindDict:
		return "dict[" + b.elems[0].String() + ", " + b.elems[1].String() + "]"
	case kindCallable:
		return "typing.Callable"
	}
	return "?"
}
