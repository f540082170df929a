package starldoc

import "pkt.systems/starldoc/typing"

// DocString is the prose attached to a documented entity.
type DocString struct {
	// Summary is the first paragraph. Always set when a DocString exists.
	Summary string
	// Details is the remaining prose, empty when absent.
	Details string
}

// ParamKind says how a parameter is bound at a call site.
type ParamKind uint8

const (
	// ParamPositionalOrNamed is an ordinary parameter.
	ParamPositionalOrNamed ParamKind = iota
	// ParamPositionalOnly may only be passed by position.
	ParamPositionalOnly
	// ParamNamedOnly may only be passed by keyword.
	ParamNamedOnly
	// ParamArgs collects extra positional arguments (*args).
	ParamArgs
	// ParamKwargs collects extra keyword arguments (**kwargs).
	ParamKwargs
)

// Param is one parameter of a function.
type Param struct {
	Name string
	Kind ParamKind
	Docs *DocString
	// Type is the declared type. For *args and **kwargs it is the item type.
	Type typing.Ty
	// Default is the display form of the default value, empty when required.
	Default string
}

// StarredName returns the name as written in a signature, e.g. "*args".
func (p Param) StarredName() string {
	switch p.Kind {
	case ParamArgs:
		return "*" + p.Name
	case ParamKwargs:
		return "**" + p.Name
	}
	return p.Name
}

// Params is a parameter list in call-signature order.
type Params []Param

// Documented returns the parameters that carry docs, in order.
func (ps Params) Documented() []Param {
	var out []Param
	for _, p := range ps {
		if p.Docs != nil {
			out = append(out, p)
		}
	}
	return out
}

// Return describes a function result.
type Return struct {
	Type typing.Ty
	Docs *DocString
}

// Member is a Function or a Property.
type Member interface {
	Item
	member()
}

// ModuleMember is anything a module may contain.
type ModuleMember interface {
	moduleMember()
}

// Item is any entity RenderDocItem accepts.
type Item interface {
	item()
}

// Function documents a callable.
type Function struct {
	Docs   *DocString
	Params Params
	Ret    Return
}

// Property documents a value attribute.
type Property struct {
	Docs *DocString
	Type typing.Ty
}

// Type documents a composite type with members.
type Type struct {
	Docs *DocString
	// Ty is the type value a module shows when it lists this type as a member.
	Ty          typing.Ty
	Constructor *Function
	Members     map[string]Member
}

// Module documents a namespace of members and types.
type Module struct {
	Docs    *DocString
	Members map[string]ModuleMember
}

func (*Function) item()         {}
func (*Function) member()       {}
func (*Function) moduleMember() {}
func (*Property) item()         {}
func (*Property) member()       {}
func (*Property) moduleMember() {}
func (*Type) item()             {}
func (*Type) moduleMember()     {}
func (*Module) item()           {}
func (*Module) moduleMember()   {}

// asMember converts a module entry to something renderable as a member.
// Types collapse to a property with their own docs; nested modules have no
// member form.
func asMember(m ModuleMember) (Member, bool) {
	switch v := m.(type) {
	case *Function:
		return v, true
	case *Property:
		return v, true
	case *Type:
		return &Property{Docs: v.Docs, Type: v.Ty}, true
	}
	return nil, false
}
