// Package docfile loads a documentation tree from YAML, JSON or TOML.
//
// A document describes one top-level entity. Kinds are "module", "type",
// "function" and "property"; when kind is omitted it is inferred from the
// fields present. Types are written in display form, e.g. "dict[str, int]".
//
//	name: config
//	docs:
//	  summary: Build configuration.
//	members:
//	  max_size:
//	    type: int
//	    docs: {summary: Maximum size.}
//	  load:
//	    params:
//	      - {name: path, type: str, docs: {summary: File to read.}}
//	    returns: {type: dict[str, str]}
package docfile

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"pkt.systems/starldoc"
	"pkt.systems/starldoc/typing"
)

// Format is the encoding of a document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat reports a file extension with no decoder.
var ErrUnknownFormat = errors.New("unknown document format")

// Document is a decoded top-level entity.
type Document struct {
	// Name is the entity name, defaulting to the file base name.
	Name string
	Item starldoc.Item
}

type docString struct {
	Summary string `yaml:"summary" toml:"summary"`
	Details string `yaml:"details" toml:"details"`
}

type param struct {
	Name    string     `yaml:"name" toml:"name"`
	Kind    string     `yaml:"kind" toml:"kind"`
	Type    string     `yaml:"type" toml:"type"`
	Default string     `yaml:"default" toml:"default"`
	Docs    *docString `yaml:"docs" toml:"docs"`
}

type returns struct {
	Type string     `yaml:"type" toml:"type"`
	Docs *docString `yaml:"docs" toml:"docs"`
}

type entry struct {
	Name        string            `yaml:"name" toml:"name"`
	Kind        string            `yaml:"kind" toml:"kind"`
	Docs        *docString        `yaml:"docs" toml:"docs"`
	Type        string            `yaml:"type" toml:"type"`
	Params      []param           `yaml:"params" toml:"params"`
	Returns     *returns          `yaml:"returns" toml:"returns"`
	Constructor *entry            `yaml:"constructor" toml:"constructor"`
	Members     map[string]*entry `yaml:"members" toml:"members"`
}

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.WithHint(
		errors.Wrapf(ErrUnknownFormat, "%s", path),
		"use a .yaml, .yml, .json or .toml extension",
	)
}

// Load reads and decodes the document at path.
func Load(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read document")
	}
	doc, err := Decode(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// Decode decodes a document. JSON is read with the YAML decoder.
func Decode(data []byte, format Format) (*Document, error) {
	if err := ValidateInput(data); err != nil {
		return nil, err
	}
	var root entry
	switch format {
	case FormatYAML, FormatJSON:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&root); err != nil {
			return nil, errors.Wrapf(err, "decode %s", format)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &root)
		if err != nil {
			return nil, errors.Wrap(err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Newf("decode toml: unknown field %q", undecoded[0].String())
		}
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", string(format))
	}
	item, err := root.item("")
	if err != nil {
		return nil, err
	}
	return &Document{Name: root.Name, Item: item}, nil
}

// child returns a member entry; a null entry decodes as an untyped property.
func (e *entry) child(name string) *entry {
	if c := e.Members[name]; c != nil {
		return c
	}
	return &entry{}
}

func (e *entry) kind() string {
	if e.Kind != "" {
		return strings.ToLower(e.Kind)
	}
	switch {
	case e.Params != nil || e.Returns != nil:
		return "function"
	case e.Constructor != nil:
		return "type"
	case e.Members != nil:
		return "module"
	}
	return "property"
}

func (e *entry) item(path string) (starldoc.Item, error) {
	switch kind := e.kind(); kind {
	case "module":
		return e.module(path)
	case "type":
		return e.typ(path)
	case "function":
		return e.function(path)
	case "property":
		return e.property(path)
	default:
		return nil, errors.Newf("%s: unknown kind %q", at(path), kind)
	}
}

func (e *entry) member(path string) (starldoc.Member, error) {
	switch kind := e.kind(); kind {
	case "function":
		return e.function(path)
	case "property":
		return e.property(path)
	default:
		return nil, errors.WithHint(
			errors.Newf("%s: kind %q cannot be a type member", at(path), kind),
			"type members are functions or properties",
		)
	}
}

func (e *entry) module(path string) (*starldoc.Module, error) {
	m := &starldoc.Module{Docs: e.Docs.convert(), Members: make(map[string]starldoc.ModuleMember, len(e.Members))}
	for _, name := range sortedKeys(e.Members) {
		child, err := e.child(name).item(join(path, name))
		if err != nil {
			return nil, err
		}
		mm, ok := child.(starldoc.ModuleMember)
		if !ok {
			return nil, errors.Newf("%s: not a module member", at(join(path, name)))
		}
		m.Members[name] = mm
	}
	return m, nil
}

func (e *entry) typ(path string) (*starldoc.Type, error) {
	t := &starldoc.Type{Docs: e.Docs.convert(), Members: make(map[string]starldoc.Member, len(e.Members))}
	var err error
	switch name := firstNonEmpty(lastSegment(path), e.Name); {
	case e.Type != "":
		if t.Ty, err = parseType(path, e.Type); err != nil {
			return nil, err
		}
	case name != "":
		t.Ty = typing.Name(name)
	default:
		t.Ty = typing.Any()
	}
	if e.Constructor != nil {
		if t.Constructor, err = e.Constructor.function(join(path, "constructor")); err != nil {
			return nil, err
		}
	}
	for _, name := range sortedKeys(e.Members) {
		member, err := e.child(name).member(join(path, name))
		if err != nil {
			return nil, err
		}
		t.Members[name] = member
	}
	return t, nil
}

func (e *entry) function(path string) (*starldoc.Function, error) {
	f := &starldoc.Function{Docs: e.Docs.convert(), Ret: starldoc.Return{Type: typing.Any()}}
	seen := make(map[string]struct{}, len(e.Params))
	for i, p := range e.Params {
		conv, err := p.convert(join(path, "params"), i)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[conv.Name]; dup {
			return nil, errors.Newf("%s: duplicate parameter %q", at(path), conv.Name)
		}
		seen[conv.Name] = struct{}{}
		f.Params = append(f.Params, conv)
	}
	if e.Returns != nil {
		ty, err := parseType(join(path, "returns"), e.Returns.Type)
		if err != nil {
			return nil, err
		}
		f.Ret = starldoc.Return{Type: ty, Docs: e.Returns.Docs.convert()}
	}
	return f, nil
}

func (e *entry) property(path string) (*starldoc.Property, error) {
	ty, err := parseType(path, e.Type)
	if err != nil {
		return nil, err
	}
	return &starldoc.Property{Docs: e.Docs.convert(), Type: ty}, nil
}

func (p param) convert(path string, idx int) (starldoc.Param, error) {
	name, kind := p.Name, p.Kind
	switch {
	case strings.HasPrefix(name, "**"):
		name, kind = name[2:], firstNonEmpty(kind, "kwargs")
	case strings.HasPrefix(name, "*"):
		name, kind = name[1:], firstNonEmpty(kind, "args")
	}
	if name == "" {
		return starldoc.Param{}, errors.Newf("%s[%d]: parameter name is required", at(path), idx)
	}
	k, err := parseKind(kind)
	if err != nil {
		return starldoc.Param{}, errors.Wrapf(err, "%s[%d]", at(path), idx)
	}
	ty, err := parseType(path+"."+name, p.Type)
	if err != nil {
		return starldoc.Param{}, err
	}
	return starldoc.Param{Name: name, Kind: k, Type: ty, Default: p.Default, Docs: p.Docs.convert()}, nil
}

func firstNonEmpty(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func parseKind(kind string) (starldoc.ParamKind, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "normal", "positional-or-named", "positional-or-keyword":
		return starldoc.ParamPositionalOrNamed, nil
	case "positional", "positional-only":
		return starldoc.ParamPositionalOnly, nil
	case "named", "named-only", "keyword", "keyword-only":
		return starldoc.ParamNamedOnly, nil
	case "args", "*args":
		return starldoc.ParamArgs, nil
	case "kwargs", "**kwargs":
		return starldoc.ParamKwargs, nil
	}
	return 0, errors.Newf("unknown parameter kind %q", kind)
}

func parseType(path, src string) (typing.Ty, error) {
	ty, err := typing.Parse(src)
	if err != nil {
		return typing.Ty{}, errors.Wrapf(err, "%s", at(path))
	}
	return ty, nil
}

func (d *docString) convert() *starldoc.DocString {
	if d == nil {
		return nil
	}
	return &starldoc.DocString{
		Summary: strings.TrimSpace(d.Summary),
		Details: strings.TrimSpace(d.Details),
	}
}

func sortedKeys(m map[string]*entry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func at(path string) string {
	if path == "" {
		return "<root>"
	}
	return path
}

func lastSegment(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}
