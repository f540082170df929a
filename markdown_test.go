package starldoc

import (
	"strings"
	"testing"

	"pkt.systems/starldoc/typing"
)

func assertMarkdown(t *testing.T, got, want string) {
	t.Helper()
	if got != want {
		t.Fatalf("markdown mismatch\n---want---\n%s\n---got---\n%s", want, got)
	}
}

func docs(summary string) *DocString { return &DocString{Summary: summary} }

func TestRenderPropertyMaxSize(t *testing.T) {
	t.Parallel()
	got := RenderDocMember("max_size", &Property{Type: typing.Name("int"), Docs: docs("Maximum size.")})
	want := "## max\\_size\n\n```python\nmax_size: int\n```\n\nMaximum size."
	assertMarkdown(t, got, want)
}

func TestRenderPropertySummaryAndDetails(t *testing.T) {
	t.Parallel()
	got := RenderDocItem("p", &Property{
		Type: typing.List(typing.Name("str")),
		Docs: &DocString{Summary: "Names.", Details: "Sorted on write."},
	})
	want := "## p\n\n```python\np: list[str]\n```\n\nNames.\n\nSorted on write."
	assertMarkdown(t, got, want)
}

func TestRenderPropertyWithoutDocs(t *testing.T) {
	t.Parallel()
	got := RenderDocMember("p", &Property{Type: typing.Any()})
	assertMarkdown(t, got, "## p\n\n```python\np: typing.Any\n```")
}

func TestEscapedNameHasNoBareUnderscores(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"a", "_", "__init__", "max_size_limit", "_x_y_z_"} {
		k := strings.Count(name, "_")
		escaped := escapeName(name)
		if got := strings.Count(escaped, `\_`); got != k {
			t.Fatalf("escapeName(%q)=%q has %d escapes, want %d", name, escaped, got, k)
		}
		if got := strings.Count(strings.ReplaceAll(escaped, `\_`, ""), "_"); got != 0 {
			t.Fatalf("escapeName(%q)=%q has bare underscores", name, escaped)
		}
	}
}

func TestRenderFunctionAllSections(t *testing.T) {
	t.Parallel()
	f := &Function{
		Docs: &DocString{Summary: "Does it.", Details: "Long details."},
		Params: Params{
			{Name: "x", Type: typing.Name("int"), Docs: &DocString{Summary: "The x.", Details: "More\nlines"}},
			{Name: "y", Type: typing.Any()},
			{Name: "args", Kind: ParamArgs, Type: typing.Any(), Docs: docs("Extra.")},
		},
		Ret: Return{Type: typing.Name("str"), Docs: docs("A string.")},
	}
	got := RenderDocItem("do_it", f)
	want := strings.Join([]string{
		"## do\\_it",
		"",
		"```python",
		"def do_it(x: int, y, *args) -> str",
		"```",
		"",
		"Does it.",
		"",
		"#### Parameters",
		"",
		"* `x`: The x.",
		"  ",
		"  More",
		"  lines",
		"* `*args`: Extra.",
		"",
		"",
		"#### Returns",
		"",
		"A string.",
		"",
		"#### Details",
		"",
		"Long details.",
	}, "\n")
	assertMarkdown(t, got, want)
}

func TestRenderFunctionDetailsFlowWithoutHeader(t *testing.T) {
	t.Parallel()
	f := &Function{
		Docs: &DocString{Summary: "Short.", Details: "Longer."},
		Ret:  Return{Type: typing.Any()},
	}
	got := RenderDocMember("f", f)
	assertMarkdown(t, got, "## f\n\n```python\ndef f()\n```\n\nShort.\n\nLonger.")
}

func TestRenderFunctionReturnsOnly(t *testing.T) {
	t.Parallel()
	f := &Function{
		Ret: Return{Type: typing.Name("bool"), Docs: &DocString{Summary: "True on success.", Details: "False otherwise."}},
	}
	got := RenderDocMember("ok", f)
	want := "## ok\n\n```python\ndef ok() -> bool\n```\n\n#### Returns\n\nTrue on success.\n\nFalse otherwise."
	assertMarkdown(t, got, want)
}

func TestRenderFunctionFourUndocumentedParams(t *testing.T) {
	t.Parallel()
	f := &Function{
		Params: Params{{Name: "a", Type: typing.Any()}, {Name: "b", Type: typing.Any()}, {Name: "c", Type: typing.Any()}, {Name: "d", Type: typing.Any()}},
		Ret:    Return{Type: typing.Any()},
	}
	got := RenderDocMember("f", f)
	assertMarkdown(t, got, "## f\n\n```python\ndef f(a, b, c, d)\n```")
}

func TestRenderParamEmptyDocs(t *testing.T) {
	t.Parallel()
	f := &Function{
		Params: Params{{Name: "a", Type: typing.Any(), Docs: docs("")}},
		Ret:    Return{Type: typing.Any()},
	}
	got := RenderDocMember("f", f)
	assertMarkdown(t, got, "## f\n\n```python\ndef f(a)\n```\n\n#### Parameters\n\n* `a`\n")
}

func TestRenderDocParam(t *testing.T) {
	t.Parallel()
	p := Param{Name: "args", Kind: ParamArgs, Type: typing.Any(), Docs: &DocString{Summary: "Extra.", Details: "Any count."}}
	assertMarkdown(t, RenderDocParam(p.StarredName(), p), "* `*args`: Extra.\n  \n  Any count.\n")
	if got := RenderDocParam("x", Param{Name: "x", Type: typing.Any()}); got != "" {
		t.Fatalf("expected empty output for undocumented param, got %q", got)
	}
}

func TestRenderModuleSortsMembers(t *testing.T) {
	t.Parallel()
	m := &Module{
		Docs: &DocString{Summary: "Mod.", Details: "More about mod."},
		Members: map[string]ModuleMember{
			"zeta":  &Property{Type: typing.Name("int")},
			"mid":   &Type{Ty: typing.Name("mid_t"), Docs: docs("A type.")},
			"alpha": &Function{Ret: Return{Type: typing.Any()}},
			"Zed":   &Property{Type: typing.Name("str")},
			"inner": &Module{Docs: docs("Skipped.")},
		},
	}
	got := RenderDocItem("m", m)
	want := "# m\n\nMod.\n\nMore about mod.\n\n" + strings.Join([]string{
		"## Zed\n\n```python\nZed: str\n```",
		"## alpha\n\n```python\ndef alpha()\n```",
		"## mid\n\n```python\nmid: mid_t\n```\n\nA type.",
		"## zeta\n\n```python\nzeta: int\n```",
	}, memberSeparator)
	assertMarkdown(t, got, want)
}

func TestRenderModuleReverseInsertionOrder(t *testing.T) {
	t.Parallel()
	names := []string{"e", "d", "c", "b", "a"}
	members := make(map[string]ModuleMember, len(names))
	for _, n := range names {
		members[n] = &Property{Type: typing.Name("int")}
	}
	got := RenderDocItem("m", &Module{Members: members})
	blocks := strings.Split(strings.TrimPrefix(got, "# m\n\n"), "\n\n---\n\n")
	if len(blocks) != len(names) {
		t.Fatalf("expected %d blocks, got %d: %q", len(names), len(blocks), got)
	}
	for i, want := range []string{"a", "b", "c", "d", "e"} {
		if !strings.HasPrefix(blocks[i], "## "+want+"\n") {
			t.Fatalf("block %d: expected member %q, got %q", i, want, blocks[i])
		}
	}
	if strings.Count(got, "\n---\n") != len(names)-1 {
		t.Fatalf("expected %d rules in %q", len(names)-1, got)
	}
}

func TestRenderTypeWithConstructor(t *testing.T) {
	t.Parallel()
	ty := &Type{
		Docs: docs("A foo."),
		Constructor: &Function{
			Params: Params{{Name: "x", Type: typing.Name("int")}},
			Ret:    Return{Type: typing.Any()},
		},
		Members: map[string]Member{
			"size": &Property{Type: typing.Name("int")},
			"get":  &Function{Ret: Return{Type: typing.Name("str")}},
		},
	}
	got := RenderDocItem("Foo", ty)
	want := strings.Join([]string{
		"# `Foo` type\n\nA foo.\n\n```python\ndef Foo(x: int)\n```",
		"## Foo.get\n\n```python\ndef Foo.get() -> str\n```",
		"## Foo.size\n\n```python\nFoo.size: int\n```",
	}, memberSeparator)
	assertMarkdown(t, got, want)
}

func TestRenderTypeWithoutConstructorOrDocs(t *testing.T) {
	t.Parallel()
	ty := &Type{Members: map[string]Member{"n": &Property{Type: typing.Name("int")}}}
	got := RenderDocItem("T", ty)
	assertMarkdown(t, got, "# `T` type\n\n## T.n\n\n```python\nT.n: int\n```")
}

func TestRenderDocItemNil(t *testing.T) {
	t.Parallel()
	if got := RenderDocItem("x", nil); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestRenderWithCodeLanguage(t *testing.T) {
	t.Parallel()
	got := RenderDocMember("p", &Property{Type: typing.Name("int")}, WithCodeLanguage("starlark"))
	assertMarkdown(t, got, "## p\n\n```starlark\np: int\n```")
}

func TestRenderUnsetTypesOmitAnnotations(t *testing.T) {
	t.Parallel()
	got := RenderDocMember("f", &Function{Params: Params{{Name: "x"}}})
	assertMarkdown(t, got, "## f\n\n```python\ndef f(x)\n```")

	got = RenderDocMember("f", &Function{Params: Params{{Name: "x", Docs: docs("X.")}}})
	assertMarkdown(t, got, "## f\n\n```python\ndef f(x)\n```\n\n#### Parameters\n\n* `x`: X.\n")

	got = RenderDocMember("p", &Property{})
	assertMarkdown(t, got, "## p\n\n```python\np: typing.Any\n```")

	got = RenderDocItem("m", &Module{Members: map[string]ModuleMember{"T": &Type{Docs: docs("A type.")}}})
	assertMarkdown(t, got, "# m\n\n## T\n\n```python\nT: typing.Any\n```\n\nA type.")
}

func TestRenderEmptyContainers(t *testing.T) {
	t.Parallel()
	assertMarkdown(t, RenderDocItem("m", &Module{}), "# m\n\n")
	assertMarkdown(t, RenderDocItem("m", &Module{Docs: docs("Nothing here.")}), "# m\n\nNothing here.\n\n")
	assertMarkdown(t, RenderDocItem("T", &Type{}), "# `T` type\n\n")
}
