package starldoc

import (
	"sort"
	"strings"
)

const memberSeparator = "\n\n---\n\n"

// RenderDocItem renders a top-level entity as a Markdown section.
// A nil item renders as the empty string.
func RenderDocItem(name string, item Item, opts ...RenderOption) string {
	cfg := newRenderConfig(opts)
	switch v := item.(type) {
	case *Module:
		return renderModule(cfg, name, v)
	case *Type:
		return renderType(cfg, name, v)
	case *Function:
		return renderFunction(cfg, name, v, true)
	case *Property:
		return renderProperty(cfg, name, v)
	}
	return ""
}

// RenderDocMember renders a function or property, e.g. for hover text.
func RenderDocMember(name string, member Member, opts ...RenderOption) string {
	return renderMember(newRenderConfig(opts), name, member)
}

// RenderDocParam renders the documentation of a single parameter as a one
// entry list. It returns "" when the parameter has no docs.
func RenderDocParam(name string, param Param) string {
	out, _ := renderParamDocs([]namedParam{{name: name, param: param}})
	return out
}

func renderMember(cfg renderConfig, name string, member Member) string {
	switch v := member.(type) {
	case *Function:
		return renderFunction(cfg, name, v, true)
	case *Property:
		return renderProperty(cfg, name, v)
	}
	return ""
}

func renderProperty(cfg renderConfig, name string, p *Property) string {
	var b strings.Builder
	b.WriteString("## ")
	b.WriteString(escapeName(name))
	b.WriteString("\n\n")
	b.WriteString(renderCodeBlock(cfg, name+": "+p.Type.String()))
	if summary, ok := selectProse(proseSummary, p.Docs); ok {
		b.WriteString("\n\n")
		b.WriteString(summary)
	}
	if details, ok := selectProse(proseDetails, p.Docs); ok {
		b.WriteString("\n\n")
		b.WriteString(details)
	}
	return b.String()
}

type namedParam struct {
	name  string
	param Param
}

// renderParamDocs renders a bullet per documented parameter. ok is false
// when no parameter carries docs.
func renderParamDocs(params []namedParam) (string, bool) {
	var (
		b  strings.Builder
		ok bool
	)
	for _, np := range params {
		if np.param.Docs == nil {
			continue
		}
		ok = true
		docs, _ := selectProse(proseCombined, np.param.Docs)
		lines := splitLines(docs)
		if len(lines) == 0 {
			b.WriteString("* `" + np.name + "`\n")
			continue
		}
		b.WriteString("* `" + np.name + "`: " + lines[0] + "\n")
		for _, line := range lines[1:] {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String(), ok
}

func renderFunction(cfg renderConfig, name string, f *Function, includeHeader bool) string {
	var b strings.Builder
	if includeHeader {
		b.WriteString("## ")
		b.WriteString(escapeName(name))
		b.WriteString("\n\n")
	}
	b.WriteString(renderCodeBlock(cfg, renderPrototype(cfg, name, f)))

	if summary, ok := selectProse(proseSummary, f.Docs); ok {
		b.WriteString("\n\n")
		b.WriteString(summary)
	}

	named := make([]namedParam, len(f.Params))
	for i, p := range f.Params {
		named[i] = namedParam{name: p.StarredName(), param: p}
	}
	paramDocs, hasParams := renderParamDocs(named)
	if hasParams {
		b.WriteString("\n\n#### Parameters\n\n")
		b.WriteString(paramDocs)
	}
	returns, hasReturns := selectProse(proseCombined, f.Ret.Docs)
	if hasReturns {
		b.WriteString("\n\n#### Returns\n\n")
		b.WriteString(returns)
	}
	if details, ok := selectProse(proseDetails, f.Docs); ok {
		if hasParams || hasReturns {
			b.WriteString("\n\n#### Details\n\n")
		} else {
			b.WriteString("\n\n")
		}
		b.WriteString(details)
	}
	return b.String()
}

type namedMember struct {
	name   string
	member Member
}

// renderMembers lays out a container: its header and prose, then the
// leading block (if any) and every member sorted by name, separated by rules.
func renderMembers(cfg renderConfig, name string, docs *DocString, prefix string, members []namedMember, leading string) string {
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].name < members[j].name
	})
	blocks := make([]string, 0, len(members)+1)
	if leading != "" {
		blocks = append(blocks, leading)
	}
	for _, m := range members {
		blocks = append(blocks, renderMember(cfg, prefix+m.name, m.member))
	}

	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(name)
	if summary, ok := selectProse(proseCombined, docs); ok {
		b.WriteString("\n\n")
		b.WriteString(summary)
	}
	b.WriteString("\n\n")
	b.WriteString(strings.Join(blocks, memberSeparator))
	return b.String()
}

func renderModule(cfg renderConfig, name string, m *Module) string {
	members := make([]namedMember, 0, len(m.Members))
	for n, mm := range m.Members {
		if member, ok := asMember(mm); ok {
			members = append(members, namedMember{name: n, member: member})
		}
	}
	return renderMembers(cfg, name, m.Docs, "", members, "")
}

func renderType(cfg renderConfig, name string, t *Type) string {
	var constructor string
	if t.Constructor != nil {
		constructor = renderFunction(cfg, name, t.Constructor, false)
	}
	members := make([]namedMember, 0, len(t.Members))
	for n, m := range t.Members {
		members = append(members, namedMember{name: n, member: m})
	}
	return renderMembers(cfg, "`"+name+"` type", t.Docs, name+".", members, constructor)
}
