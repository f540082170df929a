package starldoc

import (
	"strings"
	"unicode/utf8"

	"pkt.systems/starldoc/typing"
)

func typeSuffix(prefix string, ty typing.Ty) string {
	if ty.IsAny() {
		return ""
	}
	return prefix + ty.String()
}

func renderParamCode(p Param) string {
	var b strings.Builder
	b.WriteString(p.StarredName())
	b.WriteString(typeSuffix(": ", p.Type))
	if p.Default != "" {
		b.WriteString(" = ")
		b.WriteString(p.Default)
	}
	return b.String()
}

// paramCodes renders each parameter in order, with the "/" and "*" markers
// a signature needs to show positional-only and named-only parameters.
func paramCodes(ps Params) []string {
	out := make([]string, 0, len(ps)+2)
	starred := false
	for i, p := range ps {
		if p.Kind == ParamNamedOnly && !starred {
			out = append(out, "*")
			starred = true
		}
		if p.Kind == ParamArgs {
			starred = true
		}
		out = append(out, renderParamCode(p))
		if p.Kind == ParamPositionalOnly && (i+1 == len(ps) || ps[i+1].Kind != ParamPositionalOnly) {
			out = append(out, "/")
		}
	}
	return out
}

func renderParams(ps Params, indent string) string {
	codes := paramCodes(ps)
	if indent == "" {
		return strings.Join(codes, ", ")
	}
	var b strings.Builder
	for _, code := range codes {
		b.WriteString(indent)
		b.WriteString(code)
		b.WriteString(",\n")
	}
	return b.String()
}

func renderPrototype(cfg renderConfig, name string, f *Function) string {
	ret := typeSuffix(" -> ", f.Ret.Type)
	prefix := "def " + name
	single := prefix + "(" + renderParams(f.Params, "") + ")" + ret
	if len(f.Params.Documented()) > cfg.maxDocParams || utf8.RuneCountInString(single) > cfg.maxLineWidth {
		return prefix + "(\n" + renderParams(f.Params, "    ") + ")" + ret
	}
	return single
}

func renderCodeBlock(cfg renderConfig, contents string) string {
	return "```" + cfg.codeLanguage + "\n" + contents + "\n```"
}
