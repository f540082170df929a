package main

import (
	"sort"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"pkt.systems/starldoc"
	"pkt.systems/starldoc/internal/docfile"
)

type indexEntry struct {
	name    string
	summary string
}

// renderIndexes lists the members of each selected entity, one bullet per
// member, with the summary cut to fit width.
func renderIndexes(docs []*docfile.Document, item string, width int) (string, error) {
	out := make([]string, 0, len(docs))
	for _, doc := range docs {
		name, selected, err := doc.Select(item)
		if err != nil {
			return "", err
		}
		out = append(out, renderIndex(name, selected, width))
	}
	return strings.Join(out, "\n\n"), nil
}

func renderIndex(name string, item starldoc.Item, width int) string {
	var entries []indexEntry
	switch v := item.(type) {
	case *starldoc.Module:
		for n, m := range v.Members {
			entries = append(entries, indexEntry{name: n, summary: summaryOf(m)})
		}
	case *starldoc.Type:
		for n, m := range v.Members {
			entries = append(entries, indexEntry{name: name + "." + n, summary: summaryOf(m)})
		}
	default:
		entries = append(entries, indexEntry{name: name, summary: summaryOf(item)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(name)
	b.WriteString("\n")
	for _, e := range entries {
		line := "- `" + e.name + "`"
		if e.summary != "" {
			line += ": " + e.summary
		}
		b.WriteString("\n")
		b.WriteString(truncateWithEllipsis(line, width))
	}
	return b.String()
}

func summaryOf(v any) string {
	var ds *starldoc.DocString
	switch e := v.(type) {
	case *starldoc.Function:
		ds = e.Docs
	case *starldoc.Property:
		ds = e.Docs
	case *starldoc.Type:
		ds = e.Docs
	case *starldoc.Module:
		ds = e.Docs
	}
	if ds == nil {
		return ""
	}
	summary, _, _ := strings.Cut(ds.Summary, "\n")
	return strings.TrimSpace(summary)
}

func truncateWithEllipsis(text string, limit int) string {
	if limit <= 0 || ansi.PrintableRuneWidth(text) <= limit {
		return text
	}
	return truncate.StringWithTail(text, uint(limit), "…")
}
