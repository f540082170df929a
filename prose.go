package starldoc

import "strings"

type proseMode uint8

const (
	proseSummary proseMode = iota
	proseDetails
	proseCombined
)

// selectProse picks the part of ds that mode asks for. ok is false when
// there is nothing to emit.
func selectProse(mode proseMode, ds *DocString) (string, bool) {
	if ds == nil {
		return "", false
	}
	switch mode {
	case proseSummary:
		return ds.Summary, true
	case proseDetails:
		return ds.Details, ds.Details != ""
	default:
		if ds.Details == "" {
			return ds.Summary, true
		}
		return ds.Summary + "\n\n" + ds.Details, true
	}
}

// escapeName keeps underscores in names from being read as emphasis.
// Only for names outside code spans.
func escapeName(name string) string {
	return strings.ReplaceAll(name, "_", `\_`)
}

// splitLines splits like a reader of text lines: a trailing newline does not
// start an empty line and a CR before LF is dropped.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
