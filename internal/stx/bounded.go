package stx

import (
	"regexp"
	"strings"
)

// boundary reports whether the byte next to a match allows it.
type boundary func(c byte) bool

// replaceBounded replaces non-overlapping matches of re whose surrounding
// bytes satisfy before and after. The neighbouring bytes are inspected but
// not consumed, so two matches may share a separator. At the start or end of
// s the boundary always holds.
func replaceBounded(s string, re *regexp.Regexp, before, after boundary, repl func(m []string) string) string {
	var (
		b      strings.Builder
		copied int
		from   int
	)
	for from < len(s) {
		loc := re.FindStringSubmatchIndex(s[from:])
		if loc == nil {
			break
		}
		start, end := from+loc[0], from+loc[1]
		if (start > 0 && !before(s[start-1])) || (end < len(s) && !after(s[end])) {
			from = start + 1
			continue
		}
		m := make([]string, len(loc)/2)
		for i := range m {
			if lo := loc[2*i]; lo >= 0 {
				m[i] = s[from+lo : from+loc[2*i+1]]
			}
		}
		b.WriteString(s[copied:start])
		b.WriteString(repl(m))
		copied, from = end, end
		if end == start {
			from++
		}
	}
	if copied == 0 {
		return s
	}
	b.WriteString(s[copied:])
	return b.String()
}

func oneOf(set string) boundary {
	return func(c byte) bool {
		return c <= ' ' || strings.IndexByte(set, c) >= 0
	}
}
