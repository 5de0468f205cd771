package stx

import "strings"

const tabWidth = 8

// Untabify converts indentation tabs to spaces. A tab inside the leading
// whitespace of a line advances to the next multiple of 8 columns; tabs after
// the first non-blank character are left alone.
func Untabify(s string) string {
	if strings.IndexByte(s, '\t') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		line := s
		if eol := strings.IndexByte(s, '\n'); eol >= 0 {
			line = s[:eol+1]
		}
		s = s[len(line):]

		col, i, tabbed := 0, 0, false
	lead:
		for ; i < len(line); i++ {
			switch line[i] {
			case ' ':
				col++
			case '\t':
				col = (col/tabWidth + 1) * tabWidth
				tabbed = true
			default:
				break lead
			}
		}
		if !tabbed {
			b.WriteString(line)
			continue
		}
		b.WriteString(strings.Repeat(" ", col))
		b.WriteString(line[i:])
	}
	return b.String()
}

// IndentLevel returns the minimum indentation of the non-blank lines in s.
// It reports false when s has no non-blank line.
func IndentLevel(s string) (int, bool) {
	level, found := 0, false
	for _, line := range strings.Split(s, "\n") {
		if isBlank(line) {
			continue
		}
		n := leadingSpaces(line)
		if !found || n < level {
			level, found = n, true
		}
		if level == 0 {
			break
		}
	}
	return level, found
}

// Indent prefixes every non-blank line of s with n spaces.
func Indent(s string, n int) string {
	if n <= 0 {
		return s
	}
	tab := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if !isBlank(line) {
			lines[i] = tab + line
		}
	}
	return strings.Join(lines, "\n")
}

// Reindent shifts a block of text so that its minimum indentation is n.
// Relative indentation between lines is preserved.
func Reindent(s string, n int) string {
	s = Untabify(s)
	level, ok := IndentLevel(s)
	if !ok || level == n {
		return s
	}
	if n > level {
		return Indent(s, n-level)
	}
	return dedent(s, level-n)
}

// dedent removes up to n leading spaces from every line.
func dedent(s string, n int) string {
	if n <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		cut := min(n, leadingSpaces(line))
		lines[i] = line[cut:]
	}
	return strings.Join(lines, "\n")
}

func leadingSpaces(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
