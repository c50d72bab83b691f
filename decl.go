package docmigrate

import (
	"regexp"
	"strings"
	"unicode"
)

// lookaheadWindow bounds how far past a block the declaration scanner
// reads. Large enough to reach the next declaration in practice.
const lookaheadWindow = 5000

var (
	fnWord       = regexp.MustCompile(`\bfn\b`)
	fnName       = regexp.MustCompile(`\bfn\s+(\w+)`)
	openAngle    = regexp.MustCompile(`^\s*<`)
	lineComment  = regexp.MustCompile(`//[^\n]*`)
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	constPrefix  = regexp.MustCompile(`^const\s+`)
)

// lookahead returns the bounded window of src starting at from.
func lookahead(src []byte, from int) string {
	end := min(from+lookaheadWindow, len(src))

	return string(src[from:end])
}

// nextItemLine returns the first line in window that is not blank, not a
// comment, and not an attribute: the candidate declaration line.
func nextItemLine(window string) (string, bool) {
	for line := range strings.SplitSeq(window, "\n") {
		s := strings.TrimSpace(line)
		if s == "" || strings.HasPrefix(s, "//") || strings.HasPrefix(s, "#[") {
			continue
		}

		return s, true
	}

	return "", false
}

// stripComments removes line and block comments so delimiter scanning
// cannot be thrown off by commented-out code. Doc comments are line
// comments and are removed with the rest.
func stripComments(window string) string {
	window = lineComment.ReplaceAllString(window, "")

	return blockComment.ReplaceAllString(window, "")
}

// genericList extracts the raw angle-bracket generic list following the
// first function name in window, including the outer brackets. The window
// must already have comments stripped. Nesting is tracked with a depth
// counter; a list that does not close within the window is rejected.
func genericList(window string) (string, bool) {
	m := fnName.FindStringIndex(window)
	if m == nil {
		return "", false
	}

	rest := window[m[1]:]

	loc := openAngle.FindStringIndex(rest)
	if loc == nil {
		return "", false
	}

	depth := 0
	for i := loc[1] - 1; i < len(rest); i++ {
		switch rest[i] {
		case '<':
			depth++
		case '>':
			depth--
		}

		if depth == 0 {
			return rest[loc[1]-1 : i+1], true
		}
	}

	return "", false
}

// splitGenerics reduces a raw angle-bracket list to the names it
// introduces: items are split on commas at nesting depth zero, a leading
// const keyword is stripped, and each item keeps the token before the
// first of ':', whitespace, or '='. Order and duplicates are preserved;
// empty items are dropped. Lifetime names keep their leading quote.
func splitGenerics(list string) []string {
	list = strings.TrimSpace(list)
	if !strings.HasPrefix(list, "<") || !strings.HasSuffix(list, ">") {
		return nil
	}

	inner := list[1 : len(list)-1]

	var items []string

	depth := 0
	start := 0

	for i := range len(inner) {
		switch inner[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				items = append(items, inner[start:i])
				start = i + 1
			}
		}
	}

	items = append(items, inner[start:])

	var names []string

	for _, item := range items {
		item = strings.TrimSpace(item)
		item = constPrefix.ReplaceAllString(item, "")

		name := item
		if i := strings.IndexFunc(item, isNameEnd); i >= 0 {
			name = item[:i]
		}

		if name != "" {
			names = append(names, name)
		}
	}

	return names
}

func isNameEnd(r rune) bool {
	return r == ':' || r == '=' || unicode.IsSpace(r)
}

// hasBody reports whether the first fn in window reaches an opening brace
// at delimiter depth zero before a top-level semicolon terminates it as a
// forward declaration. The window must already have comments stripped.
func hasBody(window string) bool {
	m := fnWord.FindStringIndex(window)
	if m == nil {
		return false
	}

	level := 0

	for i := m[1]; i < len(window); i++ {
		switch window[i] {
		case '{':
			if level == 0 {
				return true
			}

			level++

		case '(', '[':
			level++

		case '}', ')', ']':
			level--

		case ';':
			if level == 0 {
				return false
			}
		}
	}

	return false
}
