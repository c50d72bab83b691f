package docmigrate

import (
	"regexp"
	"strings"
)

// receiverName is the documented entry that never renders into a generated
// argument list: the method receiver.
const receiverName = "self"

// docBlock is one located documentation block: a header line at some
// indent, an optional bare doc line, and one or more contiguous bullet
// entry lines. The span [start, end) covers the header line through the
// final entry line including its newline.
type docBlock struct {
	indent string
	lines  []string
	start  int
	end    int
}

// blockPattern compiles the block grammar for a section header. name is the
// sub-pattern matched inside the backticks of each entry line; the
// Parameters kind accepts any non-backtick text while Type Parameters
// accepts identifiers only.
func blockPattern(header, name string) *regexp.Regexp {
	return regexp.MustCompile(
		`(?m)^([ \t]*)/// ### ` + header + `[ \t]*\n` +
			`(?:[ \t]*///[ \t]*\n)?` +
			"((?:[ \t]*///[ \t]*\\*[ \t]*`" + name + "`:.*\n)+)")
}

// findBlocks locates every non-overlapping block in src, left to right.
func findBlocks(src []byte, re *regexp.Regexp) []docBlock {
	var blocks []docBlock

	for _, m := range re.FindAllSubmatchIndex(src, -1) {
		body := string(src[m[4]:m[5]])

		blocks = append(blocks, docBlock{
			indent: string(src[m[2]:m[3]]),
			lines:  strings.Split(strings.TrimSuffix(body, "\n"), "\n"),
			start:  m[0],
			end:    m[1],
		})
	}

	return blocks
}

// docEntry is one parsed bullet entry: a documented name and its
// description with embedded double quotes escaped.
type docEntry struct {
	name string
	desc string
}

var entryLine = regexp.MustCompile("///[ \t]*\\*[ \t]*`([^`\n]+)`:[ \t]*(.*)")

// parseEntries extracts (name, description) pairs from the raw entry lines
// of a block, preserving source order. Lines that do not match the bullet
// grammar are skipped rather than failing the block.
func parseEntries(lines []string) []docEntry {
	var entries []docEntry

	for _, line := range lines {
		m := entryLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		entries = append(entries, docEntry{
			name: m[1],
			desc: escapeQuotes(strings.TrimSpace(m[2])),
		})
	}

	return entries
}

// escapeQuotes escapes literal double quotes so a description embeds
// safely in a quoted attribute argument.
func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
