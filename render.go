package docmigrate

import (
	"bytes"
	"strings"
)

// renderAttribute builds the replacement text for a matched block: the
// header line, a bare doc line, and the attribute with one argument per
// line at one extra level of indentation. The trailing newline keeps the
// attribute on its own line ahead of the declaration.
func renderAttribute(indent, header, attr string, args []renderedArg) string {
	var sb strings.Builder

	sb.WriteString(indent)
	sb.WriteString("/// ### ")
	sb.WriteString(header)
	sb.WriteString("\n")
	sb.WriteString(indent)
	sb.WriteString("///\n")
	sb.WriteString(indent)
	sb.WriteString("#[")
	sb.WriteString(attr)
	sb.WriteString("(\n")

	for i, a := range args {
		sb.WriteString(indent)
		sb.WriteString("\t")
		sb.WriteString(a.String())

		if i < len(args)-1 {
			sb.WriteString(",")
		}

		sb.WriteString("\n")
	}

	sb.WriteString(indent)
	sb.WriteString(")]\n")

	return sb.String()
}

// rewriteBlocks substitutes each block for which fn returns a replacement,
// leaving every other byte of src untouched. Returns src unchanged when no
// block was rewritten.
func rewriteBlocks(src []byte, blocks []docBlock, fn func(docBlock) (string, bool)) ([]byte, bool) {
	if len(blocks) == 0 {
		return src, false
	}

	var buf bytes.Buffer

	last := 0
	changed := false

	for _, b := range blocks {
		repl, ok := fn(b)
		if !ok {
			continue
		}

		buf.Write(src[last:b.start])
		buf.WriteString(repl)

		last = b.end
		changed = true
	}

	if !changed {
		return src, false
	}

	buf.Write(src[last:])

	return buf.Bytes(), true
}

// ensureUseLine inserts use as its own line unless it already appears
// anywhere in src. The insertion point is the first line that is neither a
// shebang, an inner attribute or module doc comment, nor blank, so the
// import lands after any file-level preamble.
func ensureUseLine(src []byte, use string) []byte {
	if bytes.Contains(src, []byte(use)) {
		return src
	}

	lines := bytes.SplitAfter(src, []byte("\n"))

	idx := 0
	if len(lines) > 0 && bytes.HasPrefix(lines[0], []byte("#!")) && !bytes.HasPrefix(lines[0], []byte("#![")) {
		idx++
	}

	for idx < len(lines) {
		s := bytes.TrimSpace(lines[idx])
		if len(s) == 0 || bytes.HasPrefix(s, []byte("//!")) || bytes.HasPrefix(s, []byte("#!")) {
			idx++

			continue
		}

		break
	}

	var buf bytes.Buffer

	for i, line := range lines {
		if i == idx {
			buf.WriteString(use)
			buf.WriteByte('\n')
		}

		buf.Write(line)
	}

	if idx >= len(lines) {
		buf.WriteString(use)
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}
