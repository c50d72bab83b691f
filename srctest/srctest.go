// Package srctest builds source-file fixtures for tests with explicit
// line endings.
package srctest

import "strings"

// Join joins lines with LF line endings and no trailing newline.
//
// Example:
//
//	want := srctest.Join(
//		"/// ### Parameters",
//		"fn id(x: A) -> A {}",
//	) // -> "/// ### Parameters\nfn id(x: A) -> A {}"
func Join(lines ...string) string {
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(line)
	}

	return sb.String()
}

// File joins lines with LF line endings and a trailing newline, the shape
// of a complete source file.
func File(lines ...string) string {
	return Join(lines...) + "\n"
}
