package docmigrate

import "strings"

// undocumented is rendered for a generic name with no usable entry.
const undocumented = "Undocumented"

// renderedArg is one argument of a generated attribute: either a plain
// quoted description, or a quoted (name, description) pair when an entry
// was attached positionally to a generic name it does not match.
type renderedArg struct {
	name string
	desc string
	pair bool
}

func (a renderedArg) String() string {
	if a.pair {
		return `("` + a.name + `", "` + a.desc + `")`
	}

	return `"` + a.desc + `"`
}

// correlate pairs documentation entries with the names a declaration's
// generic list introduces, producing one argument per name in declaration
// order.
//
// Entries are consumed through a single forward cursor, never revisited
// once consumed. For each generic name:
//
//  1. If the entry at the cursor names it (exactly, or after stripping the
//     generic's leading lifetime quote), that description is used and the
//     cursor advances.
//  2. Otherwise an out-of-order entry with a matching name is used without
//     moving the cursor. Duplicate entry names resolve to the last one.
//  3. Otherwise, if the generic is not a lifetime and an unconsumed entry
//     remains, that entry attaches positionally as a (name, description)
//     pair, keeping the mismatched name visible in the output, and the
//     cursor advances.
//  4. Otherwise the name renders as "Undocumented".
//
// Authors usually list type parameters in declaration order but may
// reorder or omit entries, lifetimes especially; the cursor-plus-fallback
// rules tolerate both without failing the block.
func correlate(names []string, entries []docEntry) []renderedArg {
	byName := make(map[string]string, len(entries))
	for _, e := range entries {
		byName[e.name] = e.desc
	}

	args := make([]renderedArg, 0, len(names))
	cursor := 0

	for _, generic := range names {
		clean := strings.TrimPrefix(generic, "'")

		if cursor < len(entries) {
			e := entries[cursor]
			if e.name == generic || e.name == clean {
				args = append(args, renderedArg{desc: e.desc})
				cursor++

				continue
			}
		}

		if desc, ok := byName[generic]; ok {
			args = append(args, renderedArg{desc: desc})

			continue
		}

		if desc, ok := byName[clean]; ok {
			args = append(args, renderedArg{desc: desc})

			continue
		}

		if !strings.HasPrefix(generic, "'") && cursor < len(entries) {
			e := entries[cursor]
			args = append(args, renderedArg{name: e.name, desc: e.desc, pair: true})
			cursor++

			continue
		}

		args = append(args, renderedArg{desc: undocumented})
	}

	return args
}
