// Package docmigrate rewrites structured documentation comments in Rust
// source trees into fp_macros attribute invocations, preserving the original
// documentation text as the attribute's payload.
//
// Three doc-comment section kinds are recognized, each handled by its own
// [Transform]:
//
//   - "### Parameters" blocks become #[doc_params(...)] attributes, one
//     quoted description per documented parameter, with any `self` entry
//     dropped.
//   - "### Type Parameters" blocks become #[doc_type_params(...)]
//     attributes, with descriptions correlated against the generic
//     parameter list of the function declaration that follows the block.
//   - "### Type Signature" blocks become bare #[hm_signature] attributes
//     when the following function declaration has a body.
//
// A fourth transform, normalize-signature, converges trees migrated by an
// older tool revision by stripping arguments from existing
// #[hm_signature(...)] attributes.
//
// # Design Principles
//
// Three principles guide every design decision in this package:
//
//  1. Never corrupt what we do not understand: any block whose boundaries,
//     following declaration, or argument list cannot be confidently
//     established is left byte-identical. There is no error path out of
//     the core; uncertainty always resolves to a local no-op.
//
//  2. Idempotence: regenerated text no longer matches the block grammar
//     (the header line is followed by an attribute rather than bullet
//     entries), so re-running any transform over already-migrated text
//     is a byte-identical no-op.
//
//  3. Pure buffers: [Migrator.Process] is a pure function from an input
//     buffer to an output buffer plus a changed flag. File enumeration,
//     I/O, and reporting belong to the caller; no state crosses files.
//
// # Migration Pipeline
//
// Each transform runs the same staged pipeline over a buffer:
//
//  1. Locate blocks: a left-to-right scan finds header lines at a
//     consistent indent followed by one or more contiguous bullet entry
//     lines. A header with zero entries never matches.
//
//  2. Parse entries: each bullet line yields a (name, description) pair;
//     lines that do not match the bullet grammar are skipped rather than
//     failing the block. Embedded double quotes are escaped.
//
//  3. Scan the declaration: a bounded lookahead past the block skips
//     blank, comment, and attribute lines, classifies the first
//     remaining line, and (for type parameters) extracts the
//     angle-bracket generic list with a delimiter depth counter.
//
//  4. Correlate: documented entries are paired with declaration names
//     through a forward cursor with by-name and positional fallbacks;
//     names left over render as "Undocumented".
//
//  5. Rewrite: the block span is replaced with the rendered attribute,
//     and a post-pass guarantees the transform's use line appears exactly
//     once per changed file.
//
// The structural scanning is deliberately a hand-rolled depth counter over
// a small delimiter alphabet, not a Rust parser. It does not understand
// string or character literals; delimiter characters inside literals can
// confuse the bounded lookahead. This matches the tool it replaces and is
// acceptable because unrecognized input degrades to a no-op, never to a
// corrupted file.
package docmigrate
