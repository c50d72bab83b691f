package docmigrate

import (
	"bytes"
	"regexp"
)

const (
	signatureHeader = "Type Signature"
	signatureAttr   = "hm_signature"
	signatureUse    = "use fp_macros::hm_signature;"
)

// A Type Signature block is a header, a mandatory bare doc line, and one
// backticked signature line. The match stops at the closing backtick; the
// remainder of the line stays in place.
var signatureBlock = regexp.MustCompile(
	`(?m)^([ \t]*)/// ### Type Signature[ \t]*\n` +
		`[ \t]*///[ \t]*\n` +
		"[ \t]*///[ \t]*`[^`\n]+`")

type signatureTransform struct{}

// NewSignature returns the transform that rewrites "### Type Signature"
// blocks into bare #[hm_signature] attributes. The signature text itself
// is dropped; the macro re-derives it from the declaration. The attribute
// is attached only when the following function declaration has a body: a
// forward declaration, or a declaration the bounded lookahead cannot
// resolve, leaves the block unmodified.
func NewSignature() Transform { return signatureTransform{} }

func (signatureTransform) Name() string { return "signature" }

func (signatureTransform) UseLine() string { return signatureUse }

func (signatureTransform) Apply(src []byte) ([]byte, bool) {
	matches := signatureBlock.FindAllSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src, false
	}

	var buf bytes.Buffer

	last := 0
	changed := false

	for _, m := range matches {
		indent := string(src[m[2]:m[3]])
		window := lookahead(src, m[1])

		line, ok := nextItemLine(window)
		if !ok || !fnWord.MatchString(line) {
			continue
		}

		if !hasBody(stripComments(window)) {
			continue
		}

		buf.Write(src[last:m[0]])
		buf.WriteString(indent + "/// ### " + signatureHeader + "\n")
		buf.WriteString(indent + "///\n")
		buf.WriteString(indent + "#[" + signatureAttr + "]")

		last = m[1]
		changed = true
	}

	if !changed {
		return src, false
	}

	buf.Write(src[last:])

	return buf.Bytes(), true
}

var signatureArgs = regexp.MustCompile(`#\[` + signatureAttr + `\([^)]*\)\]`)

type signatureNormalizeTransform struct{}

// NewSignatureNormalize returns the transform that strips arguments from
// existing #[hm_signature(...)] attributes, converging files migrated by
// an older tool revision that emitted a trait argument.
func NewSignatureNormalize() Transform { return signatureNormalizeTransform{} }

func (signatureNormalizeTransform) Name() string { return "normalize-signature" }

func (signatureNormalizeTransform) UseLine() string { return "" }

func (signatureNormalizeTransform) Apply(src []byte) ([]byte, bool) {
	out := signatureArgs.ReplaceAll(src, []byte("#["+signatureAttr+"]"))
	if bytes.Equal(out, src) {
		return src, false
	}

	return out, true
}
