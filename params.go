package docmigrate

const (
	paramsHeader = "Parameters"
	paramsAttr   = "doc_params"
	paramsUse    = "use fp_macros::doc_params;"
)

// Parameters entry names may be arbitrary text, e.g. patterns like `(a, b)`.
var paramsBlock = blockPattern(paramsHeader, "[^`\n]+")

type paramsTransform struct{}

// NewParams returns the transform that rewrites "### Parameters" blocks
// into #[doc_params(...)] attributes. Entries render as quoted
// descriptions in source order; a documented receiver (`self`) is dropped.
func NewParams() Transform { return paramsTransform{} }

func (paramsTransform) Name() string { return "params" }

func (paramsTransform) UseLine() string { return paramsUse }

func (paramsTransform) Apply(src []byte) ([]byte, bool) {
	return rewriteBlocks(src, findBlocks(src, paramsBlock), func(b docBlock) (string, bool) {
		args := make([]renderedArg, 0, len(b.lines))

		for _, e := range parseEntries(b.lines) {
			if e.name == receiverName {
				continue
			}

			args = append(args, renderedArg{desc: e.desc})
		}

		if len(args) == 0 {
			return "", false
		}

		// A parameter list documents a declaration; at end of file there
		// is nothing to attach to.
		if _, ok := nextItemLine(lookahead(src, b.end)); !ok {
			return "", false
		}

		return renderAttribute(b.indent, paramsHeader, paramsAttr, args), true
	})
}
