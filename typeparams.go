package docmigrate

const (
	typeParamsHeader = "Type Parameters"
	typeParamsAttr   = "doc_type_params"
	typeParamsUse    = "use fp_macros::doc_type_params;"
)

var typeParamsBlock = blockPattern(typeParamsHeader, `\w+`)

type typeParamsTransform struct{}

// NewTypeParams returns the transform that rewrites "### Type Parameters"
// blocks into #[doc_type_params(...)] attributes by correlating the
// documented entries against the generic parameter list of the function
// declaration that follows the block.
func NewTypeParams() Transform { return typeParamsTransform{} }

func (typeParamsTransform) Name() string { return "type-params" }

func (typeParamsTransform) UseLine() string { return typeParamsUse }

func (typeParamsTransform) Apply(src []byte) ([]byte, bool) {
	return rewriteBlocks(src, findBlocks(src, typeParamsBlock), func(b docBlock) (string, bool) {
		window := lookahead(src, b.end)

		// Only function declarations carry a generic list we can read;
		// structs, enums, and impls are left alone.
		line, ok := nextItemLine(window)
		if !ok || !fnWord.MatchString(line) {
			return "", false
		}

		list, ok := genericList(stripComments(window))
		if !ok {
			return "", false
		}

		names := splitGenerics(list)
		if len(names) == 0 {
			return "", false
		}

		args := correlate(names, parseEntries(b.lines))
		if len(args) == 0 {
			return "", false
		}

		return renderAttribute(b.indent, typeParamsHeader, typeParamsAttr, args), true
	})
}
