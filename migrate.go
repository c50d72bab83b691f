package docmigrate

import "errors"

// Sentinel errors returned by configuration and the CLI wrapper. The core
// transforms never return errors; parse uncertainty degrades to a no-op.
var (
	ErrInvalidOption    = errors.New("invalid option")
	ErrUnknownTransform = errors.New("unknown transform")
	ErrReadInput        = errors.New("read input")
	ErrWriteOutput      = errors.New("write output")
)

// Transform rewrites one kind of documentation block within a source buffer.
//
// Implementations are stateless and safe for concurrent use across buffers.
type Transform interface {
	// Name returns the registry name of the transform.
	Name() string

	// Apply rewrites every matching block in src, returning the resulting
	// buffer and whether anything changed. Blocks the transform cannot
	// confidently rewrite are left byte-identical, and an unchanged buffer
	// is returned as-is.
	Apply(src []byte) ([]byte, bool)

	// UseLine returns the import line the rewritten attributes require, or
	// the empty string when the transform introduces none.
	UseLine() string
}

// Migrator applies a sequence of transforms to source buffers.
//
// Create instances with [NewMigrator]. A Migrator holds no per-buffer
// state and may be shared across goroutines.
type Migrator struct {
	transforms []Transform
}

// Option configures a Migrator.
type Option func(*Migrator)

// NewMigrator creates a Migrator with the given options. Without
// [WithTransforms] it applies [DefaultTransforms].
func NewMigrator(opts ...Option) *Migrator {
	m := &Migrator{}

	for _, opt := range opts {
		opt(m)
	}

	if len(m.transforms) == 0 {
		m.transforms = DefaultTransforms()
	}

	return m
}

// WithTransforms sets the transforms to apply, in order.
func WithTransforms(transforms ...Transform) Option {
	return func(m *Migrator) {
		m.transforms = transforms
	}
}

// DefaultTransforms returns the standard migration set: params,
// type-params, and signature. The normalize-signature transform is not
// included; it only concerns trees migrated by older tool revisions.
func DefaultTransforms() []Transform {
	return []Transform{NewParams(), NewTypeParams(), NewSignature()}
}

// Process runs every configured transform over src in order and returns
// the resulting buffer along with whether it differs from the input.
//
// After each transform that changed the buffer, the transform's use line
// is inserted unless already present, so a changed file always carries
// each required import exactly once.
func (m *Migrator) Process(src []byte) ([]byte, bool) {
	out := src
	changed := false

	for _, t := range m.transforms {
		next, ok := t.Apply(out)
		if !ok {
			continue
		}

		if use := t.UseLine(); use != "" {
			next = ensureUseLine(next, use)
		}

		out = next
		changed = true
	}

	return out, changed
}
