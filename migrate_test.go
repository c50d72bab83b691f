package docmigrate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/docmigrate"
	"go.jacobcolvin.com/docmigrate/srctest"
)

func TestProcessParameters(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		want        string
		wantChanged bool
	}{
		"drops self and renders in order": {
			input: srctest.File(
				"/// Applies the function.",
				"///",
				"/// ### Parameters",
				"/// * `x`: the value",
				"/// * `self`: ignored",
				"/// * `f`: the function",
				"fn apply(self, x: A, f: F) {}",
			),
			want: srctest.File(
				"use fp_macros::doc_params;",
				"/// Applies the function.",
				"///",
				"/// ### Parameters",
				"///",
				"#[doc_params(",
				"\t\"the value\",",
				"\t\"the function\"",
				")]",
				"fn apply(self, x: A, f: F) {}",
			),
			wantChanged: true,
		},
		"only self documented leaves block unmodified": {
			input: srctest.File(
				"/// ### Parameters",
				"/// * `self`: the receiver",
				"fn run(self) {}",
			),
			want: srctest.File(
				"/// ### Parameters",
				"/// * `self`: the receiver",
				"fn run(self) {}",
			),
			wantChanged: false,
		},
		"no declaration at end of file leaves block unmodified": {
			input: srctest.File(
				"/// ### Parameters",
				"/// * `x`: the value",
			),
			want: srctest.File(
				"/// ### Parameters",
				"/// * `x`: the value",
			),
			wantChanged: false,
		},
		"attribute lines between block and declaration": {
			input: srctest.File(
				"/// ### Parameters",
				"/// * `x`: the value",
				"#[inline]",
				"fn id(x: A) -> A { x }",
			),
			want: srctest.File(
				"use fp_macros::doc_params;",
				"/// ### Parameters",
				"///",
				"#[doc_params(",
				"\t\"the value\"",
				")]",
				"#[inline]",
				"fn id(x: A) -> A { x }",
			),
			wantChanged: true,
		},
		"indented method": {
			input: srctest.File(
				"impl Foo {",
				"\t/// ### Parameters",
				"\t///",
				"\t/// * `x`: the value",
				"\tfn bar(self, x: A) {}",
				"}",
			),
			want: srctest.File(
				"use fp_macros::doc_params;",
				"impl Foo {",
				"\t/// ### Parameters",
				"\t///",
				"\t#[doc_params(",
				"\t\t\"the value\"",
				"\t)]",
				"\tfn bar(self, x: A) {}",
				"}",
			),
			wantChanged: true,
		},
	}

	m := docmigrate.NewMigrator(docmigrate.WithTransforms(docmigrate.NewParams()))

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, changed := m.Process([]byte(tc.input))
			assert.Equal(t, tc.wantChanged, changed)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestProcessTypeParameters(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		want        string
		wantChanged bool
	}{
		"correlates against declaration order": {
			input: srctest.File(
				"/// ### Type Parameters",
				"///",
				"/// * `M`: the monad",
				"/// * `A`: the value type",
				"fn lift<'a, M: Applicative, A: 'a + Clone>(x: A) -> M {",
				"\ttodo!()",
				"}",
			),
			want: srctest.File(
				"use fp_macros::doc_type_params;",
				"/// ### Type Parameters",
				"///",
				"#[doc_type_params(",
				"\t\"Undocumented\",",
				"\t\"the monad\",",
				"\t\"the value type\"",
				")]",
				"fn lift<'a, M: Applicative, A: 'a + Clone>(x: A) -> M {",
				"\ttodo!()",
				"}",
			),
			wantChanged: true,
		},
		"mismatched entry attaches as pair": {
			input: srctest.File(
				"/// ### Type Parameters",
				"/// * `F`: a functor",
				"fn wrap<G>(g: G) {}",
			),
			want: srctest.File(
				"use fp_macros::doc_type_params;",
				"/// ### Type Parameters",
				"///",
				"#[doc_type_params(",
				"\t(\"F\", \"a functor\")",
				")]",
				"fn wrap<G>(g: G) {}",
			),
			wantChanged: true,
		},
		"nested bounds split correctly": {
			input: srctest.File(
				"/// ### Type Parameters",
				"/// * `A`: the input",
				"/// * `B`: the output",
				"fn convert<A: Into<Vec<u8>>, B>(a: A) -> B {",
				"\ttodo!()",
				"}",
			),
			want: srctest.File(
				"use fp_macros::doc_type_params;",
				"/// ### Type Parameters",
				"///",
				"#[doc_type_params(",
				"\t\"the input\",",
				"\t\"the output\"",
				")]",
				"fn convert<A: Into<Vec<u8>>, B>(a: A) -> B {",
				"\ttodo!()",
				"}",
			),
			wantChanged: true,
		},
		"struct is not rewritten": {
			input: srctest.File(
				"/// ### Type Parameters",
				"/// * `A`: the first",
				"pub struct Pair<A, B>(A, B);",
			),
			want: srctest.File(
				"/// ### Type Parameters",
				"/// * `A`: the first",
				"pub struct Pair<A, B>(A, B);",
			),
			wantChanged: false,
		},
		"function without generics is not rewritten": {
			input: srctest.File(
				"/// ### Type Parameters",
				"/// * `A`: the value",
				"fn id(x: u8) -> u8 { x }",
			),
			want: srctest.File(
				"/// ### Type Parameters",
				"/// * `A`: the value",
				"fn id(x: u8) -> u8 { x }",
			),
			wantChanged: false,
		},
		"comment between name and generics is ignored": {
			input: srctest.File(
				"/// ### Type Parameters",
				"/// * `A`: the value",
				"fn id/* soon generic */<A>(x: A) -> A { x }",
			),
			want: srctest.File(
				"use fp_macros::doc_type_params;",
				"/// ### Type Parameters",
				"///",
				"#[doc_type_params(",
				"\t\"the value\"",
				")]",
				"fn id/* soon generic */<A>(x: A) -> A { x }",
			),
			wantChanged: true,
		},
	}

	m := docmigrate.NewMigrator(docmigrate.WithTransforms(docmigrate.NewTypeParams()))

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, changed := m.Process([]byte(tc.input))
			assert.Equal(t, tc.wantChanged, changed)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestProcessSignature(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		want        string
		wantChanged bool
	}{
		"function with body": {
			input: srctest.File(
				"/// ### Type Signature",
				"///",
				"/// `forall a. a -> a`",
				"pub fn id<A>(a: A) -> A {",
				"\ta",
				"}",
			),
			want: srctest.File(
				"use fp_macros::hm_signature;",
				"/// ### Type Signature",
				"///",
				"#[hm_signature]",
				"pub fn id<A>(a: A) -> A {",
				"\ta",
				"}",
			),
			wantChanged: true,
		},
		"forward declaration is not rewritten": {
			input: srctest.File(
				"trait Identity {",
				"\t/// ### Type Signature",
				"\t///",
				"\t/// `forall a. a -> a`",
				"\tfn id(a: A) -> A;",
				"}",
			),
			want: srctest.File(
				"trait Identity {",
				"\t/// ### Type Signature",
				"\t///",
				"\t/// `forall a. a -> a`",
				"\tfn id(a: A) -> A;",
				"}",
			),
			wantChanged: false,
		},
		"missing blank doc line is not a block": {
			input: srctest.File(
				"/// ### Type Signature",
				"/// `forall a. a -> a`",
				"fn id(a: A) -> A { a }",
			),
			want: srctest.File(
				"/// ### Type Signature",
				"/// `forall a. a -> a`",
				"fn id(a: A) -> A { a }",
			),
			wantChanged: false,
		},
		"non-function is not rewritten": {
			input: srctest.File(
				"/// ### Type Signature",
				"///",
				"/// `forall a b. (a, b) -> a`",
				"pub struct Pair<A, B>(A, B);",
			),
			want: srctest.File(
				"/// ### Type Signature",
				"///",
				"/// `forall a b. (a, b) -> a`",
				"pub struct Pair<A, B>(A, B);",
			),
			wantChanged: false,
		},
	}

	m := docmigrate.NewMigrator(docmigrate.WithTransforms(docmigrate.NewSignature()))

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, changed := m.Process([]byte(tc.input))
			assert.Equal(t, tc.wantChanged, changed)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestProcessSignatureNormalize(t *testing.T) {
	t.Parallel()

	m := docmigrate.NewMigrator(docmigrate.WithTransforms(docmigrate.NewSignatureNormalize()))

	input := srctest.File(
		"use fp_macros::hm_signature;",
		"/// ### Type Signature",
		"///",
		"#[hm_signature(Applicative)]",
		"fn pure<F, A>(a: A) -> F { todo!() }",
		"",
		"/// ### Type Signature",
		"///",
		"#[hm_signature()]",
		"fn unit() {}",
	)
	want := srctest.File(
		"use fp_macros::hm_signature;",
		"/// ### Type Signature",
		"///",
		"#[hm_signature]",
		"fn pure<F, A>(a: A) -> F { todo!() }",
		"",
		"/// ### Type Signature",
		"///",
		"#[hm_signature]",
		"fn unit() {}",
	)

	got, changed := m.Process([]byte(input))
	assert.True(t, changed)
	assert.Equal(t, want, string(got))

	// Bare attributes are left alone.
	again, changed := m.Process(got)
	assert.False(t, changed)
	assert.Equal(t, want, string(again))
}

func TestProcessConservation(t *testing.T) {
	t.Parallel()

	input := srctest.File(
		"//! A module with ordinary documentation.",
		"",
		"/// Doubles the input.",
		"///",
		"/// No structured sections here.",
		"pub fn double(x: u32) -> u32 {",
		"\tx * 2",
		"}",
	)

	m := docmigrate.NewMigrator()

	got, changed := m.Process([]byte(input))
	assert.False(t, changed)
	assert.Equal(t, input, string(got))
}

func TestProcessIdempotence(t *testing.T) {
	t.Parallel()

	input := srctest.File(
		"//! Functional combinators.",
		"",
		"/// ### Type Signature",
		"///",
		"/// `forall f a. Applicative f => a -> f a`",
		"pub fn pure<F: Applicative, A>(a: A) -> F {",
		"\ttodo!()",
		"}",
		"",
		"impl Wrapper {",
		"\t/// ### Parameters",
		"\t/// * `self`: the wrapper",
		"\t/// * `x`: the value",
		"\t///",
		"\t/// ### Type Parameters",
		"\t///",
		"\t/// * `A`: the wrapped type",
		"\tfn set<A>(self, x: A) {}",
		"}",
	)

	m := docmigrate.NewMigrator()

	once, changed := m.Process([]byte(input))
	require.True(t, changed)

	twice, changedAgain := m.Process(once)
	assert.False(t, changedAgain)
	assert.Equal(t, string(once), string(twice))
}

func TestProcessImportSingleton(t *testing.T) {
	t.Parallel()

	countUse := func(s, use string) int {
		n := 0
		for i := 0; i+len(use) <= len(s); i++ {
			if s[i:i+len(use)] == use {
				n++
			}
		}

		return n
	}

	t.Run("two rewritten blocks share one use line", func(t *testing.T) {
		t.Parallel()

		input := srctest.File(
			"/// ### Parameters",
			"/// * `x`: first",
			"fn one(x: A) {}",
			"",
			"/// ### Parameters",
			"/// * `y`: second",
			"fn two(y: B) {}",
		)

		m := docmigrate.NewMigrator(docmigrate.WithTransforms(docmigrate.NewParams()))

		got, changed := m.Process([]byte(input))
		require.True(t, changed)
		assert.Equal(t, 1, countUse(string(got), "use fp_macros::doc_params;"))
	})

	t.Run("existing use line is not duplicated", func(t *testing.T) {
		t.Parallel()

		input := srctest.File(
			"use fp_macros::doc_params;",
			"",
			"/// ### Parameters",
			"/// * `x`: the value",
			"fn id(x: A) -> A { x }",
		)

		m := docmigrate.NewMigrator(docmigrate.WithTransforms(docmigrate.NewParams()))

		got, changed := m.Process([]byte(input))
		require.True(t, changed)
		assert.Equal(t, 1, countUse(string(got), "use fp_macros::doc_params;"))
	})
}

func TestDefaultTransforms(t *testing.T) {
	t.Parallel()

	names := []string{}
	for _, tr := range docmigrate.DefaultTransforms() {
		names = append(names, tr.Name())
	}

	assert.Equal(t, []string{"params", "type-params", "signature"}, names)
}
