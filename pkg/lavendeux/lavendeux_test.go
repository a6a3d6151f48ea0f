package lavendeux

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rscarson/lavendeux-parser/internal/registry"
	"github.com/rscarson/lavendeux-parser/pkg/value"
)

// These exercise the host facade end to end, using testify's
// require/assert the way github.com/kralicky-protocompile's own test
// suite does, for assertions with a built-in "stop on first failure"
// (require) vs. "keep collecting" (assert) split.

func TestParserStateGetSetBuiltinConstants(t *testing.T) {
	ps := New()

	pi, ok := ps.Get("pi")
	require.True(t, ok, "pi should be seeded at construction")
	assert.InDelta(t, 3.14159265, pi.AsFloat(), 1e-6)

	err := ps.Set("pi", value.NewInteger(4))
	require.Error(t, err, "pi is read-only and assignment must fail")

	require.NoError(t, ps.Set("x", value.NewInteger(42)))
	x, ok := ps.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(42), x.AsInt())
}

func TestParserStateRegisterFunctionShadowsBuiltin(t *testing.T) {
	ps := New()
	ps.RegisterFunction(&registry.Func{
		Name: "abs",
		Args: []registry.ArgSpec{{Name: "n", Type: registry.ArgNumeric}},
		Handler: func(args []value.Value) (value.Value, error) {
			return value.NewString("overridden"), nil
		},
	})

	results, perrs := ps.Evaluate("abs(-1)")
	require.Empty(t, perrs)
	require.Len(t, results, 1)
	require.Nil(t, results[0].Err)
	assert.Equal(t, "overridden", results[0].Value.AsString())
}

func TestEvaluateReportsPerLineErrorsIndependently(t *testing.T) {
	ps := New()
	results, perrs := ps.Evaluate("undefined_var\n1+1")
	require.Empty(t, perrs)
	require.Len(t, results, 2)

	assert.NotNil(t, results[0].Err, "first line references an undefined variable")
	require.Nil(t, results[1].Err, "second line must still evaluate despite the first line's error")
	assert.Equal(t, "2", results[1].Text)
}
