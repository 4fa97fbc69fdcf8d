package state_test

import (
	"encoding/json"
	"testing"

	"github.com/randalmurphal/resume/pkg/resume/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Kinds(t *testing.T) {
	tests := []struct {
		name string
		val  state.Value
		kind state.Kind
	}{
		{"nil", state.Nil(), state.KindNil},
		{"bool", state.Bool(true), state.KindBool},
		{"int", state.Int(42), state.KindInt},
		{"float", state.Float(3.14), state.KindFloat},
		{"string", state.String("hello"), state.KindString},
		{"ints", state.Ints([]int64{1, 2, 3}), state.KindInts},
		{"floats", state.Floats([]float64{0.5, 1.5}), state.KindFloats},
		{"strings", state.Strings([]string{"a", "b"}), state.KindStrings},
		{"map", state.Map(map[string]state.Value{"k": state.Int(1)}), state.KindMap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.val.Kind())
		})
	}
}

func TestValue_AccessorKindMismatch(t *testing.T) {
	v := state.Int(7)

	_, ok := v.Bool()
	assert.False(t, ok)
	_, ok = v.String()
	assert.False(t, ok)

	i, ok := v.Int()
	require.True(t, ok)
	assert.Equal(t, int64(7), i)
}

func TestValue_JSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		val  state.Value
	}{
		{"nil", state.Nil()},
		{"bool", state.Bool(false)},
		{"int", state.Int(-9007199254740993)}, // beyond float64 precision
		{"float", state.Float(0.1)},
		{"string", state.String("with \"quotes\" and \n newline")},
		{"ints", state.Ints([]int64{2, 3, 5, 7})},
		{"floats", state.Floats([]float64{1.25, -0.5})},
		{"strings", state.Strings([]string{"x", ""})},
		{"nested map", state.Map(map[string]state.Value{
			"inner": state.Map(map[string]state.Value{
				"n": state.Int(1),
			}),
			"list": state.Ints([]int64{10, 20}),
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.val)
			require.NoError(t, err)

			var back state.Value
			require.NoError(t, json.Unmarshal(data, &back))

			assert.Equal(t, tt.val.Kind(), back.Kind())
			assert.True(t, tt.val.Equal(back), "round-tripped value differs")
		})
	}
}

func TestValue_IntKindSurvivesJSON(t *testing.T) {
	// An int must come back as an int, not collapse to float.
	data, err := json.Marshal(state.Int(5))
	require.NoError(t, err)

	var back state.Value
	require.NoError(t, json.Unmarshal(data, &back))

	i, ok := back.Int()
	require.True(t, ok)
	assert.Equal(t, int64(5), i)
}

func TestValue_UnmarshalUnknownKind(t *testing.T) {
	var v state.Value
	err := json.Unmarshal([]byte(`{"t":"widget","v":1}`), &v)
	assert.Error(t, err)
}

func TestValue_Clone(t *testing.T) {
	orig := []int64{1, 2, 3}
	v := state.Ints(orig)
	clone := v.Clone()

	orig[0] = 99

	got, ok := clone.Ints()
	require.True(t, ok)
	assert.Equal(t, int64(1), got[0], "clone must not share backing array")
}

func TestValue_CloneNestedMap(t *testing.T) {
	inner := map[string]state.Value{"n": state.Int(1)}
	v := state.Map(map[string]state.Value{"inner": state.Map(inner)})
	clone := v.Clone()

	inner["n"] = state.Int(42)

	m, ok := clone.Map()
	require.True(t, ok)
	innerClone, ok := m["inner"].Map()
	require.True(t, ok)
	n, ok := innerClone["n"].Int()
	require.True(t, ok)
	assert.Equal(t, int64(1), n)
}

func TestValue_Equal(t *testing.T) {
	assert.True(t, state.Int(1).Equal(state.Int(1)))
	assert.False(t, state.Int(1).Equal(state.Int(2)))
	assert.False(t, state.Int(1).Equal(state.Float(1)))
	assert.True(t, state.Nil().Equal(state.Nil()))
	assert.True(t, state.Ints([]int64{1, 2}).Equal(state.Ints([]int64{1, 2})))
	assert.False(t, state.Ints([]int64{1, 2}).Equal(state.Ints([]int64{1})))
	assert.True(t,
		state.Map(map[string]state.Value{"a": state.Bool(true)}).
			Equal(state.Map(map[string]state.Value{"a": state.Bool(true)})))
	assert.False(t,
		state.Map(map[string]state.Value{"a": state.Bool(true)}).
			Equal(state.Map(map[string]state.Value{"b": state.Bool(true)})))
}
