package param

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueString(t *testing.T) {
	for _, tc := range []struct {
		name     string
		value    Value
		expected string
	}{
		{"absent", Absent(), "undefined"},
		{"empty", String(""), ""},
		{"string", String("Arch"), "Arch"},
		{"repeated", Strings([]string{"A", "B"}), "A,B"},
		{"single", Strings([]string{"A"}), "A"},
		{"none", Strings(nil), "undefined"},
		{"integer", JSON(json.Number("5")), "5"},
		{"fraction", JSON(json.Number("1.50")), "1.5"},
		{"exponent", JSON(json.Number("1e3")), "1000"},
		{"huge", JSON(json.Number("1e21")), "1e+21"},
		{"tiny", JSON(json.Number("0.0000001")), "1e-7"},
		{"small", JSON(json.Number("0.000001")), "0.000001"},
		{"negative zero", JSON(json.Number("-0")), "0"},
		{"overflow", JSON(json.Number("1e400")), "Infinity"},
		{"negative overflow", JSON(json.Number("-1e400")), "-Infinity"},
		{"underflow", JSON(json.Number("1e-400")), "0"},
		{"float", JSON(2.25), "2.25"},
		{"true", JSON(true), "true"},
		{"false", JSON(false), "false"},
		{"null", JSON(nil), "null"},
		{"array", JSON([]any{"a", nil, json.Number("1"), []any{"b", "c"}}), "a,,1,b,c"},
		{"empty array", JSON([]any{}), ""},
		{"object", JSON(map[string]any{"x": 1.0}), "[object Object]"},
		{"array of objects", JSON([]any{map[string]any{}, true}), "[object Object],true"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.value.String())
		})
	}
}

func TestValuePresent(t *testing.T) {
	assert.False(t, Absent().Present())
	assert.True(t, String("").Present())
	assert.True(t, JSON(nil).Present())
	assert.Nil(t, Absent().Raw())
	assert.Equal(t, "A", String("A").Raw())
}

func TestConcat(t *testing.T) {
	require.Equal(t, "12", Concat(String("1"), String("2")))
	require.Equal(t, "1undefined", Concat(String("1"), Absent()))
	require.Equal(t, "undefined2", Concat(Absent(), String("2")))
	require.Equal(t, "1,23", Concat(Strings([]string{"1", "2"}), String("3")))
	require.Equal(t, "", Concat(String(""), String("")))
	require.Nil(t, Concat(Absent(), Absent()))
}
