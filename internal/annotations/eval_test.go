package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalParamsRouteExample(t *testing.T) {
	params, err := EvalParams("GET, '/users/:id', name: 'users.show'")
	require.NoError(t, err)

	require.Len(t, params.Positional, 2)
	assert.Equal(t, NewString("GET"), params.Positional[0])
	assert.Equal(t, NewString("/users/:id"), params.Positional[1])
	require.Len(t, params.Keyed, 1)
	assert.Equal(t, NewString("users.show"), params.Keyed["name"])
}

func TestEvalParams(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		positional []Value
		keyed      map[string]Value
	}{
		{
			name:  "empty argument text",
			input: "",
			keyed: map[string]Value{},
		},
		{
			name:       "barewords become strings",
			input:      "integer",
			positional: []Value{NewString("integer")},
			keyed:      map[string]Value{},
		},
		{
			name:       "boolean and numeric coercion",
			input:      "integer, nullable: true, limit: 255, scale: 1.5",
			positional: []Value{NewString("integer")},
			keyed: map[string]Value{
				"nullable": NewBool(true),
				"limit":    NewInt(255),
				"scale":    NewFloat(1.5),
			},
		},
		{
			name:       "double quoted string keeps punctuation",
			input:      `"hello, world: yes"`,
			positional: []Value{NewString("hello, world: yes")},
			keyed:      map[string]Value{},
		},
		{
			name:       "backslash before closing quote escapes it",
			input:      `'it\'s fine'`,
			positional: []Value{NewString("it's fine")},
			keyed:      map[string]Value{},
		},
		{
			name:  "nested group becomes a list value",
			input: "middleware: (Auth, Logging)",
			keyed: map[string]Value{
				"middleware": NewList(NewString("Auth"), NewString("Logging")),
			},
		},
		{
			name:       "positional nested group",
			input:      "(a, b), c",
			positional: []Value{NewList(NewString("a"), NewString("b")), NewString("c")},
			keyed:      map[string]Value{},
		},
		{
			name:       "keys are lower-cased",
			input:      "Name: 'x'",
			positional: nil,
			keyed:      map[string]Value{"name": NewString("x")},
		},
		{
			name:  "duplicate keys overwrite, last wins",
			input: "name: 'a', name: 'b'",
			keyed: map[string]Value{"name": NewString("b")},
		},
		{
			name:       "whitespace around separators is ignored",
			input:      "GET ,   '/x'  ,  name :'n'",
			positional: []Value{NewString("GET"), NewString("/x")},
			keyed:      map[string]Value{"name": NewString("n")},
		},
		{
			name:       "quoted key",
			input:      "'Name': 1",
			positional: nil,
			keyed:      map[string]Value{"name": NewInt(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := EvalParams(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.positional, params.Positional)
			assert.Equal(t, tt.keyed, params.Keyed)
		})
	}
}

func TestEvalParamsErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		contains string
	}{
		{"unterminated literal", "'abc", "unterminated"},
		{"stray separators", ",,", "literal list"},
		{"dangling key", "name:", "literal list"},
		{"nesting beyond one level", "((a))", "one level"},
		{"key inside nested list", "x: (a: b)", "nested lists"},
		{"adjacent values without separator", "a b", "literal list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EvalParams(tt.input)
			require.Error(t, err)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Contains(t, perr.Msg, tt.contains)
		})
	}
}

func TestEvalParamsDeterministic(t *testing.T) {
	const input = "GET, '/users', name: 'users.index', middleware: (Auth, Logging)"

	first, err := EvalParams(input)
	require.NoError(t, err)
	second, err := EvalParams(input)
	require.NoError(t, err)

	assert.True(t, first.Equal(second), "re-parsing identical text must yield equal parameter lists")
}

func TestEvalParamsRoundTrip(t *testing.T) {
	inputs := []string{
		"GET, '/users/:id', name: 'users.show'",
		"integer, nullable: true, limit: 255",
		"'a b c', flag: false, pieces: (one, two)",
	}

	for _, input := range inputs {
		params, err := EvalParams(input)
		require.NoError(t, err)

		again, err := EvalParams(params.String())
		require.NoError(t, err, "canonical rendering must re-parse: %q", params.String())
		assert.True(t, params.Equal(again), "round trip changed %q", input)
	}
}
