package mcp

import "testing"

func TestSubstituteVariables(t *testing.T) {
	cases := []struct {
		name      string
		content   string
		variables map[string]interface{}
		want      string
	}{
		{
			name:      "single and double braces",
			content:   "Hello {name}, {{name}} again",
			variables: map[string]interface{}{"name": "World"},
			want:      "Hello World, World again",
		},
		{
			name:      "unmatched placeholder left verbatim",
			content:   "Hi {who}, {other}",
			variables: map[string]interface{}{"who": "there"},
			want:      "Hi there, {other}",
		},
		{
			name:      "non-string values use their textual form",
			content:   "count={n} flag={{ok}}",
			variables: map[string]interface{}{"n": float64(3), "ok": true},
			want:      "count=3 flag=true",
		},
		{
			name:      "no variables",
			content:   "untouched {x}",
			variables: map[string]interface{}{},
			want:      "untouched {x}",
		},
	}

	for _, tc := range cases {
		if got := SubstituteVariables(tc.content, tc.variables); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}
