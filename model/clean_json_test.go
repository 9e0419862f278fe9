package model

import "testing"

func TestCleanModelJson(t *testing.T) {
	tcs := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain json untouched",
			raw:  `{"a":1}`,
			want: `{"a":1}`,
		},
		{
			name: "json fence stripped",
			raw:  "```json\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "bare fence stripped",
			raw:  "```\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "surrounding whitespace trimmed",
			raw:  "  \n{\"a\":1}\n  ",
			want: `{"a":1}`,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := string(CleanModelJson([]byte(tc.raw)))
			if got != tc.want {
				t.Fatalf("\nraw:\n%q\nwant:\n%q\ngot:\n%q", tc.raw, tc.want, got)
			}
		})
	}
}
