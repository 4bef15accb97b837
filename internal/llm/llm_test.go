package llm

import "testing"

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"Plain", `{"recipes": []}`, `{"recipes": []}`},
		{"JSONFence", "```json\n{\"recipes\": []}\n```", `{"recipes": []}`},
		{"BareFence", "```\n{\"recipes\": []}\n```", `{"recipes": []}`},
		{"LeadingText", "Here you go:\n```json\n{\"a\":1}\n```", `{"a":1}`},
		{"Whitespace", "  {\"a\":1}\n", `{"a":1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripFences(tc.in); got != tc.want {
				t.Errorf("StripFences(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
