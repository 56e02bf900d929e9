package content

import "testing"

func TestStripFencesRemovesTaggedFence(t *testing.T) {
	got := StripFences("```json\n{\"a\":1}\n```")
	if got != `{"a":1}` {
		t.Fatalf("strip tagged fence: want=%q got=%q", `{"a":1}`, got)
	}
}

func TestStripFencesIsIdempotent(t *testing.T) {
	once := StripFences("```json\n{\"a\":1}\n```")
	twice := StripFences(once)
	if once != twice {
		t.Fatalf("idempotence: first=%q second=%q", once, twice)
	}
}

func TestStripFencesNoFencesIsNoop(t *testing.T) {
	in := `{"topic": "Photosynthesis"}`
	if got := StripFences(in); got != in {
		t.Fatalf("no-op: want=%q got=%q", in, got)
	}
}

func TestStripFencesPartialFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"leading only", "```json\n{\"a\":1}", `{"a":1}`},
		{"leading bare", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"trailing only", "{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n ", `{"a":1}`},
		{"fence glued to payload", "```{\"a\":1}```", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := StripFences(tc.in); got != tc.want {
			t.Fatalf("%s: want=%q got=%q", tc.name, tc.want, got)
		}
	}
}
