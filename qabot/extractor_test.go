package qabot

import (
	"testing"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name    string
		content any
		want    string
	}{
		{
			name:    "nil content",
			content: nil,
			want:    "",
		},
		{
			name:    "plain string",
			content: "hello world",
			want:    "hello world",
		},
		{
			name:    "empty string",
			content: "",
			want:    "",
		},
		{
			name:    "int",
			content: 42,
			want:    "42",
		},
		{
			name:    "int64",
			content: int64(7),
			want:    "7",
		},
		{
			name:    "integral float",
			content: float64(3),
			want:    "3",
		},
		{
			name:    "fractional float",
			content: 3.5,
			want:    "3.5",
		},
		{
			name:    "node with text only",
			content: Node{Text: "styled"},
			want:    "styled",
		},
		{
			name:    "node pointer",
			content: &Node{Text: "ptr"},
			want:    "ptr",
		},
		{
			name:    "nil node pointer",
			content: (*Node)(nil),
			want:    "",
		},
		{
			name: "nested nodes",
			content: Node{
				Text: "outer ",
				Children: []any{
					Node{Text: "inner"},
					" tail",
				},
			},
			want: "outer inner tail",
		},
		{
			name:    "slice of mixed values",
			content: []any{"a", 1, Node{Text: "b"}},
			want:    "a1b",
		},
		{
			name: "markup-only structure",
			content: Node{
				Children: []any{
					Node{},
					[]any{},
				},
			},
			want: "",
		},
		{
			name:    "unknown type flattens to empty",
			content: struct{ X int }{X: 1},
			want:    "",
		},
		{
			name: "deeply nested slices",
			content: []any{
				[]any{"a", []any{"b", []any{"c"}}},
			},
			want: "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractText(tt.content)
			if got != tt.want {
				t.Errorf("ExtractText() = %q, want %q", got, tt.want)
			}
		})
	}
}
