package qabot

import (
	"testing"
)

func TestProcessText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "empty text",
			text: "",
			want: "",
		},
		{
			name: "no urls",
			text: "just plain text",
			want: "just plain text",
		},
		{
			name: "bare url becomes link",
			text: "See https://example.com for details",
			want: "See [https://example.com](https://example.com) for details",
		},
		{
			name: "trailing period stays outside link",
			text: "Visit https://example.com.",
			want: "Visit [https://example.com](https://example.com).",
		},
		{
			name: "trailing comma stays outside link",
			text: "Check https://example.com/docs, then ask again",
			want: "Check [https://example.com/docs](https://example.com/docs), then ask again",
		},
		{
			name: "existing markdown link untouched",
			text: "See [docs](https://example.com) here",
			want: "See [docs](https://example.com) here",
		},
		{
			name: "existing html link untouched",
			text: `<a href="https://example.com">docs</a>`,
			want: `<a href="https://example.com">docs</a>`,
		},
		{
			name: "multiple bare urls",
			text: "a https://one.test b https://two.test c",
			want: "a [https://one.test](https://one.test) b [https://two.test](https://two.test) c",
		},
		{
			name: "http url",
			text: "http://plain.test",
			want: "[http://plain.test](http://plain.test)",
		},
		{
			name: "mixed linked and bare",
			text: "See [docs](https://example.com) and https://other.test",
			want: "See [docs](https://example.com) and [https://other.test](https://other.test)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProcessText(tt.text)
			if got != tt.want {
				t.Errorf("ProcessText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFixMarkdownLinks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "no links",
			text: "plain text",
			want: "plain text",
		},
		{
			name: "markdown link to anchor",
			text: "See [docs](https://example.com)",
			want: `See <a href="https://example.com" target="_blank" rel="noopener noreferrer">docs</a>`,
		},
		{
			name: "multiple links",
			text: "[a](https://a.test) and [b](https://b.test)",
			want: `<a href="https://a.test" target="_blank" rel="noopener noreferrer">a</a> and <a href="https://b.test" target="_blank" rel="noopener noreferrer">b</a>`,
		},
		{
			name: "empty text",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FixMarkdownLinks(tt.text)
			if got != tt.want {
				t.Errorf("FixMarkdownLinks() = %q, want %q", got, tt.want)
			}
		})
	}
}
