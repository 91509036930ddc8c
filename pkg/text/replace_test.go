package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplace(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		rules        []Rule
		want         string
		wantCount    int
		wantModified bool
	}{
		{
			name:         "simple_replacement",
			content:      "Hello World",
			rules:        []Rule{{From: "World", To: "Universe"}},
			want:         "Hello Universe",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:         "multiple_occurrences",
			content:      "Hello World World",
			rules:        []Rule{{From: "World", To: "Universe"}},
			want:         "Hello Universe Universe",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "rules_chain",
			content: "Hello World",
			rules: []Rule{
				{From: "Hello", To: "Hi"},
				{From: "Hi", To: "Hey"},
			},
			want:         "Hey World",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:         "non_overlapping",
			content:      "aaa",
			rules:        []Rule{{From: "aa", To: "b"}},
			want:         "ba",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:         "replacement_contains_search",
			content:      "ab",
			rules:        []Rule{{From: "a", To: "aa"}},
			want:         "aab",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "no_match",
			content: "Hello World",
			rules:   []Rule{{From: "Goodbye", To: "Hi"}},
			want:    "Hello World",
		},
		{
			name:    "empty_content",
			content: "",
			rules:   []Rule{{From: "World", To: "Universe"}},
			want:    "",
		},
		{
			name:    "empty_from_skipped",
			content: "Hello",
			rules:   []Rule{{From: "", To: "x"}},
			want:    "Hello",
		},
		{
			name:    "no_rules",
			content: "Hello World",
			want:    "Hello World",
		},
		{
			name:         "whitespace_is_significant",
			content:      "a  b a b",
			rules:        []Rule{{From: " b", To: "-"}},
			want:         "a - a-",
			wantCount:    2,
			wantModified: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Replace(tt.content, tt.rules...)
			assert.Equal(t, tt.want, got.Text)
			assert.Equal(t, tt.wantCount, got.Count)
			assert.Equal(t, tt.wantModified, got.Modified())
		})
	}
}
