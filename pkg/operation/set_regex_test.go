package operation

import (
	"testing"

	"github.com/ikedam/viewcopy-builder/pkg/expand"
	"github.com/ikedam/viewcopy-builder/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestNewSetRegex(t *testing.T) {
	assert.Nil(t, NewSetRegex(nil).Regex())
	assert.Equal(t, "dummy-.*", *NewSetRegex(String("  dummy-.*  ")).Regex())
}

func TestSetRegex_Perform(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		regex       *string
		env         expand.Env
		want        string
		wantErr     error
		wantPattern bool
		wantLine    string
	}{
		{
			name:     "trimmed_pattern",
			input:    templateView,
			regex:    String("  dummy-.*  "),
			want:     "dummy-.*",
			wantLine: "Set includeRegex to dummy-.*",
		},
		{
			name:  "expanded_pattern",
			input: templateView,
			regex: String("${BRANCH}-.*"),
			env:   expand.Env{"BRANCH": "feature"},
			want:  "feature-.*",
		},
		{
			name:  "create_missing_node",
			input: `<hudson.model.ListView><name>x</name></hudson.model.ListView>`,
			regex: String("x-.*"),
			want:  "x-.*",
		},
		{
			name:     "absent",
			input:    templateView,
			regex:    nil,
			wantErr:  ErrRegexNotSpecified,
			wantLine: "Regular expression is not specified.",
		},
		{
			name:     "empty",
			input:    templateView,
			regex:    String(""),
			wantErr:  ErrRegexNotSpecified,
			wantLine: "Regular expression is not specified.",
		},
		{
			name:     "blank",
			input:    templateView,
			regex:    String("   "),
			wantErr:  ErrRegexNotSpecified,
			wantLine: "Regular expression is not specified.",
		},
		{
			name:     "expanded_to_empty",
			input:    templateView,
			regex:    String("${EMPTY}"),
			env:      expand.Env{"EMPTY": "  "},
			wantErr:  ErrRegexEmpty,
			wantLine: "Regular expression got to empty.",
		},
		{
			name:        "invalid_pattern",
			input:       templateView,
			regex:       String("*"),
			wantPattern: true,
		},
		{
			name:        "invalid_after_expansion",
			input:       templateView,
			regex:       String("${P}"),
			env:         expand.Env{"P": "(unclosed"},
			wantPattern: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, logger := testContext(t)
			op := NewSetRegex(tt.regex)

			out, err := op.Perform(ctx, parse(t, tt.input), tt.env)

			switch {
			case tt.wantErr != nil:
				require.Error(t, err)
				assert.Nil(t, out, "no document on failure")
				assert.True(t, errors.Is(err, tt.wantErr), "unexpected error: %v", err)
			case tt.wantPattern:
				require.Error(t, err)
				assert.Nil(t, out, "no document on failure")
				var perr *PatternError
				require.True(t, errors.As(err, &perr), "expected a pattern error, got %v", err)
				assert.NotEmpty(t, logger.Lines(), "the parser message must be reported")
			default:
				require.NoError(t, err)
				require.NotNil(t, out)
				nodes := out.FindNodes("/*/includeRegex")
				require.Len(t, nodes, 1)
				assert.Equal(t, tt.want, nodes[0].Text())
			}

			if tt.wantLine != "" {
				assert.Contains(t, logger.Lines(), tt.wantLine)
			}
		})
	}
}

func TestSetRegex_Applicable(t *testing.T) {
	op := NewSetRegex(String(".*"))
	assert.True(t, op.IsApplicable(view.KindList))
	assert.False(t, op.IsApplicable(view.KindAll))
	assert.False(t, op.IsApplicable(view.KindOther))
}

func TestCompilePattern(t *testing.T) {
	assert.NoError(t, CompilePattern("dummy-.*"))
	assert.NoError(t, CompilePattern(`(?i)^job-(?!skip).*$`), "lookahead is part of the dialect")
	assert.Error(t, CompilePattern("*"))
	assert.Error(t, CompilePattern("[a-"))
}
