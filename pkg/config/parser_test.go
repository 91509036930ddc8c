// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// 🧪 TestParserRegistration tests the parser registration system
func TestParserRegistration(t *testing.T) {
	// Save original parsers
	originalParsers := parsers
	defer func() {
		parsers = originalParsers
	}()

	// Reset parsers
	parsers = nil

	Register(&JSONParser{})
	assert.Len(t, parsers, 1, "should have 1 parser registered")
	assert.Nil(t, GetParser("viewcopy.yaml"), "yaml parser is not registered")
	assert.IsType(t, &JSONParser{}, GetParser("viewcopy.json"))
}

// 🧪 TestParserSelection tests parser selection by file extension
func TestParserSelection(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Parser
	}{
		{name: "yaml_file", filename: "viewcopy.yaml", want: &YAMLParser{}},
		{name: "yml_file", filename: "viewcopy.yml", want: &YAMLParser{}},
		{name: "hcl_file", filename: "viewcopy.hcl", want: &HCLParser{}},
		{name: "json_file", filename: "viewcopy.json", want: &JSONParser{}},
		{name: "json_upper", filename: "VIEWCOPY.JSON", want: &JSONParser{}},
		{name: "unknown_file", filename: "viewcopy.txt", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got, "should not find parser")
				return
			}
			assert.IsType(t, tt.want, got, "should find correct parser")
		})
	}
}

func TestHCLParser_Errors(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		errContains string
	}{
		{
			name:        "syntax_error",
			config:      `copy {`,
			errContains: "parsing HCL",
		},
		{
			name:        "missing_required_attribute",
			config:      `copy { from = "a" }`,
			errContains: "decoding HCL",
		},
		{
			name: "unescaped_interpolation",
			config: `copy {
  from = "a"
  to   = "${BRANCH}"
}`,
			errContains: "decoding HCL",
		},
		{
			name: "nested_block_in_operation",
			config: `copy {
  from = "a"
  to   = "b"
  operation "replace" {
    nested {}
  }
}`,
			errContains: `decoding operation "replace"`,
		},
		{
			name: "list_parameter",
			config: `copy {
  from = "a"
  to   = "b"
  operation "replace" {
    from = ["x"]
  }
}`,
			errContains: "unsupported value type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&HCLParser{}).Parse(testCtx(), []byte(tt.config))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestHCLParser_NullAndNumbers(t *testing.T) {
	cfg, err := (&HCLParser{}).Parse(testCtx(), []byte(`
copy {
  from = "a"
  to   = "b"
  operation "set_description" {
    description = null
  }
  operation "replace" {
    from = 42
    to   = 1.5
  }
}`))
	require.NoError(t, err)

	ops := cfg.Copies[0].Operations
	require.Len(t, ops, 2)
	assert.Contains(t, ops[0].Params, "description")
	assert.Nil(t, ops[0].Params["description"])
	assert.Equal(t, int64(42), ops[1].Params["from"])
	assert.Equal(t, 1.5, ops[1].Params["to"])
}

func TestJSONParser_UnknownField(t *testing.T) {
	_, err := (&JSONParser{}).Parse(testCtx(), []byte(`{"copies": [], "extra": true}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing JSON")
}

func TestOperationSpec_RoundTrip(t *testing.T) {
	spec := OperationSpec{Type: "replace", Params: map[string]any{"from": "a", "to": "b"}}

	data, err := json.Marshal(spec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type": "replace", "from": "a", "to": "b"}`, string(data))

	out, err := yaml.Marshal(spec)
	require.NoError(t, err)
	assert.Equal(t, "from: a\nto: b\ntype: replace\n", string(out))

	var back OperationSpec
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, spec, back)
}

func TestOperationSpec_TypeMustBeString(t *testing.T) {
	var spec OperationSpec
	err := json.Unmarshal([]byte(`{"type": 3}`), &spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a string")
}
