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
	"context"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files.
// Placeholders must be written as $${NAME}, ${...} is HCL interpolation.
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

type hclOperation struct {
	Type string   `hcl:"type,label"`
	Body hcl.Body `hcl:",remain"`
}

type hclCopy struct {
	From       string         `hcl:"from"`
	To         string         `hcl:"to"`
	Overwrite  bool           `hcl:"overwrite,optional"`
	Operations []hclOperation `hcl:"operation,block"`
}

type hclConfig struct {
	ViewsDir string    `hcl:"views_dir,optional"`
	Parallel int       `hcl:"parallel,optional"`
	Copies   []hclCopy `hcl:"copy,block"`
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		ViewsDir: hclCfg.ViewsDir,
		Parallel: hclCfg.Parallel,
	}
	for _, c := range hclCfg.Copies {
		spec := CopySpec{From: c.From, To: c.To, Overwrite: c.Overwrite}
		for _, op := range c.Operations {
			params, err := decodeParams(op.Body, evalCtx)
			if err != nil {
				return nil, errors.Errorf("decoding operation %q: %w", op.Type, err)
			}
			spec.Operations = append(spec.Operations, OperationSpec{Type: op.Type, Params: params})
		}
		cfg.Copies = append(cfg.Copies, spec)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// decodeParams reads the free-form attributes of an operation block
func decodeParams(body hcl.Body, evalCtx *hcl.EvalContext) (map[string]any, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, errors.Errorf("%s", diags.Error())
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	params := make(map[string]any, len(attrs))
	for _, name := range names {
		val, diags := attrs[name].Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, errors.Errorf("%s: %s", name, diags.Error())
		}
		v, err := ctyToGo(val)
		if err != nil {
			return nil, errors.Errorf("%s: %w", name, err)
		}
		params[name] = v
	}
	return params, nil
}

func ctyToGo(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, errors.New("value is not known")
	}

	switch v.Type() {
	case cty.String:
		return v.AsString(), nil
	case cty.Bool:
		return v.True(), nil
	case cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			i, _ := bf.Int64()
			return i, nil
		}
		f, _ := bf.Float64()
		return f, nil
	}
	return nil, errors.Errorf("unsupported value type %s", v.Type().FriendlyName())
}
