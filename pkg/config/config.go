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
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ikedam/viewcopy-builder/pkg/copier"
	"github.com/ikedam/viewcopy-builder/pkg/operation"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultViewsDir is used when views_dir is not configured
	DefaultViewsDir = "views"
	// DefaultParallel is used when parallel is not configured
	DefaultParallel = 1
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔧 OperationSpec is one configured operation: its registry type plus parameters
type OperationSpec struct {
	Type   string
	Params map[string]any
}

// 📋 CopySpec configures one view copy
type CopySpec struct {
	From       string          `json:"from" yaml:"from"`
	To         string          `json:"to" yaml:"to"`
	Overwrite  bool            `json:"overwrite,omitempty" yaml:"overwrite,omitempty"`
	Operations []OperationSpec `json:"operations,omitempty" yaml:"operations,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	ViewsDir string     `json:"views_dir,omitempty" yaml:"views_dir,omitempty"`
	Parallel int        `json:"parallel,omitempty" yaml:"parallel,omitempty"`
	Copies   []CopySpec `json:"copies" yaml:"copies"`

	location string
}

// Location returns the file the config was loaded from, if any.
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate checks the configuration and fills in defaults
func (cfg *Config) Validate() error {
	if cfg.Parallel < 0 {
		return errors.Errorf("parallel must not be negative, got %d", cfg.Parallel)
	}
	if cfg.Parallel == 0 {
		cfg.Parallel = DefaultParallel
	}
	if strings.TrimSpace(cfg.ViewsDir) == "" {
		cfg.ViewsDir = DefaultViewsDir
	}
	cfg.ViewsDir = filepath.Clean(cfg.ViewsDir)

	destinations := map[string]int{}
	for i, c := range cfg.Copies {
		if strings.TrimSpace(c.From) == "" {
			return errors.Errorf("copies[%d].from is required", i)
		}
		if strings.TrimSpace(c.To) == "" {
			return errors.Errorf("copies[%d].to is required", i)
		}
		to := strings.TrimSpace(c.To)
		if prev, ok := destinations[to]; ok {
			return errors.Errorf("copies[%d].to duplicates copies[%d].to: %s", i, prev, to)
		}
		destinations[to] = i

		for j, op := range c.Operations {
			if op.Type == "" {
				return errors.Errorf("copies[%d].operations[%d].type is required", i, j)
			}
			if _, ok := operation.Lookup(op.Type); !ok {
				return errors.Errorf("copies[%d].operations[%d]: %w: %q", i, j, operation.ErrUnknownOperation, op.Type)
			}
		}
	}

	// jobs run concurrently, so a job must not read what another one writes
	if cfg.Parallel > 1 {
		for i, c := range cfg.Copies {
			if prev, ok := destinations[strings.TrimSpace(c.From)]; ok {
				return errors.Errorf("copies[%d].from is written by copies[%d]; set parallel to 1 to chain copies", i, prev)
			}
		}
	}

	return nil
}

// SetParallel overrides the number of concurrent copies and validates the
// result, so a chained config is still rejected when run in parallel.
func (cfg *Config) SetParallel(n int) error {
	cfg.Parallel = n
	return cfg.Validate()
}

// 🏗️ Jobs builds one copier job per configured copy
func (cfg *Config) Jobs() ([]copier.Job, error) {
	jobs := make([]copier.Job, 0, len(cfg.Copies))
	for i, c := range cfg.Copies {
		ops := make([]operation.Operation, 0, len(c.Operations))
		for j, spec := range c.Operations {
			op, err := operation.Build(spec.Type, spec.Params)
			if err != nil {
				return nil, errors.Errorf("copies[%d].operations[%d]: %w", i, j, err)
			}
			ops = append(ops, op)
		}
		jobs = append(jobs, copier.Job{
			From:       c.From,
			To:         c.To,
			Overwrite:  c.Overwrite,
			Operations: ops,
		})
	}
	return jobs, nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%d copies in %s (parallel %d)", len(cfg.Copies), cfg.ViewsDir, cfg.Parallel)
}

// splitType pulls the "type" key out of a decoded operation map
func (s *OperationSpec) splitType(raw map[string]any) error {
	t, ok := raw["type"]
	if !ok {
		return errors.New("operation type is required")
	}
	typ, ok := t.(string)
	if !ok {
		return errors.Errorf("operation type must be a string, got %T", t)
	}
	delete(raw, "type")

	s.Type = typ
	s.Params = raw
	return nil
}

func (s *OperationSpec) merged() map[string]any {
	out := make(map[string]any, len(s.Params)+1)
	for k, v := range s.Params {
		out[k] = v
	}
	out["type"] = s.Type
	return out
}

// UnmarshalYAML decodes the flat "type plus parameters" form.
func (s *OperationSpec) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return s.splitType(raw)
}

// MarshalYAML encodes the flat "type plus parameters" form.
func (s OperationSpec) MarshalYAML() (interface{}, error) {
	return s.merged(), nil
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

// 📝 Parse parses the config from YAML
func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
