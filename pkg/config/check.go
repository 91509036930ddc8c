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
	"fmt"
	"strings"

	"github.com/ikedam/viewcopy-builder/pkg/expand"
	"github.com/ikedam/viewcopy-builder/pkg/operation"
	"github.com/ikedam/viewcopy-builder/pkg/view"
)

// 🚦 Level is the severity of a check finding
type Level int

const (
	LevelOK Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "ok"
	}
}

// 🔎 Finding is the outcome of checking one configured value
type Finding struct {
	Field   string
	Level   Level
	Message string
}

func okFinding() Finding { return Finding{Level: LevelOK} }

func warningFinding(msg string) Finding { return Finding{Level: LevelWarning, Message: msg} }

func errorFinding(msg string) Finding { return Finding{Level: LevelError, Message: msg} }

// ExistsFunc reports whether a view exists
type ExistsFunc func(name string) (bool, error)

// 🔍 CheckViewName checks a view name field. Names containing variables
// are not looked up.
func CheckViewName(name string, exists ExistsFunc, warnIfExists, warnIfNotExists bool) Finding {
	name = strings.TrimSpace(name)
	if name == "" {
		return errorFinding("View name is not specified.")
	}
	if expand.ContainsVariable(name) {
		return okFinding()
	}

	found, err := exists(name)
	if err != nil {
		return errorFinding(fmt.Sprintf("Failed to look up %s: %v", name, err))
	}
	if found && warnIfExists {
		return warningFinding(fmt.Sprintf("View %s already exists.", name))
	}
	if !found && warnIfNotExists {
		return warningFinding(fmt.Sprintf("View %s does not exist.", name))
	}
	return okFinding()
}

// CheckFromViewName checks the source of a copy.
func CheckFromViewName(name string, exists ExistsFunc) Finding {
	return CheckViewName(name, exists, false, true)
}

// CheckToViewName checks the destination of a copy.
func CheckToViewName(name string, overwrite bool, exists ExistsFunc) Finding {
	return CheckViewName(name, exists, !overwrite, false)
}

// 🔍 CheckRegex checks a set_regex pattern. Patterns containing variables
// are not compiled.
func CheckRegex(regex *string) Finding {
	if regex == nil || strings.TrimSpace(*regex) == "" {
		return errorFinding("Regular expression is not specified.")
	}
	pattern := strings.TrimSpace(*regex)
	if strings.Contains(pattern, "$") {
		return okFinding()
	}
	if err := operation.CompilePattern(pattern); err != nil {
		return errorFinding(fmt.Sprintf("Invalid regular expression: %v", err))
	}
	return okFinding()
}

// 🔍 CheckFromStr checks the search string of a replace operation.
func CheckFromStr(from *string) Finding {
	if from == nil || *from == "" {
		return errorFinding("String to replace is not specified.")
	}
	if strings.TrimSpace(*from) == "" {
		return warningFinding("String to replace consists only of whitespace.")
	}
	if strings.TrimSpace(*from) != *from {
		return warningFinding("String to replace has leading or trailing whitespace.")
	}
	return okFinding()
}

// 🩺 Check runs the field checks over every configured copy and returns
// the findings that are not OK, in configuration order.
func (cfg *Config) Check(ctx context.Context, reg view.Registry) []Finding {
	exists := func(name string) (bool, error) {
		v, err := reg.Get(ctx, name)
		if err != nil {
			return false, err
		}
		return v != nil, nil
	}

	var findings []Finding
	add := func(field string, f Finding) {
		if f.Level == LevelOK {
			return
		}
		f.Field = field
		findings = append(findings, f)
	}

	for i, c := range cfg.Copies {
		prefix := fmt.Sprintf("copies[%d]", i)
		add(prefix+".from", CheckFromViewName(c.From, exists))
		add(prefix+".to", CheckToViewName(c.To, c.Overwrite, exists))

		for j, spec := range c.Operations {
			field := fmt.Sprintf("%s.operations[%d]", prefix, j)
			op, err := operation.Build(spec.Type, spec.Params)
			if err != nil {
				add(field, errorFinding(err.Error()))
				continue
			}
			switch o := op.(type) {
			case *operation.SetRegex:
				add(field+".regex", CheckRegex(o.Regex()))
			case *operation.Replace:
				add(field+".from", CheckFromStr(o.FromStr()))
			}
		}
	}
	return findings
}
