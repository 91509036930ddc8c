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

package operation

import (
	"context"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/ikedam/viewcopy-builder/pkg/document"
	"github.com/ikedam/viewcopy-builder/pkg/expand"
	"github.com/ikedam/viewcopy-builder/pkg/log"
	"github.com/ikedam/viewcopy-builder/pkg/view"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// SetRegexID identifies SetRegex in the registry
const SetRegexID = "set_regex"

// 🔤 SetRegex replaces the job include pattern of a list view
type SetRegex struct {
	regex *string
}

// 🏭 NewSetRegex creates the operation; regex may contain variables
func NewSetRegex(regex *string) *SetRegex {
	return &SetRegex{regex: trimPtr(regex)}
}

// Regex returns the configured pattern, nil when absent
func (op *SetRegex) Regex() *string {
	return op.regex
}

func (op *SetRegex) ID() string { return SetRegexID }

// IsApplicable is true only for list views, the only kind with an include pattern
func (op *SetRegex) IsApplicable(kind view.Kind) bool {
	return kind == view.KindList
}

// 🏃 Perform validates the expanded pattern and stores it in /*/includeRegex
func (op *SetRegex) Perform(ctx context.Context, doc *document.Document, env expand.Env) (*document.Document, error) {
	logger := log.FromContext(ctx)

	if derefOr(op.regex, "") == "" {
		logger.Error("Regular expression is not specified.")
		return nil, errors.WithStack(ErrRegexNotSpecified)
	}

	expanded := strings.TrimSpace(env.Expand(*op.regex))
	if expanded == "" {
		logger.Error("Regular expression got to empty.")
		return nil, errors.WithStack(ErrRegexEmpty)
	}

	if err := CompilePattern(expanded); err != nil {
		logger.Error(err.Error())
		return nil, err
	}

	if _, err := doc.CreateOrReplaceChildText("/*", "includeRegex", expanded); err != nil {
		logger.Errorf("Failed to locate includeRegex: %v", err)
		return nil, errors.Errorf("setting includeRegex: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("pattern", expanded).Msg("include pattern set")
	logger.Printf("Set includeRegex to %s", expanded)
	return doc, nil
}

// CompilePattern checks that pattern compiles in the dialect views are matched with.
func CompilePattern(pattern string) error {
	if _, err := regexp2.Compile(pattern, regexp2.None); err != nil {
		return &PatternError{Pattern: pattern, Err: err}
	}
	return nil
}
