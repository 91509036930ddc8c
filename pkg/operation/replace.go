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

	"github.com/ikedam/viewcopy-builder/pkg/document"
	"github.com/ikedam/viewcopy-builder/pkg/expand"
	"github.com/ikedam/viewcopy-builder/pkg/log"
	"github.com/ikedam/viewcopy-builder/pkg/text"
	"github.com/ikedam/viewcopy-builder/pkg/view"
	"github.com/rs/zerolog"
)

// ReplaceID identifies Replace in the registry
const ReplaceID = "replace"

// 🔄 Replace substitutes a literal string in every text node of the view.
// Strings are kept verbatim since surrounding whitespace is part of the match.
type Replace struct {
	fromStr    *string
	expandFrom bool
	toStr      *string
	expandTo   bool
}

// 🏭 NewReplace creates the operation
func NewReplace(fromStr *string, expandFrom bool, toStr *string, expandTo bool) *Replace {
	return &Replace{
		fromStr:    fromStr,
		expandFrom: expandFrom,
		toStr:      toStr,
		expandTo:   expandTo,
	}
}

// FromStr returns the search string, nil when absent
func (op *Replace) FromStr() *string { return op.fromStr }

// ExpandFrom reports whether variables in the search string are expanded
func (op *Replace) ExpandFrom() bool { return op.expandFrom }

// ToStr returns the replacement, nil when absent
func (op *Replace) ToStr() *string { return op.toStr }

// ExpandTo reports whether variables in the replacement are expanded
func (op *Replace) ExpandTo() bool { return op.expandTo }

func (op *Replace) ID() string { return ReplaceID }

// IsApplicable is true for every kind of view
func (op *Replace) IsApplicable(view.Kind) bool { return true }

// 🏃 Perform replaces every non-overlapping occurrence, left to right
func (op *Replace) Perform(ctx context.Context, doc *document.Document, env expand.Env) (*document.Document, error) {
	logger := log.FromContext(ctx)

	from := derefOr(op.fromStr, "")
	if op.expandFrom {
		from = env.Expand(from)
	}
	to := derefOr(op.toStr, "")
	if op.expandTo {
		to = env.Expand(to)
	}

	if from == "" {
		logger.Info("Replace: nothing to replace.")
		return doc, nil
	}

	rule := text.Rule{From: from, To: to}
	count := 0
	for _, cd := range doc.TextNodes() {
		res := text.Replace(cd.Data, rule)
		if !res.Modified() {
			continue
		}
		count += res.Count
		document.SetCharData(cd, res.Text)
		zerolog.Ctx(ctx).Trace().Str("node", document.RenderPath(cd)).Int("count", res.Count).Msg("replaced text")
	}

	logger.Printf("Replaced %q with %q: %d occurrence(s)", from, to, count)
	return doc, nil
}
