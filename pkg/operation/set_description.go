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

	"github.com/ikedam/viewcopy-builder/pkg/document"
	"github.com/ikedam/viewcopy-builder/pkg/expand"
	"github.com/ikedam/viewcopy-builder/pkg/log"
	"github.com/ikedam/viewcopy-builder/pkg/view"
	"gitlab.com/tozd/go/errors"
)

// SetDescriptionID identifies SetDescription in the registry
const SetDescriptionID = "set_description"

// 📝 SetDescription replaces the description of the copied view
type SetDescription struct {
	description *string
}

// 🏭 NewSetDescription creates the operation; description may contain variables
func NewSetDescription(description *string) *SetDescription {
	return &SetDescription{description: trimPtr(description)}
}

// Description returns the configured description, nil when absent
func (op *SetDescription) Description() *string {
	return op.description
}

func (op *SetDescription) ID() string { return SetDescriptionID }

// IsApplicable is true for every kind of view
func (op *SetDescription) IsApplicable(view.Kind) bool { return true }

// 🏃 Perform sets /*/description, creating it when missing
func (op *SetDescription) Perform(ctx context.Context, doc *document.Document, env expand.Env) (*document.Document, error) {
	logger := log.FromContext(ctx)

	description := ""
	if op.description != nil {
		description = strings.TrimSpace(env.Expand(*op.description))
	}

	if _, err := doc.CreateOrReplaceChildText("/*", "description", description); err != nil {
		logger.Errorf("Failed to locate description: %v", err)
		return nil, errors.Errorf("setting description: %w", err)
	}

	logger.Printf("Set description to:\n%s", description)
	return doc, nil
}
