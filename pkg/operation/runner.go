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
	"github.com/ikedam/viewcopy-builder/pkg/view"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Runner applies an ordered list of operations, stopping at the first failure
type Runner struct {
	operations []Operation
}

// 🏗️ NewRunner creates a new runner; a nil or empty list is the identity transform
func NewRunner(operations ...Operation) *Runner {
	return &Runner{operations: operations}
}

// Operations returns the configured list in execution order
func (r *Runner) Operations() []Operation {
	return r.operations
}

// 🏃 Run applies every operation to a private copy of doc. The input is never
// modified and no partial result is returned on failure.
func (r *Runner) Run(ctx context.Context, doc *document.Document, kind view.Kind, env expand.Env) (*document.Document, error) {
	logger := log.FromContext(ctx)
	zlog := zerolog.Ctx(ctx)

	current := doc.Copy()
	for i, op := range r.operations {
		if op == nil {
			logger.Errorf("Operation #%d is not configured", i+1)
			return nil, &StepError{Index: i, Operation: "<nil>", Err: errors.WithStack(ErrNilOperation)}
		}

		if err := ctx.Err(); err != nil {
			logger.Warningf("Copy cancelled before operation %s", op.ID())
			return nil, errors.Errorf("operation cancelled: %w", err)
		}

		if !op.IsApplicable(kind) {
			logger.Errorf("Operation %s cannot be applied to this entity type (%s)", op.ID(), kind)
			return nil, &StepError{Index: i, Operation: op.ID(), Err: errors.WithStack(&InapplicableError{Operation: op.ID(), Kind: kind})}
		}

		zlog.Debug().Int("index", i).Str("operation", op.ID()).Msg("performing operation")

		// each step owns its input, a failure leaves current untouched
		next, err := op.Perform(ctx, current.Copy(), env)
		if err != nil {
			return nil, &StepError{Index: i, Operation: op.ID(), Err: err}
		}
		if next == nil {
			logger.Errorf("Operation %s returned no document", op.ID())
			return nil, &StepError{Index: i, Operation: op.ID(), Err: errors.New("no document returned")}
		}
		current = next
	}

	return current, nil
}

// Run is a shorthand for NewRunner(operations...).Run.
func Run(ctx context.Context, doc *document.Document, kind view.Kind, env expand.Env, operations []Operation) (*document.Document, error) {
	return NewRunner(operations...).Run(ctx, doc, kind, env)
}
