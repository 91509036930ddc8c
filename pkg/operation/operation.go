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
	"github.com/ikedam/viewcopy-builder/pkg/view"
)

// 🎯 Operation is one configured rewrite step applied to a view configuration
type Operation interface {
	// ID returns the registry identifier of the operation type
	ID() string
	// IsApplicable reports whether the operation may run against a view of this kind
	IsApplicable(kind view.Kind) bool
	// Perform rewrites doc and returns the result. A non-nil error aborts the copy;
	// the diagnostic line has already been written to the context logger.
	Perform(ctx context.Context, doc *document.Document, env expand.Env) (*document.Document, error)
}

// trimPtr trims s, keeping nil as nil
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func derefOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

// String returns a pointer to s, for building operations from literals.
func String(s string) *string {
	return &s
}
