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
	"fmt"

	"github.com/ikedam/viewcopy-builder/pkg/view"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrRegexNotSpecified is returned when no pattern was configured
	ErrRegexNotSpecified = errors.Base("regular expression is not specified")
	// ErrRegexEmpty is returned when the pattern expanded to nothing
	ErrRegexEmpty = errors.Base("regular expression got to empty")
	// ErrNilOperation is returned when an operation list holds a nil entry
	ErrNilOperation = errors.Base("operation is nil")
	// ErrUnknownOperation is returned when building an unregistered operation type
	ErrUnknownOperation = errors.Base("unknown operation")
)

// 🧩 PatternError reports a pattern that does not compile
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid regular expression %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// 🚫 InapplicableError reports an operation that cannot run against a view kind
type InapplicableError struct {
	Operation string
	Kind      view.Kind
}

func (e *InapplicableError) Error() string {
	return fmt.Sprintf("operation %s cannot be applied to a %s view", e.Operation, e.Kind)
}

// 🧱 StepError wraps the failure of one pipeline step
type StepError struct {
	Index     int
	Operation string
	Err       error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("operation #%d (%s): %v", e.Index+1, e.Operation, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
