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

package view

import (
	"context"
	"strings"
	"time"

	"gitlab.com/tozd/go/errors"
)

// ErrInvalidName is returned for view names that cannot name a stored view
var ErrInvalidName = errors.Base("invalid view name")

// 📄 View is one stored view definition
type View struct {
	Name   string // View name
	Kind   Kind   // Kind detected from the configuration root
	Config []byte // Serialized configuration
}

// 📜 HistoryRecord remembers one completed copy
type HistoryRecord struct {
	From    string    `json:"from"`
	To      string    `json:"to"`
	Kind    string    `json:"kind"`
	Created bool      `json:"created"`
	Time    time.Time `json:"time"`
}

// 🗄️ Registry stores views by name
type Registry interface {
	// Get returns the named view, or nil when it does not exist
	Get(ctx context.Context, name string) (*View, error)
	// Create stores a new view
	Create(ctx context.Context, name string, config []byte) (*View, error)
	// Update replaces the configuration of an existing view
	Update(ctx context.Context, name string, config []byte) (*View, error)
	// List returns view names matching a glob, all names when glob is empty
	List(ctx context.Context, glob string) ([]string, error)
	// AppendHistory records a completed copy
	AppendHistory(ctx context.Context, rec HistoryRecord) error
}

// ValidateName rejects names that are empty or would escape the registry.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.Errorf("%w: name is empty", ErrInvalidName)
	case name == "." || name == "..":
		return errors.Errorf("%w: %q is reserved", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`+"\x00"):
		return errors.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}
