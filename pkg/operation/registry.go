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
	"sort"
	"sync"

	"github.com/mitchellh/mapstructure"
	"gitlab.com/tozd/go/errors"
)

// 🏭 Factory builds an operation from its configured parameters
type Factory func(params map[string]any) (Operation, error)

// 📇 Descriptor describes a selectable operation type
type Descriptor struct {
	ID          string  // Identifier used in configuration files
	DisplayName string  // Name shown to users
	Factory     Factory // Builds configured instances
}

var (
	// 🗺️ descriptors holds every registered operation type
	descriptors   = map[string]Descriptor{}
	descriptorsMu sync.RWMutex
)

func init() {
	Register(Descriptor{ID: SetDescriptionID, DisplayName: "Set description", Factory: newSetDescriptionFromParams})
	Register(Descriptor{ID: SetRegexID, DisplayName: "Set regular expression", Factory: newSetRegexFromParams})
	Register(Descriptor{ID: ReplaceID, DisplayName: "Replace string", Factory: newReplaceFromParams})
}

// 📝 Register adds an operation type, replacing any with the same ID
func Register(d Descriptor) {
	descriptorsMu.Lock()
	defer descriptorsMu.Unlock()
	descriptors[d.ID] = d
}

// 🎯 Lookup returns the operation type registered under id
func Lookup(id string) (Descriptor, bool) {
	descriptorsMu.RLock()
	defer descriptorsMu.RUnlock()
	d, ok := descriptors[id]
	return d, ok
}

// All returns every registered operation type ordered by display name.
func All() []Descriptor {
	descriptorsMu.RLock()
	defer descriptorsMu.RUnlock()
	out := make([]Descriptor, 0, len(descriptors))
	for _, d := range descriptors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayName == out[j].DisplayName {
			return out[i].ID < out[j].ID
		}
		return out[i].DisplayName < out[j].DisplayName
	})
	return out
}

// 🔨 Build creates a configured operation of type id
func Build(id string, params map[string]any) (Operation, error) {
	d, ok := Lookup(id)
	if !ok {
		return nil, errors.Errorf("%w: %q", ErrUnknownOperation, id)
	}
	op, err := d.Factory(params)
	if err != nil {
		return nil, errors.Errorf("building %s: %w", id, err)
	}
	return op, nil
}

func decodeParams(params map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return errors.Errorf("creating decoder: %w", err)
	}
	if err := dec.Decode(params); err != nil {
		return errors.Errorf("decoding parameters: %w", err)
	}
	return nil
}

type setDescriptionParams struct {
	Description *string `mapstructure:"description"`
}

func newSetDescriptionFromParams(params map[string]any) (Operation, error) {
	var p setDescriptionParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return NewSetDescription(p.Description), nil
}

type setRegexParams struct {
	Regex *string `mapstructure:"regex"`
}

func newSetRegexFromParams(params map[string]any) (Operation, error) {
	var p setRegexParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return NewSetRegex(p.Regex), nil
}

type replaceParams struct {
	From       *string `mapstructure:"from"`
	ExpandFrom bool    `mapstructure:"expand_from"`
	To         *string `mapstructure:"to"`
	ExpandTo   bool    `mapstructure:"expand_to"`
}

func newReplaceFromParams(params map[string]any) (Operation, error) {
	var p replaceParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return NewReplace(p.From, p.ExpandFrom, p.To, p.ExpandTo), nil
}
