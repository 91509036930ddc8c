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

import "strings"

// 📊 Kind is the entity type tag operations check applicability against
type Kind int

const (
	KindOther Kind = iota // Any view without special handling
	KindList              // List-style view with an include pattern
	KindAll               // Union-of-all view
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindList:
		return "list"
	case KindAll:
		return "all"
	default:
		return "other"
	}
}

// KindOf maps the root element name of a view configuration to its kind.
func KindOf(rootTag string) Kind {
	tag := rootTag
	if i := strings.LastIndexByte(tag, ':'); i >= 0 {
		tag = tag[i+1:]
	}
	switch tag {
	case "hudson.model.ListView", "listView":
		return KindList
	case "hudson.model.AllView", "allView":
		return KindAll
	default:
		return KindOther
	}
}
