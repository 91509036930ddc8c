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

// Package expand resolves $NAME and ${NAME} placeholders against a build environment.
package expand

import (
	"os"
	"regexp"
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// $$ is an escaped dollar, ${NAME} may contain dots, bare $NAME may not.
var placeholder = regexp.MustCompile(`\$\$|\$\{([A-Za-z0-9_.]+)\}|\$([A-Za-z0-9_]+)`)

// 🌍 Env maps variable names to values for one copy run
type Env map[string]string

// 🔄 Expand substitutes every resolvable placeholder in template.
// Unknown variables are left in place untouched.
func (e Env) Expand(template string) string {
	if !strings.Contains(template, "$") {
		return template
	}

	var b strings.Builder
	last := 0
	for _, m := range placeholder.FindAllStringSubmatchIndex(template, -1) {
		b.WriteString(template[last:m[0]])
		last = m[1]

		var name string
		switch {
		case m[2] >= 0:
			name = template[m[2]:m[3]]
		case m[4] >= 0:
			name = template[m[4]:m[5]]
		default:
			b.WriteByte('$')
			continue
		}

		if v, ok := e[name]; ok {
			b.WriteString(v)
		} else {
			b.WriteString(template[m[0]:m[1]])
		}
	}
	b.WriteString(template[last:])
	return b.String()
}

// Expand is a shorthand for env.Expand(template).
func Expand(env Env, template string) string {
	return env.Expand(template)
}

// ContainsVariable reports whether s may reference a variable. Values that
// do cannot be checked statically.
func ContainsVariable(s string) bool {
	return strings.TrimSpace(s) != "" && strings.Contains(s, "$")
}

// Keys returns the variable names in sorted order
func (e Env) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// 🔀 Merge combines environments; later ones win
func Merge(envs ...Env) Env {
	out := Env{}
	for _, e := range envs {
		for k, v := range e {
			out[k] = v
		}
	}
	return out
}

// 🖥️ FromOS captures the process environment
func FromOS() Env {
	env := Env{}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			env[k] = v
		}
	}
	return env
}

// 📝 ParsePairs builds an environment from KEY=VALUE strings
func ParsePairs(pairs []string) (Env, error) {
	env := Env{}
	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, errors.Errorf("invalid variable %q: expected KEY=VALUE", kv)
		}
		env[strings.TrimSpace(k)] = v
	}
	return env, nil
}
