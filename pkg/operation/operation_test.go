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
	"os"
	"testing"

	"github.com/ikedam/viewcopy-builder/pkg/document"
	"github.com/ikedam/viewcopy-builder/pkg/expand"
	"github.com/ikedam/viewcopy-builder/pkg/log"
	"github.com/ikedam/viewcopy-builder/pkg/view"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const templateView = `<?xml version="1.0" encoding="UTF-8"?>
<hudson.model.ListView>
  <owner class="hudson.model.Hudson" reference="../../.."/>
  <description>Description for template-view</description>
  <jobNames>
    <string>template-job1</string>
    <string>template-job2</string>
  </jobNames>
  <includeRegex>template-.*</includeRegex>
</hudson.model.ListView>`

// 🔧 MockOperation is a mock implementation of the Operation interface
type MockOperation struct {
	mock.Mock
	id string
}

func (m *MockOperation) ID() string {
	return m.id
}

func (m *MockOperation) IsApplicable(kind view.Kind) bool {
	return m.Called(kind).Bool(0)
}

func (m *MockOperation) Perform(ctx context.Context, doc *document.Document, env expand.Env) (*document.Document, error) {
	result := m.Called(ctx, doc, env)
	if fn, ok := result.Get(0).(func(*document.Document) *document.Document); ok {
		return fn(doc), result.Error(1)
	}
	if d, ok := result.Get(0).(*document.Document); ok {
		return d, result.Error(1)
	}
	return nil, result.Error(1)
}

// testContext returns a context carrying a fresh diagnostics logger
func testContext(t *testing.T) (context.Context, *log.Logger) {
	t.Helper()
	logger := log.Discard()
	ctx := zerolog.New(os.Stderr).Level(zerolog.Disabled).WithContext(context.Background())
	return log.NewContext(ctx, logger), logger
}

func parse(t *testing.T, s string) *document.Document {
	t.Helper()
	doc, err := document.ParseString(s)
	require.NoError(t, err, "parsing document should succeed")
	return doc
}

func textOf(t *testing.T, doc *document.Document, path string) string {
	t.Helper()
	node := doc.FindSingleNode(path)
	require.NotNil(t, node, "expected a unique node at %s", path)
	return node.Text()
}
