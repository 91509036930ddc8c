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
	"testing"

	"github.com/ikedam/viewcopy-builder/pkg/document"
	"github.com/ikedam/viewcopy-builder/pkg/expand"
	"github.com/ikedam/viewcopy-builder/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func serialize(t *testing.T, doc *document.Document) string {
	t.Helper()
	s, err := doc.String()
	require.NoError(t, err)
	return s
}

func TestRunner_EmptyIsIdentity(t *testing.T) {
	for _, ops := range [][]Operation{nil, {}} {
		ctx, _ := testContext(t)
		in := parse(t, templateView)

		out, err := Run(ctx, in, view.KindList, nil, ops)
		require.NoError(t, err)
		assert.Equal(t, serialize(t, in), serialize(t, out))
		assert.NotSame(t, in, out, "the result must not alias the input")
	}
}

func TestRunner_AppliesInOrder(t *testing.T) {
	ctx, logger := testContext(t)
	env := expand.Env{"BRANCH": "feature"}

	runner := NewRunner(
		NewReplace(String("template-"), false, String("${BRANCH}-"), true),
		NewSetRegex(String("${BRANCH}-.*")),
		NewSetDescription(String("Copied for ${BRANCH}")),
	)
	require.Len(t, runner.Operations(), 3)

	in := parse(t, templateView)
	before := serialize(t, in)

	out, err := runner.Run(ctx, in, view.KindList, env)
	require.NoError(t, err)

	assert.Equal(t, "feature-.*", textOf(t, out, "/*/includeRegex"))
	assert.Equal(t, "Copied for feature", textOf(t, out, "/*/description"))
	jobs := out.FindNodes("/*/jobNames/string")
	require.Len(t, jobs, 2)
	assert.Equal(t, "feature-job1", jobs[0].Text())

	assert.Equal(t, before, serialize(t, in), "the input document must not be modified")
	assert.Equal(t, []string{
		`Replaced "template-" with "feature-": 4 occurrence(s)`,
		"Set includeRegex to feature-.*",
		"Set description to:\nCopied for feature",
	}, logger.Lines())
}

func TestRunner_ShortCircuit(t *testing.T) {
	ctx, logger := testContext(t)

	first := &MockOperation{id: "first"}
	first.On("IsApplicable", view.KindList).Return(true)
	first.On("Perform", mock.Anything, mock.Anything, mock.Anything).Return(func(d *document.Document) *document.Document {
		_, err := d.CreateOrReplaceChildText("/*", "description", "mutated by first")
		require.NoError(t, err)
		return d
	}, nil)

	failing := NewSetRegex(nil)

	never := &MockOperation{id: "never"}

	in := parse(t, templateView)
	out, err := Run(ctx, in, view.KindList, nil, []Operation{first, failing, never})

	require.Error(t, err)
	assert.Nil(t, out, "no document may be returned after a failure")
	assert.True(t, errors.Is(err, ErrRegexNotSpecified))

	var serr *StepError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 1, serr.Index)
	assert.Equal(t, SetRegexID, serr.Operation)

	assert.Equal(t, "Description for template-view", textOf(t, in, "/*/description"), "mutations of earlier steps must not leak into the input")
	assert.Contains(t, logger.Lines(), "Regular expression is not specified.")

	first.AssertExpectations(t)
	never.AssertNotCalled(t, "IsApplicable", mock.Anything)
	never.AssertNotCalled(t, "Perform", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunner_ApplicabilityGate(t *testing.T) {
	ctx, logger := testContext(t)

	gated := &MockOperation{id: "gated"}
	gated.On("IsApplicable", view.KindAll).Return(false)

	out, err := Run(ctx, parse(t, templateView), view.KindAll, nil, []Operation{gated})

	require.Error(t, err)
	assert.Nil(t, out)
	var ierr *InapplicableError
	require.True(t, errors.As(err, &ierr), "expected an applicability error, got %v", err)
	assert.Equal(t, "gated", ierr.Operation)
	assert.Equal(t, view.KindAll, ierr.Kind)
	assert.Equal(t, []string{"Operation gated cannot be applied to this entity type (all)"}, logger.Lines())

	gated.AssertNotCalled(t, "Perform", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunner_SetRegexOnAllView(t *testing.T) {
	ctx, _ := testContext(t)

	_, err := Run(ctx, parse(t, `<hudson.model.AllView/>`), view.KindAll, nil, []Operation{NewSetRegex(String(".*"))})
	var ierr *InapplicableError
	require.True(t, errors.As(err, &ierr))
}

func TestRunner_FailingStepDoesNotLeakPartialMutation(t *testing.T) {
	ctx, _ := testContext(t)

	var seen *document.Document
	partial := &MockOperation{id: "partial"}
	partial.On("IsApplicable", view.KindList).Return(true)
	partial.On("Perform", mock.Anything, mock.Anything, mock.Anything).Return(func(d *document.Document) *document.Document {
		seen = d
		_, _ = d.CreateOrReplaceChildText("/*", "includeRegex", "half-done")
		return nil
	}, errors.New("boom"))

	in := parse(t, templateView)
	out, err := Run(ctx, in, view.KindList, nil, []Operation{partial})
	require.Error(t, err)
	assert.Nil(t, out)
	require.NotNil(t, seen)
	assert.NotSame(t, in, seen, "operations receive a private copy")
	assert.Equal(t, "template-.*", textOf(t, in, "/*/includeRegex"))
}

func TestRunner_NilDocumentIsFailure(t *testing.T) {
	ctx, logger := testContext(t)

	broken := &MockOperation{id: "broken"}
	broken.On("IsApplicable", view.KindList).Return(true)
	broken.On("Perform", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	_, err := Run(ctx, parse(t, templateView), view.KindList, nil, []Operation{broken})
	require.Error(t, err)
	assert.Contains(t, logger.Lines(), "Operation broken returned no document")
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, logger := testContext(t)
	ctx, cancel := context.WithCancel(ctx)
	cancel()

	_, err := Run(ctx, parse(t, templateView), view.KindList, nil, []Operation{NewSetDescription(nil)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.NotEmpty(t, logger.Lines())
}

func TestRunner_Reusable(t *testing.T) {
	runner := NewRunner(NewSetRegex(String("${B}-.*")))

	for _, b := range []string{"one", "two"} {
		ctx, _ := testContext(t)
		out, err := runner.Run(ctx, parse(t, templateView), view.KindList, expand.Env{"B": b})
		require.NoError(t, err)
		assert.Equal(t, b+"-.*", textOf(t, out, "/*/includeRegex"))
	}
}

func TestRunner_NilOperation(t *testing.T) {
	ctx, logger := testContext(t)

	desc := NewSetDescription(String("never applied"))
	var out *document.Document
	var err error
	require.NotPanics(t, func() {
		out, err = Run(ctx, parse(t, templateView), view.KindList, nil, []Operation{desc, nil})
	})

	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, ErrNilOperation))

	var serr *StepError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 1, serr.Index)
	assert.Contains(t, logger.Lines(), "Operation #2 is not configured")
}
