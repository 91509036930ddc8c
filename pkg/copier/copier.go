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

// Package copier copies a view to another name, rewriting its configuration on the way.
package copier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ikedam/viewcopy-builder/pkg/document"
	"github.com/ikedam/viewcopy-builder/pkg/expand"
	"github.com/ikedam/viewcopy-builder/pkg/log"
	"github.com/ikedam/viewcopy-builder/pkg/operation"
	"github.com/ikedam/viewcopy-builder/pkg/view"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNameNotSpecified is returned when a view name is blank as configured
	ErrNameNotSpecified = errors.Base("view name is not specified")
	// ErrNameBlank is returned when a view name expands to a blank string
	ErrNameBlank = errors.Base("view name got to a blank")
	// ErrSourceNotFound is returned when the view to copy does not exist
	ErrSourceNotFound = errors.Base("copying view is not found")
	// ErrDestinationExists is returned when the target exists and overwrite is off
	ErrDestinationExists = errors.Base("destination view already exists")
)

// Fields of the serialized source that must not be carried to the destination.
var omittedFields = []string{"/*/owner", "/*/name"}

// 📋 Job describes one copy
type Job struct {
	From       string                // Source view name, may contain variables
	To         string                // Destination view name, may contain variables
	Overwrite  bool                  // Whether an existing destination is updated
	Operations []operation.Operation // Rewrites applied in order
}

// ✅ Result describes a completed copy
type Result struct {
	From    string    // Expanded source name
	To      string    // Expanded destination name
	Kind    view.Kind // Kind of the source view
	Created bool      // False when an existing view was updated
	Config  []byte    // Committed configuration
}

// 📦 Copier copies views within a registry
type Copier struct {
	registry view.Registry
	now      func() time.Time
}

// 🏭 New creates a copier over registry
func New(registry view.Registry) *Copier {
	return &Copier{registry: registry, now: time.Now}
}

// 🏃 Copy runs job. Nothing is committed unless every operation succeeded.
func (c *Copier) Copy(ctx context.Context, job Job, env expand.Env) (*Result, error) {
	logger := log.FromContext(ctx)

	from, err := resolveName(logger, "From", job.From, env)
	if err != nil {
		return nil, err
	}
	to, err := resolveName(logger, "To", job.To, env)
	if err != nil {
		return nil, err
	}

	zlog := zerolog.Ctx(ctx).With().Str("from", from).Str("to", to).Logger()
	logger.Header(fmt.Sprintf("Copying %s to %s", from, to))

	source, err := c.registry.Get(ctx, from)
	if err != nil {
		logger.Errorf("Failed to look up %s: %v", from, err)
		return nil, errors.Errorf("getting view %s: %w", from, err)
	}
	if source == nil {
		logger.Error("Error: Copying view is not found.")
		return nil, errors.Errorf("%w: %s", ErrSourceNotFound, from)
	}

	dest, err := c.registry.Get(ctx, to)
	if err != nil {
		logger.Errorf("Failed to look up %s: %v", to, err)
		return nil, errors.Errorf("getting view %s: %w", to, err)
	}
	if dest != nil {
		logger.Warningf("Already exists: %s", to)
		if !job.Overwrite {
			return nil, errors.Errorf("%w: %s", ErrDestinationExists, to)
		}
	}

	logger.Infof("Fetching configuration of %s...", from)
	doc, err := document.ParseBytes(source.Config)
	if err != nil {
		logger.Error("Failed to retrieve configuration.")
		logger.Error(err.Error())
		return nil, errors.Errorf("parsing view %s: %w", from, err)
	}
	for _, path := range omittedFields {
		if _, err := doc.RemoveNodes(path); err != nil {
			logger.Error(err.Error())
			return nil, err
		}
	}
	if err := dumpDocument(logger, "Original xml:", doc); err != nil {
		return nil, err
	}

	zlog.Debug().Int("operations", len(job.Operations)).Str("kind", source.Kind.String()).Msg("running operations")
	doc, err = operation.Run(ctx, doc, source.Kind, env, job.Operations)
	if err != nil {
		return nil, errors.Errorf("copying %s to %s: %w", from, to, err)
	}

	if err := dumpDocument(logger, "Copied xml:", doc); err != nil {
		return nil, err
	}

	config, err := doc.Bytes()
	if err != nil {
		logger.Error("Failed to create the stream from converted document.")
		logger.Error(err.Error())
		return nil, err
	}

	result := &Result{From: from, To: to, Kind: source.Kind, Config: config}
	if dest == nil {
		logger.Infof("Creating %s", to)
		if _, err := c.registry.Create(ctx, to, config); err != nil {
			logger.Errorf("Failed to create %s: %v", to, err)
			return nil, errors.Errorf("creating view %s: %w", to, err)
		}
		result.Created = true
	} else {
		logger.Infof("Updating %s", to)
		if _, err := c.registry.Update(ctx, to, config); err != nil {
			logger.Errorf("Failed to update %s: %v", to, err)
			return nil, errors.Errorf("updating view %s: %w", to, err)
		}
	}

	rec := view.HistoryRecord{From: from, To: to, Kind: source.Kind.String(), Created: result.Created, Time: c.now()}
	if err := c.registry.AppendHistory(ctx, rec); err != nil {
		// the view is already committed, a missing record only loses bookkeeping
		zlog.Warn().Err(err).Msg("recording copy history")
	}

	logger.Successf("Copied %s to %s", from, to)
	zlog.Info().Bool("created", result.Created).Msg("view copied")
	return result, nil
}

// ⚡ RunAll runs independent jobs concurrently, at most limit at a time
// (no limit when limit <= 0). Results keep the order of jobs.
func (c *Copier) RunAll(ctx context.Context, jobs []Job, env expand.Env, limit int) ([]*Result, error) {
	results := make([]*Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			res, err := c.Copy(gctx, job, env)
			if err != nil {
				return errors.Errorf("job %d: %w", i+1, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func resolveName(logger *log.Logger, label, name string, env expand.Env) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		logger.Errorf("%s View Name is not specified", label)
		return "", errors.Errorf("%s: %w", strings.ToLower(label), ErrNameNotSpecified)
	}
	expanded := strings.TrimSpace(env.Expand(name))
	if expanded == "" {
		logger.Errorf("%s View Name got to a blank", label)
		return "", errors.Errorf("%s: %w", strings.ToLower(label), ErrNameBlank)
	}
	return expanded, nil
}

func dumpDocument(logger *log.Logger, title string, doc *document.Document) error {
	s, err := doc.Indented()
	if err != nil {
		logger.Error("Failed to convert the configuration to a string.")
		logger.Error(err.Error())
		return err
	}
	logger.Block(title, s)
	return nil
}
