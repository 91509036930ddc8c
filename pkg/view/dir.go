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
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ikedam/viewcopy-builder/pkg/document"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const (
	configExt   = ".xml"
	historyFile = ".viewcopy-history.jsonl"
)

var (
	// ErrExists is returned by Create when the view already exists
	ErrExists = errors.Base("view already exists")
	// ErrNotFound is returned by Update when the view does not exist
	ErrNotFound = errors.Base("view not found")
)

var _ Registry = (*DirRegistry)(nil)

// 🗂️ DirRegistry stores each view as <dir>/<name>.xml
type DirRegistry struct {
	baseDir string
	mu      sync.Mutex
}

// 🏭 NewDirRegistry opens (and creates if needed) a registry rooted at dir
func NewDirRegistry(dir string) (*DirRegistry, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Errorf("creating views directory: %w", err)
	}
	return &DirRegistry{baseDir: filepath.Clean(dir)}, nil
}

// Dir returns the registry root.
func (r *DirRegistry) Dir() string {
	return r.baseDir
}

// 🔒 pathOf returns the file holding a view
func (r *DirRegistry) pathOf(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(r.baseDir, name+configExt), nil
}

// 🔍 Get reads a view, returning nil when it does not exist
func (r *DirRegistry) Get(ctx context.Context, name string) (*View, error) {
	path, err := r.pathOf(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		zerolog.Ctx(ctx).Debug().Str("view", name).Msg("view not found")
		return nil, nil
	}
	if err != nil {
		return nil, errors.Errorf("reading view %s: %w", name, err)
	}

	return newView(name, data)
}

// ✨ Create stores a new view
func (r *DirRegistry) Create(ctx context.Context, name string, config []byte) (*View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	path, err := r.pathOf(name)
	if err != nil {
		return nil, err
	}
	exists, err := fileExists(path)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Errorf("creating view %s: %w", name, ErrExists)
	}
	return r.store(ctx, name, path, config)
}

// 🔄 Update replaces the configuration of an existing view
func (r *DirRegistry) Update(ctx context.Context, name string, config []byte) (*View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	path, err := r.pathOf(name)
	if err != nil {
		return nil, err
	}
	exists, err := fileExists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.Errorf("updating view %s: %w", name, ErrNotFound)
	}
	return r.store(ctx, name, path, config)
}

func (r *DirRegistry) store(ctx context.Context, name, path string, config []byte) (*View, error) {
	v, err := newView(name, config)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(path, config); err != nil {
		return nil, errors.Errorf("writing view %s: %w", name, err)
	}
	zerolog.Ctx(ctx).Debug().Str("view", name).Str("kind", v.Kind.String()).Msg("stored view")
	return v, nil
}

// 📋 List returns view names matching glob in sorted order
func (r *DirRegistry) List(ctx context.Context, glob string) ([]string, error) {
	if glob != "" && !doublestar.ValidatePattern(glob) {
		return nil, errors.Errorf("invalid glob pattern %q", glob)
	}

	entries, err := os.ReadDir(r.baseDir)
	if err != nil {
		return nil, errors.Errorf("reading views directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), configExt) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), configExt)
		if glob != "" {
			matched, err := doublestar.Match(glob, name)
			if err != nil {
				zerolog.Ctx(ctx).Debug().Str("pattern", glob).Str("view", name).Err(err).Msg("error matching pattern")
				continue
			}
			if !matched {
				continue
			}
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// 📜 AppendHistory appends a copy record as one JSON line
func (r *DirRegistry) AppendHistory(ctx context.Context, rec HistoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	line, err := json.Marshal(rec)
	if err != nil {
		return errors.Errorf("encoding history record: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(r.baseDir, historyFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Errorf("opening history: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return errors.Errorf("writing history: %w", err)
	}
	return nil
}

// 📜 History returns every recorded copy, oldest first
func (r *DirRegistry) History(ctx context.Context) ([]HistoryRecord, error) {
	f, err := os.Open(filepath.Join(r.baseDir, historyFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Errorf("opening history: %w", err)
	}
	defer f.Close()

	var out []HistoryRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		var rec HistoryRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return nil, errors.Errorf("decoding history record: %w", err)
		}
		out = append(out, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Errorf("reading history: %w", err)
	}
	return out, nil
}

func newView(name string, config []byte) (*View, error) {
	doc, err := document.ParseBytes(config)
	if err != nil {
		return nil, errors.Errorf("view %s: %w", name, err)
	}
	return &View{Name: name, Kind: KindOf(doc.RootTag()), Config: config}, nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

func writeFileAtomic(path string, content []byte) error {
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
