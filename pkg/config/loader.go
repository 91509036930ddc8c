package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrNotFound is returned by Find when no config file exists
var ErrNotFound = errors.Base("no config file found")

// DefaultNames are the file names Find looks for, in order.
var DefaultNames = []string{
	"viewcopy.yaml",
	"viewcopy.yml",
	"viewcopy.hcl",
	"viewcopy.json",
	".viewcopy",
}

// Load loads a configuration file from the given path.
// The format is determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
// - .viewcopy will try both YAML and HCL formats
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	cfg, err := parse(ctx, path, data)
	if err != nil {
		return nil, err
	}
	cfg.location = path

	logger.Debug().Str("path", path).Int("copies", len(cfg.Copies)).Msg("configuration loaded")
	return cfg, nil
}

func parse(ctx context.Context, path string, data []byte) (*Config, error) {
	// For .viewcopy files, try both YAML and HCL
	if filepath.Base(path) == ".viewcopy" || strings.ToLower(filepath.Ext(path)) == ".viewcopy" {
		cfg, yamlErr := (&YAMLParser{}).Parse(ctx, data)
		if yamlErr == nil {
			return cfg, nil
		}
		cfg, hclErr := (&HCLParser{}).Parse(ctx, data)
		if hclErr == nil {
			return cfg, nil
		}
		return nil, errors.Errorf("failed to parse %s as YAML (%v) or HCL: %w", path, yamlErr, hclErr)
	}

	p := GetParser(strings.ToLower(path))
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Find returns the first of DefaultNames present in dir.
func Find(dir string) (string, error) {
	for _, name := range DefaultNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", errors.Errorf("%w in %s", ErrNotFound, dir)
}
