package opts

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/ikedam/viewcopy-builder/pkg/config"
	"github.com/ikedam/viewcopy-builder/pkg/expand"
	"github.com/ikedam/viewcopy-builder/pkg/log"
	"github.com/ikedam/viewcopy-builder/pkg/view"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	ViewsDir   string
	Debug      bool
	Env        []string
	InheritEnv bool

	// Console receives the copy diagnostics, stdout when nil
	Console io.Writer
	// UserLogger prints command results
	UserLogger *UserLogger
}

// LoadConfig loads the configured file, or the default one found in the
// working directory.
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, error) {
	path := o.ConfigFile
	if path == "" {
		found, err := config.Find(".")
		if err != nil {
			return nil, err
		}
		path = found
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	if o.ViewsDir != "" {
		cfg.ViewsDir = o.ViewsDir
	} else if !filepath.IsAbs(cfg.ViewsDir) {
		// relative to the config file, not the working directory
		cfg.ViewsDir = filepath.Join(filepath.Dir(path), cfg.ViewsDir)
	}
	return cfg, nil
}

// Registry opens the views directory. An explicit --views-dir wins over dir.
func (o *RootOpts) Registry(dir string) (*view.DirRegistry, error) {
	if o.ViewsDir != "" {
		dir = o.ViewsDir
	}
	if dir == "" {
		dir = config.DefaultViewsDir
	}
	reg, err := view.NewDirRegistry(dir)
	if err != nil {
		return nil, errors.Errorf("opening views: %w", err)
	}
	return reg, nil
}

// ViewsRegistry opens the views directory for commands that do not run the
// configured copies. --views-dir wins, then the views_dir of the config file
// given with --config or found in the working directory, then the default.
func (o *RootOpts) ViewsRegistry(ctx context.Context) (*view.DirRegistry, error) {
	if o.ViewsDir != "" {
		return o.Registry("")
	}

	cfg, err := o.LoadConfig(ctx)
	switch {
	case err == nil:
		return o.Registry(cfg.ViewsDir)
	case o.ConfigFile == "" && errors.Is(err, config.ErrNotFound):
		return o.Registry("")
	default:
		return nil, err
	}
}

// Environment builds the variables available to a copy.
func (o *RootOpts) Environment() (expand.Env, error) {
	pairs, err := expand.ParsePairs(o.Env)
	if err != nil {
		return nil, err
	}
	if o.InheritEnv {
		return expand.Merge(expand.FromOS(), pairs), nil
	}
	return pairs, nil
}

// WithDiagnostics attaches the copy diagnostics logger to ctx.
func (o *RootOpts) WithDiagnostics(ctx context.Context) (context.Context, *log.Logger) {
	console := o.Console
	if console == nil {
		console = os.Stdout
	}
	logger := log.New(console, *zerolog.Ctx(ctx))
	return log.NewContext(ctx, logger), logger
}
