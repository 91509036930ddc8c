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

package main

import (
	"os"

	"github.com/ikedam/viewcopy-builder/cmd/viewcopy/commands"
	"github.com/ikedam/viewcopy-builder/cmd/viewcopy/opts"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// newRootCmd creates the root command with every subcommand attached
func newRootCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viewcopy",
		Short: "Copy views and rewrite their configuration on the way",
		Long: `viewcopy copies a stored view to a new name and applies an ordered list
of operations to its configuration: set the description, set the job
filter regular expression, or replace strings everywhere in the text.
Names and operation values may reference variables such as ${BRANCH}.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogging(o.Debug)
			ctx := logger.WithContext(cmd.Context())
			if o.UserLogger == nil {
				o.UserLogger = opts.NewUserLogger(ctx)
			}
			cmd.SetContext(ctx)
			return nil
		},
	}

	addRootFlags(cmd, o)

	cmd.AddCommand(
		commands.NewCopyCmd(o),
		commands.NewRunCmd(o),
		commands.NewListCmd(o),
		commands.NewOperationsCmd(o),
		commands.NewValidateCmd(o),
		commands.NewHistoryCmd(o),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", "", "config file path (default: viewcopy.{yaml,yml,hcl,json} or .viewcopy)")
	cmd.PersistentFlags().StringVar(&o.ViewsDir, "views-dir", "", "directory holding the views (default: views_dir from config, or ./views)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringArrayVarP(&o.Env, "env", "e", nil, "variable available to copies, KEY=VALUE (repeatable)")
	cmd.PersistentFlags().BoolVar(&o.InheritEnv, "inherit-env", false, "make the process environment available to copies")
}

// setupLogging configures zerolog based on flags
func setupLogging(debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
	return log
}
