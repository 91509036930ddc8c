package commands

import (
	"fmt"

	"github.com/ikedam/viewcopy-builder/cmd/viewcopy/opts"
	"github.com/ikedam/viewcopy-builder/pkg/config"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidConfig is returned when the config has error-level findings
var ErrInvalidConfig = errors.Base("config has errors")

// NewValidateCmd creates a new validate command
func NewValidateCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the config file against the stored views",
		Long: `Validate loads the config file and checks every copy.
Errors are reported for blank view names, invalid regular expressions
and missing replace strings. Warnings are reported for a missing source,
an existing destination without overwrite, and replace strings with
surrounding whitespace. Values containing variables are not checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := o.LoadConfig(ctx)
			if err != nil {
				return err
			}
			reg, err := o.Registry(cfg.ViewsDir)
			if err != nil {
				return err
			}

			findings := cfg.Check(ctx, reg)
			errorCount := 0
			for _, f := range findings {
				o.UserLogger.LogFinding(f)
				if f.Level == config.LevelError {
					errorCount++
				}
			}

			if errorCount > 0 {
				return errors.Errorf("%w: %d error(s)", ErrInvalidConfig, errorCount)
			}
			o.UserLogger.LogValidation(true, fmt.Sprintf("%s is valid (%d warning(s))", cfg.Location(), len(findings)), nil)
			return nil
		},
	}
}
