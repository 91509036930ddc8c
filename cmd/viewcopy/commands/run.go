package commands

import (
	"github.com/ikedam/viewcopy-builder/cmd/viewcopy/opts"
	"github.com/ikedam/viewcopy-builder/pkg/copier"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewRunCmd creates a new run command
func NewRunCmd(o *opts.RootOpts) *cobra.Command {
	var parallel int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every copy in the config file",
		Long: `Run loads the config file and performs each configured copy.
It will:
1. Load and validate the config
2. Build the operations of each copy
3. Run the copies, up to --parallel at a time
4. Report each committed view`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := o.LoadConfig(ctx)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("parallel") {
				if err := cfg.SetParallel(parallel); err != nil {
					return errors.Errorf("invalid --parallel: %w", err)
				}
			}

			jobs, err := cfg.Jobs()
			if err != nil {
				return errors.Errorf("building jobs: %w", err)
			}
			env, err := o.Environment()
			if err != nil {
				return err
			}
			reg, err := o.Registry(cfg.ViewsDir)
			if err != nil {
				return err
			}

			ctx, _ = o.WithDiagnostics(ctx)
			results, err := copier.New(reg).RunAll(ctx, jobs, env, cfg.Parallel)
			for _, res := range results {
				o.UserLogger.LogCopy(res)
			}
			if err != nil {
				return errors.Errorf("running copies: %w", err)
			}

			o.UserLogger.LogValidation(true, "All copies completed", nil)
			return nil
		},
	}

	cmd.Flags().IntVarP(&parallel, "parallel", "p", 0, "number of copies to run at once, overriding the config file")

	return cmd
}
