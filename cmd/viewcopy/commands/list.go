package commands

import (
	"github.com/ikedam/viewcopy-builder/cmd/viewcopy/opts"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewListCmd creates a new list command
func NewListCmd(o *opts.RootOpts) *cobra.Command {
	var glob string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List stored views",
		Example: `  viewcopy list --glob 'feature-*'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			reg, err := o.ViewsRegistry(ctx)
			if err != nil {
				return err
			}

			names, err := reg.List(ctx, glob)
			if err != nil {
				return errors.Errorf("listing views: %w", err)
			}

			rows := make([][]string, 0, len(names))
			for _, name := range names {
				v, err := reg.Get(ctx, name)
				if err != nil {
					return errors.Errorf("reading view %s: %w", name, err)
				}
				if v == nil {
					continue
				}
				rows = append(rows, []string{name, v.Kind.String()})
			}

			return o.UserLogger.Table([]string{"View", "Kind"}, rows)
		},
	}

	cmd.Flags().StringVarP(&glob, "glob", "g", "", "only list views matching this pattern")

	return cmd
}
