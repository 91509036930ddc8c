package commands

import (
	"strings"

	"github.com/ikedam/viewcopy-builder/cmd/viewcopy/opts"
	"github.com/ikedam/viewcopy-builder/pkg/copier"
	"github.com/ikedam/viewcopy-builder/pkg/operation"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

type copyFlags struct {
	from         string
	to           string
	overwrite    bool
	replacements []string
	expandFrom   bool
	expandTo     bool
	regex        string
	description  string
}

// operations builds the flag-defined operations: replacements first, then
// the regex, then the description.
func (f *copyFlags) operations(cmd *cobra.Command) ([]operation.Operation, error) {
	var ops []operation.Operation
	for _, r := range f.replacements {
		from, to, ok := strings.Cut(r, "=")
		if !ok {
			return nil, errors.Errorf("invalid --replace %q: expected FROM=TO", r)
		}
		ops = append(ops, operation.NewReplace(operation.String(from), f.expandFrom, operation.String(to), f.expandTo))
	}
	if cmd.Flags().Changed("set-regex") {
		ops = append(ops, operation.NewSetRegex(operation.String(f.regex)))
	}
	if cmd.Flags().Changed("set-description") {
		ops = append(ops, operation.NewSetDescription(operation.String(f.description)))
	}
	return ops, nil
}

// NewCopyCmd creates a new copy command
func NewCopyCmd(o *opts.RootOpts) *cobra.Command {
	flags := &copyFlags{}

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy one view, rewriting its configuration",
		Long: `Copy reads the source view, applies the operations given as flags
and stores the result under the destination name.
Operations run in this order:
1. every --replace, in the order given
2. --set-regex
3. --set-description
Nothing is written when any operation fails.`,
		Example: `  viewcopy copy --from template-view --to '${BRANCH}-view' \
    --env BRANCH=feature --replace 'template-=${BRANCH}-' --expand-to \
    --set-regex '${BRANCH}-.*'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := flags.operations(cmd)
			if err != nil {
				return err
			}
			env, err := o.Environment()
			if err != nil {
				return err
			}
			reg, err := o.ViewsRegistry(cmd.Context())
			if err != nil {
				return err
			}

			ctx, _ := o.WithDiagnostics(cmd.Context())
			res, err := copier.New(reg).Copy(ctx, copier.Job{
				From:       flags.from,
				To:         flags.to,
				Overwrite:  flags.overwrite,
				Operations: ops,
			}, env)
			if err != nil {
				return errors.Errorf("copying view: %w", err)
			}

			o.UserLogger.LogCopy(res)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.from, "from", "", "view to copy (may contain variables)")
	cmd.Flags().StringVar(&flags.to, "to", "", "name of the new view (may contain variables)")
	cmd.Flags().BoolVar(&flags.overwrite, "overwrite", false, "update the destination when it already exists")
	cmd.Flags().StringArrayVar(&flags.replacements, "replace", nil, "replace FROM=TO in every text node (repeatable)")
	cmd.Flags().BoolVar(&flags.expandFrom, "expand-from", false, "expand variables in --replace search strings")
	cmd.Flags().BoolVar(&flags.expandTo, "expand-to", false, "expand variables in --replace replacements")
	cmd.Flags().StringVar(&flags.regex, "set-regex", "", "set the job filter regular expression of a list view")
	cmd.Flags().StringVar(&flags.description, "set-description", "", "set the view description")

	return cmd
}
