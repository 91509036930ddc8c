package commands

import (
	"github.com/ikedam/viewcopy-builder/cmd/viewcopy/opts"
	"github.com/ikedam/viewcopy-builder/pkg/operation"
	"github.com/spf13/cobra"
)

// NewOperationsCmd creates a new operations command
func NewOperationsCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "operations",
		Short: "List the operation types usable in a config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows [][]string
			for _, d := range operation.All() {
				rows = append(rows, []string{d.ID, d.DisplayName})
			}
			return o.UserLogger.Table([]string{"Type", "Name"}, rows)
		},
	}
}
