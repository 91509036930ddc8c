package commands

import (
	"strconv"
	"time"

	"github.com/ikedam/viewcopy-builder/cmd/viewcopy/opts"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// NewHistoryCmd creates a new history command
func NewHistoryCmd(o *opts.RootOpts) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show copies recorded in the views directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := o.ViewsRegistry(cmd.Context())
			if err != nil {
				return err
			}

			records, err := reg.History(cmd.Context())
			if err != nil {
				return errors.Errorf("reading history: %w", err)
			}
			if limit > 0 && len(records) > limit {
				records = records[len(records)-limit:]
			}

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					rec.Time.Local().Format(time.RFC3339),
					rec.From,
					rec.To,
					rec.Kind,
					strconv.FormatBool(rec.Created),
				})
			}
			return o.UserLogger.Table([]string{"Time", "From", "To", "Kind", "Created"}, rows)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "only show the most recent records")

	return cmd
}
