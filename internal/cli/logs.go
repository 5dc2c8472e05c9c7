package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/atsops/orderdesk/internal/core/domain"
)

// NewLogsCommand creates the logs command.
func NewLogsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs [order-number]",
		Short: "Show the audit log of field changes",
		Long: `Show the audit log.

Without an argument, every order's entries are shown; entries keep their
insertion order within an order, the interleaving across orders carries no
meaning. With an order number, only that order's entries are shown.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer svc.close()

			var entries []domain.LogEntry
			if len(args) == 1 {
				number, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("order number must be an integer: %q", args[0])
				}
				entries, err = svc.audit.ListByOrder(cmd.Context(), number)
				if err != nil {
					return err
				}
			} else {
				entries, err = svc.audit.ListAll(cmd.Context())
				if err != nil {
					return err
				}
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no log entries")
				return nil
			}

			renderLogs(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	return cmd
}
