package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atsops/orderdesk/internal/core/domain"
)

// OrdersOptions holds flags for the orders command.
type OrdersOptions struct {
	*RootOptions
	Contact  int64
	Employee string
	From     string
	To       string
}

// NewOrdersCommand creates the orders command.
func NewOrdersCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OrdersOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List orders, optionally filtered",
		Long: `List orders.

With --contact, only orders matching that contact number are shown. With
--employee plus --from/--to, only that employee's orders whose order date
falls inside the inclusive range are shown.

Examples:
  orderdesk orders
  orderdesk orders --contact 5551234
  orderdesk orders --employee E1 --from 2024-01-01 --to 2024-01-31`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices(cmd.Context(), opts.RootOptions)
			if err != nil {
				return err
			}
			defer svc.close()

			var orders []domain.Order
			switch {
			case opts.Contact != 0:
				orders, err = svc.query.FindByContact(cmd.Context(), opts.Contact)
			case opts.Employee != "":
				if opts.From == "" || opts.To == "" {
					return fmt.Errorf("--employee requires both --from and --to")
				}
				orders, err = svc.query.FindByEmployeeAndDateRange(cmd.Context(), opts.Employee, opts.From, opts.To)
			default:
				orders, err = svc.query.LoadAllOrders(cmd.Context())
			}
			if err != nil {
				return err
			}

			if len(orders) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no orders found")
				return nil
			}

			renderOrders(cmd.OutOrStdout(), orders)
			return nil
		},
	}

	cmd.Flags().Int64Var(&opts.Contact, "contact", 0, "filter by contact number")
	cmd.Flags().StringVar(&opts.Employee, "employee", "", "filter by employee id")
	cmd.Flags().StringVar(&opts.From, "from", "", "range start (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&opts.To, "to", "", "range end (YYYY-MM-DD, inclusive)")

	return cmd
}
