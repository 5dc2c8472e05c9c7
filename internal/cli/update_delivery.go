package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/atsops/orderdesk/internal/core/domain"
)

// UpdateDeliveryOptions holds flags for the update-delivery command.
type UpdateDeliveryOptions struct {
	*RootOptions
	AmountReceived float64
	PaymentStatus  string
	DeliveryStatus string
}

// NewUpdateDeliveryCommand creates the update-delivery command.
func NewUpdateDeliveryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UpdateDeliveryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update-delivery <order-number>",
		Short: "Update amount received, payment status and delivery status",
		Long: `Update the three mutable fields of an order.

Every update appends three audit log entries, one per tracked field, even
when a field keeps its previous value.

Example:
  orderdesk update-delivery 483920117 --amount 150 --payment Cash --delivery Done`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("order number must be an integer: %q", args[0])
			}

			svc, err := openServices(cmd.Context(), opts.RootOptions)
			if err != nil {
				return err
			}
			defer svc.close()

			err = svc.orders.UpdateDeliveryInfo(cmd.Context(), number, opts.AmountReceived,
				domain.PaymentStatus(opts.PaymentStatus), domain.DeliveryStatus(opts.DeliveryStatus))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "order %d updated\n", number)
			return nil
		},
	}

	cmd.Flags().Float64Var(&opts.AmountReceived, "amount", 0, "amount received")
	cmd.Flags().StringVar(&opts.PaymentStatus, "payment", "", "payment status (Online|Cash)")
	cmd.Flags().StringVar(&opts.DeliveryStatus, "delivery", "", "delivery status (Done|Pending|Cancel|Full Payment|Half Payment)")

	return cmd
}
