package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atsops/orderdesk/internal/core/service"
)

// CreateOptions holds flags for the create command.
type CreateOptions struct {
	*RootOptions
	Input service.CreateOrderInput
}

// NewCreateCommand creates the create command.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a new purchase order",
		Long: `Record a new purchase order.

The order number is generated and printed on success. Total price is
computed from quantity and price at creation and never recalculated.

Example:
  orderdesk create --employee E1 --customer "Asha Verma" --contact 5551234 \
    --order-date 2024-01-15 --delivery-date 2024-01-20 \
    --product P-100 --quantity 2 --price 50 --shop "Corner Shop"`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openServices(cmd.Context(), opts.RootOptions)
			if err != nil {
				return err
			}
			defer svc.close()

			number, err := svc.orders.CreateOrder(cmd.Context(), opts.Input)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "order %d created\n", number)
			return nil
		},
	}

	in := &opts.Input
	cmd.Flags().StringVar(&in.EmployeeID, "employee", "", "employee id")
	cmd.Flags().StringVar(&in.CustomerName, "customer", "", "customer name")
	cmd.Flags().StringVar(&in.ContactNumber, "contact", "", "contact number (digits only)")
	cmd.Flags().StringVar(&in.OrderDate, "order-date", "", "order date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.DeliveryDate, "delivery-date", "", "delivery date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.ProductID, "product", "", "product id")
	cmd.Flags().Float64Var(&in.Quantity, "quantity", 0, "quantity")
	cmd.Flags().Float64Var(&in.Price, "price", 0, "unit price")
	cmd.Flags().StringVar(&in.ShopName, "shop", "", "shop name")
	cmd.Flags().StringVar(&in.Location, "location", "", "location")
	cmd.Flags().StringVar(&in.Landmark, "landmark", "", "landmark")
	cmd.Flags().StringVar(&in.Remarks, "remarks", "", "remarks")

	return cmd
}
