package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/atsops/orderdesk/internal/core/domain"
)

func renderOrders(w io.Writer, orders []domain.Order) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER\tEMPLOYEE\tCUSTOMER\tCONTACT\tORDER DATE\tDELIVERY DATE\tPRODUCT\tQTY\tPRICE\tTOTAL\tRECEIVED\tPAYMENT\tDELIVERY")
	for _, o := range orders {
		contact := "-"
		if o.ContactNumber != nil {
			contact = strconv.FormatInt(*o.ContactNumber, 10)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%g\t%g\t%g\t%g\t%s\t%s\n",
			o.OrderNumber, o.EmployeeID, o.CustomerName, contact,
			o.OrderDate, o.DeliveryDate, o.ProductID,
			o.Quantity, o.Price, o.TotalPrice, o.AmountReceived,
			orDash(string(o.PaymentStatus)), orDash(string(o.DeliveryStatus)))
	}
	tw.Flush()
}

func renderLogs(w io.Writer, entries []domain.LogEntry) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIMESTAMP\tORDER\tFIELD\tOLD\tNEW")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%v\t%v\n",
			e.Timestamp, e.OrderNumber, e.Field, orDashAny(e.OldValue), orDashAny(e.NewValue))
	}
	tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func orDashAny(v any) any {
	if v == nil {
		return "-"
	}
	return v
}
