package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atsops/orderdesk/internal/core/domain"
)

func TestRenderOrders(t *testing.T) {
	contact := int64(5551234)
	var buf strings.Builder
	renderOrders(&buf, []domain.Order{{
		OrderNumber:   1234567,
		EmployeeID:    "E1",
		CustomerName:  "Asha Verma",
		ContactNumber: &contact,
		OrderDate:     "2024-01-15",
		DeliveryDate:  "2024-01-20",
		ProductID:     "P-100",
		Quantity:      2,
		Price:         50,
		TotalPrice:    100,
	}})

	out := buf.String()
	assert.Contains(t, out, "1234567")
	assert.Contains(t, out, "5551234")
	assert.Contains(t, out, "Asha Verma")
	// statuses unset before the first delivery update
	assert.Contains(t, out, "-")
}

func TestRenderLogs(t *testing.T) {
	var buf strings.Builder
	renderLogs(&buf, []domain.LogEntry{{
		Timestamp:   "2024-03-07 14:30:09",
		OrderNumber: 1234567,
		Field:       "payment_status",
		OldValue:    nil,
		NewValue:    "Cash",
	}})

	out := buf.String()
	assert.Contains(t, out, "2024-03-07 14:30:09")
	assert.Contains(t, out, "payment_status")
	assert.Contains(t, out, "Cash")
}
