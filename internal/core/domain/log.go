package domain

// LogEntry records one field-level change on an order. Entries are immutable
// once written and accumulate in insertion order under logs/{order_number}.
// OrderNumber is not checked against the orders collection; an entry may
// outlive or precede its order.
type LogEntry struct {
	Timestamp   string `json:"timestamp"`
	OrderNumber int64  `json:"order_number"`
	Field       string `json:"field"`
	OldValue    any    `json:"old_value"`
	NewValue    any    `json:"new_value"`
}
