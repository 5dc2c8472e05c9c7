package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/atsops/orderdesk/internal/core/domain"
	"github.com/atsops/orderdesk/internal/port"
)

// OrderQuery answers reads over the whole order collection. The collection
// is fetched in one call and memoized; Invalidate drops the copy so the
// write paths can keep readers current instead of relying on a restart.
type OrderQuery struct {
	store port.Store

	mu     sync.Mutex
	loaded bool
	orders []domain.Order
}

func NewOrderQuery(store port.Store) *OrderQuery {
	return &OrderQuery{store: store}
}

// LoadAllOrders returns every order, dates normalized to YYYY-MM-DD and
// sorted by order number. An empty store yields an empty slice.
func (q *OrderQuery) LoadAllOrders(ctx context.Context) ([]domain.Order, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.loaded {
		return q.orders, nil
	}

	children, err := q.store.Children(ctx, "orders")
	if err != nil {
		return nil, storeErr("load orders", err)
	}

	orders := make([]domain.Order, 0, len(children))
	for key, raw := range children {
		order, err := decodeOrder(raw)
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", key, err)
		}
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderNumber < orders[j].OrderNumber
	})

	q.orders = orders
	q.loaded = true
	return orders, nil
}

// Invalidate drops the memoized collection. Called after every write path.
func (q *OrderQuery) Invalidate() {
	q.mu.Lock()
	q.loaded = false
	q.orders = nil
	q.mu.Unlock()
}

// FindByContact returns the orders whose contact number matches exactly,
// empty when none do.
func (q *OrderQuery) FindByContact(ctx context.Context, contact int64) ([]domain.Order, error) {
	orders, err := q.LoadAllOrders(ctx)
	if err != nil {
		return nil, err
	}
	matches := make([]domain.Order, 0)
	for _, o := range orders {
		if o.ContactNumber != nil && *o.ContactNumber == contact {
			matches = append(matches, o)
		}
	}
	return matches, nil
}

// FindByEmployeeAndDateRange returns the employee's orders whose order date
// falls in [start, end], both bounds inclusive.
func (q *OrderQuery) FindByEmployeeAndDateRange(ctx context.Context, employeeID, start, end string) ([]domain.Order, error) {
	from, err := time.Parse(time.DateOnly, start)
	if err != nil {
		return nil, fmt.Errorf("%w: start date %q", ErrValidation, start)
	}
	to, err := time.Parse(time.DateOnly, end)
	if err != nil {
		return nil, fmt.Errorf("%w: end date %q", ErrValidation, end)
	}

	orders, err := q.LoadAllOrders(ctx)
	if err != nil {
		return nil, err
	}
	matches := make([]domain.Order, 0)
	for _, o := range orders {
		if o.EmployeeID != employeeID {
			continue
		}
		d, err := time.Parse(time.DateOnly, o.OrderDate)
		if err != nil {
			continue
		}
		if d.Before(from) || d.After(to) {
			continue
		}
		matches = append(matches, o)
	}
	return matches, nil
}

func decodeOrder(raw json.RawMessage) (domain.Order, error) {
	var doc struct {
		domain.Order
		CustomerPhone *int64 `json:"customer_phone"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Order{}, fmt.Errorf("decode order: %w", err)
	}

	order := doc.Order
	if order.ContactNumber == nil && doc.CustomerPhone != nil {
		// legacy attribute name from older records
		order.ContactNumber = doc.CustomerPhone
	}
	order.OrderDate = normalizeDate(order.OrderDate)
	order.DeliveryDate = normalizeDate(order.DeliveryDate)
	return order, nil
}

var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// normalizeDate canonicalizes a stored date to YYYY-MM-DD. Values that
// parse under none of the known layouts pass through unchanged.
func normalizeDate(s string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(time.DateOnly)
		}
	}
	return s
}
