package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/atsops/orderdesk/internal/core/domain"
	"github.com/atsops/orderdesk/internal/port"
)

const (
	orderNumberMin = 1_000_000
	orderNumberMax = 1_000_000_000
)

// GenerateOrderNumber draws a pseudo-random order number in
// [1_000_000, 1_000_000_000). Numbers are not checked for uniqueness before
// write; a collision silently overwrites the earlier order, which the
// original system accepted and we preserve.
func GenerateOrderNumber() int64 {
	return orderNumberMin + rand.Int64N(orderNumberMax-orderNumberMin)
}

// CacheInvalidator is notified after every successful write so cached reads
// observe it.
type CacheInvalidator interface {
	Invalidate()
}

// CreateOrderInput carries the order form fields. ContactNumber is the raw
// text the operator typed; it is parsed here, not by the caller.
type CreateOrderInput struct {
	EmployeeID    string  `validate:"required"`
	CustomerName  string  `validate:"required"`
	ContactNumber string
	OrderDate     string  `validate:"required,datetime=2006-01-02"`
	DeliveryDate  string  `validate:"required,datetime=2006-01-02"`
	ProductID     string  `validate:"required"`
	Quantity      float64 `validate:"gte=0"`
	Price         float64 `validate:"gte=0"`
	ShopName      string
	Location      string
	Landmark      string
	Remarks       string
}

// OrderService owns the order record lifecycle: creation and the partial
// update of the three mutable delivery fields, each mutation mirrored into
// the audit log.
type OrderService struct {
	store    port.Store
	audit    *AuditLog
	cache    CacheInvalidator
	validate *validator.Validate
}

// NewOrderService wires the repository. cache may be nil when no read cache
// is in play (tests, one-shot CLI runs).
func NewOrderService(store port.Store, audit *AuditLog, cache CacheInvalidator) *OrderService {
	return &OrderService{
		store:    store,
		audit:    audit,
		cache:    cache,
		validate: validator.New(),
	}
}

// CreateOrder validates the input, assigns an order number and writes the
// record at orders/{number}. The write is last-write-wins: no existence
// check is made at the generated number.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (int64, error) {
	if err := s.validate.Struct(in); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	var contact *int64
	if raw := strings.TrimSpace(in.ContactNumber); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: contact number must be an integer", ErrValidation)
		}
		contact = &n
	}

	number := GenerateOrderNumber()
	order := domain.Order{
		OrderNumber:   number,
		EmployeeID:    in.EmployeeID,
		CustomerName:  in.CustomerName,
		ContactNumber: contact,
		OrderDate:     in.OrderDate,
		DeliveryDate:  in.DeliveryDate,
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		Price:         in.Price,
		TotalPrice:    in.Quantity * in.Price,
		ShopName:      in.ShopName,
		Location:      in.Location,
		Landmark:      in.Landmark,
		Remarks:       in.Remarks,
	}

	if err := s.store.Set(ctx, orderPath(number), order); err != nil {
		return 0, storeErr("set order", err)
	}
	s.invalidate()

	return number, nil
}

// UpdateDeliveryInfo merge-updates the three mutable fields of an order and
// appends one audit entry per tracked field, changed or not. The old values
// come from a read taken just before the write, so a concurrent update can
// leave a log entry whose old value is already stale. An append failure
// after the field update leaves the order updated with an incomplete log;
// neither is rolled back.
func (s *OrderService) UpdateDeliveryInfo(ctx context.Context, orderNumber int64, amountReceived float64, payment domain.PaymentStatus, delivery domain.DeliveryStatus) error {
	if !payment.Valid() {
		return fmt.Errorf("%w: unknown payment status %q", ErrValidation, payment)
	}
	if !delivery.Valid() {
		return fmt.Errorf("%w: unknown delivery status %q", ErrValidation, delivery)
	}

	var current domain.Order
	found, err := s.store.Get(ctx, orderPath(orderNumber), &current)
	if err != nil {
		return storeErr("get order", err)
	}
	if !found {
		return fmt.Errorf("%w: order %d", ErrNotFound, orderNumber)
	}

	fields := map[string]any{
		"amount_received": amountReceived,
		"payment_status":  payment,
		"delivery_status": delivery,
	}
	if err := s.store.Update(ctx, orderPath(orderNumber), fields); err != nil {
		return storeErr("update order", err)
	}
	s.invalidate()

	if err := s.audit.Append(ctx, orderNumber, "amount_received", current.AmountReceived, amountReceived); err != nil {
		return err
	}
	if err := s.audit.Append(ctx, orderNumber, "payment_status", current.PaymentStatus, payment); err != nil {
		return err
	}
	return s.audit.Append(ctx, orderNumber, "delivery_status", current.DeliveryStatus, delivery)
}

func (s *OrderService) invalidate() {
	if s.cache != nil {
		s.cache.Invalidate()
	}
}

func orderPath(n int64) string {
	return fmt.Sprintf("orders/%d", n)
}
