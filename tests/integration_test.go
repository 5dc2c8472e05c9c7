package tests

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/atsops/orderdesk/internal/adapter/storage"
	"github.com/atsops/orderdesk/internal/core/domain"
	"github.com/atsops/orderdesk/internal/core/service"
	"github.com/atsops/orderdesk/internal/port"
)

func redisStore(t *testing.T) port.Store {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { rdb.Close() })

	return storage.NewRedisStore(rdb)
}

func mysqlStore(t *testing.T) port.Store {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/orderdesk?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := storage.NewMySQLStore(db)
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema failed: %v", err)
	}
	return store
}

// uniqueContact derives a contact number no other run will have used, so
// lookups over a shared store stay unambiguous.
func uniqueContact() int64 {
	return 5_000_000_000 + time.Now().UnixNano()%1_000_000_000
}

func runOrderLifecycle(t *testing.T, store port.Store) {
	ctx := context.Background()
	contact := uniqueContact()

	audit := service.NewAuditLog(store)
	query := service.NewOrderQuery(store)
	orders := service.NewOrderService(store, audit, query)

	// Create
	number, err := orders.CreateOrder(ctx, service.CreateOrderInput{
		EmployeeID:    "E-integration",
		CustomerName:  "Asha Verma",
		ContactNumber: fmt.Sprintf("%d", contact),
		OrderDate:     "2024-01-15",
		DeliveryDate:  "2024-01-20",
		ProductID:     "P-100",
		Quantity:      2,
		Price:         50,
		ShopName:      "Corner Shop",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Read back through the query layer
	found, err := query.FindByContact(ctx, contact)
	if err != nil {
		t.Fatalf("find by contact failed: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 order for contact %d, got %d", contact, len(found))
	}
	created := found[0]
	if created.OrderNumber != number {
		t.Errorf("expected order %d, got %d", number, created.OrderNumber)
	}
	if created.TotalPrice != 100 {
		t.Errorf("expected total price 100, got %v", created.TotalPrice)
	}
	if created.OrderDate != "2024-01-15" {
		t.Errorf("expected normalized order date, got %q", created.OrderDate)
	}

	// Update delivery info; the write path invalidates the query cache.
	err = orders.UpdateDeliveryInfo(ctx, number, 150, domain.PaymentCash, domain.DeliveryDone)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	found, err = query.FindByContact(ctx, contact)
	if err != nil {
		t.Fatalf("find after update failed: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected 1 order after update, got %d", len(found))
	}
	updated := found[0]
	if updated.AmountReceived != 150 {
		t.Errorf("expected amount received 150, got %v", updated.AmountReceived)
	}
	if updated.PaymentStatus != domain.PaymentCash {
		t.Errorf("expected payment Cash, got %q", updated.PaymentStatus)
	}
	if updated.DeliveryStatus != domain.DeliveryDone {
		t.Errorf("expected delivery Done, got %q", updated.DeliveryStatus)
	}
	if updated.CustomerName != created.CustomerName || updated.TotalPrice != created.TotalPrice {
		t.Error("immutable fields changed by delivery update")
	}

	// Audit log: exactly three entries, insertion ordered.
	entries, err := audit.ListByOrder(ctx, number)
	if err != nil {
		t.Fatalf("list logs failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 log entries, got %d", len(entries))
	}
	wantFields := []string{"amount_received", "payment_status", "delivery_status"}
	for i, e := range entries {
		if e.Field != wantFields[i] {
			t.Errorf("entry %d: expected field %q, got %q", i, wantFields[i], e.Field)
		}
		if e.OrderNumber != number {
			t.Errorf("entry %d: expected order %d, got %d", i, number, e.OrderNumber)
		}
	}

	// Date-range query, bounds inclusive.
	inRange, err := query.FindByEmployeeAndDateRange(ctx, "E-integration", "2024-01-15", "2024-01-15")
	if err != nil {
		t.Fatalf("date range query failed: %v", err)
	}
	seen := false
	for _, o := range inRange {
		if o.OrderNumber == number {
			seen = true
		}
	}
	if !seen {
		t.Error("order missing from inclusive date-range result")
	}
}

func TestIntegration_OrderLifecycle_Redis(t *testing.T) {
	runOrderLifecycle(t, redisStore(t))
}

func TestIntegration_OrderLifecycle_MySQL(t *testing.T) {
	runOrderLifecycle(t, mysqlStore(t))
}
