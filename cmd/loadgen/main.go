package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/atsops/orderdesk/internal/adapter/storage"
	"github.com/atsops/orderdesk/internal/core/service"
)

// Fires a burst of concurrent order creations at the store and checks
// every accepted order can be read back.
func main() {
	var (
		redisAddr = flag.String("redis", "localhost:6379", "redis address")
		total     = flag.Int("orders", 50, "number of orders to create")
		workers   = flag.Int("workers", 10, "concurrent creators")
	)
	flag.Parse()

	ctx := context.Background()

	rdb := redis.NewClient(&redis.Options{Addr: *redisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer rdb.Close()

	store := storage.NewRedisStore(rdb)
	audit := service.NewAuditLog(store)
	query := service.NewOrderQuery(store)
	orders := service.NewOrderService(store, audit, query)

	var successCount atomic.Int32
	var failCount atomic.Int32

	jobs := make(chan int)
	var wg sync.WaitGroup
	start := time.Now()

	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				_, err := orders.CreateOrder(ctx, service.CreateOrderInput{
					EmployeeID:    fmt.Sprintf("E-load-%d", i%5),
					CustomerName:  fmt.Sprintf("Customer %d", i),
					ContactNumber: fmt.Sprintf("9%08d", i),
					OrderDate:     time.Now().Format("2006-01-02"),
					DeliveryDate:  time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
					ProductID:     fmt.Sprintf("P-%d", i%10),
					Quantity:      float64(1 + i%4),
					Price:         25,
					ShopName:      "Load Shop",
				})
				if err != nil {
					failCount.Add(1)
					log.Printf("create %d failed: %v", i, err)
				} else {
					successCount.Add(1)
				}
			}
		}()
	}

	for i := 0; i < *total; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	elapsed := time.Since(start)

	all, err := query.LoadAllOrders(ctx)
	if err != nil {
		log.Fatalf("read back failed: %v", err)
	}

	fmt.Println("========== LOAD GENERATOR RESULTS ==========")
	fmt.Printf("Requested:        %d\n", *total)
	fmt.Printf("Created:          %d\n", successCount.Load())
	fmt.Printf("Failed:           %d\n", failCount.Load())
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Printf("Orders in store:  %d\n", len(all))
	fmt.Println("============================================")

	if int(successCount.Load()) != *total {
		fmt.Printf("FAIL: expected %d creations, got %d\n", *total, successCount.Load())
		return
	}
	fmt.Println("PASS: all orders created")
}
