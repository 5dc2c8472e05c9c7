package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

// testParent returns a unique parent path so runs never collide.
func testParent(t *testing.T) string {
	return fmt.Sprintf("t-%s-%d", t.Name(), time.Now().UnixNano())
}

type testDoc struct {
	Name  string  `json:"name"`
	Count float64 `json:"count"`
	Note  string  `json:"note,omitempty"`
}

func TestRedisSetGet_RoundTrip(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	store := NewRedisStore(client)
	path := testParent(t) + "/1"

	if err := store.Set(ctx, path, testDoc{Name: "a", Count: 2.5}); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	var got testDoc
	found, err := store.Get(ctx, path, &got)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !found {
		t.Fatal("expected document to exist")
	}
	if got.Name != "a" || got.Count != 2.5 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestRedisGet_Missing(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	var got testDoc
	found, err := NewRedisStore(client).Get(context.Background(), testParent(t)+"/none", &got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected missing document")
	}
}

func TestRedisUpdate_MergesOnlyGivenFields(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	store := NewRedisStore(client)
	path := testParent(t) + "/1"

	if err := store.Set(ctx, path, testDoc{Name: "a", Count: 1, Note: "keep me"}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := store.Update(ctx, path, map[string]any{"count": 7}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	var got testDoc
	if _, err := store.Get(ctx, path, &got); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Count != 7 {
		t.Errorf("expected count 7, got %v", got.Count)
	}
	if got.Name != "a" || got.Note != "keep me" {
		t.Errorf("untouched fields changed: %+v", got)
	}
}

func TestRedisUpdate_MissingDocumentCreatesIt(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	store := NewRedisStore(client)
	path := testParent(t) + "/1"

	if err := store.Update(ctx, path, map[string]any{"count": 3}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	var got testDoc
	found, err := store.Get(ctx, path, &got)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !found || got.Count != 3 {
		t.Errorf("expected created doc with count 3, got found=%v %+v", found, got)
	}
}

func TestRedisPushAppend_PreservesInsertionOrder(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	store := NewRedisStore(client)
	path := testParent(t) + "/1"

	for i := 0; i < 5; i++ {
		if err := store.PushAppend(ctx, path, testDoc{Count: float64(i)}); err != nil {
			t.Fatalf("push %d failed: %v", i, err)
		}
	}

	raws, err := store.Appended(ctx, path)
	if err != nil {
		t.Fatalf("appended failed: %v", err)
	}
	if len(raws) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(raws))
	}
	for i, raw := range raws {
		var got testDoc
		if err := json.Unmarshal(raw, &got); err != nil {
			t.Fatalf("decode entry %d: %v", i, err)
		}
		if got.Count != float64(i) {
			t.Errorf("entry %d out of order: %+v", i, got)
		}
	}
}

func TestRedisChildren(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	store := NewRedisStore(client)
	parent := testParent(t)

	if err := store.Set(ctx, parent+"/1", testDoc{Name: "a"}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := store.Set(ctx, parent+"/2", testDoc{Name: "b"}); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	children, err := store.Children(ctx, parent)
	if err != nil {
		t.Fatalf("children failed: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	if _, ok := children["1"]; !ok {
		t.Error("missing child key 1")
	}
}

func TestRedisChildren_EmptyParent(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	children, err := NewRedisStore(client).Children(context.Background(), testParent(t))
	if err != nil {
		t.Fatalf("children failed: %v", err)
	}
	if len(children) != 0 {
		t.Errorf("expected no children, got %d", len(children))
	}
}

func TestRedisAppendKeys(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	store := NewRedisStore(client)
	parent := testParent(t)

	if err := store.PushAppend(ctx, parent+"/10", testDoc{Name: "a"}); err != nil {
		t.Fatalf("push failed: %v", err)
	}
	if err := store.PushAppend(ctx, parent+"/20", testDoc{Name: "b"}); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	keys, err := store.AppendKeys(ctx, parent)
	if err != nil {
		t.Fatalf("append keys failed: %v", err)
	}
	if len(keys) != 2 {
		t.Errorf("expected 2 keys, got %v", keys)
	}
}
