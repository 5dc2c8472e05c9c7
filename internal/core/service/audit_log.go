package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/atsops/orderdesk/internal/core/domain"
	"github.com/atsops/orderdesk/internal/port"
)

const logTimeLayout = "2006-01-02 15:04:05"

// AuditLog is the append-only record of field-level order changes. Appends
// never collide and never race: the store generates the child key.
type AuditLog struct {
	store port.Store
	now   func() time.Time
}

func NewAuditLog(store port.Store) *AuditLog {
	return &AuditLog{store: store, now: time.Now}
}

// Append stamps the entry with the current wall clock at second precision
// and pushes it onto the order's sequence at logs/{orderNumber}.
func (l *AuditLog) Append(ctx context.Context, orderNumber int64, field string, oldValue, newValue any) error {
	entry := domain.LogEntry{
		Timestamp:   l.now().Format(logTimeLayout),
		OrderNumber: orderNumber,
		Field:       field,
		OldValue:    oldValue,
		NewValue:    newValue,
	}
	if err := l.store.PushAppend(ctx, logPath(orderNumber), entry); err != nil {
		return storeErr("append log", err)
	}
	return nil
}

// ListByOrder returns one order's entries in insertion order.
func (l *AuditLog) ListByOrder(ctx context.Context, orderNumber int64) ([]domain.LogEntry, error) {
	raws, err := l.store.Appended(ctx, logPath(orderNumber))
	if err != nil {
		return nil, storeErr("list logs", err)
	}
	return decodeLogEntries(raws)
}

// ListAll flattens every order's sequence into one slice. Insertion order
// holds within an order; the interleaving across orders follows store
// iteration order and is not meaningful.
func (l *AuditLog) ListAll(ctx context.Context) ([]domain.LogEntry, error) {
	keys, err := l.store.AppendKeys(ctx, "logs")
	if err != nil {
		return nil, storeErr("list logs", err)
	}

	all := make([]domain.LogEntry, 0)
	for _, key := range keys {
		raws, err := l.store.Appended(ctx, "logs/"+key)
		if err != nil {
			return nil, storeErr("list logs", err)
		}
		entries, err := decodeLogEntries(raws)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}

func decodeLogEntries(raws []json.RawMessage) ([]domain.LogEntry, error) {
	entries := make([]domain.LogEntry, 0, len(raws))
	for _, raw := range raws {
		var e domain.LogEntry
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("decode log entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func logPath(n int64) string {
	return fmt.Sprintf("logs/%d", n)
}
