package cli

import (
	"context"

	"github.com/atsops/orderdesk/internal/adapter/storage"
	"github.com/atsops/orderdesk/internal/config"
	"github.com/atsops/orderdesk/internal/core/service"
)

// services bundles the core wired against the configured store.
type services struct {
	orders *service.OrderService
	audit  *service.AuditLog
	query  *service.OrderQuery
	close  func() error
}

func openServices(ctx context.Context, opts *RootOptions) (*services, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	store, closeFn, err := storage.Open(ctx, storage.Config{
		Backend:   cfg.Store.Backend,
		RedisAddr: cfg.Store.RedisAddr,
		MySQLDSN:  cfg.Store.MySQLDSN,
	})
	if err != nil {
		return nil, err
	}

	audit := service.NewAuditLog(store)
	query := service.NewOrderQuery(store)
	return &services{
		orders: service.NewOrderService(store, audit, query),
		audit:  audit,
		query:  query,
		close:  closeFn,
	}, nil
}
