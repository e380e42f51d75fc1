package repository

import (
	"context"
	"time"

	"github.com/polkiloo/stockmart/internal/domain/model"
)

// OrderFilter narrows order searches. All fields are optional; time bounds
// are UTC instants.
type OrderFilter struct {
	UserID *int64
	Status *model.OrderStatus
	From   *time.Time
	To     *time.Time
}

// OrderRepository describes pool-scoped persistence operations with orders.
type OrderRepository interface {
	// Create persists the order together with all of its lines atomically.
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetDetail(ctx context.Context, orderID int64) (*model.Order, error)
	Search(ctx context.Context, filter OrderFilter) ([]model.Order, error)
}

// OrderTxRepository is the transaction-scoped view of order persistence.
// GetForUpdate locks the order row so the status precondition and the status
// write happen under the same lock.
type OrderTxRepository interface {
	GetForUpdate(ctx context.Context, orderID int64) (*model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
}
