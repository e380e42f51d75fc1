package repository

import (
	"context"

	"github.com/polkiloo/stockmart/internal/domain/model"
)

// OrderLogRepository appends the audit trail of order status transitions.
type OrderLogRepository interface {
	Record(ctx context.Context, change model.StatusChange) error
}
